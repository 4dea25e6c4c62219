package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

var (
	segmentationFeatureBits   = [segLvlMax]uint8{8, 6, 2, 0}
	segmentationFeatureSigned = [segLvlMax]bool{true, true, false, false}
)

// prob reads an 8-bit probability's 1-bit presence flag followed by the
// value when present, defaulting to 255 when absent.
func prob(r *bitcodec.Reader, name string) (uint32, error) {
	coded, err := r.U(1, name+".prob_coded", 0, 1)
	if err != nil {
		return 0, err
	}
	if coded == 0 {
		return 255, nil
	}
	return r.U(8, name+".prob", 0, 0xff)
}

func writeProb(w *bitcodec.Writer, name string, value uint32) error {
	coded := uint32(0)
	if value != 255 {
		coded = 1
	}
	if err := w.WriteU(1, name+".prob_coded", coded, 0, 1); err != nil {
		return err
	}
	if coded == 1 {
		return w.WriteU(8, name+".prob", value, 0, 0xff)
	}
	return nil
}

func segmentationParams(r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.SegmentationEnabled, err = r.U(1, "segmentation_enabled", 0, 1); err != nil {
		return err
	}
	if h.SegmentationEnabled == 0 {
		return nil
	}

	if h.SegmentationUpdateMap, err = r.U(1, "segmentation_update_map", 0, 1); err != nil {
		return err
	}
	if h.SegmentationUpdateMap == 1 {
		for i := range h.SegmentationTreeProbs {
			if h.SegmentationTreeProbs[i], err = prob(r, "segmentation_tree_probs"); err != nil {
				return err
			}
		}
		if h.SegmentationTemporalUpdate, err = r.U(1, "segmentation_temporal_update", 0, 1); err != nil {
			return err
		}
		for i := range h.SegmentationPredProb {
			if h.SegmentationTemporalUpdate == 1 {
				if h.SegmentationPredProb[i], err = prob(r, "segmentation_pred_prob"); err != nil {
					return err
				}
			} else {
				h.SegmentationPredProb[i] = 255
			}
		}
	}

	if h.SegmentationUpdateData, err = r.U(1, "segmentation_update_data", 0, 1); err != nil {
		return err
	}
	if h.SegmentationUpdateData == 1 {
		if h.SegmentationAbsOrDeltaUpdate, err = r.U(1, "segmentation_abs_or_delta_update", 0, 1); err != nil {
			return err
		}
		for i := 0; i < maxSegments; i++ {
			for j := 0; j < segLvlMax; j++ {
				if h.FeatureEnabled[i][j], err = r.U(1, "feature_enabled", 0, 1); err != nil {
					return err
				}
				if h.FeatureEnabled[i][j] == 1 {
					bitWidth := segmentationFeatureBits[j]
					if bitWidth > 0 {
						if h.FeatureValue[i][j], err = r.U(bitWidth, "feature_value", 0, (1<<bitWidth)-1); err != nil {
							return err
						}
					}
					if segmentationFeatureSigned[j] {
						if h.FeatureSign[i][j], err = r.U(1, "feature_sign", 0, 1); err != nil {
							return err
						}
					} else {
						h.FeatureSign[i][j] = 0
					}
				} else {
					h.FeatureValue[i][j] = 0
					h.FeatureSign[i][j] = 0
				}
			}
		}
	}
	return nil
}

func writeSegmentationParams(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(1, "segmentation_enabled", h.SegmentationEnabled, 0, 1); err != nil {
		return err
	}
	if h.SegmentationEnabled == 0 {
		return nil
	}

	if err := w.WriteU(1, "segmentation_update_map", h.SegmentationUpdateMap, 0, 1); err != nil {
		return err
	}
	if h.SegmentationUpdateMap == 1 {
		for _, v := range h.SegmentationTreeProbs {
			if err := writeProb(w, "segmentation_tree_probs", v); err != nil {
				return err
			}
		}
		if err := w.WriteU(1, "segmentation_temporal_update", h.SegmentationTemporalUpdate, 0, 1); err != nil {
			return err
		}
		for _, v := range h.SegmentationPredProb {
			if h.SegmentationTemporalUpdate == 1 {
				if err := writeProb(w, "segmentation_pred_prob", v); err != nil {
					return err
				}
			} else {
				checkInferred(ctx, "segmentation_pred_prob", int64(v), 255)
			}
		}
	}

	if err := w.WriteU(1, "segmentation_update_data", h.SegmentationUpdateData, 0, 1); err != nil {
		return err
	}
	if h.SegmentationUpdateData == 1 {
		if err := w.WriteU(1, "segmentation_abs_or_delta_update", h.SegmentationAbsOrDeltaUpdate, 0, 1); err != nil {
			return err
		}
		for i := 0; i < maxSegments; i++ {
			for j := 0; j < segLvlMax; j++ {
				if err := w.WriteU(1, "feature_enabled", h.FeatureEnabled[i][j], 0, 1); err != nil {
					return err
				}
				if h.FeatureEnabled[i][j] == 1 {
					bitWidth := segmentationFeatureBits[j]
					if bitWidth > 0 {
						if err := w.WriteU(bitWidth, "feature_value", h.FeatureValue[i][j], 0, (1<<bitWidth)-1); err != nil {
							return err
						}
					}
					if segmentationFeatureSigned[j] {
						if err := w.WriteU(1, "feature_sign", h.FeatureSign[i][j], 0, 1); err != nil {
							return err
						}
					} else {
						checkInferred(ctx, "feature_sign", int64(h.FeatureSign[i][j]), 0)
					}
				} else {
					checkInferred(ctx, "feature_value", int64(h.FeatureValue[i][j]), 0)
					checkInferred(ctx, "feature_sign", int64(h.FeatureSign[i][j]), 0)
				}
			}
		}
	}
	return nil
}
