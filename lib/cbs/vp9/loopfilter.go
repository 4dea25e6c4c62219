package vp9

import "github.com/thebagchi/go-cbs/lib/bitcodec"

func loopFilterParams(r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.LoopFilterLevel, err = r.U(6, "loop_filter_level", 0, 63); err != nil {
		return err
	}
	if h.LoopFilterSharpness, err = r.U(3, "loop_filter_sharpness", 0, 7); err != nil {
		return err
	}
	if h.LoopFilterDeltaEnabled, err = r.U(1, "loop_filter_delta_enabled", 0, 1); err != nil {
		return err
	}
	if h.LoopFilterDeltaEnabled == 0 {
		return nil
	}
	if h.LoopFilterDeltaUpdate, err = r.U(1, "loop_filter_delta_update", 0, 1); err != nil {
		return err
	}
	if h.LoopFilterDeltaUpdate == 0 {
		return nil
	}
	for i := 0; i < 4; i++ {
		if h.UpdateRefDelta[i], err = r.U(1, "update_ref_delta", 0, 1); err != nil {
			return err
		}
		if h.UpdateRefDelta[i] == 1 {
			if h.LoopFilterRefDeltas[i], err = r.S(6, "loop_filter_ref_deltas"); err != nil {
				return err
			}
		}
	}
	for i := 0; i < 2; i++ {
		if h.UpdateModeDelta[i], err = r.U(1, "update_mode_delta", 0, 1); err != nil {
			return err
		}
		if h.UpdateModeDelta[i] == 1 {
			if h.LoopFilterModeDeltas[i], err = r.S(6, "loop_filter_mode_deltas"); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLoopFilterParams(w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(6, "loop_filter_level", h.LoopFilterLevel, 0, 63); err != nil {
		return err
	}
	if err := w.WriteU(3, "loop_filter_sharpness", h.LoopFilterSharpness, 0, 7); err != nil {
		return err
	}
	if err := w.WriteU(1, "loop_filter_delta_enabled", h.LoopFilterDeltaEnabled, 0, 1); err != nil {
		return err
	}
	if h.LoopFilterDeltaEnabled == 0 {
		return nil
	}
	if err := w.WriteU(1, "loop_filter_delta_update", h.LoopFilterDeltaUpdate, 0, 1); err != nil {
		return err
	}
	if h.LoopFilterDeltaUpdate == 0 {
		return nil
	}
	for i := 0; i < 4; i++ {
		if err := w.WriteU(1, "update_ref_delta", h.UpdateRefDelta[i], 0, 1); err != nil {
			return err
		}
		if h.UpdateRefDelta[i] == 1 {
			if err := w.WriteS(6, "loop_filter_ref_deltas", h.LoopFilterRefDeltas[i]); err != nil {
				return err
			}
		}
	}
	for i := 0; i < 2; i++ {
		if err := w.WriteU(1, "update_mode_delta", h.UpdateModeDelta[i], 0, 1); err != nil {
			return err
		}
		if h.UpdateModeDelta[i] == 1 {
			if err := w.WriteS(6, "loop_filter_mode_deltas", h.LoopFilterModeDeltas[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
