package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

const (
	colorSpaceRGB = 7
)

func frameSyncCode(r *bitcodec.Reader) error {
	b0, err := r.U(8, "frame_sync_byte_0", 0, 0xff)
	if err != nil {
		return err
	}
	b1, err := r.U(8, "frame_sync_byte_1", 0, 0xff)
	if err != nil {
		return err
	}
	b2, err := r.U(8, "frame_sync_byte_2", 0, 0xff)
	if err != nil {
		return err
	}
	if b0 != 0x49 || b1 != 0x83 || b2 != 0x42 {
		return cbs.Newf(cbs.InvalidData, "invalid frame sync code: %02x %02x %02x", b0, b1, b2)
	}
	return nil
}

func writeFrameSyncCode(w *bitcodec.Writer) error {
	if err := w.WriteU(8, "frame_sync_byte_0", 0x49, 0, 0xff); err != nil {
		return err
	}
	if err := w.WriteU(8, "frame_sync_byte_1", 0x83, 0, 0xff); err != nil {
		return err
	}
	return w.WriteU(8, "frame_sync_byte_2", 0x42, 0, 0xff)
}

func colorConfig(r *bitcodec.Reader, h *RawFrameHeader, profile uint32) error {
	var err error
	if profile >= 2 {
		if h.TenOrTwelveBit, err = r.U(1, "ten_or_twelve_bit", 0, 1); err != nil {
			return err
		}
	}
	if h.ColorSpace, err = r.U(3, "color_space", 0, 7); err != nil {
		return err
	}
	if h.ColorSpace != colorSpaceRGB {
		if h.ColorRange, err = r.U(1, "color_range", 0, 1); err != nil {
			return err
		}
		if profile == 1 || profile == 3 {
			if h.SubsamplingX, err = r.U(1, "subsampling_x", 0, 1); err != nil {
				return err
			}
			if h.SubsamplingY, err = r.U(1, "subsampling_y", 0, 1); err != nil {
				return err
			}
			if h.ColorConfigReservedZero, err = r.U(1, "color_config_reserved_zero", 0, 1); err != nil {
				return err
			}
		} else {
			h.SubsamplingX = 1
			h.SubsamplingY = 1
		}
	} else {
		h.ColorRange = 1
		if profile == 1 || profile == 3 {
			h.SubsamplingX = 0
			h.SubsamplingY = 0
		}
	}
	return nil
}

func writeColorConfig(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader, profile uint32) error {
	if profile >= 2 {
		if err := w.WriteU(1, "ten_or_twelve_bit", h.TenOrTwelveBit, 0, 1); err != nil {
			return err
		}
	}
	if err := w.WriteU(3, "color_space", h.ColorSpace, 0, 7); err != nil {
		return err
	}
	if h.ColorSpace != colorSpaceRGB {
		if err := w.WriteU(1, "color_range", h.ColorRange, 0, 1); err != nil {
			return err
		}
		if profile == 1 || profile == 3 {
			if err := w.WriteU(1, "subsampling_x", h.SubsamplingX, 0, 1); err != nil {
				return err
			}
			if err := w.WriteU(1, "subsampling_y", h.SubsamplingY, 0, 1); err != nil {
				return err
			}
			return w.WriteU(1, "color_config_reserved_zero", h.ColorConfigReservedZero, 0, 1)
		}
		checkInferred(ctx, "subsampling_x", int64(h.SubsamplingX), 1)
		checkInferred(ctx, "subsampling_y", int64(h.SubsamplingY), 1)
		return nil
	}
	checkInferred(ctx, "color_range", int64(h.ColorRange), 1)
	if profile == 1 || profile == 3 {
		checkInferred(ctx, "subsampling_x", int64(h.SubsamplingX), 0)
		checkInferred(ctx, "subsampling_y", int64(h.SubsamplingY), 0)
	}
	return nil
}

// checkInferred logs a warning, never an error, when a caller-supplied
// value disagrees with the value the bitstream's own rules would have
// inferred — the write path's cross-check for fields §4.7 marks
// "inferred".
func checkInferred(ctx *cbs.Context, name string, got, want int64) {
	if got != want {
		ctx.Logf(cbs.LevelWarn, "%s does not match inferred value: %d, but should be %d", name, got, want)
	}
}
