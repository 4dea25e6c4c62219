package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

func priv(ctx *cbs.Context) *privData {
	return ctx.Priv().(*privData)
}

// frameSize reads frame_width_minus_1/frame_height_minus_1 and derives
// the macroblock/superblock grid dimensions tile_info() clamps against.
func frameSize(ctx *cbs.Context, r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.FrameWidthMinus1, err = r.U(16, "frame_width_minus_1", 0, 0xffff); err != nil {
		return err
	}
	if h.FrameHeightMinus1, err = r.U(16, "frame_height_minus_1", 0, 0xffff); err != nil {
		return err
	}
	deriveGridDimensions(ctx, h)
	return nil
}

func writeFrameSize(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(16, "frame_width_minus_1", h.FrameWidthMinus1, 0, 0xffff); err != nil {
		return err
	}
	if err := w.WriteU(16, "frame_height_minus_1", h.FrameHeightMinus1, 0, 0xffff); err != nil {
		return err
	}
	deriveGridDimensions(ctx, h)
	return nil
}

func deriveGridDimensions(ctx *cbs.Context, h *RawFrameHeader) {
	p := priv(ctx)
	p.MiCols = uint16((h.FrameWidthMinus1 + 8) >> 3)
	p.MiRows = uint16((h.FrameHeightMinus1 + 8) >> 3)
	p.SB64Cols = (p.MiCols + 7) >> 3
	p.SB64Rows = (p.MiRows + 7) >> 3
}

func renderSize(r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.RenderAndFrameSizeDifferent, err = r.U(1, "render_and_frame_size_different", 0, 1); err != nil {
		return err
	}
	if h.RenderAndFrameSizeDifferent == 1 {
		if h.RenderWidthMinus1, err = r.U(16, "render_width_minus_1", 0, 0xffff); err != nil {
			return err
		}
		if h.RenderHeightMinus1, err = r.U(16, "render_height_minus_1", 0, 0xffff); err != nil {
			return err
		}
	}
	return nil
}

func writeRenderSize(w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(1, "render_and_frame_size_different", h.RenderAndFrameSizeDifferent, 0, 1); err != nil {
		return err
	}
	if h.RenderAndFrameSizeDifferent == 1 {
		if err := w.WriteU(16, "render_width_minus_1", h.RenderWidthMinus1, 0, 0xffff); err != nil {
			return err
		}
		return w.WriteU(16, "render_height_minus_1", h.RenderHeightMinus1, 0, 0xffff)
	}
	return nil
}

func frameSizeWithRefs(ctx *cbs.Context, r *bitcodec.Reader, h *RawFrameHeader) error {
	found := false
	for i := 0; i < 3; i++ {
		v, err := r.U(1, "found_ref", 0, 1)
		if err != nil {
			return err
		}
		h.FoundRef[i] = v
		if v == 1 {
			found = true
			break
		}
	}
	if !found {
		if err := frameSize(ctx, r, h); err != nil {
			return err
		}
	}
	return renderSize(r, h)
}

func writeFrameSizeWithRefs(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader) error {
	found := false
	for i := 0; i < 3; i++ {
		if err := w.WriteU(1, "found_ref", h.FoundRef[i], 0, 1); err != nil {
			return err
		}
		if h.FoundRef[i] == 1 {
			found = true
			break
		}
	}
	if !found {
		if err := writeFrameSize(ctx, w, h); err != nil {
			return err
		}
	}
	return writeRenderSize(w, h)
}
