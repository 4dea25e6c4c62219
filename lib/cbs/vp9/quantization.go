package vp9

import "github.com/thebagchi/go-cbs/lib/bitcodec"

// deltaQ reads the 1-bit delta_coded presence flag followed by a 4-bit
// signed delta when present, folding both into a single int32 (0 when
// absent) — the struct carries no separate presence flag, matching
// upstream's own VP9RawFrameHeader shape.
func deltaQ(r *bitcodec.Reader, name string) (int32, error) {
	coded, err := r.U(1, name+".delta_coded", 0, 1)
	if err != nil {
		return 0, err
	}
	if coded == 0 {
		return 0, nil
	}
	return r.S(4, name+".delta_q")
}

// writeDeltaQ signals delta_coded=1 whenever value is nonzero — the
// simplification this plug-in makes because RawFrameHeader, like the
// source struct it mirrors, has nowhere to remember an explicit
// delta_coded=1/delta_q=0 encoding distinctly from "absent".
func writeDeltaQ(w *bitcodec.Writer, name string, value int32) error {
	coded := uint32(0)
	if value != 0 {
		coded = 1
	}
	if err := w.WriteU(1, name+".delta_coded", coded, 0, 1); err != nil {
		return err
	}
	if coded == 1 {
		return w.WriteS(4, name+".delta_q", value)
	}
	return nil
}

func quantizationParams(r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.BaseQIdx, err = r.U(8, "base_q_idx", 0, 0xff); err != nil {
		return err
	}
	if h.DeltaQYDc, err = deltaQ(r, "delta_q_y_dc"); err != nil {
		return err
	}
	if h.DeltaQUVDc, err = deltaQ(r, "delta_q_uv_dc"); err != nil {
		return err
	}
	if h.DeltaQUVAc, err = deltaQ(r, "delta_q_uv_ac"); err != nil {
		return err
	}
	return nil
}

func writeQuantizationParams(w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(8, "base_q_idx", h.BaseQIdx, 0, 0xff); err != nil {
		return err
	}
	if err := writeDeltaQ(w, "delta_q_y_dc", h.DeltaQYDc); err != nil {
		return err
	}
	if err := writeDeltaQ(w, "delta_q_uv_dc", h.DeltaQUVDc); err != nil {
		return err
	}
	return writeDeltaQ(w, "delta_q_uv_ac", h.DeltaQUVAc)
}
