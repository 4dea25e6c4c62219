package vp9

import "github.com/thebagchi/go-cbs/lib/bitcodec"

func interpolationFilter(r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.IsFilterSwitchable, err = r.U(1, "is_filter_switchable", 0, 1); err != nil {
		return err
	}
	if h.IsFilterSwitchable == 0 {
		if h.RawInterpolationFilterType, err = r.U(2, "raw_interpolation_filter_type", 0, 3); err != nil {
			return err
		}
	}
	return nil
}

func writeInterpolationFilter(w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(1, "is_filter_switchable", h.IsFilterSwitchable, 0, 1); err != nil {
		return err
	}
	if h.IsFilterSwitchable == 0 {
		return w.WriteU(2, "raw_interpolation_filter_type", h.RawInterpolationFilterType, 0, 3)
	}
	return nil
}
