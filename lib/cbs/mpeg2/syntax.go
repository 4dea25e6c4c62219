package mpeg2

import "github.com/thebagchi/go-cbs/lib/bitcodec"

func readSequenceHeader(r *bitcodec.Reader) (*RawSequenceHeader, error) {
	h := &RawSequenceHeader{}
	var err error
	if h.HorizontalSizeValue, err = r.U(12, "horizontal_size_value", 1, 4095); err != nil {
		return nil, err
	}
	if h.VerticalSizeValue, err = r.U(12, "vertical_size_value", 1, 4095); err != nil {
		return nil, err
	}
	if h.AspectRatioInformation, err = r.U(4, "aspect_ratio_information", 0, 15); err != nil {
		return nil, err
	}
	if h.FrameRateCode, err = r.U(4, "frame_rate_code", 0, 15); err != nil {
		return nil, err
	}
	if h.BitRateValue, err = r.U(18, "bit_rate_value", 0, (1<<18)-1); err != nil {
		return nil, err
	}
	if err = r.MarkerBit(); err != nil {
		return nil, err
	}
	if h.VBVBufferSizeValue, err = r.U(10, "vbv_buffer_size_value", 0, (1<<10)-1); err != nil {
		return nil, err
	}
	if h.ConstrainedParametersFlag, err = r.U(1, "constrained_parameters_flag", 0, 1); err != nil {
		return nil, err
	}
	if h.LoadIntraQuantiserMatrix, err = r.U(1, "load_intra_quantiser_matrix", 0, 1); err != nil {
		return nil, err
	}
	if h.LoadIntraQuantiserMatrix == 1 {
		for i := range h.IntraQuantiserMatrix {
			if h.IntraQuantiserMatrix[i], err = r.U(8, "intra_quantiser_matrix["+bitcodec.FormatUint(uint32(i))+"]", 1, 255); err != nil {
				return nil, err
			}
		}
	}
	if h.LoadNonIntraQuantiserMatrix, err = r.U(1, "load_non_intra_quantiser_matrix", 0, 1); err != nil {
		return nil, err
	}
	if h.LoadNonIntraQuantiserMatrix == 1 {
		for i := range h.NonIntraQuantiserMatrix {
			if h.NonIntraQuantiserMatrix[i], err = r.U(8, "non_intra_quantiser_matrix["+bitcodec.FormatUint(uint32(i))+"]", 1, 255); err != nil {
				return nil, err
			}
		}
	}
	return h, nil
}

func (h *RawSequenceHeader) write(w *bitcodec.Writer) error {
	if err := w.WriteU(12, "horizontal_size_value", h.HorizontalSizeValue, 1, 4095); err != nil {
		return err
	}
	if err := w.WriteU(12, "vertical_size_value", h.VerticalSizeValue, 1, 4095); err != nil {
		return err
	}
	if err := w.WriteU(4, "aspect_ratio_information", h.AspectRatioInformation, 0, 15); err != nil {
		return err
	}
	if err := w.WriteU(4, "frame_rate_code", h.FrameRateCode, 0, 15); err != nil {
		return err
	}
	if err := w.WriteU(18, "bit_rate_value", h.BitRateValue, 0, (1<<18)-1); err != nil {
		return err
	}
	if err := w.WriteMarkerBit(); err != nil {
		return err
	}
	if err := w.WriteU(10, "vbv_buffer_size_value", h.VBVBufferSizeValue, 0, (1<<10)-1); err != nil {
		return err
	}
	if err := w.WriteU(1, "constrained_parameters_flag", h.ConstrainedParametersFlag, 0, 1); err != nil {
		return err
	}
	if err := w.WriteU(1, "load_intra_quantiser_matrix", h.LoadIntraQuantiserMatrix, 0, 1); err != nil {
		return err
	}
	if h.LoadIntraQuantiserMatrix == 1 {
		for i, v := range h.IntraQuantiserMatrix {
			if err := w.WriteU(8, "intra_quantiser_matrix["+bitcodec.FormatUint(uint32(i))+"]", v, 1, 255); err != nil {
				return err
			}
		}
	}
	if err := w.WriteU(1, "load_non_intra_quantiser_matrix", h.LoadNonIntraQuantiserMatrix, 0, 1); err != nil {
		return err
	}
	if h.LoadNonIntraQuantiserMatrix == 1 {
		for i, v := range h.NonIntraQuantiserMatrix {
			if err := w.WriteU(8, "non_intra_quantiser_matrix["+bitcodec.FormatUint(uint32(i))+"]", v, 1, 255); err != nil {
				return err
			}
		}
	}
	return nil
}

func readPictureHeader(r *bitcodec.Reader) (*RawPictureHeader, error) {
	h := &RawPictureHeader{}
	var err error
	if h.TemporalReference, err = r.U(10, "temporal_reference", 0, (1<<10)-1); err != nil {
		return nil, err
	}
	if h.PictureCodingType, err = r.U(3, "picture_coding_type", 1, 4); err != nil {
		return nil, err
	}
	if h.VBVDelay, err = r.U(16, "vbv_delay", 0, 0xffff); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *RawPictureHeader) write(w *bitcodec.Writer) error {
	if err := w.WriteU(10, "temporal_reference", h.TemporalReference, 0, (1<<10)-1); err != nil {
		return err
	}
	if err := w.WriteU(3, "picture_coding_type", h.PictureCodingType, 1, 4); err != nil {
		return err
	}
	return w.WriteU(16, "vbv_delay", h.VBVDelay, 0, 0xffff)
}

func readGroupOfPicturesHeader(r *bitcodec.Reader) (*RawGroupOfPicturesHeader, error) {
	h := &RawGroupOfPicturesHeader{}
	var err error
	if h.TimeCode, err = r.U(25, "time_code", 0, (1<<25)-1); err != nil {
		return nil, err
	}
	if h.ClosedGOP, err = r.U(1, "closed_gop", 0, 1); err != nil {
		return nil, err
	}
	if h.BrokenLink, err = r.U(1, "broken_link", 0, 1); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *RawGroupOfPicturesHeader) write(w *bitcodec.Writer) error {
	if err := w.WriteU(25, "time_code", h.TimeCode, 0, (1<<25)-1); err != nil {
		return err
	}
	if err := w.WriteU(1, "closed_gop", h.ClosedGOP, 0, 1); err != nil {
		return err
	}
	return w.WriteU(1, "broken_link", h.BrokenLink, 0, 1)
}

// readSlice decodes slice()'s fixed header fields, then the optional
// extra_information_slice run, then records where the opaque
// macroblock payload begins without decoding it.
func readSlice(r *bitcodec.Reader) (*RawSlice, error) {
	s := &RawSlice{}
	var err error
	if s.Header.QuantiserScaleCode, err = r.U(5, "quantiser_scale_code", 0, 31); err != nil {
		return nil, err
	}
	for {
		extraBitSlice, err := r.U(1, "extra_bit_slice", 0, 1)
		if err != nil {
			return nil, err
		}
		if extraBitSlice == 0 {
			break
		}
		info, err := r.U(8, "extra_information_slice", 0, 255)
		if err != nil {
			return nil, err
		}
		s.Header.ExtraInformation = append(s.Header.ExtraInformation, byte(info))
	}

	payload, bitStart, err := r.OpaquePayload()
	if err != nil {
		return nil, err
	}
	s.Data = payload
	s.DataBitStart = bitStart
	return s, nil
}

// write re-encodes the header fields then resumes the payload bits
// right where OpaquePayload captured them, at whatever bit position
// the header happens to leave the writer at; only the unit's true tail
// is padded to a byte boundary, matching cbs_mpeg2_write_unit's
// bit-shifting copy rather than inserting alignment between header and
// payload.
func (s *RawSlice) write(w *bitcodec.Writer) error {
	if err := w.WriteU(5, "quantiser_scale_code", s.Header.QuantiserScaleCode, 0, 31); err != nil {
		return err
	}
	for _, info := range s.Header.ExtraInformation {
		if err := w.WriteU(1, "extra_bit_slice", 1, 0, 1); err != nil {
			return err
		}
		if err := w.WriteU(8, "extra_information_slice", uint32(info), 0, 255); err != nil {
			return err
		}
	}
	if err := w.WriteU(1, "extra_bit_slice", 0, 0, 1); err != nil {
		return err
	}
	if err := w.WriteOpaquePayload(s.Data, s.DataBitStart); err != nil {
		return err
	}
	return w.ByteAlign()
}
