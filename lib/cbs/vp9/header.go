package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

func uncompressedHeader(ctx *cbs.Context, r *bitcodec.Reader, h *RawFrameHeader) error {
	var err error
	if h.FrameMarker, err = r.U(2, "frame_marker", 0, 3); err != nil {
		return err
	}

	if h.ProfileLowBit, err = r.U(1, "profile_low_bit", 0, 1); err != nil {
		return err
	}
	if h.ProfileHighBit, err = r.U(1, "profile_high_bit", 0, 1); err != nil {
		return err
	}
	profile := (h.ProfileHighBit << 1) + h.ProfileLowBit
	if profile == 3 {
		if h.ProfileReservedZero, err = r.U(1, "profile_reserved_zero", 0, 1); err != nil {
			return err
		}
	}

	if h.ShowExistingFrame, err = r.U(1, "show_existing_frame", 0, 1); err != nil {
		return err
	}
	if h.ShowExistingFrame == 1 {
		if h.FrameToShowMapIdx, err = r.U(3, "frame_to_show_map_idx", 0, 7); err != nil {
			return err
		}
		h.HeaderSizeInBytes = 0
		h.RefreshFrameFlags = 0x00
		h.LoopFilterLevel = 0
		return nil
	}

	if h.FrameType, err = r.U(1, "frame_type", 0, 1); err != nil {
		return err
	}
	if h.ShowFrame, err = r.U(1, "show_frame", 0, 1); err != nil {
		return err
	}
	if h.ErrorResilientMode, err = r.U(1, "error_resilient_mode", 0, 1); err != nil {
		return err
	}

	if h.FrameType == 0 {
		if err = frameSyncCode(r); err != nil {
			return err
		}
		if err = colorConfig(r, h, profile); err != nil {
			return err
		}
		if err = frameSize(ctx, r, h); err != nil {
			return err
		}
		if err = renderSize(r, h); err != nil {
			return err
		}
		h.RefreshFrameFlags = 0xff
	} else {
		if h.ShowFrame == 0 {
			if h.IntraOnly, err = r.U(1, "intra_only", 0, 1); err != nil {
				return err
			}
		} else {
			h.IntraOnly = 0
		}

		if h.ErrorResilientMode == 0 {
			if h.ResetFrameContext, err = r.U(2, "reset_frame_context", 0, 3); err != nil {
				return err
			}
		} else {
			h.ResetFrameContext = 0
		}

		if h.IntraOnly == 1 {
			if err = frameSyncCode(r); err != nil {
				return err
			}
			if profile > 0 {
				if err = colorConfig(r, h, profile); err != nil {
					return err
				}
			} else {
				h.ColorSpace = 1
				h.SubsamplingX = 1
				h.SubsamplingY = 1
			}
			if h.RefreshFrameFlags, err = r.U(8, "refresh_frame_flags", 0, 0xff); err != nil {
				return err
			}
			if err = frameSize(ctx, r, h); err != nil {
				return err
			}
			if err = renderSize(r, h); err != nil {
				return err
			}
		} else {
			if h.RefreshFrameFlags, err = r.U(8, "refresh_frame_flags", 0, 0xff); err != nil {
				return err
			}
			for i := 0; i < 3; i++ {
				if h.RefFrameIdx[i], err = r.U(3, "ref_frame_idx", 0, 7); err != nil {
					return err
				}
				if h.RefFrameSignBias[i], err = r.U(1, "ref_frame_sign_bias", 0, 1); err != nil {
					return err
				}
			}
			if err = frameSizeWithRefs(ctx, r, h); err != nil {
				return err
			}
			if h.AllowHighPrecisionMV, err = r.U(1, "allow_high_precision_mv", 0, 1); err != nil {
				return err
			}
			if err = interpolationFilter(r, h); err != nil {
				return err
			}
		}
	}

	if h.ErrorResilientMode == 0 {
		if h.RefreshFrameContext, err = r.U(1, "refresh_frame_context", 0, 1); err != nil {
			return err
		}
		if h.FrameParallelDecodingMode, err = r.U(1, "frame_parallel_decoding_mode", 0, 1); err != nil {
			return err
		}
	} else {
		h.RefreshFrameContext = 0
		h.FrameParallelDecodingMode = 1
	}

	if h.FrameContextIdx, err = r.U(2, "frame_context_idx", 0, 3); err != nil {
		return err
	}

	if err = loopFilterParams(r, h); err != nil {
		return err
	}
	if err = quantizationParams(r, h); err != nil {
		return err
	}
	if err = segmentationParams(r, h); err != nil {
		return err
	}
	if err = tileInfo(ctx, r, h); err != nil {
		return err
	}

	if h.HeaderSizeInBytes, err = r.U(16, "header_size_in_bytes", 0, 0xffff); err != nil {
		return err
	}
	return nil
}

func writeUncompressedHeader(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader) error {
	if err := w.WriteU(2, "frame_marker", h.FrameMarker, 0, 3); err != nil {
		return err
	}
	if err := w.WriteU(1, "profile_low_bit", h.ProfileLowBit, 0, 1); err != nil {
		return err
	}
	if err := w.WriteU(1, "profile_high_bit", h.ProfileHighBit, 0, 1); err != nil {
		return err
	}
	profile := (h.ProfileHighBit << 1) + h.ProfileLowBit
	if profile == 3 {
		if err := w.WriteU(1, "profile_reserved_zero", h.ProfileReservedZero, 0, 1); err != nil {
			return err
		}
	}

	if err := w.WriteU(1, "show_existing_frame", h.ShowExistingFrame, 0, 1); err != nil {
		return err
	}
	if h.ShowExistingFrame == 1 {
		if err := w.WriteU(3, "frame_to_show_map_idx", h.FrameToShowMapIdx, 0, 7); err != nil {
			return err
		}
		checkInferred(ctx, "header_size_in_bytes", int64(h.HeaderSizeInBytes), 0)
		checkInferred(ctx, "refresh_frame_flags", int64(h.RefreshFrameFlags), 0x00)
		checkInferred(ctx, "loop_filter_level", int64(h.LoopFilterLevel), 0)
		return nil
	}

	if err := w.WriteU(1, "frame_type", h.FrameType, 0, 1); err != nil {
		return err
	}
	if err := w.WriteU(1, "show_frame", h.ShowFrame, 0, 1); err != nil {
		return err
	}
	if err := w.WriteU(1, "error_resilient_mode", h.ErrorResilientMode, 0, 1); err != nil {
		return err
	}

	if h.FrameType == 0 {
		if err := writeFrameSyncCode(w); err != nil {
			return err
		}
		if err := writeColorConfig(ctx, w, h, profile); err != nil {
			return err
		}
		if err := writeFrameSize(ctx, w, h); err != nil {
			return err
		}
		if err := writeRenderSize(w, h); err != nil {
			return err
		}
		checkInferred(ctx, "refresh_frame_flags", int64(h.RefreshFrameFlags), 0xff)
	} else {
		if h.ShowFrame == 0 {
			if err := w.WriteU(1, "intra_only", h.IntraOnly, 0, 1); err != nil {
				return err
			}
		} else {
			checkInferred(ctx, "intra_only", int64(h.IntraOnly), 0)
		}

		if h.ErrorResilientMode == 0 {
			if err := w.WriteU(2, "reset_frame_context", h.ResetFrameContext, 0, 3); err != nil {
				return err
			}
		} else {
			checkInferred(ctx, "reset_frame_context", int64(h.ResetFrameContext), 0)
		}

		if h.IntraOnly == 1 {
			if err := writeFrameSyncCode(w); err != nil {
				return err
			}
			if profile > 0 {
				if err := writeColorConfig(ctx, w, h, profile); err != nil {
					return err
				}
			} else {
				checkInferred(ctx, "color_space", int64(h.ColorSpace), 1)
				checkInferred(ctx, "subsampling_x", int64(h.SubsamplingX), 1)
				checkInferred(ctx, "subsampling_y", int64(h.SubsamplingY), 1)
			}
			if err := w.WriteU(8, "refresh_frame_flags", h.RefreshFrameFlags, 0, 0xff); err != nil {
				return err
			}
			if err := writeFrameSize(ctx, w, h); err != nil {
				return err
			}
			if err := writeRenderSize(w, h); err != nil {
				return err
			}
		} else {
			if err := w.WriteU(8, "refresh_frame_flags", h.RefreshFrameFlags, 0, 0xff); err != nil {
				return err
			}
			for i := 0; i < 3; i++ {
				if err := w.WriteU(3, "ref_frame_idx", h.RefFrameIdx[i], 0, 7); err != nil {
					return err
				}
				if err := w.WriteU(1, "ref_frame_sign_bias", h.RefFrameSignBias[i], 0, 1); err != nil {
					return err
				}
			}
			if err := writeFrameSizeWithRefs(ctx, w, h); err != nil {
				return err
			}
			if err := w.WriteU(1, "allow_high_precision_mv", h.AllowHighPrecisionMV, 0, 1); err != nil {
				return err
			}
			if err := writeInterpolationFilter(w, h); err != nil {
				return err
			}
		}
	}

	if h.ErrorResilientMode == 0 {
		if err := w.WriteU(1, "refresh_frame_context", h.RefreshFrameContext, 0, 1); err != nil {
			return err
		}
		if err := w.WriteU(1, "frame_parallel_decoding_mode", h.FrameParallelDecodingMode, 0, 1); err != nil {
			return err
		}
	} else {
		checkInferred(ctx, "refresh_frame_context", int64(h.RefreshFrameContext), 0)
		checkInferred(ctx, "frame_parallel_decoding_mode", int64(h.FrameParallelDecodingMode), 1)
	}

	if err := w.WriteU(2, "frame_context_idx", h.FrameContextIdx, 0, 3); err != nil {
		return err
	}

	if err := writeLoopFilterParams(w, h); err != nil {
		return err
	}
	if err := writeQuantizationParams(w, h); err != nil {
		return err
	}
	if err := writeSegmentationParams(ctx, w, h); err != nil {
		return err
	}
	if err := writeTileInfo(ctx, w, h); err != nil {
		return err
	}

	return w.WriteU(16, "header_size_in_bytes", h.HeaderSizeInBytes, 0, 0xffff)
}

// trailingBits pads to the next byte boundary with zero bits, consuming
// them on read and emitting them on write.
func trailingBits(r *bitcodec.Reader) error {
	for r.Position()%8 != 0 {
		if _, err := r.U(1, "zero_bit", 0, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeTrailingBits(w *bitcodec.Writer) error {
	for w.Position()%8 != 0 {
		if err := w.WriteU(1, "zero_bit", 0, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

func readFrame(ctx *cbs.Context, r *bitcodec.Reader) (*RawFrame, error) {
	ctx.TraceHeader("Frame")
	h := &RawFrameHeader{}
	if err := uncompressedHeader(ctx, r, h); err != nil {
		return nil, err
	}
	if err := trailingBits(r); err != nil {
		return nil, err
	}
	data, err := r.RemainingBytes()
	if err != nil {
		return nil, err
	}
	return &RawFrame{Header: *h, Data: data}, nil
}

func writeFrame(ctx *cbs.Context, w *bitcodec.Writer, frame *RawFrame) error {
	ctx.TraceHeader("Frame")
	if err := writeUncompressedHeader(ctx, w, &frame.Header); err != nil {
		return err
	}
	if err := writeTrailingBits(w); err != nil {
		return err
	}
	return w.WriteRawBytes(frame.Data)
}
