package vp9

import (
	"math/bits"

	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

const superframeMarkerValue = 6

func readSuperframeIndex(ctx *cbs.Context, r *bitcodec.Reader, frames int) (*RawSuperframeIndex, error) {
	ctx.TraceHeader("Superframe Index")
	sfi := &RawSuperframeIndex{}
	var err error
	if sfi.SuperframeMarker, err = r.U(3, "superframe_marker", 0, 7); err != nil {
		return nil, err
	}
	if sfi.BytesPerFramesizeMinus1, err = r.U(2, "bytes_per_framesize_minus_1", 0, 3); err != nil {
		return nil, err
	}
	if sfi.FramesInSuperframeMinus1, err = r.U(3, "frames_in_superframe_minus_1", 0, 7); err != nil {
		return nil, err
	}

	bytesPerSize := uint8(sfi.BytesPerFramesizeMinus1 + 1)
	for i := 0; i < frames; i++ {
		size, err := r.LE(bytesPerSize, "frame_sizes[i]")
		if err != nil {
			return nil, err
		}
		sfi.FrameSizes[i] = size
	}

	// Trailer repeats the marker fields for validation purposes; any
	// mismatch against the leading copy is a corrupt superframe index,
	// caught by the caller's byte-identity check on the trailer byte.
	if _, err = r.U(3, "superframe_marker", 0, 7); err != nil {
		return nil, err
	}
	if _, err = r.U(2, "bytes_per_framesize_minus_1", 0, 3); err != nil {
		return nil, err
	}
	if _, err = r.U(3, "frames_in_superframe_minus_1", 0, 7); err != nil {
		return nil, err
	}
	return sfi, nil
}

func writeSuperframeIndex(ctx *cbs.Context, w *bitcodec.Writer, sfi *RawSuperframeIndex, frames int) error {
	ctx.TraceHeader("Superframe Index")
	if err := w.WriteU(3, "superframe_marker", sfi.SuperframeMarker, 0, 7); err != nil {
		return err
	}
	if err := w.WriteU(2, "bytes_per_framesize_minus_1", sfi.BytesPerFramesizeMinus1, 0, 3); err != nil {
		return err
	}
	if err := w.WriteU(3, "frames_in_superframe_minus_1", sfi.FramesInSuperframeMinus1, 0, 7); err != nil {
		return err
	}

	bytesPerSize := uint8(sfi.BytesPerFramesizeMinus1 + 1)
	for i := 0; i < frames; i++ {
		if err := w.WriteLE(bytesPerSize, "frame_sizes[i]", sfi.FrameSizes[i]); err != nil {
			return err
		}
	}

	if err := w.WriteU(3, "superframe_marker", sfi.SuperframeMarker, 0, 7); err != nil {
		return err
	}
	if err := w.WriteU(2, "bytes_per_framesize_minus_1", sfi.BytesPerFramesizeMinus1, 0, 3); err != nil {
		return err
	}
	return w.WriteU(3, "frames_in_superframe_minus_1", sfi.FramesInSuperframeMinus1, 0, 7)
}

// splitFragment detects a superframe trailer by its top-3-bit marker
// and slices one unit per indexed frame; with no trailer, the whole
// fragment is a single unit.
func splitFragment(ctx *cbs.Context, frag *cbs.Fragment, headerHint bool) error {
	data := frag.Data
	if len(data) == 0 {
		return cbs.Newf(cbs.InvalidData, "empty vp9 fragment")
	}

	trailer := data[len(data)-1]
	if trailer&0xE0 != 0xC0 {
		unitData := make([]byte, len(data))
		copy(unitData, data)
		frag.Units = []cbs.Unit{{Type: 0, Data: unitData}}
		return nil
	}

	bytesPerSize := int(((trailer>>3)&3)+1)
	frames := int((trailer & 7) + 1)
	indexSize := 2 + bytesPerSize*frames
	if indexSize > len(data) {
		return cbs.Newf(cbs.InvalidData, "superframe index of %d bytes larger than fragment of %d bytes", indexSize, len(data))
	}

	if data[len(data)-indexSize] != trailer {
		return cbs.Newf(cbs.InvalidData, "superframe index leading byte %#02x does not match trailer byte %#02x", data[len(data)-indexSize], trailer)
	}
	r := bitcodec.NewReader(ctx, data[len(data)-indexSize:])
	sfi, err := readSuperframeIndex(ctx, r, frames)
	if err != nil {
		return err
	}

	units := make([]cbs.Unit, 0, frames)
	pos := 0
	for i := 0; i < frames; i++ {
		size := int(sfi.FrameSizes[i])
		if pos+size+indexSize > len(data) {
			return cbs.Newf(cbs.InvalidData, "frame %d too large in superframe: %d bytes", i, size)
		}
		unitData := make([]byte, size)
		copy(unitData, data[pos:pos+size])
		units = append(units, cbs.Unit{Type: 0, Data: unitData})
		pos += size
	}
	if pos+indexSize != len(data) {
		ctx.Logf(cbs.LevelWarn, "extra padding at end of superframe: %d bytes", len(data)-(pos+indexSize))
	}
	frag.Units = units
	return nil
}

// assembleFragment copies a lone unit through verbatim, or rebuilds a
// superframe trailer indexing each unit's size.
func assembleFragment(ctx *cbs.Context, frag *cbs.Fragment) error {
	if len(frag.Units) == 0 {
		return cbs.Newf(cbs.InvalidData, "no units to assemble")
	}
	if len(frag.Units) == 1 {
		out := make([]byte, len(frag.Units[0].Data))
		copy(out, frag.Units[0].Data)
		frag.Data = out
		frag.DataBitPadding = 0
		return nil
	}
	if len(frag.Units) > maxSegments {
		return cbs.Newf(cbs.InvalidArgument, "too many frames to make superframe: %d", len(frag.Units))
	}

	max := 0
	for _, u := range frag.Units {
		if len(u.Data) > max {
			max = len(u.Data)
		}
	}
	log2Max := 0
	if max > 0 {
		log2Max = bits.Len(uint(max)) - 1
	}
	sizeLen := log2Max/8 + 1
	if sizeLen > 4 {
		return cbs.Newf(cbs.InvalidArgument, "frame too large: %d bytes", max)
	}

	sfi := &RawSuperframeIndex{
		SuperframeMarker:         superframeMarkerValue,
		BytesPerFramesizeMinus1:  uint32(sizeLen - 1),
		FramesInSuperframeMinus1: uint32(len(frag.Units) - 1),
	}
	var out []byte
	for i, u := range frag.Units {
		out = append(out, u.Data...)
		sfi.FrameSizes[i] = uint32(len(u.Data))
	}

	w := bitcodec.NewWriter(ctx)
	if err := writeSuperframeIndex(ctx, w, sfi, len(frag.Units)); err != nil {
		return err
	}
	w.Flush()
	out = append(out, w.Bytes()...)

	frag.Data = out
	frag.DataBitPadding = 0
	return nil
}
