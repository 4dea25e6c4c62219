package mpeg2

import (
	"bytes"
	"testing"

	"github.com/thebagchi/go-cbs/lib/cbs"
)

func mustContext(t *testing.T) *cbs.Context {
	t.Helper()
	ctx, err := cbs.Init(cbs.CodecMPEG2, nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return ctx
}

func TestSplitAssembleRoundTrip(t *testing.T) {
	ctx := mustContext(t)

	input := []byte{
		0x00, 0x00, 0x01, 0xB3, 0xAA, 0xBB, // sequence header start code + 2 bytes
		0x00, 0x00, 0x01, 0x00, 0xCC, 0xDD, // picture header start code + 2 bytes
		0x00, 0x00, 0x01, 0x01, 0xEE, // slice start code + 1 byte
	}

	var split cbs.Fragment
	split.Data = input
	if err := splitFragment(ctx, &split, false); err != nil {
		t.Fatalf("splitFragment: %v", err)
	}
	if len(split.Units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(split.Units))
	}
	wantTypes := []uint32{SequenceHeader, PictureHeader, SliceMin}
	for i, want := range wantTypes {
		if split.Units[i].Type != want {
			t.Fatalf("unit %d: type = 0x%02x, want 0x%02x", i, split.Units[i].Type, want)
		}
	}

	if err := assembleFragment(ctx, &split); err != nil {
		t.Fatalf("assembleFragment: %v", err)
	}
	if !bytes.Equal(split.Data, input) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", split.Data, input)
	}
}

func TestSequenceHeaderRoundTrip(t *testing.T) {
	ctx := mustContext(t)

	h := &RawSequenceHeader{
		HorizontalSizeValue:       720,
		VerticalSizeValue:         480,
		AspectRatioInformation:    1,
		FrameRateCode:             4,
		BitRateValue:              5000,
		VBVBufferSizeValue:        112,
		ConstrainedParametersFlag: 0,
	}

	unit := &cbs.Unit{Type: SequenceHeader, Content: h}
	if err := writeUnit(ctx, unit); err != nil {
		t.Fatalf("writeUnit: %v", err)
	}

	decoded := &cbs.Unit{Type: SequenceHeader, Data: unit.Data}
	if err := readUnit(ctx, decoded); err != nil {
		t.Fatalf("readUnit: %v", err)
	}
	got, ok := decoded.Content.(*RawSequenceHeader)
	if !ok {
		t.Fatalf("content has wrong type: %T", decoded.Content)
	}
	if *got != *h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

// TestSliceNonByteAlignedPayloadRoundTrip exercises a slice whose fixed
// header (quantiser_scale_code + the extra_bit_slice terminator) ends
// 6 bits into the first payload byte rather than on a byte boundary,
// the way real macroblock data almost always starts. The two payload
// bits sharing that byte with the header must survive read-then-write
// unchanged rather than being zeroed out by a premature byte alignment.
func TestSliceNonByteAlignedPayloadRoundTrip(t *testing.T) {
	ctx := mustContext(t)

	// 0xAB = 10101 0 11: quantiser_scale_code=21, extra_bit_slice=0,
	// then two real payload bits "11" sharing the header's byte.
	// 0xCD is a second whole byte of real macroblock data.
	raw := []byte{0xAB, 0xCD}
	unit := &cbs.Unit{Type: SliceMin, Data: append([]byte{byte(SliceMin)}, raw...)}

	if err := readUnit(ctx, unit); err != nil {
		t.Fatalf("readUnit: %v", err)
	}
	s, ok := unit.Content.(*RawSlice)
	if !ok {
		t.Fatalf("content has wrong type: %T", unit.Content)
	}
	if s.Header.QuantiserScaleCode != 21 {
		t.Fatalf("quantiser_scale_code = %d, want 21", s.Header.QuantiserScaleCode)
	}
	if s.DataBitStart != 6 {
		t.Fatalf("DataBitStart = %d, want 6", s.DataBitStart)
	}
	if !bytes.Equal(s.Data, raw) {
		t.Fatalf("captured payload = %x, want %x (no bits dropped)", s.Data, raw)
	}

	if err := writeUnit(ctx, unit); err != nil {
		t.Fatalf("writeUnit: %v", err)
	}
	want := append([]byte{byte(SliceMin)}, raw...)
	if !bytes.Equal(unit.Data, want) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", unit.Data, want)
	}
}

func TestUnknownStartCodeIsFatal(t *testing.T) {
	ctx := mustContext(t)
	unit := &cbs.Unit{Type: 0xFF, Data: []byte{0xFF, 0x01, 0x02}}
	err := readUnit(ctx, unit)
	if err == nil {
		t.Fatal("expected error for unknown start code")
	}
	if kind, ok := cbs.KindOf(err); !ok || kind != cbs.Unknown {
		t.Fatalf("expected Unknown kind, got %v", err)
	}
}
