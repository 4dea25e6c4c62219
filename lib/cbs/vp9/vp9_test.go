package vp9

import (
	"bytes"
	"testing"

	"github.com/thebagchi/go-cbs/lib/cbs"
)

func mustContext(t *testing.T) *cbs.Context {
	t.Helper()
	ctx, err := cbs.Init(cbs.CodecVP9, nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return ctx
}

func TestSingleUnitSplitAssemble(t *testing.T) {
	ctx := mustContext(t)
	input := []byte{0x01, 0x02, 0x03, 0x04}

	var frag cbs.Fragment
	frag.Data = input
	if err := splitFragment(ctx, &frag, false); err != nil {
		t.Fatalf("splitFragment: %v", err)
	}
	if len(frag.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(frag.Units))
	}
	if err := assembleFragment(ctx, &frag); err != nil {
		t.Fatalf("assembleFragment: %v", err)
	}
	if !bytes.Equal(frag.Data, input) {
		t.Fatalf("round trip mismatch: got %x, want %x", frag.Data, input)
	}
}

func TestSuperframeSplitAssembleRoundTrip(t *testing.T) {
	ctx := mustContext(t)

	frame0 := []byte{0xAA, 0xBB, 0xCC}
	frame1 := []byte{0xDD, 0xEE}

	sizeLen := 1
	trailerByte := byte(0xC0) | byte((sizeLen-1)<<3) | byte(2-1)

	var input []byte
	input = append(input, frame0...)
	input = append(input, frame1...)
	input = append(input, trailerByte, byte(len(frame0)), byte(len(frame1)), trailerByte)

	var frag cbs.Fragment
	frag.Data = input
	if err := splitFragment(ctx, &frag, false); err != nil {
		t.Fatalf("splitFragment: %v", err)
	}
	if len(frag.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(frag.Units))
	}
	if !bytes.Equal(frag.Units[0].Data, frame0) {
		t.Fatalf("unit 0 mismatch: got %x, want %x", frag.Units[0].Data, frame0)
	}
	if !bytes.Equal(frag.Units[1].Data, frame1) {
		t.Fatalf("unit 1 mismatch: got %x, want %x", frag.Units[1].Data, frame1)
	}

	if err := assembleFragment(ctx, &frag); err != nil {
		t.Fatalf("assembleFragment: %v", err)
	}
	if !bytes.Equal(frag.Data, input) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", frag.Data, input)
	}
}

func TestTileColsLog2Bounds(t *testing.T) {
	// 1920-wide frame: mi_cols = (1919+8)>>3 = 240, sb64_cols = (240+7)>>3 = 30.
	min, max := tileColsLog2Bounds(30)
	if min != 0 {
		t.Fatalf("min = %d, want 0", min)
	}
	if max != 2 {
		t.Fatalf("max = %d, want 2", max)
	}
}

func TestTooManyFramesForSuperframe(t *testing.T) {
	ctx := mustContext(t)
	frag := cbs.Fragment{}
	for i := 0; i < 9; i++ {
		frag.Units = append(frag.Units, cbs.Unit{Data: []byte{byte(i)}})
	}
	if err := assembleFragment(ctx, &frag); err == nil {
		t.Fatal("expected error for more than 8 frames")
	}
}
