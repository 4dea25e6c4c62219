package bitio

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewBitWriter(0)
	if err := w.WriteBits(3, 5); err != nil {
		t.Fatalf("WriteBits(3,5) failed: %v", err)
	}
	if err := w.WriteBits(13, 0x1abc&0x1fff); err != nil {
		t.Fatalf("WriteBits(13,...) failed: %v", err)
	}
	if err := w.WriteBits32(0xdeadbeef); err != nil {
		t.Fatalf("WriteBits32 failed: %v", err)
	}
	padding := w.Flush()
	if padding != 0 {
		t.Fatalf("expected byte-aligned flush, got %d bits padding", padding)
	}

	r := NewBitReader(w.Bytes())
	v, err := r.ReadBits(3)
	if err != nil || v != 5 {
		t.Fatalf("ReadBits(3) = %d, %v; want 5, nil", v, err)
	}
	v, err = r.ReadBits(13)
	if err != nil || v != 0x1abc&0x1fff {
		t.Fatalf("ReadBits(13) = %d, %v; want %d, nil", v, err, 0x1abc&0x1fff)
	}
	v, err = r.ReadBits(32)
	if err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadBits(32) = %#x, %v; want 0xdeadbeef, nil", v, err)
	}
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewBitReader([]byte{0xf0})
	peeked, err := r.PeekBits(4)
	if err != nil || peeked != 0xf {
		t.Fatalf("PeekBits(4) = %d, %v; want 15, nil", peeked, err)
	}
	if r.Position() != 0 {
		t.Fatalf("Position after Peek = %d, want 0", r.Position())
	}
	read, err := r.ReadBits(4)
	if err != nil || read != 0xf {
		t.Fatalf("ReadBits(4) after Peek = %d, %v; want 15, nil", read, err)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewBitReader([]byte{0x00})
	if _, err := r.ReadBits(9); err == nil {
		t.Fatalf("expected truncated error reading 9 bits from 1 byte")
	}
}

func TestWriterNoSpace(t *testing.T) {
	w := NewBitWriter(4)
	if err := w.WriteBits(4, 0xf); err != nil {
		t.Fatalf("WriteBits within capacity failed: %v", err)
	}
	if err := w.WriteBits(1, 1); err == nil {
		t.Fatalf("expected no-space error past capacity")
	}
}

func TestBitsLeftAndPosition(t *testing.T) {
	r := NewBitReader([]byte{0xff, 0xff})
	if r.BitsLeft() != 16 {
		t.Fatalf("BitsLeft = %d, want 16", r.BitsLeft())
	}
	if _, err := r.ReadBits(5); err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if r.Position() != 5 || r.BitsLeft() != 11 {
		t.Fatalf("Position/BitsLeft = %d/%d, want 5/11", r.Position(), r.BitsLeft())
	}
}

func TestWriteBytesReadBytesRoundTrip(t *testing.T) {
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	w := NewBitWriter(0)
	if err := w.WriteBits(8, 0xaa); err != nil {
		t.Fatalf("WriteBits failed: %v", err)
	}
	if err := w.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	w.Flush()

	r := NewBitReader(w.Bytes())
	if _, err := r.ReadBits(8); err != nil {
		t.Fatalf("ReadBits(8) failed: %v", err)
	}
	got, err := r.ReadBytes(len(payload))
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], payload[i])
		}
	}
}

func TestReadBytesRequiresByteAlignment(t *testing.T) {
	r := NewBitReader([]byte{0xff, 0xff})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if _, err := r.ReadBytes(1); err == nil {
		t.Fatalf("expected error reading bytes from a non-byte-aligned position")
	}
}

func TestWriteBytesLargePayloadDoesNotOverflowCapCheck(t *testing.T) {
	// A payload over 31 bytes once caught an earlier uint8-cast bug in
	// the writer's space check (len(b)*8 wrapping mod 256).
	payload := make([]byte, 64)
	w := NewBitWriter(0)
	if err := w.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes(64 bytes) failed: %v", err)
	}
	if len(w.Bytes()) != 64 {
		t.Fatalf("expected 64 bytes written, got %d", len(w.Bytes()))
	}
}

func TestUnalignedFlushPadsWithZero(t *testing.T) {
	w := NewBitWriter(0)
	if err := w.WriteBits(3, 0x5); err != nil {
		t.Fatalf("WriteBits failed: %v", err)
	}
	padding := w.Flush()
	if padding != 5 {
		t.Fatalf("Flush padding = %d, want 5", padding)
	}
	if len(w.Bytes()) != 1 {
		t.Fatalf("expected 1 byte after flush, got %d", len(w.Bytes()))
	}
}
