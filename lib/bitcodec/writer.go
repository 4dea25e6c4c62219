package bitcodec

import (
	"github.com/thebagchi/go-cbs/lib/bitio"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

// Writer encodes syntax elements into a growing byte buffer, validating
// each against its declared range before any bits are committed and
// emitting a trace line through ctx when tracing is enabled.
type Writer struct {
	bits *bitio.BitWriter
	ctx  *cbs.Context
}

// NewWriter creates a Writer with an unbounded backing buffer.
func NewWriter(ctx *cbs.Context) *Writer {
	return &Writer{bits: bitio.NewBitWriter(0), ctx: ctx}
}

// Position returns the number of bits written so far.
func (w *Writer) Position() uint64 {
	return w.bits.Position()
}

func (w *Writer) trace(start uint64, name string, bitStr string, value int64) {
	if w.ctx != nil {
		w.ctx.TraceSyntaxElement(start, name, bitStr, value)
	}
}

// WriteU writes an unsigned fixed-width field of n bits (1-32) after
// validating it falls within [lo,hi].
func (w *Writer) WriteU(n uint8, name string, v, lo, hi uint32) error {
	if v < lo || v > hi {
		return cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, v, lo, hi)
	}
	start := w.bits.Position()
	if err := w.bits.WriteBits(n, v); err != nil {
		return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
	}
	w.trace(start, name, bitString(v, n), int64(v))
	return nil
}

// WriteMarkerBit writes a single 1 bit.
func (w *Writer) WriteMarkerBit() error {
	return w.WriteU(1, "marker_bit", 1, 1, 1)
}

// WriteUE writes v as an Exp-Golomb coded unsigned integer after
// validating it falls within [lo,hi].
func (w *Writer) WriteUE(name string, v, lo, hi uint32) error {
	if v < lo || v > hi {
		return cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, v, lo, hi)
	}
	if v == 1<<32-1 {
		return cbs.Newf(cbs.InvalidArgument, "%s: ue(v) cannot encode UINT32_MAX", name)
	}
	start := w.bits.Position()
	codeNum := v + 1
	leadingZeros := MinBits(codeNum) - 1

	if leadingZeros > 0 {
		if err := w.bits.WriteBits(leadingZeros, 0); err != nil {
			return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
		}
	}
	if err := w.bits.WriteBits(leadingZeros+1, codeNum); err != nil {
		return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
	}
	suffix := codeNum - (uint32(1) << leadingZeros)
	w.trace(start, name, bitString(0, leadingZeros)+"1"+bitString(suffix, leadingZeros), int64(v))
	return nil
}

// WriteSE writes a signed Exp-Golomb value using H.264/H.265's
// even/odd ue(v) mapping.
func (w *Writer) WriteSE(name string, v, lo, hi int32) error {
	if v < lo || v > hi {
		return cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, v, lo, hi)
	}
	var k uint32
	if v > 0 {
		k = uint32(2*v - 1)
	} else {
		k = uint32(-2 * v)
	}
	return w.WriteUE(name, k, 0, 1<<31-1)
}

// WriteLE writes v as a little-endian integer spanning numBytes whole
// bytes.
func (w *Writer) WriteLE(numBytes uint8, name string, v uint32) error {
	if numBytes < 1 || numBytes > 4 {
		return cbs.Newf(cbs.InvalidArgument, "%s: le() byte count must be 1-4, got %d", name, numBytes)
	}
	start := w.bits.Position()
	for i := uint8(0); i < numBytes; i++ {
		b := (v >> (8 * i)) & 0xff
		if err := w.bits.WriteBits(8, b); err != nil {
			return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
		}
	}
	w.trace(start, name, bitString(v, numBytes*8), int64(v))
	return nil
}

// WriteS writes VP9's sign-magnitude encoding: n magnitude bits
// followed by one sign bit.
func (w *Writer) WriteS(n uint8, name string, v int32) error {
	start := w.bits.Position()
	magnitude := uint32(v)
	sign := uint32(0)
	if v < 0 {
		magnitude = uint32(-v)
		sign = 1
	}
	if err := w.bits.WriteBits(n, magnitude); err != nil {
		return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
	}
	if err := w.bits.WriteBits(1, sign); err != nil {
		return cbs.Newf(cbs.NoSpace, "%s: %v", name, err)
	}
	w.trace(start, name, bitString(magnitude, n)+bitString(sign, 1), int64(v))
	return nil
}

// ByteAlign pads with zero bits up to the next byte boundary.
func (w *Writer) ByteAlign() error {
	rem := w.bits.Position() % 8
	if rem == 0 {
		return nil
	}
	return w.bits.WriteBits(uint8(8-rem), 0)
}

// WriteRawBytes appends b verbatim once prior bit fields have been
// aligned, for opaque payload copy-through.
func (w *Writer) WriteRawBytes(b []byte) error {
	return w.bits.WriteBytes(b)
}

// WriteOpaquePayload writes data captured by Reader.OpaquePayload back
// out, skipping its first bitStart bits (the header tail OpaquePayload
// preserved verbatim) and resuming at the writer's current position
// whether or not that's byte-aligned, mirroring how the bitstream
// originally continued straight from the header into the payload with
// no inserted alignment. Callers still need a final ByteAlign to pad
// the unit's true tail.
func (w *Writer) WriteOpaquePayload(data []byte, bitStart uint8) error {
	if err := w.bits.WriteBitsFromOffset(data, bitStart); err != nil {
		return cbs.Newf(cbs.NoSpace, "opaque payload: %v", err)
	}
	return nil
}

// Flush pads the final incomplete byte with zeros and returns the
// padding bit count (0-7), matching Fragment.DataBitPadding /
// Unit.DataBitPadding.
func (w *Writer) Flush() uint8 {
	return w.bits.Flush()
}

// Bytes returns the written bytes. Call Flush first.
func (w *Writer) Bytes() []byte {
	return w.bits.Bytes()
}
