// Package bitcodec layers the generic u(n)/ue(v)/se(v)/le(8k)/s(n)
// primitives from ITU-T H.264/H.265 and VP9's own bitstream conventions
// on top of lib/bitio, wiring in range validation and optional
// per-element tracing through a cbs.Context. A codec plug-in's read_unit
// and write_unit functions are built entirely out of Reader/Writer calls.
//
// # Dependencies
//
// lib/bitio for the bit-level mechanics, lib/cbs for the Error/Kind
// vocabulary and the tracing sink.
package bitcodec

import (
	"math/bits"
	"strconv"

	"github.com/thebagchi/go-cbs/lib/bitio"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

// Reader decodes syntax elements from a byte slice, validating each
// against its declared range and emitting a trace line through ctx when
// tracing is enabled.
type Reader struct {
	bits *bitio.BitReader
	ctx  *cbs.Context
}

// NewReader wraps data for syntax-element decoding under ctx. ctx may be
// nil only for tests that don't exercise tracing/logging.
func NewReader(ctx *cbs.Context, data []byte) *Reader {
	return &Reader{bits: bitio.NewBitReader(data), ctx: ctx}
}

// Position returns the number of bits consumed so far.
func (r *Reader) Position() uint64 {
	return r.bits.Position()
}

// BitsLeft returns the number of bits remaining in the stream.
func (r *Reader) BitsLeft() uint64 {
	return r.bits.BitsLeft()
}

func bitString(v uint32, n uint8) string {
	b := make([]byte, n)
	for i := uint8(0); i < n; i++ {
		if v&(1<<(n-1-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

func (r *Reader) trace(start uint64, name string, bitStr string, value int64) {
	if r.ctx != nil {
		r.ctx.TraceSyntaxElement(start, name, bitStr, value)
	}
}

// U reads an unsigned fixed-width field of n bits (1-32) and validates
// it falls within [lo,hi].
func (r *Reader) U(n uint8, name string, lo, hi uint32) (uint32, error) {
	start := r.bits.Position()
	v, err := r.bits.ReadBits(n)
	if err != nil {
		return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
	}
	r.trace(start, name, bitString(v, n), int64(v))
	if v < lo || v > hi {
		return 0, cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, v, lo, hi)
	}
	return v, nil
}

// MarkerBit reads a single bit that must be 1, the way H.264/H.265
// reserve alignment/presence markers.
func (r *Reader) MarkerBit() error {
	_, err := r.U(1, "marker_bit", 1, 1)
	return err
}

// UE reads an Exp-Golomb coded unsigned integer: a run of leading zero
// bits, a terminating one bit, then that many suffix bits, folded
// together as 2^leadingZeros - 1 + suffix.
func (r *Reader) UE(name string, lo, hi uint32) (uint32, error) {
	start := r.bits.Position()
	var leadingZeros uint8
	for {
		bit, err := r.bits.ReadBits(1)
		if err != nil {
			return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
		}
		if bit == 1 {
			break
		}
		leadingZeros++
		if leadingZeros > 31 {
			return 0, cbs.Newf(cbs.InvalidData, "%s: exp-golomb prefix has more than 31 zeroes", name)
		}
	}
	var suffix uint32
	if leadingZeros > 0 {
		var err error
		suffix, err = r.bits.ReadBits(leadingZeros)
		if err != nil {
			return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
		}
	}
	value := (uint32(1)<<leadingZeros - 1) + suffix

	consumed := uint8(2*leadingZeros + 1)
	bitStr := bitString(0, leadingZeros) + "1" + bitString(suffix, leadingZeros)
	r.trace(start, name, bitStr[:consumed], int64(value))

	if value < lo || value > hi {
		return 0, cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, value, lo, hi)
	}
	return value, nil
}

// SE reads a signed Exp-Golomb value, mapping the underlying ue(v) code
// k onto +/-ceil(k/2) per the even/odd convention H.264/H.265 use for
// signed syntax elements.
func (r *Reader) SE(name string, lo, hi int32) (int32, error) {
	k, err := r.UE(name, 0, 1<<31-1)
	if err != nil {
		return 0, err
	}
	value := int32((k + 1) / 2)
	if k%2 == 0 {
		value = -value
	}
	if value < lo || value > hi {
		return 0, cbs.Newf(cbs.InvalidData, "%s out of range: %d not in [%d,%d]", name, value, lo, hi)
	}
	return value, nil
}

// LE reads a little-endian unsigned integer spanning numBytes whole
// bytes (VP9's le(8*n) convention, used in its superframe index).
func (r *Reader) LE(numBytes uint8, name string) (uint32, error) {
	if numBytes < 1 || numBytes > 4 {
		return 0, cbs.Newf(cbs.InvalidArgument, "%s: le() byte count must be 1-4, got %d", name, numBytes)
	}
	start := r.bits.Position()
	var value uint32
	for i := uint8(0); i < numBytes; i++ {
		b, err := r.bits.ReadBits(8)
		if err != nil {
			return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
		}
		value |= b << (8 * i)
	}
	r.trace(start, name, bitString(value, numBytes*8), int64(value))
	return value, nil
}

// S reads VP9's sign-magnitude field: n magnitude bits followed by one
// sign bit (1 means negative), as used throughout its quantization and
// loop-filter delta syntax.
func (r *Reader) S(n uint8, name string) (int32, error) {
	start := r.bits.Position()
	magnitude, err := r.bits.ReadBits(n)
	if err != nil {
		return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
	}
	sign, err := r.bits.ReadBits(1)
	if err != nil {
		return 0, cbs.Newf(cbs.Truncated, "%s: %v", name, err)
	}
	value := int32(magnitude)
	if sign == 1 {
		value = -value
	}
	r.trace(start, name, bitString(magnitude, n)+bitString(sign, 1), int64(value))
	return value, nil
}

// ByteAlign discards bits up to the next byte boundary, the way
// trailing_bits()/byte_alignment() syntax functions do.
func (r *Reader) ByteAlign() error {
	rem := r.bits.Position() % 8
	if rem == 0 {
		return nil
	}
	_, err := r.bits.ReadBits(uint8(8 - rem))
	return err
}

// RemainingBytes returns every whole byte left in the stream, for an
// opaque payload that's copied through rather than bit-decoded (e.g. a
// frame's post-header data). The reader must be byte-aligned.
func (r *Reader) RemainingBytes() ([]byte, error) {
	n := int(r.bits.BitsLeft() / 8)
	return r.bits.ReadBytes(n)
}

// OpaquePayload captures every bit left in the stream as a trailing,
// not-bit-decoded payload, the way a coded slice's macroblock data is
// carried through unparsed. Unlike RemainingBytes this doesn't require
// byte alignment: if the reader sits mid-byte, that byte's
// already-consumed header bits are preserved verbatim at the front of
// the returned slice rather than discarded, and the bit offset at
// which real payload data begins within the first returned byte comes
// back alongside it for WriteOpaquePayload to resume from.
func (r *Reader) OpaquePayload() ([]byte, uint8, error) {
	return r.bits.RemainingBytesFromCurrentByte()
}

// MinBits returns the number of bits needed to represent v (1 for 0),
// used by WriteUE to size an Exp-Golomb code's prefix.
func MinBits(v uint32) uint8 {
	if v == 0 {
		return 1
	}
	return uint8(bits.Len32(v))
}

// FormatUint renders v as a decimal string, a small helper codec
// packages use when building trace names that embed an index
// (e.g. "ref_frame_idx[" + FormatUint(i) + "]").
func FormatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
