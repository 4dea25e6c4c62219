// Package mpeg2 is a codec plug-in for ISO/IEC 13818-2 (MPEG-2 video)
// elementary streams: a start-code-framed bitstream, split by scanning
// for the three-byte prefix 00 00 01 followed by a one-byte start-code
// identifier that becomes the resulting unit's type.
package mpeg2

import (
	"github.com/thebagchi/go-cbs/lib/cbs"
)

// Unit type constants, matching the one-byte start-code identifier that
// follows the 00 00 01 prefix.
const (
	PictureHeader   uint32 = 0x00
	SliceMin        uint32 = 0x01
	SliceMax        uint32 = 0xAF
	UserData        uint32 = 0xB2
	SequenceHeader  uint32 = 0xB3
	ExtensionData   uint32 = 0xB5
	GroupOfPictures uint32 = 0xB8
)

func isSlice(unitType uint32) bool {
	return unitType >= SliceMin && unitType <= SliceMax
}

var startCodePrefix = [3]byte{0x00, 0x00, 0x01}

func init() {
	cbs.RegisterType(&Type)
}

// Type is the registered vtable for CodecMPEG2.
var Type = cbs.Type{
	CodecID:          cbs.CodecMPEG2,
	SplitFragment:    splitFragment,
	ReadUnit:         readUnit,
	WriteUnit:        writeUnit,
	AssembleFragment: assembleFragment,
	FreeUnit:         freeUnit,
}

// splitFragment scans frag.Data for every start-code occurrence and
// slices one unit per occurrence; each unit's Data begins at the
// one-byte type identifier (inclusive) and runs to just before the next
// prefix, or the end of the buffer for the last unit. Bytes preceding
// the first start code (if any) are discarded, mirroring the source's
// assumption that a fragment always begins aligned to a start code.
func splitFragment(ctx *cbs.Context, frag *cbs.Fragment, headerHint bool) error {
	data := frag.Data
	var starts []int
	for i := 0; i+2 < len(data); i++ {
		if data[i] == startCodePrefix[0] && data[i+1] == startCodePrefix[1] && data[i+2] == startCodePrefix[2] {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return cbs.Newf(cbs.InvalidData, "no start code found in fragment of %d bytes", len(data))
	}

	units := make([]cbs.Unit, 0, len(starts))
	for i, s := range starts {
		typeOffset := s + 3
		if typeOffset >= len(data) {
			return cbs.Newf(cbs.Truncated, "start code at byte %d has no type byte", s)
		}
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		unitData := make([]byte, end-typeOffset)
		copy(unitData, data[typeOffset:end])
		units = append(units, cbs.Unit{
			Type: uint32(unitData[0]),
			Data: unitData,
		})
	}
	frag.Units = units
	ctx.Logf(cbs.LevelDebug, "mpeg2: split fragment into %d units", len(units))
	return nil
}

// assembleFragment re-inserts the 00 00 01 prefix ahead of each unit's
// Data and concatenates the result into frag.Data.
func assembleFragment(ctx *cbs.Context, frag *cbs.Fragment) error {
	size := 0
	for _, u := range frag.Units {
		size += 3 + len(u.Data)
	}
	out := make([]byte, 0, size)
	for _, u := range frag.Units {
		out = append(out, startCodePrefix[:]...)
		out = append(out, u.Data...)
	}
	frag.Data = out
	frag.DataBitPadding = 0
	return nil
}

func freeUnit(unit *cbs.Unit) {
	switch content := unit.Content.(type) {
	case *RawSlice:
		content.Data = nil
	}
}
