package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

func init() {
	cbs.RegisterType(&Type)
}

// Type is the registered vtable for CodecVP9.
var Type = cbs.Type{
	CodecID:          cbs.CodecVP9,
	NewPriv:          func() any { return &privData{} },
	SplitFragment:    splitFragment,
	ReadUnit:         readUnit,
	WriteUnit:        writeUnit,
	AssembleFragment: assembleFragment,
	FreeUnit:         freeUnit,
}

func readUnit(ctx *cbs.Context, unit *cbs.Unit) error {
	r := bitcodec.NewReader(ctx, unit.Data)
	frame, err := readFrame(ctx, r)
	if err != nil {
		return err
	}
	unit.Content = frame
	return nil
}

func writeUnit(ctx *cbs.Context, unit *cbs.Unit) error {
	frame, ok := unit.Content.(*RawFrame)
	if !ok {
		return cbs.Newf(cbs.Unimplemented, "vp9: no writer for content type %T", unit.Content)
	}
	w := bitcodec.NewWriter(ctx)
	if err := writeFrame(ctx, w, frame); err != nil {
		return err
	}
	padding := w.Flush()
	if padding != 0 {
		return cbs.Newf(cbs.InvalidData, "frame left %d unaligned trailing bits after trailing_bits()", padding)
	}
	unit.Data = w.Bytes()
	unit.DataBitPadding = 0
	return nil
}

func freeUnit(unit *cbs.Unit) {
	if frame, ok := unit.Content.(*RawFrame); ok {
		frame.Data = nil
	}
}
