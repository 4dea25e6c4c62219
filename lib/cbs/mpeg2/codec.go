package mpeg2

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

// readUnit bit-decodes unit.Data[1:] (the bytes after the type
// identifier) into a freshly allocated Content value. User data and
// extension data are opaque to this plug-in and are copied through
// rather than decomposed.
func readUnit(ctx *cbs.Context, unit *cbs.Unit) error {
	if len(unit.Data) == 0 {
		return cbs.Newf(cbs.Truncated, "mpeg2 unit has no type byte")
	}
	ctx.TraceHeader(unitTypeName(unit.Type))
	r := bitcodec.NewReader(ctx, unit.Data[1:])

	switch {
	case unit.Type == SequenceHeader:
		h, err := readSequenceHeader(r)
		if err != nil {
			return err
		}
		unit.Content = h
	case unit.Type == PictureHeader:
		h, err := readPictureHeader(r)
		if err != nil {
			return err
		}
		unit.Content = h
	case unit.Type == GroupOfPictures:
		h, err := readGroupOfPicturesHeader(r)
		if err != nil {
			return err
		}
		unit.Content = h
	case unit.Type == UserData:
		data, err := r.RemainingBytes()
		if err != nil {
			return err
		}
		unit.Content = &RawUserData{Data: data}
	case unit.Type == ExtensionData:
		data, err := r.RemainingBytes()
		if err != nil {
			return err
		}
		unit.Content = &RawExtensionData{Data: data}
	case isSlice(unit.Type):
		s, err := readSlice(r)
		if err != nil {
			return err
		}
		unit.Content = s
	default:
		return cbs.Newf(cbs.Unknown, "unknown mpeg2 start code 0x%02x", unit.Type)
	}
	return nil
}

// writeUnit bit-encodes unit.Content back into unit.Data, re-prefixing
// the type byte dropped by readUnit.
func writeUnit(ctx *cbs.Context, unit *cbs.Unit) error {
	w := bitcodec.NewWriter(ctx)

	switch content := unit.Content.(type) {
	case *RawSequenceHeader:
		if err := content.write(w); err != nil {
			return err
		}
	case *RawPictureHeader:
		if err := content.write(w); err != nil {
			return err
		}
	case *RawGroupOfPicturesHeader:
		if err := content.write(w); err != nil {
			return err
		}
	case *RawUserData:
		if err := w.WriteRawBytes(content.Data); err != nil {
			return err
		}
	case *RawExtensionData:
		if err := w.WriteRawBytes(content.Data); err != nil {
			return err
		}
	case *RawSlice:
		if err := content.write(w); err != nil {
			return err
		}
	default:
		return cbs.Newf(cbs.Unimplemented, "mpeg2: no writer for content type %T", unit.Content)
	}

	padding := w.Flush()
	unit.Data = append([]byte{byte(unit.Type)}, w.Bytes()...)
	unit.DataBitPadding = padding
	return nil
}

func unitTypeName(unitType uint32) string {
	switch {
	case unitType == SequenceHeader:
		return "sequence_header"
	case unitType == PictureHeader:
		return "picture_header"
	case unitType == GroupOfPictures:
		return "group_of_pictures_header"
	case unitType == UserData:
		return "user_data"
	case unitType == ExtensionData:
		return "extension_data"
	case isSlice(unitType):
		return "slice"
	default:
		return "unknown"
	}
}
