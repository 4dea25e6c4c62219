package mpeg2

// RawSequenceHeader is ISO/IEC 13818-2 sequence_header(), the unit
// carried under SequenceHeader (0xB3).
type RawSequenceHeader struct {
	HorizontalSizeValue       uint32
	VerticalSizeValue         uint32
	AspectRatioInformation    uint32
	FrameRateCode             uint32
	BitRateValue              uint32
	VBVBufferSizeValue        uint32
	ConstrainedParametersFlag uint32

	LoadIntraQuantiserMatrix    uint32
	IntraQuantiserMatrix        [64]uint32
	LoadNonIntraQuantiserMatrix uint32
	NonIntraQuantiserMatrix     [64]uint32
}

// RawPictureHeader is picture_header(), carried under PictureHeader
// (0x00).
type RawPictureHeader struct {
	TemporalReference uint32
	PictureCodingType uint32
	VBVDelay          uint32
}

// RawGroupOfPicturesHeader is group_of_pictures_header(), carried under
// GroupOfPictures (0xB8).
type RawGroupOfPicturesHeader struct {
	TimeCode   uint32
	ClosedGOP  uint32
	BrokenLink uint32
}

// RawUserData and RawExtensionData carry their start code's remaining
// bytes opaquely; the syntax beyond the start code is either
// application-defined (user_data) or not decomposed by this plug-in
// (extension_data's sub-types).
type RawUserData struct {
	Data []byte
}

type RawExtensionData struct {
	Data []byte
}

// RawSliceHeader is the fixed-field prefix of slice(), before its
// opaque macroblock payload.
type RawSliceHeader struct {
	QuantiserScaleCode uint32
	ExtraInformation   []byte
}

// RawSlice is a decoded slice unit: its fixed header fields plus the
// remaining bitstream, copied through verbatim because this plug-in
// does not decompose macroblock-level syntax. DataBitStart records how
// many bits of Data[0] still belong to the header, since the payload
// need not start on a byte boundary.
type RawSlice struct {
	Header       RawSliceHeader
	Data         []byte
	DataBitStart uint8
}
