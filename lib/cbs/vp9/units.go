// Package vp9 is a codec plug-in for the VP9 bitstream's superframe
// convention: one or more whole-frame units optionally bundled behind
// a trailer that indexes each frame's size so a demuxer can hand a
// decoder one coded frame at a time.
package vp9

const (
	maxSegments     = 8
	segLvlMax       = 4
	minTileWidthB64 = 4
	maxTileWidthB64 = 64
)

// RawColorConfig mirrors VP9RawColorConfig: the color-metadata fields
// that color_config() reads, available standalone for callers that want
// just the color metadata without the rest of the frame header.
type RawColorConfig struct {
	TenOrTwelveBit uint32
	ColorSpace     uint32
	ColorRange     uint32
	SubsamplingX   uint32
	SubsamplingY   uint32
}

// ColorConfig projects the color-metadata subset out of a decoded
// header.
func (h *RawFrameHeader) ColorConfig() RawColorConfig {
	return RawColorConfig{
		TenOrTwelveBit: h.TenOrTwelveBit,
		ColorSpace:     h.ColorSpace,
		ColorRange:     h.ColorRange,
		SubsamplingX:   h.SubsamplingX,
		SubsamplingY:   h.SubsamplingY,
	}
}

// RawFrameHeader is VP9's uncompressed_header(), field for field.
type RawFrameHeader struct {
	FrameMarker         uint32
	ProfileLowBit       uint32
	ProfileHighBit      uint32
	ProfileReservedZero uint32

	ShowExistingFrame uint32
	FrameToShowMapIdx uint32

	FrameType          uint32
	ShowFrame          uint32
	ErrorResilientMode uint32

	TenOrTwelveBit          uint32
	ColorSpace              uint32
	ColorRange              uint32
	SubsamplingX            uint32
	SubsamplingY            uint32
	ColorConfigReservedZero uint32

	RefreshFrameFlags uint32

	IntraOnly         uint32
	ResetFrameContext uint32

	RefFrameIdx      [3]uint32
	RefFrameSignBias [3]uint32

	AllowHighPrecisionMV uint32

	RefreshFrameContext       uint32
	FrameParallelDecodingMode uint32

	FrameContextIdx uint32

	FoundRef                    [3]uint32
	FrameWidthMinus1            uint32
	FrameHeightMinus1           uint32
	RenderAndFrameSizeDifferent uint32
	RenderWidthMinus1           uint32
	RenderHeightMinus1          uint32

	IsFilterSwitchable         uint32
	RawInterpolationFilterType uint32

	LoopFilterLevel        uint32
	LoopFilterSharpness    uint32
	LoopFilterDeltaEnabled uint32
	LoopFilterDeltaUpdate  uint32
	UpdateRefDelta         [4]uint32
	LoopFilterRefDeltas    [4]int32
	UpdateModeDelta        [2]uint32
	LoopFilterModeDeltas   [2]int32

	BaseQIdx   uint32
	DeltaQYDc  int32
	DeltaQUVDc int32
	DeltaQUVAc int32

	SegmentationEnabled          uint32
	SegmentationUpdateMap        uint32
	SegmentationTreeProbs        [7]uint32
	SegmentationTemporalUpdate   uint32
	SegmentationPredProb         [3]uint32
	SegmentationUpdateData       uint32
	SegmentationAbsOrDeltaUpdate uint32
	FeatureEnabled               [maxSegments][segLvlMax]uint32
	FeatureValue                 [maxSegments][segLvlMax]uint32
	FeatureSign                  [maxSegments][segLvlMax]uint32

	TileColsLog2 uint32
	TileRowsLog2 uint32

	HeaderSizeInBytes uint32
}

// RawFrame is one superframe member: its uncompressed header, trailing
// alignment bits, and the opaque compressed payload (tile data) that
// follows, copied through rather than decoded. DataBitStart is always 0
// in practice since trailing_bits() always restores byte alignment, but
// is kept for symmetry with the mpeg2 plug-in's opaque-payload shape.
type RawFrame struct {
	Header       RawFrameHeader
	Data         []byte
	DataBitStart uint8
}

// RawSuperframeIndex is the trailer that follows a bundle of whole
// VP9 frames: a 2-byte-ish marker pair bracketing N little-endian frame
// sizes.
type RawSuperframeIndex struct {
	SuperframeMarker         uint32
	BytesPerFramesizeMinus1  uint32
	FramesInSuperframeMinus1 uint32
	FrameSizes               [maxSegments]uint32
}

// privData is the codec-private state threaded through a Context:
// frame_size()'s derived macroblock/superblock grid dimensions, needed
// by tile_info()'s clamp computation.
type privData struct {
	MiCols   uint16
	MiRows   uint16
	SB64Cols uint16
	SB64Rows uint16
}
