package cbs

// CodecID identifies a codec family, matching upstream multimedia
// framework conventions closely enough that callers can map their own
// codec enum onto it. Only MPEG2 and VP9 ship a plug-in in this module;
// H264/H265 are reserved identifiers for plug-ins registered elsewhere
// (extensibility is entirely through RegisterType, no core code change
// needed).
type CodecID int

const (
	CodecMPEG2 CodecID = iota + 1
	CodecVP9
	CodecH264
	CodecH265
)

func (c CodecID) String() string {
	switch c {
	case CodecMPEG2:
		return "MPEG-2 video"
	case CodecVP9:
		return "VP9"
	case CodecH264:
		return "H.264"
	case CodecH265:
		return "H.265"
	default:
		return "unknown codec"
	}
}

// Type is the immutable, process-wide vtable a codec plug-in supplies.
// A Type value is never mutated after registration and may be shared
// across contexts and goroutines freely (§5).
type Type struct {
	CodecID CodecID

	// NewPriv constructs the codec-private state threaded through a
	// Context's lifetime (e.g. VP9's derived mi_cols/sb64_rows). May be
	// nil for codecs with no cross-unit state.
	NewPriv func() any

	// SplitFragment slices frag.Data into frag.Units by the codec's own
	// framing rules. Each resulting unit has Data and Type set and
	// Content unset. Implementations must not retain frag.Data beyond
	// the call; units own their bytes by copy.
	SplitFragment func(ctx *Context, frag *Fragment, headerHint bool) error

	// ReadUnit bit-decodes unit.Data into a freshly allocated
	// unit.Content.
	ReadUnit func(ctx *Context, unit *Unit) error

	// WriteUnit bit-encodes unit.Content into a freshly allocated
	// unit.Data, updating DataBitPadding if the result isn't
	// byte-aligned.
	WriteUnit func(ctx *Context, unit *Unit) error

	// AssembleFragment concatenates unit Data arrays with whatever
	// codec-level framing is required into frag.Data.
	AssembleFragment func(ctx *Context, frag *Fragment) error

	// FreeUnit releases a unit's Content, when owned. May be nil if
	// Content never needs explicit release.
	FreeUnit func(unit *Unit)

	// Close releases codec-private state beyond what garbage
	// collection reclaims on its own. May be nil.
	Close func(ctx *Context)
}

var registry = map[CodecID]*Type{}

// RegisterType adds a codec plug-in to the registry. Codec packages call
// this from an init() func, generalizing the source's static
// cbs_type_table[] into something open for extension.
func RegisterType(t *Type) {
	registry[t.CodecID] = t
}

// lookupType returns the registered plug-in for id, or nil.
func lookupType(id CodecID) *Type {
	return registry[id]
}
