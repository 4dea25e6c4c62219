package cbs

import (
	"errors"
	"fmt"
)

// Kind classifies the errors the core can raise, per the error-handling
// design: primitives and the driver bubble these up unchanged except
// that read_fragment_content downgrades Unimplemented to a logged
// warning during read.
type Kind int

const (
	// InvalidArgument: caller-supplied position out of range, wrong
	// mode, or an impossible configuration (too many frames in a
	// superframe, etc).
	InvalidArgument Kind = iota
	// InvalidData: the bitstream contains a value violating a syntax
	// constraint - range check failure, marker-bit mismatch, overlong
	// Golomb prefix, frame sync mismatch, truncated unit.
	InvalidData
	// Truncated: the bit reader ran past the end of the buffer.
	Truncated
	// NoSpace: the bit writer could not fit the requested bits.
	NoSpace
	// OutOfMemory: an allocation failed.
	OutOfMemory
	// Unimplemented: the unit type is recognized but the plug-in has
	// no read or write support for it.
	Unimplemented
	// Unknown: the start code or unit type is not recognized at all.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidData:
		return "InvalidData"
	case Truncated:
		return "Truncated"
	case NoSpace:
		return "NoSpace"
	case OutOfMemory:
		return "OutOfMemory"
	case Unimplemented:
		return "Unimplemented"
	case Unknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every core operation returns on
// failure. Kind lets callers branch with errors.Is against the
// sentinels below without string-matching messages.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cbs: %s: %s", e.Kind, e.Msg)
}

// Is supports errors.Is(err, ErrInvalidData) and friends by comparing
// Kind rather than identity, since each call site constructs its own
// *Error value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks against a Kind without a message.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument, Msg: "invalid argument"}
	ErrInvalidData     = &Error{Kind: InvalidData, Msg: "invalid data"}
	ErrTruncated       = &Error{Kind: Truncated, Msg: "truncated"}
	ErrNoSpace         = &Error{Kind: NoSpace, Msg: "no space"}
	ErrOutOfMemory     = &Error{Kind: OutOfMemory, Msg: "out of memory"}
	ErrUnimplemented   = &Error{Kind: Unimplemented, Msg: "unimplemented"}
	ErrUnknown         = &Error{Kind: Unknown, Msg: "unknown"}
)

// KindOf extracts the Kind of err if it is (or wraps) a *Error, and
// false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
