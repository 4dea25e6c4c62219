package cbs

import (
	"fmt"

	"github.com/google/uuid"
)

// Context is a per-codec decoding context: the codec vtable, codec-
// private state, the trace switch, an optional decompose allow-list,
// and a logging sink. A Context is reusable across many fragments but
// is not thread-safe (§3, §5); distinct contexts on distinct goroutines
// need no synchronization as long as they share no Fragment.
type Context struct {
	ID uuid.UUID

	codec *Type
	priv  any

	traceEnable bool
	traceLevel  LogLevel

	decompose map[uint32]bool

	logger Logger
}

// Init creates a Context bound to the codec registered under id. Mirrors
// ff_cbs_init: looks the type up in the registry, allocates its private
// state, and leaves tracing off.
func Init(id CodecID, logger Logger) (*Context, error) {
	t := lookupType(id)
	if t == nil {
		return nil, Newf(InvalidArgument, "no codec plug-in registered for %s", id)
	}
	if logger == nil {
		logger = defaultLogger{}
	}
	ctx := &Context{
		ID:     uuid.New(),
		codec:  t,
		logger: logger,
	}
	if t.NewPriv != nil {
		ctx.priv = t.NewPriv()
	}
	return ctx, nil
}

// Close releases codec-private state beyond GC's reach.
func (ctx *Context) Close() {
	if ctx.codec.Close != nil {
		ctx.codec.Close(ctx)
	}
}

// Priv returns the codec-private state created by Type.NewPriv, for use
// by the owning plug-in's own functions. Callers outside the owning
// plug-in package have no business calling this.
func (ctx *Context) Priv() any {
	return ctx.priv
}

// CodecID returns the codec this context was initialized for.
func (ctx *Context) CodecID() CodecID {
	return ctx.codec.CodecID
}

// SetTrace toggles syntax-element tracing and its verbosity. Enabling
// trace must never alter decoded values or byte output (§4.8); it is
// purely an observability concern layered on top of the same read/write
// calls.
func (ctx *Context) SetTrace(enable bool, level LogLevel) {
	ctx.traceEnable = enable
	ctx.traceLevel = level
}

// TraceEnabled reports whether syntax-element tracing is active.
func (ctx *Context) TraceEnabled() bool {
	return ctx.traceEnable
}

// SetDecompose restricts read_unit decomposition to the given unit
// types; nil (the default) decomposes every type the plug-in supports.
func (ctx *Context) SetDecompose(types []uint32) {
	if types == nil {
		ctx.decompose = nil
		return
	}
	m := make(map[uint32]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	ctx.decompose = m
}

func (ctx *Context) shouldDecompose(unitType uint32) bool {
	if ctx.decompose == nil {
		return true
	}
	return ctx.decompose[unitType]
}

// Logf routes a formatted message to the context's logging sink,
// prefixed with the context's session id so a caller running several
// contexts concurrently can demultiplex their logs.
func (ctx *Context) Logf(level LogLevel, format string, args ...any) {
	ctx.logger.Log(level, fmt.Sprintf("[ctx=%s] %s", ctx.ID, fmt.Sprintf(format, args...)))
}

// TraceHeader prints a name line marking the start of a syntactic
// structure, when tracing is enabled.
func (ctx *Context) TraceHeader(name string) {
	if !ctx.traceEnable {
		return
	}
	ctx.Logf(ctx.traceLevel, "%s", name)
}

// TraceSyntaxElement prints one line per primitive read or written:
// starting bit position, element name, the bits consumed rendered as
// '0'/'1', and the decoded signed value. The bits column right-aligns
// once name+bits exceeds 60 columns, else name is padded to column 61,
// matching §4.2's formatting rule.
func (ctx *Context) TraceSyntaxElement(position uint64, name string, bits string, value int64) {
	if !ctx.traceEnable {
		return
	}
	var pad int
	if len(name)+len(bits) > 60 {
		pad = len(bits) + 2
	} else {
		pad = 61 - len(name)
	}
	ctx.Logf(ctx.traceLevel, "%-10d  %s%*s = %d", position, name, pad, bits, value)
}

// freeUnit invokes the codec's FreeUnit hook when the unit owns its
// content, then clears the unit's data fields. Unlike the source's
// MPEG-2 plug-in (a no-op, Open Question 1), every plug-in registered
// here frees per-type content properly; Go's GC reclaims what's left
// once Content is nil'd, but FreeUnit still runs first so a plug-in
// holding non-GC resources (e.g. pooled buffers) gets a chance to
// release them.
func (ctx *Context) freeUnit(unit *Unit) {
	if unit.Content != nil && !unit.ContentExternal && ctx.codec.FreeUnit != nil {
		ctx.codec.FreeUnit(unit)
	}
	unit.Content = nil
	unit.Data = nil
	unit.DataBitPadding = 0
}
