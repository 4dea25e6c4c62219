package cbs

// Unit represents one parsable syntactic object within a fragment: a
// parameter set, a header, or a slice. Type is interpreted per-codec.
//
// Content is populated only after a successful read_unit (U1); Data is
// populated only after a successful split (read path) or a successful
// write_unit (write path). Both may coexist after a decode, and must
// stay consistent if the caller re-encodes.
//
// ContentExternal marks Content as borrowed: the unit must never free
// it, because a caller (via InsertUnitContent) still owns it (U2). A
// tagged Owned/Borrowed pair was considered instead of this bool (see
// DESIGN.md) but the bool matches the source shape closely enough and
// every codec plug-in already type-switches on Type before touching
// Content, so the extra indirection wasn't worth it.
type Unit struct {
	Type            uint32
	Data            []byte
	DataBitPadding  uint8
	Content         any
	ContentExternal bool
}

// Fragment is a container for one contiguous span of bitstream: an
// extradata blob, a packet, or a free-standing buffer. Data and Units
// are never both live-authoritative at once (F2): after split, the
// driver clears Data so Units are the sole source of truth until
// assembly rebuilds Data from them.
type Fragment struct {
	Data           []byte
	DataBitPadding uint8
	Units          []Unit
}

// insertUnit grows Units by one at position, per invariant M1: a fresh
// slice of length n+1 is built and copied into, rather than relying on
// append's in-place growth, so the contract stays simple for callers
// that might otherwise assume a stable backing array.
func (f *Fragment) insertUnit(position int) error {
	if position < 0 || position > len(f.Units) {
		return Newf(InvalidArgument, "insert position %d out of range [0,%d]", position, len(f.Units))
	}
	grown := make([]Unit, len(f.Units)+1)
	copy(grown[:position], f.Units[:position])
	copy(grown[position+1:], f.Units[position:])
	f.Units = grown
	return nil
}

// InsertUnitContent inserts a new unit at pos (or appends if pos == -1)
// carrying caller-owned decoded content. The unit's Data is left empty
// until a later write_unit encodes it.
func (f *Fragment) InsertUnitContent(pos int, unitType uint32, content any) error {
	if pos == -1 {
		pos = len(f.Units)
	}
	if err := f.insertUnit(pos); err != nil {
		return err
	}
	f.Units[pos] = Unit{
		Type:            unitType,
		Content:         content,
		ContentExternal: true,
	}
	return nil
}

// InsertUnitData inserts a new unit at pos (or appends if pos == -1)
// carrying raw, not-yet-decoded bytes.
func (f *Fragment) InsertUnitData(pos int, unitType uint32, data []byte) error {
	if pos == -1 {
		pos = len(f.Units)
	}
	if err := f.insertUnit(pos); err != nil {
		return err
	}
	f.Units[pos] = Unit{
		Type: unitType,
		Data: data,
	}
	return nil
}

// DeleteUnit removes the unit at pos, invoking the codec's FreeUnit hook
// first when the unit owns its content.
func (f *Fragment) DeleteUnit(ctx *Context, pos int) error {
	if pos < 0 || pos >= len(f.Units) {
		return Newf(InvalidArgument, "delete position %d out of range [0,%d)", pos, len(f.Units))
	}
	ctx.freeUnit(&f.Units[pos])

	if len(f.Units) == 1 {
		f.Units = nil
		return nil
	}
	remaining := make([]Unit, len(f.Units)-1)
	copy(remaining[:pos], f.Units[:pos])
	copy(remaining[pos:], f.Units[pos+1:])
	f.Units = remaining
	return nil
}

// Uninit releases every unit's content and data and clears the
// fragment's own data. Safe to call on a zero-valued Fragment and
// idempotent on an already-uninited one.
func (f *Fragment) Uninit(ctx *Context) {
	for i := range f.Units {
		ctx.freeUnit(&f.Units[i])
	}
	f.Units = nil
	f.Data = nil
	f.DataBitPadding = 0
}
