package cbs

// Read splits bytes into a fresh Fragment and decodes every unit the
// context is configured to decompose. Equivalent to ff_cbs_read: the
// fragment is reset, the codec's splitter runs with headerHint=0, the
// fragment's borrowed Data pointer is cleared (bytes is caller-owned and
// must never be freed through the fragment, per F2), then every
// resulting unit is decoded.
func (ctx *Context) Read(frag *Fragment, bytes []byte) error {
	return ctx.read(frag, bytes, false)
}

// ReadExtradata is Read's extradata-flavored sibling: split_fragment
// receives headerHint=1, letting codecs that frame differently for an
// out-of-band parameter-set blob than for an in-band packet react to
// that.
func (ctx *Context) ReadExtradata(frag *Fragment, params []byte) error {
	return ctx.read(frag, params, true)
}

// ReadPacket splits an in-band packet; an alias for Read kept distinct
// to mirror the three entry points spec.md names (read / read_packet /
// read_extradata read identically here, but codecs are free to branch
// on headerHint).
func (ctx *Context) ReadPacket(frag *Fragment, pkt []byte) error {
	return ctx.read(frag, pkt, false)
}

func (ctx *Context) read(frag *Fragment, data []byte, headerHint bool) error {
	*frag = Fragment{Data: data}

	if err := ctx.codec.SplitFragment(ctx, frag, headerHint); err != nil {
		return err
	}
	frag.Data = nil
	frag.DataBitPadding = 0

	return ctx.readFragmentContent(frag)
}

// readFragmentContent decodes every unit frag.Units whose type is
// either unfiltered or present in the decompose allow-list.
// Unimplemented is swallowed here and downgraded to a warning naming
// the unit index and type (propagation policy, §7); every other error
// is fatal for the call.
func (ctx *Context) readFragmentContent(frag *Fragment) error {
	for i := range frag.Units {
		unit := &frag.Units[i]
		if !ctx.shouldDecompose(unit.Type) {
			continue
		}
		err := ctx.codec.ReadUnit(ctx, unit)
		if err == nil {
			continue
		}
		if kind, ok := KindOf(err); ok && kind == Unimplemented {
			ctx.Logf(LevelWarn, "decomposition unimplemented for unit %d (type %d)", i, unit.Type)
			continue
		}
		ctx.Logf(LevelError, "failed to read unit %d (type %d): %v", i, unit.Type, err)
		return err
	}
	return nil
}

// WriteFragmentData (re)encodes every unit with Content into Data, then
// asks the codec to assemble the fragment's byte buffer from the
// resulting unit Data arrays.
func (ctx *Context) WriteFragmentData(frag *Fragment) error {
	for i := range frag.Units {
		unit := &frag.Units[i]
		if unit.Content == nil {
			continue
		}
		if err := ctx.codec.WriteUnit(ctx, unit); err != nil {
			ctx.Logf(LevelError, "failed to write unit %d (type %d): %v", i, unit.Type, err)
			return err
		}
	}
	if err := ctx.codec.AssembleFragment(ctx, frag); err != nil {
		ctx.Logf(LevelError, "failed to assemble fragment: %v", err)
		return err
	}
	return nil
}

// WritePacket writes frag and copies the assembled bytes out, leaving
// frag unaffected for further mutation/reassembly.
func (ctx *Context) WritePacket(frag *Fragment) ([]byte, error) {
	if err := ctx.WriteFragmentData(frag); err != nil {
		return nil, err
	}
	out := make([]byte, len(frag.Data))
	copy(out, frag.Data)
	return out, nil
}

// WriteExtradata is WritePacket's extradata-flavored sibling.
func (ctx *Context) WriteExtradata(frag *Fragment) ([]byte, error) {
	return ctx.WritePacket(frag)
}
