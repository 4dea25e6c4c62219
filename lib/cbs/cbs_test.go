package cbs

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// testType is a minimal single-unit codec plug-in registered purely for
// exercising the core driver/fragment/context machinery in isolation
// from any real codec's framing rules: the whole fragment is one unit,
// Content is a copy of Data.
func registerTestType() {
	RegisterType(&Type{
		CodecID: CodecH264,
		SplitFragment: func(ctx *Context, frag *Fragment, headerHint bool) error {
			if len(frag.Data) == 0 {
				return Newf(InvalidData, "empty fragment")
			}
			frag.Units = []Unit{{Type: 0, Data: append([]byte(nil), frag.Data...)}}
			return nil
		},
		ReadUnit: func(ctx *Context, unit *Unit) error {
			unit.Content = append([]byte(nil), unit.Data...)
			return nil
		},
		WriteUnit: func(ctx *Context, unit *Unit) error {
			content, ok := unit.Content.([]byte)
			if !ok {
				return Newf(Unimplemented, "no writer for %T", unit.Content)
			}
			unit.Data = append([]byte(nil), content...)
			return nil
		},
		AssembleFragment: func(ctx *Context, frag *Fragment) error {
			var out []byte
			for _, u := range frag.Units {
				out = append(out, u.Data...)
			}
			frag.Data = out
			return nil
		},
		FreeUnit: func(unit *Unit) {
			if content, ok := unit.Content.([]byte); ok {
				_ = content
			}
		},
	})
}

func init() {
	registerTestType()
}

func mustTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := Init(CodecH264, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return ctx
}

func TestDriverReadWriteRoundTrip(t *testing.T) {
	ctx := mustTestContext(t)
	input := []byte{0x01, 0x02, 0x03}

	var frag Fragment
	if err := ctx.Read(&frag, input); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(frag.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(frag.Units))
	}
	if frag.Data != nil {
		t.Fatalf("Data must be cleared after split (F2), got %v", frag.Data)
	}

	out, err := ctx.WritePacket(&frag)
	if err != nil {
		t.Fatalf("WritePacket: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("round trip mismatch: got %x, want %x", out, input)
	}
}

func TestInsertUnitContentThenDelete(t *testing.T) {
	ctx := mustTestContext(t)
	var frag Fragment

	if err := frag.InsertUnitContent(-1, 0, []byte{0xaa}); err != nil {
		t.Fatalf("InsertUnitContent: %v", err)
	}
	if err := frag.InsertUnitContent(0, 0, []byte{0xbb}); err != nil {
		t.Fatalf("InsertUnitContent: %v", err)
	}
	if len(frag.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(frag.Units))
	}
	if got := frag.Units[0].Content.([]byte); !bytes.Equal(got, []byte{0xbb}) {
		t.Fatalf("unit 0 content = %x, want bb (insert at 0 should precede the appended unit)", got)
	}
	if !frag.Units[0].ContentExternal || !frag.Units[1].ContentExternal {
		t.Fatalf("InsertUnitContent must mark ContentExternal")
	}

	if err := frag.DeleteUnit(ctx, 0); err != nil {
		t.Fatalf("DeleteUnit: %v", err)
	}
	if len(frag.Units) != 1 {
		t.Fatalf("expected 1 unit after delete, got %d", len(frag.Units))
	}
	if got := frag.Units[0].Content.([]byte); !bytes.Equal(got, []byte{0xaa}) {
		t.Fatalf("remaining unit content = %x, want aa", got)
	}
}

func TestInsertUnitOutOfRange(t *testing.T) {
	var frag Fragment
	if err := frag.InsertUnitData(5, 0, []byte{0x00}); err == nil {
		t.Fatalf("expected error inserting past end of an empty fragment")
	}
}

func TestInsertUnitFreshSliceNoAliasing(t *testing.T) {
	// M1: insertUnit must build a fresh backing array rather than rely
	// on append, so a reference to the old Units slice doesn't observe
	// later mutation through the fragment.
	var frag Fragment
	if err := frag.InsertUnitData(-1, 0, []byte{0x01}); err != nil {
		t.Fatalf("InsertUnitData: %v", err)
	}
	old := frag.Units
	if err := frag.InsertUnitData(-1, 1, []byte{0x02}); err != nil {
		t.Fatalf("InsertUnitData: %v", err)
	}
	if len(old) != 1 {
		t.Fatalf("old slice header should still report length 1, got %d", len(old))
	}
	if &old[0] == &frag.Units[0] {
		t.Fatalf("expected insertUnit to allocate a fresh backing array")
	}
}

func TestUninitClearsFragment(t *testing.T) {
	ctx := mustTestContext(t)
	var frag Fragment
	frag.Data = []byte{0x01}
	if err := frag.InsertUnitData(-1, 0, []byte{0x02}); err != nil {
		t.Fatalf("InsertUnitData: %v", err)
	}
	frag.Uninit(ctx)
	if frag.Data != nil || frag.Units != nil {
		t.Fatalf("Uninit did not clear fragment: %+v", frag)
	}
	// Idempotent on an already-uninited fragment.
	frag.Uninit(ctx)
}

func TestErrorKindMatchesViaErrorsIs(t *testing.T) {
	err := Newf(InvalidData, "bad value %d", 7)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("errors.Is(err, ErrInvalidData) = false, want true")
	}
	if errors.Is(err, ErrTruncated) {
		t.Fatalf("errors.Is(err, ErrTruncated) = true, want false")
	}
	kind, ok := KindOf(err)
	if !ok || kind != InvalidData {
		t.Fatalf("KindOf = %v, %v; want InvalidData, true", kind, ok)
	}
}

func TestReadUnimplementedIsSwallowed(t *testing.T) {
	RegisterType(&Type{
		CodecID: CodecH265,
		SplitFragment: func(ctx *Context, frag *Fragment, headerHint bool) error {
			frag.Units = []Unit{{Type: 1, Data: []byte{0x01}}}
			return nil
		},
		ReadUnit: func(ctx *Context, unit *Unit) error {
			return Newf(Unimplemented, "no decoder for type %d", unit.Type)
		},
	})
	ctx, err := Init(CodecH265, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	var frag Fragment
	if err := ctx.Read(&frag, []byte{0x01}); err != nil {
		t.Fatalf("Read should swallow Unimplemented as a warning, got error: %v", err)
	}
	if frag.Units[0].Content != nil {
		t.Fatalf("unimplemented unit should have nil Content")
	}
}

func TestTraceSyntaxElementColumnAlignment(t *testing.T) {
	ctx := mustTestContext(t)
	var lines []string
	ctx.logger = loggerFunc(func(level LogLevel, msg string) {
		lines = append(lines, msg)
	})
	ctx.SetTrace(true, LevelTrace)

	ctx.TraceSyntaxElement(0, "short_name", "101", 5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 trace line, got %d", len(lines))
	}
	// name+bits <= 60: the bits are right-aligned so they end at column
	// 61 past the start of the name.
	if want := "short_name" + strings.Repeat(" ", 48) + "101 = 5"; !strings.HasSuffix(lines[0], want) {
		t.Fatalf("short-name trace line = %q, want suffix %q", lines[0], want)
	}

	longName := "a_very_long_syntax_element_name_that_pushes_past_sixty_columns_total"
	ctx.TraceSyntaxElement(8, longName, "1", 1)
	if len(lines) != 2 {
		t.Fatalf("expected 2 trace lines, got %d", len(lines))
	}
	// name+bits > 60: the bits follow the name after two spaces.
	if want := longName + "  1 = 1"; !strings.HasSuffix(lines[1], want) {
		t.Fatalf("long-name trace line = %q, want suffix %q", lines[1], want)
	}
}

type loggerFunc func(level LogLevel, msg string)

func (f loggerFunc) Log(level LogLevel, msg string) {
	f(level, msg)
}
