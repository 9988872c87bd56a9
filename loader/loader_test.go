package loader

import (
	"debug/dwarf"
	"errors"
	"testing"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// fakeReader-free tree tests: buildTree only needs a *dwarf.Reader, which
// we can't easily fabricate without a real .debug_info byte stream. These
// tests instead exercise Entry/Unit's accessor behavior directly against
// hand-built trees, the same style object/dieattr's tests use for
// dwarf.Entry literals.

func TestEntry_Accessors(t *testing.T) {
	raw := &dwarf.Entry{
		Offset: 0x20,
		Tag:    dwarf.TagVariable,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "counter"},
		},
	}
	e := &Entry{Raw: raw}

	if e.Offset() != 0x20 {
		t.Errorf("Offset() = %#x, want 0x20", e.Offset())
	}
	if e.Tag() != dwarf.TagVariable {
		t.Errorf("Tag() = %v, want TagVariable", e.Tag())
	}
	if v := e.Val(dwarf.AttrName); v != "counter" {
		t.Errorf("Val(AttrName) = %v, want %q", v, "counter")
	}
	if v := e.Val(dwarf.AttrByteSize); v != nil {
		t.Errorf("Val(AttrByteSize) = %v, want nil", v)
	}
}

func TestUnit_Name(t *testing.T) {
	withName := &Unit{Root: &Entry{Raw: &dwarf.Entry{
		Tag:   dwarf.TagCompileUnit,
		Field: []dwarf.Field{{Attr: dwarf.AttrName, Val: "main.c"}},
	}}}
	name, ok := withName.Name()
	if !ok || name != "main.c" {
		t.Errorf("Name() = (%q, %v), want (\"main.c\", true)", name, ok)
	}

	noName := &Unit{Root: &Entry{Raw: &dwarf.Entry{Tag: dwarf.TagCompileUnit}}}
	if _, ok := noName.Name(); ok {
		t.Error("Name() on a unit without DW_AT_name should report absent")
	}
}

func TestEntry_ChildrenPopulated(t *testing.T) {
	root := &Entry{
		Raw: &dwarf.Entry{Tag: dwarf.TagCompileUnit, Children: true},
		Children: []*Entry{
			{Raw: &dwarf.Entry{Tag: dwarf.TagSubprogram, Offset: 0x30}},
			{Raw: &dwarf.Entry{Tag: dwarf.TagVariable, Offset: 0x40}},
		},
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(root.Children))
	}
	if root.Children[0].Tag() != dwarf.TagSubprogram {
		t.Errorf("Children[0].Tag() = %v, want TagSubprogram", root.Children[0].Tag())
	}
	if root.Children[1].Offset() != 0x40 {
		t.Errorf("Children[1].Offset() = %#x, want 0x40", root.Children[1].Offset())
	}
}

// TestOpen_MissingFile confirms Open surfaces a structured load-phase
// error (rather than a bare os.PathError) when the binary cannot even be
// opened as ELF.
func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/nonexistent/path/to/binary")
	if err == nil {
		t.Fatal("expected an error opening a nonexistent path")
	}
	var dberr *dwarfbinderr.Error
	if !errors.As(err, &dberr) || dberr.Phase != dwarfbinderr.PhaseLoad {
		t.Errorf("Open error = %v, want a load-phase *dwarfbinderr.Error", err)
	}
}
