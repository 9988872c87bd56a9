package resolve

import (
	"debug/dwarf"
	"testing"

	"github.com/memprobe/dwarfbind/dieattr"
	"github.com/memprobe/dwarfbind/object"
)

func entryWith(offset dwarf.Offset, tag dwarf.Tag, fields ...dwarf.Field) *dwarf.Entry {
	return &dwarf.Entry{Offset: offset, Tag: tag, Field: fields}
}

func TestRegistry_AddAndLookup(t *testing.T) {
	reg := New()
	counter := &dieattr.UnnamedCounter{}
	bt := object.NewBaseType(dieattr.New(entryWith(0x10, dwarf.TagBaseType, dwarf.Field{Attr: dwarf.AttrName, Val: "int"})), counter)

	if err := reg.Add(bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := reg.Lookup(0x10)
	if !ok || got != object.Object(bt) {
		t.Fatalf("Lookup(0x10) = (%v, %v), want (bt, true)", got, ok)
	}

	if _, ok := reg.Lookup(0x999); ok {
		t.Error("Lookup of unregistered offset should report absent")
	}
}

func TestRegistry_DuplicateOffsetFails(t *testing.T) {
	reg := New()
	counter := &dieattr.UnnamedCounter{}
	a := object.NewBaseType(dieattr.New(entryWith(0x10, dwarf.TagBaseType, dwarf.Field{Attr: dwarf.AttrName, Val: "int"})), counter)
	b := object.NewBaseType(dieattr.New(entryWith(0x10, dwarf.TagBaseType, dwarf.Field{Attr: dwarf.AttrName, Val: "float"})), counter)

	if err := reg.Add(a); err != nil {
		t.Fatalf("unexpected error adding first object: %v", err)
	}
	if err := reg.Add(b); err == nil {
		t.Fatal("expected error adding duplicate die_offset")
	}
}

func TestRegistry_ResolveAll_PreservesOrder(t *testing.T) {
	reg := New()
	counter := &dieattr.UnnamedCounter{}

	intAcc := dieattr.New(entryWith(0x1, dwarf.TagBaseType, dwarf.Field{Attr: dwarf.AttrName, Val: "int"}))
	bt := object.NewBaseType(intAcc, counter)

	varAcc := dieattr.New(entryWith(0x2, dwarf.TagVariable,
		dwarf.Field{Attr: dwarf.AttrName, Val: "count"},
		dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x1)},
	))
	v := object.NewVariable(varAcc, counter, 0x2000)

	if err := reg.Add(bt); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(v); err != nil {
		t.Fatal(err)
	}

	if err := reg.ResolveAll(); err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}

	objs := reg.Objects()
	if len(objs) != 2 || objs[0].Offset() != 0x1 || objs[1].Offset() != 0x2 {
		t.Errorf("Objects() order = %v, want [0x1, 0x2]", objs)
	}

	code, err := v.GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if code != "self.count = Variable(0x2000, c_int)" {
		t.Errorf("GenerateCode() = %q", code)
	}
}
