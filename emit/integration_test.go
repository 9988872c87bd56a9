package emit

import (
	"debug/dwarf"
	"encoding/binary"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/memprobe/dwarfbind/dieattr"
	"github.com/memprobe/dwarfbind/loader"
	"github.com/memprobe/dwarfbind/unit"
)

func entry(offset dwarf.Offset, tag dwarf.Tag, fields ...dwarf.Field) *loader.Entry {
	return &loader.Entry{Raw: &dwarf.Entry{Offset: offset, Tag: tag, Field: fields, Children: true}}
}

func leaf(offset dwarf.Offset, tag dwarf.Tag, fields ...dwarf.Field) *loader.Entry {
	return &loader.Entry{Raw: &dwarf.Entry{Offset: offset, Tag: tag, Field: fields}}
}

func addrLoc(addr uint32) []byte {
	return []byte{0x03, byte(addr), byte(addr >> 8), byte(addr >> 16), byte(addr >> 24)}
}

// TestFile_SingleUnitMinimal reproduces spec §8's end-to-end scenario 1:
// int buffer[32] at 0x40e0 and int main(void) at 0x16b6.
func TestFile_SingleUnitMinimal(t *testing.T) {
	root := entry(0x0, dwarf.TagCompileUnit, dwarf.Field{Attr: dwarf.AttrName, Val: "test_code.c"})

	intType := leaf(0x10, dwarf.TagBaseType,
		dwarf.Field{Attr: dwarf.AttrName, Val: "int"},
		dwarf.Field{Attr: dwarf.AttrByteSize, Val: int64(4)},
	)

	arrayType := entry(0x20, dwarf.TagArrayType, dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x10)})
	arrayType.Children = []*loader.Entry{
		leaf(0x28, dwarf.TagSubrangeType, dwarf.Field{Attr: dwarf.AttrUpperBound, Val: int64(31)}),
	}

	buffer := leaf(0x30, dwarf.TagVariable,
		dwarf.Field{Attr: dwarf.AttrName, Val: "buffer"},
		dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x20)},
		dwarf.Field{Attr: dwarf.AttrExternal, Val: true},
		dwarf.Field{Attr: dwarf.AttrLocation, Val: addrLoc(0x40e0)},
	)

	main := entry(0x40, dwarf.TagSubprogram,
		dwarf.Field{Attr: dwarf.AttrName, Val: "main"},
		dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x16b6)},
		dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x10)},
		dwarf.Field{Attr: dwarf.AttrExternal, Val: true},
	)

	root.Children = []*loader.Entry{intType, arrayType, buffer, main}
	u := &loader.Unit{Root: root}

	counter := &dieattr.UnnamedCounter{}
	f, err := unit.Assemble(u, counter, binary.LittleEndian, 8, zap.NewNop())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if f.Name != "test_code.c" {
		t.Fatalf("Name = %q", f.Name)
	}
	if FileName(f.Name) != "test_code_c.py" {
		t.Fatalf("FileName = %q", FileName(f.Name))
	}

	src, err := File(f)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	if !strings.Contains(src, "c_int_array = c_int * 32") {
		t.Errorf("missing array declaration, got:\n%s", src)
	}
	if !strings.Contains(src, "self.buffer = Variable(0x40e0, c_int_array)") {
		t.Errorf("missing buffer handle, got:\n%s", src)
	}
	if !strings.Contains(src, "self.main = Function(0x16b6, [], c_int)") {
		t.Errorf("missing main handle, got:\n%s", src)
	}

	arrayIdx := strings.Index(src, "c_int_array = c_int * 32")
	bufferIdx := strings.Index(src, "self.buffer")
	if arrayIdx < 0 || bufferIdx < 0 || arrayIdx > bufferIdx {
		t.Errorf("array declaration must precede its use in Code.__init__")
	}
}

// TestFile_PointerCycleNeverStalls reproduces spec §8 scenario 4: a
// self-referential struct via a pointer member must emit cleanly because
// pointers never contribute to the dependency graph.
func TestFile_PointerCycleNeverStalls(t *testing.T) {
	root := entry(0x0, dwarf.TagCompileUnit, dwarf.Field{Attr: dwarf.AttrName, Val: "node.c"})

	node := entry(0x10, dwarf.TagStructType,
		dwarf.Field{Attr: dwarf.AttrName, Val: "node"},
		dwarf.Field{Attr: dwarf.AttrByteSize, Val: int64(8)},
	)
	ptr := leaf(0x20, dwarf.TagPointerType, dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x10)})
	node.Children = []*loader.Entry{
		leaf(0x18, dwarf.TagMember,
			dwarf.Field{Attr: dwarf.AttrName, Val: "next"},
			dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x20)},
		),
	}

	root.Children = []*loader.Entry{node, ptr}
	u := &loader.Unit{Root: root}

	counter := &dieattr.UnnamedCounter{}
	f, err := unit.Assemble(u, counter, binary.LittleEndian, 8, zap.NewNop())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	src, err := File(f)
	if err != nil {
		t.Fatalf("File: %v (pointer cycle should never deadlock the topological sweep)", err)
	}
	if !strings.Contains(src, "class node(Structure):") {
		t.Errorf("missing struct declaration, got:\n%s", src)
	}
	if !strings.Contains(src, `("next", PointerClass(8)),`) {
		t.Errorf("missing pointer member, got:\n%s", src)
	}
}
