// Package loader is the thin adaptation layer over the standard library's
// debug/elf and debug/dwarf: the external collaborator spec §1 marks
// out-of-scope beyond its interface ("provides an entry iterator and
// attribute lookups"). It opens a binary, confirms it carries both debug
// information and a symbol table, and exposes a proper entry tree per
// compilation unit — debug/dwarf.Reader yields only a flat pre-order
// sequence terminated by null entries, so loader builds the ordered child
// sequence the rest of dwarfbind's data model expects.
package loader

import (
	"debug/dwarf"
	"debug/elf"
	"encoding/binary"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// Entry is one node of a compilation unit's debug-info tree, wrapping the
// raw decoder entry with its already-built children.
type Entry struct {
	Raw      *dwarf.Entry
	Children []*Entry
}

// Offset is the entry's absolute die_offset.
func (e *Entry) Offset() dwarf.Offset { return e.Raw.Offset }

// Tag is the entry's DWARF tag.
func (e *Entry) Tag() dwarf.Tag { return e.Raw.Tag }

// Val looks up an attribute's decoded value, nil if absent.
func (e *Entry) Val(attr dwarf.Attr) interface{} { return e.Raw.Val(attr) }

// Unit is one compilation unit: its root entry (DW_TAG_compile_unit).
type Unit struct {
	Root *Entry
}

// Binary is a loaded ELF executable with its DWARF data, symbol table,
// and address size extracted. Per spec §5's resource discipline, the
// underlying file handle is closed before Open returns — all downstream
// work happens against already-decoded structures, not an open fd.
type Binary struct {
	Dwarf       *dwarf.Data
	Symbols     []elf.Symbol
	ByteOrder   binary.ByteOrder
	AddressSize int
}

// Open reads path's ELF and DWARF structures and releases the file handle
// before returning.
func Open(path string) (*Binary, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseLoad, dwarfbinderr.KindMissingDwarfInfo).
			Path(path).
			Cause(err).
			Detail("failed to open as ELF").
			Build()
	}
	defer f.Close()

	dwarfData, err := f.DWARF()
	if err != nil {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseLoad, dwarfbinderr.KindMissingDwarfInfo).
			Path(path).
			Cause(err).
			Detail("binary has no usable debug information").
			Build()
	}

	symbols, err := f.Symbols()
	if err != nil {
		if err == elf.ErrNoSymbols {
			return nil, dwarfbinderr.New(dwarfbinderr.PhaseLoad, dwarfbinderr.KindMissingSymbolTable).
				Path(path).
				Detail("binary has no .symtab section").
				Build()
		}
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseLoad, dwarfbinderr.KindMissingSymbolTable).
			Path(path).
			Cause(err).
			Detail("failed to read symbol table").
			Build()
	}

	addressSize := 8
	var order binary.ByteOrder = f.ByteOrder
	switch f.Class {
	case elf.ELFCLASS32:
		addressSize = 4
	case elf.ELFCLASS64:
		addressSize = 8
	}

	return &Binary{
		Dwarf:       dwarfData,
		Symbols:     symbols,
		ByteOrder:   order,
		AddressSize: addressSize,
	}, nil
}

// Units walks every compilation unit in the binary, building its full
// entry tree. Units are returned in decoder order (spec §5's ordering
// guarantee).
func (b *Binary) Units() ([]*Unit, error) {
	r := b.Dwarf.Reader()
	var units []*Unit
	for {
		raw, err := r.Next()
		if err != nil {
			return nil, dwarfbinderr.New(dwarfbinderr.PhaseLoad, dwarfbinderr.KindMissingDwarfInfo).
				Cause(err).
				Detail("failed to decode compilation unit").
				Build()
		}
		if raw == nil {
			break
		}
		if raw.Tag == 0 {
			continue
		}
		root, err := buildTree(r, raw)
		if err != nil {
			return nil, err
		}
		units = append(units, &Unit{Root: root})
	}
	return units, nil
}

// buildTree recursively consumes r's flat entry stream into a tree rooted
// at raw. raw.Children (the decoder's flag that a null-terminated child
// list follows) drives the recursion; r.Next() returning nil signals true
// end-of-section, while a returned *Entry with Tag == 0 is the null entry
// that terminates the current children list — the two must not be
// confused, since only the former means there is nothing left to read.
func buildTree(r *dwarf.Reader, raw *dwarf.Entry) (*Entry, error) {
	node := &Entry{Raw: raw}
	if !raw.Children {
		return node, nil
	}
	for {
		child, err := r.Next()
		if err != nil {
			return nil, err
		}
		if child == nil || child.Tag == 0 {
			return node, nil
		}
		childNode, err := buildTree(r, child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}
}

// Name returns the unit root's DW_AT_name, the compilation unit's source
// file name used to correlate it against the symbol table (spec §4.5).
func (u *Unit) Name() (string, bool) {
	v := u.Root.Val(dwarf.AttrName)
	if v == nil {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
