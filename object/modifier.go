package object

import (
	"debug/dwarf"
	"fmt"

	"github.com/memprobe/dwarfbind/dieattr"
	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// ModifierKind distinguishes the three modifier tags dwarfbind handles.
type ModifierKind int

const (
	ModifierPointer ModifierKind = iota
	ModifierConst
	ModifierVolatile
)

// Modifier is a pointer, const, or volatile entry (spec §3). Const and
// volatile are transparent: they emit no declaration of their own and
// their Alias() simply forwards the referenced type's alias. Pointers
// never declare a dependency — the cycle-breaking discipline spec §9
// describes — and their alias is the inline factory expression
// PointerClass(<size>), resolved from the pointee's size when present or
// the machine pointer size for void pointers.
type Modifier struct {
	base

	kind               ModifierKind
	refOffset          dwarf.Offset
	hasRef             bool
	ownByteSize        int64
	machinePointerSize int64
	dep                Object
	alias              string
}

// NewModifier constructs a Modifier. It fails with
// dwarfbinderr.KindModifierNoReference when the entry has neither a
// reference nor a byte size — the reference implementation's "modifier
// with no reference and no size" case, recoverable at the call site by
// dropping the object (spec §4.3, §7).
func NewModifier(acc *dieattr.Accessor, kind ModifierKind, machinePointerSize int64) (*Modifier, error) {
	refOffset, hasRef := acc.TypeOffset()
	byteSize, hasSize := acc.ByteSize()
	if !hasRef && !hasSize {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindModifierNoReference).
			Detail("modifier entry has neither a type reference nor a byte size").
			Build()
	}
	return &Modifier{
		base:               base{offset: acc.Offset()},
		kind:               kind,
		refOffset:          refOffset,
		hasRef:             hasRef,
		ownByteSize:        byteSize,
		machinePointerSize: machinePointerSize,
	}, nil
}

func (m *Modifier) Kind() Kind { return KindModifier }

// Alias returns the pointer factory expression, or forwards the
// dependency's alias for const/volatile (Void if unresolved — DWARF never
// legitimately omits a const/volatile's reference, so this only surfaces
// when the reference was never found).
func (m *Modifier) Alias() string {
	if m.kind == ModifierPointer {
		return m.alias
	}
	if m.dep != nil {
		return m.dep.Alias()
	}
	return "Void"
}

// Resolve looks up the reference (if any) and, for pointers, computes the
// PointerClass(<size>) alias; pointers intentionally never add a
// dependency edge.
func (m *Modifier) Resolve(reg Registry) error {
	if m.hasRef {
		if dep, ok := reg.Lookup(m.refOffset); ok {
			m.dep = dep
		}
	}

	switch m.kind {
	case ModifierPointer:
		size := m.machinePointerSize
		if m.dep != nil {
			if sized, ok := m.dep.(Sized); ok {
				size = sized.ByteSize()
			}
		}
		m.alias = fmt.Sprintf("PointerClass(%d)", size)
	case ModifierConst, ModifierVolatile:
		if m.dep != nil {
			m.deps = []Object{m.dep}
		}
	}

	return m.enterResolved()
}

// GenerateCode emits nothing: pointers are referenced inline by their
// factory expression, and const/volatile forward their dependency's alias
// without a declaration of their own.
func (m *Modifier) GenerateCode() (string, error) {
	if err := m.enterEmitted(); err != nil {
		return "", err
	}
	return "", nil
}

func (m *Modifier) String() string {
	names := [...]string{"pointer", "const", "volatile"}
	return "Modifier(" + names[m.kind] + ")"
}
