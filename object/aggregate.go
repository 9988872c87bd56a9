package object

import (
	"debug/dwarf"
	"fmt"
	"strings"

	"github.com/memprobe/dwarfbind/dieattr"
)

// AggregateKind distinguishes struct from union.
type AggregateKind int

const (
	AggregateStruct AggregateKind = iota
	AggregateUnion
)

// Bitfield carries a member's bit width and bit offset within the
// aggregate (spec §8 invariant/scenario 6). ctypes bitfield syntax only
// takes a width; the offset is retained for introspection and tests, not
// emitted.
type Bitfield struct {
	BitSize   int64
	BitOffset int64
}

// Member is one field of a struct or union, in declaration order.
type Member struct {
	Name       string
	RefOffset  dwarf.Offset
	ByteOffset int64
	Bitfield   *Bitfield

	dep Object
}

// Aggregate is a DW_TAG_structure_type or DW_TAG_union_type entry.
type Aggregate struct {
	base

	kind     AggregateKind
	alias    string
	byteSize int64
	members  []*Member
}

// NewAggregate constructs an Aggregate; members must already be extracted
// from the entry's DW_TAG_member children in declaration order.
func NewAggregate(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, kind AggregateKind, members []*Member) *Aggregate {
	byteSize, _ := acc.ByteSize()
	return &Aggregate{
		base:     base{offset: acc.Offset()},
		kind:     kind,
		alias:    acc.Name(counter),
		byteSize: byteSize,
		members:  members,
	}
}

func (a *Aggregate) Kind() Kind      { return KindAggregate }
func (a *Aggregate) Alias() string   { return a.alias }
func (a *Aggregate) ByteSize() int64 { return a.byteSize }

// Members exposes the parsed member list for callers (e.g. tests) that
// need to inspect byte offsets or bitfield encoding directly.
func (a *Aggregate) Members() []*Member { return a.members }

// Resolve looks up every member's reference and records each found
// dependency; unfound references are left nil and only fail at emission.
func (a *Aggregate) Resolve(reg Registry) error {
	for _, m := range a.members {
		if dep, ok := reg.Lookup(m.RefOffset); ok {
			m.dep = dep
			a.deps = append(a.deps, dep)
		}
	}
	return a.enterResolved()
}

// GenerateCode emits a Structure or Union subclass with a _fields_ list in
// declaration order; bitfield members emit the 3-tuple ctypes form.
func (a *Aggregate) GenerateCode() (string, error) {
	if err := a.enterEmitted(); err != nil {
		return "", err
	}

	base := "Structure"
	if a.kind == AggregateUnion {
		base = "Union"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "class %s(%s):\n", a.alias, base)

	if len(a.members) == 0 {
		b.WriteString("    _fields_ = []\n")
		return b.String(), nil
	}

	b.WriteString("    _fields_ = [\n")
	for _, m := range a.members {
		if m.dep == nil {
			return "", unresolvedReference(a.alias, m.Name)
		}
		if m.Bitfield != nil {
			fmt.Fprintf(&b, "        (%q, %s, %d),\n", m.Name, m.dep.Alias(), m.Bitfield.BitSize)
		} else {
			fmt.Fprintf(&b, "        (%q, %s),\n", m.Name, m.dep.Alias())
		}
	}
	b.WriteString("    ]\n")
	return b.String(), nil
}

func (a *Aggregate) String() string {
	return fmt.Sprintf("Aggregate(%s, %d members)", a.alias, len(a.members))
}
