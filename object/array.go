package object

import (
	"debug/dwarf"
	"fmt"

	"github.com/memprobe/dwarfbind/dieattr"
)

// Array is a DW_TAG_array_type entry with a single bounded subrange. Its
// alias is formed post-resolution as <element_alias>_array.
type Array struct {
	base

	elemRefOffset dwarf.Offset
	count         int64
	alias         string
	dep           Object
}

// NewArray constructs an Array. count is the subrange's upper_bound+1 or
// explicit count, already computed by the caller from the single
// DW_TAG_subrange_type child (spec §3).
func NewArray(acc *dieattr.Accessor, elemRefOffset dwarf.Offset, count int64) *Array {
	return &Array{
		base:          base{offset: acc.Offset()},
		elemRefOffset: elemRefOffset,
		count:         count,
	}
}

func (a *Array) Kind() Kind { return KindArray }

// Alias is empty until Resolve finds the element object.
func (a *Array) Alias() string { return a.alias }

// Resolve looks up the element type and finalizes the alias.
func (a *Array) Resolve(reg Registry) error {
	if dep, ok := reg.Lookup(a.elemRefOffset); ok {
		a.dep = dep
		a.deps = []Object{dep}
		a.alias = dep.Alias() + "_array"
	}
	return a.enterResolved()
}

// GenerateCode emits `alias = element_alias * count`.
func (a *Array) GenerateCode() (string, error) {
	if err := a.enterEmitted(); err != nil {
		return "", err
	}
	if a.dep == nil {
		return "", unresolvedReference(fmt.Sprintf("array@%#x", a.offset))
	}
	return fmt.Sprintf("%s = %s * %d", a.alias, a.dep.Alias(), a.count), nil
}

func (a *Array) String() string {
	return fmt.Sprintf("Array(%s, count=%d)", a.alias, a.count)
}
