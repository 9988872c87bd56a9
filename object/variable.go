package object

import (
	"debug/dwarf"
	"fmt"

	"github.com/memprobe/dwarfbind/dieattr"
)

// Variable is a DW_TAG_variable entry surviving to the program-object
// class: its address was already computed by the compilation-unit
// assembler (via dwarfloc) and its external-visibility check already
// passed — non-external variables without an absolute-address location
// are rejected before construction (spec §3, recoverable LocalVariable).
type Variable struct {
	base

	name      string
	refOffset dwarf.Offset
	hasRef    bool
	address   uint64
	dep       Object
}

// NewVariable constructs a Variable at the given absolute address.
func NewVariable(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, address uint64) *Variable {
	refOffset, hasRef := acc.TypeOffset()
	return &Variable{
		base:      base{offset: acc.Offset()},
		name:      acc.Name(counter),
		refOffset: refOffset,
		hasRef:    hasRef,
		address:   address,
	}
}

func (v *Variable) Kind() Kind    { return KindVariable }
func (v *Variable) Alias() string { return v.name }

// Resolve looks up the variable's type reference.
func (v *Variable) Resolve(reg Registry) error {
	if v.hasRef {
		if dep, ok := reg.Lookup(v.refOffset); ok {
			v.dep = dep
			v.deps = []Object{dep}
		}
	}
	return v.enterResolved()
}

// GenerateCode emits the Code class's Variable handle assignment.
func (v *Variable) GenerateCode() (string, error) {
	if err := v.enterEmitted(); err != nil {
		return "", err
	}
	if v.dep == nil {
		return "", unresolvedReference(v.name)
	}
	return fmt.Sprintf("self.%s = Variable(%#x, %s)", v.name, v.address, v.dep.Alias()), nil
}

func (v *Variable) String() string {
	return fmt.Sprintf("Variable(%s @ %#x)", v.name, v.address)
}
