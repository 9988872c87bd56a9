package object

import (
	"debug/dwarf"
	"fmt"

	"github.com/memprobe/dwarfbind/dieattr"
)

// Typedef is a DW_TAG_typedef entry. An absent reference means the
// typedef names void (spec §3).
type Typedef struct {
	base

	alias     string
	refOffset dwarf.Offset
	hasRef    bool
	dep       Object
}

// NewTypedef constructs a Typedef from its own entry's attributes.
func NewTypedef(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter) *Typedef {
	refOffset, hasRef := acc.TypeOffset()
	return &Typedef{
		base:      base{offset: acc.Offset()},
		alias:     acc.Name(counter),
		refOffset: refOffset,
		hasRef:    hasRef,
	}
}

func (t *Typedef) Kind() Kind    { return KindTypedef }
func (t *Typedef) Alias() string { return t.alias }

// Resolve looks up the referenced type and records it as the sole
// dependency. A missing reference is not an error here; it only becomes
// one if GenerateCode is later called without having found the dependency.
func (t *Typedef) Resolve(reg Registry) error {
	if t.hasRef {
		if dep, ok := reg.Lookup(t.refOffset); ok {
			t.dep = dep
			t.deps = []Object{dep}
		}
	}
	return t.enterResolved()
}

// GenerateCode emits `alias = Void` when the typedef has no reference, or
// `alias = <dependency alias>` otherwise.
func (t *Typedef) GenerateCode() (string, error) {
	if err := t.enterEmitted(); err != nil {
		return "", err
	}
	if !t.hasRef {
		return fmt.Sprintf("%s = Void", t.alias), nil
	}
	if t.dep == nil {
		return "", unresolvedReference(t.alias)
	}
	return fmt.Sprintf("%s = %s", t.alias, t.dep.Alias()), nil
}

func (t *Typedef) String() string {
	return "Typedef(" + t.alias + ")"
}
