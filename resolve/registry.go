// Package resolve implements the two-phase reference resolver of spec §4.4:
// collect every object a compilation unit constructed into an
// offset-keyed registry, then invoke each object's own Resolve routine so
// it can bind its symbolic offsets to the objects they name.
//
// Grounded on the teacher's linker/internal/resolve package shape: a
// sealed entity/source type in one file (mirrored here by object.Object,
// defined in the object package to avoid the import cycle) and a second
// file doing the actual binding pass, plus linker/internal/graph's
// dependency-tracking-feeds-a-later-pass structure — here the later pass
// is emit's topological sweep over each object's Dependencies().
package resolve

import (
	"debug/dwarf"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
	"github.com/memprobe/dwarfbind/object"
)

// Registry is the concrete implementation of object.Registry: the
// per-compilation-unit offset -> object map, plus the insertion order
// objects were constructed in (so resolution and emission tie-breaks
// follow input order, per spec §4.6).
type Registry struct {
	objects map[dwarf.Offset]object.Object
	order   []object.Object
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{objects: make(map[dwarf.Offset]object.Object)}
}

// Add registers a freshly constructed object. A duplicate die_offset
// within the same unit is an internal invariant violation (spec §4.4):
// the decoder guarantees uniqueness, so seeing one again means the
// assembler called Add twice for the same entry.
func (r *Registry) Add(o object.Object) error {
	if _, exists := r.objects[o.Offset()]; exists {
		return dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindWrongDIEType).
			Detail("duplicate die_offset %#x already present in unit registry", o.Offset()).
			Build()
	}
	r.objects[o.Offset()] = o
	r.order = append(r.order, o)
	return nil
}

// Lookup implements object.Registry.
func (r *Registry) Lookup(offset dwarf.Offset) (object.Object, bool) {
	o, ok := r.objects[offset]
	return o, ok
}

// Objects returns every registered object in construction order.
func (r *Registry) Objects() []object.Object {
	return r.order
}

// Len reports how many objects the registry holds.
func (r *Registry) Len() int {
	return len(r.order)
}

// ResolveAll runs phase two: invoke every object's Resolve routine against
// this registry. Resolve itself never fails on an unresolvable reference
// (that surfaces at emission instead, spec §4.4) — an error here means a
// lifecycle violation, which is always a bug in the assembler.
func (r *Registry) ResolveAll() error {
	for _, o := range r.order {
		if err := o.Resolve(r); err != nil {
			return err
		}
	}
	return nil
}
