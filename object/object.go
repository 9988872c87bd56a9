// Package object is the program-object model: the nine concrete variants
// (base type, typedef, pointer/const/volatile modifier, enumeration,
// struct/union aggregate, array, function-signature type, variable,
// function) that every compilation unit is decomposed into.
//
// The reference implementation models these as a six-level class hierarchy
// (ProgramABC -> ProgramType -> ProgramTypeCollection/ProgramTypeModifier ->
// concrete class, mirrored separately for variables and functions). Here
// that collapses into one tagged interface, Object, implemented by small
// concrete structs sharing an embedded base for lifecycle bookkeeping —
// the "small capability set" (emit, resolve, dependencies, alias) in place
// of the deep hierarchy. Grounded on the teacher's own sealed-interface
// idiom in linker/internal/resolve/entity.go (EntitySource).
package object

import (
	"debug/dwarf"
	"fmt"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// Kind discriminates the nine object variants.
type Kind int

const (
	KindBaseType Kind = iota
	KindTypedef
	KindModifier
	KindEnum
	KindAggregate
	KindArray
	KindFuncType
	KindVariable
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindBaseType:
		return "BaseType"
	case KindTypedef:
		return "Typedef"
	case KindModifier:
		return "Modifier"
	case KindEnum:
		return "Enum"
	case KindAggregate:
		return "Aggregate"
	case KindArray:
		return "Array"
	case KindFuncType:
		return "FuncType"
	case KindVariable:
		return "Variable"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// State is the object lifecycle (spec §4.7): Constructed -> Resolved ->
// Emitted, forward-only.
type State int

const (
	StateConstructed State = iota
	StateResolved
	StateEmitted
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateResolved:
		return "Resolved"
	case StateEmitted:
		return "Emitted"
	default:
		return "Unknown"
	}
}

// Registry resolves a symbolic offset to the object constructed for it.
// Defined here, not in the resolve package, so Object.Resolve can take one
// as an argument without object importing resolve (which itself must
// import object for Object) — the same import-direction trick the teacher
// uses to keep linker/internal/resolve's EntitySource free of the linker
// package.
type Registry interface {
	Lookup(offset dwarf.Offset) (Object, bool)
}

// Sized is implemented by variants that carry a byte size usable by a
// pointer modifier that dereferences them (base types, enums, aggregates).
type Sized interface {
	ByteSize() int64
}

// Object is the capability set every program-object variant implements.
type Object interface {
	fmt.Stringer

	Offset() dwarf.Offset
	Kind() Kind
	Alias() string
	Dependencies() []Object
	State() State
	Resolve(reg Registry) error
	GenerateCode() (string, error)
}

// base embeds the identity and lifecycle state shared by every variant.
type base struct {
	offset dwarf.Offset
	state  State
	deps   []Object
}

func (b *base) Offset() dwarf.Offset   { return b.offset }
func (b *base) State() State           { return b.state }
func (b *base) Dependencies() []Object { return b.deps }

// enterResolved performs the Constructed -> Resolved transition, failing
// if the object is not currently Constructed.
func (b *base) enterResolved() error {
	if b.state != StateConstructed {
		return dwarfbinderr.New(dwarfbinderr.PhaseResolve, dwarfbinderr.KindWrongDIEType).
			Detail("illegal transition to Resolved from state %s", b.state).
			Build()
	}
	b.state = StateResolved
	return nil
}

// enterEmitted performs the Resolved -> Emitted transition, failing if the
// object is not currently Resolved.
func (b *base) enterEmitted() error {
	if b.state != StateResolved {
		return dwarfbinderr.New(dwarfbinderr.PhaseEmit, dwarfbinderr.KindWrongDIEType).
			Detail("illegal transition to Emitted from state %s", b.state).
			Build()
	}
	b.state = StateEmitted
	return nil
}

// unresolvedReference builds the NonResolvedReference error emission
// raises when a dependency offset never matched an object in the registry
// (spec §4.4: this is a fatal error at emission time, never at resolve
// time, so the resolve phase stays total).
func unresolvedReference(alias string, path ...string) error {
	full := append([]string{alias}, path...)
	return dwarfbinderr.New(dwarfbinderr.PhaseEmit, dwarfbinderr.KindNonResolvedReference).
		Path(full...).
		Detail("reference never resolved to a known object").
		Build()
}
