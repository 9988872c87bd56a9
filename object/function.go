package object

import (
	"debug/dwarf"
	"fmt"
	"strings"

	"github.com/memprobe/dwarfbind/dieattr"
)

// Argument is one formal parameter of a Function. HasRef is false exactly
// for the single DW_TAG_unspecified_parameters sentinel entry a varargs
// function carries (spec §3: "unspecified-parameters is a single sentinel
// entry").
//
// Divergence from the reference implementation: its resolve_refs indexes
// obj_refs[arg.reference] unconditionally, including for this sentinel,
// whose reference is None — a latent KeyError waiting to happen the first
// time a varargs function is actually resolved. dwarfbind instead skips
// resolution and emission for the sentinel entirely, never crashing and
// never emitting a type slot for it.
type Argument struct {
	Name      string
	RefOffset dwarf.Offset
	HasRef    bool
}

// Function is a DW_TAG_subprogram entry surviving to the program-object
// class: its low_pc was already found by the compilation-unit assembler
// (functions without one are externally-declared and are skipped before
// construction, spec §3/§7 FunctionAddressMissing).
type Function struct {
	base

	name            string
	returnRefOffset dwarf.Offset
	hasReturn       bool
	args            []Argument
	lowPC           uint64

	returnDep Object
	argDeps   []Object
}

// NewFunction constructs a Function at the given entry address.
func NewFunction(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, args []Argument, lowPC uint64) *Function {
	returnOffset, hasReturn := acc.TypeOffset()
	return &Function{
		base:            base{offset: acc.Offset()},
		name:            acc.Name(counter),
		returnRefOffset: returnOffset,
		hasReturn:       hasReturn,
		args:            args,
		lowPC:           lowPC,
	}
}

func (f *Function) Kind() Kind    { return KindFunction }
func (f *Function) Alias() string { return f.name }

// Resolve looks up the return type and every typed argument's reference;
// the unspecified-parameters sentinel is skipped (see Argument doc).
func (f *Function) Resolve(reg Registry) error {
	if f.hasReturn {
		if dep, ok := reg.Lookup(f.returnRefOffset); ok {
			f.returnDep = dep
			f.deps = append(f.deps, dep)
		}
	}

	f.argDeps = make([]Object, len(f.args))
	for i, arg := range f.args {
		if !arg.HasRef {
			continue
		}
		if dep, ok := reg.Lookup(arg.RefOffset); ok {
			f.argDeps[i] = dep
			f.deps = append(f.deps, dep)
		}
	}
	return f.enterResolved()
}

// GenerateCode emits the Code class's Function handle assignment.
func (f *Function) GenerateCode() (string, error) {
	if err := f.enterEmitted(); err != nil {
		return "", err
	}

	returnAlias := "Void"
	if f.hasReturn {
		if f.returnDep == nil {
			return "", unresolvedReference(f.name, "return")
		}
		returnAlias = f.returnDep.Alias()
	}

	argAliases := make([]string, 0, len(f.args))
	for i, arg := range f.args {
		if !arg.HasRef {
			continue
		}
		dep := f.argDeps[i]
		if dep == nil {
			return "", unresolvedReference(f.name, arg.Name)
		}
		argAliases = append(argAliases, dep.Alias())
	}

	return fmt.Sprintf("self.%s = Function(%#x, [%s], %s)", f.name, f.lowPC, strings.Join(argAliases, ", "), returnAlias), nil
}

func (f *Function) String() string {
	return fmt.Sprintf("Function(%s @ %#x, %d args)", f.name, f.lowPC, len(f.args))
}
