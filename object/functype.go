package object

import (
	"debug/dwarf"
	"fmt"
	"strings"

	"github.com/memprobe/dwarfbind/dieattr"
)

// FuncType is a DW_TAG_subroutine_type entry: a function signature used as
// a type (e.g. a function-pointer's pointee), as distinct from Function, a
// DW_TAG_subprogram with an address. Dependencies are the return type
// (when present) followed by each argument, in that order (spec §3).
type FuncType struct {
	base

	returnRefOffset dwarf.Offset
	hasReturn       bool
	argRefOffsets   []dwarf.Offset

	returnDep Object
	argDeps   []Object
}

// NewFuncType constructs a FuncType; argRefOffsets are the entry's
// DW_TAG_formal_parameter children's type references, in declaration
// order.
func NewFuncType(acc *dieattr.Accessor, argRefOffsets []dwarf.Offset) *FuncType {
	returnOffset, hasReturn := acc.TypeOffset()
	return &FuncType{
		base:            base{offset: acc.Offset()},
		returnRefOffset: returnOffset,
		hasReturn:       hasReturn,
		argRefOffsets:   argRefOffsets,
	}
}

func (f *FuncType) Kind() Kind { return KindFuncType }

// Alias is FunctionType_<offset>, matching the reference implementation's
// naming for subroutine types, which have no name attribute of their own.
func (f *FuncType) Alias() string {
	return fmt.Sprintf("FunctionType_%d", f.offset)
}

// Resolve looks up the return type (if any) and every argument type,
// recording dependencies return-first then arguments in order.
func (f *FuncType) Resolve(reg Registry) error {
	if f.hasReturn {
		if dep, ok := reg.Lookup(f.returnRefOffset); ok {
			f.returnDep = dep
			f.deps = append(f.deps, dep)
		}
	}
	f.argDeps = make([]Object, len(f.argRefOffsets))
	for i, off := range f.argRefOffsets {
		if dep, ok := reg.Lookup(off); ok {
			f.argDeps[i] = dep
			f.deps = append(f.deps, dep)
		}
	}
	return f.enterResolved()
}

// GenerateCode emits a FunctionType subclass carrying the return type and
// argument type list.
func (f *FuncType) GenerateCode() (string, error) {
	if err := f.enterEmitted(); err != nil {
		return "", err
	}

	returnAlias := "Void"
	if f.hasReturn {
		if f.returnDep == nil {
			return "", unresolvedReference(f.Alias(), "return")
		}
		returnAlias = f.returnDep.Alias()
	}

	argAliases := make([]string, len(f.argDeps))
	for i, dep := range f.argDeps {
		if dep == nil {
			return "", unresolvedReference(f.Alias(), fmt.Sprintf("arg%d", i))
		}
		argAliases[i] = dep.Alias()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "class %s(FunctionType):\n", f.Alias())
	fmt.Fprintf(&b, "    _return_type = %s\n", returnAlias)
	fmt.Fprintf(&b, "    _args = [%s]\n", strings.Join(argAliases, ", "))
	return b.String(), nil
}

func (f *FuncType) String() string {
	return f.Alias()
}
