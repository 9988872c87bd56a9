// Package emit produces one Python source file per compilation unit,
// per spec §4.6: a fixed import preamble, a types section in dependency
// order (base types, then enums, then a repeated dependency-satisfied
// sweep over everything else), and a Code class instantiating one
// Variable/Function handle per surviving global/function.
package emit

import (
	"fmt"
	"strings"

	"github.com/memprobe/dwarfbind/dietags"
	"github.com/memprobe/dwarfbind/dwarfbinderr"
	"github.com/memprobe/dwarfbind/object"
	"github.com/memprobe/dwarfbind/unit"
)

// FileName derives the emitted file's name from the unit's source
// filename per spec §8 invariant 1: replace '.' with '_' and append the
// target extension.
func FileName(sourceName string) string {
	sanitized := strings.ReplaceAll(sourceName, ".", "_")
	return sanitized + "." + dietags.TargetExtension
}

// preamble is the fixed import block every generated file carries (spec
// §4.6 step 1), grounded on original_source's
// program/generator/constants.py:GENERATED_FILE_IMPORTS. The ctypes import
// list is the literal, duplicate-including values() order of types_map —
// the reference implementation never deduplicates or filters it to only
// the aliases a given unit actually uses, and dwarfbind reproduces that
// byte-for-byte rather than "fixing" it.
func preamble() string {
	var b strings.Builder
	b.WriteString("from ctypes import ")
	b.WriteString(strings.Join(dietags.PrimitiveImportOrder, ", "))
	b.WriteString(", Union, Structure\n")
	b.WriteString("from backend import Enum, PointerClass, Variable, Function, FunctionType, Void\n")
	return b.String()
}

// File renders one compilation unit's source text.
func File(f *unit.File) (string, error) {
	objs := f.Registry.Objects()

	decls, err := topoEmit(objs)
	if err != nil {
		return "", err
	}

	codeClass, err := codeClass(objs)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(preamble())
	b.WriteByte('\n')
	for _, d := range decls {
		if d == "" {
			continue
		}
		b.WriteString(d)
		if !strings.HasSuffix(d, "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(codeClass)
	return b.String(), nil
}

// topoEmit orders and renders every type object's declaration, per spec
// §4.6 step 2: base types first (no emission needed), then every
// enumeration (no inter-type dependencies), then a repeated scan over the
// remainder emitting any whose dependencies are all already emitted, until
// the set is exhausted. Variables and functions are excluded here; they
// belong to the Code class (step 3). Ties within a level follow
// construction order (spec §4.6's stable ordering), since objs is already
// in that order.
func topoEmit(objs []object.Object) ([]string, error) {
	var decls []string
	emitted := make(map[object.Object]bool, len(objs))

	emit := func(o object.Object) error {
		code, err := o.GenerateCode()
		if err != nil {
			return err
		}
		decls = append(decls, code)
		emitted[o] = true
		return nil
	}

	var remaining []object.Object
	for _, o := range objs {
		switch o.Kind() {
		case object.KindVariable, object.KindFunction:
			continue
		case object.KindBaseType:
			if err := emit(o); err != nil {
				return nil, err
			}
		default:
			remaining = append(remaining, o)
		}
	}

	var enums, rest []object.Object
	for _, o := range remaining {
		if o.Kind() == object.KindEnum {
			enums = append(enums, o)
		} else {
			rest = append(rest, o)
		}
	}
	for _, o := range enums {
		if err := emit(o); err != nil {
			return nil, err
		}
	}

	for len(rest) > 0 {
		progressed := false
		var next []object.Object
		for _, o := range rest {
			if dependenciesSatisfied(o, emitted) {
				if err := emit(o); err != nil {
					return nil, err
				}
				progressed = true
			} else {
				next = append(next, o)
			}
		}
		if !progressed {
			return nil, dwarfbinderr.New(dwarfbinderr.PhaseEmit, dwarfbinderr.KindNonResolvedReference).
				Detail("%d type(s) never became dependency-satisfied (unresolved or cyclic reference)", len(next)).
				Build()
		}
		rest = next
	}

	return decls, nil
}

// dependenciesSatisfied reports whether every one of o's recorded
// dependencies has already been emitted. Pointers never appear in this
// list in the first place (spec §9's cycle-breaking discipline), so this
// can never stall on a pointer edge.
func dependenciesSatisfied(o object.Object, emitted map[object.Object]bool) bool {
	for _, dep := range o.Dependencies() {
		if !emitted[dep] {
			return false
		}
	}
	return true
}

// codeClass renders the Code class of spec §4.6 step 3: one Variable
// handle per global variable, one Function handle per function, each in
// construction order.
func codeClass(objs []object.Object) (string, error) {
	var vars, funcs []object.Object
	for _, o := range objs {
		switch o.Kind() {
		case object.KindVariable:
			vars = append(vars, o)
		case object.KindFunction:
			funcs = append(funcs, o)
		}
	}

	var b strings.Builder
	b.WriteString("class Code(object):\n")
	b.WriteString("    def __init__(self):\n")

	if len(vars) == 0 && len(funcs) == 0 {
		b.WriteString("        pass\n")
		return b.String(), nil
	}

	for _, v := range vars {
		line, err := v.GenerateCode()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "        %s\n", line)
	}
	if len(vars) > 0 && len(funcs) > 0 {
		b.WriteByte('\n')
	}
	for _, f := range funcs {
		line, err := f.GenerateCode()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "        %s\n", line)
	}

	return b.String(), nil
}
