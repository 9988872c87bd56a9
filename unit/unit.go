// Package unit assembles one compilation unit's object graph: it walks
// the entry tree loader hands it, classifies and constructs an
// object.Object per recognized entry, drives resolve.Registry over the
// result, and packages the outcome as a File. It also hosts the
// top-level driver that correlates the unit list against the binary's
// symbol table (spec §4.5).
package unit

import (
	"debug/dwarf"
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/memprobe/dwarfbind/dieattr"
	"github.com/memprobe/dwarfbind/dietags"
	"github.com/memprobe/dwarfbind/dwarfbinderr"
	"github.com/memprobe/dwarfbind/dwarfloc"
	"github.com/memprobe/dwarfbind/loader"
	"github.com/memprobe/dwarfbind/object"
	"github.com/memprobe/dwarfbind/resolve"
)

// File is one compilation unit's fully resolved object graph: its source
// filename and the registry of every object constructed for it.
type File struct {
	Name     string
	Registry *resolve.Registry
}

// Assemble builds a File from one loader.Unit, per spec §4.5:
//  1. walk every entry in the unit's subtree — not just the CU root's
//     direct children — classifying and constructing an object per
//     recognized entry (recoverable errors are logged and the entry is
//     skipped, not fatal to the unit);
//  2. run the resolver;
//  3. package the result with the unit's source filename.
//
// The flat whole-unit walk mirrors pyelftools' cu.iter_DIEs(), which
// _get_cu_objects (original_source's elf/elfdata.py) drives its own
// classification from: a function-scope static's DW_TAG_variable is a
// child of its enclosing DW_TAG_subprogram, not of the CU root, and is
// only ever visited this way.
func Assemble(u *loader.Unit, counter *dieattr.UnnamedCounter, order binary.ByteOrder, machinePointerSize int64, log *zap.Logger) (*File, error) {
	name, _ := u.Name()
	reg := resolve.New()

	for _, child := range flatten(u.Root) {
		obj, err := construct(child, counter, order, machinePointerSize)
		if err != nil {
			if de, ok := err.(*dwarfbinderr.Error); ok && de.Recoverable() {
				log.Debug("skipping entry", zap.String("unit", name), zap.Uint64("offset", uint64(child.Offset())), zap.Error(de))
				continue
			}
			return nil, err
		}
		if obj == nil {
			log.Warn("unrecognized entry tag, skipping", zap.String("unit", name), zap.String("tag", child.Tag().String()))
			continue
		}
		if err := reg.Add(obj); err != nil {
			return nil, err
		}
	}

	if err := reg.ResolveAll(); err != nil {
		return nil, err
	}

	return &File{Name: name, Registry: reg}, nil
}

// flatten returns every descendant of e in pre-order, e itself excluded —
// the same document-order flattening pyelftools' iter_DIEs performs over
// a whole compilation unit, so a variable or function nested arbitrarily
// deep (inside a subprogram, a lexical block, or both) is visited exactly
// once, in the same relative order it appears in the debug section.
func flatten(e *loader.Entry) []*loader.Entry {
	var out []*loader.Entry
	for _, c := range e.Children {
		out = append(out, c)
		out = append(out, flatten(c)...)
	}
	return out
}

// construct classifies one entry of the unit's flattened walk and dispatches to the
// matching object constructor. It returns (nil, nil) for a tag outside
// every recognized bucket (spec §4.3: "produce a warning and are
// dropped").
func construct(e *loader.Entry, counter *dieattr.UnnamedCounter, order binary.ByteOrder, machinePointerSize int64) (object.Object, error) {
	acc := dieattr.New(e.Raw)
	tag := e.Tag()

	switch {
	case tag == dwarf.TagBaseType:
		return object.NewBaseType(acc, counter), nil
	case tag == dwarf.TagTypedef:
		return object.NewTypedef(acc, counter), nil
	case dietags.IsModifier(tag):
		return constructModifier(acc, tag, machinePointerSize)
	case tag == dwarf.TagEnumerationType:
		enums, err := enumerators(e)
		if err != nil {
			return nil, err
		}
		return object.NewEnum(acc, counter, enums), nil
	case dietags.IsCollection(tag):
		kind := object.AggregateStruct
		if tag == dwarf.TagUnionType {
			kind = object.AggregateUnion
		}
		mems, err := members(e)
		if err != nil {
			return nil, err
		}
		return object.NewAggregate(acc, counter, kind, mems), nil
	case tag == dwarf.TagArrayType:
		return constructArray(e, acc)
	case tag == dwarf.TagSubroutineType:
		args, err := argRefOffsets(e)
		if err != nil {
			return nil, err
		}
		return object.NewFuncType(acc, args), nil
	case dietags.IsVariable(tag):
		return constructVariable(acc, counter, e, order)
	case dietags.IsFunction(tag):
		return constructFunction(acc, counter, e)
	default:
		return nil, nil
	}
}

func constructModifier(acc *dieattr.Accessor, tag dwarf.Tag, machinePointerSize int64) (object.Object, error) {
	kind := object.ModifierConst
	switch tag {
	case dwarf.TagPointerType:
		kind = object.ModifierPointer
	case dwarf.TagVolatileType:
		kind = object.ModifierVolatile
	}
	m, err := object.NewModifier(acc, kind, machinePointerSize)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// enumerators extracts DW_TAG_enumerator children in declaration order. An
// enumeration's only legal child tag is DW_TAG_enumerator (spec §7
// UnexpectedChild; grounded on original_source's
// program_type.py:_parse_enumerators, which raises UnexpectedChildError
// for anything else) — fatal for the unit.
func enumerators(e *loader.Entry) ([]object.Enumerator, error) {
	var out []object.Enumerator
	for _, c := range e.Children {
		if c.Tag() != dwarf.TagEnumerator {
			return nil, unexpectedChild(e, c, "enumeration")
		}
		cacc := dieattr.New(c.Raw)
		value, _ := cacc.ConstValue()
		out = append(out, object.Enumerator{
			Name:  rawName(c),
			Value: value,
		})
	}
	return out, nil
}

// members extracts DW_TAG_member children in declaration order, including
// bitfield encoding when DW_AT_bit_size is present; the bitfield's offset
// is read from DW_AT_data_bit_offset (DWARF4+) and is 0 when that is
// absent (the legacy DW_AT_bit_offset is not read). A struct/union's only legal
// child tag is DW_TAG_member (spec §7 UnexpectedChild; grounded on
// original_source's program_type.py:_parse_members) — fatal for the unit.
func members(e *loader.Entry) ([]*object.Member, error) {
	var out []*object.Member
	for _, c := range e.Children {
		if c.Tag() != dwarf.TagMember {
			return nil, unexpectedChild(e, c, "collection")
		}
		cacc := dieattr.New(c.Raw)
		refOffset, _ := cacc.TypeOffset()
		m := &object.Member{
			Name:       rawName(c),
			RefOffset:  refOffset,
			ByteOffset: cacc.DataMemberLocation(),
		}
		if bitSize, ok := cacc.BitSize(); ok {
			bitOffset, _ := cacc.DataBitOffset()
			m.Bitfield = &object.Bitfield{BitSize: bitSize, BitOffset: bitOffset}
		}
		out = append(out, m)
	}
	return out, nil
}

// constructArray reads the single DW_TAG_subrange_type child to compute
// the element count (spec §3: upper_bound+1, or an explicit count).
func constructArray(e *loader.Entry, acc *dieattr.Accessor) (object.Object, error) {
	elemOffset, _ := acc.TypeOffset()
	var count int64
	for _, c := range e.Children {
		if c.Tag() != dwarf.TagSubrangeType {
			continue
		}
		cacc := dieattr.New(c.Raw)
		if n, ok := cacc.Count(); ok {
			count = n
		} else if ub, ok := cacc.UpperBound(); ok {
			count = ub + 1
		}
		break
	}
	return object.NewArray(acc, elemOffset, count), nil
}

// argRefOffsets extracts a subroutine type's DW_TAG_formal_parameter
// children's type references, in declaration order. A function-signature
// type's only legal child tag is DW_TAG_formal_parameter (spec §7
// UnexpectedChild; grounded on original_source's
// program_type.py:ProgramTypeFunction._parse_arguments) — fatal for the
// unit.
func argRefOffsets(e *loader.Entry) ([]dwarf.Offset, error) {
	var out []dwarf.Offset
	for _, c := range e.Children {
		if c.Tag() != dwarf.TagFormalParameter {
			return nil, unexpectedChild(e, c, "function type")
		}
		cacc := dieattr.New(c.Raw)
		if off, ok := cacc.TypeOffset(); ok {
			out = append(out, off)
		}
	}
	return out, nil
}

// constructVariable evaluates the variable's location expression into an
// absolute address. Per spec §3, only *non-external* variables lacking an
// absolute-address location are recoverable (skipped as LocalVariable,
// most commonly a stack-local DW_TAG_variable); an external variable whose
// location isn't a plain DW_OP_addr is a genuine IncorrectLocationEncoding,
// fatal for the unit — grounded on original_source's
// program_variable.py:_get_address, which only guards the opcode check
// behind `not external`. A variable with no DW_AT_location at all is
// skipped as LocalVariable whether or not it is external.
func constructVariable(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, e *loader.Entry, order binary.ByteOrder) (object.Object, error) {
	loc, ok := acc.Location()
	if !ok {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindLocalVariable).
			Path(rawName(e)).
			Detail("variable has no location attribute").
			Build()
	}

	if !acc.External() {
		if !dwarfloc.IsAddr(loc) {
			return nil, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindLocalVariable).
				Path(rawName(e)).
				Detail("non-external variable has no absolute-address location").
				Build()
		}
	}

	addr, err := dwarfloc.EvalAddress(loc, order)
	if err != nil {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindIncorrectLocationEncoding).
			Path(rawName(e)).
			Cause(err).
			Detail("variable location is not an absolute address").
			Build()
	}
	return object.NewVariable(acc, counter, addr), nil
}

// constructFunction collects a subprogram's formal parameters (including
// the unspecified-parameters sentinel) and requires low_pc; functions
// without one are externally declared and skipped (spec §3).
func constructFunction(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, e *loader.Entry) (object.Object, error) {
	lowPC, ok := acc.LowPC()
	if !ok {
		return nil, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindFunctionAddressMissing).
			Path(rawName(e)).
			Detail("subprogram has no low_pc, externally declared").
			Build()
	}

	var args []object.Argument
	for _, c := range e.Children {
		switch c.Tag() {
		case dwarf.TagFormalParameter:
			cacc := dieattr.New(c.Raw)
			refOffset, hasRef := cacc.TypeOffset()
			args = append(args, object.Argument{
				Name:      rawName(c),
				RefOffset: refOffset,
				HasRef:    hasRef,
			})
		case dwarf.TagUnspecifiedParameters:
			args = append(args, object.Argument{Name: "...", HasRef: false})
		case dwarf.TagVariable, dwarf.TagLexDwarfBlock:
			// Function-scope locals and lexical blocks are legal
			// children of a subprogram but contribute nothing to its
			// argument list (spec §3; grounded on original_source's
			// program_function.py:_parse_args, whose DW_TAG_variable
			// case is a bare `continue`). Locals visited here are also
			// reachable through the unit's flat walk (flatten), which
			// classifies and constructs them as ordinary Variable
			// objects in their own right.
		default:
			return nil, unexpectedChild(e, c, "function")
		}
	}

	return object.NewFunction(acc, counter, args, lowPC), nil
}

// unexpectedChild builds the fatal UnexpectedChild error (spec §7) for a
// child entry whose tag is illegal for its parent's shape.
func unexpectedChild(parent, child *loader.Entry, parentKind string) error {
	return dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindUnexpectedChild).
		Path(rawName(parent)).
		Detail("%s has child of unexpected tag %s (offset %#x)", parentKind, child.Tag(), child.Offset()).
		Build()
}

// rawName reads an entry's raw DW_AT_name without synthesizing or
// normalizing it, rendering a missing name as empty. It supplies
// diagnostic paths and the member, enumerator, and argument names.
func rawName(e *loader.Entry) string {
	v := e.Val(dwarf.AttrName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

