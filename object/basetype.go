package object

import (
	"github.com/memprobe/dwarfbind/dietags"
	"github.com/memprobe/dwarfbind/dieattr"
)

// BaseType is a DW_TAG_base_type entry: a primitive whose alias is looked
// up in the fixed C-name-to-ctypes map. It has no dependencies and
// contributes no declaration of its own — its alias is already available
// once the generated preamble imports the primitive set (spec §4.6 step 2).
type BaseType struct {
	base

	name  string
	bits  int64
	alias string
}

// NewBaseType constructs a BaseType from its own entry's attributes.
func NewBaseType(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter) *BaseType {
	name := acc.Name(counter)

	var bits int64
	if byteSize, ok := acc.ByteSize(); ok {
		bits = byteSize * 8
	} else if bitSize, ok := acc.BitSize(); ok {
		bits = bitSize
	}

	alias, known := dietags.PrimitiveAlias[name]
	if !known {
		alias = name
	}

	return &BaseType{
		base:  base{offset: acc.Offset()},
		name:  name,
		bits:  bits,
		alias: alias,
	}
}

func (t *BaseType) Kind() Kind    { return KindBaseType }
func (t *BaseType) Alias() string { return t.alias }

// ByteSize rounds the bit size up to whole bytes, satisfying the Sized
// interface for pointer modifiers that dereference a base type directly.
func (t *BaseType) ByteSize() int64 {
	return (t.bits + 7) / 8
}

// Resolve is a no-op beyond the lifecycle transition: base types carry no
// references.
func (t *BaseType) Resolve(reg Registry) error {
	return t.enterResolved()
}

// GenerateCode emits nothing; the alias is a primitive already in scope.
func (t *BaseType) GenerateCode() (string, error) {
	if err := t.enterEmitted(); err != nil {
		return "", err
	}
	return "", nil
}

func (t *BaseType) String() string {
	return "BaseType(" + t.name + " alias=" + t.alias + ")"
}
