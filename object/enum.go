package object

import (
	"fmt"
	"strings"

	"github.com/memprobe/dwarfbind/dietags"
	"github.com/memprobe/dwarfbind/dieattr"
)

// Enumerator is one (name, value) pair of an enumeration, preserved in
// declaration order (spec §8 invariant 4).
type Enumerator struct {
	Name  string
	Value int64
}

// Enum is a DW_TAG_enumeration_type entry. It has no dependencies.
type Enum struct {
	base

	alias       string
	byteSize    int64
	enumerators []Enumerator
}

// NewEnum constructs an Enum; enumerators must already be in declaration
// order, extracted from the entry's DW_TAG_enumerator children by the
// compilation-unit assembler.
func NewEnum(acc *dieattr.Accessor, counter *dieattr.UnnamedCounter, enumerators []Enumerator) *Enum {
	byteSize, _ := acc.ByteSize()
	return &Enum{
		base:        base{offset: acc.Offset()},
		alias:       acc.Name(counter),
		byteSize:    byteSize,
		enumerators: enumerators,
	}
}

func (e *Enum) Kind() Kind        { return KindEnum }
func (e *Enum) Alias() string     { return e.alias }
func (e *Enum) ByteSize() int64   { return e.byteSize }

// Resolve is a no-op beyond the lifecycle transition: enums carry no
// references.
func (e *Enum) Resolve(reg Registry) error {
	return e.enterResolved()
}

// GenerateCode emits the enum as a ctypes-backed class deriving from its
// underlying integer alias and Enum, per size_map in the reference
// implementation's generator constants.
func (e *Enum) GenerateCode() (string, error) {
	if err := e.enterEmitted(); err != nil {
		return "", err
	}

	underlying, ok := dietags.EnumUnderlying[e.byteSize]
	if !ok {
		underlying = "c_uint"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "class %s(%s, Enum):\n", e.alias, underlying)
	fmt.Fprintf(&b, "    _type = %s\n", underlying)
	for _, en := range e.enumerators {
		fmt.Fprintf(&b, "    %s = %d\n", en.Name, en.Value)
	}
	return b.String(), nil
}

func (e *Enum) String() string {
	return fmt.Sprintf("Enum(%s, %d enumerators)", e.alias, len(e.enumerators))
}
