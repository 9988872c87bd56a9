// Package dwarfloc decodes the minimal subset of DWARF location expressions
// dwarfbind needs: a bare absolute address. Anything else — computed
// expressions, register locations, thread-local storage — is out of scope
// (spec's open question: the reference implementation never documents this
// restriction, it simply never handles the other opcodes).
package dwarfloc

import (
	"encoding/binary"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// opAddr is DW_OP_addr: push an absolute address built from the bytes that
// follow, encoded with the compilation unit's address size and endianness.
const opAddr = 0x03

// IsAddr reports whether location's leading opcode is DW_OP_addr, without
// decoding the address itself. Used to distinguish a non-external
// variable's recoverable LocalVariable case (spec §3) from a genuine
// encoding failure.
func IsAddr(location []byte) bool {
	return len(location) > 0 && location[0] == opAddr
}

// EvalAddress decodes location as a single DW_OP_addr expression and returns
// the absolute address it encodes. order is the endianness of the tail
// bytes; callers pass binary.LittleEndian unless the unit says otherwise.
//
// Grounded on original_source's program/utils.py:eval_dwarf_location: empty
// expressions and any opcode other than DW_OP_addr fail with the same error
// kind, IncorrectLocationEncoding.
func EvalAddress(location []byte, order binary.ByteOrder) (uint64, error) {
	if len(location) == 0 {
		return 0, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindIncorrectLocationEncoding).
			Detail("empty location expression").
			Build()
	}

	if location[0] != opAddr {
		return 0, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindIncorrectLocationEncoding).
			Detail("unsupported location opcode 0x%02x", location[0]).
			Build()
	}

	tail := location[1:]
	var addr uint64
	switch len(tail) {
	case 0:
		return 0, dwarfbinderr.New(dwarfbinderr.PhaseConstruct, dwarfbinderr.KindIncorrectLocationEncoding).
			Detail("DW_OP_addr with no address bytes").
			Build()
	case 2:
		addr = uint64(order.Uint16(tail))
	case 4:
		addr = uint64(order.Uint32(tail))
	case 8:
		addr = order.Uint64(tail)
	default:
		addr = decodeVarWidth(tail, order)
	}

	return addr, nil
}

// decodeVarWidth handles address widths binary.ByteOrder has no fixed-size
// helper for (e.g. a 3 or 5 byte target address size), matching the
// reference implementation's reduce-over-bytes approach.
func decodeVarWidth(tail []byte, order binary.ByteOrder) uint64 {
	var addr uint64
	if order == binary.BigEndian {
		for _, b := range tail {
			addr = addr<<8 | uint64(b)
		}
		return addr
	}
	for i := len(tail) - 1; i >= 0; i-- {
		addr = addr<<8 | uint64(tail[i])
	}
	return addr
}
