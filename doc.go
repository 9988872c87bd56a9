// Command and library dwarfbind turns a linked ELF executable's embedded
// DWARF debug information into per-compilation-unit Python source files
// that expose the binary's global variables, functions, and type
// definitions as ctypes-backed, memory-addressable handles.
//
// # Architecture
//
//	loader/      thin debug/elf + debug/dwarf adaptation: entry trees, symbols
//	dietags/     DWARF tag classification sets and primitive maps
//	dieattr/     uniform attribute lookup, name synthesis, normalization
//	dwarfloc/    absolute-address location expression decoding
//	object/      the nine program-object variants and their lifecycle
//	resolve/     per-unit two-phase reference resolution
//	unit/        compilation-unit assembly and symbol-table correlation
//	emit/        dependency-ordered Python source emission
//	backend/     the embedded runtime backend contract (backend.py)
//	dwarfbinderr/ the structured error type shared by every package above
//	cmd/dwarfbind/ the CLI entry point
//
// # Pipeline
//
// A run opens the binary (loader.Open), walks its compilation units,
// assembles and resolves each unit's object graph (unit.Assemble), orders
// units against the symbol table (unit.Correlate), and emits one Python
// file per unit (emit.File) alongside an optional backend.py.
//
// The generated Python imports six names from backend: Variable,
// Function, PointerClass, Enum, FunctionType, Void, plus the ctypes
// primitive set. A Code class instantiates one handle per surviving
// global and function, each backed by an out-of-band memory_read /
// memory_write / execute channel the harness supplies.
package dwarfbind
