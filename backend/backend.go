// Package backend carries the runtime backend contract dwarfbind's
// generated sources import: GeneratorBackend/MemoryAccess plus
// Variable/Function/FunctionType/PointerClass/Enum/Void (spec §6).
//
// The reference implementation ships this by reflecting on its own
// module source at generation time. Per spec §9's design note ("the
// backend template is a static resource; emit it verbatim from an
// embedded string"), dwarfbind instead carries it as a go:embed string
// and writes it out unmodified.
package backend

import _ "embed"

//go:embed backend.py.tmpl
var source string

// Source returns the backend contract's Python source, verbatim.
func Source() string {
	return source
}

// FileName is the fixed output name for the backend file (spec §6).
const FileName = "backend.py"
