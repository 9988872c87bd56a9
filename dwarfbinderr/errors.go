// Package dwarfbinderr provides the structured error type used throughout
// dwarfbind.
//
// Errors are categorized by Phase (where processing was when the error
// occurred) and Kind (the error category from the parser-exception family).
// Use the Builder for structured construction:
//
//	err := dwarfbinderr.New(dwarfbinderr.PhaseResolve, dwarfbinderr.KindNonResolvedReference).
//		Path("main_c", "0x4a").
//		Detail("unresolved type reference").
//		Build()
//
// All errors implement the standard error interface and support errors.Is
// and errors.Unwrap.
package dwarfbinderr

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of the pipeline produced the error.
type Phase string

const (
	PhaseLoad      Phase = "load"      // opening the binary, finding DWARF/symtab
	PhaseClassify  Phase = "classify"  // entry-to-variant dispatch
	PhaseConstruct Phase = "construct" // object construction from an entry
	PhaseResolve   Phase = "resolve"   // reference resolution pass
	PhaseEmit      Phase = "emit"      // code generation
	PhaseWrite     Phase = "write"     // output file I/O
)

// Kind categorizes the error, mirroring the reference implementation's
// single parser-exception root.
type Kind string

const (
	KindMissingDwarfInfo          Kind = "missing_dwarf_info"
	KindMissingSymbolTable        Kind = "missing_symbol_table"
	KindWrongDIEType              Kind = "wrong_die_type"
	KindModifierNoReference       Kind = "modifier_no_reference"
	KindUnexpectedChild           Kind = "unexpected_child"
	KindLocalVariable             Kind = "local_variable"
	KindFunctionAddressMissing    Kind = "function_address_missing"
	KindIncorrectLocationEncoding Kind = "incorrect_location_encoding"
	KindNonResolvedReference      Kind = "non_resolved_reference"
	KindFileWrite                 Kind = "file_write"
)

// Error is the structured error type used throughout dwarfbind.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a dwarfbinderr.Error of the same Phase/Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Recoverable reports whether this Kind is one the unit assembler swallows
// (logs at DEBUG and continues) rather than aborting the run.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case KindModifierNoReference, KindLocalVariable, KindFunctionAddressMissing:
		return true
	default:
		return false
	}
}

// Builder provides fluent structured error construction.
type Builder struct {
	err Error
}

// New starts a Builder for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// Path sets the field path (e.g. unit name, offset) for the error.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Wrap wraps an existing error with a phase, kind and detail in one call.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{Phase: phase, Kind: kind, Cause: cause, Detail: detail}
}
