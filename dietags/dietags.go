// Package dietags holds the classification sets, primitive-name maps, and
// fixed naming tokens shared by every other dwarfbind package: which DWARF
// tags are types versus variables versus functions, and how C primitive
// type names map onto ctypes aliases in the generated Python. It holds no
// set of unit-relative reference forms: debug/dwarf already turns those
// into absolute offsets (see package dieattr).
package dietags

import "debug/dwarf"

// Modifier tags: pointer/const/volatile. Modifiers have at most one
// reference and never declare a dependency edge for it (pointers) or
// forward it verbatim (const/volatile).
var ModifierTags = map[dwarf.Tag]bool{
	dwarf.TagPointerType:  true,
	dwarf.TagConstType:    true,
	dwarf.TagVolatileType: true,
}

// CollectionTags: aggregate (struct/union) types.
var CollectionTags = map[dwarf.Tag]bool{
	dwarf.TagStructType: true,
	dwarf.TagUnionType:  true,
}

// TypeTags is the full set of tags the classifier buckets as "type".
var TypeTags = map[dwarf.Tag]bool{
	dwarf.TagBaseType:        true,
	dwarf.TagTypedef:         true,
	dwarf.TagArrayType:       true,
	dwarf.TagEnumerationType: true,
	dwarf.TagSubroutineType:  true,
	dwarf.TagStructType:      true,
	dwarf.TagUnionType:       true,
	dwarf.TagPointerType:     true,
	dwarf.TagConstType:       true,
	dwarf.TagVolatileType:    true,
}

// FunctionTags is the set of tags the classifier buckets as "function".
var FunctionTags = map[dwarf.Tag]bool{
	dwarf.TagSubprogram: true,
}

// VariableTags is the set of tags the classifier buckets as "variable".
var VariableTags = map[dwarf.Tag]bool{
	dwarf.TagVariable: true,
}

// IsType, IsFunction, IsVariable report which of the three coarse buckets
// (§4.3) a tag falls into. A tag may fall into none of them.
func IsType(tag dwarf.Tag) bool     { return TypeTags[tag] }
func IsFunction(tag dwarf.Tag) bool { return FunctionTags[tag] }
func IsVariable(tag dwarf.Tag) bool { return VariableTags[tag] }

// IsModifier reports whether tag is a pointer/const/volatile modifier.
func IsModifier(tag dwarf.Tag) bool { return ModifierTags[tag] }

// IsCollection reports whether tag is a struct or union aggregate.
func IsCollection(tag dwarf.Tag) bool { return CollectionTags[tag] }

// NormalizePrefix is prepended to identifiers that would otherwise collide
// with reserved names or begin with a double underscore (spec §3, tested
// invariant 8).
const NormalizePrefix = "_normalize_"

// UnnamedPrefix seeds synthesized names for anonymous type entries.
const UnnamedPrefix = "Unnamed_type_"

// PrimitiveAlias maps a DWARF base type's DW_AT_name to the ctypes alias the
// emitter references in the generated preamble import line. Grounded on
// program/generator/constants.py's types_map.
var PrimitiveAlias = map[string]string{
	"_Bool":                  "c_bool",
	"char":                   "c_char",
	"signed char":             "c_char",
	"wchar_t":                "c_wchar",
	"unsigned char":           "c_ubyte",
	"short":                  "c_short",
	"short int":               "c_short",
	"unsigned short":          "c_ushort",
	"short unsigned int":      "c_ushort",
	"int":                    "c_int",
	"unsigned int":            "c_uint",
	"long":                   "c_long",
	"long int":                "c_long",
	"unsigned long":           "c_ulong",
	"long unsigned int":       "c_ulong",
	"long long":               "c_longlong",
	"long long int":           "c_longlong",
	"long long unsigned int":  "c_longlong",
	"__int64":                "c_longlong",
	"unsigned long long":      "c_ulonglong",
	"unsigned long long int":  "c_ulonglong",
	"unsigned __int64":        "c_ulonglong",
	"size_t":                 "c_size_t",
	"ssize_t":                "c_ssize_t",
	"float":                  "c_float",
	"double":                 "c_double",
	"long double":             "c_longdouble",
}

// PrimitiveImportOrder is the fixed ctypes import list every generated
// source file carries, in the reference implementation's literal
// dict-values order (duplicates included — the generator never
// deduplicates or filters to only the aliases a given unit actually
// uses). Grounded on program/generator/constants.py's
// GENERATED_FILE_IMPORTS, which interpolates types_map.values() verbatim.
var PrimitiveImportOrder = []string{
	"c_bool", "c_char", "c_char", "c_wchar", "c_ubyte",
	"c_short", "c_short", "c_ushort", "c_ushort",
	"c_int", "c_uint",
	"c_long", "c_long", "c_ulong", "c_ulong",
	"c_longlong", "c_longlong", "c_longlong", "c_longlong",
	"c_ulonglong", "c_ulonglong", "c_ulonglong",
	"c_size_t", "c_ssize_t",
	"c_float", "c_double", "c_longdouble",
}

// EnumUnderlying maps an enumeration's byte size to the ctypes integer alias
// used as its underlying storage type. Grounded on
// program/generator/constants.py's size_map.
var EnumUnderlying = map[int64]string{
	1: "c_ubyte",
	2: "c_ushort",
	4: "c_uint",
}

// SourceFileSuffix is the recognized compilation-unit source extension used
// both to seed the symbol-table correlation (§4.5) and to select which
// global symbols are candidate unit names.
const SourceFileSuffix = ".c"

// TargetExtension is the generated source file's extension.
const TargetExtension = "py"

// SymbolTableSection is the canonical ELF section name carrying the symbol
// table whose absence is MissingSymbolTable.
const SymbolTableSection = ".symtab"
