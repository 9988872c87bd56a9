package unit

import (
	"debug/elf"
	"strings"

	"github.com/memprobe/dwarfbind/dietags"
)

// Correlate orders the assembled unit list against the binary's symbol
// table, per spec §4.5: seed an ordering from every symbol whose name
// ends in the recognized source-file suffix, then append any remaining
// units (compiled but with no matching exported symbol name) in their
// original decode order. A symbol name with no matching unit contributes
// nothing — it names no compilation unit dwarfbind ever decoded.
//
// Grounded on original_source's elf/elfdata.py: ELFData._files seeds a
// dict from every ".c"-suffixed symbol name, mapped to None, then
// overwrites or appends an entry per compilation unit by its DW_AT_name;
// entries that stay None (a symbol name matching no decoded unit) are
// dropped during parse_elffile, reproduced here by simply never
// including them.
func Correlate(units []*File, symbols []elf.Symbol) []*File {
	byName := make(map[string]*File, len(units))
	for _, u := range units {
		byName[u.Name] = u
	}

	seen := make(map[string]bool, len(units))
	ordered := make([]*File, 0, len(units))

	for _, sym := range symbols {
		if !strings.HasSuffix(sym.Name, dietags.SourceFileSuffix) {
			continue
		}
		if seen[sym.Name] {
			continue
		}
		if u, ok := byName[sym.Name]; ok {
			ordered = append(ordered, u)
			seen[sym.Name] = true
		}
	}

	for _, u := range units {
		if !seen[u.Name] {
			ordered = append(ordered, u)
			seen[u.Name] = true
		}
	}

	return ordered
}
