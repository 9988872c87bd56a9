package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

// writeOutput delivers one named file's contents either to stdout
// (--print) or to dstDir/name, per spec §6's output file layout. A short
// write is a fatal FileWrite error (spec §5's resource discipline).
func writeOutput(w io.Writer, print bool, dstDir, name, content string) error {
	if print {
		fmt.Fprintf(w, "# ----- %s -----\n", name)
		fmt.Fprint(w, content)
		return nil
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return dwarfbinderr.New(dwarfbinderr.PhaseWrite, dwarfbinderr.KindFileWrite).
			Path(name).
			Cause(err).
			Detail("failed to create output directory %s", dstDir).
			Build()
	}

	path := filepath.Join(dstDir, name)
	f, err := os.Create(path)
	if err != nil {
		return dwarfbinderr.New(dwarfbinderr.PhaseWrite, dwarfbinderr.KindFileWrite).
			Path(name).
			Cause(err).
			Detail("failed to create %s", path).
			Build()
	}
	defer f.Close()

	n, err := f.WriteString(content)
	if err != nil {
		return dwarfbinderr.New(dwarfbinderr.PhaseWrite, dwarfbinderr.KindFileWrite).
			Path(name).
			Cause(err).
			Detail("write to %s failed", path).
			Build()
	}
	if n < len(content) {
		return dwarfbinderr.New(dwarfbinderr.PhaseWrite, dwarfbinderr.KindFileWrite).
			Path(name).
			Detail("short write to %s: %d of %d bytes", path, n, len(content)).
			Build()
	}
	return nil
}
