package main

import (
	"errors"
	"syscall"
)

// sysexits.h exit codes (spec §6): dwarfbind never depends on the sysexits
// header itself, just its numeric convention.
const (
	exOK       = 0
	exUsage    = 64
	exSoftware = 70
)

// classifyExit maps a top-level run error to the process exit code spec
// §6 specifies: a file-system error's own errno, or EX_SOFTWARE for
// everything else. Argument errors are handled separately, before run is
// ever called, and always exit EX_USAGE.
func classifyExit(err error) int {
	if err == nil {
		return exOK
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return exSoftware
}
