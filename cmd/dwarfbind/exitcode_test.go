package main

import (
	"errors"
	"syscall"
	"testing"
)

func TestClassifyExit(t *testing.T) {
	if got := classifyExit(nil); got != exOK {
		t.Errorf("classifyExit(nil) = %d, want %d", got, exOK)
	}
	if got := classifyExit(errors.New("boom")); got != exSoftware {
		t.Errorf("classifyExit(generic) = %d, want %d", got, exSoftware)
	}
	wrapped := errWithErrno(syscall.ENOENT)
	if got := classifyExit(wrapped); got != int(syscall.ENOENT) {
		t.Errorf("classifyExit(errno) = %d, want %d", got, int(syscall.ENOENT))
	}
}

type errnoWrapper struct{ errno syscall.Errno }

func (e *errnoWrapper) Error() string { return e.errno.Error() }
func (e *errnoWrapper) Unwrap() error { return e.errno }

func errWithErrno(errno syscall.Errno) error {
	return &errnoWrapper{errno: errno}
}
