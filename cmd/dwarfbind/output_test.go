package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteOutput_Print(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, true, "", "unit_c.py", "x = 1\n"); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("x = 1")) {
		t.Errorf("stdout output missing content: %q", buf.String())
	}
}

func TestWriteOutput_File(t *testing.T) {
	dir := t.TempDir()
	if err := writeOutput(nil, false, dir, "unit_c.py", "x = 1\n"); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "unit_c.py"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "x = 1\n" {
		t.Errorf("content = %q", data)
	}
}
