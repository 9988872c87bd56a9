package dwarfloc

import (
	"encoding/binary"
	"testing"

	"github.com/memprobe/dwarfbind/dwarfbinderr"
)

func TestEvalAddress(t *testing.T) {
	tests := []struct {
		name     string
		location []byte
		order    binary.ByteOrder
		want     uint64
		wantErr  bool
	}{
		{
			name:     "little endian 8 byte",
			location: []byte{0x03, 0xe0, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			order:    binary.LittleEndian,
			want:     0x40e0,
		},
		{
			name:     "little endian 4 byte",
			location: []byte{0x03, 0xb6, 0x16, 0x00, 0x00},
			order:    binary.LittleEndian,
			want:     0x16b6,
		},
		{
			name:     "big endian 4 byte",
			location: []byte{0x03, 0x00, 0x00, 0x16, 0xb6},
			order:    binary.BigEndian,
			want:     0x16b6,
		},
		{
			name:     "empty expression",
			location: []byte{},
			order:    binary.LittleEndian,
			wantErr:  true,
		},
		{
			name:     "unsupported opcode",
			location: []byte{0x91, 0x10}, // DW_OP_fbreg
			order:    binary.LittleEndian,
			wantErr:  true,
		},
		{
			name:     "DW_OP_addr with no trailing bytes",
			location: []byte{0x03},
			order:    binary.LittleEndian,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalAddress(tt.location, tt.order)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var dberr *dwarfbinderr.Error
				if !errorsAs(err, &dberr) {
					t.Fatalf("expected *dwarfbinderr.Error, got %T", err)
				}
				if dberr.Kind != dwarfbinderr.KindIncorrectLocationEncoding {
					t.Errorf("Kind = %v, want IncorrectLocationEncoding", dberr.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("EvalAddress() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func errorsAs(err error, target **dwarfbinderr.Error) bool {
	e, ok := err.(*dwarfbinderr.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestIsAddr(t *testing.T) {
	tests := []struct {
		name     string
		location []byte
		want     bool
	}{
		{"DW_OP_addr", []byte{0x03, 0xe0, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, true},
		{"DW_OP_fbreg", []byte{0x91, 0x10}, false},
		{"empty", []byte{}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAddr(tt.location); got != tt.want {
				t.Errorf("IsAddr() = %v, want %v", got, tt.want)
			}
		})
	}
}
