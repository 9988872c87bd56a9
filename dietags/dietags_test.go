package dietags

import (
	"debug/dwarf"
	"testing"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		tag        dwarf.Tag
		wantType   bool
		wantFunc   bool
		wantVar    bool
		wantMod    bool
		wantColl   bool
	}{
		{dwarf.TagBaseType, true, false, false, false, false},
		{dwarf.TagStructType, true, false, false, false, true},
		{dwarf.TagUnionType, true, false, false, false, true},
		{dwarf.TagPointerType, true, false, false, true, false},
		{dwarf.TagConstType, true, false, false, true, false},
		{dwarf.TagVolatileType, true, false, false, true, false},
		{dwarf.TagSubprogram, false, true, false, false, false},
		{dwarf.TagVariable, false, false, true, false, false},
		{dwarf.TagLabel, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			if got := IsType(tt.tag); got != tt.wantType {
				t.Errorf("IsType(%s) = %v, want %v", tt.tag, got, tt.wantType)
			}
			if got := IsFunction(tt.tag); got != tt.wantFunc {
				t.Errorf("IsFunction(%s) = %v, want %v", tt.tag, got, tt.wantFunc)
			}
			if got := IsVariable(tt.tag); got != tt.wantVar {
				t.Errorf("IsVariable(%s) = %v, want %v", tt.tag, got, tt.wantVar)
			}
			if got := IsModifier(tt.tag); got != tt.wantMod {
				t.Errorf("IsModifier(%s) = %v, want %v", tt.tag, got, tt.wantMod)
			}
			if got := IsCollection(tt.tag); got != tt.wantColl {
				t.Errorf("IsCollection(%s) = %v, want %v", tt.tag, got, tt.wantColl)
			}
		})
	}
}

func TestPrimitiveAlias(t *testing.T) {
	tests := map[string]string{
		"int":           "c_int",
		"unsigned int":  "c_uint",
		"size_t":        "c_size_t",
		"long double":   "c_longdouble",
		"unsigned char": "c_ubyte",
	}

	for name, want := range tests {
		if got := PrimitiveAlias[name]; got != want {
			t.Errorf("PrimitiveAlias[%q] = %q, want %q", name, got, want)
		}
	}
}

func TestEnumUnderlying(t *testing.T) {
	if EnumUnderlying[4] != "c_uint" {
		t.Errorf("EnumUnderlying[4] = %q, want c_uint", EnumUnderlying[4])
	}
}
