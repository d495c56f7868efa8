package id3v2

import (
	"testing"

	"github.com/simonhull/tagframe/internal/types"
)

func TestLookupID(t *testing.T) {
	tests := []struct {
		id       string
		wantType types.Type
		wantName string
	}{
		{"TIT2", types.TypeTitle, "TIT2 - Title/songname/content description"},
		{"TIT1", types.TypeWork, "TIT1 - Content group description"},
		{"GRP1", types.TypeOther, "GRP1 - Grouping"},
		{"APIC", types.TypePicture, "APIC - Attached picture"},
		{"XYZW", types.TypeUnknownFrame, "XYZW - ????"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := lookupID(tt.id)
			if s.typ != tt.wantType {
				t.Errorf("lookupID(%q).typ = %v, want %v", tt.id, s.typ, tt.wantType)
			}
			if s.name() != tt.wantName {
				t.Errorf("lookupID(%q).name() = %q, want %q", tt.id, s.name(), tt.wantName)
			}
		})
	}
}

func TestIDOfType(t *testing.T) {
	tests := map[types.Type]string{
		types.TypeTitle:         "TIT2",
		types.TypeGenre:         "TCON",
		types.TypeRating:        "POPM",
		types.TypeCatalogNumber: "",
		types.TypeOther:         "",
	}
	for typ, want := range tests {
		if got := idOfType(typ); got != want {
			t.Errorf("idOfType(%v) = %q, want %q", typ, got, want)
		}
	}
}

func TestIsValidID(t *testing.T) {
	tests := map[string]bool{
		"TIT2": true,
		"WXXX": true,
		"tit2": false,
		"1ABC": false,
		"TIT":  false,
		"TI-2": false,
	}
	for id, want := range tests {
		if got := isValidID(id); got != want {
			t.Errorf("isValidID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestIDOfName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"TXXX", "TXXX", true},
		{"TXXX - User defined text information\nMOOD", "TXXX", true},
		{"PRIV\nowner", "PRIV", true},
		{"TXXXY", "", false},
		{"ABCD", "", false},
		{"TX", "", false},
	}
	for _, tt := range tests {
		got, ok := idOfName(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("idOfName(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
