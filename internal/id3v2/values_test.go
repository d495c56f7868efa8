package id3v2

import (
	"slices"
	"testing"

	"github.com/simonhull/tagframe/internal/types"
)

func TestGenreValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rock", "Rock"},
		{"17", "Rock"},
		{"(17)", "Rock"},
		{"(17)(20)", "Rock|Alternative"},
		{"(17)Rock", "Rock"},
		{"(17)Custom", "Rock|Custom"},
		{"(RX)", "Remix"},
		{"((Intro)", "(Intro)"},
		{"17|Custom", "Rock|Custom"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := genreValue(tt.in); got != tt.want {
				t.Errorf("genreValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenreNumberString(t *testing.T) {
	tests := []struct {
		in          string
		parentheses bool
		want        string
	}{
		{"Rock", false, "17"},
		{"Rock", true, "(17)"},
		{"Rock|Custom", true, "(17)|Custom"},
		{"Custom", false, "Custom"},
	}

	for _, tt := range tests {
		if got := genreNumberString(tt.in, tt.parentheses); got != tt.want {
			t.Errorf("genreNumberString(%q, %v) = %q, want %q", tt.in, tt.parentheses, got, tt.want)
		}
	}
}

func TestValueOfAndSetValue(t *testing.T) {
	tests := []struct {
		id     string
		fields []types.Field
		value  string
		want   string
	}{
		{"TIT2", []types.Field{
			{ID: types.FieldTextEnc, Value: 0},
			{ID: types.FieldText, Value: "old"},
		}, "new", "new"},
		{"WOAR", []types.Field{
			{ID: types.FieldURL, Value: "http://old"},
		}, "http://new", "http://new"},
		{"APIC", []types.Field{
			{ID: types.FieldTextEnc, Value: 0},
			{ID: types.FieldImageFormat, Value: ""},
			{ID: types.FieldMimeType, Value: "image/png"},
			{ID: types.FieldPictureType, Value: 3},
			{ID: types.FieldDescription, Value: "old"},
			{ID: types.FieldData, Value: []byte{1}},
		}, "cover", "cover"},
		{"POPM", []types.Field{
			{ID: types.FieldEmail, Value: ""},
			{ID: types.FieldRating, Value: 1},
			{ID: types.FieldCounter, Value: 0},
		}, "255", "255"},
		{"UFID", []types.Field{
			{ID: types.FieldOwner, Value: "http://musicbrainz.org"},
			{ID: types.FieldIdentifier, Value: []byte(" ")},
		}, "0123ABCD-EF", "0123ABCD-EF"},
		{"OWNE", []types.Field{
			{ID: types.FieldTextEnc, Value: 0},
			{ID: types.FieldDate, Value: "        "},
			{ID: types.FieldPrice, Value: ""},
			{ID: types.FieldSeller, Value: ""},
		}, "Shop", "Shop"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			l := fieldList(slices.Clone(tt.fields))
			setValue(tt.id, l, tt.value)
			if got := valueOf(tt.id, l); got != tt.want {
				t.Errorf("valueOf() after setValue(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSetValueRejectsInvalid(t *testing.T) {
	l := fieldList{
		{ID: types.FieldEmail, Value: ""},
		{ID: types.FieldRating, Value: 1},
		{ID: types.FieldCounter, Value: 0},
	}
	setValue("POPM", l, "many")
	if got := valueOf("POPM", l); got != "1" {
		t.Errorf("valueOf(POPM) = %q, want %q", got, "1")
	}
}

func TestApplyFields(t *testing.T) {
	l := fieldList{
		{ID: types.FieldTextEnc, Value: 0},
		{ID: types.FieldLanguage, Value: "eng"},
		{ID: types.FieldDescription, Value: ""},
		{ID: types.FieldText, Value: "old"},
	}
	got := applyFields(l, []types.Field{
		{ID: types.FieldLanguage, Value: "de"},
		{ID: types.FieldText, Value: "new"},
		{ID: types.FieldURL, Value: "ignored"},
	})
	if s := got.str(types.FieldLanguage); s != "de " {
		t.Errorf("Language = %q, want %q", s, "de ")
	}
	if s := got.str(types.FieldText); s != "new" {
		t.Errorf("Text = %q, want %q", s, "new")
	}
	if _, ok := got.get(types.FieldURL); ok {
		t.Error("applyFields() added a field the frame does not have")
	}
	if s := l.str(types.FieldText); s != "old" {
		t.Errorf("applyFields() modified its input, Text = %q", s)
	}
}
