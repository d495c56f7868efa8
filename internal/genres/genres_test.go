package genres

import (
	"sort"
	"testing"
)

func TestTableSorted(t *testing.T) {
	names := Names()
	if names[0] != "" {
		t.Errorf("Names()[0] = %q, want empty", names[0])
	}
	if last := names[len(names)-1]; last != Custom {
		t.Errorf("last name = %q, want %q", last, Custom)
	}
	if !sort.StringsAreSorted(names[1 : len(names)-1]) {
		t.Error("genre names are not sorted")
	}
	if Count() != 192 {
		t.Errorf("Count() = %d, want 192", Count())
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		num  int
		want string
	}{
		{0, "Blues"},
		{9, "Metal"},
		{17, "Rock"},
		{191, "Psybient"},
		{192, ""},
		{255, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := Name(tt.num); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.num, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Rock", 17},
		{"Blues", 0},
		{"rock", Unknown},
		{"Nonexistent", Unknown},
		{"", Unknown},
		{Custom, Unknown},
	}

	for _, tt := range tests {
		if got := Number(tt.name); got != tt.want {
			t.Errorf("Number(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestNameString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9", "Metal"},
		{"(9)", "Metal"},
		{"(9)Heavy", "Metal"},
		{"Metal", "Metal"},
		{"(abc)", "(abc)"},
		{"()", "()"},
		{"300", "300"},
		{"", ""},
		{"Some Genre", "Some Genre"},
	}

	for _, tt := range tests {
		if got := NameString(tt.in); got != tt.want {
			t.Errorf("NameString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		in          string
		parentheses bool
		want        string
	}{
		{"Rock", true, "(17)"},
		{"Rock", false, "17"},
		{"Blues", true, "(0)"},
		{"Unknown Style", true, "Unknown Style"},
		{"", false, ""},
	}

	for _, tt := range tests {
		if got := NumberString(tt.in, tt.parentheses); got != tt.want {
			t.Errorf("NumberString(%q, %v) = %q, want %q", tt.in, tt.parentheses, got, tt.want)
		}
	}
}
