package types

import "testing"

func TestFrameFilter_ZeroValueEnablesAll(t *testing.T) {
	var flt FrameFilter
	if !flt.AreAllEnabled() {
		t.Error("zero FrameFilter: AreAllEnabled() = false")
	}
	for _, typ := range []Type{TypeTitle, TypeWork, TypeOther, TypeUnknownFrame} {
		if !flt.IsEnabled(typ, "X") {
			t.Errorf("IsEnabled(%v) = false on zero filter", typ)
		}
	}
}

func TestFrameFilter_Enable(t *testing.T) {
	var flt FrameFilter

	flt.Enable(TypeGenre, "", false)
	flt.Enable(TypeOther, "PRIV", false)

	tests := []struct {
		typ  Type
		name string
		want bool
	}{
		{TypeGenre, "", false},
		{TypeGenre, "TCON", false},
		{TypeArtist, "", true},
		{TypeOther, "PRIV", false},
		{TypeOther, "TXXX", true},
		{TypeOther, "", true},
	}
	for _, tt := range tests {
		if got := flt.IsEnabled(tt.typ, tt.name); got != tt.want {
			t.Errorf("IsEnabled(%v, %q) = %v, want %v", tt.typ, tt.name, got, tt.want)
		}
	}
	if flt.AreAllEnabled() {
		t.Error("AreAllEnabled() = true with disabled frames")
	}

	flt.Enable(TypeOther, "PRIV", true)
	flt.Enable(TypeGenre, "", true)
	if !flt.AreAllEnabled() {
		t.Error("AreAllEnabled() = false after re-enabling everything")
	}

	flt.Enable(TypeTitle, "", false)
	flt.EnableAll()
	if !flt.IsEnabled(TypeTitle, "") {
		t.Error("EnableAll() did not enable Title")
	}
}

func TestTagConfig_FormatTrackNumber(t *testing.T) {
	tests := []struct {
		name     string
		cfg      TagConfig
		value    string
		addTotal bool
		want     string
	}{
		{"defaults keep value", DefaultTagConfig(), "3", true, "3"},
		{"padding", TagConfig{TrackNumberDigits: 2}, "3", false, "03"},
		{"total", TagConfig{TotalNumberOfTracks: 12, EnableTotalNumberOfTracks: true}, "3", true, "3/12"},
		{"total not requested", TagConfig{TotalNumberOfTracks: 12, EnableTotalNumberOfTracks: true}, "3", false, "3"},
		{"padding and total", TagConfig{TrackNumberDigits: 2, TotalNumberOfTracks: 9, EnableTotalNumberOfTracks: true}, "3", true, "03/09"},
		{"already has total", TagConfig{TrackNumberDigits: 2}, "3/9", false, "3/9"},
		{"not a number", TagConfig{TrackNumberDigits: 2}, "A1", false, "A1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.FormatTrackNumber(tt.value, tt.addTotal); got != tt.want {
				t.Errorf("FormatTrackNumber(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDisplayNameOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Title", "Title"},
		{"POPM", "Popularimeter"},
		{"TXXX - User defined text information\nMOOD", "MOOD"},
		{"WXXX - User defined URL link", "User-defined URL"},
		{"\251mvn", "Movement Name"},
		{"NOT_KNOWN", "NOT_KNOWN"},
	}

	for _, tt := range tests {
		if got := DisplayNameOf(tt.name); got != tt.want {
			t.Errorf("DisplayNameOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
