package types

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func otherFrame(name, value string) Frame {
	return NewFrame(TypeOther, value, name)
}

func collectionValues(c *FrameCollection) []string {
	var out []string
	for f := range c.All() {
		v := f.Value()
		if f.IsInactive() {
			v = "<absent>"
		}
		out = append(out, f.DisplayName()+"="+v)
	}
	return out
}

func TestFrameCollection_InsertOrder(t *testing.T) {
	c := NewFrameCollection(
		otherFrame("TXXX", "x"),
		NewFrame(TypeComment, "second", ""),
		NewFrame(TypeTitle, "t", ""),
		otherFrame("PRIV", "p"),
		NewFrame(TypeComment, "third", ""),
	)
	c.Insert(NewFrame(TypeComment, "fourth", ""))

	want := []string{"Title=t", "Comment=second", "Comment=third", "Comment=fourth", "PRIV=p", "TXXX=x"}
	got := collectionValues(&c)
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrameCollection_FilterDifferent(t *testing.T) {
	a := NewFrameCollection(NewFrame(TypeTitle, "X", ""), NewFrame(TypeArtist, "Y", ""))
	a.At(0).Index = 3
	b := NewFrameCollection(NewFrame(TypeTitle, "X", ""), NewFrame(TypeArtist, "Z", ""))

	a.FilterDifferent(&b)

	title := a.Find(ExtendedType{Type: TypeTitle})
	if title == nil || title.IsInactive() || title.Value() != "X" {
		t.Fatalf("Title = %+v, want active X", title)
	}
	if title.Index != -1 {
		t.Errorf("Title.Index = %d, want -1", title.Index)
	}
	if artist := a.Find(ExtendedType{Type: TypeArtist}); artist == nil || !artist.IsInactive() {
		t.Errorf("Artist = %+v, want inactive", artist)
	}
}

func TestFrameCollection_FilterDifferent_MissingFrames(t *testing.T) {
	a := NewFrameCollection(NewFrame(TypeTitle, "X", ""), NewFrame(TypeAlbum, "A", ""))
	b := NewFrameCollection(NewFrame(TypeTitle, "X", ""), otherFrame("TXXX", "only in b"))

	a.FilterDifferent(&b)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3: %v", a.Len(), collectionValues(&a))
	}
	if album := a.Find(ExtendedType{Type: TypeAlbum}); album == nil || !album.IsInactive() {
		t.Errorf("Album = %+v, want inactive", album)
	}
	txxx := a.Find(ExtendedType{Type: TypeOther, Name: "TXXX"})
	if txxx == nil || !txxx.IsInactive() || txxx.Index != -1 {
		t.Errorf("TXXX = %+v, want inserted inactive with index -1", txxx)
	}
}

func TestFrameCollection_FilterDifferent_Pictures(t *testing.T) {
	pic := func(data string) Frame {
		f := NewFrame(TypePicture, "", "")
		f.Fields = []Field{{FieldDescription, ""}, {FieldData, []byte(data)}}
		return f
	}
	a := NewFrameCollection(pic("img1"), pic("img2"))
	b := NewFrameCollection(pic("img1"), pic("other"))

	a.FilterDifferent(&b)

	if a.At(0).IsInactive() {
		t.Error("first picture with equal data became inactive")
	}
	if !a.At(1).IsInactive() {
		t.Error("second picture with different data is still active")
	}
}

func TestFrameCollection_AddMissingStandardFrames(t *testing.T) {
	c := NewFrameCollection(NewFrame(TypeArtist, "A", ""), otherFrame("TXXX", "x"))

	c.AddMissingStandardFrames()
	once := collectionValues(&c)
	c.AddMissingStandardFrames()
	twice := collectionValues(&c)

	if len(once) != 8 {
		t.Fatalf("frames = %v, want 7 standard frames plus TXXX", once)
	}
	if len(twice) != len(once) {
		t.Errorf("second call changed frames: %v -> %v", once, twice)
	}
	if v := c.Find(ExtendedType{Type: TypeArtist}).Value(); v != "A" {
		t.Errorf("Artist = %q, want %q", v, "A")
	}
	if !c.Find(ExtendedType{Type: TypeGenre}).IsInactive() {
		t.Error("added Genre frame is active")
	}
}

func TestFrameCollection_CopyEnabledFrames(t *testing.T) {
	c := NewFrameCollection(NewFrame(TypeTitle, "T", ""), NewFrame(TypeArtist, "A", ""), otherFrame("TXXX", "x"))
	for f := range c.All() {
		f.Index = 7
	}

	var flt FrameFilter
	flt.Enable(TypeArtist, "", false)
	flt.Enable(TypeOther, "TXXX", false)

	cp := c.CopyEnabledFrames(flt)
	if cp.Len() != 1 {
		t.Fatalf("copy = %v, want only Title", collectionValues(&cp))
	}
	if cp.At(0).Type != TypeTitle || cp.At(0).Index != -1 {
		t.Errorf("copied frame = %+v, want Title with index -1", cp.At(0))
	}
	if c.At(0).Index != 7 {
		t.Error("CopyEnabledFrames modified the source")
	}

	c.RemoveDisabledFrames(flt)
	if c.Len() != 1 {
		t.Errorf("after RemoveDisabledFrames: %v, want only Title", collectionValues(&c))
	}
}

func TestFrameCollection_Merge(t *testing.T) {
	c := NewFrameCollection(NewFrame(TypeTitle, "", ""), NewFrame(TypeArtist, "Mine", ""))
	other := NewFrameCollection(NewFrame(TypeTitle, "Theirs", ""), NewFrame(TypeArtist, "Theirs", ""),
		NewFrame(TypeAlbum, "Album", ""))

	c.Merge(&other)

	if v := c.Title(); v != "Theirs" {
		t.Errorf("Title = %q, want %q", v, "Theirs")
	}
	if v := c.Artist(); v != "Mine" {
		t.Errorf("Artist = %q, want %q", v, "Mine")
	}
	album := c.Find(ExtendedType{Type: TypeAlbum})
	if album == nil || album.Value() != "Album" || !album.ValueChanged {
		t.Errorf("Album = %+v, want inserted and changed", album)
	}
}

func TestFrameCollection_IsEmptyOrInactive(t *testing.T) {
	c := NewFrameCollection(NewFrame(TypeTitle, "", ""), otherFrame("TXXX", "x"))
	c.AddMissingStandardFrames()
	if !c.IsEmptyOrInactive() {
		t.Error("IsEmptyOrInactive() = false for empty standard frames")
	}
	c.SetIntValue(TypeTrack, 4)
	if c.IsEmptyOrInactive() {
		t.Error("IsEmptyOrInactive() = true with a track number")
	}
}

func TestFrameCollection_FindByName(t *testing.T) {
	c := NewFrameCollection(
		NewFrame(TypeArtist, "A", "TPE1"),
		otherFrame("TXXX - User defined text information\nMOOD_FOO", "m"),
		otherFrame("PCNT", "5"),
		otherFrame("Rating Information", "ri"),
		NewFrame(TypeComment, "c1", ""),
		NewFrame(TypeComment, "c2", ""),
	)

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"Artist", 0, "A"},
		{"artist", 0, "A"},
		{"tpe1", 0, "A"},
		{"mood_foo", 0, "m"},
		{"Play Counter", 0, "5"},
		{"Comment", 1, "c2"},
	}

	for _, tt := range tests {
		f := c.FindByName(tt.name, tt.index)
		if f == nil || f.Value() != tt.want {
			t.Errorf("FindByName(%q, %d) = %+v, want value %q", tt.name, tt.index, f, tt.want)
		}
	}

	if f := c.FindByName("Comment", 2); f != nil {
		t.Errorf("FindByName(Comment, 2) = %+v, want nil", f)
	}
	if f := c.SearchByName("Rating"); f != nil {
		t.Errorf("SearchByName(Rating) = %+v, want nil", f)
	}
}

func TestFrameCollection_Values(t *testing.T) {
	var c FrameCollection
	if _, ok := c.Value(TypeTitle); ok {
		t.Error("Value() on empty collection reported ok")
	}
	if got := c.IntValue(TypeTrack); got != -1 {
		t.Errorf("IntValue() = %d, want -1", got)
	}

	c.SetIntValue(TypeTrack, -1)
	if c.Len() != 0 {
		t.Error("SetIntValue(-1) inserted a frame")
	}
	c.SetIntValue(TypeTrack, 0)
	if v, ok := c.Value(TypeTrack); !ok || v != "" {
		t.Errorf("after SetIntValue(0): %q, %v, want empty and ok", v, ok)
	}
	c.SetIntValue(TypeTrack, 9)
	if got := c.IntValue(TypeTrack); got != 9 {
		t.Errorf("IntValue() = %d, want 9", got)
	}

	c.SetValue(ExtendedType{Type: TypeOther, Name: "CUSTOM"}, "v")
	if v, ok := c.ExtendedValue(ExtendedType{Type: TypeOther, Name: "CUSTOM"}); !ok || v != "v" {
		t.Errorf("ExtendedValue(CUSTOM) = %q, %v, want v, true", v, ok)
	}
}

func TestFrameCollection_MarkChanged(t *testing.T) {
	orig := NewFrameCollection(NewFrame(TypeTitle, "T", ""), NewFrame(TypeArtist, "A", ""))
	orig.At(0).Index = 0
	orig.At(1).Index = 1

	edited := NewFrameCollection(NewFrame(TypeTitle, "T", ""), NewFrame(TypeArtist, "B", ""), NewFrame(TypeAlbum, "N", ""))
	edited.At(0).Index = 0
	edited.At(1).Index = 1

	edited.MarkChanged(&orig)

	want := map[Type]bool{TypeTitle: false, TypeArtist: true, TypeAlbum: true}
	for f := range edited.All() {
		if f.ValueChanged != want[f.Type] {
			t.Errorf("%s.ValueChanged = %v, want %v", f.DisplayName(), f.ValueChanged, want[f.Type])
		}
	}
}

func TestFromSubframes(t *testing.T) {
	fields := []Field{
		{FieldData, []any{0, 1000}},
		{FieldSubframe, "TIT2"},
		{FieldTextEnc, 0},
		{FieldText, "Intro"},
		{FieldSubframe, "TXXX"},
		{FieldTextEnc, 0},
		{FieldDescription, "d"},
		{FieldText, "v"},
	}
	byID := func(name string) ExtendedType {
		if name == "TIT2" {
			return ExtendedType{Type: TypeTitle, Name: name}
		}
		return ExtendedType{Type: TypeOther, Name: name}
	}
	frames := FromSubframes(fields, byID)
	if frames.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", frames.Len())
	}
	title := frames.Find(ExtendedType{Type: TypeTitle})
	if title == nil || title.Value() != "Intro" || title.Index != 0 || len(title.Fields) != 2 {
		t.Errorf("title subframe = %s", spew.Sdump(title))
	}
	txxx := frames.Find(ExtendedType{Type: TypeOther, Name: "TXXX"})
	if txxx == nil || txxx.Value() != "v" || txxx.Index != 1 {
		t.Errorf("TXXX subframe = %s", spew.Sdump(txxx))
	}
}

func TestFromSubframes_DisplayNames(t *testing.T) {
	fields := []Field{
		{FieldSubframe, "Title"},
		{FieldText, "Intro"},
		{FieldSubframe, ""},
		{FieldText, "dropped"},
	}
	frames := FromSubframes(fields, nil)
	if frames.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", frames.Len())
	}
	if got, _ := frames.Value(TypeTitle); got != "Intro" {
		t.Errorf("title = %q, want Intro", got)
	}
}
