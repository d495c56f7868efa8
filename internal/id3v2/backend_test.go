package id3v2

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/davecgh/go-spew/spew"

	"github.com/simonhull/tagframe/internal/types"
)

func newTestBackend(t *testing.T, mutate func(*types.TagConfig)) *Backend {
	t.Helper()
	cfg := types.DefaultTagConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(&cfg)
}

// readTestTag renders a tag built with github.com/bogem/id3v2 and reads
// it back.
func readTestTag(t *testing.T, version byte, build func(tag *id3v2.Tag)) *Backend {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(version)
	build(tag)
	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	cfg := types.DefaultTagConfig()
	b, err := Read(&buf, &cfg)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return b
}

func TestAddFrameMapping(t *testing.T) {
	tests := []struct {
		name      string
		frame     types.Frame
		wantType  types.Type
		wantName  string
		wantValue string
	}{
		{
			name:      "title",
			frame:     types.NewFrame(types.TypeTitle, "Song", ""),
			wantType:  types.TypeTitle,
			wantName:  "TIT2 - Title/songname/content description",
			wantValue: "Song",
		},
		{
			name:      "comment",
			frame:     types.NewFrame(types.TypeComment, "Nice", ""),
			wantType:  types.TypeComment,
			wantName:  "COMM - Comments",
			wantValue: "Nice",
		},
		{
			name:      "catalog number in TXXX",
			frame:     types.NewFrame(types.TypeCatalogNumber, "CAT-1", ""),
			wantType:  types.TypeCatalogNumber,
			wantName:  "TXXX - User defined text information",
			wantValue: "CAT-1",
		},
		{
			name:      "free name in TXXX",
			frame:     types.NewFrame(types.TypeOther, "x", "MYFIELD"),
			wantType:  types.TypeOther,
			wantName:  "TXXX - User defined text information\nMYFIELD",
			wantValue: "x",
		},
		{
			name:      "frame ID as name",
			frame:     types.NewFrame(types.TypeOther, "Tech", "TCAT"),
			wantType:  types.TypeOther,
			wantName:  "TCAT - Podcast category",
			wantValue: "Tech",
		},
		{
			name:      "rating",
			frame:     types.NewFrame(types.TypeRating, "196", ""),
			wantType:  types.TypeRating,
			wantName:  "POPM - Popularimeter",
			wantValue: "196",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t, nil)
			f := tt.frame
			if !b.AddFrame(&f) {
				t.Fatal("AddFrame() = false")
			}
			if f.Index != 0 {
				t.Errorf("Index = %d, want 0", f.Index)
			}
			if f.Type != tt.wantType || f.Name != tt.wantName {
				t.Errorf("added type = (%v, %q), want (%v, %q)", f.Type, f.Name, tt.wantType, tt.wantName)
			}

			frames := b.AllFrames()
			if frames.Len() != 1 {
				t.Fatalf("AllFrames().Len() = %d, want 1", frames.Len())
			}
			got := frames.At(0)
			if got.Type != tt.wantType || got.Name != tt.wantName {
				t.Errorf("read type = (%v, %q), want (%v, %q)", got.Type, got.Name, tt.wantType, tt.wantName)
			}
			if got.Value() != tt.wantValue {
				t.Errorf("Value() = %q, want %q", got.Value(), tt.wantValue)
			}
		})
	}
}

func TestValueFixUps(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.TagConfig)
		frame     types.Frame
		wantText  string
		wantValue string
	}{
		{
			name:      "numeric genre",
			mutate:    func(c *types.TagConfig) { c.GenreNotNumeric = false },
			frame:     types.NewFrame(types.TypeGenre, "Rock", ""),
			wantText:  "17",
			wantValue: "Rock",
		},
		{
			name:      "text genre",
			frame:     types.NewFrame(types.TypeGenre, "Rock", ""),
			wantText:  "Rock",
			wantValue: "Rock",
		},
		{
			name:      "padded track",
			mutate:    func(c *types.TagConfig) { c.TrackNumberDigits = 2 },
			frame:     types.NewFrame(types.TypeTrack, "3", ""),
			wantText:  "03",
			wantValue: "03",
		},
		{
			name:      "involved people",
			frame:     types.NewFrame(types.TypeArranger, "Producer", ""),
			wantText:  "Producer",
			wantValue: "Producer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t, tt.mutate)
			f := tt.frame
			b.AddFrame(&f)
			frames := b.AllFrames()
			got := frames.Find(types.ExtendedType{Type: tt.frame.Type})
			if got == nil {
				t.Fatalf("frame %v not found in %s", tt.frame.Type, spew.Sdump(frames.Frames()))
			}
			if got.Value() != tt.wantValue {
				t.Errorf("Value() = %q, want %q", got.Value(), tt.wantValue)
			}
			if text, _ := got.FieldValue(types.FieldText); text != tt.wantText {
				t.Errorf("Text field = %v, want %q", text, tt.wantText)
			}
		})
	}
}

func TestSetFrame(t *testing.T) {
	b := newTestBackend(t, nil)
	title := types.NewFrame(types.TypeTitle, "Old", "")
	artist := types.NewFrame(types.TypeArtist, "Someone", "")
	b.AddFrame(&title)
	b.AddFrame(&artist)

	frames := b.AllFrames()
	f := frames.Find(types.ExtendedType{Type: types.TypeTitle})
	f.SetValueIfChanged("New")
	if !b.SetFrame(f) {
		t.Fatal("SetFrame() = false")
	}

	// detached frame, found by type
	detached := types.NewFrame(types.TypeArtist, "Other", "")
	detached.ValueChanged = true
	if !b.SetFrame(&detached) {
		t.Fatal("SetFrame(detached) = false")
	}

	// detached frame without counterpart is added
	album := types.NewFrame(types.TypeAlbum, "Album", "")
	if !b.SetFrame(&album) {
		t.Fatal("SetFrame(album) = false")
	}

	frames = b.AllFrames()
	for _, want := range []struct {
		typ   types.Type
		value string
	}{
		{types.TypeTitle, "New"},
		{types.TypeArtist, "Other"},
		{types.TypeAlbum, "Album"},
	} {
		if v, _ := frames.Value(want.typ); v != want.value {
			t.Errorf("Value(%v) = %q, want %q", want.typ, v, want.value)
		}
	}
	if !b.Changed() {
		t.Error("Changed() = false after SetFrame")
	}
}

func TestSetFrameFields(t *testing.T) {
	b := newTestBackend(t, nil)
	comment := types.NewFrame(types.TypeComment, "text", "")
	b.AddFrame(&comment)

	frames := b.AllFrames()
	f := frames.Find(types.ExtendedType{Type: types.TypeComment})
	f.SetFieldValue(types.FieldLanguage, "deu")
	f.SetFieldValue(types.FieldText, "Text")
	if !b.SetFrame(f) {
		t.Fatal("SetFrame() = false")
	}

	frames = b.AllFrames()
	f = frames.Find(types.ExtendedType{Type: types.TypeComment})
	if lang, _ := f.FieldValue(types.FieldLanguage); lang != "deu" {
		t.Errorf("Language = %v, want deu", lang)
	}
	if f.Value() != "Text" {
		t.Errorf("Value() = %q, want %q", f.Value(), "Text")
	}
}

func TestDeleteFrames(t *testing.T) {
	b := newTestBackend(t, nil)
	for _, f := range []types.Frame{
		types.NewFrame(types.TypeTitle, "T", ""),
		types.NewFrame(types.TypeArtist, "A", ""),
		types.NewFrame(types.TypeOther, "x", "MYFIELD"),
	} {
		b.AddFrame(&f)
	}

	var flt types.FrameFilter
	flt.Enable(types.TypeTitle, "", false)
	b.DeleteFrames(flt)

	frames := b.AllFrames()
	if frames.Len() != 1 || frames.At(0).Type != types.TypeTitle {
		t.Fatalf("AllFrames() = %s, want only the title", spew.Sdump(frames.Frames()))
	}

	if !b.DeleteFrame(*frames.At(0)) {
		t.Error("DeleteFrame() = false")
	}
	if !b.IsEmpty() {
		t.Error("IsEmpty() = false after deleting all frames")
	}
	if b.DeleteFrame(types.NewFrame(types.TypeTitle, "", "")) {
		t.Error("DeleteFrame(detached) = true")
	}
}

func TestTagFormat(t *testing.T) {
	b := newTestBackend(t, nil)
	if got := b.TagFormat(); got != "" {
		t.Errorf("TagFormat() = %q, want empty", got)
	}
	f := types.NewFrame(types.TypeTitle, "T", "")
	b.AddFrame(&f)
	if got := b.TagFormat(); got != "ID3v2.4.0" {
		t.Errorf("TagFormat() = %q, want ID3v2.4.0", got)
	}
	b.SetVersion(3)
	if got := b.TagFormat(); got != "ID3v2.3.0" {
		t.Errorf("TagFormat() = %q, want ID3v2.3.0", got)
	}
}

func TestReadMagicDescriptions(t *testing.T) {
	b := readTestTag(t, 4, func(tag *id3v2.Tag) {
		tag.AddTextFrame("TIT2", id3v2.EncodingUTF8, "Title")
		tag.AddFrame("TXXX", id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "CATALOGNUMBER", Value: "CAT-9",
		})
		tag.AddFrame("TXXX", id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "QuodLibet::albumartistsort", Value: "X",
		})
	})

	frames := b.AllFrames()
	if v, _ := frames.Value(types.TypeTitle); v != "Title" {
		t.Errorf("Value(Title) = %q, want Title", v)
	}
	if v, _ := frames.Value(types.TypeCatalogNumber); v != "CAT-9" {
		t.Errorf("Value(CatalogNumber) = %q, want CAT-9", v)
	}
	name := "TXXX - User defined text information\nalbumartistsort"
	if f := frames.Find(types.ExtendedType{Type: types.TypeOther, Name: name}); f == nil || f.Value() != "X" {
		t.Errorf("frame %q not found in %s", name, spew.Sdump(frames.Frames()))
	}
	if got := b.TagFormat(); got != "ID3v2.4.0" {
		t.Errorf("TagFormat() = %q, want ID3v2.4.0", got)
	}
}

func TestReadV23Dates(t *testing.T) {
	b := readTestTag(t, 3, func(tag *id3v2.Tag) {
		tag.AddTextFrame("TYER", id3v2.EncodingISO, "2024")
		tag.AddTextFrame("TDAT", id3v2.EncodingISO, "3101")
		tag.AddTextFrame("TORY", id3v2.EncodingISO, "1999")
	})

	frames := b.AllFrames()
	if v, _ := frames.Value(types.TypeDate); v != "2024-01-31" {
		t.Errorf("Value(Date) = %q, want 2024-01-31", v)
	}
	if v, _ := frames.Value(types.TypeOriginalDate); v != "1999" {
		t.Errorf("Value(OriginalDate) = %q, want 1999", v)
	}
	if frames.Len() != 2 {
		t.Errorf("AllFrames().Len() = %d, want 2: %s", frames.Len(), spew.Sdump(frames.Frames()))
	}
}

func TestFramesToWriteV23(t *testing.T) {
	b := newTestBackend(t, func(c *types.TagConfig) { c.ID3v2Version = 3 })
	for _, f := range []types.Frame{
		types.NewFrame(types.TypeDate, "2024-01-31", ""),
		types.NewFrame(types.TypeArranger, "producer|A", ""),
		types.NewFrame(types.TypePerformer, "guitar|B", ""),
		types.NewFrame(types.TypeTitle, "T", ""),
	} {
		b.AddFrame(&f)
	}

	var ids []string
	texts := map[string]string{}
	for _, nf := range b.framesToWrite() {
		ids = append(ids, nf.id)
		texts[nf.id] = b.textOf(nf)
	}
	want := []string{"TYER", "TDAT", "IPLS", "TIT2"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("frame IDs = %v, want %v", ids, want)
	}
	if texts["TDAT"] != "3101" {
		t.Errorf("TDAT = %q, want 3101", texts["TDAT"])
	}
	if texts["IPLS"] != "producer|A|guitar|B" {
		t.Errorf("IPLS = %q, want producer|A|guitar|B", texts["IPLS"])
	}
}

func TestFrameIDs(t *testing.T) {
	b := newTestBackend(t, nil)
	ids := b.FrameIDs()
	if ids[0] != types.TypeTitle.String() {
		t.Errorf("FrameIDs()[0] = %q, want %q", ids[0], types.TypeTitle.String())
	}
	if ids[len(ids)-1] != ChaptersName {
		t.Errorf("last FrameID = %q, want %q", ids[len(ids)-1], ChaptersName)
	}
	found := false
	for _, id := range ids {
		if id == "TXXX - User defined text information" {
			found = true
		}
		if id == "PCNT - Play counter" {
			t.Error("FrameIDs() contains unsupported PCNT")
		}
	}
	if !found {
		t.Error("FrameIDs() misses TXXX")
	}
}
