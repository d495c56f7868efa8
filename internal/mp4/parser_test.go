package mp4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	gomp4 "github.com/abema/go-mp4"

	"github.com/simonhull/tagframe/internal/types"
)

// createMvhdAtom creates a version 0 movie header.
func createMvhdAtom(timescale, duration uint32) []byte {
	buf := &bytes.Buffer{}
	buf.Write([]byte{0, 0, 0, 0})                  // version and flags
	binary.Write(buf, binary.BigEndian, uint32(0)) // creation time
	binary.Write(buf, binary.BigEndian, uint32(0)) // modification time
	binary.Write(buf, binary.BigEndian, timescale)
	binary.Write(buf, binary.BigEndian, duration)
	buf.Write(make([]byte, 80))
	return createMockAtom("mvhd", buf.Bytes())
}

// createTrakAtom creates a track with one audio sample entry and an
// optional decoder specific info.
func createTrakAtom(codec string, channels, sampleSize uint16, sampleRate uint32, dsi []byte) []byte {
	entry := &bytes.Buffer{}
	entry.Write(make([]byte, 6))                      // reserved
	binary.Write(entry, binary.BigEndian, uint16(1))  // data reference index
	entry.Write(make([]byte, 8))                      // version, revision, vendor
	binary.Write(entry, binary.BigEndian, channels)   // channels
	binary.Write(entry, binary.BigEndian, sampleSize) // sample size
	entry.Write(make([]byte, 4))                      // compression ID, packet size
	binary.Write(entry, binary.BigEndian, sampleRate<<16)
	if dsi != nil {
		es := []byte{0x03, byte(3 + 2 + 13 + 2 + len(dsi)), 0, 1, 0}
		es = append(es, 0x04, byte(13+2+len(dsi)), 0x40, 0x15)
		es = append(es, make([]byte, 11)...)
		es = append(es, 0x05, byte(len(dsi)))
		es = append(es, dsi...)
		entry.Write(createMockAtom("esds", []byte{0, 0, 0, 0}, es))
	}

	stsd := createMockAtom("stsd", []byte{0, 0, 0, 0, 0, 0, 0, 1}, createMockAtom(codec, entry.Bytes()))
	return createMockAtom("trak",
		createMockAtom("mdia",
			createMockAtom("minf",
				createMockAtom("stbl", stsd))))
}

// createMinimalM4A creates an M4A file of ten seconds holding the given
// ilst items.
func createMinimalM4A(items ...[]byte) []byte {
	ftyp := createMockAtom("ftyp", []byte("M4A "), []byte{0, 0, 0, 0}, []byte("M4A mp42isom"))

	moovChildren := [][]byte{
		createMvhdAtom(1000, 10000),
		createTrakAtom("mp4a", 2, 16, 44100, []byte{0x12, 0x10}),
	}
	if items != nil {
		hdlr := createMockAtom("hdlr", make([]byte, 8), []byte("mdirappl"), make([]byte, 9))
		meta := createMockAtom("meta", []byte{0, 0, 0, 0}, hdlr, createMockAtom("ilst", items...))
		moovChildren = append(moovChildren, createMockAtom("udta", meta))
	}

	data := append(ftyp, createMockAtom("moov", moovChildren...)...)
	return append(data, createMockAtom("mdat", make([]byte, 64))...)
}

func load(t *testing.T, data []byte, cfg *types.TagConfig) (*types.Tags, error) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return loader{}.Load(bytes.NewReader(data), int64(len(data)), "test.m4a", cfg)
}

func TestLoad(t *testing.T) {
	data := createMinimalM4A(
		createItem("\251nam", "My Song"),
		createItem("\251ART", "Artist"),
		createMockAtom("disk", createDataAtom(gomp4.DataTypeBinary, []byte{0, 0, 0, 1, 0, 2})),
		createFreeFormItem("com.apple.iTunes", "ISRC", "USRC17607839"),
		createMockAtom("covr", createDataAtom(dataTypeJPEG, []byte{0xFF, 0xD8, 0xFF})),
	)

	tags, err := load(t, data, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tags.Tag1 != nil {
		t.Error("Tag1 != nil, MP4 has no ID3v1 tag")
	}
	if got := tags.Tag2.TagFormat(); got != "MP4" {
		t.Errorf("TagFormat() = %q, want MP4", got)
	}

	frames := tags.Tag2.AllFrames()
	tests := []struct {
		typ  types.Type
		want string
	}{
		{types.TypeTitle, "My Song"},
		{types.TypeArtist, "Artist"},
		{types.TypeDisc, "1/2"},
		{types.TypeIsrc, "USRC17607839"},
	}
	for _, tt := range tests {
		if got, _ := frames.Value(tt.typ); got != tt.want {
			t.Errorf("Value(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
	if frames.Find(types.ExtendedType{Type: types.TypePicture}) == nil {
		t.Error("cover art frame missing")
	}

	info := tags.Info
	if !info.Valid || info.Container != "MP4" {
		t.Errorf("Valid, Container = %v, %q, want true, MP4", info.Valid, info.Container)
	}
	if info.Format != "MP4 AAC" {
		t.Errorf("Format = %q, want MP4 AAC", info.Format)
	}
	if info.Duration != 10*time.Second || info.SampleRate != 44100 || info.Channels != 2 {
		t.Errorf("Info = %v %d Hz %d ch, want 10s 44100 Hz 2 ch", info.Duration, info.SampleRate, info.Channels)
	}
	if len(tags.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", tags.Warnings)
	}
}

func TestLoad_NoIlst(t *testing.T) {
	tags, err := load(t, createMinimalM4A(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !tags.Tag2.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestLoad_NoMoov(t *testing.T) {
	data := createMockAtom("ftyp", []byte("M4A "), make([]byte, 4))
	_, err := load(t, data, nil)
	var corrupt *types.CorruptedFileError
	if !errors.As(err, &corrupt) {
		t.Errorf("Load() error = %v, want CorruptedFileError", err)
	}
}

func TestLoad_BrokenItem(t *testing.T) {
	data := createMinimalM4A(
		createItem("\251nam", "Kept"),
		createMockAtom(freeFormType, createDataAtom(gomp4.DataTypeStringUTF8, []byte("no name"))),
	)

	tags, err := load(t, data, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tags.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(tags.Warnings))
	}
	frames := tags.Tag2.AllFrames()
	if got, _ := frames.Value(types.TypeTitle); got != "Kept" {
		t.Errorf("title = %q, want Kept", got)
	}

	strict := testConfig()
	strict.Strict = true
	if _, err := load(t, data, strict); err == nil {
		t.Error("Load() in strict mode error = nil, want error")
	}
}

func TestParseESDescriptors(t *testing.T) {
	tests := []struct {
		name string
		dsi  []byte
		want uint8
	}{
		{"AAC-LC", []byte{0x12, 0x10}, 2},
		{"HE-AAC", []byte{0x2B, 0x92}, 5},
		{"xHE-AAC escape", []byte{0xF9, 0x40}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := []byte{0x03, 0x16, 0, 1, 0, 0x04, 0x11, 0x40, 0x15}
			es = append(es, make([]byte, 11)...)
			es = append(es, 0x05, byte(len(tt.dsi)))
			es = append(es, tt.dsi...)
			if got := parseESDescriptors(es); got != tt.want {
				t.Errorf("parseESDescriptors() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseTechnicalInfo_Profile(t *testing.T) {
	trak := createTrakAtom("mp4a", 2, 16, 48000, []byte{0x2B, 0x92})
	alac := createTrakAtom("alac", 2, 24, 96000, nil)

	tests := []struct {
		name         string
		trak         []byte
		wantFormat   string
		wantBitDepth int
	}{
		{"HE-AAC", trak, "MP4 HE-AAC", 0},
		{"ALAC", alac, "MP4 ALAC", 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := createMockAtom("moov", createMvhdAtom(48000, 48000), tt.trak)
			sr := newReader(data)
			moov, err := readAtomHeader(sr, 0)
			if err != nil {
				t.Fatal(err)
			}
			info, err := parseTechnicalInfo(sr, moov)
			if err != nil {
				t.Fatalf("parseTechnicalInfo() error = %v", err)
			}
			if info.Format != tt.wantFormat || info.BitDepth != tt.wantBitDepth {
				t.Errorf("Format, BitDepth = %q, %d, want %q, %d", info.Format, info.BitDepth, tt.wantFormat, tt.wantBitDepth)
			}
			if info.Duration != time.Second {
				t.Errorf("Duration = %v, want 1s", info.Duration)
			}
		})
	}
}

func TestMapCodecName(t *testing.T) {
	tests := []struct {
		fourCC   string
		expected string
	}{
		{"mhm1", "xHE-AAC"},
		{"ec-3", "E-AC-3"},
		{"mp4a", "AAC"},
		{"alac", "ALAC"},
		{"UNKN", "UNKN"},
	}
	for _, tt := range tests {
		t.Run(tt.fourCC, func(t *testing.T) {
			if got := mapCodecName(tt.fourCC); got != tt.expected {
				t.Errorf("mapCodecName(%q) = %q, want %q", tt.fourCC, got, tt.expected)
			}
		})
	}
}

func TestSave_Unsupported(t *testing.T) {
	var unsupported *types.UnsupportedWriteError
	if err := (writer{}).Save("test.m4a", &types.Tags{}); !errors.As(err, &unsupported) {
		t.Errorf("Save() error = %v, want UnsupportedWriteError", err)
	}
}
