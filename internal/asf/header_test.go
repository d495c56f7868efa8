package asf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	tfbinary "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

func wide(s string) []byte {
	b, _ := utf16Data.Bytes(s)
	return b
}

func le16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }
func le32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func le64(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }

// createObject creates an object with the given payload.
func createObject(id guid, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	out := append([]byte{}, id[:]...)
	out = append(out, le64(uint64(objectHeaderSize+len(body)))...)
	return append(out, body...)
}

func createContentDescription(title, author, copyright, desc, rating string) []byte {
	var lengths, texts []byte
	for _, s := range []string{title, author, copyright, desc, rating} {
		w := wide(s)
		lengths = append(lengths, le16(uint16(len(w)))...)
		texts = append(texts, w...)
	}
	return createObject(guidContentDescription, lengths, texts)
}

func createDescriptor(name string, vt ValueType, value []byte) []byte {
	n := wide(name)
	return bytes.Join([][]byte{le16(uint16(len(n))), n, le16(uint16(vt)), le16(uint16(len(value))), value}, nil)
}

func createExtendedContent(descriptors ...[]byte) []byte {
	return createObject(guidExtendedContentDescription, le16(uint16(len(descriptors))), bytes.Join(descriptors, nil))
}

func createMetadataRecord(name string, vt ValueType, value []byte) []byte {
	n := wide(name)
	return bytes.Join([][]byte{
		le16(0), le16(0), le16(uint16(len(n))), le16(uint16(vt)), le32(uint32(len(value))), n, value,
	}, nil)
}

func createHeaderExtension(objects ...[]byte) []byte {
	data := bytes.Join(objects, nil)
	return createObject(guidHeaderExtension, make([]byte, 18), le32(uint32(len(data))), data)
}

func createFileProperties(play100ns, prerollMs uint64) []byte {
	return createObject(guidFileProperties,
		make([]byte, 16), le64(0), le64(0), le64(1),
		le64(play100ns), le64(play100ns), le64(prerollMs),
		make([]byte, 16))
}

func createStreamProperties(formatTag, channels uint16, rate, bytesPerSec uint32, bits uint16) []byte {
	wfx := bytes.Join([][]byte{le16(formatTag), le16(channels), le32(rate), le32(bytesPerSec), le16(2), le16(bits), le16(0)}, nil)
	return createObject(guidStreamProperties,
		guidAudioMedia[:], make([]byte, 16), le64(0),
		le32(uint32(len(wfx))), le32(0), le16(1), le32(0), wfx)
}

// createASF creates a file with a header holding the objects and an
// empty data object.
func createASF(objects ...[]byte) []byte {
	body := bytes.Join(objects, nil)
	out := append([]byte{}, guidHeader[:]...)
	out = append(out, le64(uint64(30+len(body)))...)
	out = append(out, le32(uint32(len(objects)))...)
	out = append(out, 1, 2)
	out = append(out, body...)
	return append(out, make([]byte, 50)...)
}

var testContentID = uuid.MustParse("D1607DBC-E323-4BE2-86A1-48A42A28441E")

func createTestFile() []byte {
	pic := renderPicture(types.Picture{
		Type: types.PictureFrontCover, MIMEType: "image/png", Description: "cover", Data: []byte("\x89PNG"),
	})
	return createASF(
		createFileProperties(130_000_000, 3000),
		createStreamProperties(0x0161, 2, 44100, 16000, 16),
		createContentDescription("Song", "Artist", "2024 Label", "Nice", ""),
		createExtendedContent(
			createDescriptor("WM/TrackNumber", DWordType, le32(3)),
			createDescriptor("WM/AlbumTitle", UnicodeType, wide("Album")),
			createDescriptor("WM/Genre", UnicodeType, wide("Rock")),
			createDescriptor("WM/Genre", UnicodeType, wide("Jazz")),
			createDescriptor("IsVBR", BoolType, le32(1)),
		),
		createHeaderExtension(createObject(guidMetadataLibrary,
			le16(2),
			createMetadataRecord(PictureName, BytesType, pic),
			createMetadataRecord("WM/MediaClassPrimaryID", GuidType, testContentID[:]),
		)),
	)
}

func TestGUID(t *testing.T) {
	want := []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C}
	if !bytes.Equal(guidHeader[:], want) {
		t.Errorf("guidHeader = % x, want % x", guidHeader[:], want)
	}
	if got := guidHeader.String(); got != "75B22630-668E-11CF-A6D9-00AA0062CE6C" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseHeader(t *testing.T) {
	data := createTestFile()
	h, err := parseHeader(tfbinary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.wma"), true)
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}

	wantContent := [indexAttributes]string{"Song", "Artist", "Nice", "2024 Label", ""}
	if h.content != wantContent {
		t.Errorf("content = %q, want %q", h.content, wantContent)
	}

	wantNames := []string{"WM/TrackNumber", "WM/AlbumTitle", "WM/Genre", "WM/Genre", "IsVBR", PictureName, "WM/MediaClassPrimaryID"}
	if len(h.attrs) != len(wantNames) {
		t.Fatalf("got %d attributes, want %d", len(h.attrs), len(wantNames))
	}
	for i, name := range wantNames {
		if h.attrs[i].Name != name {
			t.Errorf("attrs[%d].Name = %q, want %q", i, h.attrs[i].Name, name)
		}
	}

	info := h.info
	if !info.Valid || info.Duration != 10*time.Second {
		t.Errorf("Valid, Duration = %v, %v, want true, 10s", info.Valid, info.Duration)
	}
	if info.Format != "ASF WMA 2" || info.Channels != 2 || info.SampleRate != 44100 || info.Bitrate != 128 {
		t.Errorf("Info = %q %d ch %d Hz %d kbps, want ASF WMA 2 2 ch 44100 Hz 128 kbps",
			info.Format, info.Channels, info.SampleRate, info.Bitrate)
	}
	if info.Lossless || info.BitDepth != 0 {
		t.Errorf("Lossless, BitDepth = %v, %d, want false, 0", info.Lossless, info.BitDepth)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	truncated := createASF(createExtendedContent(createDescriptor("WM/Genre", UnicodeType, wide("Rock"))))
	// claim a second descriptor which is missing
	idx := bytes.Index(truncated, guidExtendedContentDescription[:]) + objectHeaderSize
	binary.LittleEndian.PutUint16(truncated[idx:], 2)

	badSize := createASF(createContentDescription("a", "", "", "", ""))
	binary.LittleEndian.PutUint64(badSize[30+16:], 5)

	tests := []struct {
		name        string
		data        []byte
		strict      bool
		wantErr     bool
		wantWarning bool
	}{
		{"not ASF", make([]byte, 64), false, true, false},
		{"invalid object size", badSize, false, true, false},
		{"truncated descriptor", truncated, false, false, true},
		{"truncated descriptor strict", truncated, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := parseHeader(tfbinary.NewSafeReader(bytes.NewReader(tt.data), int64(len(tt.data)), "test.wma"), tt.strict)
			if tt.wantErr {
				var corrupt *types.CorruptedFileError
				if !errors.As(err, &corrupt) {
					t.Errorf("parseHeader() error = %v, want CorruptedFileError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHeader() error = %v", err)
			}
			if got := len(h.warnings) > 0; got != tt.wantWarning {
				t.Errorf("warnings = %v, want some: %v", h.warnings, tt.wantWarning)
			}
			if len(h.attrs) != 1 {
				t.Errorf("got %d attributes, want the complete one", len(h.attrs))
			}
		})
	}
}

func TestLoad(t *testing.T) {
	data := createTestFile()
	cfg := types.DefaultTagConfig()
	tags, err := loader{}.Load(bytes.NewReader(data), int64(len(data)), "test.wma", &cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tags.Tag1 != nil {
		t.Error("Tag1 != nil, ASF has no ID3v1 tag")
	}
	if got := tags.Tag2.TagFormat(); got != "ASF" {
		t.Errorf("TagFormat() = %q, want ASF", got)
	}
	frames := tags.Tag2.AllFrames()
	if got, _ := frames.Value(types.TypeTrack); got != "3" {
		t.Errorf("track = %q, want 3", got)
	}
	if tags.Info.Container != "ASF" {
		t.Errorf("Container = %q, want ASF", tags.Info.Container)
	}
}

func TestSave_Unsupported(t *testing.T) {
	var unsupported *types.UnsupportedWriteError
	if err := (writer{}).Save("test.wma", &types.Tags{}); !errors.As(err, &unsupported) {
		t.Errorf("Save() error = %v, want UnsupportedWriteError", err)
	}
}
