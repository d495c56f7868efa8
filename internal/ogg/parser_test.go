package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-flac/flacvorbis"

	tfbinary "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// oggWriter builds the pages of one logical stream.
type oggWriter struct {
	buf      bytes.Buffer
	serial   uint32
	sequence uint32
}

// lacing returns the segment table of a packet of n bytes.
func lacing(n int) []byte {
	segments := bytes.Repeat([]byte{255}, n/255)
	return append(segments, byte(n%255))
}

// page writes one page holding the given segments and data.
func (w *oggWriter) page(headerType byte, granule int64, segments, data []byte) {
	w.buf.WriteString("OggS")
	w.buf.WriteByte(0x00) // Version
	w.buf.WriteByte(headerType)
	binary.Write(&w.buf, binary.LittleEndian, uint64(granule))
	binary.Write(&w.buf, binary.LittleEndian, w.serial)
	binary.Write(&w.buf, binary.LittleEndian, w.sequence)
	binary.Write(&w.buf, binary.LittleEndian, uint32(0)) // Checksum, not verified
	w.buf.WriteByte(byte(len(segments)))
	w.buf.Write(segments)
	w.buf.Write(data)
	w.sequence++
}

// packet writes a packet on its own page.
func (w *oggWriter) packet(headerType byte, granule int64, data []byte) {
	w.page(headerType, granule, lacing(len(data)), data)
}

func commentList(vendor string, comments ...string) []byte {
	vc := flacvorbis.New()
	vc.Vendor = vendor
	vc.Comments = comments
	return vc.Marshal().Data
}

func vorbisIDHeader() []byte {
	idHeader := &bytes.Buffer{}
	idHeader.WriteByte(0x01)                                    // Packet type: identification
	idHeader.WriteString("vorbis")                              // Magic
	binary.Write(idHeader, binary.LittleEndian, uint32(0))      // Vorbis version
	idHeader.WriteByte(2)                                       // Channels (stereo)
	binary.Write(idHeader, binary.LittleEndian, uint32(44100))  // Sample rate
	binary.Write(idHeader, binary.LittleEndian, uint32(0))      // Bitrate maximum
	binary.Write(idHeader, binary.LittleEndian, uint32(128000)) // Bitrate nominal
	binary.Write(idHeader, binary.LittleEndian, uint32(0))      // Bitrate minimum
	idHeader.WriteByte(0xB8)                                    // Blocksize info
	idHeader.WriteByte(0x01)                                    // Framing flag
	return idHeader.Bytes()
}

// createMinimalOgg creates an Ogg Vorbis file of one second. The comment
// and setup headers share the second page, as encoders write them.
func createMinimalOgg(comments ...string) []byte {
	w := &oggWriter{serial: 12345}
	w.packet(0x02, 0, vorbisIDHeader())

	commentHeader := append([]byte{0x03}, "vorbis"...)
	commentHeader = append(commentHeader, commentList("tagframe test", comments...)...)
	commentHeader = append(commentHeader, 0x01) // Framing bit
	setupHeader := append([]byte{0x05}, "vorbis"...)
	setupHeader = append(setupHeader, 0x01)

	segments := append(lacing(len(commentHeader)), lacing(len(setupHeader))...)
	w.page(0x00, 0, segments, append(commentHeader, setupHeader...))

	w.packet(0x04, 44100, make([]byte, 100)) // EOS with audio
	return w.buf.Bytes()
}

// createMinimalOpus creates an Ogg Opus file of one second plus pre-skip.
func createMinimalOpus(comments ...string) []byte {
	w := &oggWriter{serial: 777}

	head := &bytes.Buffer{}
	head.WriteString("OpusHead")
	head.WriteByte(1)                                         // Version
	head.WriteByte(2)                                         // Channels
	binary.Write(head, binary.LittleEndian, uint16(312))      // Pre-skip
	binary.Write(head, binary.LittleEndian, uint32(44100))    // Input sample rate
	binary.Write(head, binary.LittleEndian, int16(0))         // Output gain
	head.WriteByte(0)                                         // Mapping family
	w.packet(0x02, 0, head.Bytes())

	tags := append([]byte("OpusTags"), commentList("libopus", comments...)...)
	w.packet(0x00, 0, tags)

	w.packet(0x04, 48000+312, make([]byte, 100))
	return w.buf.Bytes()
}

func load(t *testing.T, data []byte) (*types.Tags, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ogg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := types.DefaultTagConfig()
	return loader{}.Load(bytes.NewReader(data), int64(len(data)), path, &cfg)
}

func TestLoad_Vorbis(t *testing.T) {
	tags, err := load(t, createMinimalOgg("TITLE=Test Song", "ARTIST=Test Artist", "ALBUM=Test Album"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	frames := tags.Tag2.AllFrames()
	tests := []struct {
		typ  types.Type
		want string
	}{
		{types.TypeTitle, "Test Song"},
		{types.TypeArtist, "Test Artist"},
		{types.TypeAlbum, "Test Album"},
	}
	for _, tt := range tests {
		if got, _ := frames.Value(tt.typ); got != tt.want {
			t.Errorf("Value(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}

	info := tags.Info
	if info.Format != "Ogg Vorbis" || info.Container != "Ogg" {
		t.Errorf("Format, Container = %q, %q, want Ogg Vorbis, Ogg", info.Format, info.Container)
	}
	if info.SampleRate != 44100 || info.Channels != 2 || info.Bitrate != 128 {
		t.Errorf("Info = %d Hz %d ch %d kbps, want 44100 Hz 2 ch 128 kbps",
			info.SampleRate, info.Channels, info.Bitrate)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

func TestLoad_Opus(t *testing.T) {
	tags, err := load(t, createMinimalOpus("TITLE=Opus Song", "TRACKNUMBER=7"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	frames := tags.Tag2.AllFrames()
	if got, _ := frames.Value(types.TypeTitle); got != "Opus Song" {
		t.Errorf("title = %q, want %q", got, "Opus Song")
	}
	if got := frames.IntValue(types.TypeTrack); got != 7 {
		t.Errorf("track = %d, want 7", got)
	}

	info := tags.Info
	if info.Format != "Opus" || info.SampleRate != 48000 {
		t.Errorf("Format, SampleRate = %q, %d, want Opus, 48000", info.Format, info.SampleRate)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s (pre-skip removed)", info.Duration)
	}
	if info.Bitrate == 0 {
		t.Error("Bitrate = 0, want estimate from file size")
	}
}

func TestLoad_InvalidMagic(t *testing.T) {
	_, err := load(t, []byte("NotAnOggFileAtAllButLongEnoughForAHeader"))
	var corrupt *types.CorruptedFileError
	if !errors.As(err, &corrupt) {
		t.Errorf("Load() error = %v, want CorruptedFileError", err)
	}
}

func TestLoad_UnknownCodec(t *testing.T) {
	w := &oggWriter{serial: 1}
	w.packet(0x02, 0, []byte("\x80theora-ish header"))
	w.packet(0x00, 0, []byte("second"))

	_, err := load(t, w.buf.Bytes())
	var unsupported *types.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Errorf("Load() error = %v, want UnsupportedFormatError", err)
	}
}

func TestLoad_EmptyTags(t *testing.T) {
	tags, err := load(t, createMinimalOgg())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !tags.Tag2.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestPacketReader(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, 600)
	tests := []struct {
		name  string
		pages []*Page
		want  []int // packet lengths
	}{
		{
			name: "two packets on one page",
			pages: []*Page{
				{Segments: []byte{3, 2}, Data: []byte("abcde")},
			},
			want: []int{3, 2},
		},
		{
			name: "packet spanning pages",
			pages: []*Page{
				{Segments: []byte{255, 255}, Data: long[:510]},
				{HeaderType: flagContinued, Segments: []byte{90}, Data: long[510:]},
			},
			want: []int{600},
		},
		{
			name: "packet of exactly 255 bytes",
			pages: []*Page{
				{Segments: []byte{255, 0}, Data: long[:255]},
			},
			want: []int{255},
		},
		{
			name: "other stream ignored",
			pages: []*Page{
				{SerialNumber: 1, Segments: []byte{1}, Data: []byte("a")},
				{SerialNumber: 2, Segments: []byte{1}, Data: []byte("b")},
				{SerialNumber: 1, Segments: []byte{1}, Data: []byte("c")},
			},
			want: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pr packetReader
			for _, p := range tt.pages {
				pr.add(p)
			}
			if len(pr.packets) != len(tt.want) {
				t.Fatalf("got %d packets, want %d", len(pr.packets), len(tt.want))
			}
			for i, n := range tt.want {
				if len(pr.packets[i]) != n {
					t.Errorf("packet %d length = %d, want %d", i, len(pr.packets[i]), n)
				}
			}
		})
	}
}

func TestFindLastGranulePosition(t *testing.T) {
	data := createMinimalOgg("TITLE=x")
	sr := tfbinary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.ogg")
	got, err := findLastGranulePosition(sr, int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if got != 44100 {
		t.Errorf("findLastGranulePosition() = %d, want 44100", got)
	}
}

func TestSave_Unsupported(t *testing.T) {
	var unsupported *types.UnsupportedWriteError
	if err := (writer{}).Save("test.ogg", &types.Tags{}); !errors.As(err, &unsupported) {
		t.Errorf("Save() error = %v, want UnsupportedWriteError", err)
	}
}

func BenchmarkLoadOgg(b *testing.B) {
	data := createMinimalOgg("TITLE=Benchmark", "ARTIST=Someone", "ALBUM=Album")
	cfg := types.DefaultTagConfig()
	b.ResetTimer()
	for b.Loop() {
		if _, err := (loader{}).Load(bytes.NewReader(data), int64(len(data)), "bench.ogg", &cfg); err != nil {
			b.Fatal(err)
		}
	}
}
