package tagframe_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/simonhull/tagframe"
	"github.com/simonhull/tagframe/internal/id3v1"
)

// mpegFrame is an MPEG 1 Layer 3 frame with 128 kbps, 44100 Hz and joint
// stereo.
var mpegFrame = append([]byte{0xFF, 0xFB, 0x90, 0x44}, make([]byte, 413)...)

// textFrame encodes an ISO-8859-1 ID3v2.3 text frame.
func textFrame(id, text string) []byte {
	body := append([]byte{0x00}, text...)
	header := append([]byte(id), 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint32(header[4:], uint32(len(body)))
	return append(header, body...)
}

// createMP3 creates an MP3 file with an ID3v2.3 tag holding frames, a few
// MPEG frames and an optional ID3v1 tag.
func createMP3(v1 *id3v1.Tag, frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	body = append(body, make([]byte, 16)...)
	size := len(body)
	data := []byte{
		'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size >> 21 & 0x7F), byte(size >> 14 & 0x7F), byte(size >> 7 & 0x7F), byte(size & 0x7F),
	}
	data = append(data, body...)
	data = append(data, bytes.Repeat(mpegFrame, 8)...)
	if v1 != nil {
		data = append(data, v1.Encode()...)
	}
	return data
}

func writeBlock(buf *bytes.Buffer, blockType flac.BlockType, last bool, data []byte) {
	b := byte(blockType)
	if last {
		b |= 0x80
	}
	buf.WriteByte(b)
	buf.WriteByte(byte(len(data) >> 16))
	buf.WriteByte(byte(len(data) >> 8))
	buf.WriteByte(byte(len(data)))
	buf.Write(data)
}

// streamInfo describes one second of 44.1 kHz 16 bit stereo audio.
func streamInfo() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint16(4096))
	binary.Write(buf, binary.BigEndian, uint16(4096))
	buf.Write(make([]byte, 6))
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(44100)
	binary.Write(buf, binary.BigEndian, packed)
	buf.Write(make([]byte, 16))
	return buf.Bytes()
}

// pictureBlock encodes a METADATA_BLOCK_PICTURE.
func pictureBlock(picType uint32, mime, desc string, data []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, picType)
	binary.Write(buf, binary.BigEndian, uint32(len(mime)))
	buf.WriteString(mime)
	binary.Write(buf, binary.BigEndian, uint32(len(desc)))
	buf.WriteString(desc)
	buf.Write(make([]byte, 16))
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

// createFLAC creates a FLAC file with the comments and optional picture
// blocks, followed by a few bytes standing in for frames.
func createFLAC(comments []string, pictures ...[]byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")
	writeBlock(buf, flac.StreamInfo, false, streamInfo())

	vc := flacvorbis.New()
	vc.Vendor = "tagframe test"
	vc.Comments = comments
	writeBlock(buf, flac.VorbisComment, false, vc.Marshal().Data)
	for _, p := range pictures {
		writeBlock(buf, flac.Picture, false, p)
	}
	writeBlock(buf, flac.Padding, true, make([]byte, 64))

	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00})
	return buf.Bytes()
}

// createASF creates an ASF file with an empty header object.
func createASF() []byte {
	data := []byte{
		0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
		0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
	}
	data = binary.LittleEndian.AppendUint64(data, 30)
	data = binary.LittleEndian.AppendUint32(data, 0)
	data = append(data, 1, 2)
	return append(data, make([]byte, 50)...)
}

func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func open(t testing.TB, path string, opts ...tagframe.Option) *tagframe.File {
	t.Helper()
	file, err := tagframe.Open(path, opts...)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", filepath.Base(path), err)
	}
	t.Cleanup(func() { file.Close() })
	return file
}

func value(file *tagframe.File, n tagframe.TagNumber, typ tagframe.Type) string {
	frames := file.Frames(n)
	v, _ := frames.Value(typ)
	return v
}
