// Package id3v1 reads and writes the 128 byte ID3v1 trailer of MP3 files
// and maps it to frames.
package id3v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/genres"
)

// Size is the size of an ID3v1 tag.
const Size = 128

var magic = []byte("TAG")

// ErrNoTag is returned by Decode for data without the TAG marker.
var ErrNoTag = errors.New("id3v1: no tag")

// Tag is an ID3v1.1 tag. Strings are kept decoded; they are truncated
// when the tag is encoded.
type Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Track   int  // 0 if absent, ID3v1.1 only
	Genre   byte // genres.Unknown if absent
}

// NewTag returns an empty tag.
func NewTag() *Tag {
	return &Tag{Genre: genres.Unknown}
}

// Decode parses a 128 byte ID3v1 tag.
func Decode(b []byte) (*Tag, error) {
	if len(b) != Size || !bytes.Equal(b[:3], magic) {
		return nil, ErrNoTag
	}
	t := &Tag{
		Title:  field(b[3:33]),
		Artist: field(b[33:63]),
		Album:  field(b[63:93]),
		Year:   field(b[93:97]),
		Genre:  b[127],
	}
	if b[125] == 0 && b[126] != 0 {
		t.Comment = field(b[97:125])
		t.Track = int(b[126])
	} else {
		t.Comment = field(b[97:127])
	}
	return t, nil
}

// field decodes a zero padded Latin-1 string. Trailing spaces are
// padding too.
func field(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(binary.DecodeLatin1(b), " ")
}

func putField(dst []byte, s string) {
	copy(dst, binary.EncodeLatin1(s))
}

// Encode returns the 128 byte representation.
func (t *Tag) Encode() []byte {
	b := make([]byte, Size)
	copy(b, magic)
	putField(b[3:33], t.Title)
	putField(b[33:63], t.Artist)
	putField(b[63:93], t.Album)
	putField(b[93:97], t.Year)
	if t.Track > 0 && t.Track <= 255 {
		putField(b[97:125], t.Comment)
		b[126] = byte(t.Track)
	} else {
		putField(b[97:127], t.Comment)
	}
	b[127] = t.Genre
	return b
}

// Version returns "ID3v1.1" if the tag has a track number, else "ID3v1.0".
func (t *Tag) Version() string {
	if t.Track > 0 {
		return "ID3v1.1"
	}
	return "ID3v1.0"
}

// IsEmpty reports whether all fields are unset.
func (t *Tag) IsEmpty() bool {
	return t.Title == "" && t.Artist == "" && t.Album == "" && t.Year == "" &&
		t.Comment == "" && t.Track == 0 && t.Genre == genres.Unknown
}

// YearNumber returns the year as a number, 0 if unset.
func (t *Tag) YearNumber() int {
	n, _ := strconv.Atoi(t.Year)
	return n
}

// Read returns the tag at the end of r, nil if there is none.
func Read(r io.ReaderAt, size int64, path string) (*Tag, error) {
	if size < Size {
		return nil, nil
	}
	buf := make([]byte, Size)
	sr := binary.NewSafeReader(r, size, path)
	if err := sr.ReadAt(buf, size-Size, "ID3v1 tag"); err != nil {
		return nil, err
	}
	if !bytes.Equal(buf[:3], magic) {
		return nil, nil
	}
	return Decode(buf)
}

// Write replaces, appends or, if t is nil, removes the tag at the end of
// the file.
func Write(path string, t *Tag) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening %s for ID3v1 tag: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	existing, err := Read(f, size, path)
	if err != nil {
		return err
	}
	end := size
	if existing != nil {
		end = size - Size
	}

	if t == nil {
		if existing != nil {
			return f.Truncate(end)
		}
		return nil
	}
	if _, err := f.WriteAt(t.Encode(), end); err != nil {
		return fmt.Errorf("writing ID3v1 tag to %s: %w", path, err)
	}
	return nil
}
