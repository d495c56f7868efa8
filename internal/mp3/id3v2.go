package mp3

import (
	"fmt"

	binutil "github.com/simonhull/tagframe/internal/binary"
)

// id3v2HeaderSize is the size of the ID3v2 header and of the optional
// footer.
const id3v2HeaderSize = 10

// id3v2Header is the header of an ID3v2 tag. The frames themselves are
// decoded by the id3v2 backend; the header is only needed to find the
// first MPEG frame behind the tag.
type id3v2Header struct {
	Version  byte // major version, 2 to 4
	Revision byte
	Flags    byte
	Size     uint32 // tag size excluding header and footer
}

// hasFooter reports whether the tag ends with a footer (ID3v2.4).
func (h id3v2Header) hasFooter() bool {
	return h.Version == 4 && h.Flags&0x10 != 0
}

// tagSize is the number of bytes the tag occupies at the start of the
// file.
func (h id3v2Header) tagSize() int64 {
	size := int64(id3v2HeaderSize) + int64(h.Size)
	if h.hasFooter() {
		size += id3v2HeaderSize
	}
	return size
}

// parseID3v2Header reads the header at the start of the file. ok is false
// if the file does not start with an ID3v2 tag.
func parseID3v2Header(sr *binutil.SafeReader) (h id3v2Header, ok bool, err error) {
	buf := make([]byte, id3v2HeaderSize)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return h, false, nil
	}
	if string(buf[0:3]) != "ID3" {
		return h, false, nil
	}

	h = id3v2Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     decodeSynchsafe(buf[6:10]),
	}
	if h.Version < 2 || h.Version > 4 || buf[6]&0x80 != 0 {
		return h, true, fmt.Errorf("invalid ID3v2 header: version 2.%d", h.Version)
	}
	return h, true, nil
}

// decodeSynchsafe decodes a 28 bit synchsafe integer.
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 | uint32(b[1]&0x7F)<<14 | uint32(b[2]&0x7F)<<7 | uint32(b[3]&0x7F)
}
