package binary

import (
	"encoding/binary"
	"fmt"
)

// BodyReader reads the fields of a frame body in sequence.
//
// Errors are deferred: after the first failing read all further reads
// return zero values and Err reports the failure.
type BodyReader struct {
	data []byte
	what string
	pos  int
	err  error
}

// NewBodyReader creates a reader over a frame body.
func NewBodyReader(data []byte, what string) *BodyReader {
	return &BodyReader{data: data, what: what}
}

// Err returns the first error, if any.
func (br *BodyReader) Err() error { return br.err }

// Remaining returns the number of unread bytes.
func (br *BodyReader) Remaining() int { return len(br.data) - br.pos }

func (br *BodyReader) take(n int, field string) []byte {
	if br.err != nil {
		return nil
	}
	if n < 0 || br.pos+n > len(br.data) {
		br.err = fmt.Errorf("%s: %s needs %d bytes at offset %d, %d left",
			br.what, field, n, br.pos, br.Remaining())
		return nil
	}
	b := br.data[br.pos : br.pos+n]
	br.pos += n
	return b
}

// Byte reads one byte.
func (br *BodyReader) Byte(field string) byte {
	if b := br.take(1, field); b != nil {
		return b[0]
	}
	return 0
}

// Uint32 reads a big-endian 32-bit value.
func (br *BodyReader) Uint32(field string) uint32 {
	if b := br.take(4, field); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

// Uint16LE reads a little-endian 16-bit value.
func (br *BodyReader) Uint16LE(field string) uint16 {
	if b := br.take(2, field); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

// Uint32LE reads a little-endian 32-bit value.
func (br *BodyReader) Uint32LE(field string) uint32 {
	if b := br.take(4, field); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// Uint64LE reads a little-endian 64-bit value.
func (br *BodyReader) Uint64LE(field string) uint64 {
	if b := br.take(8, field); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// Bytes reads n bytes.
func (br *BodyReader) Bytes(n int, field string) []byte {
	return br.take(n, field)
}

// String reads n bytes as ISO-8859-1 text.
func (br *BodyReader) String(n int, field string) string {
	return DecodeLatin1(br.take(n, field))
}

// Text reads a terminated string in the given encoding. A missing
// terminator ends the string at the end of the body.
func (br *BodyReader) Text(enc byte, field string) string {
	if br.err != nil {
		return ""
	}
	rest := br.data[br.pos:]
	end := FindTerminator(rest, enc)
	if end < 0 {
		br.pos = len(br.data)
		return DecodeText(rest, enc)
	}
	br.pos += end + TerminatorSize(enc)
	return DecodeText(rest[:end], enc)
}

// Rest returns the unread bytes.
func (br *BodyReader) Rest() []byte {
	if br.err != nil {
		return nil
	}
	b := br.data[br.pos:]
	br.pos = len(br.data)
	return b
}
