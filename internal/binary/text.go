package binary

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding bytes of ID3v2 frame bodies.
const (
	EncodingISO8859_1 byte = 0
	EncodingUTF16     byte = 1
	EncodingUTF16BE   byte = 2
	EncodingUTF8      byte = 3
)

var (
	utf16BOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	utf16BE  = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE  = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
)

// DecodeText converts text in the given encoding to a Go string.
// UTF-16 without byte order mark is read as big-endian. Unknown
// encodings are treated as ISO-8859-1.
func DecodeText(data []byte, enc byte) string {
	if len(data) == 0 {
		return ""
	}
	switch enc {
	case EncodingUTF16, EncodingUTF16BE:
		if len(data)%2 != 0 {
			data = data[:len(data)-1]
		}
		codec := utf16BOM
		if enc == EncodingUTF16BE {
			codec = utf16BE
		}
		out, err := codec.NewDecoder().Bytes(data)
		if err != nil {
			return ""
		}
		return string(out)
	case EncodingUTF8:
		return string(data)
	default:
		return DecodeLatin1(data)
	}
}

// EncodeText converts s to the given encoding. UTF-16 is written
// little-endian with a byte order mark.
func EncodeText(s string, enc byte) []byte {
	switch enc {
	case EncodingUTF16, EncodingUTF16BE:
		codec := utf16LE
		if enc == EncodingUTF16BE {
			codec = utf16BE
		}
		out, err := codec.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil
		}
		return out
	case EncodingUTF8:
		return []byte(s)
	default:
		return EncodeLatin1(s)
	}
}

// DecodeLatin1 converts ISO-8859-1 bytes to a string.
func DecodeLatin1(data []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// EncodeLatin1 converts s to ISO-8859-1, replacing characters outside
// the charset with '?'.
func EncodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// NeedsUnicode reports whether s cannot be stored as ISO-8859-1 text.
// Characters which map to a zero byte or to the upper half of the
// charset are counted as not representable.
func NeedsUnicode(s string) bool {
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok || b == 0 || b&0x80 != 0 {
			return true
		}
	}
	return false
}

// TerminatorSize returns the length of a string terminator.
func TerminatorSize(enc byte) int {
	if enc == EncodingUTF16 || enc == EncodingUTF16BE {
		return 2
	}
	return 1
}

// FindTerminator returns the position of the first string terminator
// in data or -1. UTF-16 terminators are searched on even offsets.
func FindTerminator(data []byte, enc byte) int {
	if TerminatorSize(enc) == 1 {
		return bytes.IndexByte(data, 0)
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}
