package types

import (
	"strconv"
	"strings"
)

// FieldID identifies a field inside a frame's field list.
type FieldID int

// Field IDs.
const (
	FieldNoField FieldID = iota
	FieldTextEnc
	FieldText
	FieldURL
	FieldData
	FieldDescription
	FieldOwner
	FieldEmail
	FieldRating
	FieldFilename
	FieldLanguage
	FieldPictureType
	FieldImageFormat
	FieldMimeType
	FieldCounter
	FieldIdentifier
	FieldVolumeAdj
	FieldNumBits
	FieldVolChgRight
	FieldVolChgLeft
	FieldPeakVolRight
	FieldPeakVolLeft
	FieldTimestampFormat
	FieldContentType
	FieldPrice
	FieldDate
	FieldSeller
	FieldSubframe
)

var fieldNames = [...]string{
	"Unknown", "Text Encoding", "Text", "URL", "Data", "Description",
	"Owner", "Email", "Rating", "Filename", "Language", "Picture Type",
	"Image format", "Mimetype", "Counter", "Identifier", "Volume Adjustment",
	"Number of Bits", "Volume Change Right", "Volume Change Left",
	"Peak Volume Right", "Peak Volume Left", "Timestamp Format",
	"Content Type", "Price", "Date", "Seller", "Subframe",
}

func (id FieldID) String() string {
	if id < 0 || int(id) >= len(fieldNames) {
		return fieldNames[0]
	}
	return fieldNames[id]
}

// FieldIDFromName resolves a field name case-insensitively, ignoring
// spaces. FieldNoField is returned for unknown names.
func FieldIDFromName(name string) FieldID {
	key := nameKey(name)
	for i, n := range fieldNames {
		if nameKey(n) == key {
			return FieldID(i)
		}
	}
	return FieldNoField
}

// TextEncoding is the ID3v2 text encoding byte.
type TextEncoding int

// Text encodings.
const (
	EncodingISO8859_1 TextEncoding = iota
	EncodingUTF16
	EncodingUTF16BE
	EncodingUTF8
)

// Field is one typed sub-value of a frame.
//
// Value holds an int, a string, a []byte or a []any list. Lists are
// used for synchronized data (alternating time and text or event code),
// chapter timing and table of contents descriptors.
type Field struct {
	ID    FieldID
	Value any
}

// String converts the value the way it is displayed.
func (f Field) String() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Int converts the value to an integer, returning 0 when not numeric.
func (f Field) Int() int {
	switch v := f.Value.(type) {
	case int:
		return v
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}

// Bytes returns a []byte value; strings are converted.
func (f Field) Bytes() []byte {
	switch v := f.Value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// List returns a []any value or nil.
func (f Field) List() []any {
	l, _ := f.Value.([]any)
	return l
}
