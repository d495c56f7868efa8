// Package attrdata converts the binary payloads of Windows Media
// attributes to and from their display strings.
//
// ID3v2 PRIV frames written by Windows Media Player carry ASF attribute
// values; the owner name of the frame selects the payload type.
package attrdata

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

// Type is the kind of payload.
type Type int

const (
	// Unknown payloads cannot be converted.
	Unknown Type = iota
	// Utf16 is a zero-terminated little-endian UTF-16 string.
	Utf16
	// Guid is a 16 byte identifier shown as hex groups.
	Guid
	// DWord is a little-endian 32-bit unsigned number.
	DWord
	// Binary payloads are opaque.
	Binary
)

var typeNames = [...]string{"Unknown", "Utf16", "Guid", "DWord", "Binary"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[0]
	}
	return typeNames[t]
}

var typeOfWMPriv = map[string]Type{
	"AverageLevel":               DWord,
	"PeakValue":                  DWord,
	"WM/AlbumArtist":             Utf16,
	"WM/AuthorURL":               Utf16,
	"WM/BeatsPerMinute":          Utf16,
	"WM/Composer":                Utf16,
	"WM/Conductor":               Utf16,
	"WM/ContentDistributor":      Utf16,
	"WM/ContentGroupDescription": Utf16,
	"WM/EncodedBy":               Utf16,
	"WM/EncodingSettings":        Utf16,
	"WM/EncodingTime":            Binary,
	"WM/Genre":                   Utf16,
	"WM/InitialKey":              Utf16,
	"WM/Language":                Utf16,
	"WM/Lyrics":                  Utf16,
	"WM/Lyrics_Synchronised":     Binary,
	"WM/MCDI":                    Binary,
	"WM/MediaClassPrimaryID":     Guid,
	"WM/MediaClassSecondaryID":   Guid,
	"WM/Mood":                    Utf16,
	"WM/ParentalRating":          Utf16,
	"WM/PartOfSet":               Utf16,
	"WM/Period":                  Utf16,
	"WM/Picture":                 Binary,
	"WM/Producer":                Utf16,
	"WM/PromotionURL":            Utf16,
	"WM/Provider":                Utf16,
	"WM/Publisher":               Utf16,
	"WM/SubTitle":                Utf16,
	"WM/ToolName":                Utf16,
	"WM/ToolVersion":             Utf16,
	"WM/TrackNumber":             Utf16,
	"WM/UniqueFileIdentifier":    Utf16,
	"WM/UserWebURL":              Binary,
	"WM/WMCollectionGroupID":     Guid,
	"WM/WMCollectionID":          Guid,
	"WM/WMContentID":             Guid,
	"WM/Writer":                  Utf16,
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// AttributeData converts payloads of one type.
type AttributeData struct {
	typ Type
}

// New returns a converter for an explicit type.
func New(t Type) AttributeData {
	return AttributeData{typ: t}
}

// ForName returns a converter for a PRIV owner name. The lookup is case
// sensitive; unknown names give an Unknown converter.
func ForName(name string) AttributeData {
	return AttributeData{typ: typeOfWMPriv[name]}
}

// Type returns the payload type.
func (a AttributeData) Type() Type { return a.typ }

// String converts a payload to its display string.
func (a AttributeData) String(data []byte) (string, bool) {
	switch a.typ {
	case Utf16:
		n := len(data) / 2 * 2
		for n >= 2 && data[n-2] == 0 && data[n-1] == 0 {
			n -= 2
		}
		s, err := utf16LE.NewDecoder().Bytes(data[:n])
		if err != nil {
			return "", false
		}
		return string(s), true
	case Guid:
		id, err := uuid.FromBytes(data)
		if err != nil {
			return "", false
		}
		return strings.ToUpper(id.String()), true
	case DWord:
		if len(data) != 4 {
			return "", false
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(data)), 10), true
	default:
		return "", false
	}
}

// Bytes converts a display string back to a payload.
func (a AttributeData) Bytes(s string) ([]byte, bool) {
	switch a.typ {
	case Utf16:
		b, err := utf16LE.NewEncoder().Bytes([]byte(s + "\x00"))
		if err != nil {
			return nil, false
		}
		return b, true
	case Guid:
		hex := strings.ReplaceAll(strings.ToUpper(s), "-", "")
		if len(hex) != 32 || !IsHexString(hex, 'F', "") {
			return nil, false
		}
		id, err := uuid.Parse(hex)
		if err != nil {
			return nil, false
		}
		return id[:], true
	case DWord:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, false
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(n)), true
	default:
		return nil, false
	}
}

// IsHexString reports whether s consists only of digits, upper case
// letters from 'A' to lastAllowedLetter and the characters in additional.
// The empty string is not a hex string.
func IsHexString(s string, lastAllowedLetter byte, additional string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= lastAllowedLetter) ||
			strings.IndexByte(additional, c) >= 0 {
			continue
		}
		return false
	}
	return true
}
