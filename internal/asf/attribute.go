package asf

import (
	"encoding/binary"
	"strconv"

	"github.com/simonhull/tagframe/internal/attrdata"
	"github.com/simonhull/tagframe/internal/types"
)

// ValueType is the data type of an attribute value.
type ValueType uint16

// Attribute value types as stored in the file.
const (
	UnicodeType ValueType = iota
	BytesType
	BoolType
	DWordType
	QWordType
	WordType
	GuidType
)

var valueTypeNames = [...]string{"Unicode", "Bytes", "Bool", "DWord", "QWord", "Word", "Guid"}

func (t ValueType) String() string {
	if int(t) >= len(valueTypeNames) {
		return "Unknown"
	}
	return valueTypeNames[t]
}

// Attribute is one name/value pair of the extended content description
// or the metadata objects. Data holds the value as stored: UTF-16LE
// text with terminator, little-endian numbers, raw bytes.
type Attribute struct {
	Name string
	Type ValueType
	Data []byte
}

var utf16Data = attrdata.New(attrdata.Utf16)

// UnicodeAttribute creates a text attribute.
func UnicodeAttribute(name, value string) Attribute {
	data, _ := utf16Data.Bytes(value)
	return Attribute{Name: name, Type: UnicodeType, Data: data}
}

// Value returns the display value. Bytes and GUID values are converted
// by the attribute data type of the name, "" if it has none.
func (a Attribute) Value() string {
	switch a.Type {
	case UnicodeType:
		s, _ := utf16Data.String(a.Data)
		return s
	case BoolType:
		for _, c := range a.Data {
			if c != 0 {
				return "1"
			}
		}
		return "0"
	case DWordType, QWordType, WordType:
		return strconv.FormatUint(leUint(a.Data), 10)
	default:
		s, _ := attrdata.ForName(a.Name).String(a.Data)
		return s
	}
}

// leUint decodes a little-endian number of up to eight bytes.
func leUint(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}

// attributeForFrame encodes the value of f with the given type. Bytes
// and GUID values are converted from the value by the attribute data
// type of the name, else the data field is used. ok is false when
// there is nothing to store.
func attributeForFrame(name string, vt ValueType, f *types.Frame) (Attribute, bool) {
	a := Attribute{Name: name, Type: vt}
	value := f.Value()
	switch vt {
	case UnicodeType:
		return UnicodeAttribute(name, value), true
	case BoolType:
		v := uint32(0)
		if value == "1" {
			v = 1
		}
		a.Data = binary.LittleEndian.AppendUint32(nil, v)
	case WordType:
		n, _ := strconv.ParseUint(value, 10, 16)
		a.Data = binary.LittleEndian.AppendUint16(nil, uint16(n))
	case DWordType:
		n, _ := strconv.ParseUint(value, 10, 32)
		a.Data = binary.LittleEndian.AppendUint32(nil, uint32(n))
	case QWordType:
		n, _ := strconv.ParseUint(value, 10, 64)
		a.Data = binary.LittleEndian.AppendUint64(nil, n)
	default:
		if f.Type == types.TypePicture {
			a.Type = BytesType
			a.Data = renderPicture(picture(f))
			return a, true
		}
		if data, ok := attrdata.ForName(f.InternalName()).Bytes(value); ok {
			a.Data = data
			return a, true
		}
		v, ok := f.FieldValue(types.FieldData)
		if !ok {
			return a, false
		}
		data, _ := v.([]byte)
		a.Data = data
	}
	return a, true
}

// picture returns the picture of a frame. An edited value replaces the
// description.
func picture(f *types.Frame) types.Picture {
	p := types.PictureFromFields(f.Fields)
	if f.ValueChanged {
		p.Description = f.Value()
	}
	return p
}
