package mp4

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	gomp4 "github.com/abema/go-mp4"

	tfbinary "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/genres"
	"github.com/simonhull/tagframe/internal/types"
)

// Well-known data types of the data atom besides binary and UTF-8.
const (
	dataTypeGIF       = 12
	dataTypeJPEG      = 13
	dataTypePNG       = 14
	dataTypeSignedInt = 21
	dataTypeBMP       = 27
)

// item is one entry of the ilst atom. The key of a free-form item is
// "----:" + mean + ":" + name.
type item struct {
	key    string
	values []gomp4.Data
}

// boxType returns the atom type of the item.
func (it *item) boxType() gomp4.BoxType {
	if strings.HasPrefix(it.key, freeFormType) {
		return gomp4.StrToBoxType(freeFormType)
	}
	var bt gomp4.BoxType
	copy(bt[:], it.key)
	return bt
}

// parseIlst reads the items of an ilst atom. Items which cannot be
// parsed are skipped with a warning.
func parseIlst(sr *tfbinary.SafeReader, ilst *Atom) ([]item, []types.Warning, error) {
	atoms, err := children(sr, ilst.DataOffset(), ilst.End())
	if err != nil && len(atoms) == 0 {
		return nil, nil, err
	}
	var warnings []types.Warning
	if err != nil {
		warnings = append(warnings, types.Warning{Stage: "mp4", Message: err.Error(), Offset: ilst.Offset})
	}

	var items []item
	for _, atom := range atoms {
		it, err := parseItem(sr, atom)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "mp4",
				Message: fmt.Sprintf("failed to parse item '%s': %v", atom.Type, err),
				Offset:  atom.Offset,
			})
			continue
		}
		items = append(items, it)
	}
	return items, warnings, nil
}

// parseItem reads the data atoms of an item, and for a free-form item
// its mean and name atoms.
func parseItem(sr *tfbinary.SafeReader, atom *Atom) (item, error) {
	atoms, err := children(sr, atom.DataOffset(), atom.End())
	if err != nil {
		return item{}, err
	}
	it := item{key: atom.Type}
	var mean, name string
	for _, child := range atoms {
		payload := make([]byte, child.DataSize())
		if err := sr.ReadAt(payload, child.DataOffset(), child.Type+" atom"); err != nil {
			return item{}, err
		}
		switch child.Type {
		case "data":
			if len(payload) < 8 {
				return item{}, fmt.Errorf("data atom too short: %d bytes", len(payload))
			}
			it.values = append(it.values, gomp4.Data{
				DataType: binary.BigEndian.Uint32(payload[0:4]),
				DataLang: binary.BigEndian.Uint32(payload[4:8]),
				Data:     payload[8:],
			})
		case "mean", "name":
			// full boxes, skip version and flags
			if len(payload) < 4 {
				return item{}, fmt.Errorf("%s atom too short", child.Type)
			}
			if child.Type == "mean" {
				mean = string(payload[4:])
			} else {
				name = string(payload[4:])
			}
		}
	}
	if atom.Type == freeFormType {
		if mean == "" || name == "" {
			return item{}, fmt.Errorf("free-form item without mean or name")
		}
		it.key = freeFormType + ":" + mean + ":" + name
	}
	return it, nil
}

// convertGenreNumber replaces a gnre item, an ID3v1 genre number plus
// one, by a ©gen item with the genre name.
func convertGenreNumber(it *item) {
	if it.key != "gnre" || len(it.values) == 0 || len(it.values[0].Data) < 2 {
		return
	}
	num := int(binary.BigEndian.Uint16(it.values[0].Data))
	name := genres.Name(num - 1)
	if num == 0 || name == "" {
		return
	}
	it.key = "\251gen"
	it.values = []gomp4.Data{{DataType: gomp4.DataTypeStringUTF8, Data: []byte(name)}}
}

// beInt decodes a big-endian signed integer of 1, 2, 4 or 8 bytes.
func beInt(b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.BigEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.BigEndian.Uint32(b)))
	case 8:
		return int64(binary.BigEndian.Uint64(b))
	}
	return 0
}

// beUint decodes a big-endian unsigned integer of up to 8 bytes.
func beUint(b []byte) uint64 {
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n
}

// decodeValue converts the data of an item to a frame value.
func decodeValue(kind valueKind, values []gomp4.Data) string {
	if len(values) == 0 {
		return ""
	}
	data := values[0].Data
	switch kind {
	case kindString:
		strs := make([]string, 0, len(values))
		for _, v := range values {
			strs = append(strs, string(v.Data))
		}
		return types.JoinStringList(strs)
	case kindBool:
		if len(data) > 0 && beUint(data) != 0 {
			return "1"
		}
		return "0"
	case kindInt:
		return strconv.FormatInt(beInt(data), 10)
	case kindIntPair:
		if len(data) < 6 {
			return ""
		}
		first := binary.BigEndian.Uint16(data[2:4])
		second := binary.BigEndian.Uint16(data[4:6])
		s := strconv.Itoa(int(first))
		if second != 0 {
			s += "/" + strconv.Itoa(int(second))
		}
		return s
	case kindByte:
		if len(data) == 0 {
			return ""
		}
		return strconv.Itoa(int(data[0]))
	case kindUInt:
		return strconv.FormatUint(beUint(data), 10)
	case kindLongLong:
		return strconv.FormatInt(beInt(data), 10)
	}
	return ""
}

// encodeValue converts a frame value to item data for name. ok is false
// for kinds which cannot be set from a value.
func encodeValue(name string, kind valueKind, value string) (values []gomp4.Data, ok bool) {
	integer := func(b []byte) []gomp4.Data {
		return []gomp4.Data{{DataType: dataTypeSignedInt, Data: b}}
	}
	num := func() int64 {
		n, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		return n
	}
	switch kind {
	case kindString:
		for _, s := range types.SplitStringList(value) {
			values = append(values, gomp4.Data{DataType: gomp4.DataTypeStringUTF8, Data: []byte(s)})
		}
		return values, true
	case kindBool:
		if num() != 0 {
			return integer([]byte{1}), true
		}
		return integer([]byte{0}), true
	case kindInt:
		return integer(binary.BigEndian.AppendUint16(nil, uint16(num()))), true
	case kindIntPair:
		first, second, _ := strings.Cut(value, "/")
		a, _ := strconv.Atoi(strings.TrimSpace(first))
		b, _ := strconv.Atoi(strings.TrimSpace(second))
		data := make([]byte, 6, 8)
		binary.BigEndian.PutUint16(data[2:], uint16(a))
		binary.BigEndian.PutUint16(data[4:], uint16(b))
		if name == "trkn" {
			data = append(data, 0, 0)
		}
		return []gomp4.Data{{DataType: gomp4.DataTypeBinary, Data: data}}, true
	case kindByte:
		return integer([]byte{byte(num())}), true
	case kindUInt:
		return integer(binary.BigEndian.AppendUint32(nil, uint32(num()))), true
	case kindLongLong:
		return integer(binary.BigEndian.AppendUint64(nil, uint64(num()))), true
	}
	return nil, false
}

// pictureOfData converts one data atom of a covr item.
func pictureOfData(d gomp4.Data) types.Picture {
	mime := "image/jpeg"
	switch d.DataType {
	case dataTypePNG:
		mime = "image/png"
	case dataTypeBMP:
		mime = "image/bmp"
	case dataTypeGIF:
		mime = "image/gif"
	case dataTypeJPEG:
	default:
		if sniffed := types.DetectMIMEType(d.Data); sniffed != "" {
			mime = sniffed
		}
	}
	return types.Picture{Type: types.PictureFrontCover, MIMEType: mime, Data: d.Data}
}

// dataOfPicture converts a picture to a covr data atom. Only JPEG and
// PNG are written; other images are stored with the JPEG type.
func dataOfPicture(p types.Picture) gomp4.Data {
	dataType := uint32(dataTypeJPEG)
	if p.MIMEType == "image/png" {
		dataType = dataTypePNG
	}
	return gomp4.Data{DataType: dataType, Data: p.Data}
}
