package mp4

import (
	"bytes"
	"encoding/binary"
	"testing"

	gomp4 "github.com/abema/go-mp4"

	"github.com/simonhull/tagframe/internal/types"
)

// createDataAtom creates a data atom with a type indicator.
func createDataAtom(dataType uint32, payload []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, dataType)
	binary.Write(buf, binary.BigEndian, uint32(0)) // locale
	buf.Write(payload)
	return createMockAtom("data", buf.Bytes())
}

// createItem creates an ilst item with a single UTF-8 value.
func createItem(key, value string) []byte {
	return createMockAtom(key, createDataAtom(gomp4.DataTypeStringUTF8, []byte(value)))
}

// createFreeFormItem creates a "----" item.
func createFreeFormItem(mean, name, value string) []byte {
	return createMockAtom(freeFormType,
		createMockAtom("mean", []byte{0, 0, 0, 0}, []byte(mean)),
		createMockAtom("name", []byte{0, 0, 0, 0}, []byte(name)),
		createDataAtom(gomp4.DataTypeStringUTF8, []byte(value)))
}

func TestParseIlst(t *testing.T) {
	ilstData := createMockAtom("ilst",
		createItem("\251nam", "Song"),
		createFreeFormItem("com.apple.iTunes", "MOOD", "Calm"),
		createMockAtom("trkn", createDataAtom(gomp4.DataTypeBinary, []byte{0, 0, 0, 3, 0, 12, 0, 0})),
		createMockAtom(freeFormType, createDataAtom(gomp4.DataTypeStringUTF8, []byte("orphan"))),
	)
	sr := newReader(ilstData)
	ilst, err := readAtomHeader(sr, 0)
	if err != nil {
		t.Fatal(err)
	}

	items, warnings, err := parseIlst(sr, ilst)
	if err != nil {
		t.Fatalf("parseIlst() error = %v", err)
	}
	wantKeys := []string{"\251nam", "----:com.apple.iTunes:MOOD", "trkn"}
	if len(items) != len(wantKeys) {
		t.Fatalf("got %d items, want %d", len(items), len(wantKeys))
	}
	for i, key := range wantKeys {
		if items[i].key != key {
			t.Errorf("items[%d].key = %q, want %q", i, items[i].key, key)
		}
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 for the free-form item without name", len(warnings))
	}
	if got := string(items[1].values[0].Data); got != "Calm" {
		t.Errorf("free-form value = %q, want Calm", got)
	}
	if bt := items[1].boxType(); bt != gomp4.StrToBoxType(freeFormType) {
		t.Errorf("boxType() = %v, want ----", bt)
	}
}

func TestDecodeValue(t *testing.T) {
	utf8 := func(s ...string) []gomp4.Data {
		var d []gomp4.Data
		for _, v := range s {
			d = append(d, gomp4.Data{DataType: gomp4.DataTypeStringUTF8, Data: []byte(v)})
		}
		return d
	}
	raw := func(b ...byte) []gomp4.Data {
		return []gomp4.Data{{DataType: dataTypeSignedInt, Data: b}}
	}

	tests := []struct {
		name   string
		kind   valueKind
		values []gomp4.Data
		want   string
	}{
		{"string list", kindString, utf8("A", "B|C"), `A|B\|C`},
		{"bool", kindBool, raw(1), "1"},
		{"int16", kindInt, raw(0x00, 0x78), "120"},
		{"negative int", kindInt, raw(0xFF, 0xFE), "-2"},
		{"track with total", kindIntPair, raw(0, 0, 0, 3, 0, 12, 0, 0), "3/12"},
		{"disc without total", kindIntPair, raw(0, 0, 0, 1, 0, 0), "1"},
		{"truncated pair", kindIntPair, raw(0, 0), ""},
		{"byte", kindByte, raw(10), "10"},
		{"uint", kindUInt, raw(0x80, 0, 0, 1), "2147483649"},
		{"long long", kindLongLong, raw(0, 0, 0, 0, 0, 0, 1, 0), "256"},
		{"binary", kindByteArray, raw(1, 2), ""},
		{"no data", kindString, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeValue(tt.kind, tt.values); got != tt.want {
				t.Errorf("decodeValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeValue_IntPairLayout(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []byte
	}{
		{"trkn", "5/10", []byte{0, 0, 0, 5, 0, 10, 0, 0}},
		{"trkn", "7", []byte{0, 0, 0, 7, 0, 0, 0, 0}},
		{"disk", "1/2", []byte{0, 0, 0, 1, 0, 2}},
	}
	for _, tt := range tests {
		values, ok := encodeValue(tt.name, kindIntPair, tt.value)
		if !ok || len(values) != 1 {
			t.Fatalf("encodeValue(%q, %q) = %v, %v", tt.name, tt.value, values, ok)
		}
		if !bytes.Equal(values[0].Data, tt.want) {
			t.Errorf("encodeValue(%q, %q) = % x, want % x", tt.name, tt.value, values[0].Data, tt.want)
		}
		if got := decodeValue(kindIntPair, values); got != tt.value {
			t.Errorf("decoded %q, want %q", got, tt.value)
		}
	}
}

func TestEncodeValue(t *testing.T) {
	values, ok := encodeValue("\251ART", kindString, `A|B\|C`)
	if !ok || len(values) != 2 || string(values[1].Data) != "B|C" {
		t.Errorf("string list = %v, %v, want two values", values, ok)
	}
	if values[0].DataType != gomp4.DataTypeStringUTF8 {
		t.Errorf("DataType = %d, want UTF-8", values[0].DataType)
	}

	values, _ = encodeValue("tmpo", kindInt, "128")
	if !bytes.Equal(values[0].Data, []byte{0, 128}) || values[0].DataType != dataTypeSignedInt {
		t.Errorf("tmpo = % x type %d, want 00 80 type 21", values[0].Data, values[0].DataType)
	}

	values, _ = encodeValue("cpil", kindBool, "yes")
	if !bytes.Equal(values[0].Data, []byte{0}) {
		t.Errorf("non-numeric bool = % x, want 00", values[0].Data)
	}

	if _, ok := encodeValue("xxxx", kindByteArray, "x"); ok {
		t.Error("encodeValue(ByteArray) ok = true, want false")
	}
}

func TestConvertGenreNumber(t *testing.T) {
	it := item{key: "gnre", values: []gomp4.Data{{Data: []byte{0, 18}}}}
	convertGenreNumber(&it)
	if it.key != "\251gen" || decodeValue(kindString, it.values) != "Rock" {
		t.Errorf("converted = %q %q, want \\251gen Rock", it.key, decodeValue(kindString, it.values))
	}
}

func TestPictureOfData(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")
	tests := []struct {
		name string
		data gomp4.Data
		want string
	}{
		{"png type", gomp4.Data{DataType: dataTypePNG, Data: png}, "image/png"},
		{"jpeg type", gomp4.Data{DataType: dataTypeJPEG, Data: []byte{0xFF, 0xD8, 0xFF}}, "image/jpeg"},
		{"bmp type", gomp4.Data{DataType: dataTypeBMP, Data: []byte("BM")}, "image/bmp"},
		{"sniffed", gomp4.Data{DataType: gomp4.DataTypeBinary, Data: png}, "image/png"},
		{"unknown", gomp4.Data{DataType: gomp4.DataTypeBinary, Data: []byte{1}}, "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pictureOfData(tt.data)
			if p.MIMEType != tt.want || p.Type != types.PictureFrontCover {
				t.Errorf("pictureOfData() = %s %v, want %s front cover", p.MIMEType, p.Type, tt.want)
			}
		})
	}
}
