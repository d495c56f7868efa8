package asf

import (
	"bytes"
	"testing"

	"github.com/simonhull/tagframe/internal/types"
)

func TestAttribute_Value(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		want string
	}{
		{"unicode", UnicodeAttribute("WM/Genre", "Rock"), "Rock"},
		{"bool dword", Attribute{Name: "IsVBR", Type: BoolType, Data: le32(1)}, "1"},
		{"bool word", Attribute{Name: "IsVBR", Type: BoolType, Data: le16(0)}, "0"},
		{"dword", Attribute{Name: "PeakValue", Type: DWordType, Data: le32(32768)}, "32768"},
		{"qword", Attribute{Name: "WM/Duration", Type: QWordType, Data: le64(1 << 40)}, "1099511627776"},
		{"word", Attribute{Name: "WM/Count", Type: WordType, Data: le16(7)}, "7"},
		{"guid", Attribute{Name: "WM/WMContentID", Type: GuidType, Data: testContentID[:]}, "D1607DBC-E323-4BE2-86A1-48A42A28441E"},
		{"unknown bytes", Attribute{Name: "WM/MCDI", Type: BytesType, Data: []byte{1, 2}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.Value(); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttributeForFrame(t *testing.T) {
	tests := []struct {
		name     string
		frame    types.Frame
		vt       ValueType
		wantData []byte
		wantOK   bool
	}{
		{"unicode", types.NewFrame(types.TypeAlbum, "Album", ""), UnicodeType, wide("Album"), true},
		{"bool", types.NewFrame(types.TypeOther, "1", "IsVBR"), BoolType, le32(1), true},
		{"bool not one", types.NewFrame(types.TypeOther, "yes", "IsVBR"), BoolType, le32(0), true},
		{"dword", types.NewFrame(types.TypeOther, "32768", "PeakValue"), DWordType, le32(32768), true},
		{"word", types.NewFrame(types.TypeOther, "7", "WM/Count"), WordType, le16(7), true},
		{"qword", types.NewFrame(types.TypeOther, "9", "WM/Duration"), QWordType, le64(9), true},
		{"guid from value", types.NewFrame(types.TypeOther, "D1607DBC-E323-4BE2-86A1-48A42A28441E", "WM/WMContentID"),
			GuidType, testContentID[:], true},
		{"bytes without data", types.NewFrame(types.TypeOther, "", "WM/MCDI"), BytesType, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.frame
			a, ok := attributeForFrame(f.InternalName(), tt.vt, &f)
			if ok != tt.wantOK {
				t.Fatalf("attributeForFrame() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !bytes.Equal(a.Data, tt.wantData) {
				t.Errorf("Data = % x, want % x", a.Data, tt.wantData)
			}
		})
	}

	f := types.NewFrame(types.TypeOther, "", "WM/MCDI")
	f.Fields = []types.Field{{ID: types.FieldData, Value: []byte{9, 8}}}
	if a, ok := attributeForFrame("WM/MCDI", BytesType, &f); !ok || !bytes.Equal(a.Data, []byte{9, 8}) {
		t.Errorf("data field = % x, %v, want 09 08", a.Data, ok)
	}
}

func TestPicture(t *testing.T) {
	p := types.Picture{Type: types.PictureBackCover, MIMEType: "image/jpeg", Description: "Back", Data: []byte{0xFF, 0xD8, 0xFF}}
	data := renderPicture(p)

	got, err := parsePicture(data)
	if err != nil {
		t.Fatalf("parsePicture() error = %v", err)
	}
	if got.Type != p.Type || got.MIMEType != p.MIMEType || got.Description != p.Description || !bytes.Equal(got.Data, p.Data) {
		t.Errorf("parsePicture() = %v %q %q, want %v %q %q", got.Type, got.MIMEType, got.Description, p.Type, p.MIMEType, p.Description)
	}

	broken := []struct {
		name string
		data []byte
	}{
		{"short", []byte{3, 0}},
		{"unterminated", append([]byte{3, 0, 0, 0, 0}, 'i', 0, 'm', 0)},
		{"length mismatch", append(data, 0)},
	}
	for _, tt := range broken {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePicture(tt.data); err == nil {
				t.Error("parsePicture() error = nil, want error")
			}
		})
	}
}

func TestPicture_EditedDescription(t *testing.T) {
	f := types.Picture{Type: types.PictureFrontCover, MIMEType: "image/png", Description: "old"}.Frame(PictureName, types.EncodingISO8859_1)
	f.SetValue("new")
	f.ValueChanged = true
	if got := picture(&f).Description; got != "new" {
		t.Errorf("Description = %q, want new", got)
	}
}
