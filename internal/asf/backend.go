package asf

import (
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/types"
)

// Indexes of the content description frames. Attributes follow from
// indexAttributes on.
const (
	indexTitle = iota
	indexArtist
	indexComment
	indexCopyright
	indexRating
	indexAttributes
)

// contentFrames are the types and names of the content description
// fields by index.
var contentFrames = [indexAttributes]types.ExtendedType{
	{Type: types.TypeTitle, Name: "Title"},
	{Type: types.TypeArtist, Name: "Author"},
	{Type: types.TypeComment, Name: "Description"},
	{Type: types.TypeCopyright, Name: "Copyright"},
	{Type: types.TypeOther, Name: ratingName},
}

// Backend holds the content description and the attributes of an ASF
// header. Attributes are kept sorted by name, several attributes may
// share a name.
type Backend struct {
	cfg     *types.TagConfig
	content [indexAttributes]string
	attrs   []Attribute
	changed bool
}

var _ types.TagBackend = (*Backend)(nil)

// New creates an empty tag.
func New(cfg *types.TagConfig) *Backend {
	return &Backend{cfg: cfg}
}

func fromHeader(h *header, cfg *types.TagConfig) *Backend {
	b := New(cfg)
	b.content = h.content
	b.attrs = slices.Clone(h.attrs)
	slices.SortStableFunc(b.attrs, func(x, y Attribute) int { return strings.Compare(x.Name, y.Name) })
	return b
}

// TagFormat returns "ASF".
func (b *Backend) TagFormat() string { return "ASF" }

// IsEmpty reports whether all content description fields are empty and
// there are no attributes.
func (b *Backend) IsEmpty() bool {
	return b.content == [indexAttributes]string{} && len(b.attrs) == 0
}

// Changed reports whether the tag was modified.
func (b *Backend) Changed() bool { return b.changed }

// ContentDescription returns title, author, copyright, description and
// rating.
func (b *Backend) ContentDescription() (title, author, copyright, description, rating string) {
	c := b.content
	return c[indexTitle], c[indexArtist], c[indexCopyright], c[indexComment], c[indexRating]
}

// Attributes returns the attributes sorted by name.
func (b *Backend) Attributes() []Attribute { return slices.Clone(b.attrs) }

// AllFrames returns the content description fields, also when empty,
// followed by the attributes.
func (b *Backend) AllFrames() types.FrameCollection {
	var frames types.FrameCollection
	for i, et := range contentFrames {
		f := types.NewFrame(et.Type, b.content[i], et.Name)
		f.Index = i
		frames.Insert(f)
	}
	for i, a := range b.attrs {
		frames.Insert(b.attributeFrame(a, indexAttributes+i))
	}
	return frames
}

func (b *Backend) attributeFrame(a Attribute, index int) types.Frame {
	t, vt := typeForName(a.Name)
	f := types.NewFrame(t, a.Value(), a.Name)
	if a.Type == BytesType && vt == BytesType {
		f.Fields = []types.Field{{ID: types.FieldData, Value: slices.Clone(a.Data)}}
	}
	if t == types.TypePicture {
		if p, err := parsePicture(a.Data); err == nil {
			f = p.Frame(a.Name, types.EncodingISO8859_1)
		} else {
			b.cfg.Log().WithFields(logrus.Fields{"index": index, "error": err}).Debug("invalid ASF picture kept as data")
		}
	}
	f.Index = index
	return f
}

// contentIndex returns the content description index of an attribute
// name, -1 for other names.
func contentIndex(name string) int {
	return slices.IndexFunc(contentFrames[:], func(et types.ExtendedType) bool { return et.Name == name })
}

func (b *Backend) count(name string) int {
	n := 0
	for _, a := range b.attrs {
		if a.Name == name {
			n++
		}
	}
	return n
}

// setAttribute replaces all attributes of a's name by a.
func (b *Backend) setAttribute(a Attribute) int {
	i := slices.IndexFunc(b.attrs, func(x Attribute) bool { return x.Name == a.Name })
	if i < 0 {
		return b.addAttribute(a)
	}
	b.attrs[i] = a
	rest := slices.DeleteFunc(b.attrs[i+1:], func(x Attribute) bool { return x.Name == a.Name })
	b.attrs = b.attrs[:i+1+len(rest)]
	return i
}

// addAttribute inserts a after the attributes with the same name.
func (b *Backend) addAttribute(a Attribute) int {
	i := slices.IndexFunc(b.attrs, func(x Attribute) bool { return x.Name > a.Name })
	if i < 0 {
		i = len(b.attrs)
	}
	b.attrs = slices.Insert(b.attrs, i, a)
	return i
}

// frameValue formats track numbers; other values are stored as they are.
func (b *Backend) frameValue(f *types.Frame) *types.Frame {
	g := f.Clone()
	if g.Type == types.TypeTrack {
		g.SetValue(b.cfg.FormatTrackNumber(g.Value(), true))
	}
	return &g
}

// SetFrame writes a frame back. Content description fields and
// attributes are found by index. An attribute whose name occurs once
// is replaced by name. Detached frames replace the frame of their type.
func (b *Backend) SetFrame(f *types.Frame) bool {
	if f.IsInactive() {
		return true
	}
	switch {
	case f.Index >= 0 && f.Index < indexAttributes:
		if b.content[f.Index] != f.Value() {
			b.content[f.Index] = f.Value()
			b.changed = true
		}
		return true
	case f.Index >= indexAttributes:
		name, vt := nameOfFrame(f)
		a, ok := attributeForFrame(name, vt, b.frameValue(f))
		if !ok {
			return false
		}
		if b.count(name) > 1 {
			i := f.Index - indexAttributes
			if i >= len(b.attrs) || b.attrs[i].Name != name {
				return false
			}
			b.attrs[i] = a
		} else {
			b.setAttribute(a)
		}
		b.changed = true
		return true
	}
	return b.setFrameWithoutIndex(f)
}

func (b *Backend) setFrameWithoutIndex(f *types.Frame) bool {
	frames := b.AllFrames()
	if cur := frames.Find(f.ExtendedType); cur != nil {
		g := f.Clone()
		g.Index = cur.Index
		return b.SetFrame(&g)
	}
	if f.Value() == "" {
		return true
	}
	g := f.Clone()
	return b.AddFrame(&g)
}

// AddFrame creates an attribute for f, or sets the content description
// field of its name. Pictures added without fields get an empty front
// cover.
func (b *Backend) AddFrame(f *types.Frame) bool {
	if f.Type == types.TypePicture && len(f.Fields) == 0 {
		f.Fields = types.DefaultPicture().Fields(types.EncodingISO8859_1)
	}
	name, vt := nameOfFrame(f)
	if name == "" {
		return false
	}
	f.ExtendedType = types.ExtendedType{Type: f.Type, Name: name}
	if i := contentIndex(name); i >= 0 {
		b.content[i] = f.Value()
		f.Index = i
		b.changed = true
		return true
	}

	if vt == BytesType && f.Type != types.TypePicture {
		if _, ok := f.FieldValue(types.FieldData); !ok {
			f.Fields = append(f.Fields, types.Field{ID: types.FieldData, Value: []byte{}})
		}
	}
	a, ok := attributeForFrame(name, vt, b.frameValue(f))
	if !ok {
		a = Attribute{Name: name, Type: vt}
	}
	f.Index = indexAttributes + b.addAttribute(a)
	b.changed = true
	return true
}

// DeleteFrame clears the content description field or removes the
// attribute at f's index. An attribute whose name occurs once is
// removed by name.
func (b *Backend) DeleteFrame(f types.Frame) bool {
	switch {
	case f.Index >= 0 && f.Index < indexAttributes:
		b.content[f.Index] = ""
	case f.Index >= indexAttributes:
		name := f.InternalName()
		if b.count(name) > 1 {
			i := f.Index - indexAttributes
			if i >= len(b.attrs) || b.attrs[i].Name != name {
				return false
			}
			b.attrs = slices.Delete(b.attrs, i, i+1)
		} else {
			n := len(b.attrs)
			b.attrs = slices.DeleteFunc(b.attrs, func(a Attribute) bool { return a.Name == name })
			if len(b.attrs) == n {
				return false
			}
		}
	default:
		return false
	}
	b.changed = true
	return true
}

// DeleteFrames clears the fields and removes the attributes passing flt.
func (b *Backend) DeleteFrames(flt types.FrameFilter) {
	if flt.AreAllEnabled() {
		b.content = [indexAttributes]string{}
		b.attrs = nil
		b.changed = true
		return
	}
	for i, et := range contentFrames {
		name := ""
		if et.Type == types.TypeOther {
			name = et.Name
		}
		if flt.IsEnabled(et.Type, name) {
			b.content[i] = ""
		}
	}
	b.attrs = slices.DeleteFunc(b.attrs, func(a Attribute) bool {
		t, _ := typeForName(a.Name)
		return flt.IsEnabled(t, a.Name)
	})
	b.changed = true
}

// FrameIDs lists the names offered for new frames.
func (b *Backend) FrameIDs() []string { return FrameIDs() }
