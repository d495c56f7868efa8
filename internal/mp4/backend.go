package mp4

import (
	"slices"
	"strconv"
	"strings"

	gomp4 "github.com/abema/go-mp4"

	"github.com/simonhull/tagframe/internal/types"
)

// Backend holds the items of an ilst atom. Cover art is kept apart as
// picture frames with negative indexes.
type Backend struct {
	cfg      *types.TagConfig
	items    []item
	pictures []types.Frame
	changed  bool
}

var _ types.TagBackend = (*Backend)(nil)

// New creates an empty item list.
func New(cfg *types.TagConfig) *Backend {
	return &Backend{cfg: cfg}
}

// fromItems takes over parsed items. The covr item becomes picture
// frames and a numeric genre is converted to its name.
func fromItems(items []item, cfg *types.TagConfig) *Backend {
	b := New(cfg)
	hasGenreName := slices.ContainsFunc(items, func(it item) bool { return it.key == "\251gen" })
	for _, it := range items {
		if it.key == coverArtName {
			for _, d := range it.values {
				b.pictures = append(b.pictures, b.pictureFrame(pictureOfData(d), len(b.pictures)))
			}
			continue
		}
		if it.key == "gnre" {
			if hasGenreName {
				cfg.Log().Debug("numeric MP4 genre dropped in favor of genre name")
				continue
			}
			convertGenreNumber(&it)
			cfg.Log().WithField("genre", decodeValue(kindString, it.values)).Debug("converted numeric MP4 genre")
		}
		b.items = append(b.items, it)
	}
	return b
}

// pictureFrame converts cover art. MP4 stores neither picture type nor
// description, covers are shown as front covers.
func (b *Backend) pictureFrame(p types.Picture, i int) types.Frame {
	p.Type = types.PictureFrontCover
	p.Description = ""
	f := p.Frame(coverArtName, types.EncodingISO8859_1)
	f.Index = toNegativeIndex(i)
	return f
}

// The picture at position i is shown with index -2-i, -1 stays the
// index of detached frames.
func toNegativeIndex(i int) int   { return -2 - i }
func fromNegativeIndex(i int) int { return -2 - i }

// TagFormat returns "MP4".
func (b *Backend) TagFormat() string { return "MP4" }

// IsEmpty reports whether there are no items and no cover art.
func (b *Backend) IsEmpty() bool { return len(b.items) == 0 && len(b.pictures) == 0 }

// Changed reports whether the items were modified.
func (b *Backend) Changed() bool { return b.changed }

// Item returns the data of the item with a native key, such as "\251nam"
// or "----:com.apple.iTunes:MOOD".
func (b *Backend) Item(key string) ([]gomp4.Data, bool) {
	if i := b.indexOfKey(key); i >= 0 {
		return b.items[i].values, true
	}
	return nil, false
}

// BoxTypes returns the atom types of the items in order.
func (b *Backend) BoxTypes() []gomp4.BoxType {
	bts := make([]gomp4.BoxType, 0, len(b.items))
	for i := range b.items {
		bts = append(bts, b.items[i].boxType())
	}
	return bts
}

func (b *Backend) indexOfKey(key string) int {
	return slices.IndexFunc(b.items, func(it item) bool { return it.key == key })
}

// setItem replaces the item with key or appends a new one.
func (b *Backend) setItem(key string, values []gomp4.Data) int {
	if i := b.indexOfKey(key); i >= 0 {
		b.items[i].values = values
		return i
	}
	b.items = append(b.items, item{key: key, values: values})
	return len(b.items) - 1
}

func (b *Backend) removeItem(key string) bool {
	if i := b.indexOfKey(key); i >= 0 {
		b.items = slices.Delete(b.items, i, i+1)
		return true
	}
	return false
}

// nativeKey returns the key an item named name is stored with. Names of
// free-form items get the iTunes prefix unless an item with the bare
// name exists. A free-form item with another prefix ending in name is
// reused.
func (b *Backend) nativeKey(name string) string {
	if b.indexOfKey(name) >= 0 {
		return name
	}
	prefixable := !strings.HasPrefix(name, freeFormType) && !isStandardKey(name)
	if !prefixable && b.indexOfKey(iTunesFreeForm+name) < 0 {
		return name
	}
	if _, _, freeForm := typeForName(name); !freeForm {
		return name
	}
	name = strings.TrimPrefix(name, ":")
	key := iTunesFreeForm + name
	if b.indexOfKey(key) < 0 && name != "" {
		for _, it := range b.items {
			if strings.HasPrefix(it.key, freeFormType) && strings.HasSuffix(it.key, ":"+name) {
				return it.key
			}
		}
	}
	return key
}

// AllFrames converts the items, followed by the cover art.
func (b *Backend) AllFrames() types.FrameCollection {
	var frames types.FrameCollection
	for i, it := range b.items {
		name := stripFreeFormName(it.key)
		t, kind, _ := typeForName(name)
		if t == types.TypePicture {
			continue
		}
		f := types.NewFrame(t, decodeValue(kind, it.values), name)
		f.Index = i
		frames.Insert(f)
	}
	for _, pic := range b.pictures {
		frames.Insert(pic.Clone())
	}
	return frames
}

// itemValues encodes the value of f. The total number of tracks is
// added to a track number without total when enabled.
func (b *Backend) itemValues(f *types.Frame, name string, kind valueKind) ([]gomp4.Data, bool) {
	value := f.Value()
	if name == "trkn" && b.cfg.EnableTotalNumberOfTracks && b.cfg.TotalNumberOfTracks > 0 &&
		!strings.Contains(value, "/") {
		if n, ok := types.NumberWithoutTotal(value); ok {
			value = strconv.Itoa(n) + "/" + strconv.Itoa(b.cfg.TotalNumberOfTracks)
		}
	}
	return encodeValue(name, kind, value)
}

// SetFrame writes a frame back to the item of its name. Cover art is
// found by index.
func (b *Backend) SetFrame(f *types.Frame) bool {
	if f.Type == types.TypePicture {
		i := fromNegativeIndex(f.Index)
		if i < 0 || i >= len(b.pictures) {
			return false
		}
		pic := b.pictureFrame(types.PictureFromFields(f.Fields), i)
		if b.pictures[i].FuzzyEqual(&pic) {
			b.pictures[i].ValueChanged = false
			return true
		}
		b.pictures[i] = pic
		b.changed = true
		return true
	}
	if f.IsInactive() {
		return true
	}

	name, kind := nameOfFrame(f)
	key := b.nativeKey(name)
	if f.Value() == "" {
		if b.removeItem(key) {
			b.changed = true
		}
		return true
	}
	values, ok := b.itemValues(f, name, kind)
	if !ok {
		return false
	}
	b.setItem(key, values)
	b.changed = true
	return true
}

// AddFrame creates the item for f. Pictures added without fields get an
// empty front cover.
func (b *Backend) AddFrame(f *types.Frame) bool {
	if f.Type == types.TypePicture {
		p := types.PictureFromFields(f.Fields)
		if len(f.Fields) == 0 {
			p = types.DefaultPicture()
		}
		pic := b.pictureFrame(p, len(b.pictures))
		b.pictures = append(b.pictures, pic)
		f.ExtendedType = pic.ExtendedType
		f.Fields = pic.Clone().Fields
		f.Index = pic.Index
		b.changed = true
		return true
	}

	name, kind := nameOfFrame(f)
	if name == "" {
		return false
	}
	values, ok := b.itemValues(f, name, kind)
	if !ok {
		return false
	}
	f.ExtendedType = types.ExtendedType{Type: f.Type, Name: name}
	f.Index = b.setItem(b.nativeKey(name), values)
	b.changed = true
	return true
}

// DeleteFrame removes the item of f's name or the cover art at its
// index.
func (b *Backend) DeleteFrame(f types.Frame) bool {
	if f.Type == types.TypePicture {
		i := fromNegativeIndex(f.Index)
		if i < 0 || i >= len(b.pictures) {
			return false
		}
		b.pictures = slices.Delete(b.pictures, i, i+1)
		for ; i < len(b.pictures); i++ {
			b.pictures[i].Index = toNegativeIndex(i)
		}
		b.changed = true
		return true
	}
	name, _ := nameOfFrame(&f)
	if !b.removeItem(b.nativeKey(name)) {
		return false
	}
	b.changed = true
	return true
}

// DeleteFrames removes the items passing flt.
func (b *Backend) DeleteFrames(flt types.FrameFilter) {
	if flt.AreAllEnabled() {
		if !b.IsEmpty() {
			b.changed = true
		}
		b.items = nil
		b.pictures = nil
		return
	}
	n := len(b.items)
	b.items = slices.DeleteFunc(b.items, func(it item) bool {
		name := stripFreeFormName(it.key)
		t, _, _ := typeForName(name)
		return flt.IsEnabled(t, name)
	})
	if len(b.items) != n {
		b.changed = true
	}
	if len(b.pictures) > 0 && flt.IsEnabled(types.TypePicture, "") {
		b.pictures = nil
		b.changed = true
	}
}

// FrameIDs lists the names offered for new frames.
func (b *Backend) FrameIDs() []string { return FrameIDs() }

// CoverArt returns the data atoms of the covr item.
func (b *Backend) CoverArt() []gomp4.Data {
	values := make([]gomp4.Data, 0, len(b.pictures))
	for _, f := range b.pictures {
		values = append(values, dataOfPicture(types.PictureFromFields(f.Fields)))
	}
	return values
}
