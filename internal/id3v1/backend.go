package id3v1

import (
	"strconv"
	"unicode/utf8"

	"github.com/simonhull/tagframe/internal/genres"
	"github.com/simonhull/tagframe/internal/types"
)

// alternativeGenreNames maps current spellings to the names of the
// genre table.
var alternativeGenreNames = map[string]string{
	"Avant-Garde": "Avantgarde",
	"Beat Music":  "Beat",
	"Bebop":       "Bebob",
	"Britpop":     "BritPop",
	"Dancehall":   "Dance Hall",
	"Dark Wave":   "Darkwave",
	"Euro House":  "Euro-House",
	"Eurotechno":  "Euro-Techno",
	"Fast Fusion": "Fusion",
	"Folk Rock":   "Folk/Rock",
	"Hip Hop":     "Hip-Hop",
	"Jazz-Funk":   "Jazz+Funk",
	"Pop-Funk":    "Pop/Funk",
	"Synth-Pop":   "Synthpop",
}

// Backend maps an ID3v1 tag to the standard frames Title to Genre.
//
// Values which do not fit are truncated and flagged, see IsTruncated.
type Backend struct {
	tag        *Tag
	truncation uint64
	changed    bool
	cfg        *types.TagConfig
}

// NewBackend wraps tag, which may be nil if the file has none.
func NewBackend(tag *Tag, cfg *types.TagConfig) *Backend {
	return &Backend{tag: tag, cfg: cfg}
}

// Tag returns the native tag, nil if absent.
func (b *Backend) Tag() *Tag { return b.tag }

// Changed reports whether the tag was modified.
func (b *Backend) Changed() bool { return b.changed }

func (b *Backend) TagFormat() string {
	if b.tag == nil {
		return ""
	}
	return b.tag.Version()
}

func (b *Backend) IsEmpty() bool {
	return b.tag == nil || b.tag.IsEmpty()
}

// AllFrames returns the seven standard frames. They are inactive if the
// file has no tag.
func (b *Backend) AllFrames() types.FrameCollection {
	var frames types.FrameCollection
	for t := types.TypeFirstFrame; t <= types.TypeLastV1Frame; t++ {
		f := types.NewInactiveFrame(types.ExtendedType{Type: t})
		if b.tag != nil {
			f.SetValue(b.value(t))
		}
		frames.Insert(f)
	}
	return frames
}

func (b *Backend) value(t types.Type) string {
	tag := b.tag
	switch t {
	case types.TypeTitle:
		return tag.Title
	case types.TypeArtist:
		return tag.Artist
	case types.TypeAlbum:
		return tag.Album
	case types.TypeComment:
		return tag.Comment
	case types.TypeDate:
		if n := tag.YearNumber(); n > 0 {
			return strconv.Itoa(n)
		}
		return ""
	case types.TypeTrack:
		if tag.Track > 0 {
			return strconv.Itoa(tag.Track)
		}
		return ""
	case types.TypeGenre:
		return genres.Name(int(tag.Genre))
	}
	return ""
}

// SetFrame sets one of the standard fields. An inactive frame is
// ignored.
func (b *Backend) SetFrame(f *types.Frame) bool {
	if f.Type < types.TypeFirstFrame || f.Type > types.TypeLastV1Frame {
		return false
	}
	if f.IsInactive() {
		return true
	}
	if b.tag == nil {
		b.tag = NewTag()
	}
	b.set(f.Type, f.Value(), f.ValueAsNumber())
	b.changed = true
	return true
}

func (b *Backend) set(t types.Type, v string, num int) {
	tag := b.tag
	switch t {
	case types.TypeTitle:
		tag.Title = b.truncate(t, v, 30)
	case types.TypeArtist:
		tag.Artist = b.truncate(t, v, 30)
	case types.TypeAlbum:
		tag.Album = b.truncate(t, v, 30)
	case types.TypeComment:
		limit := 30
		if tag.Track > 0 {
			limit = 28
		}
		tag.Comment = b.truncate(t, v, limit)
	case types.TypeDate:
		// only the year of a full date fits
		num = leadingNumber(v)
		if num <= 0 {
			tag.Year = ""
		} else {
			tag.Year = strconv.Itoa(b.clamp(t, num, 9999))
		}
	case types.TypeTrack:
		if num < 0 {
			num = 0
		}
		tag.Track = b.clamp(t, num, 255)
		if tag.Track > 0 && utf8.RuneCountInString(tag.Comment) > 28 {
			tag.Comment = b.truncate(types.TypeComment, tag.Comment, 28)
		}
	case types.TypeGenre:
		num := genreNumber(v)
		tag.Genre = byte(num)
		b.flag(t, v != "" && num == genres.Unknown)
	}
}

// genreNumber returns the number of the first element of a genre list
// which is in the genre table.
func genreNumber(v string) int {
	if v == "" {
		return genres.Unknown
	}
	for _, g := range types.SplitStringList(v) {
		if n := genres.Number(genres.NameString(g)); n != genres.Unknown {
			return n
		}
		if old, ok := alternativeGenreNames[g]; ok {
			return genres.Number(old)
		}
	}
	return genres.Unknown
}

func leadingNumber(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n
}

func (b *Backend) flag(t types.Type, truncated bool) {
	if truncated {
		if b.cfg != nil {
			b.cfg.Log().WithField("frame", t.String()).Debug("value does not fit into ID3v1 tag")
		}
		b.truncation |= 1 << uint(t)
	} else {
		b.truncation &^= 1 << uint(t)
	}
}

func (b *Backend) truncate(t types.Type, s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		b.flag(t, false)
		return s
	}
	b.flag(t, true)
	return string([]rune(s)[:n])
}

func (b *Backend) clamp(t types.Type, v, limit int) int {
	b.flag(t, v > limit)
	if v > limit {
		return limit
	}
	return v
}

// IsTruncated reports whether the last value set for t did not fit.
func (b *Backend) IsTruncated(t types.Type) bool {
	return b.truncation&(1<<uint(t)) != 0
}

// Truncation returns the truncation flags, one bit per frame type.
func (b *Backend) Truncation() uint64 { return b.truncation }

// AddFrame fails, ID3v1 has a fixed set of fields.
func (b *Backend) AddFrame(*types.Frame) bool { return false }

// DeleteFrame clears a field.
func (b *Backend) DeleteFrame(f types.Frame) bool {
	if b.tag == nil {
		return f.Type >= types.TypeFirstFrame && f.Type <= types.TypeLastV1Frame
	}
	empty := types.NewFrame(f.Type, "", "")
	return b.SetFrame(&empty)
}

// DeleteFrames clears the fields passing flt. If all frames are enabled
// the tag is removed.
func (b *Backend) DeleteFrames(flt types.FrameFilter) {
	if b.tag == nil {
		return
	}
	if flt.AreAllEnabled() {
		b.tag = nil
		b.truncation = 0
		b.changed = true
		return
	}
	for t := types.TypeFirstFrame; t <= types.TypeLastV1Frame; t++ {
		if flt.IsEnabled(t, "") {
			empty := types.NewFrame(t, "", "")
			b.SetFrame(&empty)
		}
	}
}

// FrameIDs returns the names of the standard frames.
func (b *Backend) FrameIDs() []string {
	var ids []string
	for t := types.TypeFirstFrame; t <= types.TypeLastV1Frame; t++ {
		ids = append(ids, t.String())
	}
	return ids
}

// Save writes the tag to the end of the file, or removes it.
func (b *Backend) Save(path string) error {
	if !b.changed {
		return nil
	}
	tag := b.tag
	if tag != nil && tag.IsEmpty() {
		tag = nil
	}
	if err := Write(path, tag); err != nil {
		return err
	}
	b.changed = false
	return nil
}
