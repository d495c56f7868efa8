// Package vorbis maps Vorbis comments to frames.
//
// Vorbis comments are used by both FLAC and Ogg Vorbis/Opus. The format
// is identical: a vendor string and a list of UTF-8 "KEY=VALUE" strings,
// where a key may occur several times. The comment block itself is a
// github.com/go-flac/flacvorbis block; pictures are base64 encoded FLAC
// picture blocks or, for FLAC files, separate PICTURE metadata blocks.
package vorbis

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/simonhull/tagframe/internal/types"
)

// Backend holds a Vorbis comment block.
type Backend struct {
	cfg   *types.TagConfig
	block *flacvorbis.MetaDataBlockVorbisComment

	// pictures are the PICTURE blocks of a FLAC file, shown with
	// negative indexes. pictureBlocks is set for FLAC files; pictures
	// of other files are stored as comments.
	pictures      []types.Frame
	pictureBlocks bool

	duration time.Duration
	changed  bool
}

var _ types.TagBackend = (*Backend)(nil)

// New creates an empty comment block.
func New(cfg *types.TagConfig) *Backend {
	return &Backend{cfg: cfg, block: flacvorbis.New()}
}

// FromComment wraps a parsed comment block.
func FromComment(vc *flacvorbis.MetaDataBlockVorbisComment, cfg *types.TagConfig) *Backend {
	if vc == nil {
		return New(cfg)
	}
	return &Backend{cfg: cfg, block: vc}
}

// FromBlock parses the payload of a VORBIS_COMMENT metadata block. The
// comment header of an Ogg stream has the same layout after its packet
// signature.
func FromBlock(data []byte, cfg *types.TagConfig) (*Backend, error) {
	vc, err := flacvorbis.ParseFromMetaDataBlock(flac.MetaDataBlock{Type: flac.VorbisComment, Data: data})
	if err != nil {
		return nil, fmt.Errorf("parse Vorbis comment: %w", err)
	}
	return FromComment(vc, cfg), nil
}

// SetPictureBlocks makes the backend keep pictures in separate blocks,
// as FLAC files do, and sets the current ones.
func (b *Backend) SetPictureBlocks(pics []*flacpicture.MetadataBlockPicture) {
	b.pictureBlocks = true
	b.pictures = b.pictures[:0]
	for _, pic := range pics {
		b.pictures = append(b.pictures, b.pictureFrame(pic, len(b.pictures)))
	}
}

func (b *Backend) pictureFrame(pic *flacpicture.MetadataBlockPicture, i int) types.Frame {
	f := types.NewFrame(types.TypePicture, pic.Description, "")
	f.Fields = pictureFields(pic)
	f.Index = toNegativeIndex(i)
	return f
}

// PictureBlocks returns the pictures to be written as PICTURE blocks.
func (b *Backend) PictureBlocks() []flac.MetaDataBlock {
	blocks := make([]flac.MetaDataBlock, 0, len(b.pictures))
	for _, f := range b.pictures {
		blocks = append(blocks, pictureOf(f.Fields).Marshal())
	}
	return blocks
}

// SetDuration sets the length of the stream, used as end time of the
// last chapter.
func (b *Backend) SetDuration(d time.Duration) { b.duration = d }

// Comment returns the native comment block.
func (b *Backend) Comment() *flacvorbis.MetaDataBlockVorbisComment { return b.block }

// Marshal renders the comment block.
func (b *Backend) Marshal() flac.MetaDataBlock { return b.block.Marshal() }

// Changed reports whether the comments were modified.
func (b *Backend) Changed() bool { return b.changed }

// MarkSaved resets the changed state after the block was written.
func (b *Backend) MarkSaved() { b.changed = false }

// The picture at position i is shown with index -2-i, -1 stays the
// index of detached frames.
func toNegativeIndex(i int) int   { return -2 - i }
func fromNegativeIndex(i int) int { return -2 - i }

// TagFormat returns "Vorbis".
func (b *Backend) TagFormat() string { return "Vorbis" }

// IsEmpty reports whether there are no comments and no pictures.
func (b *Backend) IsEmpty() bool {
	return len(b.block.Comments) == 0 && len(b.pictures) == 0
}

func (b *Backend) commentAt(i int) (name, value string, ok bool) {
	if i < 0 || i >= len(b.block.Comments) {
		return "", "", false
	}
	return strings.Cut(b.block.Comments[i], "=")
}

// AllFrames converts the comments. Chapter comments are combined into
// one chapters frame.
func (b *Backend) AllFrames() types.FrameCollection {
	var frames types.FrameCollection
	hasChapters := false
	for i := range b.block.Comments {
		name, value, ok := b.commentAt(i)
		if !ok {
			b.cfg.Log().WithField("comment", b.block.Comments[i]).Debug("comment without '=' skipped")
			continue
		}
		if _, _, isChapter := chapterKey(name); isChapter {
			hasChapters = true
			continue
		}
		t := TypeOfName(name)
		if t != types.TypePicture {
			f := types.NewFrame(t, value, name)
			f.Index = i
			frames.Insert(f)
			continue
		}
		f := types.NewFrame(t, "", name)
		f.Index = i
		upper := strings.ToUpper(name)
		if fields, ok := fieldsFromBase64(upper, value); ok {
			f.Fields = fields
			if upper == CoverArtName {
				if mime, ok := b.value(CoverArtMIMEName); ok {
					f.SetFieldValue(types.FieldMimeType, mime)
					f.SetFieldValue(types.FieldImageFormat, imageFormat(mime))
				}
			}
			f.SetValueFromFieldList()
		} else {
			b.cfg.Log().WithField("name", name).Debug("undecodable picture comment")
		}
		frames.Insert(f)
	}
	for _, pic := range b.pictures {
		frames.Insert(pic.Clone())
	}
	if hasChapters {
		frames.Insert(chaptersFrame(parseChapters(b.block.Comments), b.duration))
	}
	return frames
}

// value returns the first value of a field.
func (b *Backend) value(key string) (string, bool) {
	for i := range b.block.Comments {
		if name, value, ok := b.commentAt(i); ok && strings.EqualFold(name, key) {
			return value, true
		}
	}
	return "", false
}

// removeKey removes all comments with a field name.
func (b *Backend) removeKey(key string) int {
	n := len(b.block.Comments)
	b.block.Comments = slices.DeleteFunc(b.block.Comments, func(c string) bool {
		name, _, _ := strings.Cut(c, "=")
		return strings.EqualFold(name, key)
	})
	return n - len(b.block.Comments)
}

// replaceKey replaces the first comment with a field name and removes
// the others. Without such a comment, one is appended.
func (b *Backend) replaceKey(key, value string) {
	for i := range b.block.Comments {
		if name, _, ok := b.commentAt(i); ok && strings.EqualFold(name, key) {
			b.block.Comments[i] = key + "=" + value
			rest := b.block.Comments[i+1:]
			rest = slices.DeleteFunc(rest, func(c string) bool {
				name, _, _ := strings.Cut(c, "=")
				return strings.EqualFold(name, key)
			})
			b.block.Comments = append(b.block.Comments[:i+1], rest...)
			return
		}
	}
	b.block.Comments = append(b.block.Comments, key+"="+value)
}

// nativeValue returns the comment value for a frame. Pictures are
// encoded, track numbers formatted.
func (b *Backend) nativeValue(f *types.Frame, name string) string {
	switch f.Type {
	case types.TypePicture:
		return fieldsToBase64(name, f.Fields)
	case types.TypeTrack:
		return b.cfg.FormatTrackNumber(f.Value(), false)
	}
	return f.Value()
}

func (b *Backend) setTrackTotal() {
	if b.cfg.EnableTotalNumberOfTracks && b.cfg.TotalNumberOfTracks > 0 {
		b.replaceKey(trackTotalName, strconv.Itoa(b.cfg.TotalNumberOfTracks))
	}
}

// SetFrame writes a frame back. The comment is found by Index; a
// detached frame replaces all comments with its field name.
func (b *Backend) SetFrame(f *types.Frame) bool {
	if isChaptersFrame(f) {
		b.setChapters(f)
		return true
	}
	if f.IsInactive() {
		return true
	}
	if f.Type == types.TypePicture && b.pictureBlocks {
		i := fromNegativeIndex(f.Index)
		if i < 0 || i >= len(b.pictures) {
			return false
		}
		pic := f.Clone()
		setPictureDescription(&pic)
		if b.pictures[i].FuzzyEqual(&pic) {
			b.pictures[i].ValueChanged = false
			return true
		}
		pic.Index = toNegativeIndex(i)
		b.pictures[i] = pic
		b.changed = true
		return true
	}

	g := f.Clone()
	name := nameOf(&g)
	if g.Type == types.TypePicture {
		setPictureDescription(&g)
	}
	value := b.nativeValue(&g, name)

	if cur, _, ok := b.commentAt(f.Index); ok && strings.EqualFold(cur, name) {
		b.block.Comments[f.Index] = cur + "=" + value
	} else if value == "" {
		b.removeKey(name)
	} else {
		b.replaceKey(name, value)
	}
	if g.Type == types.TypePicture && name == CoverArtName {
		if mime := mimeTypeOf(g.Fields); mime != "" {
			b.replaceKey(CoverArtMIMEName, mime)
		}
	}
	if g.Type == types.TypeTrack {
		b.setTrackTotal()
	}
	b.changed = true
	return true
}

// AddFrame appends a comment for f. The name comes from the type, or
// from the name for TypeOther. Pictures added without fields get an
// empty front cover.
func (b *Backend) AddFrame(f *types.Frame) bool {
	if isChaptersFrame(f) {
		if len(f.Fields) == 0 {
			f.Fields = chaptersFrame(nil, 0).Fields
		}
		b.setChapters(f)
		f.Index = chaptersIndex
		return true
	}

	name := nameOf(f)
	if name == "" {
		return false
	}
	if f.Type == types.TypePicture {
		if len(f.Fields) == 0 {
			f.Fields = defaultPictureFields()
		}
		setPictureDescription(f)
		if b.pictureBlocks {
			f.Index = toNegativeIndex(len(b.pictures))
			b.pictures = append(b.pictures, f.Clone())
			b.changed = true
			return true
		}
	}

	value := b.nativeValue(f, name)
	if value == "" {
		// empty comments are dropped by many readers
		value = " "
	}
	b.block.Comments = append(b.block.Comments, name+"="+value)
	f.ExtendedType = types.ExtendedType{Type: f.Type, Name: name}
	f.Index = len(b.block.Comments) - 1
	if f.Type == types.TypePicture && name == CoverArtName {
		if mime := mimeTypeOf(f.Fields); mime != "" {
			b.replaceKey(CoverArtMIMEName, mime)
		}
	}
	if f.Type == types.TypeTrack {
		b.setTrackTotal()
	}
	b.changed = true
	return true
}

// setChapters replaces the chapter comments by the chapters of the
// pseudo frame.
func (b *Backend) setChapters(f *types.Frame) {
	b.block.Comments = slices.DeleteFunc(b.block.Comments, func(c string) bool {
		name, _, _ := strings.Cut(c, "=")
		_, _, isChapter := chapterKey(name)
		return isChapter
	})
	b.block.Comments = append(b.block.Comments, chapterComments(chaptersFromFrame(f))...)
	b.changed = true
}

// DeleteFrame removes the comment f refers to. A detached frame removes
// the comments with its name and value.
func (b *Backend) DeleteFrame(f types.Frame) bool {
	if isChaptersFrame(&f) {
		before := len(b.block.Comments)
		b.setChapters(&types.Frame{})
		return len(b.block.Comments) != before
	}
	if f.Type == types.TypePicture && b.pictureBlocks {
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

	key := f.InternalName()
	if name, _, ok := b.commentAt(f.Index); ok && strings.EqualFold(name, key) {
		b.block.Comments = slices.Delete(b.block.Comments, f.Index, f.Index+1)
		b.changed = true
		return true
	}
	value := f.Value()
	if f.Type == types.TypePicture {
		value = fieldsToBase64(strings.ToUpper(key), f.Fields)
	}
	n := len(b.block.Comments)
	b.block.Comments = slices.DeleteFunc(b.block.Comments, func(c string) bool {
		name, v, _ := strings.Cut(c, "=")
		return strings.EqualFold(name, key) && v == value
	})
	if len(b.block.Comments) == n {
		return false
	}
	b.changed = true
	return true
}

// DeleteFrames removes the comments passing flt.
func (b *Backend) DeleteFrames(flt types.FrameFilter) {
	if flt.AreAllEnabled() {
		if !b.IsEmpty() {
			b.changed = true
		}
		b.block.Comments = nil
		b.pictures = nil
		return
	}
	n := len(b.block.Comments)
	b.block.Comments = slices.DeleteFunc(b.block.Comments, func(c string) bool {
		name, _, _ := strings.Cut(c, "=")
		if _, _, isChapter := chapterKey(name); isChapter {
			return flt.IsEnabled(types.TypeOther, ChaptersName)
		}
		return flt.IsEnabled(TypeOfName(name), name)
	})
	if len(b.block.Comments) != n {
		b.changed = true
	}
	if len(b.pictures) > 0 && flt.IsEnabled(types.TypePicture, "") {
		b.pictures = nil
		b.changed = true
	}
}

// FrameIDs lists the names offered for new frames.
func (b *Backend) FrameIDs() []string { return FrameIDs() }
