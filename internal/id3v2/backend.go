// Package id3v2 maps ID3v2.3 and ID3v2.4 tags to frames.
//
// Reading and writing the tag structure is done by github.com/bogem/id3v2.
// This package converts its frames to the generalized frames of package
// types and back. Frame layouts that library does not model are decoded
// from and encoded to the raw body.
package id3v2

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagframe/internal/types"
)

// Frames only used by ID3v2.3. They are converted to their ID3v2.4
// counterparts when reading and regenerated when writing ID3v2.3.
var v23Only = map[string]bool{
	"TYER": true, "TDAT": true, "TIME": true, "TRDA": true,
	"TORY": true, "IPLS": true, "TSIZ": true,
}

// Unknown frames which are not shown because their content is part of
// TDRC.
var hiddenUnknown = map[string]bool{
	"TDAT": true, "TIME": true, "TRDA": true, "TYER": true,
}

// Backend holds the frames of an ID3v2 tag.
type Backend struct {
	cfg      *types.TagConfig
	frames   []nativeFrame
	chapters *types.Frame
	warnings []types.Warning
	version  byte
	exists   bool
	changed  bool
}

var _ types.TagBackend = (*Backend)(nil)

// New creates an empty tag using the configured ID3v2 version.
func New(cfg *types.TagConfig) *Backend {
	v := byte(4)
	if cfg.ID3v2Version == 3 {
		v = 3
	}
	return &Backend{cfg: cfg, version: v}
}

// Open reads the tag of an MP3 file. A file without tag gives an empty
// backend.
func Open(path string, cfg *types.TagConfig) (*Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ID3v2 tag: %w", err)
	}
	defer f.Close()

	b, err := Read(f, cfg)
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		b = New(cfg)
		b.warn("unsupported tag version, tag ignored")
		return b, nil
	}
	return b, err
}

// Read parses a tag from the start of r.
func Read(r io.Reader, cfg *types.TagConfig) (*Backend, error) {
	data, err := readTag(r)
	if err != nil {
		return nil, fmt.Errorf("read ID3v2 tag: %w", err)
	}
	data = renameFrames(data, "CHAP", rawChapterID)
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("parse ID3v2 tag: %w", err)
	}
	return fromTag(tag, cfg)
}

func fromTag(tag *id3v2.Tag, cfg *types.TagConfig) (*Backend, error) {
	b := New(cfg)
	if !tag.HasFrames() {
		return b, nil
	}
	b.exists = true
	if v := tag.Version(); v == 3 || v == 4 {
		b.version = v
	}
	all := tag.AllFrames()
	if raw, ok := all[rawChapterID]; ok {
		all["CHAP"] = raw
		delete(all, rawChapterID)
	}
	for _, id := range slices.Sorted(maps.Keys(all)) {
		for _, f := range all[id] {
			b.frames = append(b.frames, nativeFrame{id: id, frame: f})
		}
	}
	for _, nf := range b.frames {
		if _, err := decodeNative(nf, b.version); err != nil {
			if cfg.Strict {
				return nil, fmt.Errorf("frame %s: %w", nf.id, err)
			}
			b.warn(fmt.Sprintf("frame %s kept as raw data: %v", nf.id, err))
		}
	}
	if b.version == 3 {
		b.upgradeV23()
	}
	b.chapters = b.buildChapters()
	return b, nil
}

func (b *Backend) warn(msg string) {
	b.warnings = append(b.warnings, types.Warning{Stage: "id3v2", Message: msg})
	b.cfg.Log().WithField("stage", "id3v2").Warn(msg)
}

// Warnings returns the problems found while reading the tag.
func (b *Backend) Warnings() []types.Warning { return b.warnings }

// Version returns the major version, 3 or 4.
func (b *Backend) Version() int { return int(b.version) }

// SetVersion changes the version used when saving and re-encodes all
// frames for it.
func (b *Backend) SetVersion(v int) {
	nv := byte(4)
	if v == 3 {
		nv = 3
	}
	if nv == b.version {
		return
	}
	for i, nf := range b.frames {
		fields, err := decodeNative(nf, b.version)
		if err != nil {
			continue
		}
		b.frames[i].frame = encodeNative(nf.id, fields, nv)
	}
	b.version = nv
	b.changed = true
}

// Changed reports whether the tag was modified since it was read or
// saved.
func (b *Backend) Changed() bool { return b.changed }

// TagFormat returns e.g. "ID3v2.4.0", "" if the file has no tag.
func (b *Backend) TagFormat() string {
	if !b.exists && b.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("ID3v2.%d.0", b.version)
}

// IsEmpty reports whether the tag has no frames.
func (b *Backend) IsEmpty() bool {
	return len(b.frames) == 0 && b.chapters == nil
}

// AllFrames converts all frames. The chapters pseudo frame is added
// when the tag has a top-level table of contents.
func (b *Backend) AllFrames() types.FrameCollection {
	var frames types.FrameCollection
	for i := range b.frames {
		if f, ok := b.frameAt(i); ok {
			frames.Insert(f)
		}
	}
	if b.chapters != nil {
		frames.Insert(b.chapters.Clone())
	}
	return frames
}

// frameAt converts the native frame at position i.
func (b *Backend) frameAt(i int) (types.Frame, bool) {
	nf := b.frames[i]
	spec := lookupID(nf.id)
	if spec.typ == types.TypeUnknownFrame && hiddenUnknown[nf.id] {
		return types.Frame{}, false
	}
	fields, err := decodeNative(nf, b.version)
	if err != nil {
		b.cfg.Log().WithError(err).WithField("frame", nf.id).Debug("undecodable frame")
		fields = []types.Field{{ID: types.FieldData, Value: cloneBytes(bodyOf(nf.frame))}}
	}

	et := types.ExtendedType{Type: spec.typ, Name: spec.name()}
	l := fieldList(fields)
	switch shapeOf(nf.id) {
	case shapeUserText, shapeUserURL, shapeComment:
		desc := l.str(types.FieldDescription)
		if t, ok := magicDescriptions[desc]; ok && (strings.HasSuffix(nf.id, "XXX") || nf.id == "COMM") {
			et.Type = t
		} else if desc != "" {
			desc = strings.TrimPrefix(desc, "QuodLibet::")
			et = types.ExtendedType{Type: types.TypeOther, Name: spec.name() + "\n" + desc}
		}
	case shapePRIV:
		if owner := l.str(types.FieldOwner); owner != "" {
			et = types.ExtendedType{Type: types.TypeOther, Name: spec.name() + "\n" + owner}
		}
	}

	f := types.NewFrame(et.Type, valueOf(nf.id, fields), et.Name)
	f.Index = i
	f.Fields = fields
	return f, true
}

// SetFrame writes a frame back. The native frame is found by Index, or
// by type if the frame is detached; a detached frame without native
// counterpart is added.
func (b *Backend) SetFrame(f *types.Frame) bool {
	if isChaptersFrame(f) {
		c := f.Clone()
		c.Index = chaptersIndex
		b.chapters = &c
		b.writeChapters(f)
		b.changed = true
		return true
	}
	if f.Index >= 0 && f.Index < len(b.frames) {
		id := b.frames[f.Index].id
		b.setNative(f.Index, f)
		b.refreshChapters(id)
		return true
	}
	return b.setWithoutIndex(f)
}

func (b *Backend) setWithoutIndex(f *types.Frame) bool {
	for i := range b.frames {
		cur, ok := b.frameAt(i)
		if !ok || cur.ExtendedType.Compare(f.ExtendedType) != 0 {
			continue
		}
		if f.IsInactive() {
			return true
		}
		b.setNative(i, f)
		b.refreshChapters(b.frames[i].id)
		return true
	}
	if f.IsEmpty() {
		return true
	}
	add := f.Clone()
	return b.AddFrame(&add)
}

// setNative replaces the native frame at i. An edited value regenerates
// the fields from it, otherwise the fields of f are taken over.
func (b *Backend) setNative(i int, f *types.Frame) {
	nf := b.frames[i]
	fields, err := decodeNative(nf, b.version)
	if err != nil {
		fields = []types.Field{{ID: types.FieldData, Value: cloneBytes(bodyOf(nf.frame))}}
	}
	l := fieldList(fields)
	if f.ValueChanged || len(f.Fields) == 0 {
		if b.cfg.TextEncoding != types.EncodingISO8859_1 {
			l.set(types.FieldTextEnc, int(b.cfg.TextEncoding))
		}
		setValue(nf.id, l, b.fixUp(f.Type, f.Value()))
	} else {
		l = applyFields(l, f.Fields)
	}
	b.frames[i].frame = encodeNative(nf.id, l, b.version)
	b.changed = true
}

// fixUp adapts values before they are stored: genres become numbers
// unless configured otherwise, track numbers are padded and involved
// people lists get an even number of elements.
func (b *Backend) fixUp(t types.Type, value string) string {
	switch t {
	case types.TypeGenre:
		v23 := b.version == 3
		if !b.cfg.GenreNotNumeric || (v23 && strings.ContainsRune(value, types.StringListSeparator)) {
			return genreNumberString(value, v23)
		}
	case types.TypeTrack:
		return b.cfg.FormatTrackNumber(value, true)
	case types.TypeArranger, types.TypePerformer:
		if value != "" && !strings.ContainsRune(value, types.StringListSeparator) {
			return types.JoinStringList([]string{value, ""})
		}
	}
	return value
}

// AddFrame creates a native frame for f. The frame ID comes from the
// type, or from the name for TypeOther: "TXXX", "TXXX - User defined
// text information\nDescription" or a free name, which becomes the
// description of a TXXX frame. f.Index, f.Fields and the type are
// updated to the new native frame.
func (b *Backend) AddFrame(f *types.Frame) bool {
	if isChaptersFrame(f) {
		if len(f.Fields) == 0 {
			cf := newChaptersFrame("", []any{})
			f.Fields = cf.Fields
		}
		f.Index = chaptersIndex
		c := f.Clone()
		b.chapters = &c
		b.writeChapters(f)
		b.exists = true
		b.changed = true
		return true
	}

	id, l := b.newNative(f)
	if id == "" {
		return false
	}
	if len(f.Fields) > 0 {
		f.SetValueFromFieldList()
		l = applyFields(l, f.Fields)
	} else if !f.IsEmpty() {
		setValue(id, l, b.fixUp(f.Type, f.Value()))
	}
	b.frames = append(b.frames, nativeFrame{id: id, frame: encodeNative(id, l, b.version)})
	i := len(b.frames) - 1

	if added, ok := b.frameAt(i); ok {
		f.ExtendedType = added.ExtendedType
		if len(f.Fields) == 0 {
			f.Fields = added.Fields
		}
	}
	f.Index = i
	b.refreshChapters(id)
	b.exists = true
	b.changed = true
	return true
}

// newNative picks the frame ID for f and returns the default fields of
// a new frame.
func (b *Backend) newNative(f *types.Frame) (string, fieldList) {
	name := f.InternalName()
	var id string
	if f.Type != types.TypeOther && f.Type != types.TypeUnknownFrame {
		id = idOfType(f.Type)
		if id != "" {
			name = lookupID(id).name()
		}
	} else {
		switch {
		case name == "AverageLevel" || name == "PeakValue" || strings.HasPrefix(name, "WM/"):
			id = "PRIV"
		case strings.HasPrefix(name, "iTun"):
			id = "COMM"
		case isValidID(name):
			id = name
		default:
			id, _ = idOfName(name)
		}
	}
	desc, hasDesc := descriptionOfName(name)
	enc := int(b.cfg.TextEncoding)

	switch {
	case id == "TXXX":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldDescription, Value: desc},
			{ID: types.FieldText, Value: ""},
		}
	case shapeOf(id) == shapeText && isValidID(id) && !v23Only[id]:
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldText, Value: ""},
		}
	case id == "COMM":
		if !hasDesc && f.Type == types.TypeOther {
			desc = name
		}
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldLanguage, Value: "eng"},
			{ID: types.FieldDescription, Value: desc},
			{ID: types.FieldText, Value: ""},
		}
	case id == "APIC":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldImageFormat, Value: ""},
			{ID: types.FieldMimeType, Value: "image/jpeg"},
			{ID: types.FieldPictureType, Value: 3},
			{ID: types.FieldDescription, Value: ""},
			{ID: types.FieldData, Value: []byte{}},
		}
	case id == "UFID":
		return id, fieldList{
			{ID: types.FieldOwner, Value: "http://www.id3.org/dummy/ufid.html"},
			{ID: types.FieldIdentifier, Value: []byte(" ")},
		}
	case id == "GEOB":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldMimeType, Value: ""},
			{ID: types.FieldFilename, Value: ""},
			{ID: types.FieldDescription, Value: ""},
			{ID: types.FieldData, Value: []byte{}},
		}
	case id == "WXXX":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldDescription, Value: desc},
			{ID: types.FieldURL, Value: ""},
		}
	case shapeOf(id) == shapeURL && isValidID(id):
		return id, fieldList{{ID: types.FieldURL, Value: "http://"}}
	case id == "USLT":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldLanguage, Value: "eng"},
			{ID: types.FieldDescription, Value: ""},
			{ID: types.FieldText, Value: ""},
		}
	case id == "SYLT":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldLanguage, Value: "eng"},
			{ID: types.FieldTimestampFormat, Value: 2},
			{ID: types.FieldContentType, Value: 1},
			{ID: types.FieldDescription, Value: ""},
			{ID: types.FieldData, Value: []any{}},
		}
	case id == "ETCO":
		return id, fieldList{
			{ID: types.FieldTimestampFormat, Value: 2},
			{ID: types.FieldData, Value: []any{}},
		}
	case id == "POPM":
		return id, fieldList{
			{ID: types.FieldEmail, Value: b.cfg.PopmEmail},
			{ID: types.FieldRating, Value: 0},
			{ID: types.FieldCounter, Value: 0},
		}
	case id == "PRIV":
		owner := desc
		if !strings.HasPrefix(name, "PRIV") {
			owner = name
		}
		return id, fieldList{
			{ID: types.FieldOwner, Value: owner},
			{ID: types.FieldData, Value: []byte{}},
		}
	case id == "OWNE":
		return id, fieldList{
			{ID: types.FieldTextEnc, Value: enc},
			{ID: types.FieldDate, Value: "        "},
			{ID: types.FieldPrice, Value: ""},
			{ID: types.FieldSeller, Value: ""},
		}
	case id == "RVA2":
		return id, fieldList{
			{ID: types.FieldIdentifier, Value: ""},
			{ID: types.FieldText, Value: ""},
		}
	case id == "PCST":
		return id, fieldList{{ID: types.FieldData, Value: []byte{0, 0, 0, 0}}}
	case id == "CHAP":
		c := chapterFrame{elementID: "chp", startOffset: noOffset, endOffset: noOffset}
		return id, c.fields(b.version)
	case id == "CTOC":
		t := tocFrame{elementID: "toc"}
		return id, t.fields(b.version)
	}

	// Anything else is stored in a TXXX frame with the name as
	// description.
	desc, ok := descriptionOfType[f.Type]
	if !ok {
		desc = name
		if d, has := descriptionOfName(name); has {
			desc = d
		}
	}
	return "TXXX", fieldList{
		{ID: types.FieldTextEnc, Value: enc},
		{ID: types.FieldDescription, Value: desc},
		{ID: types.FieldText, Value: ""},
	}
}

// DeleteFrame removes the native frame f refers to. Deleting the
// chapters pseudo frame removes all CHAP and CTOC frames.
func (b *Backend) DeleteFrame(f types.Frame) bool {
	if isChaptersFrame(&f) {
		if b.chapters == nil {
			return false
		}
		b.removeChapters()
		b.changed = true
		return true
	}
	if f.Index < 0 || f.Index >= len(b.frames) {
		return false
	}
	id := b.frames[f.Index].id
	b.frames = slices.Delete(b.frames, f.Index, f.Index+1)
	b.refreshChapters(id)
	b.changed = true
	return true
}

// DeleteFrames removes the frames passing flt, all frames if the
// filter enables everything.
func (b *Backend) DeleteFrames(flt types.FrameFilter) {
	if flt.AreAllEnabled() {
		if len(b.frames) > 0 || b.chapters != nil {
			b.changed = true
		}
		b.frames = nil
		b.chapters = nil
		return
	}
	var keep []nativeFrame
	var removedChapters bool
	for i, nf := range b.frames {
		f, ok := b.frameAt(i)
		if ok && flt.IsEnabled(f.Type, f.Name) {
			removedChapters = removedChapters || nf.id == "CHAP" || nf.id == "CTOC"
			b.changed = true
			continue
		}
		keep = append(keep, nf)
	}
	b.frames = keep
	if removedChapters {
		b.chapters = b.buildChapters()
	}
}

// FrameIDs lists the names offered for new frames.
func (b *Backend) FrameIDs() []string { return frameIDs() }

// Save writes the tag to path, replacing the existing tag.
func (b *Backend) Save(path string) error {
	if !b.changed {
		return nil
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		return fmt.Errorf("open ID3v2 tag for writing: %w", err)
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	tag.SetVersion(b.version)
	for _, nf := range b.framesToWrite() {
		tag.AddFrame(nf.id, nf.frame)
	}
	if err := tag.Save(); err != nil {
		return fmt.Errorf("write ID3v2 tag: %w", err)
	}
	b.changed = false
	b.exists = len(b.frames) > 0
	return nil
}

// upgradeV23 converts the frames of an ID3v2.3 tag which have a
// different ID in ID3v2.4. TYER and TDAT are combined into TDRC.
func (b *Backend) upgradeV23() {
	yearIdx := -1
	var year, dayMonth string
	for i, nf := range b.frames {
		switch nf.id {
		case "TYER":
			yearIdx, year = i, b.textOf(nf)
		case "TDAT":
			dayMonth = b.textOf(nf)
		case "TORY":
			b.frames[i] = b.textFrame("TDOR", b.textOf(nf))
		case "IPLS":
			b.frames[i] = b.textFrame("TIPL", b.textOf(nf))
		}
	}
	if yearIdx < 0 {
		return
	}
	if len(year) == 4 && len(dayMonth) == 4 && isDigits(dayMonth) {
		year += "-" + dayMonth[2:] + "-" + dayMonth[:2]
	}
	b.frames[yearIdx] = b.textFrame("TDRC", year)
}

// framesToWrite returns the frames for the tag version. ID3v2.3 gets
// TYER, TDAT, TORY and IPLS in place of TDRC, TDOR, TIPL and TMCL.
func (b *Backend) framesToWrite() []nativeFrame {
	var out []nativeFrame
	var people []string
	peopleIdx := -1
	for _, nf := range b.frames {
		if v23Only[nf.id] {
			continue
		}
		if b.version == 4 {
			out = append(out, nf)
			continue
		}
		switch nf.id {
		case "TDRC":
			text := b.textOf(nf)
			if len(text) >= 4 {
				out = append(out, b.textFrame("TYER", text[:4]))
			}
			if len(text) >= 10 && text[4] == '-' && text[7] == '-' {
				out = append(out, b.textFrame("TDAT", text[8:10]+text[5:7]))
			}
			if len(text) >= 16 && text[10] == 'T' && text[13] == ':' {
				out = append(out, b.textFrame("TIME", text[11:13]+text[14:16]))
			}
		case "TDOR":
			if text := b.textOf(nf); len(text) >= 4 {
				out = append(out, b.textFrame("TORY", text[:4]))
			}
		case "TIPL", "TMCL":
			people = append(people, types.SplitStringList(b.textOf(nf))...)
			if peopleIdx < 0 {
				peopleIdx = len(out)
				out = append(out, nativeFrame{})
			}
		default:
			out = append(out, nf)
		}
	}
	if peopleIdx >= 0 {
		out[peopleIdx] = b.textFrame("IPLS", types.JoinStringList(people))
	}
	return out
}

// textOf returns the text of a text frame as string list.
func (b *Backend) textOf(nf nativeFrame) string {
	fields, err := decodeNative(nf, b.version)
	if err != nil {
		return ""
	}
	return fieldList(fields).str(types.FieldText)
}

func (b *Backend) textFrame(id, text string) nativeFrame {
	return nativeFrame{id: id, frame: encodeNative(id, []types.Field{
		{ID: types.FieldTextEnc, Value: int(types.EncodingISO8859_1)},
		{ID: types.FieldText, Value: text},
	}, b.version)}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
