package id3v2

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	binutil "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// subframe is a frame embedded in a CHAP or CTOC frame.
type subframe struct {
	id   string
	body []byte
}

// chapterFrame is the body of a CHAP frame.
type chapterFrame struct {
	elementID   string
	startTime   uint32 // milliseconds
	endTime     uint32 // milliseconds
	startOffset uint32 // usually 0xFFFFFFFF
	endOffset   uint32 // usually 0xFFFFFFFF
	subframes   []subframe
}

// tocFrame is the body of a CTOC frame.
type tocFrame struct {
	elementID string
	topLevel  bool
	ordered   bool
	children  []string
	subframes []subframe
}

const (
	tocFlagOrdered  = 0x01
	tocFlagTopLevel = 0x02
)

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte)
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

func encodeSynchsafe(n uint32) []byte {
	return []byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}

// parseSubframes walks the frames following the fixed part of a CHAP or
// CTOC body. Sizes are synchsafe in ID3v2.4; a size with the high bit of
// a byte set is read as a plain integer.
func parseSubframes(data []byte, version byte) []subframe {
	var frames []subframe
	for len(data) >= 10 {
		// Check for padding (null bytes indicate end of frames)
		if data[0] == 0 {
			break
		}

		frameID := string(data[0:4])
		var frameSize uint32
		if version == 4 && data[4]&0x80 == 0 && data[5]&0x80 == 0 &&
			data[6]&0x80 == 0 && data[7]&0x80 == 0 {
			frameSize = decodeSynchsafe(data[4:8])
		} else {
			frameSize = binary.BigEndian.Uint32(data[4:8])
		}
		if uint64(frameSize) > uint64(len(data)-10) {
			break
		}

		frames = append(frames, subframe{
			id:   frameID,
			body: append([]byte(nil), data[10:10+frameSize]...),
		})
		data = data[10+frameSize:]
	}
	return frames
}

// renderSubframes writes frame headers without flags followed by the
// bodies.
func renderSubframes(w *binutil.SafeWriter, frames []subframe, version byte) {
	for _, f := range frames {
		w.WriteString(f.id)
		if version == 4 {
			w.WriteBytes(encodeSynchsafe(uint32(len(f.body))))
		} else {
			binutil.Write(w, uint32(len(f.body)))
		}
		binutil.Write(w, uint16(0))
		w.WriteBytes(f.body)
	}
}

// subframeFields decomposes embedded frames. Each frame starts with a
// Subframe field holding its name.
func subframeFields(frames []subframe, version byte) []types.Field {
	var fields []types.Field
	for _, f := range frames {
		fields = append(fields, types.Field{ID: types.FieldSubframe, Value: lookupID(f.id).name()})
		sub, err := decodeBody(f.id, f.body, version)
		if err != nil {
			sub = []types.Field{{ID: types.FieldData, Value: cloneBytes(f.body)}}
		}
		fields = append(fields, sub...)
	}
	return fields
}

// subframeType resolves the name of an embedded frame, e.g. "TIT2 -
// Title/songname/content description" or "TIT2". Other names are read
// as display names.
func subframeType(name string) types.ExtendedType {
	if len(name) >= 4 && isValidID(name[:4]) && (len(name) == 4 || name[4] == ' ' || name[4] == '\n') {
		return types.ExtendedType{Type: lookupID(name[:4]).typ, Name: name}
	}
	return types.ExtendedTypeFromName(name)
}

// subframeID returns the frame ID for an embedded frame, "" if there is
// none.
func subframeID(f *types.Frame) string {
	if name := f.InternalName(); len(name) >= 4 && isValidID(name[:4]) {
		return name[:4]
	}
	return idOfType(f.Type)
}

// subframesFromFields rebuilds embedded frames from a field list in
// field order. Frames without frame ID are dropped.
func subframesFromFields(fields []types.Field, version byte) []subframe {
	embedded := types.FromSubframes(fields, subframeType)
	ordered := embedded.Frames()
	slices.SortStableFunc(ordered, func(a, b types.Frame) int {
		return cmp.Compare(a.Index, b.Index)
	})

	var frames []subframe
	for i := range ordered {
		id := subframeID(&ordered[i])
		if id == "" {
			continue
		}
		frames = append(frames, subframe{id: id, body: encodeBody(id, ordered[i].Fields, version)})
	}
	return frames
}

// title returns the text of the first embedded TIT2 frame.
func title(frames []subframe, version byte) (string, bool) {
	for _, f := range frames {
		if f.id != "TIT2" {
			continue
		}
		fields, err := decodeBody(f.id, f.body, version)
		if err != nil {
			return "", true
		}
		return fieldList(fields).str(types.FieldText), true
	}
	return "", false
}

// setTitle replaces the text of the first embedded TIT2 frame or adds
// one. An empty text adds no frame.
func setTitle(frames []subframe, text string, version byte) []subframe {
	body := encodeBody("TIT2", []types.Field{
		{ID: types.FieldTextEnc, Value: int(binutil.EncodingUTF16)},
		{ID: types.FieldText, Value: text},
	}, version)
	for i := range frames {
		if frames[i].id == "TIT2" {
			frames[i].body = body
			return frames
		}
	}
	if text == "" {
		return frames
	}
	return append(frames, subframe{id: "TIT2", body: body})
}

func parseChapter(body []byte, version byte) (chapterFrame, error) {
	br := binutil.NewBodyReader(body, "CHAP")
	c := chapterFrame{
		elementID:   br.Text(binutil.EncodingISO8859_1, "element ID"),
		startTime:   br.Uint32("start time"),
		endTime:     br.Uint32("end time"),
		startOffset: br.Uint32("start offset"),
		endOffset:   br.Uint32("end offset"),
	}
	if err := br.Err(); err != nil {
		return c, err
	}
	c.subframes = parseSubframes(br.Rest(), version)
	return c, nil
}

func (c chapterFrame) render(version byte) []byte {
	var buf bytes.Buffer
	w := binutil.NewSafeWriter(&buf)
	w.WriteText(c.elementID, binutil.EncodingISO8859_1, true)
	binutil.Write(w, c.startTime)
	binutil.Write(w, c.endTime)
	binutil.Write(w, c.startOffset)
	binutil.Write(w, c.endOffset)
	renderSubframes(w, c.subframes, version)
	return buf.Bytes()
}

// fields returns Identifier, Data with start time, end time, start
// offset and end offset, and the embedded frames.
func (c chapterFrame) fields(version byte) []types.Field {
	fields := []types.Field{
		{ID: types.FieldIdentifier, Value: c.elementID},
		{ID: types.FieldData, Value: []any{
			int(c.startTime), int(c.endTime), int(c.startOffset), int(c.endOffset),
		}},
	}
	return append(fields, subframeFields(c.subframes, version)...)
}

func chapterFromFields(fields []types.Field, version byte) chapterFrame {
	l := fieldList(fields)
	c := chapterFrame{
		elementID:   l.str(types.FieldIdentifier),
		startOffset: 0xFFFFFFFF,
		endOffset:   0xFFFFFFFF,
	}
	times := l.list(types.FieldData)
	for i, p := range []*uint32{&c.startTime, &c.endTime, &c.startOffset, &c.endOffset} {
		if i < len(times) {
			*p = uint32(types.Field{Value: times[i]}.Int())
		}
	}
	c.subframes = subframesFromFields(fields, version)
	return c
}

func parseTOC(body []byte, version byte) (tocFrame, error) {
	br := binutil.NewBodyReader(body, "CTOC")
	t := tocFrame{elementID: br.Text(binutil.EncodingISO8859_1, "element ID")}
	flags := br.Byte("flags")
	count := int(br.Byte("entry count"))
	t.topLevel = flags&tocFlagTopLevel != 0
	t.ordered = flags&tocFlagOrdered != 0
	for i := 0; i < count && br.Err() == nil; i++ {
		t.children = append(t.children, br.Text(binutil.EncodingISO8859_1, fmt.Sprintf("child %d", i)))
	}
	if err := br.Err(); err != nil {
		return t, err
	}
	t.subframes = parseSubframes(br.Rest(), version)
	return t, nil
}

func (t tocFrame) render(version byte) []byte {
	var buf bytes.Buffer
	w := binutil.NewSafeWriter(&buf)
	w.WriteText(t.elementID, binutil.EncodingISO8859_1, true)
	var flags byte
	if t.topLevel {
		flags |= tocFlagTopLevel
	}
	if t.ordered {
		flags |= tocFlagOrdered
	}
	children := t.children
	if len(children) > 255 {
		children = children[:255]
	}
	w.WriteBytes([]byte{flags, byte(len(children))})
	for _, child := range children {
		w.WriteText(child, binutil.EncodingISO8859_1, true)
	}
	renderSubframes(w, t.subframes, version)
	return buf.Bytes()
}

// fields returns Identifier, Data with the top-level flag, the ordered
// flag and the child element IDs, and the embedded frames.
func (t tocFrame) fields(version byte) []types.Field {
	children := make([]any, len(t.children))
	for i, c := range t.children {
		children[i] = c
	}
	fields := []types.Field{
		{ID: types.FieldIdentifier, Value: t.elementID},
		{ID: types.FieldData, Value: []any{t.topLevel, t.ordered, children}},
	}
	return append(fields, subframeFields(t.subframes, version)...)
}

func tocFromFields(fields []types.Field, version byte) tocFrame {
	l := fieldList(fields)
	t := tocFrame{elementID: l.str(types.FieldIdentifier)}
	data := l.list(types.FieldData)
	if len(data) > 0 {
		t.topLevel = types.Field{Value: data[0]}.Int() != 0
	}
	if len(data) > 1 {
		t.ordered = types.Field{Value: data[1]}.Int() != 0
	}
	if len(data) > 2 {
		switch children := data[2].(type) {
		case []any:
			for _, c := range children {
				t.children = append(t.children, types.Field{Value: c}.String())
			}
		case []string:
			t.children = append(t.children, children...)
		case string:
			t.children = strings.Fields(children)
		}
	}
	t.subframes = subframesFromFields(fields, version)
	return t
}
