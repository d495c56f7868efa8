package id3v2

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagframe/internal/types"
)

// ChaptersName is the name of the pseudo frame which shows the chapters
// of the top-level CTOC frame as a synchronized list.
const ChaptersName = "Chapters"

// chaptersIndex is the Index of the chapters pseudo frame. It is below
// -1 so that it is neither detached nor a position in the native tag.
const chaptersIndex = -2

const noOffset = 0xFFFFFFFF

// newChaptersFrame creates the pseudo frame. data alternates start
// times in milliseconds and titles, ending with the end time of the
// last chapter and an empty title.
func newChaptersFrame(description string, data []any) types.Frame {
	f := types.NewFrame(types.TypeOther, "", ChaptersName)
	f.Index = chaptersIndex
	f.Fields = []types.Field{
		{ID: types.FieldTimestampFormat, Value: 2},
		{ID: types.FieldContentType, Value: 0},
		{ID: types.FieldDescription, Value: description},
		{ID: types.FieldData, Value: data},
	}
	return f
}

func isChaptersFrame(f *types.Frame) bool {
	return f.Type == types.TypeOther && f.Name == ChaptersName
}

// buildChapters creates the pseudo frame from the top-level CTOC frame
// and the CHAP frames it references, nil if there is no top-level CTOC.
func (b *Backend) buildChapters() *types.Frame {
	var top *tocFrame
	chapters := make(map[string]chapterFrame)
	for _, nf := range b.frames {
		switch nf.id {
		case "CTOC":
			if top != nil {
				continue
			}
			if t, err := parseTOC(bodyOf(nf.frame), b.version); err == nil && t.topLevel {
				top = &t
			}
		case "CHAP":
			if c, err := parseChapter(bodyOf(nf.frame), b.version); err == nil {
				chapters[c.elementID] = c
			}
		}
	}
	if top == nil {
		return nil
	}

	data := []any{}
	var end uint32
	for _, child := range top.children {
		c, ok := chapters[child]
		if !ok {
			continue
		}
		t, _ := title(c.subframes, b.version)
		data = append(data, int(c.startTime), t)
		end = c.endTime
	}
	data = append(data, int(end), "")
	desc, _ := title(top.subframes, b.version)
	f := newChaptersFrame(desc, data)
	return &f
}

// refreshChapters rebuilds the pseudo frame after a native CHAP or CTOC
// frame was modified.
func (b *Backend) refreshChapters(id string) {
	if id == "CHAP" || id == "CTOC" {
		b.chapters = b.buildChapters()
	}
}

// writeChapters stores the pseudo frame in a top-level CTOC frame with
// children "chp01".."chpNN" and one CHAP frame per chapter. Existing
// CHAP frames are reused, preferring the one with the same title and
// then the one with the same element ID. Other CTOC frames and surplus
// CHAP frames are removed.
func (b *Backend) writeChapters(f *types.Frame) {
	l := fieldList(f.Fields)
	data := append([]any(nil), l.list(types.FieldData)...)
	if n := len(data); n >= 2 {
		last := types.Field{Value: data[n-1]}.String()
		if strings.TrimSpace(last) != "" {
			data = append(data, data[n-2], "")
		}
	}
	if len(data) <= 2 || len(data)%2 != 0 {
		return
	}
	count := (len(data) - 2) / 2

	tocIdx := -1
	var toc tocFrame
	for i, nf := range b.frames {
		if nf.id != "CTOC" {
			continue
		}
		if t, err := parseTOC(bodyOf(nf.frame), b.version); err == nil && t.topLevel {
			tocIdx, toc = i, t
			break
		}
	}
	if tocIdx < 0 {
		toc = tocFrame{elementID: "toc01", topLevel: true, ordered: true}
		b.frames = append(b.frames, nativeFrame{id: "CTOC"})
		tocIdx = len(b.frames) - 1
	}

	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("chp%02d", i+1)
	}
	toc.children = ids
	desc := l.str(types.FieldDescription)
	if _, ok := title(toc.subframes, b.version); ok || desc != "" {
		toc.subframes = setTitle(toc.subframes, desc, b.version)
	}
	b.frames[tocIdx].frame = id3v2.UnknownFrame{Body: toc.render(b.version)}

	var chapPos []int
	frames := make([]nativeFrame, 0, len(b.frames)+count)
	for i, nf := range b.frames {
		switch {
		case nf.id == "CTOC" && i != tocIdx:
			continue
		case nf.id == "CHAP":
			if len(chapPos) >= count {
				continue
			}
			chapPos = append(chapPos, len(frames))
		}
		frames = append(frames, nf)
	}
	for len(chapPos) < count {
		empty := chapterFrame{elementID: " ", startOffset: noOffset, endOffset: noOffset}
		chapPos = append(chapPos, len(frames))
		frames = append(frames, nativeFrame{id: "CHAP", frame: id3v2.UnknownFrame{Body: empty.render(b.version)}})
	}
	b.frames = frames

	type slot struct {
		pos   int
		c     chapterFrame
		title string
	}
	free := make([]slot, 0, count)
	for _, p := range chapPos {
		c, err := parseChapter(bodyOf(b.frames[p].frame), b.version)
		if err != nil {
			c = chapterFrame{elementID: " ", startOffset: noOffset, endOffset: noOffset}
		}
		t, _ := title(c.subframes, b.version)
		free = append(free, slot{pos: p, c: c, title: t})
	}

	done := make([]slot, 0, count)
	last := -1
	for k := 0; k < len(data); k += 2 {
		t := uint32(types.Field{Value: data[k]}.Int())
		if last >= 0 {
			done[last].c.endTime = t
			done[last].c.endOffset = noOffset
		}
		if k+1 >= len(data) || len(free) == 0 {
			break
		}
		i := len(done)
		text := strings.TrimSpace(types.Field{Value: data[k+1]}.String())
		pick := 0
		found := false
		for j, s := range free {
			if s.title == text {
				pick, found = j, true
				break
			}
		}
		if !found {
			for j, s := range free {
				if s.c.elementID == ids[i] {
					pick = j
					break
				}
			}
		}
		s := free[pick]
		free = append(free[:pick], free[pick+1:]...)
		s.c.elementID = ids[i]
		s.c.startTime = t
		s.c.startOffset = noOffset
		s.c.subframes = setTitle(s.c.subframes, text, b.version)
		done = append(done, s)
		last = i
	}
	for _, s := range done {
		b.frames[s.pos].frame = id3v2.UnknownFrame{Body: s.c.render(b.version)}
	}
}

// removeChapters deletes all CHAP and CTOC frames.
func (b *Backend) removeChapters() {
	frames := b.frames[:0]
	for _, nf := range b.frames {
		if nf.id != "CHAP" && nf.id != "CTOC" {
			frames = append(frames, nf)
		}
	}
	b.frames = frames
	b.chapters = nil
}
