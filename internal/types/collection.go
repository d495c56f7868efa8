package types

import (
	"iter"
	"math"
	"sort"
	"strconv"
	"strings"
)

// handledIndex marks frames of the other collection which were already
// compared in FilterDifferent.
const handledIndex = math.MinInt

// FrameCollection is a multiset of frames sorted by ExtendedType.
// Frames with equal keys keep their insertion order.
//
// Pointers returned by Find and friends stay valid until the next
// Insert or Remove.
type FrameCollection struct {
	frames []Frame
}

// NewFrameCollection creates a collection from frames in any order.
func NewFrameCollection(frames ...Frame) FrameCollection {
	var c FrameCollection
	for _, f := range frames {
		c.Insert(f)
	}
	return c
}

// Len returns the number of frames.
func (c *FrameCollection) Len() int { return len(c.frames) }

// At returns the frame at position i.
func (c *FrameCollection) At(i int) *Frame { return &c.frames[i] }

// All iterates over the frames in order.
func (c *FrameCollection) All() iter.Seq[*Frame] {
	return func(yield func(*Frame) bool) {
		for i := range c.frames {
			if !yield(&c.frames[i]) {
				return
			}
		}
	}
}

// Frames returns a copy of the frames in order.
func (c *FrameCollection) Frames() []Frame {
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// Insert adds a frame after all frames with an equal key and returns its
// position.
func (c *FrameCollection) Insert(f Frame) int {
	pos := sort.Search(len(c.frames), func(i int) bool {
		return f.ExtendedType.Compare(c.frames[i].ExtendedType) < 0
	})
	c.frames = append(c.frames, Frame{})
	copy(c.frames[pos+1:], c.frames[pos:])
	c.frames[pos] = f
	return pos
}

// Remove deletes the frame at position i.
func (c *FrameCollection) Remove(i int) {
	c.frames = append(c.frames[:i], c.frames[i+1:]...)
}

// Clear removes all frames.
func (c *FrameCollection) Clear() { c.frames = nil }

// lowerBound returns the position of the first frame not less than et.
func (c *FrameCollection) lowerBound(et ExtendedType) int {
	return sort.Search(len(c.frames), func(i int) bool {
		return c.frames[i].ExtendedType.Compare(et) >= 0
	})
}

func (c *FrameCollection) indexOf(et ExtendedType) int {
	i := c.lowerBound(et)
	if i < len(c.frames) && c.frames[i].ExtendedType.Compare(et) == 0 {
		return i
	}
	return -1
}

// Find returns the first frame with an equal key or nil.
func (c *FrameCollection) Find(et ExtendedType) *Frame {
	if i := c.indexOf(et); i >= 0 {
		return &c.frames[i]
	}
	return nil
}

// FindByIndex returns the frame with the given native index or nil.
func (c *FrameCollection) FindByIndex(index int) *Frame {
	for i := range c.frames {
		if c.frames[i].Index == index {
			return &c.frames[i]
		}
	}
	return nil
}

// searchPos finds the first frame whose display or internal name starts
// with name, ignoring case and slashes. A description after a newline in
// the internal name is matched too.
func (c *FrameCollection) searchPos(name string) int {
	if name == "" {
		return -1
	}
	ucName := strings.ToUpper(strings.ReplaceAll(name, "/", ""))
	for i := range c.frames {
		f := &c.frames[i]
		for _, frameName := range []string{f.DisplayName(), f.InternalName()} {
			ucFrameName := strings.ToUpper(strings.ReplaceAll(frameName, "/", ""))
			if strings.HasPrefix(ucFrameName, ucName) &&
				!(ucName == "RATING" && ucFrameName == "RATING INFORMATION") {
				return i
			}
			if nl := strings.IndexByte(ucFrameName, '\n'); nl > 0 &&
				strings.HasPrefix(ucFrameName[nl+1:], ucName) {
				return i
			}
		}
	}
	return -1
}

// SearchByName returns the first frame whose name starts with name.
func (c *FrameCollection) SearchByName(name string) *Frame {
	if i := c.searchPos(name); i >= 0 {
		return &c.frames[i]
	}
	return nil
}

// nth steps from pos to the index-th frame with the same key.
func (c *FrameCollection) nth(pos, index int) int {
	if pos < 0 || index <= 0 {
		return pos
	}
	et := c.frames[pos].ExtendedType
	pos += index
	if pos >= len(c.frames) || c.frames[pos].ExtendedType.Compare(et) != 0 {
		return -1
	}
	return pos
}

// FindByName finds the index-th frame (0 for the first) with the given
// name. The exact name is tried first, then a prefix search and finally
// the native IDs having name as their display name.
func (c *FrameCollection) FindByName(name string, index int) *Frame {
	pos := c.indexOf(ExtendedTypeFromName(name))
	if pos < 0 {
		pos = c.searchPos(name)
	}
	if pos < 0 {
		for _, id := range IDsOfDisplayName(name) {
			if pos = c.searchPos(id); pos >= 0 {
				break
			}
		}
	}
	if pos = c.nth(pos, index); pos < 0 {
		return nil
	}
	return &c.frames[pos]
}

// FindByExtendedType finds the index-th frame with the given type,
// falling back to a name search.
func (c *FrameCollection) FindByExtendedType(et ExtendedType, index int) *Frame {
	pos := c.indexOf(et)
	if pos < 0 {
		pos = c.searchPos(et.InternalName())
	}
	if pos = c.nth(pos, index); pos < 0 {
		return nil
	}
	return &c.frames[pos]
}

// Value returns the value of the first frame of type t. The frame must
// exist for ok to be true.
func (c *FrameCollection) Value(t Type) (string, bool) {
	f := c.Find(ExtendedType{Type: t})
	if f == nil || f.IsInactive() {
		return "", false
	}
	return f.Value(), true
}

// ExtendedValue looks up a value by type and name.
func (c *FrameCollection) ExtendedValue(et ExtendedType) (string, bool) {
	f := c.FindByExtendedType(et, 0)
	if f == nil || f.IsInactive() {
		return "", false
	}
	return f.Value(), true
}

// SetValue sets the value of the first frame of type et, inserting a new
// frame if there is none.
func (c *FrameCollection) SetValue(et ExtendedType, v string) {
	pos := c.indexOf(et)
	if pos < 0 && et.Type == TypeOther {
		pos = c.searchPos(et.InternalName())
	}
	if pos >= 0 {
		c.frames[pos].SetValueIfChanged(v)
		return
	}
	f := NewInactiveFrame(et)
	f.SetValue(v)
	f.ValueChanged = true
	c.Insert(f)
}

// IntValue returns the value as a number, -1 if absent.
func (c *FrameCollection) IntValue(t Type) int {
	v, ok := c.Value(t)
	if !ok {
		return -1
	}
	n, _ := strconv.Atoi(v)
	return n
}

// SetIntValue sets a number, 0 stores an empty value and -1 does nothing.
func (c *FrameCollection) SetIntValue(t Type, n int) {
	if n == -1 {
		return
	}
	v := ""
	if n != 0 {
		v = strconv.Itoa(n)
	}
	c.SetValue(ExtendedType{Type: t}, v)
}

// Title returns the title, "" if absent.
func (c *FrameCollection) Title() string {
	v, _ := c.Value(TypeTitle)
	return v
}

func (c *FrameCollection) Artist() string {
	v, _ := c.Value(TypeArtist)
	return v
}

func (c *FrameCollection) Album() string {
	v, _ := c.Value(TypeAlbum)
	return v
}

func (c *FrameCollection) Comment() string {
	v, _ := c.Value(TypeComment)
	return v
}

func (c *FrameCollection) Genre() string {
	v, _ := c.Value(TypeGenre)
	return v
}

// Year returns the date as a number, -1 if absent.
func (c *FrameCollection) Year() int { return c.IntValue(TypeDate) }

// Track returns the track number without total, -1 if absent.
func (c *FrameCollection) Track() int {
	v, ok := c.Value(TypeTrack)
	if !ok {
		return -1
	}
	n, _ := NumberWithoutTotal(v)
	return n
}

// FilterDifferent deactivates the frames whose value differs from the
// frame with the same key in others. Frames only present in one of the
// collections end up inactive here. All indexes are reset to -1.
//
// Picture frames are compared by their image data. others is modified.
func (c *FrameCollection) FilterDifferent(others *FrameCollection) {
	i := 0
	for i < len(c.frames) {
		c.frames[i].Index = -1
		et := c.frames[i].ExtendedType
		j := others.indexOf(et)
		if j < 0 {
			c.frames[i].SetInactive()
			i++
			continue
		}
		for i < len(c.frames) && j < len(others.frames) &&
			c.frames[i].ExtendedType.Compare(et) == 0 &&
			others.frames[j].ExtendedType.Compare(et) == 0 {
			c.frames[i].Index = -1
			if !sameContent(&c.frames[i], &others.frames[j]) {
				c.frames[i].SetInactive()
			}
			others.frames[j].Index = handledIndex
			i++
			j++
		}
	}
	for j := range others.frames {
		if others.frames[j].Index != handledIndex {
			f := others.frames[j]
			f.Index = -1
			f.SetInactive()
			c.Insert(f)
		}
	}
}

func sameContent(a, b *Frame) bool {
	if a.Type != TypePicture {
		return a.Value() == b.Value()
	}
	da, okA := a.FieldValue(FieldData)
	db, okB := b.FieldValue(FieldData)
	if !okA || !okB {
		return false
	}
	ba, _ := da.([]byte)
	bb, _ := db.([]byte)
	return string(ba) == string(bb)
}

// AddMissingStandardFrames inserts inactive frames for the ID3v1 types
// not present.
func (c *FrameCollection) AddMissingStandardFrames() {
	for t := TypeFirstFrame; t <= TypeLastV1Frame; t++ {
		et := ExtendedType{Type: t}
		if c.indexOf(et) < 0 {
			c.Insert(NewInactiveFrame(et))
		}
	}
}

// CopyEnabledFrames returns the frames passing the filter, detached.
func (c *FrameCollection) CopyEnabledFrames(flt FrameFilter) FrameCollection {
	var out FrameCollection
	for i := range c.frames {
		f := &c.frames[i]
		if flt.IsEnabled(f.Type, f.Name) {
			cp := f.Clone()
			cp.Index = -1
			out.frames = append(out.frames, cp)
		}
	}
	return out
}

// RemoveDisabledFrames drops the frames not passing the filter.
func (c *FrameCollection) RemoveDisabledFrames(flt FrameFilter) {
	kept := c.frames[:0]
	for _, f := range c.frames {
		if flt.IsEnabled(f.Type, f.Name) {
			kept = append(kept, f)
		}
	}
	c.frames = kept
}

// SetIndexesInvalid detaches all frames.
func (c *FrameCollection) SetIndexesInvalid() {
	for i := range c.frames {
		c.frames[i].Index = -1
	}
}

// Merge fills empty frames with values from frames and adds the frames
// missing here, marked as changed.
func (c *FrameCollection) Merge(frames *FrameCollection) {
	for i := range frames.frames {
		other := &frames.frames[i]
		if found := c.Find(other.ExtendedType); found != nil {
			if found.IsEmpty() && !other.IsEmpty() {
				found.SetValueIfChanged(other.Value())
			}
			continue
		}
		f := other.Clone()
		f.Index = -1
		f.ValueChanged = true
		c.Insert(f)
	}
}

// IsEmptyOrInactive reports whether all standard frames are empty.
func (c *FrameCollection) IsEmptyOrInactive() bool {
	return c.Title() == "" && c.Artist() == "" && c.Album() == "" &&
		c.Comment() == "" && c.Year() <= 0 && c.Track() <= 0 &&
		c.Genre() == ""
}

// MarkChanged sets the changed flag on the frames which are not equal
// to their counterpart in other.
func (c *FrameCollection) MarkChanged(other *FrameCollection) {
	for i := range c.frames {
		f := &c.frames[i]
		var o *Frame
		if f.Index != -1 {
			o = other.FindByIndex(f.Index)
		} else {
			o = other.Find(f.ExtendedType)
		}
		f.ValueChanged = o == nil || !o.Equal(f)
	}
}

// FromSubframes rebuilds the frames embedded in a field list. Each frame
// starts with a Subframe field holding its name, followed by its fields.
// resolve maps the names to types; nil resolves display names with
// ExtendedTypeFromName. Index is the position of the frame in fields.
func FromSubframes(fields []Field, resolve func(name string) ExtendedType) FrameCollection {
	if resolve == nil {
		resolve = ExtendedTypeFromName
	}
	var (
		frames  FrameCollection
		frame   Frame
		started bool
		index   int
	)
	flush := func() {
		if started {
			frame.SetValueFromFieldList()
			frames.Insert(frame)
		}
		frame = Frame{}
		started = false
	}
	for _, fld := range fields {
		if fld.ID == FieldSubframe {
			flush()
			if name := fld.String(); name != "" {
				frame = Frame{ExtendedType: resolve(name), Index: index}
				index++
				started = true
			}
			continue
		}
		if started {
			frame.Fields = append(frame.Fields, fld)
		}
	}
	flush()
	return frames
}
