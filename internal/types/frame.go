package types

import (
	"reflect"
	"strconv"
	"strings"
)

// StringListSeparator separates the values of multi-value frames.
// A separator preceded by a backslash is part of the value.
const StringListSeparator = '|'

// Frame is one generalized tag entry.
//
// The value has three states: inactive (absent from the tag), empty and
// present. The zero Frame is inactive; use NewFrame to create a frame
// with a value.
type Frame struct {
	ExtendedType

	// Index is the position in the native tag, -1 when detached.
	Index int

	// Fields is the decomposed native representation.
	Fields []Field

	// ValueChanged is set when the value was edited as a whole, so
	// write-back has to regenerate the fields from it.
	ValueChanged bool

	// Marked flags frames which failed a validation.
	Marked bool

	value    string
	hasValue bool
}

// NewFrame creates a detached frame with a value.
func NewFrame(t Type, value, name string) Frame {
	return Frame{ExtendedType: ExtendedType{Type: t, Name: name}, Index: -1, value: value, hasValue: true}
}

// NewInactiveFrame creates a detached frame without value.
func NewInactiveFrame(et ExtendedType) Frame {
	return Frame{ExtendedType: et, Index: -1}
}

// Value returns the value, "" when inactive.
func (f *Frame) Value() string { return f.value }

// SetValue sets the value and activates the frame.
func (f *Frame) SetValue(v string) {
	f.value = v
	f.hasValue = true
}

// SetInactive drops the value.
func (f *Frame) SetInactive() {
	f.value = ""
	f.hasValue = false
}

// IsInactive reports whether the frame has no value.
func (f *Frame) IsInactive() bool { return !f.hasValue }

// IsEmpty reports whether the value is empty. An inactive frame is empty.
func (f *Frame) IsEmpty() bool { return f.value == "" }

// SetValueIfChanged sets the value and the changed flag if the value
// differs. An empty value does not activate an inactive frame.
func (f *Frame) SetValueIfChanged(v string) {
	if v != f.value {
		f.SetValue(v)
		f.ValueChanged = true
	}
}

// FieldValue returns the value of the first field with the given ID.
func (f *Frame) FieldValue(id FieldID) (any, bool) {
	for _, fld := range f.Fields {
		if fld.ID == id {
			return fld.Value, true
		}
	}
	return nil, false
}

// SetFieldValue sets the first field with the given ID.
func (f *Frame) SetFieldValue(id FieldID, v any) bool {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			f.Fields[i].Value = v
			return true
		}
	}
	return false
}

// SetValueFromFieldList derives the value from the fields.
//
// A Text field has priority and ends the scan. Otherwise the first
// Description or URL field provides the value.
func (f *Frame) SetValueFromFieldList() {
	if len(f.Fields) == 0 {
		return
	}
	fallback := false
	for _, fld := range f.Fields {
		switch fld.ID {
		case FieldText:
			f.SetValue(fld.String())
			return
		case FieldDescription, FieldURL:
			if !fallback {
				f.SetValue(fld.String())
				fallback = true
			}
		}
	}
}

// SetFieldListFromValue writes the value back into the fields.
//
// The target is the first Text field, or else the last Description or
// URL field. A Rating field before the first Text field also takes the
// value when it is a number; the scan stops there.
func (f *Frame) SetFieldListFromValue() {
	if len(f.Fields) == 0 {
		return
	}
	target := -1
scan:
	for i, fld := range f.Fields {
		switch fld.ID {
		case FieldText:
			target = i
			break scan
		case FieldDescription, FieldURL:
			target = i
		case FieldRating:
			if n, err := strconv.Atoi(f.value); err == nil {
				f.Fields[i].Value = n
				break scan
			}
		}
	}
	if target >= 0 {
		f.Fields[target].Value = f.value
	}
}

// NumberWithoutTotal parses "5/12" as 5.
func NumberWithoutTotal(s string) (int, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// ValueAsNumber returns the number before an optional total,
// -1 if inactive and 0 if empty or not a number.
func (f *Frame) ValueAsNumber() int {
	if f.IsInactive() {
		return -1
	}
	n, _ := NumberWithoutTotal(f.value)
	return n
}

// SetValueAsNumber sets a number, -1 makes the frame inactive and 0 empty.
func (f *Frame) SetValueAsNumber(n int) {
	switch n {
	case -1:
		f.SetInactive()
	case 0:
		f.SetValue("")
	default:
		f.SetValue(strconv.Itoa(n))
	}
}

// Equal reports whether type, value and fields are equal.
func (f *Frame) Equal(o *Frame) bool {
	return f.ExtendedType.Compare(o.ExtendedType) == 0 &&
		f.value == o.value && f.hasValue == o.hasValue &&
		fieldsEqual(f.Fields, o.Fields)
}

// FuzzyEqual compares track and disc numbers without totals and ignores
// the fields if one of the frames has none.
func (f *Frame) FuzzyEqual(o *Frame) bool {
	if f.Type == TypeTrack || f.Type == TypeDisc {
		return f.ValueAsNumber() == o.ValueAsNumber()
	}
	return f.value == o.value &&
		(len(f.Fields) == 0 || len(o.Fields) == 0 || fieldsEqual(f.Fields, o.Fields))
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || !reflect.DeepEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the field list.
func (f *Frame) Clone() Frame {
	c := *f
	if f.Fields != nil {
		fields := make([]Field, len(f.Fields))
		copy(fields, f.Fields)
		for i, fld := range fields {
			switch v := fld.Value.(type) {
			case []byte:
				fields[i].Value = append([]byte(nil), v...)
			case []any:
				fields[i].Value = append([]any(nil), v...)
			}
		}
		c.Fields = fields
	}
	return c
}

// SplitStringList splits a multi-value string at unescaped separators.
func SplitStringList(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == StringListSeparator {
			cur.WriteByte(StringListSeparator)
			i++
			continue
		}
		if c == StringListSeparator {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(out, cur.String())
}

// JoinStringList joins values, escaping separators inside them.
func JoinStringList(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = strings.ReplaceAll(v, string(StringListSeparator), `\`+string(StringListSeparator))
	}
	return strings.Join(escaped, string(StringListSeparator))
}
