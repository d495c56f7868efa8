package replacer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

var shortFrameCodes = map[string]string{
	"s": "title",
	"l": "album",
	"a": "artist",
	"c": "comment",
	"y": "year",
	"t": "track",
	"T": "tracknumber",
	"g": "genre",
}

var yearPrefix = regexp.MustCompile(`^\d{4}-\d{2}`)

// FrameResolver resolves codes to frame values.
//
// Besides the short codes %s, %l, %a, %c, %y, %t, %T and %g any frame
// name can be used in braces. %{name.field} returns a field of the frame
// and %{name.N} zero-pads a number to N digits.
type FrameResolver struct {
	Frames *types.FrameCollection
}

// NewFrameFormatReplacer returns a replacer resolving frame values.
func NewFrameFormatReplacer(frames *types.FrameCollection, str string) *FormatReplacer {
	return New(str, FrameResolver{Frames: frames})
}

func (r FrameResolver) Replacement(code string) (string, bool) {
	var name string
	if len(code) == 1 {
		n, ok := shortFrameCodes[code]
		if !ok {
			return "", false
		}
		name = n
	} else if code != "" {
		name = code
	} else {
		return "", false
	}

	lcName := strings.ToLower(name)
	fieldWidth := -1
	switch lcName {
	case "track":
		fieldWidth = 2
	case "year":
		name = "date"
	case "tracknumber":
		name = "track number"
	}
	if n := len(lcName); n > 2 && lcName[n-2] == '.' && lcName[n-1] >= '0' && lcName[n-1] <= '9' {
		fieldWidth = int(lcName[n-1] - '0')
		lcName = lcName[:n-2]
		name = name[:len(name)-2]
	}
	var fieldName string
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		fieldName = name[dot+1:]
		name = name[:dot]
	}
	if name == "disk" {
		name = "disc number"
	}

	var (
		result string
		found  bool
	)
	if r.Frames != nil {
		if f := r.Frames.FindByName(name, 0); f != nil {
			found = true
			if fieldName == "" {
				result = strings.TrimSpace(f.Value())
			} else if id := types.FieldIDFromName(fieldName); id != types.FieldNoField {
				if v, ok := f.FieldValue(id); ok {
					result = strings.TrimSpace(types.Field{ID: id, Value: v}.String())
				}
			}
			if f.Type == types.TypePicture && result == "" {
				if v, ok := f.FieldValue(types.FieldData); ok {
					if data, _ := v.([]byte); len(data) > 0 {
						// a picture without description is still a picture
						result = "1"
					}
				}
			}
		}
	}

	if lcName == "year" && yearPrefix.MatchString(result) {
		result = result[:4]
	}
	if fieldWidth > 0 {
		if n, ok := types.NumberWithoutTotal(result); ok {
			result = fmt.Sprintf("%0*d", fieldWidth, n)
		}
	}
	return result, found
}
