package id3v2

import (
	"strconv"
	"strings"

	"github.com/simonhull/tagframe/internal/attrdata"
	"github.com/simonhull/tagframe/internal/genres"
	"github.com/simonhull/tagframe/internal/types"
)

// magicDescriptions maps TXXX and COMM descriptions to canonical types.
var magicDescriptions = map[string]types.Type{
	"CATALOGNUMBER":  types.TypeCatalogNumber,
	"RELEASECOUNTRY": types.TypeReleaseCountry,
	"GROUPING":       types.TypeGrouping,
	"SUBTITLE":       types.TypeSubtitle,
}

// descriptionOfType is the inverse of magicDescriptions.
var descriptionOfType = func() map[types.Type]string {
	m := make(map[types.Type]string, len(magicDescriptions))
	for desc, t := range magicDescriptions {
		m[t] = desc
	}
	return m
}()

// valueOf returns the value shown for a frame with the given fields.
func valueOf(id string, fields []types.Field) string {
	l := fieldList(fields)
	switch shapeOf(id) {
	case shapeText:
		if id == "TCON" {
			return genreValue(l.str(types.FieldText))
		}
		return l.str(types.FieldText)
	case shapeUserText, shapeComment, shapeLyrics, shapeRVA2:
		return l.str(types.FieldText)
	case shapeURL, shapeUserURL:
		return l.str(types.FieldURL)
	case shapePicture, shapeGEOB, shapeSYLT:
		return l.str(types.FieldDescription)
	case shapeUFID:
		return ufidValue(l.data(types.FieldIdentifier))
	case shapePRIV:
		if s, ok := attrdata.ForName(l.str(types.FieldOwner)).String(l.data(types.FieldData)); ok {
			return s
		}
	case shapePOPM:
		return strconv.Itoa(l.num(types.FieldRating))
	case shapePCNT:
		return strconv.Itoa(l.num(types.FieldCounter))
	case shapeOWNE:
		return l.str(types.FieldSeller)
	case shapeCHAP, shapeCTOC:
		return l.str(types.FieldIdentifier)
	}
	return ""
}

// setValue stores value in the field which carries the value of the
// frame. Values which cannot be converted leave the fields unchanged.
func setValue(id string, l fieldList, value string) {
	switch shapeOf(id) {
	case shapeText, shapeUserText, shapeComment, shapeLyrics, shapeRVA2:
		l.set(types.FieldText, value)
	case shapeURL, shapeUserURL:
		l.set(types.FieldURL, value)
	case shapePicture, shapeGEOB, shapeSYLT:
		l.set(types.FieldDescription, value)
	case shapeUFID:
		if attrdata.IsHexString(value, 'Z', "-") {
			l.set(types.FieldIdentifier, []byte(value+"\x00"))
		}
	case shapePRIV:
		if data, ok := attrdata.ForName(l.str(types.FieldOwner)).Bytes(value); ok {
			l.set(types.FieldData, data)
		}
	case shapePOPM:
		if n, err := strconv.Atoi(value); err == nil {
			l.set(types.FieldRating, n)
		}
	case shapePCNT:
		if n, err := strconv.Atoi(value); err == nil {
			l.set(types.FieldCounter, n)
		}
	case shapeOWNE:
		l.set(types.FieldSeller, value)
	case shapeCHAP, shapeCTOC:
		l.set(types.FieldIdentifier, value)
	}
}

// applyFields copies the given fields into the fields of a native
// frame. Fields the native frame does not have are ignored, embedded
// frames are replaced as a whole.
func applyFields(l fieldList, given []types.Field) fieldList {
	out := append(fieldList(nil), l...)
	for i, f := range given {
		if f.ID == types.FieldSubframe {
			head := len(out)
			for j, o := range out {
				if o.ID == types.FieldSubframe {
					head = j
					break
				}
			}
			return append(out[:head], given[i:]...)
		}
		switch f.ID {
		case types.FieldLanguage:
			f.Value = normLanguage(f.String())
		case types.FieldDate:
			if s := f.String(); len(s) < 8 {
				f.Value = s + strings.Repeat(" ", 8-len(s))
			}
		}
		out.set(f.ID, f.Value)
	}
	return out
}

// ufidValue returns the identifier as text if it is a hex string
// followed by an optional NUL.
func ufidValue(id []byte) string {
	s := strings.TrimSuffix(string(id), "\x00")
	if attrdata.IsHexString(s, 'Z', "-") {
		return s
	}
	return ""
}

// genreValue converts the genres of a TCON frame to names. ID3v2.3
// references like "(17)(20)Text" become separate list elements.
func genreValue(text string) string {
	var names []string
	for _, v := range types.SplitStringList(text) {
		names = append(names, genreNames(v)...)
	}
	return types.JoinStringList(names)
}

func genreNames(s string) []string {
	var out []string
	for len(s) > 1 && s[0] == '(' && s[1] != '(' {
		cp := strings.IndexByte(s, ')')
		if cp < 0 {
			break
		}
		var name string
		switch code := s[1:cp]; code {
		case "RX":
			name = "Remix"
		case "CR":
			name = "Cover"
		default:
			n, err := strconv.Atoi(code)
			if err != nil {
				return append(out, s)
			}
			name = genres.Name(n)
		}
		if name != "" {
			out = append(out, name)
		}
		s = s[cp+1:]
	}
	// "((" escapes a text starting with a parenthesis
	if strings.HasPrefix(s, "((") {
		s = s[1:]
	}
	if s != "" && (len(out) == 0 || out[len(out)-1] != s) {
		out = append(out, genres.NameString(s))
	}
	if out == nil {
		return []string{""}
	}
	return out
}

// genreNumberString replaces known genre names in a list by their
// numbers, "(N)" if parentheses is set.
func genreNumberString(value string, parentheses bool) string {
	values := types.SplitStringList(value)
	for i, v := range values {
		values[i] = genres.NumberString(v, parentheses)
	}
	return types.JoinStringList(values)
}
