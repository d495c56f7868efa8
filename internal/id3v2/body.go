package id3v2

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// shape is the layout of a frame body. Every frame ID maps to exactly
// one shape and each shape has one decode and one encode routine.
type shape int

const (
	shapeRaw shape = iota
	shapeText
	shapeUserText
	shapeURL
	shapeUserURL
	shapeComment
	shapeLyrics
	shapePicture
	shapeUFID
	shapeGEOB
	shapePRIV
	shapePOPM
	shapePCNT
	shapeOWNE
	shapeRVA2
	shapeSYLT
	shapeETCO
	shapeCHAP
	shapeCTOC
)

func shapeOf(id string) shape {
	switch id {
	case "TXXX":
		return shapeUserText
	case "WXXX":
		return shapeUserURL
	case "COMM":
		return shapeComment
	case "USLT":
		return shapeLyrics
	case "APIC":
		return shapePicture
	case "UFID":
		return shapeUFID
	case "GEOB":
		return shapeGEOB
	case "PRIV":
		return shapePRIV
	case "POPM":
		return shapePOPM
	case "PCNT":
		return shapePCNT
	case "OWNE":
		return shapeOWNE
	case "RVA2":
		return shapeRVA2
	case "SYLT":
		return shapeSYLT
	case "ETCO":
		return shapeETCO
	case "CHAP":
		return shapeCHAP
	case "CTOC":
		return shapeCTOC
	case "GRP1", "MVIN", "MVNM", "IPLS":
		return shapeText
	}
	if len(id) == 4 && id[0] == 'T' {
		return shapeText
	}
	if len(id) == 4 && id[0] == 'W' {
		return shapeURL
	}
	return shapeRaw
}

// hasTextEncoding reports whether bodies of the shape start with an
// encoding byte.
func (s shape) hasTextEncoding() bool {
	switch s {
	case shapeText, shapeUserText, shapeUserURL, shapeComment, shapeLyrics,
		shapePicture, shapeGEOB, shapeOWNE, shapeSYLT:
		return true
	}
	return false
}

// fieldList looks up the fields of one frame. Fields following the
// first Subframe field belong to embedded frames and are not searched.
type fieldList []types.Field

func (l fieldList) get(id types.FieldID) (types.Field, bool) {
	for _, f := range l {
		if f.ID == types.FieldSubframe {
			break
		}
		if f.ID == id {
			return f, true
		}
	}
	return types.Field{}, false
}

func (l fieldList) str(id types.FieldID) string {
	f, _ := l.get(id)
	return f.String()
}

func (l fieldList) num(id types.FieldID) int {
	f, _ := l.get(id)
	return f.Int()
}

func (l fieldList) data(id types.FieldID) []byte {
	f, _ := l.get(id)
	return f.Bytes()
}

func (l fieldList) list(id types.FieldID) []any {
	f, _ := l.get(id)
	return f.List()
}

// set replaces the value of a field, returning false if the frame has
// no such field.
func (l fieldList) set(id types.FieldID, v any) bool {
	for i, f := range l {
		if f.ID == types.FieldSubframe {
			break
		}
		if f.ID == id {
			l[i].Value = v
			return true
		}
	}
	return false
}

// textEncoding returns the encoding byte to write. Latin-1 is promoted
// to UTF-16 when a text field needs it, and ID3v2.3 only gets Latin-1
// or UTF-16.
func (l fieldList) textEncoding(version byte) byte {
	enc := byte(l.num(types.FieldTextEnc))
	if enc > binary.EncodingUTF8 {
		enc = binary.EncodingISO8859_1
	}
	if enc == binary.EncodingISO8859_1 {
		for _, id := range []types.FieldID{types.FieldText, types.FieldDescription, types.FieldFilename, types.FieldSeller} {
			if binary.NeedsUnicode(l.str(id)) {
				enc = binary.EncodingUTF16
				break
			}
		}
	}
	if version == 3 && enc > binary.EncodingUTF16 {
		enc = binary.EncodingUTF16
	}
	return enc
}

// fieldsFromNative joins the NUL separated values of a text frame into
// a string list. Byte order marks and trailing empty values are dropped.
func fieldsFromNative(s string) string {
	values := strings.Split(s, "\x00")
	for i, v := range values {
		values[i] = strings.TrimPrefix(v, "\ufeff")
	}
	for len(values) > 1 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}
	return types.JoinStringList(values)
}

// nativeText joins a string list for a text frame. ID3v2.4 separates
// values with NUL, ID3v2.3 with a slash. Involved people lists keep the
// NUL separated pairs in both versions. ID3v2.3 genres are written as
// "(N)(M)Text".
func nativeText(id, list string, version byte) string {
	values := types.SplitStringList(list)
	if len(values) == 1 {
		return values[0]
	}
	if version == 4 || id == "IPLS" || id == "TIPL" || id == "TMCL" {
		return strings.Join(values, "\x00")
	}
	if id == "TCON" {
		var numeric strings.Builder
		var text []string
		for _, v := range values {
			if isNumericGenre(v) {
				numeric.WriteString(v)
			} else if v != "" {
				text = append(text, v)
			}
		}
		return numeric.String() + strings.Join(text, "/")
	}
	return strings.Join(values, "/")
}

func isNumericGenre(s string) bool {
	if len(s) < 3 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	_, err := strconv.Atoi(s[1 : len(s)-1])
	return err == nil
}

// normLanguage returns a three character language code.
func normLanguage(s string) string {
	switch {
	case s == "":
		return "XXX"
	case len(s) > 3:
		return s[:3]
	}
	return s + strings.Repeat(" ", 3-len(s))
}

// decodeBody splits a frame body into its fields.
func decodeBody(id string, body []byte, version byte) ([]types.Field, error) {
	br := binary.NewBodyReader(body, id)
	var fields []types.Field
	add := func(fid types.FieldID, v any) {
		fields = append(fields, types.Field{ID: fid, Value: v})
	}

	switch shapeOf(id) {
	case shapeText:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldText, fieldsFromNative(binary.DecodeText(br.Rest(), enc)))
	case shapeUserText:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldDescription, br.Text(enc, "description"))
		add(types.FieldText, fieldsFromNative(binary.DecodeText(br.Rest(), enc)))
	case shapeURL:
		add(types.FieldURL, strings.TrimRight(binary.DecodeLatin1(br.Rest()), "\x00"))
	case shapeUserURL:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldDescription, br.Text(enc, "description"))
		add(types.FieldURL, strings.TrimRight(binary.DecodeLatin1(br.Rest()), "\x00"))
	case shapeComment, shapeLyrics:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldLanguage, br.String(3, "language"))
		add(types.FieldDescription, br.Text(enc, "description"))
		add(types.FieldText, strings.TrimRight(binary.DecodeText(br.Rest(), enc), "\x00"))
	case shapePicture:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldImageFormat, "")
		add(types.FieldMimeType, br.Text(binary.EncodingISO8859_1, "MIME type"))
		add(types.FieldPictureType, int(br.Byte("picture type")))
		add(types.FieldDescription, br.Text(enc, "description"))
		add(types.FieldData, cloneBytes(br.Rest()))
	case shapeUFID:
		add(types.FieldOwner, br.Text(binary.EncodingISO8859_1, "owner"))
		add(types.FieldIdentifier, cloneBytes(br.Rest()))
	case shapeGEOB:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldMimeType, br.Text(binary.EncodingISO8859_1, "MIME type"))
		add(types.FieldFilename, br.Text(enc, "filename"))
		add(types.FieldDescription, br.Text(enc, "description"))
		add(types.FieldData, cloneBytes(br.Rest()))
	case shapePRIV:
		add(types.FieldOwner, br.Text(binary.EncodingISO8859_1, "owner"))
		add(types.FieldData, cloneBytes(br.Rest()))
	case shapePOPM:
		add(types.FieldEmail, br.Text(binary.EncodingISO8859_1, "email"))
		add(types.FieldRating, int(br.Byte("rating")))
		add(types.FieldCounter, decodeCounter(br.Rest()))
	case shapePCNT:
		add(types.FieldCounter, decodeCounter(br.Rest()))
	case shapeOWNE:
		enc := br.Byte("encoding")
		price := br.Text(binary.EncodingISO8859_1, "price")
		date := br.String(8, "date")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldDate, date)
		add(types.FieldPrice, price)
		add(types.FieldSeller, strings.TrimRight(binary.DecodeText(br.Rest(), enc), "\x00"))
	case shapeRVA2:
		add(types.FieldIdentifier, br.Text(binary.EncodingISO8859_1, "identification"))
		add(types.FieldText, decodeVolumes(br))
	case shapeSYLT:
		enc := br.Byte("encoding")
		add(types.FieldTextEnc, int(enc))
		add(types.FieldLanguage, br.String(3, "language"))
		add(types.FieldTimestampFormat, int(br.Byte("timestamp format")))
		add(types.FieldContentType, int(br.Byte("content type")))
		add(types.FieldDescription, br.Text(enc, "description"))
		if br.Err() == nil {
			add(types.FieldData, decodeSyncedText(br.Rest(), enc))
		}
	case shapeETCO:
		add(types.FieldTimestampFormat, int(br.Byte("timestamp format")))
		if br.Err() == nil {
			add(types.FieldData, decodeEventCodes(br.Rest()))
		}
	case shapeCHAP:
		c, err := parseChapter(body, version)
		if err != nil {
			return nil, err
		}
		return c.fields(version), nil
	case shapeCTOC:
		t, err := parseTOC(body, version)
		if err != nil {
			return nil, err
		}
		return t.fields(version), nil
	default:
		add(types.FieldData, cloneBytes(body))
	}

	if err := br.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// encodeBody renders fields as a frame body.
func encodeBody(id string, fields []types.Field, version byte) []byte {
	l := fieldList(fields)
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	w := binary.NewSafeWriter(&buf)
	sh := shapeOf(id)
	enc := byte(0)
	if sh.hasTextEncoding() {
		enc = l.textEncoding(version)
		w.WriteBytes([]byte{enc})
	}

	switch sh {
	case shapeText:
		w.WriteText(nativeText(id, l.str(types.FieldText), version), enc, false)
	case shapeUserText:
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteText(nativeText(id, l.str(types.FieldText), version), enc, false)
	case shapeURL:
		w.WriteBytes(binary.EncodeLatin1(l.str(types.FieldURL)))
	case shapeUserURL:
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteBytes(binary.EncodeLatin1(l.str(types.FieldURL)))
	case shapeComment, shapeLyrics:
		w.WriteString(normLanguage(l.str(types.FieldLanguage)))
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteText(l.str(types.FieldText), enc, false)
	case shapePicture:
		w.WriteText(l.str(types.FieldMimeType), binary.EncodingISO8859_1, true)
		w.WriteBytes([]byte{byte(l.num(types.FieldPictureType))})
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteBytes(l.data(types.FieldData))
	case shapeUFID:
		w.WriteText(l.str(types.FieldOwner), binary.EncodingISO8859_1, true)
		w.WriteBytes(l.data(types.FieldIdentifier))
	case shapeGEOB:
		w.WriteText(l.str(types.FieldMimeType), binary.EncodingISO8859_1, true)
		w.WriteText(l.str(types.FieldFilename), enc, true)
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteBytes(l.data(types.FieldData))
	case shapePRIV:
		w.WriteText(l.str(types.FieldOwner), binary.EncodingISO8859_1, true)
		w.WriteBytes(l.data(types.FieldData))
	case shapePOPM:
		w.WriteText(l.str(types.FieldEmail), binary.EncodingISO8859_1, true)
		w.WriteBytes([]byte{byte(l.num(types.FieldRating))})
		if n := l.num(types.FieldCounter); n > 0 {
			w.WriteBytes(encodeCounter(n))
		}
	case shapePCNT:
		w.WriteBytes(encodeCounter(l.num(types.FieldCounter)))
	case shapeOWNE:
		w.WriteText(l.str(types.FieldPrice), binary.EncodingISO8859_1, true)
		date := l.str(types.FieldDate)
		if len(date) < 8 {
			date += strings.Repeat(" ", 8-len(date))
		}
		w.WriteBytes(binary.EncodeLatin1(date[:8]))
		w.WriteText(l.str(types.FieldSeller), enc, false)
	case shapeRVA2:
		w.WriteText(l.str(types.FieldIdentifier), binary.EncodingISO8859_1, true)
		w.WriteBytes(encodeVolumes(l.str(types.FieldText)))
	case shapeSYLT:
		w.WriteString(normLanguage(l.str(types.FieldLanguage)))
		w.WriteBytes([]byte{byte(l.num(types.FieldTimestampFormat)), byte(l.num(types.FieldContentType))})
		w.WriteText(l.str(types.FieldDescription), enc, true)
		w.WriteBytes(encodeSyncedText(l.list(types.FieldData), enc))
	case shapeETCO:
		w.WriteBytes([]byte{byte(l.num(types.FieldTimestampFormat))})
		w.WriteBytes(encodeEventCodes(l.list(types.FieldData)))
	case shapeCHAP:
		return chapterFromFields(fields, version).render(version)
	case shapeCTOC:
		return tocFromFields(fields, version).render(version)
	default:
		w.WriteBytes(l.data(types.FieldData))
	}
	return buf.Bytes()
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte(nil), b...)
}

// decodeCounter reads a big-endian counter of at least four bytes.
func decodeCounter(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}

func encodeCounter(n int) []byte {
	if n < 0 {
		n = 0
	}
	var out []byte
	for v := uint64(n); v > 0; v >>= 8 {
		out = append([]byte{byte(v)}, out...)
	}
	for len(out) < 4 {
		out = append([]byte{0}, out...)
	}
	return out
}

// decodeSyncedText reads SYLT entries, each a terminated text followed
// by a 32-bit time stamp, into an alternating time, text list. The
// placeholder written for an empty list decodes to an empty list.
func decodeSyncedText(data []byte, enc byte) []any {
	br := binary.NewBodyReader(data, "SYLT")
	list := []any{}
	for br.Remaining() > 0 {
		text := br.Text(enc, "text")
		t := br.Uint32("time stamp")
		if br.Err() != nil {
			break
		}
		list = append(list, int(t), text)
	}
	if len(list) == 2 && list[0] == 0 && list[1] == "" {
		return []any{}
	}
	return list
}

// encodeSyncedText renders an alternating time, text list. An empty list
// gives a placeholder entry with empty text and time 0.
func encodeSyncedText(list []any, enc byte) []byte {
	if len(list) < 2 {
		return make([]byte, binary.TerminatorSize(enc)+4)
	}
	var buf bytes.Buffer
	w := binary.NewSafeWriter(&buf)
	for i := 0; i+1 < len(list); i += 2 {
		t := types.Field{Value: list[i]}.Int()
		text := types.Field{Value: list[i+1]}.String()
		w.WriteText(text, enc, true)
		binary.Write(w, uint32(t))
	}
	return buf.Bytes()
}

// decodeEventCodes reads ETCO entries, each an event type byte followed
// by a 32-bit time stamp, into an alternating time, code list.
func decodeEventCodes(data []byte) []any {
	br := binary.NewBodyReader(data, "ETCO")
	list := []any{}
	for br.Remaining() >= 5 {
		code := br.Byte("event type")
		t := br.Uint32("time stamp")
		list = append(list, int(t), int(code))
	}
	return list
}

func encodeEventCodes(list []any) []byte {
	var buf bytes.Buffer
	w := binary.NewSafeWriter(&buf)
	for i := 0; i+1 < len(list); i += 2 {
		t := types.Field{Value: list[i]}.Int()
		code := types.Field{Value: list[i+1]}.Int()
		w.WriteBytes([]byte{byte(code)})
		binary.Write(w, uint32(t))
	}
	return buf.Bytes()
}

// decodeVolumes formats the RVA2 channels as lines of
// "type adjustment [bits peak]", the peak given in hex.
func decodeVolumes(br *binary.BodyReader) string {
	var lines []string
	for br.Err() == nil && br.Remaining() >= 4 {
		channel := br.Byte("channel type")
		adj := br.Bytes(2, "volume adjustment")
		bits := int(br.Byte("bits representing peak"))
		peak := br.Bytes((bits+7)/8, "peak volume")
		if br.Err() != nil {
			break
		}
		line := strconv.Itoa(int(channel)) + " " + strconv.Itoa(int(int16(uint16(adj[0])<<8|uint16(adj[1]))))
		if bits > 0 {
			line += " " + strconv.Itoa(bits) + " " + hex.EncodeToString(peak)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// encodeVolumes parses the lines written by decodeVolumes. Malformed
// lines are skipped.
func encodeVolumes(text string) []byte {
	var out []byte
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		channel, err := strconv.Atoi(parts[0])
		if err != nil || channel < 0 || channel > 8 {
			continue
		}
		adj, err := strconv.ParseInt(parts[1], 10, 16)
		if err != nil {
			continue
		}
		out = append(out, byte(channel), byte(uint16(adj)>>8), byte(adj))
		bits, peak := 0, []byte(nil)
		if len(parts) > 3 {
			b, err1 := strconv.Atoi(parts[2])
			p, err2 := hex.DecodeString(parts[3])
			if err1 == nil && err2 == nil && b > 0 && b <= 255 && b <= len(p)*8 {
				bits, peak = b, p[:(b+7)/8]
			}
		}
		out = append(out, byte(bits))
		out = append(out, peak...)
	}
	return out
}
