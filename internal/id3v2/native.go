package id3v2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"slices"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagframe/internal/types"
)

// nativeFrame is one frame of the tag. The frame is one of the
// github.com/bogem/id3v2 frame types, or an UnknownFrame holding the
// body for the layouts that package does not model.
type nativeFrame struct {
	id    string
	frame id3v2.Framer
}

const tagHeaderSize = 10

// readTag reads the tag at the start of r, header included. Data without
// tag header is returned as read, a truncated tag up to the end of r.
func readTag(r io.Reader) ([]byte, error) {
	header := make([]byte, tagHeaderSize)
	n, err := io.ReadFull(r, header)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return header[:n], nil
	}
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(header, []byte("ID3")) {
		return header, nil
	}

	data := make([]byte, tagHeaderSize+int(decodeSynchsafe(header[6:10])))
	copy(data, header)
	n, err = io.ReadFull(r, data[tagHeaderSize:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data[:tagHeaderSize+n], nil
}

// rawChapterID replaces CHAP in the tag handed to the tag parser. Frame
// IDs are upper case, so it cannot clash with a frame of the tag. The
// parser keeps frames with this ID as UnknownFrame bodies, where it
// would keep only the title subframes of a parsed CHAP frame.
const rawChapterID = "chap"

// renameFrames returns a copy of the tag with the ID of all frames
// with ID from changed to to. The frame headers are walked the same
// way the tag parser walks them.
func renameFrames(data []byte, from, to string) []byte {
	if len(data) < tagHeaderSize || !bytes.HasPrefix(data, []byte("ID3")) {
		return data
	}
	version := data[3]
	end := min(len(data), tagHeaderSize+int(decodeSynchsafe(data[6:10])))

	out := slices.Clone(data)
	for pos := tagHeaderSize; pos+10 <= end; {
		size := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		if version == 4 {
			size = int(decodeSynchsafe(data[pos+4 : pos+8]))
		}
		if data[pos] == 0 || size == 0 || pos+10+size > end {
			break
		}
		if string(data[pos:pos+4]) == from {
			copy(out[pos:pos+4], to)
		}
		pos += 10 + size
	}
	return out
}

func encodingKey(e id3v2.Encoding) int {
	switch {
	case e.Equals(id3v2.EncodingUTF16):
		return 1
	case e.Equals(id3v2.EncodingUTF16BE):
		return 2
	case e.Equals(id3v2.EncodingUTF8):
		return 3
	}
	return 0
}

func encodingOf(key byte) id3v2.Encoding {
	switch key {
	case 1:
		return id3v2.EncodingUTF16
	case 2:
		return id3v2.EncodingUTF16BE
	case 3:
		return id3v2.EncodingUTF8
	}
	return id3v2.EncodingISO
}

// bodyOf returns the rendered body of a frame.
func bodyOf(f id3v2.Framer) []byte {
	if u, ok := f.(id3v2.UnknownFrame); ok {
		return u.Body
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// decodeNative decomposes a frame into fields.
func decodeNative(nf nativeFrame, version byte) ([]types.Field, error) {
	switch f := nf.frame.(type) {
	case id3v2.TextFrame:
		if shapeOf(nf.id) == shapeText {
			return []types.Field{
				{ID: types.FieldTextEnc, Value: encodingKey(f.Encoding)},
				{ID: types.FieldText, Value: fieldsFromNative(f.Text)},
			}, nil
		}
	case id3v2.UserDefinedTextFrame:
		return []types.Field{
			{ID: types.FieldTextEnc, Value: encodingKey(f.Encoding)},
			{ID: types.FieldDescription, Value: f.Description},
			{ID: types.FieldText, Value: fieldsFromNative(f.Value)},
		}, nil
	case id3v2.CommentFrame:
		return []types.Field{
			{ID: types.FieldTextEnc, Value: encodingKey(f.Encoding)},
			{ID: types.FieldLanguage, Value: f.Language},
			{ID: types.FieldDescription, Value: f.Description},
			{ID: types.FieldText, Value: f.Text},
		}, nil
	case id3v2.UnsynchronisedLyricsFrame:
		return []types.Field{
			{ID: types.FieldTextEnc, Value: encodingKey(f.Encoding)},
			{ID: types.FieldLanguage, Value: f.Language},
			{ID: types.FieldDescription, Value: f.ContentDescriptor},
			{ID: types.FieldText, Value: f.Lyrics},
		}, nil
	case id3v2.PictureFrame:
		return []types.Field{
			{ID: types.FieldTextEnc, Value: encodingKey(f.Encoding)},
			{ID: types.FieldImageFormat, Value: ""},
			{ID: types.FieldMimeType, Value: f.MimeType},
			{ID: types.FieldPictureType, Value: int(f.PictureType)},
			{ID: types.FieldDescription, Value: f.Description},
			{ID: types.FieldData, Value: cloneBytes(f.Picture)},
		}, nil
	case id3v2.UFIDFrame:
		return []types.Field{
			{ID: types.FieldOwner, Value: f.OwnerIdentifier},
			{ID: types.FieldIdentifier, Value: cloneBytes(f.Identifier)},
		}, nil
	case id3v2.PopularimeterFrame:
		counter := 0
		if f.Counter != nil && f.Counter.IsInt64() {
			counter = int(f.Counter.Int64())
		}
		return []types.Field{
			{ID: types.FieldEmail, Value: f.Email},
			{ID: types.FieldRating, Value: int(f.Rating)},
			{ID: types.FieldCounter, Value: counter},
		}, nil
	}
	return decodeBody(nf.id, bodyOf(nf.frame), version)
}

// encodeNative builds a frame from fields.
func encodeNative(id string, fields []types.Field, version byte) id3v2.Framer {
	l := fieldList(fields)
	enc := encodingOf(l.textEncoding(version))
	switch shapeOf(id) {
	case shapeText:
		return id3v2.TextFrame{
			Encoding: enc,
			Text:     nativeText(id, l.str(types.FieldText), version),
		}
	case shapeUserText:
		return id3v2.UserDefinedTextFrame{
			Encoding:    enc,
			Description: l.str(types.FieldDescription),
			Value:       nativeText(id, l.str(types.FieldText), version),
		}
	case shapeComment:
		return id3v2.CommentFrame{
			Encoding:    enc,
			Language:    normLanguage(l.str(types.FieldLanguage)),
			Description: l.str(types.FieldDescription),
			Text:        l.str(types.FieldText),
		}
	case shapeLyrics:
		return id3v2.UnsynchronisedLyricsFrame{
			Encoding:          enc,
			Language:          normLanguage(l.str(types.FieldLanguage)),
			ContentDescriptor: l.str(types.FieldDescription),
			Lyrics:            l.str(types.FieldText),
		}
	case shapePicture:
		return id3v2.PictureFrame{
			Encoding:    enc,
			MimeType:    l.str(types.FieldMimeType),
			PictureType: byte(l.num(types.FieldPictureType)),
			Description: l.str(types.FieldDescription),
			Picture:     l.data(types.FieldData),
		}
	case shapeUFID:
		return id3v2.UFIDFrame{
			OwnerIdentifier: l.str(types.FieldOwner),
			Identifier:      l.data(types.FieldIdentifier),
		}
	case shapePOPM:
		return id3v2.PopularimeterFrame{
			Email:   l.str(types.FieldEmail),
			Rating:  uint8(l.num(types.FieldRating)),
			Counter: big.NewInt(int64(l.num(types.FieldCounter))),
		}
	}
	return id3v2.UnknownFrame{Body: encodeBody(id, fields, version)}
}
