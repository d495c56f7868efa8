package vorbis

import (
	"encoding/base64"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/go-flac"

	"github.com/simonhull/tagframe/internal/types"
)

// newPictureFields returns the fields of a picture frame.
func newPictureFields(mime string, pictureType int, description string, data []byte) []types.Field {
	return []types.Field{
		{ID: types.FieldTextEnc, Value: int(types.EncodingUTF8)},
		{ID: types.FieldImageFormat, Value: imageFormat(mime)},
		{ID: types.FieldMimeType, Value: mime},
		{ID: types.FieldPictureType, Value: pictureType},
		{ID: types.FieldDescription, Value: description},
		{ID: types.FieldData, Value: data},
	}
}

// defaultPictureFields are used for a picture frame added without
// fields: an empty front cover.
func defaultPictureFields() []types.Field {
	return newPictureFields("image/jpeg", int(flacpicture.PictureTypeFrontCover), "", []byte{})
}

func imageFormat(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	}
	return ""
}

// pictureFields decomposes a FLAC picture block.
func pictureFields(pic *flacpicture.MetadataBlockPicture) []types.Field {
	return newPictureFields(pic.MIME, int(pic.PictureType), pic.Description, pic.ImageData)
}

// pictureOf builds a FLAC picture block from the fields of a frame.
// The image dimensions are filled in for JPEG and PNG data.
func pictureOf(fields []types.Field) *flacpicture.MetadataBlockPicture {
	var (
		mime        = "image/jpeg"
		pictureType = flacpicture.PictureTypeFrontCover
		description string
		data        []byte
	)
	for _, fld := range fields {
		switch fld.ID {
		case types.FieldMimeType:
			mime = fld.String()
		case types.FieldPictureType:
			pictureType = flacpicture.PictureType(fld.Int())
		case types.FieldDescription:
			description = fld.String()
		case types.FieldData:
			data = fld.Bytes()
		}
	}
	if pic, err := flacpicture.NewFromImageData(pictureType, description, data, mime); err == nil {
		return pic
	}
	return &flacpicture.MetadataBlockPicture{
		PictureType: pictureType,
		MIME:        mime,
		Description: description,
		ImageData:   data,
	}
}

// fieldsFromBase64 decodes the value of a picture comment. name selects
// the layout: a METADATA_BLOCK_PICTURE value is a picture block, a
// COVERART value is the bare image. ok is false if the value cannot be
// decoded.
func fieldsFromBase64(name, value string) ([]types.Field, bool) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	if name == CoverArtName {
		return newPictureFields("image/jpeg", int(flacpicture.PictureTypeFrontCover), "", raw), true
	}
	pic, err := flacpicture.ParseFromMetaDataBlock(flac.MetaDataBlock{Type: flac.Picture, Data: raw})
	if err != nil {
		return nil, false
	}
	return pictureFields(pic), true
}

// fieldsToBase64 encodes picture fields for a comment named name.
func fieldsToBase64(name string, fields []types.Field) string {
	if name == CoverArtName {
		for _, fld := range fields {
			if fld.ID == types.FieldData {
				return base64.StdEncoding.EncodeToString(fld.Bytes())
			}
		}
		return ""
	}
	block := pictureOf(fields).Marshal()
	return base64.StdEncoding.EncodeToString(block.Data)
}

// setPictureDescription stores the value of a picture frame in its
// description field.
func setPictureDescription(f *types.Frame) {
	if !f.IsInactive() {
		f.SetFieldValue(types.FieldDescription, f.Value())
	}
}

func mimeTypeOf(fields []types.Field) string {
	for _, fld := range fields {
		if fld.ID == types.FieldMimeType {
			return fld.String()
		}
	}
	return ""
}
