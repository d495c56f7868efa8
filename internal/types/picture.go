package types

import (
	"bytes"
	"fmt"
	"strings"
)

// PictureType is the purpose of an embedded picture.
//
// Types are based on ID3v2 APIC frame picture types and FLAC picture
// types, which ASF WM/Picture shares.
// See: https://id3.org/id3v2.4.0-frames (APIC frame)
type PictureType int

// Picture types.
const (
	PictureOther              PictureType = iota // Other
	PictureIcon                                  // File icon (32x32 PNG)
	PictureOtherIcon                             // Other file icon
	PictureFrontCover                            // Front cover
	PictureBackCover                             // Back cover
	PictureLeaflet                               // Leaflet page
	PictureMedia                                 // Media (CD/vinyl label)
	PictureLeadArtist                            // Lead artist/performer/soloist
	PictureArtist                                // Artist/performer
	PictureConductor                             // Conductor
	PictureBand                                  // Band/orchestra
	PictureComposer                              // Composer
	PictureLyricist                              // Lyricist/text writer
	PictureRecordingLocation                     // Recording location
	PictureDuringRecording                       // During recording
	PictureDuringPerformance                     // During performance
	PictureVideoCapture                          // Movie/video screen capture
	PictureBrightFish                            // A bright colored fish
	PictureIllustration                          // Illustration
	PictureBandLogotype                          // Band/artist logotype
	PicturePublisherLogotype                     // Publisher/studio logotype
)

var pictureTypeNames = [...]string{
	"Other", "File icon", "Other file icon", "Front cover", "Back cover",
	"Leaflet page", "Media", "Lead artist/performer/soloist",
	"Artist/performer", "Conductor", "Band/orchestra", "Composer",
	"Lyricist/text writer", "Recording location", "During recording",
	"During performance", "Movie/video screen capture",
	"A bright colored fish", "Illustration", "Band/artist logotype",
	"Publisher/studio logotype",
}

func (t PictureType) String() string {
	if t < 0 || int(t) >= len(pictureTypeNames) {
		return pictureTypeNames[0]
	}
	return pictureTypeNames[t]
}

// Picture is the decomposed field list of a picture frame.
type Picture struct {
	Type        PictureType
	MIMEType    string // "image/jpeg", "image/png", "image/gif"
	Description string
	Data        []byte
}

// PictureFromFields collects the picture fields of a frame. Missing
// fields keep their zero value.
func PictureFromFields(fields []Field) Picture {
	var p Picture
	for _, fld := range fields {
		switch fld.ID {
		case FieldPictureType:
			p.Type = PictureType(fld.Int())
		case FieldMimeType:
			p.MIMEType = fld.String()
		case FieldDescription:
			p.Description = fld.String()
		case FieldData:
			p.Data = fld.Bytes()
		}
	}
	return p
}

// Fields returns the field list of a picture frame in the order the
// ID3v2 APIC frame uses.
func (p Picture) Fields(enc TextEncoding) []Field {
	data := p.Data
	if data == nil {
		data = []byte{}
	}
	return []Field{
		{ID: FieldTextEnc, Value: int(enc)},
		{ID: FieldImageFormat, Value: ImageFormat(p.MIMEType)},
		{ID: FieldMimeType, Value: p.MIMEType},
		{ID: FieldPictureType, Value: int(p.Type)},
		{ID: FieldDescription, Value: p.Description},
		{ID: FieldData, Value: data},
	}
}

// Frame returns a detached picture frame whose value is the
// description.
func (p Picture) Frame(name string, enc TextEncoding) Frame {
	f := NewFrame(TypePicture, p.Description, name)
	f.Fields = p.Fields(enc)
	return f
}

// String returns a human-readable description of the picture.
//
// Example output: "Front cover (JPEG, 245KB)"
func (p Picture) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Type, mimeToFormat(p.MIMEType), formatSize(len(p.Data)))
}

// DefaultPicture is used for picture frames added without fields: an
// empty JPEG front cover.
func DefaultPicture() Picture {
	return Picture{Type: PictureFrontCover, MIMEType: "image/jpeg", Data: []byte{}}
}

// ImageFormat returns the short image format of the ID3v2.2 PIC frame
// for a MIME type, "" if unknown.
func ImageFormat(mime string) string {
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

// DetectMIMEType sniffs the MIME type of image data, "" if unknown.
func DetectMIMEType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "image/gif"
	case bytes.HasPrefix(data, []byte("BM")):
		return "image/bmp"
	}
	return ""
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	case "image/tiff":
		return "TIFF"
	case "image/webp":
		return "WebP"
	default:
		return "Image"
	}
}
