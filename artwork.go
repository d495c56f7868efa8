package tagframe

import (
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

// Picture is an alias to types.Picture.
type Picture = types.Picture

// PictureType is an alias to types.PictureType.
type PictureType = types.PictureType

// Re-export all picture type constants.
const (
	PictureOther             = types.PictureOther
	PictureIcon              = types.PictureIcon
	PictureOtherIcon         = types.PictureOtherIcon
	PictureFrontCover        = types.PictureFrontCover
	PictureBackCover         = types.PictureBackCover
	PictureLeaflet           = types.PictureLeaflet
	PictureMedia             = types.PictureMedia
	PictureLeadArtist        = types.PictureLeadArtist
	PictureArtist            = types.PictureArtist
	PictureConductor         = types.PictureConductor
	PictureBand              = types.PictureBand
	PictureComposer          = types.PictureComposer
	PictureLyricist          = types.PictureLyricist
	PictureRecordingLocation = types.PictureRecordingLocation
	PictureDuringRecording   = types.PictureDuringRecording
	PictureDuringPerformance = types.PictureDuringPerformance
	PictureVideoCapture      = types.PictureVideoCapture
	PictureBrightFish        = types.PictureBrightFish
	PictureIllustration      = types.PictureIllustration
	PictureBandLogotype      = types.PictureBandLogotype
	PicturePublisherLogotype = types.PicturePublisherLogotype
)

// Pictures returns the pictures of the main tag in frame order.
//
// Picture frames carry their image in fields; frames whose fields
// cannot be decoded are skipped.
//
// Example:
//
//	for _, p := range file.Pictures() {
//		os.WriteFile("cover"+ImageExtension(p.MIMEType), p.Data, 0o644)
//	}
func (f *File) Pictures() []Picture {
	frames := f.Frames(Tag2)
	var pics []Picture
	for frame := range frames.All() {
		if frame.Type != TypePicture || len(frame.Fields) == 0 {
			continue
		}
		p := types.PictureFromFields(frame.Fields)
		if len(p.Data) == 0 {
			continue
		}
		pics = append(pics, p)
	}
	return pics
}

// ImageExtension returns the file extension for an image MIME type,
// ".jpg" if it is unknown.
func ImageExtension(mime string) string {
	if format := types.ImageFormat(mime); format != "" {
		return "." + strings.ToLower(format)
	}
	return ".jpg"
}

// DetectMIMEType sniffs the MIME type of image data, "" if unknown.
func DetectMIMEType(data []byte) string {
	return types.DetectMIMEType(data)
}
