package types

import (
	"bytes"
	"io"

	"github.com/dhowden/tag"

	"github.com/simonhull/tagframe/internal/binary"
)

// Format represents the detected container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MPEG audio with ID3 tags.
	FormatMP3
	// FormatFLAC represents FLAC with Vorbis comments.
	FormatFLAC
	// FormatM4A represents MP4 audio with an ilst atom.
	FormatM4A
	// FormatOgg represents Ogg Vorbis and Opus.
	FormatOgg
	// FormatWMA represents ASF/WMA files.
	FormatWMA
)

var formatNames = [...]string{"Unknown", "MP3", "FLAC", "M4A", "Ogg", "WMA"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[0]
	}
	return formatNames[f]
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP3:
		return []string{".mp3"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatM4A:
		return []string{".m4a", ".m4b", ".mp4", ".m4p"}
	case FormatOgg:
		return []string{".ogg", ".oga", ".opus"}
	case FormatWMA:
		return []string{".wma", ".asf"}
	default:
		return nil
	}
}

// asfHeaderGUID starts every ASF file.
var asfHeaderGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

// DetectFormat determines the container format of a file.
//
// ASF is recognized by its header GUID, the other formats are identified
// with github.com/dhowden/tag. MPEG audio without any tag is recognized
// by its frame sync.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	if size >= int64(len(asfHeaderGUID)) {
		guid := make([]byte, len(asfHeaderGUID))
		if err := sr.ReadAt(guid, 0, "ASF header GUID"); err == nil && bytes.Equal(guid, asfHeaderGUID) {
			return FormatWMA, nil
		}
	}

	if tagFormat, fileType, err := tag.Identify(io.NewSectionReader(r, 0, size)); err == nil {
		switch {
		case fileType == tag.MP3:
			return FormatMP3, nil
		case fileType == tag.FLAC:
			return FormatFLAC, nil
		case fileType == tag.OGG:
			return FormatOgg, nil
		case tagFormat == tag.MP4:
			return FormatM4A, nil
		}
	}

	magic := make([]byte, 2)
	if err := sr.ReadAt(magic, 0, "frame sync"); err == nil && magic[0] == 0xFF && magic[1]&0xE0 == 0xE0 {
		return FormatMP3, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
