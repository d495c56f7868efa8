package replacer

import (
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/simonhull/tagframe/internal/types"
)

var shortTrackCodes = map[string]string{
	"f": "file",
	"p": "filepath",
	"u": "url",
	"d": "duration",
	"D": "seconds",
	"n": "tracks",
	"e": "extension",
	"O": "tag1",
	"o": "tag2",
	"b": "bitrate",
	"v": "vbr",
	"r": "samplerate",
	"m": "mode",
	"C": "channels",
	"k": "codec",
	"w": "marked",
}

// Track resolves frame codes and codes describing the file.
type Track struct {
	Frames *types.FrameCollection

	// Path is the absolute path of the file.
	Path string

	// TagFormats are the tag format names indexed by tag number,
	// e.g. "ID3v1.1" and "ID3v2.4.0".
	TagFormats [2]string

	Info types.DetailInfo

	// TracksInDir is the number of tracks in the directory of the file.
	TracksInDir int

	ModTime time.Time
	Marked  bool
}

// NewTrackFormatReplacer returns a replacer for the codes of a track.
func NewTrackFormatReplacer(t *Track, str string) *FormatReplacer {
	return New(str, t)
}

func (t *Track) Replacement(code string) (string, bool) {
	if s, ok := (FrameResolver{Frames: t.Frames}).Replacement(code); ok {
		return s, true
	}

	var name string
	if len(code) == 1 {
		n, ok := shortTrackCodes[code]
		if !ok {
			return "", false
		}
		name = n
	} else if code != "" {
		name = code
	} else {
		return "", false
	}

	info := t.Info
	switch name {
	case "file":
		return filepath.Base(t.Path), true
	case "filepath":
		return t.Path, true
	case "modificationdate":
		if t.ModTime.IsZero() {
			return "", true
		}
		return t.ModTime.Format("2006-01-02T15:04:05"), true
	case "url":
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(t.Path)}
		return u.String(), true
	case "dirname":
		return filepath.Base(filepath.Dir(t.Path)), true
	case "duration":
		return types.FormatTime(info.Seconds()), true
	case "seconds":
		return strconv.Itoa(info.Seconds()), true
	case "tracks":
		return strconv.Itoa(t.TracksInDir), true
	case "extension":
		return filepath.Ext(t.Path), true
	case "tag1":
		return t.TagFormats[types.Tag1], true
	case "tag2":
		return t.TagFormats[types.Tag2], true
	case "bitrate":
		return strconv.Itoa(info.Bitrate), true
	case "vbr":
		if info.VBR {
			return "VBR", true
		}
		return "", true
	case "samplerate":
		return strconv.Itoa(info.SampleRate), true
	case "mode":
		return info.ChannelMode.String(), true
	case "channels":
		return strconv.Itoa(info.Channels), true
	case "codec":
		return info.Format, true
	case "marked":
		if t.Marked {
			return "1", true
		}
		return "", true
	}
	return "", false
}
