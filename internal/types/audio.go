package types

import (
	"fmt"
	"strings"
	"time"
)

// ChannelMode is the stereo mode of MPEG audio.
type ChannelMode int

const (
	ChannelModeNone ChannelMode = iota
	ChannelModeStereo
	ChannelModeJointStereo
)

func (m ChannelMode) String() string {
	switch m {
	case ChannelModeStereo:
		return "Stereo"
	case ChannelModeJointStereo:
		return "Joint Stereo"
	default:
		return ""
	}
}

// DetailInfo holds the technical properties of a file.
//
// The values are only meaningful if Valid is set. They feed the track
// format codes such as %{bitrate} and %{duration}.
type DetailInfo struct {
	Valid       bool
	Format      string // codec description, e.g. "MPEG 1 Layer 3"
	Container   string
	ChannelMode ChannelMode
	Channels    int
	SampleRate  int // Hz
	Bitrate     int // kbps
	BitDepth    int
	Duration    time.Duration
	VBR         bool
	Lossless    bool
}

// String returns a summary like "MPEG 1 Layer 3 128 kbps 44100 Hz Joint Stereo".
func (d DetailInfo) String() string {
	if !d.Valid {
		return ""
	}
	parts := []string{d.Format}
	if d.Bitrate > 0 && d.Bitrate < 16384 {
		br := fmt.Sprintf("%d kbps", d.Bitrate)
		if d.VBR {
			br = "VBR " + br
		}
		parts = append(parts, br)
	}
	if d.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%d Hz", d.SampleRate))
	}
	if d.BitDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d bit", d.BitDepth))
	}
	if mode := d.ChannelMode.String(); mode != "" {
		parts = append(parts, mode)
	} else if ch := channelDescription(d.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if d.Duration > 0 {
		parts = append(parts, FormatTime(d.Seconds()))
	}
	return join(parts, " ")
}

// Seconds returns the duration in whole seconds.
func (d DetailInfo) Seconds() int {
	return int(d.Duration / time.Second)
}

// FormatTime formats seconds as "m:ss", or "h:mm:ss" from one hour on.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%d Channels", channels)
	}
}

// join concatenates strings with a separator, skipping empty strings.
func join(parts []string, sep string) string {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, sep)
}
