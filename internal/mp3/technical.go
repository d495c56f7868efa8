package mp3

import (
	"encoding/binary"
	"fmt"
	"time"

	binutil "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// maxSyncSearch limits how far behind the tag the first frame is
// searched.
const maxSyncSearch = 64 * 1024

// MPEG version indexes as stored in the frame header.
const (
	mpeg25 = 0
	mpeg2  = 2
	mpeg1  = 3
)

// Bitrate tables in kbps, indexed by [layer-1][index].
var (
	bitratesV1 = [3][16]int{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	}
	bitratesV2 = [3][16]int{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	}
)

// Sample rates in Hz, indexed by [version][index].
var sampleRates = [4][3]int{
	mpeg25: {11025, 12000, 8000},
	mpeg2:  {22050, 24000, 16000},
	mpeg1:  {44100, 48000, 32000},
}

// frameHeader is a decoded MPEG audio frame header.
type frameHeader struct {
	version     uint32
	layer       int
	bitrate     int // kbps
	sampleRate  int
	channelMode uint32
}

func (h frameHeader) mono() bool { return h.channelMode == 3 }

// samplesPerFrame returns the number of samples coded in one frame.
func (h frameHeader) samplesPerFrame() int {
	switch {
	case h.layer == 1:
		return 384
	case h.layer == 3 && h.version != mpeg1:
		return 576
	default:
		return 1152
	}
}

// sideInfoSize is the size of the Layer III side information, which
// precedes a Xing header.
func (h frameHeader) sideInfoSize() int64 {
	if h.version == mpeg1 {
		if h.mono() {
			return 17
		}
		return 32
	}
	if h.mono() {
		return 9
	}
	return 17
}

// format describes the codec, e.g. "MPEG 1 Layer 3".
func (h frameHeader) format() string {
	version := "1"
	switch h.version {
	case mpeg2:
		version = "2"
	case mpeg25:
		version = "2.5"
	}
	return fmt.Sprintf("MPEG %s Layer %d", version, h.layer)
}

func (h frameHeader) mode() types.ChannelMode {
	switch h.channelMode {
	case 0:
		return types.ChannelModeStereo
	case 1:
		return types.ChannelModeJointStereo
	default:
		return types.ChannelModeNone
	}
}

// parseTechnicalInfo finds the first MPEG frame behind the tag and
// derives the audio properties from it and an optional Xing or VBRI
// header.
func parseTechnicalInfo(sr *binutil.SafeReader, tagSize int64, audioEnd int64) (types.DetailInfo, error) {
	limit := min(audioEnd-4, tagSize+maxSyncSearch)
	for offset := tagSize; offset < limit; offset++ {
		header, err := findMP3FrameAt(sr, offset)
		if err != nil {
			continue
		}
		h := parseMP3FrameHeader(header)
		if h.bitrate == 0 || h.sampleRate == 0 {
			continue
		}

		info := types.DetailInfo{
			Valid:       true,
			Format:      h.format(),
			Container:   "MPEG",
			ChannelMode: h.mode(),
			Channels:    2,
			SampleRate:  h.sampleRate,
			Bitrate:     h.bitrate,
		}
		if h.mono() {
			info.Channels = 1
		}

		audioSize := audioEnd - offset
		if frames, ok := parseVBRHeader(sr, offset, h); ok {
			info.VBR = true
			info.Duration = durationFromFrames(frames, h)
			if secs := info.Duration.Seconds(); secs > 0 {
				info.Bitrate = int(float64(audioSize) * 8 / secs / 1000)
			}
		} else {
			info.Duration = estimateCBRDuration(h.bitrate, audioSize)
		}
		return info, nil
	}

	return types.DetailInfo{}, fmt.Errorf("no valid MPEG frame found")
}

// findMP3FrameAt attempts to read an MPEG audio frame header at the given
// offset.
func findMP3FrameAt(sr *binutil.SafeReader, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, offset, "MPEG frame header"); err != nil {
		return 0, err
	}

	header := binary.BigEndian.Uint32(buf)

	// Frame sync: 11 bits set
	if header&0xFFE00000 != 0xFFE00000 {
		return 0, fmt.Errorf("invalid frame sync")
	}
	if (header>>19)&0x3 == 1 {
		return 0, fmt.Errorf("reserved MPEG version")
	}
	if (header>>17)&0x3 == 0 {
		return 0, fmt.Errorf("reserved layer")
	}
	if (header>>12)&0xF == 0xF || (header>>10)&0x3 == 3 {
		return 0, fmt.Errorf("invalid bitrate or sample rate index")
	}

	return header, nil
}

// parseMP3FrameHeader decodes a validated frame header.
func parseMP3FrameHeader(header uint32) frameHeader {
	h := frameHeader{
		version:     (header >> 19) & 0x3,
		layer:       4 - int((header>>17)&0x3),
		channelMode: (header >> 6) & 0x3,
	}
	bitrateIdx := (header >> 12) & 0xF
	if h.version == mpeg1 {
		h.bitrate = bitratesV1[h.layer-1][bitrateIdx]
	} else {
		h.bitrate = bitratesV2[h.layer-1][bitrateIdx]
	}
	h.sampleRate = sampleRates[h.version][(header>>10)&0x3]
	return h
}

// parseVBRHeader returns the number of frames of a Xing/Info or VBRI
// header in the frame at frameOffset.
func parseVBRHeader(sr *binutil.SafeReader, frameOffset int64, h frameHeader) (uint32, bool) {
	buf := make([]byte, 12)
	if err := sr.ReadAt(buf, frameOffset+4+h.sideInfoSize(), "Xing header"); err == nil {
		tag := string(buf[0:4])
		if tag == "Xing" || tag == "Info" {
			flags := binary.BigEndian.Uint32(buf[4:8])
			// Frames field is present if bit 0 is set
			if flags&0x0001 != 0 {
				return binary.BigEndian.Uint32(buf[8:12]), tag == "Xing"
			}
			return 0, false
		}
	}

	// VBRI is always 32 bytes behind the frame header
	vbri := make([]byte, 18)
	if err := sr.ReadAt(vbri, frameOffset+36, "VBRI header"); err == nil && string(vbri[0:4]) == "VBRI" {
		return binary.BigEndian.Uint32(vbri[14:18]), true
	}
	return 0, false
}

// durationFromFrames calculates the duration from the number of frames.
func durationFromFrames(frames uint32, h frameHeader) time.Duration {
	totalSamples := uint64(frames) * uint64(h.samplesPerFrame())
	seconds := float64(totalSamples) / float64(h.sampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// estimateCBRDuration estimates the duration of constant bitrate audio.
func estimateCBRDuration(bitrate int, audioSize int64) time.Duration {
	if bitrate == 0 || audioSize <= 0 {
		return 0
	}
	seconds := float64(audioSize*8) / float64(bitrate*1000)
	return time.Duration(seconds * float64(time.Second))
}
