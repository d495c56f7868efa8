package mp4

import (
	"fmt"
	"time"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

const containerMP4 = "MP4"

// parseTechnicalInfo extracts duration, codec, sample rate and channels
// from the movie header and the sample description of the first track.
// The bitrate is the average over the file.
func parseTechnicalInfo(sr *binary.SafeReader, moov *Atom) (types.DetailInfo, error) {
	info := types.DetailInfo{Format: containerMP4, Container: containerMP4}

	mvhd, err := findAtom(sr, moov.DataOffset(), moov.End(), "mvhd")
	if err != nil {
		return info, err
	}
	duration, err := parseMvhd(sr, mvhd)
	if err != nil {
		return info, fmt.Errorf("mvhd: %w", err)
	}
	info.Duration = duration
	info.Valid = true

	if seconds := duration.Seconds(); seconds > 0 {
		info.Bitrate = int(float64(sr.Size()) * 8 / seconds / 1000)
	}

	stsd, err := findSampleDescription(sr, moov)
	if err != nil {
		return info, err
	}
	if err := parseStsd(sr, stsd, &info); err != nil {
		return info, fmt.Errorf("stsd: %w", err)
	}
	return info, nil
}

// findSampleDescription follows trak, mdia, minf, stbl to the stsd
// atom of the first track.
func findSampleDescription(sr *binary.SafeReader, moov *Atom) (*Atom, error) {
	atom := moov
	for _, typ := range []string{"trak", "mdia", "minf", "stbl", "stsd"} {
		next, err := findAtom(sr, atom.DataOffset(), atom.End(), typ)
		if err != nil {
			return nil, err
		}
		atom = next
	}
	return atom, nil
}

// parseMvhd parses the movie header atom for duration.
func parseMvhd(sr *binary.SafeReader, mvhdAtom *Atom) (time.Duration, error) {
	offset := mvhdAtom.DataOffset()

	version, err := binary.Read[uint8](sr, offset, "mvhd version")
	if err != nil {
		return 0, err
	}
	// Skip version and flags
	offset += 4

	var timescale uint32
	var duration uint64

	if version == 1 {
		timescale, duration, err = parseMvhdVersion1(sr, offset)
	} else {
		timescale, duration, err = parseMvhdVersion0(sr, offset)
	}
	if err != nil {
		return 0, err
	}

	if timescale == 0 {
		return 0, fmt.Errorf("timescale is zero")
	}
	seconds := float64(duration) / float64(timescale)
	return time.Duration(seconds * float64(time.Second)), nil
}

// parseMvhdVersion0 parses 32-bit mvhd (version 0).
func parseMvhdVersion0(sr *binary.SafeReader, offset int64) (timescale uint32, duration uint64, err error) {
	// Skip creation time (4 bytes) and modification time (4 bytes)
	offset += 8

	timescale, err = binary.Read[uint32](sr, offset, "mvhd timescale")
	if err != nil {
		return 0, 0, err
	}

	duration32, err := binary.Read[uint32](sr, offset+4, "mvhd duration")
	if err != nil {
		return 0, 0, err
	}

	return timescale, uint64(duration32), nil
}

// parseMvhdVersion1 parses 64-bit mvhd (version 1).
func parseMvhdVersion1(sr *binary.SafeReader, offset int64) (timescale uint32, duration uint64, err error) {
	// Skip creation time (8 bytes) and modification time (8 bytes)
	offset += 16

	timescale, err = binary.Read[uint32](sr, offset, "mvhd timescale")
	if err != nil {
		return 0, 0, err
	}

	duration, err = binary.Read[uint64](sr, offset+4, "mvhd duration")
	if err != nil {
		return 0, 0, err
	}

	return timescale, duration, nil
}

// parseStsd parses the first audio sample entry of the sample
// description atom.
//
// stsd: version and flags (4), entry count (4), entries. An audio
// sample entry: size (4), format (4), reserved (6), data reference
// index (2), version (2), revision (2), vendor (4), channels (2),
// sample size (2), compression ID (2), packet size (2), sample rate
// (16.16 fixed point).
func parseStsd(sr *binary.SafeReader, stsdAtom *Atom, info *types.DetailInfo) error {
	offset := stsdAtom.DataOffset() + 4

	numEntries, err := binary.Read[uint32](sr, offset, "stsd entry count")
	if err != nil {
		return err
	}
	if numEntries == 0 {
		return nil
	}
	entry := offset + 4

	formatBytes := make([]byte, 4)
	if err := sr.ReadAt(formatBytes, entry+4, "stsd format"); err != nil {
		return err
	}
	codec := string(formatBytes)

	channels, err := binary.Read[uint16](sr, entry+24, "channels")
	if err != nil {
		return err
	}
	sampleSize, err := binary.Read[uint16](sr, entry+26, "sample size")
	if err != nil {
		return err
	}
	sampleRateFixed, err := binary.Read[uint32](sr, entry+32, "sample rate")
	if err != nil {
		return err
	}

	info.Format = containerMP4 + " " + codecDescription(sr, entry, codec)
	info.Channels = int(channels)
	info.SampleRate = int(sampleRateFixed >> 16)
	info.Lossless = losslessCodecs[codec]
	if info.Lossless {
		info.BitDepth = int(sampleSize)
	}
	return nil
}
