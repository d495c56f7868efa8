// Package ogg loads the Vorbis comments of Ogg Vorbis and Ogg Opus
// files.
//
// Rewriting an Ogg stream means repaginating it and recomputing page
// checksums; tags of Ogg files can be edited but not saved.
package ogg

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
	"github.com/simonhull/tagframe/internal/vorbis"
)

const (
	codecVorbis  = "vorbis"
	codecOpus    = "opus"
	containerOgg = "Ogg"
)

// maxHeaderPages limits the pages read for the two header packets. Large
// embedded pictures make the comment header span many pages.
const maxHeaderPages = 4096

// loader implements registry.Loader for Ogg files.
type loader struct{}

// Load reads the identification and comment headers of the first
// logical stream and derives the duration from the last granule
// position.
func (loader) Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error) {
	sr := binary.NewSafeReader(r, size, path)
	tags := &types.Tags{}

	packets, err := readHeaderPackets(sr, size, tags)
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
	}

	var payload []byte
	var preSkip uint16
	codec := detectOggCodec(packets[0])
	switch codec {
	case codecVorbis:
		info, err := parseVorbisIdentification(packets[0])
		if err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}
		tags.Info = info
		payload, err = vorbisCommentPayload(packets[1])
		if err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}

	case codecOpus:
		info, skip, err := parseOpusHead(packets[0])
		if err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}
		tags.Info, preSkip = info, skip
		payload, err = opusTagsPayload(packets[1])
		if err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}

	default:
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unknown or unsupported Ogg codec: %q", codec),
		}
	}

	comment, err := vorbis.FromBlock(payload, cfg)
	if err != nil {
		if cfg.Strict {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "vorbis",
			Message: err.Error(),
		})
		comment = vorbis.New(cfg)
	}

	if duration, err := calculateDuration(sr, size, tags.Info.SampleRate, int64(preSkip)); err != nil {
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "technical",
			Message: fmt.Sprintf("failed to calculate duration: %v", err),
		})
	} else {
		tags.Info.Duration = duration
		if tags.Info.Bitrate == 0 {
			tags.Info.Bitrate = estimateBitrate(size, duration)
		}
	}
	comment.SetDuration(tags.Info.Duration)
	tags.Tag2 = comment

	cfg.Log().WithFields(logrus.Fields{
		"path":  path,
		"codec": codec,
	}).Debug("loaded Ogg comments")

	return tags, nil
}

// readHeaderPackets reads pages until the first two packets, the
// identification and comment headers, are complete.
func readHeaderPackets(sr *binary.SafeReader, size int64, tags *types.Tags) ([][]byte, error) {
	var pr packetReader
	offset := int64(0)
	for i := 0; i < maxHeaderPages && offset < size && len(pr.packets) < 2; i++ {
		page, next, err := readPage(sr, offset)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("failed to read first Ogg page: %w", err)
			}
			tags.Warnings = append(tags.Warnings, types.Warning{
				Stage:   "ogg",
				Message: fmt.Sprintf("failed to read Ogg page %d: %v", i, err),
				Offset:  offset,
			})
			break
		}
		pr.add(page)
		offset = next
	}
	if len(pr.packets) < 2 {
		return nil, fmt.Errorf("not enough packets found (need at least 2, got %d)", len(pr.packets))
	}
	return pr.packets, nil
}

// detectOggCodec determines whether this is Vorbis or Opus by examining
// the signature of the first packet.
func detectOggCodec(firstPacket []byte) string {
	if len(firstPacket) >= 8 && string(firstPacket[0:8]) == opusHeadMagic {
		return codecOpus
	}
	if len(firstPacket) >= 7 && firstPacket[0] == vorbisIdentification && string(firstPacket[1:7]) == vorbisMagic {
		return codecVorbis
	}
	return "unknown"
}

// estimateBitrate estimates the average bitrate in kbps from the file
// size.
func estimateBitrate(fileSize int64, duration time.Duration) int {
	seconds := duration.Seconds()
	if seconds <= 0 {
		return 0
	}
	return int(float64(fileSize) * 8 / seconds / 1000)
}

// calculateDuration derives the duration from the granule position of
// the last page, which counts samples. preSkip samples at the start are
// not played.
func calculateDuration(sr *binary.SafeReader, fileSize int64, sampleRate int, preSkip int64) (time.Duration, error) {
	if sampleRate == 0 {
		return 0, fmt.Errorf("sample rate is zero")
	}

	granule, err := findLastGranulePosition(sr, fileSize)
	if err != nil {
		return 0, err
	}
	samples := max(granule-preSkip, 0)

	seconds := float64(samples) / float64(sampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}

// writer rejects saving; see the package documentation.
type writer struct{}

func (writer) ReadOnly() bool { return true }

func (writer) Save(string, *types.Tags) error {
	return &types.UnsupportedWriteError{
		Format: types.FormatOgg,
		Reason: "rewriting Ogg pages is not supported",
	}
}

// init registers the Ogg loader for both Vorbis and Opus streams.
func init() {
	registry.Register(types.FormatOgg, loader{})
	registry.RegisterWriter(types.FormatOgg, writer{})
}
