// Package flac loads and saves the Vorbis comments and pictures of FLAC
// files.
package flac

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/go-flac"
	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
	"github.com/simonhull/tagframe/internal/vorbis"
)

// streamInfoSize is the fixed length of a STREAMINFO block.
const streamInfoSize = 34

// loader implements registry.Loader for FLAC files.
type loader struct{}

// Load reads the metadata blocks of a FLAC file. The audio frames are not
// read.
func (loader) Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error) {
	f, err := flac.ParseMetadata(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("invalid FLAC metadata: %v", err),
		}
	}

	tags := &types.Tags{}
	var comment *vorbis.Backend
	var pictures []*flacpicture.MetadataBlockPicture

	for _, block := range f.Meta {
		switch block.Type {
		case flac.StreamInfo:
			info, err := parseStreamInfo(block.Data, size)
			if err != nil {
				tags.Warnings = append(tags.Warnings, types.Warning{
					Stage:   "flac",
					Message: fmt.Sprintf("failed to parse STREAMINFO: %v", err),
				})
				continue
			}
			tags.Info = info

		case flac.VorbisComment:
			if comment != nil {
				tags.Warnings = append(tags.Warnings, types.Warning{
					Stage:   "flac",
					Message: "ignoring additional VORBIS_COMMENT block",
				})
				continue
			}
			b, err := vorbis.FromBlock(block.Data, cfg)
			if err != nil {
				if cfg.Strict {
					return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
				}
				tags.Warnings = append(tags.Warnings, types.Warning{
					Stage:   "flac",
					Message: err.Error(),
				})
				continue
			}
			comment = b

		case flac.Picture:
			pic, err := flacpicture.ParseFromMetaDataBlock(*block)
			if err != nil {
				tags.Warnings = append(tags.Warnings, types.Warning{
					Stage:   "flac",
					Message: fmt.Sprintf("failed to parse PICTURE: %v", err),
				})
				continue
			}
			pictures = append(pictures, pic)
		}
	}

	if comment == nil {
		comment = vorbis.New(cfg)
	}
	comment.SetPictureBlocks(pictures)
	comment.SetDuration(tags.Info.Duration)
	tags.Tag2 = comment

	cfg.Log().WithFields(logrus.Fields{
		"path":     path,
		"pictures": len(pictures),
	}).Debug("loaded FLAC metadata")

	return tags, nil
}

// parseStreamInfo extracts the audio properties of a STREAMINFO block.
func parseStreamInfo(data []byte, fileSize int64) (types.DetailInfo, error) {
	if len(data) != streamInfoSize {
		return types.DetailInfo{}, fmt.Errorf("invalid STREAMINFO size: %d (expected %d)", len(data), streamInfoSize)
	}

	// Bytes 10-17: sample rate (20 bits), channels (3 bits), bits per
	// sample (5 bits), total samples (36 bits).
	packed := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 | uint64(data[13])<<32 |
		uint64(data[14])<<24 | uint64(data[15])<<16 | uint64(data[16])<<8 | uint64(data[17])

	sampleRate := (packed >> 44) & 0xFFFFF
	channels := ((packed >> 41) & 0x7) + 1
	bitsPerSample := ((packed >> 36) & 0x1F) + 1
	totalSamples := packed & 0xFFFFFFFFF

	info := types.DetailInfo{
		Valid:      true,
		Format:     "FLAC",
		Container:  "FLAC",
		Channels:   int(channels),
		SampleRate: int(sampleRate),
		BitDepth:   int(bitsPerSample),
		Lossless:   true,
	}
	if sampleRate > 0 {
		seconds := float64(totalSamples) / float64(sampleRate)
		info.Duration = time.Duration(seconds * float64(time.Second))
		if seconds > 0 {
			info.Bitrate = int(float64(fileSize) * 8 / seconds / 1000)
		}
	}
	return info, nil
}

// writer implements registry.Writer for FLAC files.
type writer struct{}

// Save replaces the VORBIS_COMMENT and PICTURE blocks of the file at
// path. The other blocks keep their order; the new blocks are placed in
// front of the padding.
func (writer) Save(path string, tags *types.Tags) error {
	comment, ok := tags.Tag2.(*vorbis.Backend)
	if !ok {
		return &types.UnsupportedWriteError{Format: types.FormatFLAC, Reason: "tag is not a Vorbis comment"}
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse FLAC file: %w", err)
	}

	kept := slices.DeleteFunc(slices.Clone(f.Meta), func(block *flac.MetaDataBlock) bool {
		return block.Type == flac.VorbisComment || block.Type == flac.Picture
	})

	added := []*flac.MetaDataBlock{}
	if !comment.IsEmpty() {
		block := comment.Marshal()
		added = append(added, &block)
	}
	for _, block := range comment.PictureBlocks() {
		added = append(added, &block)
	}

	at := slices.IndexFunc(kept, func(block *flac.MetaDataBlock) bool {
		return block.Type == flac.Padding
	})
	if at < 0 {
		at = len(kept)
	}
	f.Meta = slices.Insert(kept, at, added...)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save FLAC file: %w", err)
	}
	comment.MarkSaved()
	return nil
}

// init registers the FLAC loader and writer.
func init() {
	registry.Register(types.FormatFLAC, loader{})
	registry.RegisterWriter(types.FormatFLAC, writer{})
}
