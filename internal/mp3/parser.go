// Package mp3 loads and saves the ID3v1 and ID3v2 tags of MPEG audio
// files.
package mp3

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	binutil "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/id3v1"
	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
)

// loader implements registry.Loader for MPEG audio files.
type loader struct{}

// Load reads the ID3v2 tag at the start and the ID3v1 tag at the end of
// the file and the properties of the first MPEG frame.
func (loader) Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error) {
	sr := binutil.NewSafeReader(r, size, path)
	tags := &types.Tags{}

	var tagSize int64
	header, found, err := parseID3v2Header(sr)
	switch {
	case err != nil:
		if cfg.Strict {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
		}
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "id3v2",
			Message: err.Error(),
		})
		tags.Tag2 = id3v2.New(cfg)
	case found:
		tagSize = header.tagSize()
		v2, err := id3v2.Read(io.NewSectionReader(r, 0, size), cfg)
		if err != nil {
			if cfg.Strict {
				return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
			}
			tags.Warnings = append(tags.Warnings, types.Warning{
				Stage:   "id3v2",
				Message: "tag ignored: " + err.Error(),
			})
			v2 = id3v2.New(cfg)
		}
		tags.Warnings = append(tags.Warnings, v2.Warnings()...)
		tags.Tag2 = v2
	default:
		tags.Tag2 = id3v2.New(cfg)
	}

	v1, err := id3v1.Read(r, size, path)
	if err != nil {
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "id3v1",
			Message: err.Error(),
			Offset:  size - id3v1.Size,
		})
	}
	tags.Tag1 = id3v1.NewBackend(v1, cfg)

	audioEnd := size
	if v1 != nil {
		audioEnd -= id3v1.Size
	}
	info, err := parseTechnicalInfo(sr, tagSize, audioEnd)
	if err != nil {
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "technical",
			Message: "failed to parse MPEG audio properties: " + err.Error(),
			Offset:  tagSize,
		})
	}
	tags.Info = info

	cfg.Log().WithFields(logrus.Fields{
		"path":  path,
		"id3v1": v1 != nil,
		"id3v2": found,
	}).Debug("loaded MPEG tags")

	return tags, nil
}

// writer implements registry.Writer for MPEG audio files.
type writer struct{}

// Save writes the changed tags. The ID3v2 tag is written first because
// rewriting it copies the rest of the file, including an ID3v1 tag.
func (writer) Save(path string, tags *types.Tags) error {
	for _, n := range []types.TagNumber{types.Tag2, types.Tag1} {
		b := tags.Backend(n)
		if b == nil {
			continue
		}
		saver, ok := b.(types.Saver)
		if !ok {
			return &types.UnsupportedWriteError{
				Format: types.FormatMP3,
				Reason: fmt.Sprintf("%s cannot be saved", n),
			}
		}
		if err := saver.Save(path); err != nil {
			return fmt.Errorf("save %s: %w", n, err)
		}
	}
	return nil
}

// init registers the MPEG loader and writer.
func init() {
	registry.Register(types.FormatMP3, loader{})
	registry.RegisterWriter(types.FormatMP3, writer{})
}
