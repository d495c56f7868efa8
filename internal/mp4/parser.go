// Package mp4 maps the iTunes metadata items of MP4 files (M4A, M4B,
// M4V) to frames.
//
// Items are read from moov/udta/meta/ilst with the atom walker of this
// package; their values are kept as github.com/abema/go-mp4 Data boxes.
// Rewriting the file would move the media data and invalidate the chunk
// offset tables, so MP4 tags are edited in memory only.
package mp4

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
)

// loader implements registry.Loader for MP4 files.
type loader struct{}

// Load reads the ilst items and the technical info of the first track.
// A file without ilst atom gets an empty backend.
func (loader) Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error) {
	sr := binary.NewSafeReader(r, size, path)
	tags := &types.Tags{}

	moov, err := findAtom(sr, 0, size, "moov")
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
	}

	info, err := parseTechnicalInfo(sr, moov)
	if err != nil {
		tags.Warnings = append(tags.Warnings, types.Warning{
			Stage:   "technical",
			Message: err.Error(),
			Offset:  moov.Offset,
		})
	}
	tags.Info = info

	backend := New(cfg)
	if ilst, err := findPath(sr, "moov", "udta", "meta", "ilst"); err == nil {
		items, warnings, err := parseIlst(sr, ilst)
		if err == nil && cfg.Strict && len(warnings) > 0 {
			err = &types.CorruptedFileError{Path: path, Reason: warnings[0].Message, Offset: warnings[0].Offset}
		}
		if err != nil {
			if cfg.Strict {
				return nil, err
			}
			tags.Warnings = append(tags.Warnings, types.Warning{Stage: "mp4", Message: err.Error(), Offset: ilst.Offset})
		}
		tags.Warnings = append(tags.Warnings, warnings...)
		backend = fromItems(items, cfg)
	}
	tags.Tag2 = backend

	cfg.Log().WithFields(logrus.Fields{
		"path":  path,
		"items": len(backend.items),
		"cover": len(backend.pictures),
	}).Debug("loaded MP4 items")

	return tags, nil
}

// writer rejects saving; see the package documentation.
type writer struct{}

func (writer) ReadOnly() bool { return true }

func (writer) Save(string, *types.Tags) error {
	return &types.UnsupportedWriteError{
		Format: types.FormatM4A,
		Reason: "rewriting MP4 atoms is not supported",
	}
}

// init registers the MP4 loader.
func init() {
	registry.Register(types.FormatM4A, loader{})
	registry.RegisterWriter(types.FormatM4A, writer{})
}
