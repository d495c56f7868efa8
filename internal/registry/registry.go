// Package registry manages the format-specific loaders and writers.
package registry

import (
	"io"
	"maps"
	"slices"

	"github.com/simonhull/tagframe/internal/types"
)

// Loader reads the tags of one container format.
type Loader interface {
	// Load reads the tags and the technical details of a file. Problems
	// which do not prevent reading are returned in Tags.Warnings.
	Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error)
}

// Writer stores the tags of one container format.
type Writer interface {
	// Save writes tags to the file at path, which is a copy of the file
	// the tags were loaded from.
	Save(path string, tags *types.Tags) error
}

// loaders maps formats to their loaders.
var loaders = make(map[types.Format]Loader)

// writers maps formats to their writers.
var writers = make(map[types.Format]Writer)

// Register registers a loader for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, loader Loader) {
	loaders[format] = loader
}

// Get returns the loader for a given format, nil if none is registered.
func Get(format types.Format) Loader {
	return loaders[format]
}

// RegisterWriter registers a writer for a format.
// This is called by format packages during initialization (init functions).
func RegisterWriter(format types.Format, writer Writer) {
	writers[format] = writer
}

// GetWriter returns the writer for a given format, nil if the format
// can only be edited in memory.
func GetWriter(format types.Format) Writer {
	return writers[format]
}

// readOnly is implemented by writers which reject every save with a
// format specific reason.
type readOnly interface {
	ReadOnly() bool
}

// Formats returns the formats with a loader and those which can also be
// saved, both in ascending order.
func Formats() (readable, writable []types.Format) {
	readable = slices.Sorted(maps.Keys(loaders))
	for _, f := range readable {
		w := writers[f]
		if w == nil {
			continue
		}
		if ro, ok := w.(readOnly); ok && ro.ReadOnly() {
			continue
		}
		writable = append(writable, f)
	}
	return readable, writable
}
