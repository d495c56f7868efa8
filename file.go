package tagframe

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
)

// File represents an opened audio file with its tags converted to frames.
//
// A file has up to two tags: Tag1 is the ID3v1 tag of MP3 files, Tag2 is
// the main tag (ID3v2, Vorbis comments, MP4 items or ASF attributes).
// Frames are edited in memory and written back with Save.
//
// Always call Close() when done to release file resources:
//
//	file, err := tagframe.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	// Detected format (MP3, FLAC, M4A, Ogg, WMA)
	Format Format

	// File size in bytes
	Size int64

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	path   string
	reader io.ReaderAt
	tags   *types.Tags
	cfg    *types.TagConfig
}

// Open opens an audio file and converts its tags to frames.
//
// Supported formats: MP3, FLAC, M4A, Ogg (Vorbis, Opus), WMA
//
// Only the tags and the stream headers are read. Frames which cannot be
// decoded are kept as raw data and reported in File.Warnings, unless
// WithStrictParsing is given.
//
// Example:
//
//	file, err := tagframe.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	frames := file.Frames(tagframe.Tag2)
//	fmt.Printf("%s - %s\n", frames.Artist(), frames.Title())
func Open(path string, opts ...Option) (*File, error) {
	options := applyOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := openReader(f, stat.Size(), abs, options)
	if err != nil {
		f.Close()
		return nil, err
	}
	file.reader = f

	return file, nil
}

// openReader opens from an io.ReaderAt (internal, for testing)
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	loader := registry.Get(format)
	if loader == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no loader available for format %s", format),
		}
	}

	cfg := options.cfg
	tags, err := loader.Load(r, size, path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", format, err)
	}

	file := &File{
		Format:   format,
		Size:     size,
		Warnings: tags.Warnings,
		path:     path,
		reader:   r,
		tags:     tags,
		cfg:      &cfg,
	}
	if options.ignoreWarnings {
		file.Warnings = nil
	}

	cfg.Log().WithField("path", path).WithField("format", format).Debug("opened file")
	return file, nil
}

// Close releases resources held by the file.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if closer, ok := f.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Path returns the absolute path of the file.
func (f *File) Path() string { return f.path }

// Info returns the technical details of the audio stream.
func (f *File) Info() DetailInfo { return f.tags.Info }

// HasTag reports whether the format has the tag n. Only MP3 files have
// a tag 1.
func (f *File) HasTag(n TagNumber) bool {
	return f.tags.Backend(n) != nil
}

// TagFormat returns the format of tag n, e.g. "ID3v2.4.0" or "Vorbis",
// "" if the file has no such tag.
func (f *File) TagFormat(n TagNumber) string {
	b := f.tags.Backend(n)
	if b == nil {
		return ""
	}
	return b.TagFormat()
}

// Frames returns the frames of tag n. The collection is a copy; edit it
// and pass it to SetFrames.
func (f *File) Frames(n TagNumber) FrameCollection {
	b := f.tags.Backend(n)
	if b == nil {
		return FrameCollection{}
	}
	return b.AllFrames()
}

func (f *File) backend(n TagNumber) (types.TagBackend, error) {
	b := f.tags.Backend(n)
	if b == nil {
		return nil, &TagNotFoundError{Path: f.path, Tag: n}
	}
	return b, nil
}

// SetFrame writes f back to tag n, see SetFrames.
func (f *File) SetFrame(n TagNumber, frame *Frame) (bool, error) {
	b, err := f.backend(n)
	if err != nil {
		return false, err
	}
	return b.SetFrame(frame), nil
}

// SetFrames writes frames to tag n.
//
// Frames from Frames are written if ValueChanged is set and replace the
// native frame they came from. Frames created with NewFrame replace the
// first frame of their type, or are added when there is none.
func (f *File) SetFrames(n TagNumber, frames *FrameCollection) error {
	b, err := f.backend(n)
	if err != nil {
		return err
	}
	for frame := range frames.All() {
		if frame.Index >= 0 && !frame.ValueChanged {
			continue
		}
		if b.SetFrame(frame) {
			continue
		}
		if frame.Index >= 0 || frame.IsInactive() {
			f.cfg.Log().WithField("frame", frame.InternalName()).Debug("frame not set")
			continue
		}
		g := frame.Clone()
		if !b.AddFrame(&g) || !b.SetFrame(&g) {
			f.cfg.Log().WithField("frame", frame.InternalName()).Debug("frame not added")
		}
	}
	return nil
}

// AddFrame adds a new frame to tag n and sets its index and fields.
func (f *File) AddFrame(n TagNumber, frame *Frame) (bool, error) {
	b, err := f.backend(n)
	if err != nil {
		return false, err
	}
	return b.AddFrame(frame), nil
}

// DeleteFrame removes the native frame a frame from Frames refers to.
func (f *File) DeleteFrame(n TagNumber, frame Frame) (bool, error) {
	b, err := f.backend(n)
	if err != nil {
		return false, err
	}
	return b.DeleteFrame(frame), nil
}

// DeleteFrames removes all frames of tag n passing flt. The zero
// FrameFilter passes all frames.
func (f *File) DeleteFrames(n TagNumber, flt FrameFilter) error {
	b, err := f.backend(n)
	if err != nil {
		return err
	}
	b.DeleteFrames(flt)
	return nil
}

// FrameIDs lists the frame names which can be added to tag n.
func (f *File) FrameIDs(n TagNumber) []string {
	b := f.tags.Backend(n)
	if b == nil {
		return nil
	}
	return b.FrameIDs()
}

// Changed reports whether a tag was modified since Open or Save.
func (f *File) Changed() bool {
	for _, n := range []TagNumber{Tag1, Tag2} {
		if c, ok := f.tags.Backend(n).(interface{ Changed() bool }); ok && c.Changed() {
			return true
		}
	}
	return false
}

// OpenContext opens a file with context support for cancellation.
//
// Options can be provided just like with Open():
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := tagframe.OpenContext(ctx, "song.flac",
//	    tagframe.WithStrictParsing(),
//	)
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := tagframe.OpenMany(ctx, paths, tagframe.WithIgnoreWarnings())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
