package tagframe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/tagframe/internal/registry"
)

// Save writes the tags back to the original file.
//
// This is an atomic operation: the file is copied to a temporary file,
// the tags are written into the copy, which is then renamed to the
// original path. If any step fails, the original file remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := file.Save(
//	    tagframe.WithBackup(".bak"),
//	    tagframe.WithValidation(),
//	)
//
// Returns UnsupportedWriteError for formats whose tags can only be
// edited in memory (M4A, Ogg, WMA).
func (f *File) Save(opts ...SaveOption) error {
	return f.SaveAs(f.path, opts...)
}

// SaveAs writes the file with its tags to a new location.
//
// Saving to the path of the file itself is the same as Save; afterwards
// the file reads from the saved version.
func (f *File) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := applySaveOptions(opts)

	writer := registry.GetWriter(f.Format)
	if writer == nil {
		return &UnsupportedWriteError{
			Format: f.Format,
			Reason: "no writer registered",
		}
	}

	if f.reader == nil {
		return fmt.Errorf("file not open: reader is nil")
	}

	for _, n := range options.removeTags {
		if b := f.tags.Backend(n); b != nil {
			b.DeleteFrames(FrameFilter{})
		}
	}

	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.path); err == nil {
			origInfo = info
		}
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".tagframe-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := io.Copy(tempFile, io.NewSectionReader(f.reader, 0, f.Size)); err != nil {
		return fmt.Errorf("copy audio data: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// The writers rewrite the tags of the copy in place.
	if err := writer.Save(tempPath, f.tags); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if err := syncFile(tempPath); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if options.backupSuffix != "" {
		backupPath := outputPath + options.backupSuffix
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Rename(outputPath, backupPath); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	f.cfg.Log().WithField("path", outputPath).Debug("saved file")

	if outputPath == f.path {
		if err := f.reopen(); err != nil {
			return err
		}
	}

	if options.validate {
		if err := f.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

func syncFile(path string) error {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// reopen points the reader to the file at f.path after it was replaced.
func (f *File) reopen() error {
	handle, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("reopen file: %w", err)
	}
	stat, err := handle.Stat()
	if err != nil {
		handle.Close()
		return fmt.Errorf("stat file: %w", err)
	}
	if err := f.Close(); err != nil {
		f.cfg.Log().WithError(err).Debug("close replaced file")
	}
	f.reader = handle
	f.Size = stat.Size()
	return nil
}

// validateWrittenFile re-opens the file and compares the main frames.
func (f *File) validateWrittenFile(path string) error {
	written, err := Open(path, WithLogger(f.cfg.Log()), WithIgnoreWarnings())
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer written.Close() //nolint:errcheck // Best effort close

	want := f.Frames(Tag2)
	got := written.Frames(Tag2)
	for _, t := range []Type{TypeTitle, TypeArtist, TypeAlbum} {
		w, _ := want.Value(t)
		g, _ := got.Value(t)
		if g != w {
			return fmt.Errorf("%s mismatch: got %q, want %q", t, g, w)
		}
	}

	return nil
}
