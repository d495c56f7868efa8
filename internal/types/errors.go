package types

import "fmt"

// UnsupportedFormatError is returned when no tag backend handles a file.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when a tag structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedWriteError indicates that tags of a format can be edited in
// memory but not saved.
type UnsupportedWriteError struct {
	Reason string
	Format Format
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Format)
}

// TagNotFoundError is returned when a file has no tag of the requested
// kind.
type TagNotFoundError struct {
	Path string
	Tag  TagNumber
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("%s: no %s", e.Path, e.Tag)
}

// FilterExpressionError reports a malformed filter expression. It is a
// configuration error, not a file which did not pass.
type FilterExpressionError struct {
	Expression string
	Reason     string
}

func (e *FilterExpressionError) Error() string {
	return fmt.Sprintf("filter expression %q: %s", e.Expression, e.Reason)
}

// Warning represents a non-fatal issue encountered while converting tags.
//
// Warnings are collected while loading a file, e.g. for frames whose body
// could not be decoded and is kept as raw data.
type Warning struct {
	// Stage where the warning occurred, e.g. "id3v2", "vorbis", "mp4".
	Stage string

	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
