package tagframe

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagframe/internal/filter"
	"github.com/simonhull/tagframe/internal/replacer"
)

// FileFilter is an alias to filter.FileFilter.
//
// A filter expression compares format strings with equals, contains and
// matches, combined with and, or, not and parentheses:
//
//	%{artist} equals "Queen" and not %{genre} contains Rock
type FileFilter = filter.FileFilter

// NewFileFilter parses expression. A malformed expression is returned as
// *FilterExpressionError; the filter is returned anyway and fails every
// file.
func NewFileFilter(expression string, log logrus.FieldLogger) (*FileFilter, error) {
	flt := filter.New(expression, log)
	return flt, flt.Err()
}

// FilterResult is the outcome of a filter for one file.
type FilterResult struct {
	File   *File
	Passes bool
}

// FilterMany applies flt to files concurrently.
//
// Results are returned in the same order as the input files. A malformed
// expression stops the run with its *FilterExpressionError.
//
// Example:
//
//	flt, err := tagframe.NewFileFilter(`%{genre} equals Rock`, nil)
//	if err != nil {
//		return err
//	}
//	results, err := tagframe.FilterMany(ctx, flt, files...)
func FilterMany(ctx context.Context, flt *FileFilter, files ...*File) ([]FilterResult, error) {
	if err := flt.Err(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]FilterResult, len(files))

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			passes, err := flt.Evaluate(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Path(), err)
			}
			results[i] = FilterResult{File: file, Passes: passes}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FormatString replaces the codes in s with the values of the file, e.g.
// "%{artist} - %{title}" or "%2{album} (%{year})". Codes without a value
// are replaced with an empty string.
func (f *File) FormatString(s string) string {
	return filter.New("", f.cfg.Log()).FormatString(f, s)
}

// FormatFrames replaces the frame codes in s with the values of frames.
func FormatFrames(frames *FrameCollection, s string) string {
	r := replacer.NewFrameFormatReplacer(frames, s)
	r.ReplaceEscapedChars()
	r.ReplacePercentCodes(0)
	return r.String()
}

// FormatToolTip returns an HTML table describing the format codes and
// the filter operators.
func FormatToolTip(onlyRows bool) string {
	return filter.FormatToolTip(onlyRows)
}
