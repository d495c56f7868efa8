package tagframe_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/simonhull/tagframe"
)

func openGenres(t *testing.T, genres ...string) []*tagframe.File {
	t.Helper()
	var files []*tagframe.File
	for i, genre := range genres {
		path := writeFile(t, fmt.Sprintf("%02d.flac", i+1), createFLAC([]string{
			fmt.Sprintf("TITLE=Song %d", i+1),
			"ARTIST=Artist",
			"GENRE=" + genre,
		}))
		files = append(files, open(t, path))
	}
	return files
}

func TestFilterMany(t *testing.T) {
	files := openGenres(t, "Rock", "Jazz", "Hard Rock", "Rock")

	tests := []struct {
		expression string
		want       []bool
	}{
		{"", []bool{true, true, true, true}},
		{"%{genre} equals Rock", []bool{true, false, false, true}},
		{"Rock contains %{genre}", []bool{true, false, false, true}},
		{`%{genre} matches ".*Rock"`, []bool{true, false, true, true}},
		{"not %{genre} equals Rock and %{artist} equals Artist", []bool{false, true, true, false}},
		{`%{title} equals "Song 2" or %{title} equals "Song 3"`, []bool{false, true, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			flt, err := tagframe.NewFileFilter(tt.expression, nil)
			if err != nil {
				t.Fatalf("NewFileFilter() error = %v", err)
			}
			results, err := tagframe.FilterMany(context.Background(), flt, files...)
			if err != nil {
				t.Fatalf("FilterMany() error = %v", err)
			}
			for i, r := range results {
				if r.File != files[i] {
					t.Errorf("results[%d] is not in input order", i)
				}
				if r.Passes != tt.want[i] {
					t.Errorf("results[%d].Passes = %v, want %v", i, r.Passes, tt.want[i])
				}
			}
		})
	}
}

func TestFilterMany_MalformedExpression(t *testing.T) {
	files := openGenres(t, "Rock")

	for _, expression := range []string{
		`%{genre} equals "Rock`,
		"(%{genre} equals Rock",
		"%{genre} equals",
		"Rock Jazz",
	} {
		t.Run(expression, func(t *testing.T) {
			flt, err := tagframe.NewFileFilter(expression, nil)
			var exprErr *tagframe.FilterExpressionError
			if err != nil && !errors.As(err, &exprErr) {
				t.Fatalf("NewFileFilter() error = %v, want FilterExpressionError", err)
			}
			if _, err := tagframe.FilterMany(context.Background(), flt, files...); !errors.As(err, &exprErr) {
				t.Errorf("FilterMany() error = %v, want FilterExpressionError", err)
			}
			if passes, ok := flt.Filter(files[0]); passes || ok {
				t.Errorf("Filter() = %v, %v, want false, false", passes, ok)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	files := openGenres(t, "Rock")
	file := files[0]

	tests := []struct {
		format string
		want   string
	}{
		{"%{artist} - %{title}", "Artist - Song 1"},
		{"%a - %s", "Artist - Song 1"},
		{"%2{genre}", "Rock"},
		{"[%1{title}]", "[]"},
		{"no codes", "no codes"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := file.FormatString(tt.format); got != tt.want {
				t.Errorf("FormatString(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatFrames(t *testing.T) {
	frames := tagframe.FrameCollection{}
	frames.Insert(tagframe.NewFrame(tagframe.TypeTrack, "7", ""))
	frames.Insert(tagframe.NewFrame(tagframe.TypeTitle, "Song", ""))

	if got := tagframe.FormatFrames(&frames, "%t %s"); got != "07 Song" {
		t.Errorf("FormatFrames() = %q, want %q", got, "07 Song")
	}
}
