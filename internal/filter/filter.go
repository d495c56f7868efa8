// Package filter selects files with boolean expressions over their tags.
//
// An expression compares format strings, e.g.
//
//	%{artist} equals "Queen" and not %{genre} contains Rock
//
// Codes in the operands are replaced with the values of the merged tags,
// %1 and %2 codes like %2{artist} with the values of tag 1 or tag 2.
package filter

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/replacer"
	"github.com/simonhull/tagframe/internal/types"
)

// TaggedFile is a file the filter can be applied to.
type TaggedFile interface {
	// Path returns the absolute path of the file.
	Path() string

	// Frames returns the frames of a tag, empty if the file has none.
	Frames(n types.TagNumber) types.FrameCollection

	// TagFormat returns the format name of a tag, "" if absent.
	TagFormat(n types.TagNumber) string

	// Info returns the technical details.
	Info() types.DetailInfo
}

// FileFilter evaluates an expression against files.
//
// Filter may be called concurrently once the parser is initialized.
type FileFilter struct {
	expression string
	parser     *ExpressionParser
	log        logrus.FieldLogger
}

// New returns a filter with an initialized parser. A malformed
// expression is reported by Err and makes Filter fail.
func New(expression string, log logrus.FieldLogger) *FileFilter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f := &FileFilter{
		expression: expression,
		parser:     NewExpressionParser("equals", "contains", "matches"),
		log:        log,
	}
	f.InitParser()
	return f
}

// SetExpression sets the expression. InitParser has to be called
// afterwards.
func (f *FileFilter) SetExpression(expression string) {
	f.expression = expression
}

// Expression returns the expression.
func (f *FileFilter) Expression() string { return f.expression }

// InitParser tokenizes the expression.
func (f *FileFilter) InitParser() error {
	if err := f.parser.TokenizeRPN(f.expression); err != nil {
		f.log.WithField("expression", f.expression).WithError(err).Warn("invalid filter expression")
		return f.wrap(err)
	}
	return nil
}

// Err returns the tokenizer error as *types.FilterExpressionError.
func (f *FileFilter) Err() error {
	if err := f.parser.Err(); err != nil {
		return f.wrap(err)
	}
	return nil
}

func (f *FileFilter) wrap(err error) error {
	return &types.FilterExpressionError{Expression: f.expression, Reason: err.Error()}
}

// Filter reports whether file passes. ok is false if the expression is
// malformed, passes is false then too. An empty expression passes all
// files.
func (f *FileFilter) Filter(file TaggedFile) (passes, ok bool) {
	passes, err := f.Evaluate(file)
	return passes, err == nil
}

// Evaluate is Filter returning the expression error.
func (f *FileFilter) Evaluate(file TaggedFile) (bool, error) {
	if f.expression == "" {
		return true, nil
	}
	v := newViews(file)
	p := f.parser.clone()
	for {
		op, var1, var2, more := p.Evaluate()
		if !more {
			break
		}
		var1 = v.formatString(var1)
		var2 = v.formatString(var2)
		switch op {
		case "equals":
			p.PushBool(var1 == var2)
		case "contains":
			p.PushBool(strings.Contains(var2, var1))
		case "matches":
			p.PushBool(f.matches(var1, var2))
		}
	}
	result, err := p.Result()
	if err != nil {
		return false, f.wrap(err)
	}
	return result, nil
}

// matches reports whether the whole of s matches pattern.
func (f *FileFilter) matches(pattern, s string) bool {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		f.log.WithField("pattern", pattern).WithError(err).Warn("invalid regular expression in filter")
		return false
	}
	return re.MatchString(s)
}

// FormatString replaces the codes in s with the values of file.
func (f *FileFilter) FormatString(file TaggedFile, s string) string {
	return newViews(file).formatString(s)
}

// views holds the three track views of a file.
type views struct {
	merged, tag1, tag2 *replacer.Track
}

func newViews(file TaggedFile) *views {
	track := func(frames types.FrameCollection) *replacer.Track {
		return &replacer.Track{
			Frames:     &frames,
			Path:       file.Path(),
			TagFormats: [2]string{file.TagFormat(types.Tag1), file.TagFormat(types.Tag2)},
			Info:       file.Info(),
		}
	}
	tag1 := file.Frames(types.Tag1)
	tag2 := file.Frames(types.Tag2)
	merged := tag2.CopyEnabledFrames(types.FrameFilter{})
	merged.Merge(&tag1)
	return &views{merged: track(merged), tag1: track(tag1), tag2: track(tag2)}
}

func formatTrack(t *replacer.Track, s string) string {
	r := replacer.NewTrackFormatReplacer(t, s)
	r.ReplaceEscapedChars()
	r.ReplacePercentCodes(replacer.SupportHTMLEscape)
	return r.String()
}

// formatString resolves the merged codes first, then the %2 and %1
// codes. The tag specific codes are hidden behind '\v' until their turn.
func (c *views) formatString(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	s = strings.ReplaceAll(s, "%1", "\v1")
	s = strings.ReplaceAll(s, "%2", "\v2")
	s = formatTrack(c.merged, s)
	if strings.Contains(s, "\v") {
		s = strings.ReplaceAll(s, "\v2", "%")
		s = formatTrack(c.tag2, s)
		if strings.Contains(s, "\v") {
			s = strings.ReplaceAll(s, "\v1", "%")
			s = formatTrack(c.tag1, s)
		}
	}
	return s
}

var toolTipRows = []struct{ short, long, desc string }{
	{"%1a...", "%1{artist}...", "Tag 1 Artist"},
	{"%2a...", "%2{artist}...", "Tag 2 Artist"},
	{"", "equals", "True if strings are equal"},
	{"", "contains", "True if string contains substring"},
	{"", "matches", "True if string matches regexp"},
	{"", "and", "Logical AND"},
	{"", "or", "Logical OR"},
	{"", "not", "Logical negation"},
}

// FormatToolTip returns an HTML table describing codes and operators.
func FormatToolTip(onlyRows bool) string {
	var b strings.Builder
	if !onlyRows {
		b.WriteString("<table>\n")
	}
	b.WriteString(replacer.TrackToolTip(true))
	for _, r := range toolTipRows {
		b.WriteString("<tr><td>" + r.short + "</td><td>" + r.long + "</td><td>" + r.desc + "</td></tr>\n")
	}
	if !onlyRows {
		b.WriteString("</table>\n")
	}
	return b.String()
}
