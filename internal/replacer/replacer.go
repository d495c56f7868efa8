// Package replacer expands percent codes like %a or %{artist} in format
// strings and decodes backslash escapes.
//
// The codes are resolved by a Resolver. FrameResolver resolves frame
// values of a collection and Track adds properties of the file.
package replacer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Flags modify how percent codes are replaced.
type Flags uint

const (
	// SupportURLEncode enables the %u modifier, e.g. %ua or %u{artist}.
	SupportURLEncode Flags = 1 << iota
	// ReplaceSeparators replaces '/', '\' and ':' in replacements by '-'.
	ReplaceSeparators
	// SupportHTMLEscape enables the %h modifier.
	SupportHTMLEscape
)

// Resolver returns the replacement for a format code. Braced codes are
// passed lower-cased without braces. ok is false for unknown codes.
type Resolver interface {
	Replacement(code string) (string, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(code string) (string, bool)

func (f ResolverFunc) Replacement(code string) (string, bool) { return f(code) }

// FormatReplacer holds a string which is transformed in place.
type FormatReplacer struct {
	str      string
	resolver Resolver
}

// New returns a replacer for str.
func New(str string, r Resolver) *FormatReplacer {
	return &FormatReplacer{str: str, resolver: r}
}

// SetString replaces the string.
func (r *FormatReplacer) SetString(s string) { r.str = s }

// String returns the current string.
func (r *FormatReplacer) String() string { return r.str }

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
}

// ReplaceEscapedChars replaces \n, \t, \r, \\, \a, \b, \f and \v by the
// control characters. Other backslash sequences are kept.
func (r *FormatReplacer) ReplaceEscapedChars() {
	s := r.str
	if strings.IndexByte(s, '\\') < 0 {
		return
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			if e, ok := escapes[s[i+1]]; ok {
				b.WriteByte(e)
				i++
				continue
			}
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	r.str = b.String()
}

// ReplacePercentCodes replaces the format codes.
//
// An unknown one character code is kept. Braced codes are always
// consumed, with an empty string if unknown. A braced code may carry a
// quoted prefix and postfix, %{"(" year ") "}, which are only added to a
// non-empty replacement. The whole braced text, affixes included, is
// lower-cased. Replacement text is not scanned again.
func (r *FormatReplacer) ReplacePercentCodes(flags Flags) {
	s := r.str
	for pos := 0; pos < len(s); {
		i := strings.IndexByte(s[pos:], '%')
		if i < 0 {
			break
		}
		pos += i

		codePos := pos + 1
		urlEncode, htmlEscape := false, false
		if flags&SupportURLEncode != 0 && codePos < len(s) && s[codePos] == 'u' {
			codePos++
			urlEncode = true
		}
		if flags&SupportHTMLEscape != 0 && codePos < len(s) && s[codePos] == 'h' {
			codePos++
			htmlEscape = true
		}
		if codePos >= len(s) {
			break
		}

		var (
			repl            string
			found           bool
			codeLen         int
			prefix, postfix string
		)
		if s[codePos] == '{' {
			closing := strings.IndexByte(s[codePos+1:], '}')
			if closing > 0 {
				closing += codePos + 1
				var code string
				prefix, code, postfix = splitAffixes(strings.ToLower(s[codePos+1 : closing]))
				repl, found = r.resolver.Replacement(code)
				codeLen = closing - pos + 1
			}
		} else {
			_, size := utf8.DecodeRuneInString(s[codePos:])
			repl, found = r.resolver.Replacement(s[codePos : codePos+size])
			codeLen = codePos + size - pos
		}

		if codeLen == 0 {
			pos++
			continue
		}
		if flags&ReplaceSeparators != 0 {
			repl = replaceSeparators(repl)
		}
		if urlEncode {
			repl = percentEncode(repl)
		}
		if htmlEscape {
			repl = EscapeHTML(repl)
		}
		if repl != "" {
			repl = prefix + repl + postfix
		}
		if found || codeLen > 2 {
			s = s[:pos] + repl + s[pos+codeLen:]
			pos += len(repl)
		} else {
			pos++
		}
	}
	r.str = s
}

// splitAffixes splits `"pre"code"post"` into its parts. A quoted part is
// only taken if a code remains.
func splitAffixes(long string) (prefix, code, postfix string) {
	code = long
	if strings.HasPrefix(code, `"`) {
		if end := strings.IndexByte(code[1:], '"') + 1; end > 0 && end < len(code)-2 {
			prefix = code[1:end]
			code = code[end+1:]
		}
	}
	if len(code) > 1 && strings.HasSuffix(code, `"`) {
		if start := strings.LastIndexByte(code[:len(code)-1], '"'); start > 1 {
			postfix = code[start+1 : len(code)-1]
			code = code[:start]
		}
	}
	return prefix, code, postfix
}

func replaceSeparators(s string) string {
	return strings.NewReplacer("/", "-", `\`, "-", ":", "-").Replace(s)
}

// percentEncode escapes all bytes except the unreserved characters of
// RFC 3986.
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

// EscapeHTML replaces the HTML special characters and all non-ASCII
// characters by entities.
func EscapeHTML(plain string) string {
	var b strings.Builder
	b.Grow(len(plain) + len(plain)/10)
	for _, c := range plain {
		switch {
		case c == '<':
			b.WriteString("&lt;")
		case c == '>':
			b.WriteString("&gt;")
		case c == '&':
			b.WriteString("&amp;")
		case c == '"':
			b.WriteString("&quot;")
		case c == '\'':
			b.WriteString("&apos;")
		case c >= 128:
			b.WriteString("&#" + strconv.Itoa(int(c)) + ";")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
