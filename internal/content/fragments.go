package content

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

// Reader loads the fragments that make up a page.
type Reader struct {
	extraHeadDir    string
	extraScriptsDir string
	md              goldmark.Markdown
}

// NewReader creates a fragment reader. Extra fragments are looked up as
// <dir>/<lang>/<filename>; an empty dir disables that kind of fragment.
func NewReader(extraHeadDir, extraScriptsDir string) *Reader {
	return &Reader{
		extraHeadDir:    extraHeadDir,
		extraScriptsDir: extraScriptsDir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Fragments are trusted site sources and may embed raw HTML.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Body returns the page body as HTML.
func (r *Reader) Body(u Unit) (string, error) {
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read content").
			WithContext("path", u.Path).
			Build()
	}
	if !u.Markdown {
		return string(data), nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert(data, &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryBuild, "failed to render markdown").
			WithContext("path", u.Path).
			Build()
	}
	return buf.String(), nil
}

// ExtraHead returns the page's extra-head fragment, or "" when it has none.
func (r *Reader) ExtraHead(l lang.Lang, filename string) (string, error) {
	return readOptional(r.extraHeadDir, l, filename)
}

// ExtraScripts returns the page's extra-scripts fragment, or "" when it has none.
func (r *Reader) ExtraScripts(l lang.Lang, filename string) (string, error) {
	return readOptional(r.extraScriptsDir, l, filename)
}

func readOptional(dir string, l lang.Lang, filename string) (string, error) {
	if dir == "" {
		return "", nil
	}
	path := filepath.Join(dir, l.String(), filename)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read fragment").
			WithContext("path", path).
			Build()
	}
	return string(data), nil
}

// Indent prefixes every line of text that is not whitespace-only with prefix.
// Lines end at \n, \r\n, \r, \v, \f, \x1c-\x1e, U+0085, U+2028 or U+2029.
// Line endings are preserved, so indenting never changes the line count.
func Indent(text, prefix string) string {
	if text == "" || prefix == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(prefix)*strings.Count(text, "\n"))
	for len(text) > 0 {
		end := lineEnd(text)
		line := text[:end]
		if strings.TrimFunc(line, isBlank) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
		text = text[end:]
	}
	return b.String()
}

// lineEnd returns the length of the first line of s, terminator included.
func lineEnd(s string) int {
	for i, r := range s {
		switch r {
		case '\r':
			if strings.HasPrefix(s[i+1:], "\n") {
				return i + 2
			}
			return i + 1
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return i + utf8.RuneLen(r)
		}
	}
	return len(s)
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Pad returns n spaces.
func Pad(n int) string {
	return strings.Repeat(" ", n)
}
