package content

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

// Unit is one localized page fragment.
type Unit struct {
	Path     string    // Path of the fragment as discovered (content root joined with RelPath)
	RelPath  string    // Path relative to the content root
	Lang     lang.Lang // Language directory the fragment lives in
	Filename string    // Page file name; extras and alternate links are keyed by it
	Markdown bool      // Body is Markdown and must be rendered to HTML
}

// OutputRelPath is where the page lands relative to the output root: the same
// relative path as the source, with Markdown sources renamed to .html.
func (u Unit) OutputRelPath() string {
	if !u.Markdown {
		return u.RelPath
	}
	return strings.TrimSuffix(u.RelPath, filepath.Ext(u.RelPath)) + ".html"
}

// ParsePath derives the language and file name of a content fragment from its
// path: the file name is the last segment and the language the one before it.
// Paths with fewer than three segments cannot name a language directory under
// a content root and are rejected.
func ParsePath(path string) (lang.Lang, string, error) {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(parts) < 3 {
		return "", "", errors.ValidationError("content path lacks a language directory").
			WithContext("path", path).
			Build()
	}
	l, err := lang.Parse(parts[len(parts)-2])
	if err != nil {
		return "", "", errors.WrapError(err, errors.CategoryValidation, "content path names an unsupported language").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return l, parts[len(parts)-1], nil
}
