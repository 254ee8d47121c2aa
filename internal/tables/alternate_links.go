package tables

import (
	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

// AlternateLinks maps, per language, a page file name to the file name of the
// same page in the other language.
type AlternateLinks struct {
	byLang mapping
}

// LoadAlternateLinks reads the alternate-link table from path.
func LoadAlternateLinks(path string) (*AlternateLinks, error) {
	m, err := loadMapping(path, "alternate links")
	if err != nil {
		return nil, err
	}
	return &AlternateLinks{byLang: m}, nil
}

// NewAlternateLinks builds a table from in-memory data.
func NewAlternateLinks(data map[lang.Lang]map[string]string) *AlternateLinks {
	m := make(mapping, len(data))
	for l, entries := range data {
		m[l] = entries
	}
	return &AlternateLinks{byLang: m}
}

// Sibling returns the file name of the translation of filename, which is a
// page written in l.
func (a *AlternateLinks) Sibling(l lang.Lang, filename string) (string, error) {
	if sibling, ok := a.byLang[l][filename]; ok {
		return sibling, nil
	}
	return "", errors.ConfigError("no alternate link for page").
		WithContext("lang", l.String()).
		WithContext("file", filename).
		Build()
}
