package tables

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

// Translations maps each language to its translation key -> localized string table.
type Translations struct {
	byLang mapping
}

// Entry is one translation key and its localized value.
type Entry struct {
	Key   string
	Value string
}

// LoadTranslations reads the translation table from path.
func LoadTranslations(path string) (*Translations, error) {
	m, err := loadMapping(path, "translations")
	if err != nil {
		return nil, err
	}
	for l, table := range m {
		for key := range table {
			if !addressable(key) {
				return nil, errors.ConfigError("translation key cannot be used as a placeholder").
					WithContext("path", path).
					WithContext("lang", l.String()).
					WithContext("key", key).
					Build()
			}
		}
	}
	return &Translations{byLang: m}, nil
}

// addressable reports whether key can appear as "{{ key }}" in a template:
// it must be non-empty and brace-free, and must not start with one of the
// whitespace bytes the placeholder grammar skips.
func addressable(key string) bool {
	return key != "" && !strings.ContainsAny(key[:1], "\t\n\f\r ") && !strings.ContainsAny(key, "{}")
}

// NewTranslations builds a table from in-memory data.
func NewTranslations(data map[lang.Lang]map[string]string) *Translations {
	m := make(mapping, len(data))
	for l, entries := range data {
		m[l] = entries
	}
	return &Translations{byLang: m}
}

// Entries returns the translations of l sorted by key. A language with no
// table yields nil.
func (t *Translations) Entries(l lang.Lang) []Entry {
	table := t.byLang[l]
	if len(table) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(table))
	for k, v := range table {
		out = append(out, Entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup returns a single translated string.
func (t *Translations) Lookup(l lang.Lang, key string) (string, bool) {
	v, ok := t.byLang[l][key]
	return v, ok
}
