// Package lang defines the closed set of site languages and their
// locale-specific timestamp formats.
package lang

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

// Lang is a supported site language, identified by its directory name.
type Lang string

const (
	English Lang = "en"
	French  Lang = "fr"
)

var supported = []Lang{English, French}

// Supported returns every language the site is generated in.
func Supported() []Lang {
	out := make([]Lang, len(supported))
	copy(out, supported)
	return out
}

// Parse validates a language code taken from a content path.
// The code must be a canonical BCP 47 tag naming a supported language.
func Parse(code string) (Lang, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "invalid language code").
			Fatal().
			WithContext("lang", code).
			Build()
	}
	for _, l := range supported {
		if tag == l.Tag() && code == l.String() {
			return l, nil
		}
	}
	return "", errors.ValidationError(fmt.Sprintf("unsupported language %q", code)).
		WithContext("lang", code).
		WithContext("supported", supported).
		Build()
}

// String returns the language code.
func (l Lang) String() string { return string(l) }

// Tag returns the BCP 47 tag for the language.
func (l Lang) Tag() language.Tag {
	switch l {
	case English:
		return language.English
	case French:
		return language.French
	default:
		return language.Und
	}
}

// Other returns the sibling language an alternate link points to.
func (l Lang) Other() (Lang, error) {
	switch l {
	case English:
		return French, nil
	case French:
		return English, nil
	default:
		return "", unsupported(l)
	}
}

// humanLayouts are Go time layouts written with English month names;
// monday translates them for the page locale.
var humanLayouts = map[Lang]string{
	English: "January 2, 2006 at 3:04 PM", // October 18, 2026 at 3:04 PM
	French:  "le 2 January 2006 à 15h04",  // le 18 octobre 2026 à 15h04
}

// FormatHuman renders a last-modified time for readers of the page.
func (l Lang) FormatHuman(t time.Time) (string, error) {
	layout, ok := humanLayouts[l]
	if !ok {
		return "", unsupported(l)
	}
	return monday.Format(t, layout, l.Locale()), nil
}

// Locale returns the monday locale for l: its language with the most likely
// region, e.g. en_US or fr_FR.
func (l Lang) Locale() monday.Locale {
	tag := l.Tag()
	base, _ := tag.Base()
	region, _ := tag.Region()
	return monday.Locale(base.String() + "_" + region.String())
}

// FormatMachine renders an ISO-8601 timestamp truncated to minutes, without
// a zone offset, for the datetime attribute of <time> elements.
func FormatMachine(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

func unsupported(l Lang) error {
	return errors.ValidationError(fmt.Sprintf("unsupported language %q", string(l))).
		WithContext("lang", string(l)).
		Build()
}
