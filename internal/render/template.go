package render

import (
	"os"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

// A placeholder is "{{ " name " }}" where name is any brace-free text that
// does not start with whitespace, so every translation key can be addressed.
var placeholderPattern = regexp.MustCompile(`\{\{ ([^{}\s][^{}]*?) \}\}`)

// Token returns the literal template text of a placeholder.
func Token(name string) string {
	return "{{ " + name + " }}"
}

type segment struct {
	text        string // literal text, or the raw token for placeholders
	placeholder string // empty for literal segments
}

// Template is a parsed page template.
type Template struct {
	segments []segment
	names    []string
	size     int
}

// ParseTemplate splits text into literal and placeholder segments.
func ParseTemplate(text string) *Template {
	t := &Template{size: len(text)}
	seen := map[string]bool{}
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			t.segments = append(t.segments, segment{text: text[last:m[0]]})
		}
		name := text[m[2]:m[3]]
		t.segments = append(t.segments, segment{text: text[m[0]:m[1]], placeholder: name})
		if !seen[name] {
			seen[name] = true
			t.names = append(t.names, name)
		}
		last = m[1]
	}
	if last < len(text) {
		t.segments = append(t.segments, segment{text: text[last:]})
	}
	return t
}

// LoadTemplate reads and parses the template file at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read template").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return ParseTemplate(string(data)), nil
}

// Placeholders returns the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Execute substitutes every placeholder bound in b. Unbound placeholders are
// left as their literal token and reported by name, once each, in order of
// first use.
func (t *Template) Execute(b *Bindings) (string, []string) {
	var sb strings.Builder
	sb.Grow(t.size + b.size())

	var unresolved []string
	reported := map[string]bool{}
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			sb.WriteString(seg.text)
			continue
		}
		if v, ok := b.Value(seg.placeholder); ok {
			sb.WriteString(v)
			continue
		}
		sb.WriteString(seg.text)
		if !reported[seg.placeholder] {
			reported[seg.placeholder] = true
			unresolved = append(unresolved, seg.placeholder)
		}
	}
	return sb.String(), unresolved
}
