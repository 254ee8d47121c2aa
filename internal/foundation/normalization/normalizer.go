// Package normalization maps free-form configuration strings onto closed
// sets of typed values.
package normalization

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	field    string
	values   map[string]T
	fallback T
	keys     []string // sorted, for error messages
}

// New creates a normalizer for the named configuration field. Keys are
// matched case-insensitively after trimming.
func New[T comparable](field string, values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{
		field:    field,
		values:   make(map[string]T, len(values)),
		fallback: fallback,
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the value for raw, or the fallback when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.fallback
}

// Lookup returns the value for raw and whether it is known.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[clean(raw)]
	return v, ok
}

// Parse returns the value for raw or a configuration error listing the
// accepted spellings.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, errors.ConfigError(fmt.Sprintf("invalid %s %q, valid options: %s", n.field, raw, strings.Join(n.keys, ", "))).
		WithContext("field", n.field).
		Build()
}

// Keys returns the accepted spellings in sorted order.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

func clean(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
