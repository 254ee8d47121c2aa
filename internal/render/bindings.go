package render

// Binding pairs a placeholder name with its value.
type Binding struct {
	Placeholder string
	Value       string
}

// Bindings is an ordered set of placeholder values where the first binding of
// a name wins.
type Bindings struct {
	order []Binding
	index map[string]int
}

// NewBindings creates an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{index: make(map[string]int)}
}

// Bind records value for placeholder unless it is already bound. It reports
// whether the binding took effect.
func (b *Bindings) Bind(placeholder, value string) bool {
	if _, exists := b.index[placeholder]; exists {
		return false
	}
	b.index[placeholder] = len(b.order)
	b.order = append(b.order, Binding{Placeholder: placeholder, Value: value})
	return true
}

// Value returns the value bound to placeholder.
func (b *Bindings) Value(placeholder string) (string, bool) {
	i, ok := b.index[placeholder]
	if !ok {
		return "", false
	}
	return b.order[i].Value, true
}

// All returns the bindings in the order they were made.
func (b *Bindings) All() []Binding {
	out := make([]Binding, len(b.order))
	copy(out, b.order)
	return out
}

func (b *Bindings) size() int {
	n := 0
	for _, binding := range b.order {
		n += len(binding.Value)
	}
	return n
}
