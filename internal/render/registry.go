package render

// Formatter renders one field's value as a node. Returning an error (or
// panicking) makes the dispatcher fall back to plain stringification for
// that cell only.
type Formatter func(Value) (Node, error)

// Registry supplies per-field formatters and display-header overrides. It is
// read-only during a render pass; implementations are injected into the
// render entry point so tests can swap in fakes.
type Registry interface {
	FormatterFor(field string) (Formatter, bool)
	HeaderFor(field string) string
}

// MapRegistry is a Registry backed by plain maps.
type MapRegistry struct {
	Formatters map[string]Formatter
	Headers    map[string]string
}

// FormatterFor looks up the formatter registered for a field.
func (r *MapRegistry) FormatterFor(field string) (Formatter, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.Formatters[field]
	return f, ok
}

// HeaderFor returns the display label for a field, or the field itself.
func (r *MapRegistry) HeaderFor(field string) string {
	if r == nil {
		return field
	}
	if h, ok := r.Headers[field]; ok {
		return h
	}
	return field
}

// emptyRegistry satisfies Registry with no formatters at all.
type emptyRegistry struct{}

func (emptyRegistry) FormatterFor(string) (Formatter, bool) { return nil, false }
func (emptyRegistry) HeaderFor(field string) string         { return field }
