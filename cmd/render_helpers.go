package cmd

import (
	"github.com/spf13/pflag"

	"github.com/hrwtech/rich-tables/internal/display"
	"github.com/hrwtech/rich-tables/internal/fields"
	"github.com/hrwtech/rich-tables/internal/limiter"
	"github.com/hrwtech/rich-tables/internal/render"
)

// limiterFromFlags builds the record-limiting config from parsed CLI flags.
func limiterFromFlags(fs *pflag.FlagSet) (limiter.Config, error) {
	limit, _ := fs.GetInt("limit")
	offset, _ := fs.GetInt("offset")
	tail, _ := fs.GetInt("tail")
	cfg := limiter.Config{Limit: limit, Offset: offset, Tail: tail}
	return cfg, cfg.Validate()
}

// unwrapEnvelope recognizes the {"title": ..., "values": ...} form and
// returns the title used as the block label along with the inner value.
func unwrapEnvelope(v render.Value) (string, render.Value, bool) {
	if v.Kind() != render.KindMap || v.Len() != 2 {
		return "", render.Value{}, false
	}
	title, okT := v.Get("title")
	values, okV := v.Get("values")
	if !okT || !okV || title.Kind() != render.KindString {
		return "", render.Value{}, false
	}
	return title.Str(), values, true
}

// envelopeList reports whether every element of a list is a titled envelope.
func envelopeList(v render.Value) bool {
	if v.Kind() != render.KindList || v.Len() == 0 {
		return false
	}
	for _, it := range v.Items() {
		if _, _, ok := unwrapEnvelope(it); !ok {
			return false
		}
	}
	return true
}

// renderDocument dispatches the loaded value and draws it at the given width.
// A top-level list of titled envelopes becomes independently rendered blocks
// packed into a balanced two-column layout; a single envelope unwraps to a
// labeled block; everything else routes straight to the dispatcher.
func renderDocument(v render.Value, width int, noColor bool) string {
	renderer := render.New(fields.DefaultRegistry(),
		render.WithSizer(display.Metrics{}),
		render.WithWidth(width),
	)
	opts := display.Options{Width: width, NoColor: noColor}

	var node render.Node
	switch {
	case envelopeList(v):
		blocks := make([]render.Node, 0, v.Len())
		for _, it := range v.Items() {
			title, inner, _ := unwrapEnvelope(it)
			blocks = append(blocks, renderer.Render(inner, title))
		}
		node = render.Bicolumn(blocks)
	default:
		title, inner, ok := unwrapEnvelope(v)
		if !ok {
			title, inner = "", v
		}
		node = renderer.Render(inner, title)
	}
	return display.Render(node, opts) + "\n"
}
