// Package fields supplies the default field-formatter registry: per-field
// leaf rendering keyed by JSON field name, plus display-header overrides.
// Everything here is a convention, not a schema; unknown fields simply fall
// back to the dispatcher's plain formatting.
package fields

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/hrwtech/rich-tables/internal/render"
)

// errNotApplicable makes the dispatcher fall back to plain rendering.
var errNotApplicable = errors.New("formatter not applicable")

var splitPat = regexp.MustCompile(`[;,\n] ?`)

func text(markup string) (render.Node, error) {
	return &render.Text{Markup: markup}, nil
}

// withColor renders the value in a deterministic color keyed by its text.
func withColor(v render.Value) (render.Node, error) {
	return text(render.Colorize(v.String()))
}

// coloredSplit splits a delimited string, sorts the tokens, and colorizes
// each independently.
func coloredSplit(v render.Value) (render.Node, error) {
	tokens := splitPat.Split(v.String(), -1)
	sort.Strings(tokens)
	for i, t := range tokens {
		tokens[i] = render.Colorize(t)
	}
	return text(strings.Join(tokens, " "))
}

// coloredPath colorizes each segment of a separator-joined path.
func coloredPath(sep string) render.Formatter {
	return func(v render.Value) (render.Node, error) {
		segments := strings.Split(v.String(), sep)
		for i, s := range segments {
			segments[i] = render.Colorize(s)
		}
		return text(strings.Join(segments, sep))
	}
}

func timeFmt(acc int) render.Formatter {
	return func(v render.Value) (render.Node, error) {
		return text(render.TimeHuman(v, acc))
	}
}

func durationFmt(v render.Value) (render.Node, error) {
	if v.Kind() != render.KindNumber {
		return text(render.Escape(v.String()))
	}
	return text(render.DurationHuman(v.Num()))
}

// diffFmt expects a [before, after] pair and renders the styled character
// diff between the two.
func diffFmt(v render.Value) (render.Node, error) {
	if v.Kind() != render.KindList || v.Len() != 2 {
		return nil, errNotApplicable
	}
	items := v.Items()
	return text(render.MakeDiff(items[0].String(), items[1].String()))
}

func checkmark(v render.Value) (render.Node, error) {
	if v.Kind() == render.KindBool && v.Bool() {
		return text("[b green]✔[/]")
	}
	return text("[b red]✖[/]")
}

func greenText(v render.Value) (render.Node, error) {
	return text("[b green]" + render.Escape(v.String()) + "[/]")
}

func redText(v render.Value) (render.Node, error) {
	return text("[b red]" + render.Escape(v.String()) + "[/]")
}

// bpm colors tempo values by how extreme they are.
func bpm(v render.Value) (render.Node, error) {
	if v.Kind() != render.KindNumber {
		return nil, errNotApplicable
	}
	n := v.Num()
	style := "yellow"
	switch {
	case n < 135:
		style = "b green"
	case n > 230:
		style = "b red"
	case n > 165:
		style = "red"
	}
	return text("[" + style + "]" + render.FormatNumber(n) + "[/]")
}

func clockTime(v render.Value) (render.Node, error) {
	return text(render.ClockTime(v))
}

// DefaultRegistry builds the registry of well-known field formatters and
// display-header overrides consulted during a render pass.
func DefaultRegistry() *render.MapRegistry {
	colored := []string{
		"album", "albumtype", "media", "label", "catalognum", "category",
		"source", "data_source", "calendar", "brand", "mastering", "status",
		"priority", "assignee", "issuetype", "endpoint", "from", "to",
		"event", "symbol", "module", "code", "entity", "user", "author",
		"style", "table", "key", "type_name", "__typename",
	}
	split := []string{"genre", "tags", "kind", "categories", "keywords", "primary"}
	markdown := []string{
		"description", "notes", "comment", "comments", "text",
		"instructions", "body", "answer", "interview", "benefits",
		"creditText", "content",
	}
	relative := []string{
		"added", "modified", "updated", "due", "start", "end",
		"last_played", "mtime", "committedDate", "first_active",
		"last_active", "entry",
	}

	formatters := map[string]render.Formatter{
		"diff":            diffFmt,
		"duration":        durationFmt,
		"total_duration":  durationFmt,
		"wait_per_play":   durationFmt,
		"length":          clockTime,
		"plays":           greenText,
		"skips":           redText,
		"new":             checkmark,
		"bpm":             bpm,
		"file":            coloredPath("/"),
		"field":           coloredPath("."),
		"avg_last_played": timeFmt(2),
		"dt":              timeFmt(5),
	}
	for _, f := range colored {
		formatters[f] = withColor
	}
	for _, f := range split {
		formatters[f] = coloredSplit
	}
	for _, f := range markdown {
		formatters[f] = mdPanel
	}
	for _, f := range relative {
		formatters[f] = timeFmt(1)
	}

	return &render.MapRegistry{
		Formatters: formatters,
		Headers: map[string]string{
			"track":       "#",
			"mtime":       "updated",
			"data_source": "source",
			"albumtypes":  "types",
			"track_alt":   "alt",
		},
	}
}
