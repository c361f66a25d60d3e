package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrwtech/rich-tables/internal/markup"
	"github.com/hrwtech/rich-tables/internal/render"
)

func markupOf(t *testing.T, n render.Node, err error) string {
	t.Helper()
	require.NoError(t, err)
	text, ok := n.(*render.Text)
	require.True(t, ok)
	return text.Markup
}

func TestDefaultRegistryLookups(t *testing.T) {
	reg := DefaultRegistry()

	for _, field := range []string{"genre", "album", "duration", "diff", "new", "bpm", "description", "added"} {
		_, ok := reg.FormatterFor(field)
		assert.True(t, ok, "expected a formatter for %q", field)
	}
	_, ok := reg.FormatterFor("no_such_field")
	assert.False(t, ok)

	assert.Equal(t, "#", reg.HeaderFor("track"))
	assert.Equal(t, "updated", reg.HeaderFor("mtime"))
	assert.Equal(t, "plain", reg.HeaderFor("plain"))
}

func TestColoredSplitSortsTokens(t *testing.T) {
	n, err := coloredSplit(render.String("rock; ambient,jazz"))
	out := markupOf(t, n, err)
	plain := markup.Strip(out)
	assert.Equal(t, "ambient jazz rock", plain)
	assert.Contains(t, out, render.ColorFor("jazz"))
}

func TestColoredPathKeepsSeparators(t *testing.T) {
	f := coloredPath("/")
	n, err := f(render.String("music/albums/x.flac"))
	out := markupOf(t, n, err)
	assert.Equal(t, "music/albums/x.flac", markup.Strip(out))
}

func TestDurationFmt(t *testing.T) {
	n, err := durationFmt(render.Number(3661))
	out := markupOf(t, n, err)
	assert.Equal(t, "1:01:01", strings.TrimSpace(out))

	// Non-numeric durations degrade to plain text.
	n, err = durationFmt(render.String("3:00"))
	out = markupOf(t, n, err)
	assert.Equal(t, "3:00", out)
}

func TestDiffFmt(t *testing.T) {
	pair := render.List(render.String("one"), render.String("two"))
	n, err := diffFmt(pair)
	out := markupOf(t, n, err)
	assert.Contains(t, out, "[b red]")
	assert.Contains(t, out, "[b green]")

	_, err = diffFmt(render.String("not a pair"))
	assert.Error(t, err)
	_, err = diffFmt(render.List(render.String("only")))
	assert.Error(t, err)
}

func TestCheckmark(t *testing.T) {
	n, err := checkmark(render.Bool(true))
	assert.Equal(t, "[b green]✔[/]", markupOf(t, n, err))
	n, err = checkmark(render.Bool(false))
	assert.Equal(t, "[b red]✖[/]", markupOf(t, n, err))
	n, err = checkmark(render.String("yes"))
	assert.Equal(t, "[b red]✖[/]", markupOf(t, n, err))
}

func TestBpmThresholds(t *testing.T) {
	tests := []struct {
		name string
		bpm  float64
		want string
	}{
		{name: "slow is green", bpm: 120, want: "[b green]120[/]"},
		{name: "mid is yellow", bpm: 150, want: "[yellow]150[/]"},
		{name: "fast is red", bpm: 180, want: "[red]180[/]"},
		{name: "extreme is bold red", bpm: 240, want: "[b red]240[/]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := bpm(render.Number(tt.bpm))
			assert.Equal(t, tt.want, markupOf(t, n, err))
		})
	}

	_, err := bpm(render.String("fast"))
	assert.Error(t, err)
}

func TestPlaysAndSkips(t *testing.T) {
	n, err := greenText(render.Number(12))
	assert.Equal(t, "[b green]12[/]", markupOf(t, n, err))
	n, err = redText(render.Number(3))
	assert.Equal(t, "[b red]3[/]", markupOf(t, n, err))
}

func TestMdPanel(t *testing.T) {
	n, err := mdPanel(render.String("# Title\n\nSome *emphasis* and **strong** text."))
	require.NoError(t, err)
	panel, ok := n.(*render.Panel)
	require.True(t, ok)
	assert.True(t, panel.Border)

	text, ok := panel.Child.(*render.Text)
	require.True(t, ok)
	assert.Contains(t, text.Markup, "[b cyan]Title[/]")
	assert.Contains(t, text.Markup, "[i]emphasis[/]")
	assert.Contains(t, text.Markup, "[b]strong[/]")

	_, err = mdPanel(render.Number(1))
	assert.Error(t, err)
}

func TestMdToMarkupLists(t *testing.T) {
	out := mdToMarkup("- one\n- two\n  - nested")
	assert.Contains(t, out, "• one")
	assert.Contains(t, out, "• two")
	assert.Contains(t, out, "  • nested")
}

func TestMdToMarkupCode(t *testing.T) {
	out := mdToMarkup("Use `go test` here.\n\n```\nline1\nline2\n```")
	assert.Contains(t, out, "[cyan]go test[/]")
	assert.Contains(t, out, "[dim]line1[/]")
	assert.Contains(t, out, "[dim]line2[/]")
}

func TestRegistryIntegrationWithRenderer(t *testing.T) {
	r := render.New(DefaultRegistry())
	m := render.NewMap()
	m.Set("album", render.String("Blue"))
	m.Set("new", render.Bool(true))
	node := r.Render(m, "")

	table, ok := node.(*render.Table)
	require.True(t, ok)
	require.Len(t, table.Rows, 2)
	val := table.Rows[1][1].(*render.Text)
	assert.Equal(t, "[b green]✔[/]", val.Markup)
}
