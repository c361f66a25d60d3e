package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, "[b red]hi[/]", Wrap("hi", "b red"))
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "hello", want: "hello"},
		{name: "brackets replaced", input: "a[0]", want: "a⟦0⟧"},
		{name: "styled string passes through", input: "[b]x[/]", want: "[b]x[/]"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no markup", input: "plain", want: "plain"},
		{name: "single span", input: "[b]bold[/]", want: "bold"},
		{name: "nested spans", input: "[red]a[b]b[/]c[/]", want: "abc"},
		{name: "adjacent spans", input: "[red]a[/] [green]b[/]", want: "a b"},
		{name: "literal escaped bracket", input: `\[not a tag]`, want: "[not a tag]"},
		{name: "unterminated tag is literal", input: "open [b", want: "open [b"},
		{name: "stray closing tag ignored", input: "a[/]b", want: "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestRenderEmitsANSI(t *testing.T) {
	out := Render("[b]x[/]")
	require.NotEqual(t, "x", out)
	assert.Contains(t, out, "x")
	assert.Equal(t, "x", StripANSI(out))
}

func TestRenderRoundTripsPlainText(t *testing.T) {
	for _, s := range []string{
		"[b red]error[/] at [cyan]line 3[/]",
		"[u green]new[/][s][b red]old[/][/]",
		"[38]indexed[/] and [#a1b2c3]hex[/]",
		"[dim on blue]inverse-ish[/]",
	} {
		assert.Equal(t, Strip(s), StripANSI(Render(s)), "input %q", s)
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "plain", input: "abcd", want: 4},
		{name: "markup excluded", input: "[b magenta]abcd[/]", want: 4},
		{name: "widest line wins", input: "ab\nabcdef\ncd", want: 6},
		{name: "wide runes count double", input: "漢字", want: 4},
		{name: "empty", input: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measure(tt.input))
		})
	}
}
