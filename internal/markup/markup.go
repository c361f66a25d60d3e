// Package markup implements the composable terminal markup micro-language
// emitted by the render core. A styled span is written as [style]text[/]
// where style is a space-separated list of tokens: attribute flags (b, i,
// dim, s, u, blink), a foreground color (named, ANSI index, or #RRGGBB hex)
// and an optional "on <color>" background. Spans nest; inner spans inherit
// the enclosing style.
package markup

import (
	"image/color"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Wrap surrounds text with a style tag.
func Wrap(text, style string) string {
	return "[" + style + "]" + text + "[/]"
}

// Escape neutralizes literal brackets so they are not parsed as tags.
// Already-styled strings (anything containing a closing tag) pass through.
func Escape(s string) string {
	if strings.Contains(s, "[/]") {
		return s
	}
	return strings.NewReplacer("[", "⟦", "]", "⟧").Replace(s)
}

// namedColors maps the color names the default field formatters use onto
// ANSI palette indexes understood by lipgloss.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"grey":    "8",
	"gray":    "8",
}

type span struct {
	fg, bg        color.Color
	bold, italic  bool
	dim, strike   bool
	under, blink  bool
}

func (s span) merge(over span) span {
	out := s
	if over.fg != nil {
		out.fg = over.fg
	}
	if over.bg != nil {
		out.bg = over.bg
	}
	out.bold = out.bold || over.bold
	out.italic = out.italic || over.italic
	out.dim = out.dim || over.dim
	out.strike = out.strike || over.strike
	out.under = out.under || over.under
	out.blink = out.blink || over.blink
	return out
}

func parseColor(token string) (color.Color, bool) {
	if strings.HasPrefix(token, "#") {
		return lipgloss.Color(token), true
	}
	if idx, ok := namedColors[token]; ok {
		return lipgloss.Color(idx), true
	}
	// bare ANSI index
	for _, r := range token {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	if token == "" {
		return nil, false
	}
	return lipgloss.Color(token), true
}

func parseStyle(style string) span {
	var sp span
	tokens := strings.Fields(style)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case "b", "bold":
			sp.bold = true
		case "i", "italic":
			sp.italic = true
		case "dim":
			sp.dim = true
		case "s", "strike", "strikethrough":
			sp.strike = true
		case "u", "underline":
			sp.under = true
		case "blink":
			sp.blink = true
		case "on":
			if i+1 < len(tokens) {
				if c, ok := parseColor(tokens[i+1]); ok {
					sp.bg = c
				}
				i++
			}
		default:
			if c, ok := parseColor(tok); ok {
				sp.fg = c
			}
		}
	}
	return sp
}

func (s span) style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.fg != nil {
		st = st.Foreground(s.fg)
	}
	if s.bg != nil {
		st = st.Background(s.bg)
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.italic {
		st = st.Italic(true)
	}
	if s.dim {
		st = st.Faint(true)
	}
	if s.strike {
		st = st.Strikethrough(true)
	}
	if s.under {
		st = st.Underline(true)
	}
	if s.blink {
		st = st.Blink(true)
	}
	return st
}

// segment is one parsed run of text with the styles in effect where it occurs.
type segment struct {
	text  string
	stack []span
}

func (seg segment) effective() span {
	var sp span
	for _, s := range seg.stack {
		sp = sp.merge(s)
	}
	return sp
}

// parse splits a markup string into styled segments. Unbalanced closing tags
// are ignored; an unterminated opening tag is treated as literal text.
func parse(s string) []segment {
	var segs []segment
	var stack []span
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, segment{text: buf.String(), stack: append([]span(nil), stack...)})
			buf.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '[' {
			buf.WriteByte('[')
			i += 2
			continue
		}
		if s[i] != '[' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ']')
		if end < 0 {
			buf.WriteString(s[i:])
			break
		}
		tag := s[i+1 : i+end]
		if tag == "/" {
			flush()
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		} else {
			flush()
			stack = append(stack, parseStyle(tag))
		}
		i += end + 1
	}
	flush()
	return segs
}

// Render converts a markup string into ANSI-styled terminal text.
func Render(s string) string {
	var b strings.Builder
	for _, seg := range parse(s) {
		b.WriteString(seg.effective().style().Render(seg.text))
	}
	return b.String()
}

// Strip returns the plain text of a markup string with all tags removed.
func Strip(s string) string {
	var b strings.Builder
	for _, seg := range parse(s) {
		b.WriteString(seg.text)
	}
	return b.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape sequences from already-rendered terminal text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Measure returns the printable cell width of a markup string. Multi-line
// strings report the width of their widest line.
func Measure(s string) int {
	max := 0
	for _, line := range strings.Split(Strip(s), "\n") {
		if w := runewidth.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}
