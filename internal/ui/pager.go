// Package ui implements the interactive pager for rendered output.
package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hrwtech/rich-tables/internal/markup"
)

// Pager is a scrollable full-screen view over pre-rendered lines. A "/" key
// opens an incremental search prompt; n/N jump between matching lines.
type Pager struct {
	Lines  []string
	Title  string
	Offset int

	WinWidth  int
	WinHeight int

	Searching   bool
	SearchInput textinput.Model
	Query       string

	// plain holds the style-stripped lines used for search matching.
	plain []string
}

// NewPager builds a pager over the given rendered content.
func NewPager(title, content string) *Pager {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	plain := make([]string, len(lines))
	for i, ln := range lines {
		plain[i] = strings.ToLower(markup.StripANSI(ln))
	}

	si := textinput.New()
	si.Placeholder = "search"
	si.CharLimit = 200
	si.SetWidth(40)
	si.Prompt = "/"

	return &Pager{
		Lines:       lines,
		Title:       title,
		SearchInput: si,
		plain:       plain,
	}
}

func (p *Pager) Init() tea.Cmd {
	return textinput.Blink
}

// viewportHeight is the number of content rows, leaving one row for the footer.
func (p *Pager) viewportHeight() int {
	h := p.WinHeight - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (p *Pager) maxOffset() int {
	max := len(p.Lines) - p.viewportHeight()
	if max < 0 {
		max = 0
	}
	return max
}

func (p *Pager) clampOffset() {
	if p.Offset > p.maxOffset() {
		p.Offset = p.maxOffset()
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// findMatch returns the index of the first line matching the query, scanning
// from `from` in the given direction, or -1 when nothing matches.
func (p *Pager) findMatch(from, dir int) int {
	q := strings.ToLower(p.Query)
	if q == "" {
		return -1
	}
	for i := from; i >= 0 && i < len(p.plain); i += dir {
		if strings.Contains(p.plain[i], q) {
			return i
		}
	}
	return -1
}

func (p *Pager) jumpToMatch(from, dir int) {
	if idx := p.findMatch(from, dir); idx >= 0 {
		p.Offset = idx
		p.clampOffset()
	}
}

func (p *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.WinWidth = msg.Width
		p.WinHeight = msg.Height
		p.SearchInput.SetWidth(msg.Width - 2)
		p.clampOffset()
		return p, nil

	case tea.KeyMsg:
		keyStr := msg.String()

		if p.Searching {
			switch keyStr {
			case "enter":
				p.Searching = false
				p.Query = p.SearchInput.Value()
				p.SearchInput.Blur()
				p.jumpToMatch(p.Offset, +1)
			case "esc", "ctrl+c":
				p.Searching = false
				p.SearchInput.SetValue("")
				p.SearchInput.Blur()
			default:
				var cmd tea.Cmd
				p.SearchInput, cmd = p.SearchInput.Update(msg)
				return p, cmd
			}
			return p, nil
		}

		switch keyStr {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		case "j", "down":
			p.Offset++
		case "k", "up":
			p.Offset--
		case " ", "pgdown", "f", "ctrl+d":
			p.Offset += p.viewportHeight()
		case "b", "pgup", "ctrl+u":
			p.Offset -= p.viewportHeight()
		case "g", "home":
			p.Offset = 0
		case "G", "end":
			p.Offset = p.maxOffset()
		case "/":
			p.Searching = true
			p.SearchInput.SetValue("")
			return p, p.SearchInput.Focus()
		case "n":
			p.jumpToMatch(p.Offset+1, +1)
		case "N":
			p.jumpToMatch(p.Offset-1, -1)
		}
		p.clampOffset()
	}
	return p, nil
}

func (p *Pager) View() tea.View {
	height := p.viewportHeight()
	end := p.Offset + height
	if end > len(p.Lines) {
		end = len(p.Lines)
	}

	var b strings.Builder
	for i := p.Offset; i < end; i++ {
		b.WriteString(p.Lines[i])
		b.WriteByte('\n')
	}
	for i := end - p.Offset; i < height; i++ {
		b.WriteByte('\n')
	}
	b.WriteString(p.footerLine())

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (p *Pager) footerLine() string {
	if p.Searching {
		return p.SearchInput.View()
	}

	pos := "all"
	if max := p.maxOffset(); max > 0 {
		switch {
		case p.Offset == 0:
			pos = "top"
		case p.Offset >= max:
			pos = "bot"
		default:
			pos = percent(p.Offset, max)
		}
	}

	left := p.Title
	if p.Query != "" {
		left += "  /" + p.Query
	}
	hint := "q quit  / search  " + pos

	gap := p.WinWidth - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + hint
	return lipgloss.NewStyle().Reverse(true).Render(bar)
}

func percent(n, d int) string {
	p := n * 100 / d
	if p > 99 {
		p = 99
	}
	digits := []byte{'0' + byte(p/10), '0' + byte(p%10), '%'}
	if p < 10 {
		digits = digits[1:]
	}
	return string(digits)
}

// RunPager starts the Bubble Tea pager over the given content. Extra
// ProgramOptions (e.g., custom IO) can be provided to mirror tea.NewProgram.
func RunPager(title, content string, opts ...tea.ProgramOption) error {
	p := NewPager(title, content)
	prog := tea.NewProgram(p, opts...)
	_, err := prog.Run()
	return err
}
