// Package display draws RenderNode trees as styled terminal text. It owns
// everything the render core treats as external: converting markup to ANSI,
// measuring block widths, and drawing table grids, panel borders, tree
// guides, and proportional bars.
package display

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hrwtech/rich-tables/internal/markup"
	"github.com/hrwtech/rich-tables/internal/render"
)

const (
	cellGap  = 2  // spaces between table columns
	barWidth = 18 // cells a proportional bar occupies
)

// Options controls block rendering.
type Options struct {
	Width   int
	NoColor bool
}

// Metrics measures intrinsic block widths. It implements render.Sizer for
// the row-fill packer.
type Metrics struct{}

// BlockWidth returns the number of terminal cells the block occupies when
// rendered without wrapping.
func (m Metrics) BlockWidth(n render.Node) int {
	switch t := n.(type) {
	case nil:
		return 0
	case *render.Text:
		return markup.Measure(t.Markup)
	case *render.Bar:
		return barWidth
	case *render.Table:
		widths := m.columnWidths(t)
		total := 0
		for _, w := range widths {
			total += w
		}
		if len(widths) > 1 {
			total += cellGap * (len(widths) - 1)
		}
		return total
	case *render.Panel:
		inner := m.BlockWidth(t.Child)
		if t.Title != "" {
			if tw := markup.Measure(t.Title) + 2; tw > inner {
				inner = tw
			}
		}
		if t.Border {
			return inner + 4
		}
		return inner + 2
	case *render.Tree:
		max := markup.Measure(t.Title)
		for _, c := range t.Children {
			if w := m.BlockWidth(c) + 4; w > max {
				max = w
			}
		}
		return max
	case *render.Row:
		total := 0
		for _, c := range t.Children {
			total += m.BlockWidth(c)
		}
		if len(t.Children) > 1 {
			total += len(t.Children) - 1
		}
		return total
	case *render.Group:
		max := 0
		for _, c := range t.Children {
			if w := m.BlockWidth(c); w > max {
				max = w
			}
		}
		return max
	}
	return 0
}

func (m Metrics) columnWidths(t *render.Table) []int {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for i, h := range t.Headers {
		if w := markup.Measure(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := m.BlockWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Render draws a block tree into a newline-joined string.
func Render(n render.Node, opts Options) string {
	r := renderer{opts: opts}
	return strings.Join(r.lines(n), "\n")
}

type renderer struct {
	opts    Options
	metrics Metrics
}

func (r renderer) styled(s string) string {
	if r.opts.NoColor {
		return markup.Strip(s)
	}
	return markup.Render(s)
}

func (r renderer) lines(n render.Node) []string {
	switch t := n.(type) {
	case nil:
		return nil
	case *render.Text:
		return r.textLines(t)
	case *render.Bar:
		return []string{r.barLine(t)}
	case *render.Table:
		return r.tableLines(t)
	case *render.Panel:
		return r.panelLines(t)
	case *render.Tree:
		return r.treeLines(t)
	case *render.Row:
		return r.rowLines(t.Children, true)
	case *render.Group:
		var out []string
		for _, c := range t.Children {
			out = append(out, r.lines(c)...)
		}
		return out
	}
	return nil
}

func (r renderer) textLines(t *render.Text) []string {
	if t.Markup == "" {
		return nil
	}
	raw := strings.Split(t.Markup, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = r.styled(line)
	}
	return out
}

func (r renderer) barLine(b *render.Bar) string {
	filled := int(b.Ratio()*float64(barWidth) + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	fill := strings.Repeat("█", filled)
	rest := strings.Repeat("╌", barWidth-filled)
	if r.opts.NoColor {
		return fill + rest
	}
	fillStyle := lipgloss.NewStyle()
	if b.Color != "" {
		fillStyle = fillStyle.Foreground(lipgloss.Color(b.Color))
	}
	return fillStyle.Render(fill) + lipgloss.NewStyle().Faint(true).Render(rest)
}

// padTo pads a styled line with spaces up to width cells.
func padTo(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return line + strings.Repeat(" ", width-w)
}

func (r renderer) tableLines(t *render.Table) []string {
	widths := r.metrics.columnWidths(t)
	if len(widths) == 0 {
		return nil
	}
	sep := strings.Repeat(" ", cellGap)
	var out []string

	if len(t.Headers) > 0 {
		cells := make([]string, len(widths))
		for i := range widths {
			header := ""
			if i < len(t.Headers) {
				header = t.Headers[i]
			}
			style := "b"
			if t.HeaderColor != "" {
				style = "b " + t.HeaderColor
			}
			cells[i] = padTo(r.styled(markup.Wrap(header, style)), widths[i])
		}
		out = append(out, strings.TrimRight(strings.Join(cells, sep), " "))

		total := 0
		for i, w := range widths {
			total += w
			if i > 0 {
				total += cellGap
			}
		}
		rule := strings.Repeat("─", total)
		if !r.opts.NoColor {
			rule = lipgloss.NewStyle().Faint(true).Render(rule)
		}
		out = append(out, rule)
	}

	for _, row := range t.Rows {
		out = append(out, r.gridRow(row, widths, sep)...)
	}

	if t.Caption != "" {
		out = append(out, r.styled(markup.Wrap(t.Caption, "i dim")))
	}
	return out
}

// gridRow renders one table row, padding every cell to its column width and
// vertically centering shorter cells against the tallest one.
func (r renderer) gridRow(row []render.Node, widths []int, sep string) []string {
	cells := make([][]string, len(widths))
	height := 1
	for i := range widths {
		if i < len(row) {
			cells[i] = r.lines(row[i])
		}
		if len(cells[i]) > height {
			height = len(cells[i])
		}
	}
	out := make([]string, height)
	for line := 0; line < height; line++ {
		parts := make([]string, len(widths))
		for i := range widths {
			top := (height - len(cells[i])) / 2
			idx := line - top
			content := ""
			if idx >= 0 && idx < len(cells[i]) {
				content = cells[i][idx]
			}
			parts[i] = padTo(content, widths[i])
		}
		out[line] = strings.TrimRight(strings.Join(parts, sep), " ")
	}
	return out
}

func (r renderer) borderStyle(color string) lipgloss.Style {
	st := lipgloss.NewStyle()
	if r.opts.NoColor {
		return st
	}
	if color == "" {
		return st.Faint(true)
	}
	return st.Foreground(lipgloss.Color(color))
}

func (r renderer) panelLines(p *render.Panel) []string {
	inner := r.lines(p.Child)
	if !p.Border {
		var out []string
		if p.Title != "" {
			out = append(out, r.styled(p.Title))
		}
		for _, line := range inner {
			out = append(out, " "+line)
		}
		return out
	}

	width := 0
	for _, line := range inner {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}
	title := ""
	if p.Title != "" {
		title = r.styled(p.Title)
		if tw := lipgloss.Width(title) + 2; tw > width {
			width = tw
		}
	}

	border := r.borderStyle(p.BorderColor)
	var out []string
	if title == "" {
		out = append(out, border.Render("╭"+strings.Repeat("─", width+2)+"╮"))
	} else {
		rest := width - lipgloss.Width(title)
		out = append(out, border.Render("╭─ ")+title+border.Render(" "+strings.Repeat("─", rest)+"╮"))
	}
	for _, line := range inner {
		out = append(out, border.Render("│ ")+padTo(line, width)+border.Render(" │"))
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", width+2)+"╯"))
	return out
}

func (r renderer) treeLines(t *render.Tree) []string {
	guide := r.borderStyle(t.GuideColor)
	var out []string
	if t.Title != "" {
		out = append(out, r.styled(t.Title))
	}
	for i, c := range t.Children {
		lines := r.lines(c)
		last := i == len(t.Children)-1
		for j, line := range lines {
			switch {
			case j == 0 && last:
				out = append(out, guide.Render("└── ")+line)
			case j == 0:
				out = append(out, guide.Render("├── ")+line)
			case last:
				out = append(out, "    "+line)
			default:
				out = append(out, guide.Render("│")+"   "+line)
			}
		}
	}
	return out
}

// rowLines renders blocks side by side. With center set, shorter blocks are
// vertically centered against the tallest.
func (r renderer) rowLines(blocks []render.Node, center bool) []string {
	cols := make([][]string, len(blocks))
	widths := make([]int, len(blocks))
	height := 0
	for i, b := range blocks {
		cols[i] = r.lines(b)
		for _, line := range cols[i] {
			if w := lipgloss.Width(line); w > widths[i] {
				widths[i] = w
			}
		}
		if len(cols[i]) > height {
			height = len(cols[i])
		}
	}
	out := make([]string, height)
	for line := 0; line < height; line++ {
		parts := make([]string, len(blocks))
		for i := range blocks {
			top := 0
			if center {
				top = (height - len(cols[i])) / 2
			}
			idx := line - top
			content := ""
			if idx >= 0 && idx < len(cols[i]) {
				content = cols[i][idx]
			}
			parts[i] = padTo(content, widths[i])
		}
		out[line] = strings.TrimRight(strings.Join(parts, " "), " ")
	}
	return out
}
