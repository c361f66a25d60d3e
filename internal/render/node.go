package render

// Node is an in-memory description of a visual block prior to terminal
// output. The concrete variants form a closed set; rendering code pattern
// matches over them with a type switch.
type Node interface {
	// RowCount reports the vertical weight of the block for balanced
	// two-column packing. Blocks without a meaningful row count return
	// ok == false and are laid out standalone.
	RowCount() (rows int, ok bool)
}

// Text is a leaf block holding marked-up text.
type Text struct {
	Markup string
}

// Table is an ordered grid of rendered cells. Headers may be empty for
// unlabeled stacks; when present every row has len(Headers) cells.
type Table struct {
	Headers     []string
	HeaderColor string // hex color applied to header cells
	Rows        [][]Node
	Caption     string
}

// Tree is a titled list of child blocks drawn with guide lines.
type Tree struct {
	Title      string
	GuideColor string
	Children   []Node
}

// Panel wraps a child block, optionally with a border and title.
type Panel struct {
	Title       string
	Border      bool
	BorderColor string
	Child       Node
}

// Bar is a proportional horizontal bar.
type Bar struct {
	Value float64
	Max   float64
	Color string // hex
}

// Ratio returns the fill ratio of the bar, clamped to [0, 1].
func (b *Bar) Ratio() float64 {
	if b.Max <= 0 {
		return 0
	}
	r := b.Value / b.Max
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Row lays out children side by side, each vertically centered.
type Row struct {
	Children []Node
}

// Group stacks children vertically. An empty Group is the no-op block.
type Group struct {
	Children []Node
}

func (t *Text) RowCount() (int, bool) { return 0, false }

func (t *Table) RowCount() (int, bool) {
	n := len(t.Rows)
	if len(t.Headers) > 0 {
		n++
	}
	return n, true
}

func (t *Tree) RowCount() (int, bool) { return len(t.Children) + 1, true }

func (p *Panel) RowCount() (int, bool) {
	if p.Child == nil {
		return 0, false
	}
	return p.Child.RowCount()
}

func (b *Bar) RowCount() (int, bool) { return 0, false }

func (r *Row) RowCount() (int, bool) { return 0, false }

func (g *Group) RowCount() (int, bool) {
	total := 0
	any := false
	for _, c := range g.Children {
		if n, ok := c.RowCount(); ok {
			total += n
			any = true
		}
	}
	return total, any
}

// Empty reports whether the node renders nothing at all.
func Empty(n Node) bool {
	switch t := n.(type) {
	case nil:
		return true
	case *Text:
		return t.Markup == ""
	case *Group:
		for _, c := range t.Children {
			if !Empty(c) {
				return false
			}
		}
		return true
	case *Table:
		return len(t.Rows) == 0 && len(t.Headers) == 0
	case *Panel:
		return Empty(t.Child)
	}
	return false
}

// leaf reports whether a node renders as simple inline content that can sit
// inside a table cell, as opposed to a composite block that gets hoisted out
// as a sibling panel.
func leaf(n Node) bool {
	switch n.(type) {
	case *Text, *Bar, nil:
		return true
	}
	return false
}
