package render

// Sizer measures a block's intrinsic rendered width. Width measurement
// belongs to the display layer; the packer only consumes it.
type Sizer interface {
	BlockWidth(Node) int
}

// balanceOverhead approximates the border and padding rows a packed block
// contributes beyond its own row count.
const balanceOverhead = 6

// RowFill packs blocks into rows bounded by width. Blocks are appended to
// the current row while the running width sum stays below width; a block
// that would overflow starts a new row. Single-block rows pass through
// unwrapped.
func RowFill(blocks []Node, width int, sizer Sizer) []Node {
	if len(blocks) == 0 {
		return nil
	}
	if sizer == nil || width <= 0 {
		return blocks
	}
	var rows []Node
	var current []Node
	running := 0
	flush := func() {
		switch len(current) {
		case 0:
		case 1:
			rows = append(rows, current[0])
		default:
			rows = append(rows, &Row{Children: current})
		}
		current = nil
	}
	for _, b := range blocks {
		w := sizer.BlockWidth(b)
		if len(current) > 0 && running+w > width {
			flush()
			running = w
			current = []Node{b}
			continue
		}
		current = append(current, b)
		running += w
	}
	flush()
	return rows
}

// Balance assigns blocks with a measurable row count to two columns by
// running row-count totals: each block goes to the currently lighter column
// (ties favor left), adding its row count plus a fixed overhead. Blocks
// without a row count are returned standalone. The same assignment drives
// rendering; there is no separate positional pairing pass.
func Balance(blocks []Node) (left, right, standalone []Node) {
	var leftRows, rightRows int
	for _, b := range blocks {
		rc, ok := b.RowCount()
		if !ok {
			standalone = append(standalone, b)
			continue
		}
		if leftRows <= rightRows {
			left = append(left, b)
			leftRows += rc + balanceOverhead
		} else {
			right = append(right, b)
			rightRows += rc + balanceOverhead
		}
	}
	return left, right, standalone
}

// Bicolumn arranges blocks into the balanced two-column layout used for
// top-level multi-panel output. Standalone blocks stack beneath the columns.
func Bicolumn(blocks []Node) Node {
	left, right, standalone := Balance(blocks)
	if len(right) == 0 {
		// Not enough weighted blocks to split; keep the simple stack.
		all := append(append([]Node{}, left...), standalone...)
		if len(all) == 1 {
			return all[0]
		}
		return &Group{Children: all}
	}
	columns := &Row{Children: []Node{
		&Group{Children: left},
		&Group{Children: right},
	}}
	if len(standalone) == 0 {
		return columns
	}
	return &Group{Children: append([]Node{columns}, standalone...)}
}
