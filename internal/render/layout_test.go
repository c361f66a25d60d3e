package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSizer gives every block a constant width.
type fixedSizer struct{ w int }

func (s fixedSizer) BlockWidth(Node) int { return s.w }

func tableWithRows(n int) *Table {
	t := &Table{}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []Node{&Text{Markup: "x"}})
	}
	return t
}

func TestRowFill(t *testing.T) {
	blocks := []Node{&Text{Markup: "a"}, &Text{Markup: "b"}, &Text{Markup: "c"}}

	t.Run("everything fits on one row", func(t *testing.T) {
		rows := RowFill(blocks, 100, fixedSizer{w: 10})
		require.Len(t, rows, 1)
		row, ok := rows[0].(*Row)
		require.True(t, ok)
		assert.Len(t, row.Children, 3)
	})

	t.Run("overflow starts a new row", func(t *testing.T) {
		rows := RowFill(blocks, 25, fixedSizer{w: 10})
		require.Len(t, rows, 2)
		first, ok := rows[0].(*Row)
		require.True(t, ok)
		assert.Len(t, first.Children, 2)
		// Single trailing block passes through unwrapped.
		_, isText := rows[1].(*Text)
		assert.True(t, isText)
	})

	t.Run("oversized block gets its own row", func(t *testing.T) {
		rows := RowFill(blocks, 5, fixedSizer{w: 10})
		assert.Len(t, rows, 3)
	})

	t.Run("nil sizer passes through", func(t *testing.T) {
		rows := RowFill(blocks, 10, nil)
		assert.Equal(t, blocks, rows)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, RowFill(nil, 80, fixedSizer{w: 1}))
	})
}

func TestBalanceAssignsToLighterColumn(t *testing.T) {
	big := tableWithRows(20)
	small1 := tableWithRows(2)
	small2 := tableWithRows(2)

	left, right, standalone := Balance([]Node{big, small1, small2})
	assert.Empty(t, standalone)
	// First block ties at 0/0 and goes left; the small ones then stack right.
	require.Len(t, left, 1)
	assert.Same(t, Node(big), left[0])
	assert.Len(t, right, 2)
}

func TestBalanceTieFavorsLeft(t *testing.T) {
	a := tableWithRows(3)
	b := tableWithRows(3)
	left, right, _ := Balance([]Node{a, b})
	require.Len(t, left, 1)
	require.Len(t, right, 1)
	assert.Same(t, Node(a), left[0])
	assert.Same(t, Node(b), right[0])
}

func TestBalanceSeparatesUnweightedBlocks(t *testing.T) {
	text := &Text{Markup: "loose"}
	tbl := tableWithRows(1)
	left, right, standalone := Balance([]Node{text, tbl})
	assert.Len(t, left, 1)
	assert.Empty(t, right)
	require.Len(t, standalone, 1)
	assert.Same(t, Node(text), standalone[0])
}

func TestBicolumn(t *testing.T) {
	t.Run("single block returned as-is", func(t *testing.T) {
		tbl := tableWithRows(2)
		assert.Same(t, Node(tbl), Bicolumn([]Node{tbl}))
	})

	t.Run("two weighted blocks become two columns", func(t *testing.T) {
		out := Bicolumn([]Node{tableWithRows(2), tableWithRows(3)})
		row, ok := out.(*Row)
		require.True(t, ok)
		require.Len(t, row.Children, 2)
		for _, col := range row.Children {
			_, isGroup := col.(*Group)
			assert.True(t, isGroup)
		}
	})

	t.Run("standalone blocks stack beneath the columns", func(t *testing.T) {
		loose := &Text{Markup: "x"}
		out := Bicolumn([]Node{tableWithRows(2), tableWithRows(2), loose})
		group, ok := out.(*Group)
		require.True(t, ok)
		require.Len(t, group.Children, 2)
		_, isRow := group.Children[0].(*Row)
		assert.True(t, isRow)
		assert.Same(t, Node(loose), group.Children[1])
	})
}

func TestRowCount(t *testing.T) {
	tests := []struct {
		name   string
		node   Node
		want   int
		wantOK bool
	}{
		{name: "text has none", node: &Text{Markup: "x"}, wantOK: false},
		{name: "bar has none", node: &Bar{Value: 1, Max: 2}, wantOK: false},
		{name: "headerless table", node: tableWithRows(4), want: 4, wantOK: true},
		{name: "header adds a row", node: &Table{Headers: []string{"a"}, Rows: [][]Node{{&Text{}}}}, want: 2, wantOK: true},
		{name: "tree counts title", node: &Tree{Title: "t", Children: []Node{&Text{}, &Text{}}}, want: 3, wantOK: true},
		{name: "panel delegates to child", node: &Panel{Child: tableWithRows(5)}, want: 5, wantOK: true},
		{name: "group sums weighted children", node: &Group{Children: []Node{tableWithRows(2), tableWithRows(3), &Text{}}}, want: 5, wantOK: true},
		{name: "group of unweighted children", node: &Group{Children: []Node{&Text{}, &Bar{}}}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.node.RowCount()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBarRatioClamps(t *testing.T) {
	assert.Equal(t, 0.5, (&Bar{Value: 1, Max: 2}).Ratio())
	assert.Equal(t, 1.0, (&Bar{Value: 5, Max: 2}).Ratio())
	assert.Equal(t, 0.0, (&Bar{Value: 1, Max: 0}).Ratio())
	assert.Equal(t, 0.0, (&Bar{Value: -1, Max: 2}).Ratio())
}
