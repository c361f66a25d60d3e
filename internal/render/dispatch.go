package render

import (
	"math"
	"strings"

	"github.com/hrwtech/rich-tables/internal/markup"
)

// defaultMaxDepth bounds recursion so pathological nesting reports an error
// instead of risking the stack.
const defaultMaxDepth = 32

// Renderer turns arbitrary Values into RenderNode trees. It holds only
// read-only collaborators and is safe to reuse across render passes.
type Renderer struct {
	registry Registry
	sizer    Sizer
	width    int
	maxDepth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSizer supplies the block width measurer used for row-fill packing.
func WithSizer(s Sizer) Option {
	return func(r *Renderer) { r.sizer = s }
}

// WithWidth sets the available terminal width for packing.
func WithWidth(w int) Option {
	return func(r *Renderer) { r.width = w }
}

// WithMaxDepth overrides the recursion limit.
func WithMaxDepth(d int) Option {
	return func(r *Renderer) { r.maxDepth = d }
}

// New creates a Renderer. A nil registry disables field formatting.
func New(registry Registry, opts ...Option) *Renderer {
	r := &Renderer{registry: registry, maxDepth: defaultMaxDepth}
	if registry == nil {
		r.registry = emptyRegistry{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render classifies value by shape and produces its block tree. It is total:
// any input yields a node, degrading to string formatting when nothing more
// structured applies.
func (r *Renderer) Render(value Value, label string) Node {
	return r.renderValue(value, label, 0)
}

func (r *Renderer) renderValue(value Value, label string, depth int) Node {
	if depth > r.maxDepth {
		return &Text{Markup: "[b red]… nesting too deep …[/]"}
	}
	switch value.Kind() {
	case KindPrebuilt:
		return value.Node()
	case KindMap:
		return r.renderMap(value, label, depth)
	case KindList:
		return r.renderList(value, label, depth)
	default:
		return r.renderLeaf(value, label)
	}
}

// safeFormat invokes a field formatter with per-cell fault containment: a
// failing or panicking formatter degrades to the raw value.
func safeFormat(f Formatter, v Value) (n Node) {
	defer func() {
		if recover() != nil {
			n = nil
		}
	}()
	node, err := f(v)
	if err != nil {
		return nil
	}
	return node
}

func (r *Renderer) renderLeaf(value Value, label string) Node {
	if f, ok := r.registry.FormatterFor(label); ok {
		if node := safeFormat(f, value); node != nil {
			return node
		}
	}
	return &Text{Markup: Escape(value.String())}
}

// Escape neutralizes literal style-delimiter brackets in untrusted text.
// Strings that already carry markup pass through unchanged.
func Escape(s string) string {
	return markup.Escape(s)
}

// foldDiffFields rewrites a map carrying both "before" and "after" into one
// carrying a single "diff" entry holding the pair.
func foldDiffFields(m Value) Value {
	before, hasBefore := m.Get("before")
	after, hasAfter := m.Get("after")
	if !hasBefore || !hasAfter {
		return m
	}
	out := NewMap()
	for _, k := range m.Keys() {
		if k == "before" || k == "after" {
			continue
		}
		v, _ := m.Get(k)
		out.Set(k, v)
	}
	out.Set("diff", List(before, after))
	return out
}

func boldKey(key string) string {
	return "[b]" + Escape(key) + "[/]"
}

func scalarKind(k Kind) bool {
	switch k {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
	return false
}

// inlineInCell reports whether a map entry's rendering stays in the value
// cell even when composite. Lists of plain scalars read fine inside a cell;
// nested maps and record lists get hoisted to sibling panels instead.
func inlineInCell(content Value) bool {
	if content.Kind() != KindList {
		return false
	}
	for _, it := range content.Items() {
		if !scalarKind(it.Kind()) {
			return false
		}
	}
	return true
}

func (r *Renderer) renderMap(value Value, label string, depth int) Node {
	value = foldDiffFields(value)

	table := &Table{}
	var hoisted []Node
	for _, key := range value.Keys() {
		content, _ := value.Get(key)
		if content.IsNull() || (content.Kind() == KindList && content.Len() == 0) {
			continue
		}
		child := r.renderValue(content, key, depth+1)
		if child == nil || Empty(child) {
			continue
		}
		if leaf(child) || inlineInCell(content) {
			table.Rows = append(table.Rows, []Node{&Text{Markup: boldKey(key)}, child})
			continue
		}
		// Composite children become sibling panels instead of nesting inline.
		hoisted = append(hoisted, &Panel{
			Title:  Colorize(key),
			Border: true,
			Child:  child,
		})
	}

	var blocks []Node
	if len(table.Rows) > 0 {
		blocks = append(blocks, table)
	}
	blocks = append(blocks, hoisted...)
	if len(blocks) == 0 {
		return &Group{}
	}

	packed := RowFill(blocks, r.width, r.sizer)
	if len(packed) == 1 {
		return packed[0]
	}
	return &Group{Children: packed}
}

func allOfKind(items []Value, k Kind) bool {
	for _, it := range items {
		if it.Kind() != k {
			return false
		}
	}
	return true
}

func (r *Renderer) renderList(value Value, label string, depth int) Node {
	items := value.Items()
	switch {
	case len(items) == 0:
		return &Group{}
	case allOfKind(items, KindString):
		// String lists of any length colorize, so this outranks the
		// singleton unwrap.
		return r.renderStringList(items, label)
	case len(items) == 1:
		return r.renderValue(items[0], label, depth+1)
	case allOfKind(items, KindMap):
		return r.renderMapList(items, label, depth)
	case allOfKind(items, KindList):
		if table, ok := r.positionalTable(items, depth); ok {
			return r.listPanel(table, label)
		}
	}
	return r.listPanel(r.stackedRows(items, label, depth), label)
}

func (r *Renderer) renderStringList(items []Value, label string) Node {
	if f, ok := r.registry.FormatterFor(label); ok {
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.Str()
		}
		if node := safeFormat(f, String(strings.Join(parts, "\n"))); node != nil {
			return node
		}
	}
	tokens := make([]string, len(items))
	for i, it := range items {
		tokens[i] = Colorize(it.Str())
	}
	return &Text{Markup: strings.Join(tokens, " ")}
}

// scalarTypeTag distinguishes the scalar type families the counts heuristic
// cares about. Integers and floats count as different families.
func scalarTypeTag(v Value) (string, bool) {
	switch v.Kind() {
	case KindNumber:
		if v.Num() == math.Trunc(v.Num()) {
			return "int", true
		}
		return "float", true
	case KindString:
		return "str", true
	}
	return "", false
}

func countsLikeKey(k string) bool {
	return k == "count" ||
		strings.HasSuffix(k, "_count") ||
		strings.Contains(k, "count_") ||
		strings.HasSuffix(k, "_sum") ||
		strings.Contains(k, "duration")
}

// countsShaped applies the routing heuristic for count tables: a two-key
// union whose first record mixes at least two scalar type families, or any
// count-like key name.
func countsShaped(union []string, first Value) bool {
	for _, k := range union {
		if countsLikeKey(k) {
			return true
		}
	}
	if len(union) != 2 {
		return false
	}
	tags := map[string]bool{}
	for _, k := range first.Keys() {
		if v, ok := first.Get(k); ok {
			if tag, scalar := scalarTypeTag(v); scalar {
				tags[tag] = true
			}
		}
	}
	return len(tags) >= 2
}

func keyUnion(items []Value) []string {
	var union []string
	seen := map[string]bool{}
	for _, it := range items {
		for _, k := range it.Keys() {
			if !seen[k] {
				seen[k] = true
				union = append(union, k)
			}
		}
	}
	return union
}

// maxRecordSize is the combined cell-text length beyond which a record stops
// fitting a shared table row and renders as its own tree instead.
const maxRecordSize = 500

func recordSize(v Value) int {
	total := 0
	for _, k := range v.Keys() {
		if c, ok := v.Get(k); ok {
			total += len(c.String())
		}
	}
	return total
}

func (r *Renderer) renderMapList(items []Value, label string, depth int) Node {
	folded := make([]Value, len(items))
	for i, it := range items {
		folded[i] = foldDiffFields(it)
	}
	union := keyUnion(folded)

	if countsShaped(union, folded[0]) {
		if counts := r.countsTable(folded, depth); counts != nil {
			return r.listPanel(counts, label)
		}
	}

	var blocks []Node
	var run []Value
	flush := func() {
		if len(run) > 0 {
			blocks = append(blocks, r.unionTable(run, union, depth))
			run = nil
		}
	}
	for _, it := range folded {
		if recordSize(it) > maxRecordSize {
			flush()
			blocks = append(blocks, r.recordTree(it, depth))
			continue
		}
		run = append(run, it)
	}
	flush()

	if len(blocks) == 1 {
		return r.listPanel(blocks[0], label)
	}
	return r.listPanel(&Group{Children: blocks}, label)
}

func (r *Renderer) unionTable(items []Value, union []string, depth int) *Table {
	headers := make([]string, len(union))
	for i, k := range union {
		headers[i] = r.registry.HeaderFor(k)
	}
	table := &Table{Headers: headers}
	for _, it := range items {
		row := make([]Node, len(union))
		for i, k := range union {
			v, ok := it.Get(k)
			if !ok || v.IsNull() {
				row[i] = &Text{}
				continue
			}
			row[i] = r.renderValue(v, k, depth+1)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// recordTree renders one oversized record as a key-per-branch tree so long
// cell content gets full width instead of squeezing the shared table.
func (r *Renderer) recordTree(item Value, depth int) Node {
	tree := &Tree{}
	for _, k := range item.Keys() {
		v, ok := item.Get(k)
		if !ok || v.IsNull() {
			continue
		}
		child := r.renderValue(v, k, depth+1)
		if child == nil || Empty(child) {
			continue
		}
		if t, isText := child.(*Text); isText {
			tree.Children = append(tree.Children, &Text{Markup: boldKey(k) + ": " + t.Markup})
			continue
		}
		tree.Children = append(tree.Children, &Group{Children: []Node{
			&Text{Markup: boldKey(k) + ":"},
			child,
		}})
	}
	return &Panel{Border: true, Child: tree}
}

// positionalTable renders a list of lists as a grid when every column
// position holds one consistent element kind across all rows.
func (r *Renderer) positionalTable(items []Value, depth int) (Node, bool) {
	cols := 0
	for _, it := range items {
		if it.Len() > cols {
			cols = it.Len()
		}
	}
	if cols == 0 {
		return nil, false
	}
	for col := 0; col < cols; col++ {
		var kind Kind
		seen := false
		for _, it := range items {
			if col >= it.Len() {
				continue
			}
			k := it.Items()[col].Kind()
			if !seen {
				kind, seen = k, true
				continue
			}
			if k != kind {
				return nil, false
			}
		}
	}
	table := &Table{}
	for _, it := range items {
		row := make([]Node, cols)
		for col := 0; col < cols; col++ {
			if col >= it.Len() {
				row[col] = &Text{}
				continue
			}
			row[col] = r.renderValue(it.Items()[col], "", depth+1)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

// stackedRows renders heterogeneous list elements independently under the
// same label, one table row each.
func (r *Renderer) stackedRows(items []Value, label string, depth int) Node {
	table := &Table{}
	for _, it := range items {
		if it.IsNull() {
			continue
		}
		child := r.renderValue(it, label, depth+1)
		if child == nil || Empty(child) {
			continue
		}
		table.Rows = append(table.Rows, []Node{child})
	}
	return table
}

// listPanel styles a list-derived table with the label's color and wraps it
// in a panel: titled and bordered when the label is non-empty, plain
// otherwise.
func (r *Renderer) listPanel(child Node, label string) Node {
	color := ColorFor(label)
	colorTable := func(n Node) {
		if table, ok := n.(*Table); ok && table.HeaderColor == "" {
			table.HeaderColor = color
		}
	}
	colorTable(child)
	if group, ok := child.(*Group); ok {
		for _, c := range group.Children {
			colorTable(c)
		}
	}
	if label != "" {
		return &Panel{
			Title:       boldKey(label),
			Border:      true,
			BorderColor: color,
			Child:       child,
		}
	}
	return &Panel{Child: child}
}
