package render

import (
	"strings"
	"unicode"
)

// OpTag labels one aligned span of a text diff.
type OpTag uint8

const (
	OpEqual OpTag = iota
	OpInsert
	OpDelete
	OpReplace
)

func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "unknown"
}

// DiffOp carries the before/after spans of one alignment operation.
type DiffOp struct {
	Tag    OpTag
	Before string
	After  string
}

// diffJunk reports whether a character is ignorable as an alignment anchor.
// Whitespace and ASCII letters are too common to anchor on; shared runs of
// punctuation and digits are treated as meaningful instead.
func diffJunk(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// matcher aligns two rune sequences by recursively finding the longest
// matching contiguous block and partitioning around it. Auto-junk shortcuts
// are disabled; the junk predicate only stops junk characters from seeding
// or growing a match past non-junk boundaries.
type matcher struct {
	a, b  []rune
	b2j   map[rune][]int
	bjunk map[rune]bool
}

func newMatcher(a, b string) *matcher {
	m := &matcher{a: []rune(a), b: []rune(b)}
	m.b2j = make(map[rune][]int)
	m.bjunk = make(map[rune]bool)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	for r := range m.b2j {
		if diffJunk(r) {
			m.bjunk[r] = true
			delete(m.b2j, r)
		}
	}
	return m
}

type match struct {
	a, b, size int
}

func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) match {
	besti, bestj, bestsize := alo, blo, 0
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Extend the match to include equal non-junk characters on both sides,
	// then equal junk characters adjacent to the match.
	for besti > alo && bestj > blo && !m.bjunk[m.b[bestj-1]] && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		!m.bjunk[m.b[bestj+bestsize]] && m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}
	for besti > alo && bestj > blo && m.bjunk[m.b[bestj-1]] && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		m.bjunk[m.b[bestj+bestsize]] && m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}
	return match{besti, bestj, bestsize}
}

func (m *matcher) matchingBlocks() []match {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		mt := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if mt.size == 0 {
			continue
		}
		matched = append(matched, mt)
		if s.alo < mt.a && s.blo < mt.b {
			queue = append(queue, span{s.alo, mt.a, s.blo, mt.b})
		}
		if mt.a+mt.size < s.ahi && mt.b+mt.size < s.bhi {
			queue = append(queue, span{mt.a + mt.size, s.ahi, mt.b + mt.size, s.bhi})
		}
	}
	sortMatches(matched)

	// Collapse adjacent blocks.
	var out []match
	for _, mt := range matched {
		if n := len(out); n > 0 && out[n-1].a+out[n-1].size == mt.a && out[n-1].b+out[n-1].size == mt.b {
			out[n-1].size += mt.size
			continue
		}
		out = append(out, mt)
	}
	out = append(out, match{len(m.a), len(m.b), 0})
	return out
}

func sortMatches(ms []match) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && (ms[j].a < ms[j-1].a || (ms[j].a == ms[j-1].a && ms[j].b < ms[j-1].b)); j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

// DiffOps aligns before and after and returns the ordered list of
// operations covering both inputs end to end.
func DiffOps(before, after string) []DiffOp {
	m := newMatcher(before, after)
	var ops []DiffOp
	ai, bj := 0, 0
	for _, mt := range m.matchingBlocks() {
		switch {
		case ai < mt.a && bj < mt.b:
			ops = append(ops, DiffOp{OpReplace, string(m.a[ai:mt.a]), string(m.b[bj:mt.b])})
		case ai < mt.a:
			ops = append(ops, DiffOp{Tag: OpDelete, Before: string(m.a[ai:mt.a])})
		case bj < mt.b:
			ops = append(ops, DiffOp{Tag: OpInsert, After: string(m.b[bj:mt.b])})
		}
		if mt.size > 0 {
			eq := string(m.a[mt.a : mt.a+mt.size])
			ops = append(ops, DiffOp{Tag: OpEqual, Before: eq, After: eq})
		}
		ai, bj = mt.a+mt.size, mt.b+mt.size
	}
	return ops
}

func escapeDiffInput(s string) string {
	s = strings.ReplaceAll(s, "\\[", "[")
	return strings.ReplaceAll(s, "[", "\\[")
}

func isAllSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func formatNew(s string) string {
	if isAllSpace(s) {
		s = "[u green]" + s + "[/]"
	}
	return "[b green]" + s + "[/]"
}

func formatOld(s string) string {
	return "[s][b red]" + s + "[/][/]"
}

// MakeDiff renders a styled character diff of two strings: unchanged text
// dimmed, insertions green, deletions struck red. Fragments keep the order
// of the inputs.
func MakeDiff(before, after string) string {
	before = escapeDiffInput(before)
	after = escapeDiffInput(after)
	var b strings.Builder
	for _, op := range DiffOps(before, after) {
		switch op.Tag {
		case OpEqual:
			b.WriteString("[dim]" + op.Before + "[/]")
		case OpInsert:
			b.WriteString(formatNew(op.After))
		case OpDelete:
			b.WriteString(formatOld(op.Before))
		case OpReplace:
			b.WriteString(formatOld(op.Before))
			b.WriteString(formatNew(op.After))
		}
	}
	return b.String()
}
