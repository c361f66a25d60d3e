package render

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Channel ranges keep generated colors visible against a dark background.
const (
	labelChanLo = 60
	labelChanHi = 200
	barChanLo   = 50
	barChanHi   = 180
)

// splitmix64 is the finalizer used to derive independent channel draws from
// a single label hash. Each call advances the state.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d4b6e4a32f8b7d
	return z ^ (z >> 31)
}

func seedFor(label string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return h.Sum64()
}

func drawChannel(state *uint64, lo, hi int) int {
	span := uint64(hi - lo + 1)
	return lo + int(splitmix64(state)%span)
}

// ColorFor deterministically assigns a hex color to a label. Identical
// labels always map to identical colors; there is no shared state, so it is
// safe to call from any context.
func ColorFor(label string) string {
	state := seedFor(label)
	r := drawChannel(&state, labelChanLo, labelChanHi)
	g := drawChannel(&state, labelChanLo, labelChanHi)
	b := drawChannel(&state, labelChanLo, labelChanHi)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ProgressBarColor derives a bar color from the denominator's string form,
// so every bar sharing a maximum shares a hue family, scaled by ratio so
// brighter bars sit closer to the maximum.
func ProgressBarColor(key string, ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	state := seedFor(key)
	norm := func() int {
		return int(math.Round(float64(drawChannel(&state, barChanLo, barChanHi)) * ratio))
	}
	return fmt.Sprintf("#%02X%02X%02X", norm(), norm(), norm())
}

// Colorize wraps text in a bold deterministic color keyed by the text
// itself. The color is derived from the raw text before escaping.
func Colorize(text string) string {
	return "[b " + ColorFor(text) + "]" + Escape(text) + "[/]"
}
