// Package limiter trims top-level record sets before rendering, so huge
// inputs can be previewed with --limit/--offset/--tail.
package limiter

import (
	"fmt"

	"github.com/hrwtech/rich-tables/internal/render"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply trims lists and maps to the configured window. Map entries keep
// insertion order; scalars pass through unchanged.
func (c Config) Apply(v render.Value) render.Value {
	if !c.IsActive() {
		return v
	}
	switch v.Kind() {
	case render.KindList:
		lo, hi := c.window(v.Len())
		return render.List(v.Items()[lo:hi]...)
	case render.KindMap:
		keys := v.Keys()
		lo, hi := c.window(len(keys))
		out := render.NewMap()
		for _, k := range keys[lo:hi] {
			val, _ := v.Get(k)
			out.Set(k, val)
		}
		return out
	default:
		return v
	}
}

func (c Config) window(length int) (int, int) {
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return start, length
	}
	start := c.Offset
	if start > length {
		start = length
	}
	end := length
	if c.Limit > 0 && start+c.Limit < length {
		end = start + c.Limit
	}
	if start > end {
		start = end
	}
	return start, end
}
