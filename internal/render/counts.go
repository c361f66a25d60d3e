package render

import (
	"math"
	"strconv"
	"strings"
)

// numericValue coerces count-like cells to float64. Strings holding numbers
// count as numeric; everything else is zero.
func numericValue(v Value) (float64, bool) {
	switch v.Kind() {
	case KindNumber:
		return v.Num(), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// countKeyFor picks the count field of a record list: the literal key
// "count" when its value is numeric, else the first key (excluding "total")
// whose value in the first record is numeric.
func countKeyFor(first Value) (string, bool) {
	if v, ok := first.Get("count"); ok {
		if _, numeric := numericValue(v); numeric {
			return "count", true
		}
	}
	for _, k := range first.Keys() {
		if k == "total" {
			continue
		}
		if v, ok := first.Get(k); ok {
			if _, numeric := numericValue(v); numeric {
				return k, true
			}
		}
	}
	return "", false
}

func durationKey(key string) bool {
	return strings.Contains(key, "duration")
}

// countsTable renders a list of count-like records as a table with one
// proportional bar per row. The denominator is the per-row "total" field
// when present, else the maximum count across all rows.
func (r *Renderer) countsTable(items []Value, depth int) Node {
	first := items[0]
	countKey, ok := countKeyFor(first)
	if !ok {
		return nil
	}

	counts := make([]float64, len(items))
	intDisplay := true
	totalMax := 0.0
	sum := 0.0
	for i, item := range items {
		c := 0.0
		if v, found := item.Get(countKey); found {
			c, _ = numericValue(v)
		}
		counts[i] = c
		sum += c
		if c > totalMax {
			totalMax = c
		}
		if c != math.Trunc(c) {
			intDisplay = false
		}
	}

	formatCount := func(f float64) string {
		if intDisplay {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	var headers []string
	for _, k := range first.Keys() {
		if k == countKey || k == "total" {
			continue
		}
		headers = append(headers, k)
	}

	table := &Table{Headers: append(append([]string{}, headers...), countKey, "")}
	maxKey := FormatNumber(totalMax)
	for i, item := range items {
		c := counts[i]
		row := make([]Node, 0, len(headers)+2)
		for _, h := range headers {
			v, found := item.Get(h)
			if !found || v.IsNull() {
				row = append(row, &Text{})
				continue
			}
			row = append(row, r.renderValue(v, h, depth+1))
		}

		denom := totalMax
		var countCell string
		if tv, found := item.Get("total"); found {
			if t, numeric := numericValue(tv); numeric && t > 0 {
				denom = t
				countCell = formatCount(c) + "/" + formatCount(t)
			}
		}
		if countCell == "" {
			if durationKey(countKey) {
				countCell = DurationHuman(c)
			} else {
				countCell = formatCount(c)
			}
		}

		ratio := 0.0
		if denom > 0 {
			ratio = c / denom
		}
		row = append(row,
			&Text{Markup: countCell},
			&Bar{Value: c, Max: denom, Color: ProgressBarColor(maxKey, ratio)},
		)
		table.Rows = append(table.Rows, row)
	}

	if countKey == "duration" || countKey == "total_duration" {
		table.Caption = "Total " + strings.TrimSpace(DurationHuman(sum))
	}
	return table
}
