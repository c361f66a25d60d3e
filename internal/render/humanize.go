package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DurationHuman renders a duration in seconds as "[Nd ]H:MM:SS", right
// aligned in a fixed 12-cell field so duration columns line up.
func DurationHuman(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	days := int(d.Hours()) / 24
	rem := d - time.Duration(days)*24*time.Hour
	h := int(rem.Hours())
	m := int(rem.Minutes()) % 60
	s := int(rem.Seconds()) % 60
	text := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	if days > 0 {
		text = fmt.Sprintf("%dd %s", days, text)
	}
	return fmt.Sprintf("%12s", text)
}

// RelativeParts breaks a signed offset in seconds into day/hour/minute/second
// components, most significant first, skipping zero units. Each part keeps
// the sign of the offset.
func RelativeParts(seconds int) []string {
	abs := seconds
	if abs < 0 {
		abs = -abs
	}
	sign := 1
	if seconds < 0 {
		sign = -1
	}
	units := []struct {
		amount int
		suffix string
	}{
		{abs / 86400, "d"},
		{abs % 86400 / 3600, "h"},
		{abs % 3600 / 60, "m"},
		{abs % 60, "s"},
	}
	var parts []string
	for _, u := range units {
		if u.amount == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%3d%s", sign*u.amount, u.suffix))
	}
	return parts
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z",
	"20060102T150405Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// ParseTimestamp accepts epoch numbers and the common ISO-ish layouts the
// input data carries. Fractional seconds are dropped.
func ParseTimestamp(v Value) (time.Time, error) {
	switch v.Kind() {
	case KindNumber:
		return time.Unix(int64(v.Num()), 0).UTC(), nil
	case KindString:
		s := strings.Trim(strings.TrimSpace(v.Str()), "'")
		if i := strings.IndexByte(s, '.'); i > 0 {
			if end := i + 1 + countDigits(s[i+1:]); end > i+1 {
				s = s[:i] + s[end:]
			}
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return time.Unix(int64(f), 0).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v.Str())
	default:
		return time.Time{}, fmt.Errorf("cannot parse %s as timestamp", v.Kind())
	}
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// TimeHuman renders a timestamp as a colored relative offset followed by the
// absolute time: red offsets lie in the past, green in the future. acc
// controls how many offset units are shown.
func TimeHuman(v Value, acc int) string {
	t, err := ParseTimestamp(v)
	if err != nil {
		return v.String()
	}
	return timeHumanAt(t, time.Now(), acc)
}

func timeHumanAt(t, now time.Time, acc int) string {
	diff := int(math.Round(t.Sub(now).Seconds()))
	parts := RelativeParts(diff)
	if acc < len(parts) {
		parts = parts[:acc]
	}
	style := "b green"
	if diff < 0 {
		style = "b red"
	}
	layout := "15:04:05"
	if diff > 86000 || diff < -86000 {
		layout = "2006-01-02"
	}
	return "[" + style + "]" + strings.Join(parts, " ") + "[/] " + t.Format(layout)
}

// ClockTime renders an epoch-seconds value as HH:MM:SS.
func ClockTime(v Value) string {
	t, err := ParseTimestamp(v)
	if err != nil {
		return v.String()
	}
	return t.Format("15:04:05")
}
