// Package timeutil formats the ISO timestamps exchanged with the gateway and
// parses the compact windows accepted by history filters.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WatermarkLayout is UTC ISO-8601 with millisecond precision, the layout the
// gateway writes history timestamps in. Values in this layout sort
// lexicographically.
const WatermarkLayout = "2006-01-02T15:04:05.000Z"

// Watermark renders t as a history watermark.
func Watermark(t time.Time) string {
	return t.UTC().Format(WatermarkLayout)
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse reads an ISO timestamp or date as sent by the gateway.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timeutil: unrecognised timestamp %q", s)
}

type unit struct {
	label string
	value time.Duration
}

var units = []unit{
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

var windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([wdhms])`)

// ParseWindow parses windows such as "1w", "3d" or "1d12h".
func ParseWindow(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("timeutil: empty window")
	}
	var total time.Duration
	for len(remaining) > 0 {
		m := windowPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		for _, u := range units {
			if u.label == m[2] {
				total += time.Duration(n) * u.value
			}
		}
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, nil
}

// Ago renders how long before now t was, using its largest unit only.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Second {
		return "just now"
	}
	for _, u := range units {
		if d >= u.value {
			return fmt.Sprintf("%d%s ago", d/u.value, u.label)
		}
	}
	return "just now"
}

// Display renders a gateway timestamp for people, falling back to the raw
// text when it does not parse.
func Display(ts string, now time.Time) string {
	t, err := Parse(ts)
	if err != nil {
		return ts
	}
	local := t.Local()
	return fmt.Sprintf("%s (%s)", local.Format("Mon 2 Jan 15:04"), Ago(t, now))
}
