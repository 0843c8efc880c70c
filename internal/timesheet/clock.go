// Package timesheet implements the BECTU hours and earnings rules: per-day
// calculation from recorded clock times and a rate card, and weekly
// aggregation. Everything here is pure; malformed input degrades to zeroed
// output instead of returning errors.
package timesheet

import (
	"strconv"
	"strings"
)

const dateLayout = "2006-01-02"

// parseClock converts a wall-clock "HH:MM" string to minutes since midnight.
// The bool reports whether s was a well-formed 24-hour time; empty and
// malformed values both come back false, so callers treat them as not
// recorded.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// hoursBetween returns the span from one clock reading to the next in hours.
// The result is negative when to precedes from; callers decide whether that
// means invalid input or a span crossing midnight.
func hoursBetween(fromMin, toMin int) float64 {
	return float64(toMin-fromMin) / 60.0
}

// orOne substitutes the neutral multiplier for unset or non-positive
// configuration values.
func orOne(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}
