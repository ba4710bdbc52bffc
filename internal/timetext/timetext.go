// Package timetext renders the time strings shown on event cards: the
// fixed-width clock range and the human countdown ("Starts in 2d 3h").
// All functions are pure; the reference instant for countdowns is an
// explicit parameter so tests and batch renders stay deterministic.
package timetext

import (
	"fmt"
	"strings"
	"time"
)

// Unit lengths for countdown decomposition. The year is a fixed 365.25 days
// and the month is exactly a twelfth of that, not calendar arithmetic.
const (
	countdownDay   = 24 * time.Hour
	countdownWeek  = 7 * countdownDay
	countdownYear  = time.Duration(365.25 * 24 * float64(time.Hour))
	countdownMonth = countdownYear / 12
)

// countdownUnits is the greedy largest-first decomposition order.
var countdownUnits = []struct {
	length time.Duration
	label  string
}{
	{countdownYear, "y"},
	{countdownMonth, "mo"},
	{countdownWeek, "w"},
	{countdownDay, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

// FormatRange renders an interval as "HH:MM - HH:MM", zero-padded 24-hour
// clock. An event ending at exactly midnight of the following day renders
// its end as 00:00, which doubles as the "runs to end of day" display.
// Inverted intervals (end before start) are a caller contract violation and
// are not validated here.
func FormatRange(start, end time.Time) string {
	return start.Format("15:04") + " - " + end.Format("15:04")
}

// Countdown returns a human-readable description of how far away start is
// from now: "Started" once start is not in the future, "Starts in < 1m"
// under a minute out, and otherwise the non-zero units of a greedy
// largest-first breakdown, e.g. "Starts in 1d 1h 1m". Seconds are dropped.
func Countdown(start, now time.Time) string {
	if !start.After(now) {
		return "Started"
	}

	remaining := start.Sub(now)
	parts := make([]string, 0, len(countdownUnits))
	for _, unit := range countdownUnits {
		if n := remaining / unit.length; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, unit.label))
			remaining -= n * unit.length
		}
	}

	if len(parts) == 0 {
		return "Starts in < 1m"
	}
	return "Starts in " + strings.Join(parts, " ")
}
