package timetext

import (
	"testing"
	"time"
)

// at builds an instant on a fixed reference date in UTC.
func at(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func TestFormatRange_SameDay(t *testing.T) {
	got := FormatRange(at(10, 9, 0), at(10, 17, 30))
	if got != "09:00 - 17:30" {
		t.Errorf("expected %q, got %q", "09:00 - 17:30", got)
	}
}

func TestFormatRange_ZeroPadded(t *testing.T) {
	got := FormatRange(at(10, 8, 5), at(10, 9, 7))
	if got != "08:05 - 09:07" {
		t.Errorf("expected %q, got %q", "08:05 - 09:07", got)
	}
}

func TestFormatRange_EndOfDayRendersMidnight(t *testing.T) {
	// 18:00 on day D through 00:00 on D+1 reads as "runs to end of day".
	got := FormatRange(at(10, 18, 0), at(11, 0, 0))
	if got != "18:00 - 00:00" {
		t.Errorf("expected %q, got %q", "18:00 - 00:00", got)
	}
}

func TestCountdown_PastReturnsStarted(t *testing.T) {
	now := at(10, 12, 0)
	tests := []time.Time{
		now.Add(-time.Second),
		now, // exactly now counts as started
		now.Add(-48 * time.Hour),
	}
	for _, start := range tests {
		if got := Countdown(start, now); got != "Started" {
			t.Errorf("Countdown(%v) = %q, expected Started", start, got)
		}
	}
}

func TestCountdown_UnderOneMinute(t *testing.T) {
	now := at(10, 12, 0)
	got := Countdown(now.Add(30*time.Second), now)
	if got != "Starts in < 1m" {
		t.Errorf("expected %q, got %q", "Starts in < 1m", got)
	}
}

func TestCountdown_Decomposition(t *testing.T) {
	now := at(10, 12, 0)
	tests := []struct {
		ahead time.Duration
		want  string
	}{
		{5 * time.Minute, "Starts in 5m"},
		{2 * time.Hour, "Starts in 2h"},
		{2*time.Hour + 15*time.Minute, "Starts in 2h 15m"},
		// 90061s = 1d 1h 1m 1s; the trailing second is dropped.
		{90061 * time.Second, "Starts in 1d 1h 1m"},
		{3 * countdownDay, "Starts in 3d"},
		{10 * countdownDay, "Starts in 1w 3d"},
		{countdownMonth, "Starts in 1mo"},
		{countdownYear, "Starts in 1y"},
		{countdownYear + countdownMonth + countdownWeek + countdownDay + time.Hour + time.Minute,
			"Starts in 1y 1mo 1w 1d 1h 1m"},
	}
	for _, tt := range tests {
		if got := Countdown(now.Add(tt.ahead), now); got != tt.want {
			t.Errorf("Countdown(+%v) = %q, expected %q", tt.ahead, got, tt.want)
		}
	}
}

// Zero units in the middle of the breakdown are omitted, not rendered as "0x".
func TestCountdown_SkipsZeroUnits(t *testing.T) {
	now := at(10, 12, 0)
	got := Countdown(now.Add(countdownDay+time.Minute), now)
	if got != "Starts in 1d 1m" {
		t.Errorf("expected %q, got %q", "Starts in 1d 1m", got)
	}
}

// The month is a fixed year/12 (730h30m), not a calendar month. 31 calendar
// days therefore decompose as one month plus the leftover, documenting the
// approximation rather than hiding it.
func TestCountdown_FixedLengthMonthApproximation(t *testing.T) {
	now := at(1, 0, 0)
	leftover := 31*countdownDay - countdownMonth // 13h30m
	want := "Starts in 1mo 13h 30m"
	if leftover != 13*time.Hour+30*time.Minute {
		t.Fatalf("unexpected leftover %v, test premise broken", leftover)
	}
	if got := Countdown(now.Add(31*countdownDay), now); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
