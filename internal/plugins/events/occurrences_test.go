package events

import (
	"testing"
	"time"
)

func utc(day, hour, min int) time.Time {
	return time.Date(2025, 3, day, hour, min, 0, 0, time.UTC)
}

func rulePtr(s string) *string { return &s }

func TestExpandOccurrences_NonRecurringInWindow(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Dentist", StartTime: utc(5, 9, 0), EndTime: utc(5, 10, 0)},
	}
	w := Window{From: utc(1, 0, 0), To: utc(10, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if !occs[0].Start.Equal(utc(5, 9, 0)) || !occs[0].End.Equal(utc(5, 10, 0)) {
		t.Errorf("occurrence times wrong: %v - %v", occs[0].Start, occs[0].End)
	}
}

func TestExpandOccurrences_NonRecurringOutsideWindow(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Past", StartTime: utc(1, 9, 0), EndTime: utc(1, 10, 0)},
		{ID: "b", Title: "Future", StartTime: utc(20, 9, 0), EndTime: utc(20, 10, 0)},
	}
	w := Window{From: utc(5, 0, 0), To: utc(10, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected no occurrences, got %d", len(occs))
	}
}

func TestExpandOccurrences_SpanningEventIncluded(t *testing.T) {
	// Starts before the window but still running inside it.
	events := []Event{
		{ID: "a", Title: "Trip", StartTime: utc(3, 0, 0), EndTime: utc(8, 0, 0)},
	}
	w := Window{From: utc(5, 0, 0), To: utc(10, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("spanning event must appear, got %d occurrences", len(occs))
	}
}

func TestExpandOccurrences_DailyRule(t *testing.T) {
	events := []Event{
		{
			ID:        "a",
			Title:     "Breakfast",
			StartTime: utc(3, 8, 0),
			EndTime:   utc(3, 8, 30),
			RRule:     rulePtr("FREQ=DAILY;COUNT=5"),
		},
	}
	w := Window{From: utc(1, 0, 0), To: utc(20, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occs))
	}
	for i, occ := range occs {
		wantStart := utc(3+i, 8, 0)
		if !occ.Start.Equal(wantStart) {
			t.Errorf("occurrence %d start = %v, want %v", i, occ.Start, wantStart)
		}
		if occ.End.Sub(occ.Start) != 30*time.Minute {
			t.Errorf("occurrence %d does not preserve duration: %v", i, occ.End.Sub(occ.Start))
		}
	}
}

func TestExpandOccurrences_RuleClippedToWindow(t *testing.T) {
	events := []Event{
		{
			ID:        "a",
			Title:     "Practice",
			StartTime: utc(1, 17, 0),
			EndTime:   utc(1, 18, 0),
			RRule:     rulePtr("FREQ=DAILY"),
		},
	}
	w := Window{From: utc(10, 0, 0), To: utc(13, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Matches on the 10th, 11th, and 12th; the 13th 17:00 is past w.To.
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences in window, got %d", len(occs))
	}
	if !occs[0].Start.Equal(utc(10, 17, 0)) {
		t.Errorf("first occurrence start = %v", occs[0].Start)
	}
}

func TestExpandOccurrences_AllDayRecurring(t *testing.T) {
	events := []Event{
		{
			ID:        "a",
			Title:     "Bin day",
			StartTime: utc(3, 0, 0),
			EndTime:   utc(4, 0, 0),
			AllDay:    true,
			RRule:     rulePtr("FREQ=WEEKLY;COUNT=2"),
		},
	}
	w := Window{From: utc(1, 0, 0), To: utc(20, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	for _, occ := range occs {
		if occ.Start.Hour() != 0 || occ.Start.Minute() != 0 {
			t.Errorf("all-day occurrence must start at midnight, got %v", occ.Start)
		}
		if occ.End.Sub(occ.Start) != 24*time.Hour {
			t.Errorf("all-day occurrence must span 24h, got %v", occ.End.Sub(occ.Start))
		}
	}
}

func TestExpandOccurrences_SortedByStart(t *testing.T) {
	events := []Event{
		{ID: "b", Title: "Later", StartTime: utc(7, 9, 0), EndTime: utc(7, 10, 0)},
		{ID: "a", Title: "Earlier", StartTime: utc(5, 9, 0), EndTime: utc(5, 10, 0)},
	}
	w := Window{From: utc(1, 0, 0), To: utc(10, 0, 0)}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	if occs[0].Event.ID != "a" || occs[1].Event.ID != "b" {
		t.Errorf("occurrences not sorted by start: %s, %s", occs[0].Event.ID, occs[1].Event.ID)
	}
}

func TestExpandOccurrences_InvalidRuleErrors(t *testing.T) {
	events := []Event{
		{
			ID:        "a",
			Title:     "Broken",
			StartTime: utc(3, 8, 0),
			EndTime:   utc(3, 9, 0),
			RRule:     rulePtr("FREQ=SOMETIMES"),
		},
	}
	w := Window{From: utc(1, 0, 0), To: utc(10, 0, 0)}

	if _, err := ExpandOccurrences(events, w); err == nil {
		t.Error("expected error for unparsable rule")
	}
}

func TestValidateRRule(t *testing.T) {
	if err := ValidateRRule(""); err != nil {
		t.Errorf("empty rule must be valid: %v", err)
	}
	if err := ValidateRRule("FREQ=WEEKLY;BYDAY=MO,WE"); err != nil {
		t.Errorf("valid rule rejected: %v", err)
	}
	if err := ValidateRRule("FREQ=SOMETIMES"); err == nil {
		t.Error("invalid rule accepted")
	}
}
