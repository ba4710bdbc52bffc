package events

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerEvent caps recurrence expansion so a malformed or
// extremely dense rule cannot blow up a window query.
const maxOccurrencesPerEvent = 1000

// ExpandOccurrences turns events into concrete occurrences within the
// half-open window [w.From, w.To). Non-recurring events yield one occurrence
// when they overlap the window; recurring events yield one per rule match,
// each preserving the original duration. The result is sorted by start time.
func ExpandOccurrences(events []Event, w Window) ([]Occurrence, error) {
	var out []Occurrence

	for i := range events {
		evt := &events[i]

		if !evt.Recurring() {
			if evt.StartTime.Before(w.To) && evt.EndTime.After(w.From) {
				out = append(out, Occurrence{Event: evt, Start: evt.StartTime, End: evt.EndTime})
			}
			continue
		}

		occ, err := expandRecurring(evt, w)
		if err != nil {
			return nil, fmt.Errorf("expanding event %s: %w", evt.ID, err)
		}
		out = append(out, occ...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].Event.Title < out[j].Event.Title
		}
		return out[i].Start.Before(out[j].Start)
	})

	return out, nil
}

// expandRecurring evaluates an event's RRULE against the window.
func expandRecurring(evt *Event, w Window) ([]Occurrence, error) {
	r, err := rrule.StrToRRule(*evt.RRule)
	if err != nil {
		return nil, fmt.Errorf("parsing rrule %q: %w", *evt.RRule, err)
	}
	r.DTStart(evt.StartTime)

	var set rrule.Set
	set.RRule(r)

	// Between is inclusive on both ends; trim the exact window end to keep
	// the half-open contract.
	starts := set.Between(w.From, w.To, true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := evt.Duration()
	var out []Occurrence
	for _, start := range starts {
		if !start.Before(w.To) {
			continue
		}
		if evt.AllDay {
			// All-day occurrences snap to [date 00:00, next day 00:00) UTC.
			date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
			out = append(out, Occurrence{Event: evt, Start: date, End: date.Add(24 * time.Hour)})
			continue
		}
		out = append(out, Occurrence{Event: evt, Start: start, End: start.Add(duration)})
	}
	return out, nil
}

// ValidateRRule checks that a recurrence rule string parses. Empty rules are
// valid (non-recurring).
func ValidateRRule(rule string) error {
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("invalid recurrence rule: %w", err)
	}
	return nil
}
