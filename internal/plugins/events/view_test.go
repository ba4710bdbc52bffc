package events

import (
	"testing"

	"github.com/keyxmakerx/hearth/internal/palette"
)

func testMembers() map[string]MemberInfo {
	return map[string]MemberInfo{
		"mem-1": {ID: "mem-1", Name: "Anna", Color: "#E63946"},
		"mem-2": {ID: "mem-2", Name: "Ben", Color: "#2A9D8F"},
	}
}

func TestNewEventView_SingleParticipantUsesTheirColor(t *testing.T) {
	evt := &Event{
		ID:             "evt-1",
		Title:          "Swim practice",
		ParticipantIDs: []string{"mem-1"},
	}
	occ := Occurrence{Event: evt, Start: utc(5, 16, 0), End: utc(5, 17, 0)}

	view := NewEventView(occ, testMembers(), utc(5, 12, 0))

	if view.DisplayColor != "#E63946" {
		t.Errorf("single participant should show their color, got %q", view.DisplayColor)
	}
	if view.TextColor != "#FFFFFF" {
		t.Errorf("dark background needs white text, got %q", view.TextColor)
	}
	if len(view.Participants) != 1 || view.Participants[0].Name != "Anna" {
		t.Errorf("participants wrong: %+v", view.Participants)
	}
}

func TestNewEventView_MultipleParticipantsUseFamilyColor(t *testing.T) {
	evt := &Event{
		ID:             "evt-1",
		Title:          "Movie night",
		ParticipantIDs: []string{"mem-1", "mem-2"},
	}
	occ := Occurrence{Event: evt, Start: utc(5, 19, 0), End: utc(5, 21, 0)}

	view := NewEventView(occ, testMembers(), utc(5, 12, 0))

	if view.DisplayColor != palette.FamilyColor {
		t.Errorf("shared event should show family color %q, got %q", palette.FamilyColor, view.DisplayColor)
	}
}

func TestNewEventView_NoParticipantsUseFamilyColor(t *testing.T) {
	evt := &Event{ID: "evt-1", Title: "Holiday"}
	occ := Occurrence{Event: evt, Start: utc(5, 0, 0), End: utc(6, 0, 0)}

	view := NewEventView(occ, testMembers(), utc(5, 12, 0))

	if view.DisplayColor != palette.FamilyColor {
		t.Errorf("participant-less event should show family color, got %q", view.DisplayColor)
	}
}

func TestNewEventView_SkipsDeletedMembers(t *testing.T) {
	evt := &Event{
		ID:             "evt-1",
		Title:          "Swim practice",
		ParticipantIDs: []string{"mem-1", "ghost"},
	}
	occ := Occurrence{Event: evt, Start: utc(5, 16, 0), End: utc(5, 17, 0)}

	view := NewEventView(occ, testMembers(), utc(5, 12, 0))

	// Only one resolvable participant remains, so their color wins.
	if len(view.Participants) != 1 {
		t.Fatalf("expected 1 resolved participant, got %d", len(view.Participants))
	}
	if view.DisplayColor != "#E63946" {
		t.Errorf("unresolvable IDs must not count toward the shared-color rule, got %q", view.DisplayColor)
	}
}

func TestNewEventView_FormatsTimeRangeAndCountdown(t *testing.T) {
	evt := &Event{ID: "evt-1", Title: "Dinner", ParticipantIDs: []string{"mem-2"}}
	occ := Occurrence{Event: evt, Start: utc(5, 18, 0), End: utc(5, 19, 30)}

	view := NewEventView(occ, testMembers(), utc(5, 16, 0))

	if view.TimeRange != "18:00 - 19:30" {
		t.Errorf("time range = %q", view.TimeRange)
	}
	if view.Countdown != "Starts in 2h" {
		t.Errorf("countdown = %q", view.Countdown)
	}
}

func TestNewEventView_StartedEvent(t *testing.T) {
	evt := &Event{ID: "evt-1", Title: "Dinner"}
	occ := Occurrence{Event: evt, Start: utc(5, 18, 0), End: utc(5, 19, 30)}

	view := NewEventView(occ, testMembers(), utc(5, 18, 30))

	if view.Countdown != "Started" {
		t.Errorf("countdown = %q, want Started", view.Countdown)
	}
}

func TestNewEventView_MidnightEnd(t *testing.T) {
	evt := &Event{ID: "evt-1", Title: "Party"}
	occ := Occurrence{Event: evt, Start: utc(5, 20, 0), End: utc(6, 0, 0)}

	view := NewEventView(occ, testMembers(), utc(5, 12, 0))

	if view.TimeRange != "20:00 - 00:00" {
		t.Errorf("time range = %q, want 20:00 - 00:00", view.TimeRange)
	}
}
