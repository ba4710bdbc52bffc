// Package events manages the family calendar: events with participants,
// recurrence expansion, and ICS export. Event times are stored in UTC;
// clients convert to the household timezone for display.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package events

import (
	"context"
	"time"
)

// Event represents a calendar entry. StartTime and EndTime are UTC instants;
// for all-day events they span [date 00:00, next day 00:00). RRule, when set,
// holds an iCalendar RRULE string ("FREQ=WEEKLY;BYDAY=MO") that expands the
// event into repeated occurrences.
type Event struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	RRule       *string   `json:"rrule,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// ParticipantIDs are the member profiles attached to this event.
	ParticipantIDs []string `json:"participant_ids"`
}

// Duration returns the event length.
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Recurring returns true if the event has a recurrence rule.
func (e *Event) Recurring() bool {
	return e.RRule != nil && *e.RRule != ""
}

// Occurrence is a concrete instance of an event within a query window.
// Non-recurring events produce exactly one occurrence; recurring events
// produce one per rule match.
type Occurrence struct {
	Event *Event    `json:"-"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// --- Cross-Plugin Interfaces ---

// MemberDirectory resolves member profiles for participant display. Avoids
// importing the members plugin's types directly. Implemented by
// MemberDirectoryAdapter.
type MemberDirectory interface {
	ListFamilyMembers(ctx context.Context, familyID string) ([]MemberInfo, error)
}

// MemberInfo is the minimal member data needed to render an event.
type MemberInfo struct {
	ID    string
	Name  string
	Color string
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateEventRequest holds the data for creating an event. Times are RFC 3339.
type CreateEventRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	AllDay         bool     `json:"all_day"`
	RRule          string   `json:"rrule"`
	ParticipantIDs []string `json:"participant_ids"`
}

// UpdateEventRequest holds the data for editing an event.
type UpdateEventRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	AllDay         bool     `json:"all_day"`
	RRule          string   `json:"rrule"`
	ParticipantIDs []string `json:"participant_ids"`
}

// --- Service Input DTOs ---

// EventInput is the validated input shared by create and update.
type EventInput struct {
	Title          string
	Description    string
	Location       string
	StartTime      time.Time
	EndTime        time.Time
	AllDay         bool
	RRule          string
	ParticipantIDs []string
}

// Window is the half-open time range [From, To) for occurrence queries.
type Window struct {
	From time.Time
	To   time.Time
}
