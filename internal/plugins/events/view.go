package events

import (
	"time"

	"github.com/keyxmakerx/hearth/internal/palette"
	"github.com/keyxmakerx/hearth/internal/timetext"
)

// EventView is the render-ready shape of one occurrence: resolved colors,
// formatted time range, and countdown text. This is what wall displays and
// the mobile client consume directly.
type EventView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Recurring   bool      `json:"recurring"`

	// DisplayColor follows the shared-color policy: one participant shows
	// their color, two or more show the family color.
	DisplayColor string `json:"display_color"`

	// TextColor is black or white, whichever reads against DisplayColor.
	TextColor string `json:"text_color"`

	TimeRange string `json:"time_range"`
	Countdown string `json:"countdown"`

	Participants []ParticipantView `json:"participants"`
}

// ParticipantView is a member as shown on an event chip.
type ParticipantView struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
}

// NewEventView builds the view for one occurrence. The members map resolves
// participant IDs to profiles; unknown IDs (deleted members) are skipped.
// now anchors the countdown so batches render consistently.
func NewEventView(occ Occurrence, members map[string]MemberInfo, now time.Time) EventView {
	evt := occ.Event

	participants := make([]ParticipantView, 0, len(evt.ParticipantIDs))
	colors := make([]*string, 0, len(evt.ParticipantIDs))
	for _, id := range evt.ParticipantIDs {
		m, ok := members[id]
		if !ok {
			continue
		}
		participants = append(participants, ParticipantView{
			MemberID: m.ID,
			Name:     m.Name,
			Color:    m.Color,
		})
		c := m.Color
		colors = append(colors, &c)
	}

	displayColor := palette.EventColor(colors, palette.FamilyColor)

	return EventView{
		ID:           evt.ID,
		Title:        evt.Title,
		Description:  evt.Description,
		Location:     evt.Location,
		Start:        occ.Start,
		End:          occ.End,
		AllDay:       evt.AllDay,
		Recurring:    evt.Recurring(),
		DisplayColor: displayColor,
		TextColor:    palette.ContrastText(displayColor),
		TimeRange:    timetext.FormatRange(occ.Start, occ.End),
		Countdown:    timetext.Countdown(occ.Start, now),
		Participants: participants,
	}
}

// NewEventViews maps a batch of occurrences through NewEventView.
func NewEventViews(occs []Occurrence, members map[string]MemberInfo, now time.Time) []EventView {
	views := make([]EventView, 0, len(occs))
	for _, occ := range occs {
		views = append(views, NewEventView(occ, members, now))
	}
	return views
}
