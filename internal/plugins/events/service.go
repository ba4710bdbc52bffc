package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/sanitize"
)

// maxWindowDays bounds a single occurrence query so clients cannot request
// years of expansion at once.
const maxWindowDays = 400

// EventService handles business logic for calendar events.
type EventService interface {
	Create(ctx context.Context, familyID, creatorID string, input EventInput) (*Event, error)
	Get(ctx context.Context, familyID, id string) (*Event, error)
	Update(ctx context.Context, familyID, id string, input EventInput) (*Event, error)
	Delete(ctx context.Context, familyID, id string) error

	// ListViews expands events into occurrences within the window and
	// returns render-ready views with resolved colors and countdown text.
	ListViews(ctx context.Context, familyID string, w Window, now time.Time) ([]EventView, error)

	// ExportICS serializes the family's full calendar as iCalendar data.
	ExportICS(ctx context.Context, familyID, familyName string) (string, error)
}

// eventService implements EventService.
type eventService struct {
	repo    EventRepository
	members MemberDirectory
}

// NewEventService creates a new event service.
func NewEventService(repo EventRepository, members MemberDirectory) EventService {
	return &eventService{repo: repo, members: members}
}

// Create validates and stores a new event with its participants.
func (s *eventService) Create(ctx context.Context, familyID, creatorID string, input EventInput) (*Event, error) {
	evt, err := s.buildEvent(ctx, familyID, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	evt.ID = uuid.NewString()
	evt.CreatedBy = creatorID
	evt.CreatedAt = now
	evt.UpdatedAt = now

	if err := s.repo.Create(ctx, evt); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating event: %w", err))
	}

	slog.Info("event created",
		slog.String("family_id", familyID),
		slog.String("event_id", evt.ID),
		slog.Bool("recurring", evt.Recurring()),
	)

	return evt, nil
}

// Get retrieves an event scoped to a family.
func (s *eventService) Get(ctx context.Context, familyID, id string) (*Event, error) {
	return s.repo.FindByID(ctx, familyID, id)
}

// Update validates and stores changes to an event, replacing participants.
func (s *eventService) Update(ctx context.Context, familyID, id string, input EventInput) (*Event, error) {
	existing, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	evt, err := s.buildEvent(ctx, familyID, input)
	if err != nil {
		return nil, err
	}

	evt.ID = existing.ID
	evt.CreatedBy = existing.CreatedBy
	evt.CreatedAt = existing.CreatedAt
	evt.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, evt); err != nil {
		return nil, err
	}
	return evt, nil
}

// Delete removes an event.
func (s *eventService) Delete(ctx context.Context, familyID, id string) error {
	return s.repo.Delete(ctx, familyID, id)
}

// ListViews expands the window's events into occurrences and renders them.
func (s *eventService) ListViews(ctx context.Context, familyID string, w Window, now time.Time) ([]EventView, error) {
	if !w.To.After(w.From) {
		return nil, apperror.NewBadRequest("window end must be after window start")
	}
	if w.To.Sub(w.From) > maxWindowDays*24*time.Hour {
		return nil, apperror.NewBadRequest(fmt.Sprintf("window may span at most %d days", maxWindowDays))
	}

	events, err := s.repo.ListForWindow(ctx, familyID, w)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing events: %w", err))
	}

	occs, err := ExpandOccurrences(events, w)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("expanding occurrences: %w", err))
	}

	members, err := s.memberMap(ctx, familyID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("resolving members: %w", err))
	}

	return NewEventViews(occs, members, now), nil
}

// ExportICS serializes all events as an iCalendar feed.
func (s *eventService) ExportICS(ctx context.Context, familyID, familyName string) (string, error) {
	events, err := s.repo.ListAll(ctx, familyID)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("listing events for export: %w", err))
	}
	return BuildICS(familyName, events), nil
}

// buildEvent validates shared input and produces an Event without identity
// fields set.
func (s *eventService) buildEvent(ctx context.Context, familyID string, input EventInput) (*Event, error) {
	title := sanitize.Text(input.Title)
	if title == "" {
		return nil, apperror.NewBadRequest("event title is required")
	}
	if len(title) > 200 {
		return nil, apperror.NewBadRequest("event title must be at most 200 characters")
	}

	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, apperror.NewValidation("start and end times are required")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, apperror.NewValidation("event end must be after its start")
	}

	if err := ValidateRRule(input.RRule); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	// Participants must belong to this family.
	if len(input.ParticipantIDs) > 0 {
		members, err := s.memberMap(ctx, familyID)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("resolving members: %w", err))
		}
		for _, id := range input.ParticipantIDs {
			if _, ok := members[id]; !ok {
				return nil, apperror.NewValidation("participant is not a member of this family")
			}
		}
	}

	evt := &Event{
		FamilyID:       familyID,
		Title:          title,
		StartTime:      input.StartTime.UTC(),
		EndTime:        input.EndTime.UTC(),
		AllDay:         input.AllDay,
		ParticipantIDs: input.ParticipantIDs,
	}

	if desc := strings.TrimSpace(sanitize.HTML(input.Description)); desc != "" {
		evt.Description = &desc
	}
	if loc := sanitize.Text(input.Location); loc != "" {
		evt.Location = &loc
	}
	if input.RRule != "" {
		rule := input.RRule
		evt.RRule = &rule
	}

	return evt, nil
}

// memberMap loads the family's member directory keyed by ID.
func (s *eventService) memberMap(ctx context.Context, familyID string) (map[string]MemberInfo, error) {
	list, err := s.members.ListFamilyMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}
	m := make(map[string]MemberInfo, len(list))
	for _, info := range list {
		m[info.ID] = info
	}
	return m, nil
}
