package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/palette"
)

// mockEventRepository implements EventRepository with function fields.
type mockEventRepository struct {
	createFunc        func(ctx context.Context, evt *Event) error
	findByIDFunc      func(ctx context.Context, familyID, id string) (*Event, error)
	listForWindowFunc func(ctx context.Context, familyID string, w Window) ([]Event, error)
	listAllFunc       func(ctx context.Context, familyID string) ([]Event, error)
	updateFunc        func(ctx context.Context, evt *Event) error
	deleteFunc        func(ctx context.Context, familyID, id string) error
}

func (m *mockEventRepository) Create(ctx context.Context, evt *Event) error {
	return m.createFunc(ctx, evt)
}
func (m *mockEventRepository) FindByID(ctx context.Context, familyID, id string) (*Event, error) {
	return m.findByIDFunc(ctx, familyID, id)
}
func (m *mockEventRepository) ListForWindow(ctx context.Context, familyID string, w Window) ([]Event, error) {
	return m.listForWindowFunc(ctx, familyID, w)
}
func (m *mockEventRepository) ListAll(ctx context.Context, familyID string) ([]Event, error) {
	return m.listAllFunc(ctx, familyID)
}
func (m *mockEventRepository) Update(ctx context.Context, evt *Event) error {
	return m.updateFunc(ctx, evt)
}
func (m *mockEventRepository) Delete(ctx context.Context, familyID, id string) error {
	return m.deleteFunc(ctx, familyID, id)
}

// mockDirectory stubs the cross-plugin member lookup.
type mockDirectory struct {
	members []MemberInfo
	err     error
}

func (m *mockDirectory) ListFamilyMembers(ctx context.Context, familyID string) ([]MemberInfo, error) {
	return m.members, m.err
}

func assertAppError(t *testing.T, err error, wantCode int) {
	t.Helper()

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Errorf("expected status %d, got %d (%s)", wantCode, appErr.Code, appErr.Message)
	}
}

func validInput() EventInput {
	return EventInput{
		Title:     "Dentist",
		StartTime: utc(5, 9, 0),
		EndTime:   utc(5, 10, 0),
	}
}

func TestCreateEvent_Success(t *testing.T) {
	var created *Event
	repo := &mockEventRepository{
		createFunc: func(ctx context.Context, evt *Event) error {
			created = evt
			return nil
		},
	}
	dir := &mockDirectory{members: []MemberInfo{{ID: "mem-1", Name: "Anna", Color: "#E63946"}}}
	service := NewEventService(repo, dir)

	input := validInput()
	input.ParticipantIDs = []string{"mem-1"}
	input.Description = "<p>Checkup</p><script>alert(1)</script>"

	evt, err := service.Create(context.Background(), "fam-1", "user-1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("event was not persisted")
	}
	if evt.ID == "" {
		t.Error("expected generated event ID")
	}
	if evt.Description == nil || strings.Contains(*evt.Description, "script") {
		t.Errorf("description not sanitized: %v", evt.Description)
	}
	if evt.CreatedBy != "user-1" {
		t.Errorf("wrong creator: %q", evt.CreatedBy)
	}
}

func TestCreateEvent_EndBeforeStart(t *testing.T) {
	service := NewEventService(&mockEventRepository{}, &mockDirectory{})

	input := validInput()
	input.EndTime = input.StartTime.Add(-time.Hour)

	_, err := service.Create(context.Background(), "fam-1", "user-1", input)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreateEvent_EmptyTitle(t *testing.T) {
	service := NewEventService(&mockEventRepository{}, &mockDirectory{})

	input := validInput()
	input.Title = "  "

	_, err := service.Create(context.Background(), "fam-1", "user-1", input)
	assertAppError(t, err, http.StatusBadRequest)
}

func TestCreateEvent_InvalidRule(t *testing.T) {
	service := NewEventService(&mockEventRepository{}, &mockDirectory{})

	input := validInput()
	input.RRule = "FREQ=SOMETIMES"

	_, err := service.Create(context.Background(), "fam-1", "user-1", input)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreateEvent_UnknownParticipantRejected(t *testing.T) {
	dir := &mockDirectory{members: []MemberInfo{{ID: "mem-1"}}}
	service := NewEventService(&mockEventRepository{}, dir)

	input := validInput()
	input.ParticipantIDs = []string{"mem-1", "stranger"}

	_, err := service.Create(context.Background(), "fam-1", "user-1", input)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestListViews_ExpandsAndRenders(t *testing.T) {
	repo := &mockEventRepository{
		listForWindowFunc: func(ctx context.Context, familyID string, w Window) ([]Event, error) {
			return []Event{
				{
					ID:             "evt-1",
					Title:          "Swim practice",
					StartTime:      utc(5, 16, 0),
					EndTime:        utc(5, 17, 0),
					ParticipantIDs: []string{"mem-1"},
				},
				{
					ID:             "evt-2",
					Title:          "Movie night",
					StartTime:      utc(6, 19, 0),
					EndTime:        utc(6, 21, 0),
					ParticipantIDs: []string{"mem-1", "mem-2"},
				},
			}, nil
		},
	}
	dir := &mockDirectory{members: []MemberInfo{
		{ID: "mem-1", Name: "Anna", Color: "#E63946"},
		{ID: "mem-2", Name: "Ben", Color: "#2A9D8F"},
	}}
	service := NewEventService(repo, dir)

	views, err := service.ListViews(context.Background(), "fam-1",
		Window{From: utc(1, 0, 0), To: utc(10, 0, 0)}, utc(5, 12, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].DisplayColor != "#E63946" {
		t.Errorf("solo event color = %q", views[0].DisplayColor)
	}
	if views[1].DisplayColor != palette.FamilyColor {
		t.Errorf("shared event color = %q, want family color", views[1].DisplayColor)
	}
}

func TestListViews_RejectsInvertedWindow(t *testing.T) {
	service := NewEventService(&mockEventRepository{}, &mockDirectory{})

	_, err := service.ListViews(context.Background(), "fam-1",
		Window{From: utc(10, 0, 0), To: utc(5, 0, 0)}, utc(1, 0, 0))
	assertAppError(t, err, http.StatusBadRequest)
}

func TestListViews_RejectsOversizedWindow(t *testing.T) {
	service := NewEventService(&mockEventRepository{}, &mockDirectory{})

	from := utc(1, 0, 0)
	_, err := service.ListViews(context.Background(), "fam-1",
		Window{From: from, To: from.Add(500 * 24 * time.Hour)}, from)
	assertAppError(t, err, http.StatusBadRequest)
}

func TestExportICS_ContainsEvents(t *testing.T) {
	repo := &mockEventRepository{
		listAllFunc: func(ctx context.Context, familyID string) ([]Event, error) {
			rule := "FREQ=WEEKLY"
			loc := "Pool"
			return []Event{
				{
					ID:        "evt-1",
					Title:     "Swim practice",
					Location:  &loc,
					StartTime: utc(5, 16, 0),
					EndTime:   utc(5, 17, 0),
					RRule:     &rule,
					UpdatedAt: utc(1, 0, 0),
				},
			}, nil
		},
	}
	service := NewEventService(repo, &mockDirectory{})

	data, err := service.ExportICS(context.Background(), "fam-1", "The Smiths")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"SUMMARY:Swim practice",
		"LOCATION:Pool",
		"RRULE:FREQ=WEEKLY",
		"END:VCALENDAR",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("export missing %q", want)
		}
	}
}
