package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/keyxmakerx/hearth/internal/apperror"
)

// EventRepository defines persistence operations for events and their
// participant links.
type EventRepository interface {
	Create(ctx context.Context, evt *Event) error
	FindByID(ctx context.Context, familyID, id string) (*Event, error)
	ListForWindow(ctx context.Context, familyID string, w Window) ([]Event, error)
	ListAll(ctx context.Context, familyID string) ([]Event, error)
	Update(ctx context.Context, evt *Event) error
	Delete(ctx context.Context, familyID, id string) error
}

// eventRepository is the MariaDB implementation of EventRepository.
type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new MariaDB-backed event repository.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// eventCols is the column list for event queries.
const eventCols = `id, family_id, title, description, location,
       start_time, end_time, all_day, rrule, created_by, created_at, updated_at`

// Create inserts an event and its participant links in one transaction.
func (r *eventRepository) Create(ctx context.Context, evt *Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create event tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO events (id, family_id, title, description, location,
		        start_time, end_time, all_day, rrule, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.ID, evt.FamilyID, evt.Title, evt.Description, evt.Location,
		evt.StartTime, evt.EndTime, evt.AllDay, evt.RRule,
		evt.CreatedBy, evt.CreatedAt, evt.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	if err := insertParticipants(ctx, tx, evt.ID, evt.ParticipantIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// FindByID returns a single event with its participants, scoped to the family.
func (r *eventRepository) FindByID(ctx context.Context, familyID, id string) (*Event, error) {
	evt := &Event{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+eventCols+` FROM events WHERE family_id = ? AND id = ?`,
		familyID, id,
	).Scan(
		&evt.ID, &evt.FamilyID, &evt.Title, &evt.Description, &evt.Location,
		&evt.StartTime, &evt.EndTime, &evt.AllDay, &evt.RRule,
		&evt.CreatedBy, &evt.CreatedAt, &evt.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying event by id: %w", err)
	}

	if err := r.attachParticipants(ctx, []*Event{evt}); err != nil {
		return nil, err
	}
	return evt, nil
}

// ListForWindow returns events that can produce occurrences within the
// window: non-recurring events overlapping it, plus every recurring event
// that started before the window ends. Rule matching happens in the service.
func (r *eventRepository) ListForWindow(ctx context.Context, familyID string, w Window) ([]Event, error) {
	query := `SELECT ` + eventCols + ` FROM events
	          WHERE family_id = ?
	            AND ((rrule IS NULL AND start_time < ? AND end_time > ?)
	                 OR (rrule IS NOT NULL AND start_time < ?))
	          ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, familyID, w.To, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("listing events for window: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachParticipantsSlice(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListAll returns every event of a family ordered by start time. Used for
// full-calendar export.
func (r *eventRepository) ListAll(ctx context.Context, familyID string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventCols+` FROM events WHERE family_id = ? ORDER BY start_time`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing all events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachParticipantsSlice(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update modifies an event and replaces its participant links in one
// transaction (delete + bulk insert).
func (r *eventRepository) Update(ctx context.Context, evt *Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning update event tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, location = ?,
		        start_time = ?, end_time = ?, all_day = ?, rrule = ?, updated_at = NOW()
		 WHERE family_id = ? AND id = ?`,
		evt.Title, evt.Description, evt.Location,
		evt.StartTime, evt.EndTime, evt.AllDay, evt.RRule,
		evt.FamilyID, evt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// The row may exist unchanged; verify before reporting not-found.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM events WHERE family_id = ? AND id = ?)`,
			evt.FamilyID, evt.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checking event existence: %w", err)
		}
		if !exists {
			return apperror.NewNotFound("event not found")
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = ?`, evt.ID,
	); err != nil {
		return fmt.Errorf("clearing participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, evt.ID, evt.ParticipantIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an event. FK CASCADE removes participant links.
func (r *eventRepository) Delete(ctx context.Context, familyID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE family_id = ? AND id = ?`, familyID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("event not found")
	}
	return nil
}

// insertParticipants bulk-inserts participant links within a transaction.
func insertParticipants(ctx context.Context, tx *sql.Tx, eventID string, memberIDs []string) error {
	for _, memberID := range memberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_participants (event_id, member_id) VALUES (?, ?)`,
			eventID, memberID,
		); err != nil {
			return fmt.Errorf("inserting participant: %w", err)
		}
	}
	return nil
}

// attachParticipants loads participant member IDs for the given events in a
// single query and assigns them in place.
func (r *eventRepository) attachParticipants(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]any, len(events))
	placeholders := make([]string, len(events))
	byID := make(map[string]*Event, len(events))
	for i, evt := range events {
		ids[i] = evt.ID
		placeholders[i] = "?"
		byID[evt.ID] = evt
	}

	query := `SELECT event_id, member_id FROM event_participants
	          WHERE event_id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("loading participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, memberID string
		if err := rows.Scan(&eventID, &memberID); err != nil {
			return fmt.Errorf("scanning participant row: %w", err)
		}
		if evt, ok := byID[eventID]; ok {
			evt.ParticipantIDs = append(evt.ParticipantIDs, memberID)
		}
	}
	return rows.Err()
}

// attachParticipantsSlice adapts attachParticipants to a value slice.
func (r *eventRepository) attachParticipantsSlice(ctx context.Context, events []Event) error {
	ptrs := make([]*Event, len(events))
	for i := range events {
		ptrs[i] = &events[i]
	}
	return r.attachParticipants(ctx, ptrs)
}

// scanEvents reads event rows into a slice.
func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(
			&evt.ID, &evt.FamilyID, &evt.Title, &evt.Description, &evt.Location,
			&evt.StartTime, &evt.EndTime, &evt.AllDay, &evt.RRule,
			&evt.CreatedBy, &evt.CreatedAt, &evt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}
