package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/hearth/internal/apperror"
)

// MemberRepository defines the data access contract for member profiles.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, familyID, id string) (*Member, error)
	ListByFamily(ctx context.Context, familyID string) ([]Member, error)
	ListColors(ctx context.Context, familyID string) ([]*string, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, familyID, id string) error
}

// memberRepository implements MemberRepository with MariaDB queries.
type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new repository backed by the given DB pool.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

// memberCols is the column list shared by member queries.
const memberCols = `id, family_id, display_name, user_id, birthdate, color, created_at, updated_at`

// Create inserts a new member profile row.
func (r *memberRepository) Create(ctx context.Context, member *Member) error {
	query := `INSERT INTO members (id, family_id, display_name, user_id, birthdate, color, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.FamilyID, member.DisplayName, member.UserID,
		member.Birthdate, member.Color, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

// FindByID retrieves a member by ID, scoped to the family so one family
// cannot address another family's members.
func (r *memberRepository) FindByID(ctx context.Context, familyID, id string) (*Member, error) {
	m := &Member{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE family_id = ? AND id = ?`,
		familyID, id,
	).Scan(
		&m.ID, &m.FamilyID, &m.DisplayName, &m.UserID,
		&m.Birthdate, &m.Color, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying member by id: %w", err)
	}
	return m, nil
}

// ListByFamily returns all member profiles of a family ordered by name.
func (r *memberRepository) ListByFamily(ctx context.Context, familyID string) ([]Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE family_id = ? ORDER BY display_name`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(
			&m.ID, &m.FamilyID, &m.DisplayName, &m.UserID,
			&m.Birthdate, &m.Color, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListColors returns the colors currently assigned within a family. Used to
// pick the next free palette color for a new member.
func (r *memberRepository) ListColors(ctx context.Context, familyID string) ([]*string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT color FROM members WHERE family_id = ?`, familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing member colors: %w", err)
	}
	defer rows.Close()

	var colors []*string
	for rows.Next() {
		var c *string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning color row: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

// Update modifies an existing member profile.
func (r *memberRepository) Update(ctx context.Context, member *Member) error {
	query := `UPDATE members SET display_name = ?, user_id = ?, birthdate = ?, color = ?, updated_at = NOW()
	          WHERE family_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query,
		member.DisplayName, member.UserID, member.Birthdate, member.Color,
		member.FamilyID, member.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("member not found")
	}
	return nil
}

// Delete removes a member profile. FK CASCADE removes their event
// participations.
func (r *memberRepository) Delete(ctx context.Context, familyID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE family_id = ? AND id = ?`, familyID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("member not found")
	}
	return nil
}
