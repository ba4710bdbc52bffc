package families

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/hearth/internal/apperror"
)

// FamilyRepository defines the data access contract for family operations.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type FamilyRepository interface {
	// Family CRUD
	Create(ctx context.Context, family *Family) error
	FindByID(ctx context.Context, id string) (*Family, error)
	FindBySlug(ctx context.Context, slug string) (*Family, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Family, int, error)
	Update(ctx context.Context, family *Family) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Membership
	AddMember(ctx context.Context, member *Membership) error
	RemoveMember(ctx context.Context, familyID, userID string) error
	FindMember(ctx context.Context, familyID, userID string) (*Membership, error)
	ListMembers(ctx context.Context, familyID string) ([]Membership, error)
	UpdateMemberRole(ctx context.Context, familyID, userID string, role Role) error

	// Invites
	CreateInvite(ctx context.Context, invite *Invite) error
	FindInviteByToken(ctx context.Context, token string) (*Invite, error)
	ListInvites(ctx context.Context, familyID string) ([]Invite, error)
	DeleteInvite(ctx context.Context, id string) error

	// AcceptInvite atomically adds the accepting user as a member and
	// deletes the invite row within a single transaction. Invites are
	// single-use so the delete must not be separable from the insert.
	AcceptInvite(ctx context.Context, invite *Invite, userID string) error
}

// familyRepository implements FamilyRepository with MariaDB queries.
type familyRepository struct {
	db *sql.DB
}

// NewFamilyRepository creates a new repository backed by the given DB pool.
func NewFamilyRepository(db *sql.DB) FamilyRepository {
	return &familyRepository{db: db}
}

// familyCols is the column list shared by single-family queries.
const familyCols = `id, name, slug, description, created_by, created_at, updated_at`

// --- Family CRUD ---

// Create inserts a new family row.
func (r *familyRepository) Create(ctx context.Context, family *Family) error {
	query := `INSERT INTO families (id, name, slug, description, created_by, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		family.ID, family.Name, family.Slug, family.Description,
		family.CreatedBy, family.CreatedAt, family.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting family: %w", err)
	}
	return nil
}

// FindByID retrieves a family by its UUID.
func (r *familyRepository) FindByID(ctx context.Context, id string) (*Family, error) {
	f := &Family{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+familyCols+` FROM families WHERE id = ?`, id,
	).Scan(
		&f.ID, &f.Name, &f.Slug, &f.Description,
		&f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("family not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying family by id: %w", err)
	}
	return f, nil
}

// FindBySlug retrieves a family by its URL slug.
func (r *familyRepository) FindBySlug(ctx context.Context, slug string) (*Family, error) {
	f := &Family{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+familyCols+` FROM families WHERE slug = ?`, slug,
	).Scan(
		&f.ID, &f.Name, &f.Slug, &f.Description,
		&f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("family not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying family by slug: %w", err)
	}
	return f, nil
}

// ListByUser returns families the user is a member of, ordered by most
// recently updated. Returns the families and total count for pagination.
func (r *familyRepository) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Family, int, error) {
	countQuery := `SELECT COUNT(*) FROM families f
	               INNER JOIN family_members fm ON fm.family_id = f.id
	               WHERE fm.user_id = ?`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting user families: %w", err)
	}

	query := `SELECT f.id, f.name, f.slug, f.description,
	                 f.created_by, f.created_at, f.updated_at
	          FROM families f
	          INNER JOIN family_members fm ON fm.family_id = f.id
	          WHERE fm.user_id = ?
	          ORDER BY f.updated_at DESC
	          LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, opts.PerPage, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing user families: %w", err)
	}
	defer rows.Close()

	var families []Family
	for rows.Next() {
		var f Family
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Slug, &f.Description,
			&f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning family row: %w", err)
		}
		families = append(families, f)
	}
	return families, total, rows.Err()
}

// Update modifies an existing family's name, slug, and description.
func (r *familyRepository) Update(ctx context.Context, family *Family) error {
	query := `UPDATE families SET name = ?, slug = ?, description = ?, updated_at = NOW()
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		family.Name, family.Slug, family.Description, family.ID,
	)
	if err != nil {
		return fmt.Errorf("updating family: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("family not found")
	}
	return nil
}

// Delete removes a family. FK CASCADE handles member, invite, member-profile,
// and event cleanup.
func (r *familyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM families WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting family: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("family not found")
	}
	return nil
}

// SlugExists returns true if a family with the given slug already exists.
func (r *familyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM families WHERE slug = ?)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking slug existence: %w", err)
	}
	return exists, nil
}

// --- Membership ---

// AddMember inserts a new family membership row.
func (r *familyRepository) AddMember(ctx context.Context, member *Membership) error {
	query := `INSERT INTO family_members (family_id, user_id, role, joined_at)
	          VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		member.FamilyID, member.UserID, member.Role.String(), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("adding family member: %w", err)
	}
	return nil
}

// RemoveMember deletes a family membership row.
func (r *familyRepository) RemoveMember(ctx context.Context, familyID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM family_members WHERE family_id = ? AND user_id = ?`,
		familyID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing family member: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("member not found")
	}
	return nil
}

// FindMember retrieves a user's membership with their display info.
func (r *familyRepository) FindMember(ctx context.Context, familyID, userID string) (*Membership, error) {
	query := `SELECT fm.family_id, fm.user_id, fm.role, fm.joined_at,
	                 u.display_name, u.email
	          FROM family_members fm
	          INNER JOIN users u ON u.id = fm.user_id
	          WHERE fm.family_id = ? AND fm.user_id = ?`

	m := &Membership{}
	var roleStr string
	err := r.db.QueryRowContext(ctx, query, familyID, userID).Scan(
		&m.FamilyID, &m.UserID, &roleStr, &m.JoinedAt,
		&m.DisplayName, &m.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding family member: %w", err)
	}
	m.Role = RoleFromString(roleStr)
	return m, nil
}

// ListMembers returns all members of a family with their display info.
func (r *familyRepository) ListMembers(ctx context.Context, familyID string) ([]Membership, error) {
	query := `SELECT fm.family_id, fm.user_id, fm.role, fm.joined_at,
	                 u.display_name, u.email
	          FROM family_members fm
	          INNER JOIN users u ON u.id = fm.user_id
	          WHERE fm.family_id = ?
	          ORDER BY FIELD(fm.role, 'owner', 'adult', 'child'), u.display_name`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("listing family members: %w", err)
	}
	defer rows.Close()

	var members []Membership
	for rows.Next() {
		var m Membership
		var roleStr string
		if err := rows.Scan(
			&m.FamilyID, &m.UserID, &roleStr, &m.JoinedAt,
			&m.DisplayName, &m.Email,
		); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		m.Role = RoleFromString(roleStr)
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateMemberRole changes a member's role within a family.
func (r *familyRepository) UpdateMemberRole(ctx context.Context, familyID, userID string, role Role) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE family_members SET role = ? WHERE family_id = ? AND user_id = ?`,
		role.String(), familyID, userID,
	)
	if err != nil {
		return fmt.Errorf("updating member role: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("member not found")
	}
	return nil
}

// --- Invites ---

// inviteCols is the column list shared by invite queries.
const inviteCols = `id, family_id, email, role, token, expires_at, created_by, created_at`

// CreateInvite inserts a new pending invite.
func (r *familyRepository) CreateInvite(ctx context.Context, invite *Invite) error {
	query := `INSERT INTO family_invites (id, family_id, email, role, token, expires_at, created_by, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		invite.ID, invite.FamilyID, invite.Email, invite.Role.String(),
		invite.Token, invite.ExpiresAt, invite.CreatedBy, invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating invite: %w", err)
	}
	return nil
}

// FindInviteByToken retrieves a pending invite by its token.
func (r *familyRepository) FindInviteByToken(ctx context.Context, token string) (*Invite, error) {
	i := &Invite{}
	var roleStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT `+inviteCols+` FROM family_invites WHERE token = ?`, token,
	).Scan(
		&i.ID, &i.FamilyID, &i.Email, &roleStr,
		&i.Token, &i.ExpiresAt, &i.CreatedBy, &i.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("invite not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding invite by token: %w", err)
	}
	i.Role = RoleFromString(roleStr)
	return i, nil
}

// ListInvites returns all pending invites for a family, newest first.
func (r *familyRepository) ListInvites(ctx context.Context, familyID string) ([]Invite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inviteCols+` FROM family_invites WHERE family_id = ? ORDER BY created_at DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing invites: %w", err)
	}
	defer rows.Close()

	var invites []Invite
	for rows.Next() {
		var i Invite
		var roleStr string
		if err := rows.Scan(
			&i.ID, &i.FamilyID, &i.Email, &roleStr,
			&i.Token, &i.ExpiresAt, &i.CreatedBy, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning invite row: %w", err)
		}
		i.Role = RoleFromString(roleStr)
		invites = append(invites, i)
	}
	return invites, rows.Err()
}

// DeleteInvite removes a pending invite.
func (r *familyRepository) DeleteInvite(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM family_invites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting invite: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("invite not found")
	}
	return nil
}

// AcceptInvite atomically adds the user as a member and consumes the invite.
func (r *familyRepository) AcceptInvite(ctx context.Context, invite *Invite, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning accept invite tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO family_members (family_id, user_id, role, joined_at) VALUES (?, ?, ?, NOW())`,
		invite.FamilyID, userID, invite.Role.String(),
	); err != nil {
		return fmt.Errorf("inserting member from invite: %w", err)
	}

	// Consume the invite: a second accept must fail with not-found.
	res, err := tx.ExecContext(ctx,
		`DELETE FROM family_invites WHERE id = ?`, invite.ID,
	)
	if err != nil {
		return fmt.Errorf("consuming invite: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("invite not found")
	}

	return tx.Commit()
}
