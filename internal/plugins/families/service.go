package families

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/sanitize"
)

// inviteTokenBytes is the number of random bytes in an invite token.
const inviteTokenBytes = 32

// maxSlugAttempts bounds the numeric-suffix search for a unique slug.
const maxSlugAttempts = 50

// FamilyService handles business logic for family operations.
// It owns slug generation, membership rules, and the invite lifecycle.
type FamilyService interface {
	// Family CRUD
	Create(ctx context.Context, userID string, input CreateFamilyInput) (*Family, error)
	GetByID(ctx context.Context, id string) (*Family, error)
	GetBySlug(ctx context.Context, slug string) (*Family, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]Family, int, error)
	Update(ctx context.Context, familyID string, input UpdateFamilyInput) (*Family, error)
	Delete(ctx context.Context, familyID string) error

	// Membership
	GetMember(ctx context.Context, familyID, userID string) (*Membership, error)
	ListMembers(ctx context.Context, familyID string) ([]Membership, error)
	RemoveMember(ctx context.Context, familyID, userID string) error
	UpdateMemberRole(ctx context.Context, familyID, userID string, role Role) error

	// Invites
	CreateInvite(ctx context.Context, familyID, creatorID, email string, role Role) (*Invite, error)
	AcceptInvite(ctx context.Context, token, userID string) (*Family, error)
	ListInvites(ctx context.Context, familyID string) ([]Invite, error)
	RevokeInvite(ctx context.Context, familyID, inviteID string) error
}

// familyService implements FamilyService.
type familyService struct {
	repo      FamilyRepository
	users     UserFinder
	profiles  ProfileCreator
	inviteTTL time.Duration
}

// NewFamilyService creates a new family service with the given dependencies.
func NewFamilyService(repo FamilyRepository, users UserFinder, profiles ProfileCreator, inviteTTL time.Duration) FamilyService {
	return &familyService{
		repo:      repo,
		users:     users,
		profiles:  profiles,
		inviteTTL: inviteTTL,
	}
}

// --- Family CRUD ---

// Create creates a new family and automatically adds the creator as Owner.
func (s *familyService) Create(ctx context.Context, userID string, input CreateFamilyInput) (*Family, error) {
	name := sanitize.Text(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequest("family name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewBadRequest("family name must be at most 100 characters")
	}

	desc := strings.TrimSpace(sanitize.HTML(input.Description))
	if len(desc) > 2000 {
		return nil, apperror.NewBadRequest("description must be at most 2000 characters")
	}

	slug, err := s.generateSlug(ctx, name)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generating slug: %w", err))
	}

	now := time.Now().UTC()
	var descPtr *string
	if desc != "" {
		descPtr = &desc
	}

	family := &Family{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: descPtr,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, family); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating family: %w", err))
	}

	// Auto-add the creator as Owner.
	member := &Membership{
		FamilyID: family.ID,
		UserID:   userID,
		Role:     RoleOwner,
		JoinedAt: now,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("adding owner member: %w", err))
	}

	slog.Info("family created",
		slog.String("family_id", family.ID),
		slog.String("slug", family.Slug),
		slog.String("user_id", userID),
	)

	return family, nil
}

// GetByID retrieves a family by ID.
func (s *familyService) GetByID(ctx context.Context, id string) (*Family, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug retrieves a family by its URL slug.
func (s *familyService) GetBySlug(ctx context.Context, slug string) (*Family, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// List returns families the user is a member of.
func (s *familyService) List(ctx context.Context, userID string, opts ListOptions) ([]Family, int, error) {
	if opts.PerPage < 1 || opts.PerPage > 100 {
		opts.PerPage = 24
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	return s.repo.ListByUser(ctx, userID, opts)
}

// Update modifies a family's name and description. The slug is regenerated
// only when the name changes, keeping existing URLs stable otherwise.
func (s *familyService) Update(ctx context.Context, familyID string, input UpdateFamilyInput) (*Family, error) {
	family, err := s.repo.FindByID(ctx, familyID)
	if err != nil {
		return nil, err
	}

	name := sanitize.Text(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequest("family name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewBadRequest("family name must be at most 100 characters")
	}

	desc := strings.TrimSpace(sanitize.HTML(input.Description))
	if len(desc) > 2000 {
		return nil, apperror.NewBadRequest("description must be at most 2000 characters")
	}

	if name != family.Name {
		slug, err := s.generateSlug(ctx, name)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("generating slug: %w", err))
		}
		family.Slug = slug
	}

	family.Name = name
	family.Description = nil
	if desc != "" {
		family.Description = &desc
	}

	if err := s.repo.Update(ctx, family); err != nil {
		return nil, err
	}
	return family, nil
}

// Delete removes a family and everything it contains.
func (s *familyService) Delete(ctx context.Context, familyID string) error {
	if err := s.repo.Delete(ctx, familyID); err != nil {
		return err
	}
	slog.Info("family deleted", slog.String("family_id", familyID))
	return nil
}

// --- Membership ---

// GetMember retrieves a user's membership in a family.
func (s *familyService) GetMember(ctx context.Context, familyID, userID string) (*Membership, error) {
	return s.repo.FindMember(ctx, familyID, userID)
}

// ListMembers returns all members of a family.
func (s *familyService) ListMembers(ctx context.Context, familyID string) ([]Membership, error) {
	return s.repo.ListMembers(ctx, familyID)
}

// RemoveMember removes a member from a family. The owner cannot be removed --
// ownership is not transferable through this path.
func (s *familyService) RemoveMember(ctx context.Context, familyID, userID string) error {
	member, err := s.repo.FindMember(ctx, familyID, userID)
	if err != nil {
		return err
	}
	if member.Role == RoleOwner {
		return apperror.NewBadRequest("the family owner cannot be removed")
	}
	return s.repo.RemoveMember(ctx, familyID, userID)
}

// UpdateMemberRole changes a member's role. Owner role cannot be granted or
// revoked through this path.
func (s *familyService) UpdateMemberRole(ctx context.Context, familyID, userID string, role Role) error {
	if !role.IsValid() || role == RoleOwner {
		return apperror.NewBadRequest("role must be adult or child")
	}

	member, err := s.repo.FindMember(ctx, familyID, userID)
	if err != nil {
		return err
	}
	if member.Role == RoleOwner {
		return apperror.NewBadRequest("the family owner's role cannot be changed")
	}

	return s.repo.UpdateMemberRole(ctx, familyID, userID, role)
}

// --- Invites ---

// CreateInvite creates a single-use invite for the given email. If the email
// already belongs to a member, the invite is rejected.
func (s *familyService) CreateInvite(ctx context.Context, familyID, creatorID, email string, role Role) (*Invite, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewValidation("a valid email address is required")
	}
	if !role.IsValid() || role == RoleOwner {
		return nil, apperror.NewBadRequest("invite role must be adult or child")
	}

	// If the invitee already has an account and membership, short-circuit.
	if user, err := s.users.FindUserByEmail(ctx, email); err == nil {
		if _, err := s.repo.FindMember(ctx, familyID, user.ID); err == nil {
			return nil, apperror.NewConflict("this person is already a family member")
		}
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generating invite token: %w", err))
	}

	now := time.Now().UTC()
	invite := &Invite{
		ID:        uuid.NewString(),
		FamilyID:  familyID,
		Email:     email,
		Role:      role,
		Token:     token,
		ExpiresAt: now.Add(s.inviteTTL),
		CreatedBy: creatorID,
		CreatedAt: now,
	}

	if err := s.repo.CreateInvite(ctx, invite); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating invite: %w", err))
	}

	slog.Info("invite created",
		slog.String("family_id", familyID),
		slog.String("invite_id", invite.ID),
		slog.String("role", role.String()),
	)

	return invite, nil
}

// AcceptInvite redeems an invite token for the authenticated user. The token
// is consumed even when the accepting user's email differs from the invited
// one -- invites are bearer tokens shared out-of-band within the household.
func (s *familyService) AcceptInvite(ctx context.Context, token, userID string) (*Family, error) {
	invite, err := s.repo.FindInviteByToken(ctx, token)
	if err != nil {
		return nil, apperror.NewNotFound("invite not found or already used")
	}

	if invite.Expired(time.Now().UTC()) {
		// Clean up the stale row; failure here is non-fatal.
		if err := s.repo.DeleteInvite(ctx, invite.ID); err != nil {
			slog.Warn("failed to delete expired invite",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
		}
		return nil, apperror.NewBadRequest("this invite has expired")
	}

	// Reject double-joins before consuming the token.
	if _, err := s.repo.FindMember(ctx, invite.FamilyID, userID); err == nil {
		return nil, apperror.NewConflict("you are already a member of this family")
	}

	if err := s.repo.AcceptInvite(ctx, invite, userID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("accepting invite: %w", err))
	}

	// Redemption also provisions the member profile (with an allocated
	// palette color) so the joined user appears on the calendar immediately.
	// The membership is already committed at this point, so a profile
	// failure is logged rather than surfaced; the profile can be created
	// manually afterwards.
	if user, err := s.users.FindUserByID(ctx, userID); err != nil {
		slog.Warn("could not load joined user for profile creation",
			slog.String("family_id", invite.FamilyID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	} else if err := s.profiles.CreateProfile(ctx, invite.FamilyID, user.ID, user.DisplayName); err != nil {
		slog.Warn("could not create member profile for joined user",
			slog.String("family_id", invite.FamilyID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	slog.Info("invite accepted",
		slog.String("family_id", invite.FamilyID),
		slog.String("user_id", userID),
		slog.String("role", invite.Role.String()),
	)

	return s.repo.FindByID(ctx, invite.FamilyID)
}

// ListInvites returns pending invites for a family.
func (s *familyService) ListInvites(ctx context.Context, familyID string) ([]Invite, error) {
	return s.repo.ListInvites(ctx, familyID)
}

// RevokeInvite deletes a pending invite. The familyID guard prevents revoking
// another family's invite through a crafted ID.
func (s *familyService) RevokeInvite(ctx context.Context, familyID, inviteID string) error {
	invites, err := s.repo.ListInvites(ctx, familyID)
	if err != nil {
		return err
	}
	for _, invite := range invites {
		if invite.ID == inviteID {
			return s.repo.DeleteInvite(ctx, inviteID)
		}
	}
	return apperror.NewNotFound("invite not found")
}

// --- Helpers ---

// generateSlug creates a unique slug from the name, appending a numeric
// suffix on collision: "the-smiths", "the-smiths-2", "the-smiths-3", ...
func (s *familyService) generateSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)

	slug := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}

	// Extremely unlikely: fall back to a random suffix.
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, hex.EncodeToString(suffix)), nil
}

// generateInviteToken creates a cryptographically random hex-encoded token.
func generateInviteToken() (string, error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
