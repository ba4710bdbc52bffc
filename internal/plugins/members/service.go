package members

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/palette"
	"github.com/keyxmakerx/hearth/internal/sanitize"
)

// MemberService handles business logic for member profiles, including
// palette color allocation.
type MemberService interface {
	Create(ctx context.Context, familyID string, input CreateMemberInput) (*Member, error)
	Get(ctx context.Context, familyID, id string) (*Member, error)
	List(ctx context.Context, familyID string) ([]Member, error)
	Update(ctx context.Context, familyID, id string, input UpdateMemberInput) (*Member, error)
	Delete(ctx context.Context, familyID, id string) error
}

// memberService implements MemberService.
type memberService struct {
	repo MemberRepository
}

// NewMemberService creates a new member service.
func NewMemberService(repo MemberRepository) MemberService {
	return &memberService{repo: repo}
}

// Create adds a member profile to a family. When no color is given, the next
// free palette color is assigned based on what the family already uses.
// Explicit colors are normalized so light picks stay readable.
func (s *memberService) Create(ctx context.Context, familyID string, input CreateMemberInput) (*Member, error) {
	name := sanitize.Text(input.DisplayName)
	if name == "" {
		return nil, apperror.NewBadRequest("display name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewBadRequest("display name must be at most 100 characters")
	}

	color := input.Color
	if color == "" {
		used, err := s.repo.ListColors(ctx, familyID)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("listing member colors: %w", err))
		}
		color = palette.NextAvailable(used)
	} else {
		color = palette.Normalize(color)
	}

	now := time.Now().UTC()
	member := &Member{
		ID:          uuid.NewString(),
		FamilyID:    familyID,
		DisplayName: name,
		UserID:      input.UserID,
		Birthdate:   input.Birthdate,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating member: %w", err))
	}

	slog.Info("member created",
		slog.String("family_id", familyID),
		slog.String("member_id", member.ID),
		slog.String("color", member.Color),
	)

	return member, nil
}

// Get retrieves a member profile scoped to a family.
func (s *memberService) Get(ctx context.Context, familyID, id string) (*Member, error) {
	return s.repo.FindByID(ctx, familyID, id)
}

// List returns all member profiles of a family.
func (s *memberService) List(ctx context.Context, familyID string) ([]Member, error) {
	return s.repo.ListByFamily(ctx, familyID)
}

// Update modifies a member profile. An empty color keeps the current one;
// a non-empty color is normalized before storage.
func (s *memberService) Update(ctx context.Context, familyID, id string, input UpdateMemberInput) (*Member, error) {
	member, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	name := sanitize.Text(input.DisplayName)
	if name == "" {
		return nil, apperror.NewBadRequest("display name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewBadRequest("display name must be at most 100 characters")
	}

	member.DisplayName = name
	member.UserID = input.UserID
	member.Birthdate = input.Birthdate
	if input.Color != "" {
		member.Color = palette.Normalize(input.Color)
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member profile.
func (s *memberService) Delete(ctx context.Context, familyID, id string) error {
	return s.repo.Delete(ctx, familyID, id)
}
