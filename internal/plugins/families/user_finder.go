package families

import (
	"context"

	"github.com/keyxmakerx/hearth/internal/plugins/auth"
)

// UserFinderAdapter bridges auth.UserRepository to the UserFinder interface,
// keeping this package decoupled from the auth plugin's repository types.
type UserFinderAdapter struct {
	repo auth.UserRepository
}

// NewUserFinderAdapter wraps an auth.UserRepository.
func NewUserFinderAdapter(repo auth.UserRepository) *UserFinderAdapter {
	return &UserFinderAdapter{repo: repo}
}

// FindUserByEmail looks up a user by email.
func (a *UserFinderAdapter) FindUserByEmail(ctx context.Context, email string) (*MemberUser, error) {
	user, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &MemberUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

// FindUserByID looks up a user by ID.
func (a *UserFinderAdapter) FindUserByID(ctx context.Context, id string) (*MemberUser, error) {
	user, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MemberUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}
