package members

import "context"

// JoinProfileAdapter provisions a member profile when a user redeems a
// family invite. It satisfies the families plugin's ProfileCreator interface
// without that package importing this one.
type JoinProfileAdapter struct {
	svc MemberService
}

// NewJoinProfileAdapter wraps a MemberService.
func NewJoinProfileAdapter(svc MemberService) *JoinProfileAdapter {
	return &JoinProfileAdapter{svc: svc}
}

// CreateProfile creates a profile linked to the joining user. The color is
// left empty so the next free palette color gets allocated.
func (a *JoinProfileAdapter) CreateProfile(ctx context.Context, familyID, userID, displayName string) error {
	uid := userID
	_, err := a.svc.Create(ctx, familyID, CreateMemberInput{
		DisplayName: displayName,
		UserID:      &uid,
	})
	return err
}
