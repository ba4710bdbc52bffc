package events

import (
	"context"

	"github.com/keyxmakerx/hearth/internal/plugins/members"
)

// MemberDirectoryAdapter bridges members.MemberService to the
// MemberDirectory interface, keeping this package decoupled from the
// members plugin's model types.
type MemberDirectoryAdapter struct {
	service members.MemberService
}

// NewMemberDirectoryAdapter wraps a members.MemberService.
func NewMemberDirectoryAdapter(service members.MemberService) *MemberDirectoryAdapter {
	return &MemberDirectoryAdapter{service: service}
}

// ListFamilyMembers returns the family's member profiles as MemberInfo.
func (a *MemberDirectoryAdapter) ListFamilyMembers(ctx context.Context, familyID string) ([]MemberInfo, error) {
	list, err := a.service.List(ctx, familyID)
	if err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(list))
	for _, m := range list {
		infos = append(infos, MemberInfo{
			ID:    m.ID,
			Name:  m.DisplayName,
			Color: m.Color,
		})
	}
	return infos, nil
}
