// Package families manages families (household containers) and their
// role-based membership system. A family is the top-level organizational
// unit that holds member profiles and the shared calendar.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package families

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// --- Role System ---

// Role represents a user's permission level within a family.
// Higher numeric values indicate more permissions. Use >= comparisons:
//
//	if role >= RoleAdult { /* allow event management */ }
type Role int

const (
	// RoleNone indicates the user has no membership in the family.
	// Used when a site admin accesses a family they haven't joined.
	RoleNone Role = 0

	// RoleChild grants read access to the family calendar and the ability
	// to manage the child's own events. Default role for kids' accounts.
	RoleChild Role = 1

	// RoleAdult grants full calendar access: creating and editing events
	// for any member, and managing member profiles.
	RoleAdult Role = 2

	// RoleOwner grants full control over the family. One per family.
	// Can invite and remove members, change roles, and delete the family.
	RoleOwner Role = 3
)

// RoleFromString converts a database role string to a Role constant.
func RoleFromString(s string) Role {
	switch s {
	case "owner":
		return RoleOwner
	case "adult":
		return RoleAdult
	case "child":
		return RoleChild
	default:
		return RoleNone
	}
}

// String returns the database-safe string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdult:
		return "adult"
	case RoleChild:
		return "child"
	default:
		return ""
	}
}

// DisplayName returns a human-readable label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleAdult:
		return "Adult"
	case RoleChild:
		return "Child"
	default:
		return "None"
	}
}

// IsValid returns true if this is a valid family membership role.
func (r Role) IsValid() bool {
	return r >= RoleChild && r <= RoleOwner
}

// --- Domain Models ---

// Family represents a household sharing one calendar.
type Family struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership represents a user's membership in a family.
type Membership struct {
	FamilyID string    `json:"family_id"`
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Joined from users table for display purposes.
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// FamilyContext holds the resolved family and the requesting user's
// effective permissions. Injected into the Echo context by
// RequireFamilyAccess middleware.
//
// Two permission concepts:
//   - MemberRole: actual family_members role (for calendar visibility)
//   - IsSiteAdmin: site-level admin flag (for admin actions via /admin routes)
//
// An admin who hasn't joined has MemberRole=RoleNone (no calendar access).
type FamilyContext struct {
	Family      *Family
	MemberRole  Role // Actual membership role, or RoleNone if not a member.
	IsSiteAdmin bool // True if user has users.is_admin flag.
}

// Invite represents a pending invitation to join a family. Invites are
// single-use: the token is deleted the moment it is accepted.
type Invite struct {
	ID        string    `json:"id"`
	FamilyID  string    `json:"family_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Token     string    `json:"-"` // Never expose in JSON.
	ExpiresAt time.Time `json:"expires_at"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired returns true if the invite is past its expiry at the given time.
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// --- Cross-Plugin Interfaces ---

// UserFinder finds users for membership operations. Avoids importing the
// auth plugin's types directly. Implemented by UserFinderAdapter which
// wraps auth.UserRepository.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*MemberUser, error)
	FindUserByID(ctx context.Context, id string) (*MemberUser, error)
}

// MemberUser is the minimal user info needed for membership operations.
type MemberUser struct {
	ID          string
	Email       string
	DisplayName string
}

// ProfileCreator provisions a calendar member profile for a user who joins a
// family, so they show up on the calendar with an allocated color right away.
// Implemented by members.NewJoinProfileAdapter; this package never imports
// the members plugin directly.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, familyID, userID, displayName string) error
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateFamilyRequest holds the data submitted by the family creation call.
type CreateFamilyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateFamilyRequest holds the data submitted by the family edit call.
type UpdateFamilyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateInviteRequest holds the data for inviting someone into a family.
type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AcceptInviteRequest holds the invite token being redeemed.
type AcceptInviteRequest struct {
	Token string `json:"token"`
}

// UpdateRoleRequest holds the data for changing a member's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// --- Service Input DTOs ---

// CreateFamilyInput is the validated input for creating a family.
type CreateFamilyInput struct {
	Name        string
	Description string
}

// UpdateFamilyInput is the validated input for updating a family.
type UpdateFamilyInput struct {
	Name        string
	Description string
}

// ListOptions holds pagination parameters for list queries.
type ListOptions struct {
	Page    int
	PerPage int
}

// DefaultListOptions returns sensible defaults for pagination.
func DefaultListOptions() ListOptions {
	return ListOptions{Page: 1, PerPage: 24}
}

// Offset returns the SQL OFFSET value for the current page.
func (o ListOptions) Offset() int {
	if o.Page < 1 {
		o.Page = 1
	}
	return (o.Page - 1) * o.PerPage
}

// --- Slug Generation ---

// slugPattern matches one or more non-alphanumeric characters for replacement.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify creates a URL-safe slug from a name. Lowercase, replace
// non-alphanumeric characters with hyphens, trim leading/trailing hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "family"
	}
	return slug
}
