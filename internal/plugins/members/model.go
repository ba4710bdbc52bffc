// Package members manages per-family member profiles. A profile is who
// appears on the calendar: it carries the display name, an optional link to
// a user account, and the member's calendar color. Kids without devices get
// profiles with no linked account.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package members

import (
	"time"
)

// Member represents a person on a family's calendar. The Color is a hex
// string like "#E63946", assigned from the shared palette when not chosen
// explicitly.
type Member struct {
	ID          string     `json:"id"`
	FamilyID    string     `json:"family_id"`
	DisplayName string     `json:"display_name"`
	UserID      *string    `json:"user_id,omitempty"` // Linked account, if any.
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateMemberRequest holds the data for creating a member profile.
// Color is optional; when empty, the next free palette color is assigned.
// Birthdate is an optional "2006-01-02" date string.
type CreateMemberRequest struct {
	DisplayName string  `json:"display_name"`
	UserID      *string `json:"user_id"`
	Birthdate   string  `json:"birthdate"`
	Color       string  `json:"color"`
}

// UpdateMemberRequest holds the data for editing a member profile.
type UpdateMemberRequest struct {
	DisplayName string  `json:"display_name"`
	UserID      *string `json:"user_id"`
	Birthdate   string  `json:"birthdate"`
	Color       string  `json:"color"`
}

// --- Service Input DTOs ---

// CreateMemberInput is the validated input for creating a member profile.
type CreateMemberInput struct {
	DisplayName string
	UserID      *string
	Birthdate   *time.Time
	Color       string // Empty means auto-assign from the palette.
}

// UpdateMemberInput is the validated input for editing a member profile.
type UpdateMemberInput struct {
	DisplayName string
	UserID      *string
	Birthdate   *time.Time
	Color       string // Empty means keep the current color.
}
