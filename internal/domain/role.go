package domain

import (
	"context"
	"time"
)

// Role names known to the application. EXPLORER is the onboarding default;
// CONTRIBUTOR is granted by passing the curator quiz; ADMIN and JUROR are
// assigned out of band.
const (
	RoleExplorer    = "EXPLORER"
	RoleContributor = "CONTRIBUTOR"
	RoleAdmin       = "ADMIN"
	RoleJuror       = "JUROR"
)

// Role is a named permission tier.
type Role struct {
	ID   string
	Name string
}

// UserRole assigns exactly one Role to one User. The user_roles table
// carries a unique constraint on user_id, so a user can never hold two
// roles at once even under concurrent promotion.
type UserRole struct {
	ID        string
	UserID    string
	RoleID    string
	CreatedAt time.Time
}

// RoleRepository defines the interface for role and role-assignment
// persistence. Lookups return (nil, nil) when no row matches.
type RoleRepository interface {
	GetRoleByName(ctx context.Context, name string) (*Role, error)

	// GetUserRole resolves the user's active role assignment joined with
	// the role name.
	GetUserRole(ctx context.Context, userID string) (*Role, error)

	// ReplaceUserRole removes any existing assignments for the user and
	// inserts a single new one. It participates in a surrounding
	// transaction when one travels in the context.
	ReplaceUserRole(ctx context.Context, userID, roleID string) error
}
