package models

import (
	"database/sql"
	"time"
)

// User represents a user row. Identity is owned by the external auth
// provider; EXTERNAL_ID is its opaque identifier.
type User struct {
	ID               string         `db:"ID"` // ULID
	ExternalID       string         `db:"EXTERNAL_ID"`
	Email            string         `db:"EMAIL"`
	DisplayName      sql.NullString `db:"DISPLAY_NAME"`
	TargetLanguageID sql.NullString `db:"TARGET_LANGUAGE_ID"`
	CreatedAt        time.Time      `db:"CREATED_AT"`
	UpdatedAt        time.Time      `db:"UPDATED_AT"`
	DeletedAt        sql.NullTime   `db:"DELETED_AT"`
}

// Role is a named permission tier.
type Role struct {
	ID        string    `db:"ID"` // ULID
	Name      string    `db:"NAME"`
	CreatedAt time.Time `db:"CREATED_AT"`
}

// UserRole links one user to one role. USER_ID carries a unique constraint.
type UserRole struct {
	ID        string    `db:"ID"` // ULID
	UserID    string    `db:"USER_ID"`
	RoleID    string    `db:"ROLE_ID"`
	CreatedAt time.Time `db:"CREATED_AT"`
}
