package models

import (
	"database/sql"
	"time"
)

// Language is a constructed target language.
type Language struct {
	ID       string `db:"ID"` // ULID
	Code     string `db:"CODE"`
	Name     string `db:"NAME"`
	IsActive bool   `db:"IS_ACTIVE"`
}

// Word is a curated dictionary entry.
type Word struct {
	ID         string    `db:"ID"` // ULID
	LanguageID string    `db:"LANGUAGE_ID"`
	Lemma      string    `db:"LEMMA"`
	Gloss      string    `db:"GLOSS"`
	CreatedAt  time.Time `db:"CREATED_AT"`
	UpdatedAt  time.Time `db:"UPDATED_AT"`
}

// Suggestion is a user-proposed translation awaiting review.
type Suggestion struct {
	ID        string       `db:"ID"` // ULID
	WordID    string       `db:"WORD_ID"`
	UserID    string       `db:"USER_ID"`
	Text      string       `db:"TEXT"`
	Status    string       `db:"STATUS"`
	CreatedAt time.Time    `db:"CREATED_AT"`
	UpdatedAt time.Time    `db:"UPDATED_AT"`
	DeletedAt sql.NullTime `db:"DELETED_AT"`
}

// Vote is one user's vote on a suggestion; unique per (suggestion, user).
type Vote struct {
	ID           string    `db:"ID"` // ULID
	SuggestionID string    `db:"SUGGESTION_ID"`
	UserID       string    `db:"USER_ID"`
	Value        int       `db:"VALUE"`
	CreatedAt    time.Time `db:"CREATED_AT"`
	UpdatedAt    time.Time `db:"UPDATED_AT"`
}
