package models

import "time"

// QuizQuestion is one curator-quiz question, scoped to a target language.
type QuizQuestion struct {
	ID            string     `db:"ID"` // ULID
	LanguageID    string     `db:"LANGUAGE_ID"`
	Text          string     `db:"TEXT"`
	Options       OptionList `db:"OPTIONS"`        // JSON in a CLOB column
	CorrectAnswer string     `db:"CORRECT_ANSWER"` // option value, never shown with labels
	IsActive      bool       `db:"IS_ACTIVE"`
	CreatedAt     time.Time  `db:"CREATED_AT"`
	UpdatedAt     time.Time  `db:"UPDATED_AT"`
}

// QuizAttempt is the immutable record of one curator-quiz evaluation.
type QuizAttempt struct {
	ID        string    `db:"ID"` // ULID
	UserID    string    `db:"USER_ID"`
	Score     int       `db:"SCORE"`
	Passed    bool      `db:"PASSED"`
	CreatedAt time.Time `db:"CREATED_AT"`
}
