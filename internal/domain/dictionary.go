package domain

import (
	"context"
	"time"
)

// Word is a curated dictionary entry: a source-language lemma and its gloss,
// scoped to one target language.
type Word struct {
	ID         string
	LanguageID string
	Lemma      string
	Gloss      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SuggestionStatus is the review state of a proposed translation.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "PENDING"
	SuggestionApproved SuggestionStatus = "APPROVED"
	SuggestionRejected SuggestionStatus = "REJECTED"
)

// Suggestion is a user-proposed translation for a word, subject to community
// voting and curator review.
type Suggestion struct {
	ID        string
	WordID    string
	UserID    string
	Text      string
	Status    SuggestionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Validate validates the suggestion content.
func (s *Suggestion) Validate() error {
	var errs ValidationErrors
	if s.WordID == "" {
		errs = append(errs, NewMissingFieldError("word_id"))
	}
	if s.UserID == "" {
		errs = append(errs, NewMissingFieldError("user_id"))
	}
	if s.Text == "" {
		errs = append(errs, NewMissingFieldError("text"))
	} else if len(s.Text) > 200 {
		errs = append(errs, NewOutOfRangeError("text", len(s.Text), 1, 200))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Vote is one user's up/down vote on a suggestion. One vote per user per
// suggestion; changing one's mind updates the existing row.
type Vote struct {
	ID           string
	SuggestionID string
	UserID       string
	Value        int // +1 or -1
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WordRepository defines the interface for word persistence.
type WordRepository interface {
	ListByLanguage(ctx context.Context, languageID string, limit, offset int) ([]Word, int, error)
	GetByID(ctx context.Context, id string) (*Word, error)
	CreateWord(ctx context.Context, word *Word) error
}

// SuggestionRepository defines the interface for suggestion persistence.
type SuggestionRepository interface {
	CreateSuggestion(ctx context.Context, suggestion *Suggestion) error
	GetByID(ctx context.Context, id string) (*Suggestion, error)
	ListByWord(ctx context.Context, wordID string) ([]Suggestion, error)
	UpdateStatus(ctx context.Context, id string, status SuggestionStatus) error
}

// VoteRepository defines the interface for vote persistence.
type VoteRepository interface {
	// UpsertVote inserts the vote or, when the user already voted on the
	// suggestion, updates the existing row's value.
	UpsertVote(ctx context.Context, vote *Vote) error
	CountForSuggestion(ctx context.Context, suggestionID string) (up, down int, err error)
}
