package domain

import (
	"context"
	"time"
)

// PassThreshold is the fixed fraction of correct answers required to pass
// the curator quiz. The boundary is inclusive: 3/4 passes.
const PassThreshold = 0.75

// QuizOption is one selectable answer for a quiz question. Value is the
// canonical answer token; Label is what the quiz-taker sees.
type QuizOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuizQuestion belongs to exactly one target language. Only questions with
// IsActive set are handed out to quiz-takers.
type QuizQuestion struct {
	ID            string
	LanguageID    string
	Text          string
	Options       []QuizOption
	CorrectAnswer string // an option's value, not its label
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasOptionValue reports whether value matches one of the question's options.
func (q *QuizQuestion) HasOptionValue(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Validate validates the question content.
func (q *QuizQuestion) Validate() error {
	var errs ValidationErrors
	if q.LanguageID == "" {
		errs = append(errs, NewMissingFieldError("language_id"))
	}
	if q.Text == "" {
		errs = append(errs, NewMissingFieldError("text"))
	}
	if len(q.Options) < 2 {
		errs = append(errs, NewOutOfRangeError("options", len(q.Options), 2, 10))
	}
	if q.CorrectAnswer == "" {
		errs = append(errs, NewMissingFieldError("correct_answer"))
	} else if len(q.Options) > 0 && !q.HasOptionValue(q.CorrectAnswer) {
		errs = append(errs, NewInvalidFormatError("correct_answer", q.CorrectAnswer))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuizAttempt is the immutable record of one quiz evaluation. Rows are
// created once and never mutated; failing attempts are kept as the audit
// trail that drives the cooldown.
type QuizAttempt struct {
	ID        string
	UserID    string
	Score     int
	Passed    bool
	CreatedAt time.Time
}

// EvaluateAttempt applies the pass threshold to a raw score.
// totalQuestions must be positive; callers validate before evaluating.
func EvaluateAttempt(score, totalQuestions int) (passed bool, percentage float64) {
	percentage = float64(score) / float64(totalQuestions)
	return percentage >= PassThreshold, percentage
}

// QuizQuestionRepository defines the interface for quiz question persistence.
type QuizQuestionRepository interface {
	// GetRandomActiveByLanguage returns up to limit active questions for
	// the language in random order. Repeated calls may return different
	// subsets; zero rows is a valid result.
	GetRandomActiveByLanguage(ctx context.Context, languageID string, limit int) ([]QuizQuestion, error)

	GetQuestionByID(ctx context.Context, id string) (*QuizQuestion, error)
	CreateQuestion(ctx context.Context, question *QuizQuestion) error
	UpdateQuestion(ctx context.Context, question *QuizQuestion) error
	SetActive(ctx context.Context, id string, active bool) error
}

// QuizAttemptRepository defines the interface for quiz attempt persistence.
type QuizAttemptRepository interface {
	// CreateAttempt inserts the attempt row. It participates in a
	// surrounding transaction when one travels in the context.
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error

	// GetLatestFailedSince returns the most recent failed attempt created
	// at or after since, or (nil, nil) when there is none.
	GetLatestFailedSince(ctx context.Context, userID string, since time.Time) (*QuizAttempt, error)

	ListAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]QuizAttempt, int, error)
}
