package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"neolingo/internal/domain"
	"neolingo/internal/repository/models"
	"neolingo/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizAttemptRepository implements domain.QuizAttemptRepository using sqlx.
type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizAttemptRepository creates a new instance of sqlxQuizAttemptRepository.
func NewSQLXQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:        m.ID,
		UserID:    m.UserID,
		Score:     m.Score,
		Passed:    m.Passed,
		CreatedAt: m.CreatedAt,
	}
}

// CreateAttempt inserts the attempt row. Attempts are immutable: there is no
// update path, and nothing ever deletes them. Runs against the context's
// transaction when one is active.
func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	passedVal := 0
	if attempt.Passed {
		passedVal = 1
	}

	query := `INSERT INTO quiz_attempts (id, user_id, score, passed, created_at)
	          VALUES (:1, :2, :3, :4, :5)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		attempt.ID, attempt.UserID, attempt.Score, passedVal, attempt.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetLatestFailedSince returns the most recent failed attempt created at or
// after since, or (nil, nil) when there is none.
func (r *sqlxQuizAttemptRepository) GetLatestFailedSince(ctx context.Context, userID string, since time.Time) (*domain.QuizAttempt, error) {
	var attempt models.QuizAttempt
	query := `SELECT id, user_id, score, passed, created_at
	          FROM quiz_attempts
	          WHERE user_id = :1 AND passed = 0 AND created_at >= :2
	          ORDER BY created_at DESC
	          FETCH FIRST 1 ROWS ONLY`

	err := r.db.GetContext(ctx, &attempt, query, userID, since)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest failed attempt: %w", err)
	}
	return toDomainQuizAttempt(&attempt), nil
}

// ListAttemptsByUser returns a page of the user's attempt history, newest
// first, along with the total count.
func (r *sqlxQuizAttemptRepository) ListAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.QuizAttempt, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, user_id, score, passed, created_at
	          FROM quiz_attempts
	          WHERE user_id = :1
	          ORDER BY created_at DESC
	          OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`

	var modelAttempts []models.QuizAttempt
	if err := r.db.SelectContext(ctx, &modelAttempts, query, userID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz attempts: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}

	attempts := make([]domain.QuizAttempt, len(modelAttempts))
	for i := range modelAttempts {
		attempts[i] = *toDomainQuizAttempt(&modelAttempts[i])
	}
	return attempts, total, nil
}
