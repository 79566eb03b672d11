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

// sqlxQuizQuestionRepository implements domain.QuizQuestionRepository using sqlx.
type sqlxQuizQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizQuestionRepository creates a new instance of sqlxQuizQuestionRepository.
func NewSQLXQuizQuestionRepository(db *sqlx.DB) domain.QuizQuestionRepository {
	return &sqlxQuizQuestionRepository{db: db}
}

func toDomainQuizQuestion(m *models.QuizQuestion) *domain.QuizQuestion {
	if m == nil {
		return nil
	}
	options := make([]domain.QuizOption, len(m.Options))
	for i, opt := range m.Options {
		options[i] = domain.QuizOption{Label: opt.Label, Value: opt.Value}
	}
	return &domain.QuizQuestion{
		ID:            m.ID,
		LanguageID:    m.LanguageID,
		Text:          m.Text,
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainQuizQuestion(q *domain.QuizQuestion) *models.QuizQuestion {
	if q == nil {
		return nil
	}
	options := make(models.OptionList, len(q.Options))
	for i, opt := range q.Options {
		options[i] = models.Option{Label: opt.Label, Value: opt.Value}
	}
	return &models.QuizQuestion{
		ID:            q.ID,
		LanguageID:    q.LanguageID,
		Text:          q.Text,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		IsActive:      q.IsActive,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// GetRandomActiveByLanguage returns up to limit active questions for the
// language in random order. DBMS_RANDOM gives a fresh sample per call, which
// is deliberate: repeat takers should not be able to memorize a fixed set.
func (r *sqlxQuizQuestionRepository) GetRandomActiveByLanguage(ctx context.Context, languageID string, limit int) ([]domain.QuizQuestion, error) {
	query := `SELECT id, language_id, text, options, correct_answer, is_active, created_at, updated_at
	          FROM quiz_questions
	          WHERE language_id = :1 AND is_active = 1
	          ORDER BY DBMS_RANDOM.VALUE
	          FETCH FIRST :2 ROWS ONLY`

	var modelQuestions []models.QuizQuestion
	if err := r.db.SelectContext(ctx, &modelQuestions, query, languageID, limit); err != nil {
		return nil, fmt.Errorf("failed to select random quiz questions: %w", err)
	}

	questions := make([]domain.QuizQuestion, len(modelQuestions))
	for i := range modelQuestions {
		questions[i] = *toDomainQuizQuestion(&modelQuestions[i])
	}
	return questions, nil
}

// GetQuestionByID retrieves one question. Returns (nil, nil) when absent.
func (r *sqlxQuizQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.QuizQuestion, error) {
	var question models.QuizQuestion
	query := `SELECT id, language_id, text, options, correct_answer, is_active, created_at, updated_at
	          FROM quiz_questions WHERE id = :1`

	err := r.db.GetContext(ctx, &question, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz question by id: %w", err)
	}
	return toDomainQuizQuestion(&question), nil
}

// CreateQuestion inserts a new quiz question.
func (r *sqlxQuizQuestionRepository) CreateQuestion(ctx context.Context, question *domain.QuizQuestion) error {
	m := fromDomainQuizQuestion(question)
	if m.ID == "" {
		m.ID = util.NewULID()
		question.ID = m.ID
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	optionsVal, err := m.Options.Value()
	if err != nil {
		return fmt.Errorf("failed to encode question options: %w", err)
	}

	query := `INSERT INTO quiz_questions (id, language_id, text, options, correct_answer, is_active, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.LanguageID, m.Text, optionsVal, m.CorrectAnswer, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz question: %w", err)
	}
	return nil
}

// UpdateQuestion rewrites a question's content.
func (r *sqlxQuizQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.QuizQuestion) error {
	m := fromDomainQuizQuestion(question)
	m.UpdatedAt = time.Now()

	optionsVal, err := m.Options.Value()
	if err != nil {
		return fmt.Errorf("failed to encode question options: %w", err)
	}

	query := `UPDATE quiz_questions SET
	            language_id = :1, text = :2, options = :3, correct_answer = :4, is_active = :5, updated_at = :6
	          WHERE id = :7`

	result, err := r.db.ExecContext(ctx, query,
		m.LanguageID, m.Text, optionsVal, m.CorrectAnswer, m.IsActive, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles a question's visibility to quiz-takers.
func (r *sqlxQuizQuestionRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE quiz_questions SET is_active = :1, updated_at = :2 WHERE id = :3`

	activeVal := 0
	if active {
		activeVal = 1
	}

	result, err := r.db.ExecContext(ctx, query, activeVal, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set quiz question active flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
