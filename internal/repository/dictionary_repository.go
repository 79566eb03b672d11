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

// sqlxWordRepository implements domain.WordRepository using sqlx.
type sqlxWordRepository struct {
	db *sqlx.DB
}

// NewSQLXWordRepository creates a new instance of sqlxWordRepository.
func NewSQLXWordRepository(db *sqlx.DB) domain.WordRepository {
	return &sqlxWordRepository{db: db}
}

func toDomainWord(m *models.Word) *domain.Word {
	if m == nil {
		return nil
	}
	return &domain.Word{
		ID:         m.ID,
		LanguageID: m.LanguageID,
		Lemma:      m.Lemma,
		Gloss:      m.Gloss,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ListByLanguage returns a page of dictionary entries for a language.
func (r *sqlxWordRepository) ListByLanguage(ctx context.Context, languageID string, limit, offset int) ([]domain.Word, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, language_id, lemma, gloss, created_at, updated_at
	          FROM words
	          WHERE language_id = :1
	          ORDER BY lemma
	          OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`

	var modelWords []models.Word
	if err := r.db.SelectContext(ctx, &modelWords, query, languageID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list words: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM words WHERE language_id = :1`
	if err := r.db.GetContext(ctx, &total, countQuery, languageID); err != nil {
		return nil, 0, fmt.Errorf("failed to count words: %w", err)
	}

	words := make([]domain.Word, len(modelWords))
	for i := range modelWords {
		words[i] = *toDomainWord(&modelWords[i])
	}
	return words, total, nil
}

// GetByID retrieves one word. Returns (nil, nil) when absent.
func (r *sqlxWordRepository) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	var word models.Word
	query := `SELECT id, language_id, lemma, gloss, created_at, updated_at FROM words WHERE id = :1`

	err := r.db.GetContext(ctx, &word, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get word by id: %w", err)
	}
	return toDomainWord(&word), nil
}

// CreateWord inserts a new dictionary entry.
func (r *sqlxWordRepository) CreateWord(ctx context.Context, word *domain.Word) error {
	if word.ID == "" {
		word.ID = util.NewULID()
	}
	if word.CreatedAt.IsZero() {
		word.CreatedAt = time.Now()
	}
	word.UpdatedAt = time.Now()

	query := `INSERT INTO words (id, language_id, lemma, gloss, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	if _, err := r.db.ExecContext(ctx, query,
		word.ID, word.LanguageID, word.Lemma, word.Gloss, word.CreatedAt, word.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

// sqlxSuggestionRepository implements domain.SuggestionRepository using sqlx.
type sqlxSuggestionRepository struct {
	db *sqlx.DB
}

// NewSQLXSuggestionRepository creates a new instance of sqlxSuggestionRepository.
func NewSQLXSuggestionRepository(db *sqlx.DB) domain.SuggestionRepository {
	return &sqlxSuggestionRepository{db: db}
}

func toDomainSuggestion(m *models.Suggestion) *domain.Suggestion {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Suggestion{
		ID:        m.ID,
		WordID:    m.WordID,
		UserID:    m.UserID,
		Text:      m.Text,
		Status:    domain.SuggestionStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CreateSuggestion inserts a new suggestion in PENDING state.
func (r *sqlxSuggestionRepository) CreateSuggestion(ctx context.Context, suggestion *domain.Suggestion) error {
	if suggestion.ID == "" {
		suggestion.ID = util.NewULID()
	}
	if suggestion.Status == "" {
		suggestion.Status = domain.SuggestionPending
	}
	if suggestion.CreatedAt.IsZero() {
		suggestion.CreatedAt = time.Now()
	}
	suggestion.UpdatedAt = time.Now()

	query := `INSERT INTO suggestions (id, word_id, user_id, text, status, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	if _, err := r.db.ExecContext(ctx, query,
		suggestion.ID, suggestion.WordID, suggestion.UserID, suggestion.Text,
		string(suggestion.Status), suggestion.CreatedAt, suggestion.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}
	return nil
}

// GetByID retrieves one suggestion. Returns (nil, nil) when absent.
func (r *sqlxSuggestionRepository) GetByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	var suggestion models.Suggestion
	query := `SELECT id, word_id, user_id, text, status, created_at, updated_at, deleted_at
	          FROM suggestions WHERE id = :1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &suggestion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get suggestion by id: %w", err)
	}
	return toDomainSuggestion(&suggestion), nil
}

// ListByWord returns all live suggestions for a word, newest first.
func (r *sqlxSuggestionRepository) ListByWord(ctx context.Context, wordID string) ([]domain.Suggestion, error) {
	query := `SELECT id, word_id, user_id, text, status, created_at, updated_at, deleted_at
	          FROM suggestions
	          WHERE word_id = :1 AND deleted_at IS NULL
	          ORDER BY created_at DESC`

	var modelSuggestions []models.Suggestion
	if err := r.db.SelectContext(ctx, &modelSuggestions, query, wordID); err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}

	suggestions := make([]domain.Suggestion, len(modelSuggestions))
	for i := range modelSuggestions {
		suggestions[i] = *toDomainSuggestion(&modelSuggestions[i])
	}
	return suggestions, nil
}

// UpdateStatus moves a suggestion through the review workflow.
func (r *sqlxSuggestionRepository) UpdateStatus(ctx context.Context, id string, status domain.SuggestionStatus) error {
	query := `UPDATE suggestions SET status = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
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

// sqlxVoteRepository implements domain.VoteRepository using sqlx.
type sqlxVoteRepository struct {
	db *sqlx.DB
}

// NewSQLXVoteRepository creates a new instance of sqlxVoteRepository.
func NewSQLXVoteRepository(db *sqlx.DB) domain.VoteRepository {
	return &sqlxVoteRepository{db: db}
}

// UpsertVote inserts the vote, or updates the existing row's value when the
// user already voted on the suggestion. MERGE keeps the (suggestion, user)
// uniqueness race inside the database.
func (r *sqlxVoteRepository) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	if vote.ID == "" {
		vote.ID = util.NewULID()
	}
	now := time.Now()

	query := `MERGE INTO votes v
	          USING (SELECT :1 AS suggestion_id, :2 AS user_id FROM dual) src
	          ON (v.suggestion_id = src.suggestion_id AND v.user_id = src.user_id)
	          WHEN MATCHED THEN
	            UPDATE SET v.value = :3, v.updated_at = :4
	          WHEN NOT MATCHED THEN
	            INSERT (id, suggestion_id, user_id, value, created_at, updated_at)
	            VALUES (:5, :6, :7, :8, :9, :10)`

	if _, err := r.db.ExecContext(ctx, query,
		vote.SuggestionID, vote.UserID,
		vote.Value, now,
		vote.ID, vote.SuggestionID, vote.UserID, vote.Value, now, now); err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

// CountForSuggestion tallies up and down votes for a suggestion.
func (r *sqlxVoteRepository) CountForSuggestion(ctx context.Context, suggestionID string) (int, int, error) {
	var counts struct {
		Up   int `db:"UP_COUNT"`
		Down int `db:"DOWN_COUNT"`
	}
	query := `SELECT
	            COALESCE(SUM(CASE WHEN value > 0 THEN 1 ELSE 0 END), 0) AS up_count,
	            COALESCE(SUM(CASE WHEN value < 0 THEN 1 ELSE 0 END), 0) AS down_count
	          FROM votes WHERE suggestion_id = :1`

	if err := r.db.GetContext(ctx, &counts, query, suggestionID); err != nil {
		return 0, 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return counts.Up, counts.Down, nil
}
