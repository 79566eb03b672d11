package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"neolingo/internal/domain"
	"neolingo/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxLanguageRepository implements domain.LanguageRepository using sqlx.
type sqlxLanguageRepository struct {
	db *sqlx.DB
}

// NewSQLXLanguageRepository creates a new instance of sqlxLanguageRepository.
func NewSQLXLanguageRepository(db *sqlx.DB) domain.LanguageRepository {
	return &sqlxLanguageRepository{db: db}
}

func toDomainLanguage(m *models.Language) *domain.Language {
	if m == nil {
		return nil
	}
	return &domain.Language{
		ID:       m.ID,
		Code:     m.Code,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}

// ListActive returns all languages open for contributions.
func (r *sqlxLanguageRepository) ListActive(ctx context.Context) ([]domain.Language, error) {
	query := `SELECT id, code, name, is_active FROM languages WHERE is_active = 1 ORDER BY name`

	var modelLanguages []models.Language
	if err := r.db.SelectContext(ctx, &modelLanguages, query); err != nil {
		return nil, fmt.Errorf("failed to list active languages: %w", err)
	}

	languages := make([]domain.Language, len(modelLanguages))
	for i := range modelLanguages {
		languages[i] = *toDomainLanguage(&modelLanguages[i])
	}
	return languages, nil
}

// GetByID retrieves one language. Returns (nil, nil) when absent.
func (r *sqlxLanguageRepository) GetByID(ctx context.Context, id string) (*domain.Language, error) {
	var language models.Language
	query := `SELECT id, code, name, is_active FROM languages WHERE id = :1`

	err := r.db.GetContext(ctx, &language, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get language by id: %w", err)
	}
	return toDomainLanguage(&language), nil
}
