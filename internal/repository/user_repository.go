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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(modelUser *models.User) *domain.User {
	if modelUser == nil {
		return nil
	}
	var deletedAt *time.Time
	if modelUser.DeletedAt.Valid {
		deletedAt = &modelUser.DeletedAt.Time
	}

	return &domain.User{
		ID:               modelUser.ID,
		ExternalID:       modelUser.ExternalID,
		Email:            modelUser.Email,
		DisplayName:      modelUser.DisplayName.String,
		TargetLanguageID: modelUser.TargetLanguageID.String,
		CreatedAt:        modelUser.CreatedAt,
		UpdatedAt:        modelUser.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

func fromDomainUser(domainUser *domain.User) *models.User {
	if domainUser == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if domainUser.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*domainUser.DeletedAt)
	}

	return &models.User{
		ID:               domainUser.ID,
		ExternalID:       domainUser.ExternalID,
		Email:            domainUser.Email,
		DisplayName:      util.StringToNullString(domainUser.DisplayName),
		TargetLanguageID: util.StringToNullString(domainUser.TargetLanguageID),
		CreatedAt:        domainUser.CreatedAt,
		UpdatedAt:        domainUser.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, domainUser *domain.User) error {
	modelUser := fromDomainUser(domainUser)

	if modelUser.CreatedAt.IsZero() {
		modelUser.CreatedAt = time.Now()
	}
	modelUser.UpdatedAt = time.Now()

	query := `INSERT INTO users (id, external_id, email, display_name, target_language_id, created_at, updated_at, deleted_at)
	          VALUES (:ID, :EXTERNAL_ID, :EMAIL, :DISPLAY_NAME, :TARGET_LANGUAGE_ID, :CREATED_AT, :UPDATED_AT, :DELETED_AT)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.NamedExecContext(ctx, query, modelUser); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByExternalID retrieves a user by the auth provider's identifier.
func (r *sqlxUserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE external_id = :1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by external_id: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = :1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}

// UpdateUser updates an existing user's mutable profile fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, domainUser *domain.User) error {
	modelUser := fromDomainUser(domainUser)
	modelUser.UpdatedAt = time.Now()

	query := `UPDATE users SET
	            email = :EMAIL,
	            display_name = :DISPLAY_NAME,
	            target_language_id = :TARGET_LANGUAGE_ID,
	            updated_at = :UPDATED_AT
	          WHERE id = :ID AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, modelUser)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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

// SetTargetLanguage records the user's chosen contribution language.
func (r *sqlxUserRepository) SetTargetLanguage(ctx context.Context, userID, languageID string) error {
	query := `UPDATE users SET target_language_id = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, languageID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set target language: %w", err)
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
