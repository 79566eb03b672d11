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

// sqlxRoleRepository implements domain.RoleRepository using sqlx.
type sqlxRoleRepository struct {
	db *sqlx.DB
}

// NewSQLXRoleRepository creates a new instance of sqlxRoleRepository.
func NewSQLXRoleRepository(db *sqlx.DB) domain.RoleRepository {
	return &sqlxRoleRepository{db: db}
}

func toDomainRole(modelRole *models.Role) *domain.Role {
	if modelRole == nil {
		return nil
	}
	return &domain.Role{
		ID:   modelRole.ID,
		Name: modelRole.Name,
	}
}

// GetRoleByName resolves a role by its unique name.
// Returns (nil, nil) when the role table has no such row.
func (r *sqlxRoleRepository) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role models.Role
	query := `SELECT * FROM roles WHERE name = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &role, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return toDomainRole(&role), nil
}

// GetUserRole resolves the user's active role assignment joined with the
// role name. Returns (nil, nil) when the user has no assignment.
func (r *sqlxRoleRepository) GetUserRole(ctx context.Context, userID string) (*domain.Role, error) {
	var role models.Role
	query := `SELECT r.id, r.name, r.created_at
	          FROM user_roles ur
	          JOIN roles r ON ur.role_id = r.id
	          WHERE ur.user_id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &role, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user role: %w", err)
	}
	return toDomainRole(&role), nil
}

// ReplaceUserRole deletes any existing role rows for the user and inserts a
// single new assignment. The user_roles.user_id unique constraint turns a
// concurrent double replacement into a constraint violation instead of two
// surviving rows. Runs against the context's transaction when one is active.
func (r *sqlxRoleRepository) ReplaceUserRole(ctx context.Context, userID, roleID string) error {
	executor := GetExecutor(ctx, r.db)

	deleteQuery := `DELETE FROM user_roles WHERE user_id = :1`
	if _, err := executor.ExecContext(ctx, deleteQuery, userID); err != nil {
		return fmt.Errorf("failed to delete existing user roles: %w", err)
	}

	insertQuery := `INSERT INTO user_roles (id, user_id, role_id, created_at)
	                VALUES (:1, :2, :3, :4)`
	if _, err := executor.ExecContext(ctx, insertQuery, util.NewULID(), userID, roleID, time.Now()); err != nil {
		return fmt.Errorf("failed to insert user role: %w", err)
	}
	return nil
}
