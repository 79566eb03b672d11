package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"neolingo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRoleTestDB creates a new sqlx.DB instance and sqlmock for role repository testing.
func setupRoleTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestSQLXRoleRepository_GetRoleByName(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ID", "NAME", "CREATED_AT"}).
		AddRow("role1", domain.RoleContributor, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE name = :1`)).
		WithArgs(domain.RoleContributor).
		WillReturnRows(rows)

	role, err := repo.GetRoleByName(context.Background(), domain.RoleContributor)

	assert.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "role1", role.ID)
	assert.Equal(t, domain.RoleContributor, role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXRoleRepository_GetRoleByName_NotFound(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE name = :1`)).
		WithArgs("NO_SUCH_ROLE").
		WillReturnError(sql.ErrNoRows)

	role, err := repo.GetRoleByName(context.Background(), "NO_SUCH_ROLE")

	// Missing role rows are a configuration problem the service layer
	// decides how to report, not a repository error.
	assert.NoError(t, err)
	assert.Nil(t, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXRoleRepository_GetUserRole(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ID", "NAME", "CREATED_AT"}).
		AddRow("role1", domain.RoleExplorer, time.Now())

	mock.ExpectQuery(`SELECT r\.id, r\.name, r\.created_at\s+FROM user_roles ur\s+JOIN roles r ON ur\.role_id = r\.id\s+WHERE ur\.user_id = :1`).
		WithArgs("user1").
		WillReturnRows(rows)

	role, err := repo.GetUserRole(context.Background(), "user1")

	assert.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, domain.RoleExplorer, role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXRoleRepository_GetUserRole_NoAssignment(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	mock.ExpectQuery(`FROM user_roles ur`).
		WithArgs("user-without-role").
		WillReturnError(sql.ErrNoRows)

	role, err := repo.GetUserRole(context.Background(), "user-without-role")

	assert.NoError(t, err)
	assert.Nil(t, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXRoleRepository_ReplaceUserRole(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	// Delete-then-insert keeps at most one role row per user.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE user_id = :1`)).
		WithArgs("user1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_roles (id, user_id, role_id, created_at)`)).
		WithArgs(sqlmock.AnyArg(), "user1", "role-contributor", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.ReplaceUserRole(context.Background(), "user1", "role-contributor")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXRoleRepository_ReplaceUserRole_InTransaction(t *testing.T) {
	db, mock := setupRoleTestDB(t)
	repo := NewSQLXRoleRepository(db)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE user_id = :1`)).
		WithArgs("user1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_roles`)).
		WithArgs(sqlmock.AnyArg(), "user1", "role-contributor", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), TransactionContextKey, tx)
	err = repo.ReplaceUserRole(ctx, "user1", "role-contributor")
	assert.NoError(t, err)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
