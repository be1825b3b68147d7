package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func userColumns() []string {
	return []string{"id", "username", "password_hash", "role", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	duplicateErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'uq_users_username'"}

	tests := []struct {
		name        string
		user        *models.User
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success generates id",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(sqlmock.AnyArg(), "alice", "hashedpassword", models.RoleUser).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate username",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(sqlmock.AnyArg(), "alice", "hashedpassword", models.RoleUser).
					WillReturnError(duplicateErr)
			},
			expectedErr: models.ErrUsernameTaken,
		},
		{
			name: "database error",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(sqlmock.AnyArg(), "alice", "hashedpassword", models.RoleUser).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("failed to create user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			switch {
			case tt.expectedErr == nil:
				require.NoError(t, err)
				assert.NotEmpty(t, tt.user.ID)
			case errors.Is(tt.expectedErr, models.ErrUsernameTaken):
				assert.ErrorIs(t, err, models.ErrUsernameTaken)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, models.ErrUsernameTaken)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_KeepsProvidedID(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("fixed-id", "alice", "hash", models.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{ID: "fixed-id", Username: "alice", PasswordHash: "hash", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, "fixed-id", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns()).
					AddRow("id-1", "alice", "hash", "user", now, now)
				mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at, updated_at\s+FROM users\s+WHERE id = \?`).
					WithArgs("id-1").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at, updated_at\s+FROM users\s+WHERE id = \?`).
					WithArgs("id-1").
					WillReturnRows(sqlmock.NewRows(userColumns()))
			},
			expectedErr: models.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByID(context.Background(), "id-1")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
				assert.Equal(t, models.RoleUser, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow("id-1", "alice", "hash", "admin", now, now)
	mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at, updated_at\s+FROM users\s+WHERE username = \?`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at, updated_at\s+FROM users\s+WHERE username = \?`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "role", "created_at", "updated_at"}).
		AddRow("id-2", "bob", "user", now, now).
		AddRow("id-1", "alice", "admin", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT id, username, role, created_at, updated_at\s+FROM users\s+ORDER BY created_at DESC`).
		WillReturnRows(rows)

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Newest first, and the projection carries no hash
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)
	assert.Empty(t, users[0].PasswordHash)
	assert.Empty(t, users[1].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll_Empty(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, username, role, created_at, updated_at\s+FROM users\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role", "created_at", "updated_at"}))

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		excludeID string
		exists    bool
	}{
		{name: "exists", username: "alice", excludeID: "", exists: true},
		{name: "does not exist", username: "nobody", excludeID: "", exists: false},
		{name: "excluding own record", username: "alice", excludeID: "id-1", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(tt.username, tt.excludeID).
				WillReturnRows(rows)

			exists, err := repo.ExistsByUsername(context.Background(), tt.username, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	duplicateErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'bob' for key 'uq_users_username'"}

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("bob", "newhash", models.RoleAdmin, "id-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "rename onto taken username",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("bob", "newhash", models.RoleAdmin, "id-1").
					WillReturnError(duplicateErr)
			},
			expectedErr: models.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user := &models.User{ID: "id-1", Username: "bob", PasswordHash: "newhash", Role: models.RoleAdmin}
			err := repo.Update(context.Background(), user)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
	}{
		{name: "existing user", rowsAffected: 1},
		{name: "absent id is not an error", rowsAffected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			mock.ExpectExec(`DELETE FROM users WHERE id = \?`).
				WithArgs("id-1").
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Delete(context.Background(), "id-1")
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
