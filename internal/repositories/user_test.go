package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naija-events/internal/models"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "password_hash", "created_at", "updated_at"})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	name := "Ada Obi"
	user := &models.User{Email: "ada@example.com", FullName: &name, PasswordHash: "hash"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "Ada Obi", nil, "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("user-1", testNow, testNow))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, "user-1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := repo.Create(context.Background(), &models.User{Email: "ada@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs("user-1").
		WillReturnRows(userRows().AddRow("user-1", "ada@example.com", "Ada Obi", nil, "hash", testNow, testNow))

	user, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Obi", user.DisplayName())
	assert.Nil(t, user.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "no rows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM users").WillReturnRows(userRows())
			},
		},
		{
			name: "malformed id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM users").WillReturnError(&pq.Error{Code: "22P02"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			user, err := NewUserRepository(db).GetByID(context.Background(), "nope")
			assert.Nil(t, user)
			assert.ErrorIs(t, err, models.ErrUserNotFound)
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("LOWER\\(email\\) = LOWER\\(\\$1\\)").
		WithArgs("ADA@example.com").
		WillReturnRows(userRows().AddRow("user-1", "ada@example.com", nil, nil, "hash", testNow, testNow))
	mock.ExpectQuery("LOWER\\(email\\)").
		WithArgs("ghost@example.com").
		WillReturnRows(userRows())

	user, err := repo.GetByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
