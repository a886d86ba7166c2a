package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

func TestUsers_Create(t *testing.T) {
	t.Run("Should map a unique violation to EmailTaken", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ada", "ada@example.com", "hash", domain.RoleUser).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		users := repository.NewUsers(mock)
		_, err = users.Create(context.Background(), "Ada", "ada@example.com", "hash", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("Should return the inserted row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := uuid.New()
		now := time.Now()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ada", "ada@example.com", "hash", domain.RoleUser).
			WillReturnRows(mock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
				AddRow(id, "Ada", "ada@example.com", "hash", domain.RoleUser, now, now))

		users := repository.NewUsers(mock)
		u, err := users.Create(context.Background(), "Ada", "ada@example.com", "hash", domain.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, domain.RoleUser, u.Role)
	})
}

func TestUsers_GetByEmail(t *testing.T) {
	t.Run("Should map a missing row to UserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("ghost@example.com").
			WillReturnError(pgx.ErrNoRows)

		users := repository.NewUsers(mock)
		_, err = users.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUsers_UpdateRole(t *testing.T) {
	t.Run("Should report UserNotFound when no row matches", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := uuid.New()
		mock.ExpectExec("UPDATE users SET role").
			WithArgs(id, domain.RoleStoreAdmin).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		users := repository.NewUsers(mock)
		err = users.UpdateRole(context.Background(), id, domain.RoleStoreAdmin)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
