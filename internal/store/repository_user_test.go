package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return &DB{DB: mockDB, logger: logger.Nop()}, mock
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password", "role"}).
		AddRow(user.ID, user.FirstName, user.LastName, user.Email, user.Password, string(user.Role))
}

func TestUserRepository_Create_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	want := models.User{
		ID:        1,
		FirstName: "Ada",
		LastName:  "L",
		Email:     "a@x",
		Password:  "$2a$10$hash",
		Role:      models.RoleCustomer,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ada", "L", "a@x", "$2a$10$hash", "CUSTOMER").
		WillReturnRows(userRows(want))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), models.User{
		FirstName: "Ada",
		LastName:  "L",
		Email:     "a@x",
		Password:  "$2a$10$hash",
		Role:      models.RoleCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, want, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.User{
		FirstName: "Ada",
		LastName:  "L",
		Email:     "a@x",
		Password:  "pw",
		Role:      models.RoleCustomer,
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FindByEmail_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	want := models.User{ID: 7, FirstName: "Ada", LastName: "L", Email: "a@x", Password: "h", Role: models.RoleAdmin}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("a@x").
		WillReturnRows(userRows(want))

	found, err := repo.FindByEmail(context.Background(), "a@x")
	require.NoError(t, err)
	assert.Equal(t, want, found)
}

func TestUserRepository_FindAll_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password", "role"}))

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), models.User{ID: 42, Email: "a@x", Password: "h", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdatePartial_MergesFields(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	current := models.User{ID: 1, FirstName: "Ada", LastName: "L", Email: "a@x", Password: "h", Role: models.RoleCustomer}
	merged := current
	merged.FirstName = "Grace"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRows(current))
	mock.ExpectQuery("UPDATE users").
		WithArgs("Grace", "L", "a@x", "h", "CUSTOMER", int64(1)).
		WillReturnRows(userRows(merged))
	mock.ExpectCommit()

	updated, err := repo.UpdatePartial(context.Background(), 1, map[string]any{
		"firstName": "Grace",
		"id":        int64(99999),
		"unknown":   "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, int64(1), updated.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePartial_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdatePartial(context.Background(), 404, map[string]any{"firstName": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing row", affected: 1, want: true},
		{name: "absent row", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewUserRepository(db, logger.Nop())

			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM users").
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			deleted, err := repo.Delete(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}
