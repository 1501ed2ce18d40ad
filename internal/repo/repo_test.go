package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "Beltline/internal/errors"
)

func newMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserDB(db), mock
}

const insertUser = "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"

func TestCreateUser(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WithArgs("ana", "ana@plant.example", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := r.CreateUser(context.Background(), "ana", "ana@plant.example", "hash")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserConflict(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := r.CreateUser(context.Background(), "ana", "ana@plant.example", "hash")
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDatabaseError(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WillReturnError(errs.New("connection reset"))

	_, err := r.CreateUser(context.Background(), "ana", "ana@plant.example", "hash")
	require.Error(t, err)
	assert.False(t, errs.Is(err, errs.ErrConflict))
}

func TestUserByLogin(t *testing.T) {
	r, mock := newMock(t)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, email, password, created_at FROM users WHERE login=$1")).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "email", "password", "created_at"}).
			AddRow(7, "ana", "ana@plant.example", "hash", created))

	u, err := r.UserByLogin(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, User{ID: 7, Login: "ana", Email: "ana@plant.example", PasswordHash: "hash", CreatedAt: created}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotFound(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE login=$1")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "email", "password", "created_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id=$1")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "email", "password", "created_at"}))

	_, err := r.UserByLogin(context.Background(), "nobody")
	assert.True(t, errs.Is(err, errs.ErrNotFound))
	_, err = r.UserByID(context.Background(), 42)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSSLMode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"postgres://u:p@db/beltline", "postgres://u:p@db/beltline?sslmode=require"},
		{"postgres://u:p@db/beltline?connect_timeout=5", "postgres://u:p@db/beltline?connect_timeout=5&sslmode=require"},
		{"postgres://db/beltline?sslmode=disable", "postgres://db/beltline?sslmode=disable"},
		{"user=postgres dbname=beltline", "user=postgres dbname=beltline sslmode=require"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, withSSLMode(tt.in), tt.in)
	}
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}
