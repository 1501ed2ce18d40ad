// Package repo stores service accounts in Postgres. Calculation results are
// not persisted.
package repo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	errs "Beltline/internal/errors"
)

const uniqueViolation = "23505"

// Schema creates the accounts table.
const Schema = `CREATE TABLE IF NOT EXISTS users (
	id         SERIAL PRIMARY KEY,
	login      TEXT NOT NULL UNIQUE,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type User struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	UserByLogin(ctx context.Context, login string) (User, error)
	UserByID(ctx context.Context, id int) (User, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Open connects to Postgres and checks the connection. TLS is required
// unless the URL chooses an sslmode.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		return nil, errs.Wrap(errs.ErrInvalidInput, "database url is empty")
	}
	db, err := sql.Open("postgres", withSSLMode(url))
	if err != nil {
		return nil, errs.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "ping database")
	}
	return db, nil
}

func withSSLMode(url string) string {
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		if strings.Contains(url, "?") {
			return url + "&sslmode=require"
		}
		return url + "?sslmode=require"
	}
	return url + " sslmode=require"
}

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errs.Wrap(err, "create users table")
	}
	return nil
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errs.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, errs.Wrapf(errs.ErrConflict, "user %q", login)
		}
		return 0, errs.Wrap(err, "insert user")
	}
	return id, nil
}

func (r *PostgresUserRepository) UserByLogin(ctx context.Context, login string) (User, error) {
	query := "SELECT id, login, email, password, created_at FROM users WHERE login=$1"
	return r.one(ctx, query, login)
}

func (r *PostgresUserRepository) UserByID(ctx context.Context, id int) (User, error) {
	query := "SELECT id, login, email, password, created_at FROM users WHERE id=$1"
	return r.one(ctx, query, id)
}

func (r *PostgresUserRepository) one(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errs.Is(err, sql.ErrNoRows) {
		return User{}, errs.Wrapf(errs.ErrNotFound, "user %v", arg)
	}
	if err != nil {
		return User{}, errs.Wrap(err, "select user")
	}
	return u, nil
}
