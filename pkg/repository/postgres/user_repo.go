package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
)

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	db DB
}

func NewUserRepository(ctx context.Context, db DB) (*UserRepository, error) {
	repo := &UserRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NULL,
			name TEXT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	var name *string
	if user.Name != "" {
		name = &user.Name
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, user.PasswordHash, name, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, name, created_at
		FROM users WHERE username = $1
	`, username))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return auth.User{}, auth.ErrNotFound
	}
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, name, created_at
		FROM users WHERE id = $1
	`, uid))
}

func (r *UserRepository) scanUser(row pgx.Row) (auth.User, error) {
	var (
		user      auth.User
		id        uuid.UUID
		name      *string
		createdAt time.Time
	)
	if err := row.Scan(&id, &user.Username, &user.PasswordHash, &name, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.ID = id.String()
	if name != nil {
		user.Name = *name
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
