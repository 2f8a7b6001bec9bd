package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case **string:
			if v, ok := r.values[i].(string); ok {
				*p = &v
			} else {
				*p = nil
			}
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	execErr  error
	row      fakeRow
	queryArg any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if len(args) > 0 {
		f.queryArg = args[0]
	}
	return f.row
}

func TestNewUserRepository_EnsuresSchema(t *testing.T) {
	db := &fakeDB{}
	_, err := NewUserRepository(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, db.execSQL, 1)
	assert.True(t, strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS users"))
}

func TestCreate(t *testing.T) {
	db := &fakeDB{}
	repo := &UserRepository{db: db}

	user, err := repo.Create(context.Background(), auth.User{Username: "g@b.com", Name: "Gee"})
	require.NoError(t, err)
	_, err = uuid.Parse(user.ID)
	require.NoError(t, err)
	assert.False(t, user.CreatedAt.IsZero())

	args := db.execArgs[0]
	assert.Equal(t, "g@b.com", args[1])
	assert.Nil(t, args[2].(*string))
	require.NotNil(t, args[3].(*string))
	assert.Equal(t, "Gee", *args[3].(*string))
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo := &UserRepository{db: &fakeDB{execErr: &pgconn.PgError{Code: "23505"}}}

	_, err := repo.Create(context.Background(), auth.User{Username: "dup"})
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

func TestCreate_OtherError(t *testing.T) {
	boom := errors.New("boom")
	repo := &UserRepository{db: &fakeDB{execErr: boom}}

	_, err := repo.Create(context.Background(), auth.User{Username: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestGetByUsername(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{id, "a@b.com", "$2a$10$hash", nil, created}}}
	repo := &UserRepository{db: db}

	user, err := repo.GetByUsername(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id.String(), user.ID)
	assert.Equal(t, "a@b.com", db.queryArg)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, "$2a$10$hash", *user.PasswordHash)
	assert.Empty(t, user.Name)
	assert.Equal(t, created, user.CreatedAt)
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo := &UserRepository{db: &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}}

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{row: fakeRow{values: []any{id, "g@b.com", nil, "Gee", time.Now()}}}
	repo := &UserRepository{db: db}

	user, err := repo.GetByID(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, id, db.queryArg)
	assert.Nil(t, user.PasswordHash)
	assert.Equal(t, "Gee", user.Name)

	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}
