package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrValidation         = errors.New("username and password are required")
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid identity token")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Username uniqueness is enforced by the implementation, which must return
// ErrUserAlreadyExists when a write collides with an existing username.
type UserRepository interface {
	// Create stores the user and returns it with the identifier assigned by the store.
	Create(ctx context.Context, user User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
