package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (User, error)
	Login(ctx context.Context, username, password string) (AuthResult, error)
	GoogleSignIn(ctx context.Context, idToken string) (AuthResult, error)
	Profile(ctx context.Context, userID string) (User, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo     UserRepository
	tokens   TokenGenerator
	verifier IdentityVerifier
	cost     int
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, verifier IdentityVerifier) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, verifier: verifier, cost: bcrypt.DefaultCost}
}

func (s *authService) Register(ctx context.Context, username, password string) (User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, ErrValidation
	}

	// Fail fast on a known username; the store's unique index settles races.
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	hash := string(passwordHash)

	user, err := s.repo.Create(ctx, User{
		Username:     username,
		PasswordHash: &hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, ErrUserAlreadyExists
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return AuthResult{}, ErrValidation
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrNotFound
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !user.HasPassword() {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return AuthResult{}, ErrInvalidToken
	}
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if identity.Email == "" {
		return AuthResult{}, fmt.Errorf("%w: token has no email claim", ErrInvalidToken)
	}

	user, err := s.findOrProvision(ctx, identity)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(ctx, user)
}

// findOrProvision returns the user keyed by the verified email, creating a
// password-less account on first sight.
func (s *authService) findOrProvision(ctx context.Context, identity Identity) (User, error) {
	user, err := s.repo.GetByUsername(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	user, err = s.repo.Create(ctx, User{
		Username:  identity.Email,
		Name:      identity.Name,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, ErrUserAlreadyExists) {
		// A concurrent sign-in for the same email won the insert.
		user, err = s.repo.GetByUsername(ctx, identity.Email)
	}
	if err != nil {
		return User{}, fmt.Errorf("provision user: %w", err)
	}
	return user, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *authService) issue(ctx context.Context, user User) (AuthResult, error) {
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{User: user, Token: token}, nil
}
