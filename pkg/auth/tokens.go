package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// IdentityVerifier checks an externally issued identity token and returns
// its verified claims. Any failure means the token must not be trusted.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}
