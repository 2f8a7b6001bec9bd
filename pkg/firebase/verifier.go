// Package firebase adapts the Firebase Admin SDK to the identity check used
// by Google Sign-In.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
)

var ErrNotConfigured = errors.New("firebase auth is not configured")

// TokenVerifier is the subset of *auth.Client used to check ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Credentials selects how the Firebase app authenticates. JSON wins over
// File; ProjectID alone is enough for ID-token checks.
type Credentials struct {
	ProjectID string
	JSON      string
	File      string
}

// NewClient initialises a Firebase app and returns its Auth client.
func NewClient(ctx context.Context, creds Credentials) (*fbauth.Client, error) {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(creds.JSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(creds.JSON)))
	case creds.File != "":
		opts = append(opts, option.WithCredentialsFile(creds.File))
	case strings.TrimSpace(creds.ProjectID) != "":
		// ID-token verification only reads Google's public certificates.
		opts = append(opts, option.WithoutAuthentication())
	case os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "":
		// application default credentials
	default:
		return nil, ErrNotConfigured
	}

	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: strings.TrimSpace(creds.ProjectID)}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}

type Verifier struct {
	tokens TokenVerifier
}

// NewVerifier wraps a Firebase token client. A nil client rejects every token.
func NewVerifier(tokens TokenVerifier) *Verifier {
	return &Verifier{tokens: tokens}
}

// Verify checks a Firebase ID token and returns the identity it asserts.
func (v *Verifier) Verify(ctx context.Context, idToken string) (auth.Identity, error) {
	if v.tokens == nil {
		return auth.Identity{}, ErrNotConfigured
	}
	token, err := v.tokens.VerifyIDToken(ctx, idToken)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("verify id token: %w", err)
	}

	subject := token.UID
	if subject == "" {
		subject = token.Subject
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	return auth.Identity{Subject: subject, Email: email, Name: name}, nil
}
