package auth

import "time"

// User is a domain entity representing an account.
// PasswordHash is nil for accounts provisioned through federated sign-in.
type User struct {
	ID           string
	Username     string
	PasswordHash *string
	Name         string
	CreatedAt    time.Time
}

// HasPassword reports whether the user can authenticate with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Identity holds the verified claims of a federated identity token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}
