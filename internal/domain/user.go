package domain

import (
	"context"
	"time"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name,omitempty"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, passwordHash, name string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}
}

// Principal is the caller of the current request as resolved from its session.
// The zero value is an anonymous caller.
type Principal struct {
	UserID string
	Email  string
}

// IsAuthenticated reports whether the principal carries a user id.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns its principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *User) error
	// GetByEmail returns ErrUserNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AuthService signs users up and in.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	// SignIn returns ErrInvalidCredentials for an unknown email or a wrong password alike.
	SignIn(ctx context.Context, email, password string) (token string, user *User, err error)
}
