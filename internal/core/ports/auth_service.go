package ports

import (
	"context"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService issues tokens for new and returning identities.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(identityID string) (string, error)
	Verify(token string) (string, error)
}

// PasswordHasher is the one-way credential hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. An empty digest never matches.
	Verify(plaintext, digest string) bool
}

// IdentityResolver turns an Authorization header value into a live identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (*domain.User, error)
}
