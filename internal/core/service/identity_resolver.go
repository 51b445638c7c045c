package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// ResolutionStage names the step of identity resolution that failed.
type ResolutionStage uint8

const (
	// StageHeader: the Authorization header is missing or not "Bearer <token>".
	StageHeader ResolutionStage = iota + 1
	// StageToken: the token failed signature or expiry checks.
	StageToken
	// StageIdentity: the token is valid but its identity no longer exists.
	StageIdentity
)

func (s ResolutionStage) String() string {
	switch s {
	case StageHeader:
		return "header"
	case StageToken:
		return "token"
	case StageIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// ResolutionError reports which stage rejected a request. It always matches
// domain.ErrUnauthorized, so callers cannot tell stages apart by status.
type ResolutionError struct {
	Stage ResolutionStage
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return "resolve identity: " + e.Stage.String()
	}
	return fmt.Sprintf("resolve identity: %s: %v", e.Stage, e.Err)
}

func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrUnauthorized}
	}
	return []error{domain.ErrUnauthorized, e.Err}
}

var errMalformedHeader = errors.New("missing or malformed authorization header")

// Resolver implements ports.IdentityResolver.
type Resolver struct {
	tokens ports.TokenService
	users  ports.IdentityRepository
}

func NewResolver(tokens ports.TokenService, users ports.IdentityRepository) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve verifies the bearer token in authorization and loads its identity
// with the password hash stripped.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (*domain.User, error) {
	raw, ok := bearerToken(authorization)
	if !ok {
		return nil, &ResolutionError{Stage: StageHeader, Err: errMalformedHeader}
	}

	id, err := r.tokens.Verify(raw)
	if err != nil {
		return nil, &ResolutionError{Stage: StageToken, Err: err}
	}

	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &ResolutionError{Stage: StageIdentity, Err: err}
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	return user.Public(), nil
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
