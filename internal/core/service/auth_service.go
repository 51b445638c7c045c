package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
	"github.com/favboard/favboard-api/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.IdentityRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.IdentityRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a regular identity and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.WithMessage(domain.ErrInvalidInput, "email and password are required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("register").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("identity registered")

	return token, created.Public(), nil
}

// Login checks credentials for email and returns a fresh token. An unknown
// email yields domain.ErrUserNotFound; a wrong password yields
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_identity").Inc()
			return "", nil, domain.WithMessage(domain.ErrUserNotFound, "unable to find user with %s", email)
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()

	return token, user.Public(), nil
}

// EnsureAdmin creates an admin identity for email unless one is already
// registered. It reports whether a new identity was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, false, domain.WithMessage(domain.ErrInvalidInput, "admin email is required")
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing.Public(), false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}
	if password == "" {
		return nil, false, domain.WithMessage(domain.ErrInvalidInput, "admin password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Info().Str("user_id", created.ID).Str("email", email).Msg("admin identity seeded")
	return created.Public(), true, nil
}
