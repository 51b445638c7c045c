package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
)

// UserService manages existing accounts.
type UserService struct {
	repo   ports.IdentityRepository
	hasher ports.PasswordHasher
	cache  ports.PostCache
	log    zerolog.Logger
}

func NewUserService(repo ports.IdentityRepository, hasher ports.PasswordHasher, cache ports.PostCache, log zerolog.Logger) *UserService {
	if cache == nil {
		cache = NopPostCache{}
	}
	return &UserService{repo: repo, hasher: hasher, cache: cache, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	changes := domain.UserChanges{
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		changes.Email = &email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return user.Public(), nil
	}

	user, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	// Author names are embedded in cached posts.
	if changes.FirstName != nil || changes.LastName != nil {
		s.invalidate(ctx)
	}
	return user.Public(), nil
}

// Delete removes the account; its posts and favorites go with it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("user_id", id).Msg("identity deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context) {
	if err := s.cache.Purge(ctx); err != nil {
		s.log.Warn().Err(err).Msg("post cache invalidation failed")
	}
}
