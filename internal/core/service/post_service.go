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

// ErrNoPosts is returned when the caller has not authored any post yet.
var ErrNoPosts = domain.WithMessage(domain.ErrNotFound, "you don't have any posts")

type PostService struct {
	repo  ports.PostRepository
	cache ports.PostCache
	log   zerolog.Logger
}

func NewPostService(repo ports.PostRepository, cache ports.PostCache, log zerolog.Logger) *PostService {
	if cache == nil {
		cache = NopPostCache{}
	}
	return &PostService{repo: repo, cache: cache, log: log}
}

func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if in.URL == "" {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "url is required")
	}

	now := time.Now().UTC()
	post, err := s.repo.Create(ctx, &domain.Post{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		AuthorID:    in.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Str("post_id", post.ID).Str("author_id", in.AuthorID).Msg("post created")
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	if changes.Empty() {
		post, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, withPostID(err, id)
		}
		return post, nil
	}
	post, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, withPostID(err, id)
	}
	s.invalidate(ctx, id)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return withPostID(err, id)
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

// Get returns a single post, served from cache when possible.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	cached, ok, err := s.cache.GetPost(ctx, id)
	if ok {
		metrics.PostCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	gen, fill := s.lookupMissed(ctx, err)

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, withPostID(err, id)
	}
	if fill {
		if err := s.cache.SetPost(ctx, gen, post); err != nil {
			s.log.Warn().Err(err).Str("post_id", id).Msg("post cache fill failed")
		}
	}
	return post, nil
}

// List returns every post, served from cache when possible.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	cached, ok, err := s.cache.GetList(ctx)
	if ok {
		metrics.PostCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	gen, fill := s.lookupMissed(ctx, err)

	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if fill {
		if err := s.cache.SetList(ctx, gen, posts); err != nil {
			s.log.Warn().Err(err).Msg("post cache fill failed")
		}
	}
	return posts, nil
}

// lookupMissed counts a lookup that did not hit and, for a clean miss, reads
// the generation the fill must be checked against. It reports whether the
// caller should fill the cache afterwards.
func (s *PostService) lookupMissed(ctx context.Context, lookupErr error) (int64, bool) {
	if lookupErr != nil {
		s.cacheError(lookupErr)
		return 0, false
	}
	metrics.PostCacheTotal.WithLabelValues("miss").Inc()

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("post cache generation unavailable")
		return 0, false
	}
	return gen, true
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	return posts, nil
}

func (s *PostService) AddFavorite(ctx context.Context, userID, postID string) error {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		return withPostID(err, postID)
	}

	if err := s.repo.AddFavorite(ctx, domain.Favorite{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	s.invalidate(ctx, postID)
	metrics.FavoritesAddedTotal.Inc()
	return nil
}

func (s *PostService) RemoveFavorite(ctx context.Context, userID, postID string) error {
	if err := s.repo.RemoveFavorite(ctx, userID, postID); err != nil {
		return err
	}
	s.invalidate(ctx, postID)
	return nil
}

func (s *PostService) ListFavorites(ctx context.Context, userID string) ([]*domain.Post, error) {
	return s.repo.ListFavorites(ctx, userID)
}

func (s *PostService) invalidate(ctx context.Context, ids ...string) {
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.log.Warn().Err(err).Strs("post_ids", ids).Msg("post cache invalidation failed")
	}
}

func (s *PostService) cacheError(err error) {
	metrics.PostCacheTotal.WithLabelValues("error").Inc()
	s.log.Warn().Err(err).Msg("post cache unavailable")
}

// withPostID adds the offending id to not-found errors for the client message.
func withPostID(err error, id string) error {
	if errors.Is(err, domain.ErrPostNotFound) {
		return domain.WithMessage(domain.ErrPostNotFound, "no post with id %s", id)
	}
	return err
}

// NopPostCache is the cache used when Redis is not configured.
type NopPostCache struct{}

func (NopPostCache) GetList(context.Context) ([]*domain.Post, bool, error) { return nil, false, nil }
func (NopPostCache) GetPost(context.Context, string) (*domain.Post, bool, error) { return nil, false, nil }
func (NopPostCache) Generation(context.Context) (int64, error) { return 0, nil }
func (NopPostCache) SetList(context.Context, int64, []*domain.Post) error { return nil }
func (NopPostCache) SetPost(context.Context, int64, *domain.Post) error { return nil }
func (NopPostCache) Invalidate(context.Context, ...string) error { return nil }
func (NopPostCache) Purge(context.Context) error { return nil }
