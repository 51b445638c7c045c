package ports

import (
	"context"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// PostRepository is the storage collaborator for posts and favorites.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// FindByID returns the post with its author projection populated.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns every post, newest first, with author and favorites count.
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)

	// AddFavorite returns domain.ErrAlreadyFavorite when the pair exists.
	AddFavorite(ctx context.Context, fav domain.Favorite) error
	// RemoveFavorite returns domain.ErrFavoriteNotFound when the pair is absent.
	RemoveFavorite(ctx context.Context, userID, postID string) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.Post, error)
}

// PostCache is a read-through cache in front of the public post reads.
// A miss is reported with ok == false and a nil error.
//
// Fills are conditional. Callers read Generation before going to storage and
// pass it to SetList/SetPost, which store nothing once Invalidate or Purge
// has moved the generation on. A read that raced a write cannot put the old
// value back.
type PostCache interface {
	GetList(ctx context.Context) (posts []*domain.Post, ok bool, err error)
	GetPost(ctx context.Context, id string) (post *domain.Post, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	SetList(ctx context.Context, gen int64, posts []*domain.Post) error
	SetPost(ctx context.Context, gen int64, post *domain.Post) error
	// Invalidate drops the list and the given items and bumps the generation.
	Invalidate(ctx context.Context, ids ...string) error
	// Purge drops every cached post and bumps the generation.
	Purge(ctx context.Context) error
}
