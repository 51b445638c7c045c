package ports

import (
	"context"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// CreatePostInput carries a new post; AuthorID is the caller's identity.
type CreatePostInput struct {
	Title       string
	Description string
	URL         string
	AuthorID    string
}

// PostService defines use-case operations for posts and favorites.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)

	AddFavorite(ctx context.Context, userID, postID string) error
	RemoveFavorite(ctx context.Context, userID, postID string) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.Post, error)
}
