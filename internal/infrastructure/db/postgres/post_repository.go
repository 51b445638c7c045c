package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/favboard/favboard-api/internal/core/domain"
)

const postColumns = `p.*, u.first_name AS author_first_name, u.last_name AS author_last_name,
(SELECT COUNT(*) FROM favorites f WHERE f.post_id = p.id) AS favorites_count`

// PostRepository implements ports.PostRepository on the posts and favorites tables.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	rec := &postRecord{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL,
		AuthorID:    post.AuthorID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return r.FindByID(ctx, rec.ID)
}

func (r *PostRepository) Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.URL != nil {
		updates["url"] = *changes.URL
	}

	res := r.db.WithContext(ctx).Model(&postRecord{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the post; its favorites go with it via ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	posts, err := r.find(r.posts(ctx).Where("p.id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return posts[0], nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.find(r.posts(ctx).Order("p.created_at DESC"))
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return r.find(r.posts(ctx).Where("p.author_id = ?", authorID).Order("p.created_at DESC"))
}

func (r *PostRepository) AddFavorite(ctx context.Context, fav domain.Favorite) error {
	rec := &favoriteRecord{UserID: fav.UserID, PostID: fav.PostID, CreatedAt: fav.CreatedAt}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyFavorite
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *PostRepository) RemoveFavorite(ctx context.Context, userID, postID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&favoriteRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *PostRepository) ListFavorites(ctx context.Context, userID string) ([]*domain.Post, error) {
	return r.find(r.posts(ctx).
		Joins("JOIN favorites fav ON fav.post_id = p.id").
		Where("fav.user_id = ?", userID).
		Order("fav.created_at DESC"))
}

func (r *PostRepository) posts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts p").
		Select(postColumns).
		Joins("JOIN users u ON u.id = p.author_id")
}

func (r *PostRepository) find(q *gorm.DB) ([]*domain.Post, error) {
	var rows []postRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	posts := make([]*domain.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toDomain()
	}
	return posts, nil
}
