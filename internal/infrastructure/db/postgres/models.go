package postgres

import (
	"time"

	"github.com/favboard/favboard-api/internal/core/domain"
)

type userRecord struct {
	ID           string      `gorm:"primaryKey"`
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         domain.Role `gorm:"type:varchar(16)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type postRecord struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	URL         string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (postRecord) TableName() string { return "posts" }

// postRow is a post joined with its author's names and favorites count.
type postRow struct {
	postRecord
	AuthorFirstName string
	AuthorLastName  string
	FavoritesCount  int64
}

func (r *postRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		AuthorID:    r.AuthorID,
		Author: &domain.Author{
			FirstName: r.AuthorFirstName,
			LastName:  r.AuthorLastName,
		},
		FavoritesCount: r.FavoritesCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type favoriteRecord struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (favoriteRecord) TableName() string { return "favorites" }
