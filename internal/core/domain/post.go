package domain

import "time"

// Author is the public projection of a post's author.
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Post is a link shared by an admin that users can favorite.
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	AuthorID       string    `json:"authorId"`
	Author         *Author   `json:"author,omitempty"`
	FavoritesCount int64     `json:"favoritesCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PostChanges carries a partial post update. Nil fields are left untouched.
type PostChanges struct {
	Title       *string
	Description *string
	URL         *string
}

// Empty reports whether the update would change nothing.
func (c PostChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.URL == nil
}

// Favorite links a user to a post they marked. A (UserID, PostID) pair is unique.
type Favorite struct {
	UserID    string
	PostID    string
	CreatedAt time.Time
}
