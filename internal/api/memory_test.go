package api

import (
	"context"
	"sort"
	"sync"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// memoryStore backs both repositories for router tests.
type memoryStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	posts     map[string]domain.Post
	favorites map[[2]string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[string]domain.User),
		posts:     make(map[string]domain.Post),
		favorites: make(map[[2]string]bool),
	}
}

type memoryIdentities struct{ *memoryStore }

type memoryPosts struct{ *memoryStore }

func (s memoryIdentities) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s memoryIdentities) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s memoryIdentities) List(context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, &u)
	}
	return out, nil
}

func (s memoryIdentities) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	s.users[user.ID] = *user
	out := *user
	return &out, nil
}

func (s memoryIdentities) Update(_ context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if changes.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *changes.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *changes.Email
	}
	if changes.FirstName != nil {
		u.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		u.LastName = *changes.LastName
	}
	if changes.PasswordHash != nil {
		u.PasswordHash = *changes.PasswordHash
	}
	s.users[id] = u
	return &u, nil
}

func (s memoryIdentities) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	for pid, p := range s.posts {
		if p.AuthorID == id {
			delete(s.posts, pid)
		}
	}
	for k := range s.favorites {
		if k[0] == id {
			delete(s.favorites, k)
		}
	}
	return nil
}

func (s memoryPosts) decorate(p domain.Post) *domain.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = &domain.Author{FirstName: u.FirstName, LastName: u.LastName}
	}
	for k := range s.favorites {
		if k[1] == p.ID {
			p.FavoritesCount++
		}
	}
	return &p
}

func (s memoryPosts) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = *post
	return s.decorate(*post), nil
}

func (s memoryPosts) Update(_ context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.URL != nil {
		p.URL = *changes.URL
	}
	s.posts[id] = p
	return s.decorate(p), nil
}

func (s memoryPosts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(s.posts, id)
	for k := range s.favorites {
		if k[1] == id {
			delete(s.favorites, k)
		}
	}
	return nil
}

func (s memoryPosts) FindByID(_ context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return s.decorate(p), nil
}

func (s memoryPosts) list(keep func(domain.Post) bool) []*domain.Post {
	out := []*domain.Post{}
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, s.decorate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s memoryPosts) List(context.Context) ([]*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(domain.Post) bool { return true }), nil
}

func (s memoryPosts) ListByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(p domain.Post) bool { return p.AuthorID == authorID }), nil
}

func (s memoryPosts) AddFavorite(_ context.Context, fav domain.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]string{fav.UserID, fav.PostID}
	if s.favorites[k] {
		return domain.ErrAlreadyFavorite
	}
	s.favorites[k] = true
	return nil
}

func (s memoryPosts) RemoveFavorite(_ context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]string{userID, postID}
	if !s.favorites[k] {
		return domain.ErrFavoriteNotFound
	}
	delete(s.favorites, k)
	return nil
}

func (s memoryPosts) ListFavorites(_ context.Context, userID string) ([]*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(p domain.Post) bool { return s.favorites[[2]string{userID, p.ID}] }), nil
}
