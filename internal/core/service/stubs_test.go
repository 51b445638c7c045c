package service

import (
	"context"
	"sort"
	"sync"

	"github.com/favboard/favboard-api/internal/core/domain"
)

type stubIdentityRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) List(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *stubIdentityRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubIdentityRepo) Update(_ context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if changes.Email != nil {
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
	return cloneUser(u), nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type favKey struct{ user, post string }

type stubPostRepo struct {
	mu        sync.Mutex
	posts     map[string]*domain.Post
	favorites map[favKey]bool
	findCalls int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{
		posts:     make(map[string]*domain.Post),
		favorites: make(map[favKey]bool),
	}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
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
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	return out, nil
}

func (r *stubPostRepo) ListByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (r *stubPostRepo) AddFavorite(_ context.Context, fav domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := favKey{fav.UserID, fav.PostID}
	if r.favorites[k] {
		return domain.ErrAlreadyFavorite
	}
	r.favorites[k] = true
	return nil
}

func (r *stubPostRepo) RemoveFavorite(_ context.Context, userID, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := favKey{userID, postID}
	if !r.favorites[k] {
		return domain.ErrFavoriteNotFound
	}
	delete(r.favorites, k)
	return nil
}

func (r *stubPostRepo) ListFavorites(_ context.Context, userID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for k := range r.favorites {
		if k.user != userID {
			continue
		}
		if p, ok := r.posts[k.post]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

// memoryCache records invalidations and can be told to fail.
type memoryCache struct {
	list        []*domain.Post
	items       map[string]*domain.Post
	gen         int64
	invalidated [][]string
	purges      int
	staleFills  int
	err         error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]*domain.Post)}
}

func (c *memoryCache) GetList(context.Context) ([]*domain.Post, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.list, c.list != nil, nil
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.gen, nil
}

func (c *memoryCache) SetList(_ context.Context, gen int64, posts []*domain.Post) error {
	if c.err != nil {
		return c.err
	}
	if gen != c.gen {
		c.staleFills++
		return nil
	}
	c.list = posts
	return nil
}

func (c *memoryCache) GetPost(_ context.Context, id string) (*domain.Post, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	p, ok := c.items[id]
	return p, ok, nil
}

func (c *memoryCache) SetPost(_ context.Context, gen int64, post *domain.Post) error {
	if c.err != nil {
		return c.err
	}
	if gen != c.gen {
		c.staleFills++
		return nil
	}
	c.items[post.ID] = post
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, ids ...string) error {
	c.invalidated = append(c.invalidated, ids)
	if c.err != nil {
		return c.err
	}
	c.gen++
	c.list = nil
	for _, id := range ids {
		delete(c.items, id)
	}
	return nil
}

func (c *memoryCache) Purge(context.Context) error {
	c.purges++
	if c.err != nil {
		return c.err
	}
	c.gen++
	c.list = nil
	c.items = make(map[string]*domain.Post)
	return nil
}

// plainHasher keeps tests fast; bcrypt itself is covered in hasher_test.go.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Verify(p, digest string) bool {
	return digest != "" && digest == "hashed:"+p
}
