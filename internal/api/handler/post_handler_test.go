package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/favboard/favboard-api/internal/api/middleware"
	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
)

type stubPostService struct {
	ports.PostService
	created   ports.CreatePostInput
	favorited [2]string
	posts     []*domain.Post
	err       error
}

func (s *stubPostService) Create(_ context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	s.created = in
	return &domain.Post{ID: "p1", URL: in.URL, AuthorID: in.AuthorID}, s.err
}

func (s *stubPostService) List(context.Context) ([]*domain.Post, error) { return s.posts, s.err }

func (s *stubPostService) Delete(context.Context, string) error { return s.err }

func (s *stubPostService) AddFavorite(_ context.Context, userID, postID string) error {
	s.favorited = [2]string{userID, postID}
	return s.err
}

func (s *stubPostService) ListFavorites(context.Context, string) ([]*domain.Post, error) {
	return s.posts, s.err
}

// withCaller attaches identity the way Gate does.
func withCaller(c echo.Context, identity *domain.User) {
	middleware.SetIdentity(c, identity)
}

func TestPostHandler_Create_UsesCallerAsAuthor(t *testing.T) {
	stub := &stubPostService{}
	h := NewPostHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/posts", `{"title":"Go","url":"https://go.dev"}`)
	withCaller(c, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created.AuthorID != "admin-1" || stub.created.URL != "https://go.dev" {
		t.Fatalf("unexpected input %+v", stub.created)
	}
}

func TestPostHandler_Create_RequiresURL(t *testing.T) {
	h := NewPostHandler(&stubPostService{})

	c, _ := newTestContext(http.MethodPost, "/api/posts", `{"title":"Go"}`)
	withCaller(c, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})

	var ve *ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPostHandler_Create_WithoutCaller(t *testing.T) {
	h := NewPostHandler(&stubPostService{})
	c, _ := newTestContext(http.MethodPost, "/api/posts", `{"url":"https://go.dev"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPostHandler_ListEmptyIsArray(t *testing.T) {
	h := NewPostHandler(&stubPostService{})
	c, rec := newTestContext(http.MethodGet, "/api/posts", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	h := NewPostHandler(&stubPostService{})
	c, rec := newTestContext(http.MethodDelete, "/api/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "success" || resp.Message == "" {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestPostHandler_AddFavorite(t *testing.T) {
	stub := &stubPostService{}
	h := NewPostHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/posts/favorites", `{"postId":"p9"}`)
	withCaller(c, &domain.User{ID: "u1"})

	if err := h.AddFavorite(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.favorited != [2]string{"u1", "p9"} {
		t.Fatalf("unexpected favorite %v", stub.favorited)
	}

	stub.err = domain.ErrAlreadyFavorite
	c, _ = newTestContext(http.MethodPost, "/api/posts/favorites", `{"postId":"p9"}`)
	withCaller(c, &domain.User{ID: "u1"})
	if err := h.AddFavorite(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPostHandler_AddFavorite_RequiresPostID(t *testing.T) {
	h := NewPostHandler(&stubPostService{})
	c, _ := newTestContext(http.MethodPost, "/api/posts/favorites", `{}`)
	withCaller(c, &domain.User{ID: "u1"})

	if err := h.AddFavorite(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
