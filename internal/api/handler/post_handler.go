package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
)

// PostHandler serves posts and favorites.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List handles GET /api/posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(posts))
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), ports.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		AuthorID:    identity.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /api/posts/:id.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  domain.Post
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), domain.PostChanges{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Status: "success", Message: "post deleted"})
}

// MyPosts handles GET /api/posts/my/posts.
//
// @Summary      Posts authored by the caller
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Post
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/my/posts [get]
func (h *PostHandler) MyPosts(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	posts, err := h.posts.ListByAuthor(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// AddFavorite handles POST /api/posts/favorites.
//
// @Summary      Add a post to favorites
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      favoriteRequest  true  "Post to favorite"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /posts/favorites [post]
func (h *PostHandler) AddFavorite(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req favoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.posts.AddFavorite(c.Request().Context(), identity.ID, req.PostID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Status: "success", Message: "post added to favorites"})
}

// RemoveFavorite handles DELETE /api/posts/favorites/:id.
//
// @Summary      Remove a post from favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/favorites/{id} [delete]
func (h *PostHandler) RemoveFavorite(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.posts.RemoveFavorite(c.Request().Context(), identity.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Status: "success", Message: "post removed from favorites"})
}

// MyFavorites handles GET /api/posts/my/favorites.
//
// @Summary      Posts favorited by the caller
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Post
// @Router       /posts/my/favorites [get]
func (h *PostHandler) MyFavorites(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	posts, err := h.posts.ListFavorites(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(posts))
}

// nonNil renders an empty list as [] rather than null.
func nonNil(posts []*domain.Post) []*domain.Post {
	if posts == nil {
		return []*domain.Post{}
	}
	return posts
}
