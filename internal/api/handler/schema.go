package handler

import "github.com/favboard/favboard-api/internal/core/domain"

// --- Auth ---

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,max=20"`
	LastName  string `json:"lastName"  validate:"required,max=20"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *registerRequest) normalize() { r.Email = domain.NormalizeEmail(r.Email) }

func (r *loginRequest) normalize() { r.Email = domain.NormalizeEmail(r.Email) }

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Users ---

type updateUserRequest struct {
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
	FirstName *string `json:"firstName" validate:"omitempty,max=20"`
	LastName  *string `json:"lastName"  validate:"omitempty,max=20"`
}

func (r *updateUserRequest) normalize() {
	if r.Email != nil {
		email := domain.NormalizeEmail(*r.Email)
		r.Email = &email
	}
}

// --- Posts ---

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description" validate:"max=1000"`
	URL         string `json:"url"         validate:"required"`
}

type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	URL         *string `json:"url"         validate:"omitempty,min=1"`
}

type favoriteRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// --- Shared envelopes ---

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx response. Status repeats the
// HTTP status code; Errors is only set for validation failures.
type ErrorResponse struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
