package ports

import (
	"context"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// UpdateUserInput is a partial profile update. Password is plaintext and is
// hashed by the service.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// UserService manages accounts after registration.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
