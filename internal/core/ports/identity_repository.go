package ports

import (
	"context"

	"github.com/favboard/favboard-api/internal/core/domain"
)

// IdentityRepository is the storage collaborator for identities. Lookups
// return domain.ErrUserNotFound when nothing matches; Create returns
// domain.ErrUserExists when the email is already registered.
type IdentityRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	// Delete removes the identity together with its posts and favorites.
	Delete(ctx context.Context, id string) error
}
