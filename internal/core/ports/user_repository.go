package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Insert persists a new user. A duplicate email yields domain.ErrEmailTaken.
	Insert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
