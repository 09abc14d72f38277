package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Usecases depend on the interface, not the concrete implementation, so the
// backing store can be swapped and tests can inject fakes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
