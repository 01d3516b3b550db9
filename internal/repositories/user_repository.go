package repositories

import (
	"context"

	"perfumery/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Count reports the number of stored users. It backs the sign-up checks
	// in tests and has no route of its own.
	Count(ctx context.Context) (int64, error)
}
