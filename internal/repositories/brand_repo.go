package repositories

import (
	"context"

	"perfumery/internal/models"
)

// BrandRepository defines the interface for brand data access. Listings are
// sorted by name ascending.
type BrandRepository interface {
	GetAll(ctx context.Context) ([]models.Brand, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Brand, error)
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	// DeleteCascade removes the brand and every review that references it,
	// returning the number of reviews removed.
	DeleteCascade(ctx context.Context, id string) (int64, error)
}
