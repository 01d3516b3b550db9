package repositories

import (
	"context"

	"perfumery/internal/models"
)

// ReviewRepository defines the interface for perfume review data access.
// Listings are sorted by creation time, newest first, and carry the owner's
// username and the brand's name.
type ReviewRepository interface {
	// GetRecent returns up to limit reviews across all users. A limit of zero
	// or less returns every review.
	GetRecent(ctx context.Context, limit int) ([]models.PerfumeReview, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.PerfumeReview, error)
	GetByBrand(ctx context.Context, brandID string) ([]models.PerfumeReview, error)
	GetByID(ctx context.Context, id string) (*models.PerfumeReview, error)
	CountByBrand(ctx context.Context, brandID string) (int64, error)
	Create(ctx context.Context, review *models.PerfumeReview) error
	Update(ctx context.Context, review *models.PerfumeReview) error
	Delete(ctx context.Context, id string) error
}
