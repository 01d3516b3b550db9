package repositories

import (
	"context"
	"fmt"

	"perfumery/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// listing preloads the owner's username and the brand's name and applies the
// newest-first ordering shared by every review listing.
func (r *GORMReviewRepository) listing(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner", withOwnerName).
		Preload("Brand", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "owner_id") }).
		Order("created_at DESC").Order("id DESC")
}

// GetRecent retrieves the most recent reviews across all users.
func (r *GORMReviewRepository) GetRecent(ctx context.Context, limit int) ([]models.PerfumeReview, error) {
	var reviews []models.PerfumeReview
	q := r.listing(ctx)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}
	return reviews, nil
}

// GetByOwner retrieves the reviews written by ownerID.
func (r *GORMReviewRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.PerfumeReview, error) {
	var reviews []models.PerfumeReview
	if err := r.listing(ctx).Where("owner_id = ?", ownerID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for owner %s: %w", ownerID, err)
	}
	return reviews, nil
}

// GetByBrand retrieves the reviews that reference brandID.
func (r *GORMReviewRepository) GetByBrand(ctx context.Context, brandID string) ([]models.PerfumeReview, error) {
	var reviews []models.PerfumeReview
	if err := r.listing(ctx).Where("brand_id = ?", brandID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for brand %s: %w", brandID, err)
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID from the database.
func (r *GORMReviewRepository) GetByID(ctx context.Context, id string) (*models.PerfumeReview, error) {
	var review models.PerfumeReview
	if err := r.listing(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, translate(err))
	}
	return &review, nil
}

// CountByBrand returns how many reviews reference brandID.
func (r *GORMReviewRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.PerfumeReview{}).Where("brand_id = ?", brandID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews for brand %s: %w", brandID, err)
	}
	return n, nil
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.PerfumeReview) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing review.
func (r *GORMReviewRepository) Update(ctx context.Context, review *models.PerfumeReview) error {
	res := r.db.WithContext(ctx).
		Model(review).
		Omit(clause.Associations, "owner_id").
		Updates(map[string]interface{}{
			"name":     review.Name,
			"notes":    review.Notes,
			"brand_id": review.BrandID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s not found for update: %w", review.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a review by its ID from the database.
func (r *GORMReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.PerfumeReview{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
