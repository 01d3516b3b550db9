package repositories

import (
	"context"
	"fmt"

	"perfumery/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{
		db: db,
	}
}

func withOwnerName(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username")
}

// GetAll retrieves every brand with its owner's username.
func (r *GORMBrandRepository) GetAll(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).
		Preload("Owner", withOwnerName).
		Order("name ASC").Order("id ASC").
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all brands: %w", err)
	}
	return brands, nil
}

// GetByOwner retrieves the brands owned by ownerID.
func (r *GORMBrandRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").Order("id ASC").
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get brands for owner %s: %w", ownerID, err)
	}
	return brands, nil
}

// GetByID retrieves a single brand by its ID from the database.
func (r *GORMBrandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).
		Preload("Owner", withOwnerName).
		First(&brand, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get brand by ID %s: %w", id, translate(err))
	}
	return &brand, nil
}

// Create creates a new brand in the database.
func (r *GORMBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing brand. The owner column
// is never written.
func (r *GORMBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	res := r.db.WithContext(ctx).
		Model(brand).
		Omit(clause.Associations, "owner_id").
		Updates(map[string]interface{}{"name": brand.Name})
	if res.Error != nil {
		return fmt.Errorf("failed to update brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %s not found for update: %w", brand.ID, ErrNotFound)
	}
	return nil
}

// DeleteCascade deletes the reviews of a brand and then the brand itself in
// one transaction.
func (r *GORMBrandRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("brand_id = ?", id).Delete(&models.PerfumeReview{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete reviews of brand %s: %w", id, res.Error)
		}
		removed = res.RowsAffected

		res = tx.Delete(&models.Brand{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete brand: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("brand with ID %s not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
