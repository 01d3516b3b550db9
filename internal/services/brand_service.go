package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"perfumery/internal/models"
	"perfumery/internal/repositories"
)

// BrandInput carries the editable fields of a brand.
type BrandInput struct {
	Name string `json:"name" form:"name" validate:"required"`
}

func (in *BrandInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// BrandService handles business logic related to brands.
type BrandService struct {
	brandRepo  repositories.BrandRepository
	reviewRepo repositories.ReviewRepository
	events     EventPublisher
}

// NewBrandService creates a new BrandService. events may be nil.
func NewBrandService(brandRepo repositories.BrandRepository, reviewRepo repositories.ReviewRepository, events EventPublisher) *BrandService {
	return &BrandService{
		brandRepo:  brandRepo,
		reviewRepo: reviewRepo,
		events:     events,
	}
}

// GetAllBrands retrieves every brand, sorted by name.
func (s *BrandService) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	return s.brandRepo.GetAll(ctx)
}

// GetBrandWithReviews retrieves a brand and its reviews, newest first.
func (s *BrandService) GetBrandWithReviews(ctx context.Context, id string) (*models.Brand, []models.PerfumeReview, error) {
	brand, err := s.getBrand(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.reviewRepo.GetByBrand(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return brand, reviews, nil
}

// ListBrands retrieves the brands of the scope's owner, sorted by name.
func (s *BrandService) ListBrands(ctx context.Context, scope Scope) ([]models.Brand, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	return s.brandRepo.GetByOwner(ctx, scope.OwnerID)
}

// CreateBrand creates a brand owned by the scope's owner.
func (s *BrandService) CreateBrand(ctx context.Context, scope Scope, in BrandInput) (*models.Brand, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	brand := &models.Brand{Name: in.Name, OwnerID: scope.OwnerID}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}
	publish(s.events, EventBrandCreated, map[string]interface{}{
		"brandID": brand.ID,
		"ownerID": brand.OwnerID,
		"name":    brand.Name,
	})
	return brand, nil
}

// GetOwnedBrand retrieves a brand of the scope's owner. It runs the same
// existence and ownership checks as UpdateBrand, so it also serves edit forms.
func (s *BrandService) GetOwnedBrand(ctx context.Context, scope Scope, id string) (*models.Brand, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	brand, err := s.getBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.owns(brand.OwnerID) {
		return nil, ErrForbidden
	}
	return brand, nil
}

// GetScopedBrand retrieves a brand and its reviews for the owner's own
// listing. Only the path owner is authorized; the brand itself is not
// required to belong to them.
func (s *BrandService) GetScopedBrand(ctx context.Context, scope Scope, id string) (*models.Brand, []models.PerfumeReview, error) {
	if err := scope.Authorize(); err != nil {
		return nil, nil, err
	}
	return s.GetBrandWithReviews(ctx, id)
}

// UpdateBrand renames a brand owned by the scope's owner.
func (s *BrandService) UpdateBrand(ctx context.Context, scope Scope, id string, in BrandInput) (*models.Brand, error) {
	brand, err := s.GetOwnedBrand(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	brand.Name = in.Name
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, mapNotFound(err)
	}
	publish(s.events, EventBrandUpdated, map[string]interface{}{
		"brandID": brand.ID,
		"name":    brand.Name,
	})
	return brand, nil
}

// DeleteBrand deletes a brand owned by the scope's owner together with every
// review that references it. It returns the number of reviews removed.
func (s *BrandService) DeleteBrand(ctx context.Context, scope Scope, id string) (int64, error) {
	brand, err := s.GetOwnedBrand(ctx, scope, id)
	if err != nil {
		return 0, err
	}
	removed, err := s.brandRepo.DeleteCascade(ctx, brand.ID)
	if err != nil {
		return 0, mapNotFound(err)
	}
	publish(s.events, EventBrandDeleted, map[string]interface{}{
		"brandID":        brand.ID,
		"ownerID":        brand.OwnerID,
		"reviewsRemoved": removed,
	})
	return removed, nil
}

func (s *BrandService) getBrand(ctx context.Context, id string) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return brand, nil
}

// mapNotFound turns a repository miss into ErrNotFound and leaves other
// errors wrapped as they are.
func mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
