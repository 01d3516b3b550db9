package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"perfumery/internal/models"
	"perfumery/internal/repositories"
)

// RecentReviewsLimit is the number of reviews shown on the home page.
const RecentReviewsLimit = 6

// ReviewInput carries the editable fields of a perfume review.
type ReviewInput struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Notes   string `json:"notes" form:"notes" validate:"required"`
	BrandID string `json:"brandId" form:"brandId" validate:"required"`
}

func (in *ReviewInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)
	in.BrandID = strings.TrimSpace(in.BrandID)
}

// ReviewService handles business logic related to perfume reviews.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	brandRepo  repositories.BrandRepository
	events     EventPublisher
}

// NewReviewService creates a new ReviewService. events may be nil.
func NewReviewService(reviewRepo repositories.ReviewRepository, brandRepo repositories.BrandRepository, events EventPublisher) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		brandRepo:  brandRepo,
		events:     events,
	}
}

// GetRecentReviews retrieves the newest reviews for the home page.
func (s *ReviewService) GetRecentReviews(ctx context.Context) ([]models.PerfumeReview, error) {
	return s.reviewRepo.GetRecent(ctx, RecentReviewsLimit)
}

// GetAllReviews retrieves every review, newest first.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.PerfumeReview, error) {
	return s.reviewRepo.GetRecent(ctx, 0)
}

// GetReviewByID retrieves a single review.
func (s *ReviewService) GetReviewByID(ctx context.Context, id string) (*models.PerfumeReview, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return review, nil
}

// ListReviews retrieves the reviews of the scope's owner, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, scope Scope) ([]models.PerfumeReview, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByOwner(ctx, scope.OwnerID)
}

// BrandChoices lists the owner's brands for the review forms.
func (s *ReviewService) BrandChoices(ctx context.Context, scope Scope) ([]models.Brand, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	return s.brandRepo.GetByOwner(ctx, scope.OwnerID)
}

// GetScopedReview retrieves a review for the owner's own listing.
func (s *ReviewService) GetScopedReview(ctx context.Context, scope Scope, id string) (*models.PerfumeReview, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	return s.GetReviewByID(ctx, id)
}

// CreateReview creates a review owned by the scope's owner. The referenced
// brand must exist.
func (s *ReviewService) CreateReview(ctx context.Context, scope Scope, in ReviewInput) (*models.PerfumeReview, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	in.normalize()
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	review := &models.PerfumeReview{
		Name:    in.Name,
		Notes:   in.Notes,
		OwnerID: scope.OwnerID,
		BrandID: in.BrandID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	publish(s.events, EventReviewCreated, map[string]interface{}{
		"reviewID": review.ID,
		"ownerID":  review.OwnerID,
		"brandID":  review.BrandID,
	})
	return review, nil
}

// GetOwnedReview retrieves a review of the scope's owner, running the
// existence and ownership checks shared by update, delete and edit forms.
func (s *ReviewService) GetOwnedReview(ctx context.Context, scope Scope, id string) (*models.PerfumeReview, error) {
	if err := scope.Authorize(); err != nil {
		return nil, err
	}
	review, err := s.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.owns(review.OwnerID) {
		return nil, ErrForbidden
	}
	return review, nil
}

// UpdateReview replaces the editable fields of a review owned by the scope's
// owner.
func (s *ReviewService) UpdateReview(ctx context.Context, scope Scope, id string, in ReviewInput) (*models.PerfumeReview, error) {
	review, err := s.GetOwnedReview(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	review.Name = in.Name
	review.Notes = in.Notes
	if review.BrandID != in.BrandID {
		review.BrandID = in.BrandID
		review.Brand = nil
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, mapNotFound(err)
	}
	publish(s.events, EventReviewUpdated, map[string]interface{}{
		"reviewID": review.ID,
		"brandID":  review.BrandID,
	})
	return review, nil
}

// DeleteReview deletes a review owned by the scope's owner.
func (s *ReviewService) DeleteReview(ctx context.Context, scope Scope, id string) error {
	review, err := s.GetOwnedReview(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return mapNotFound(err)
	}
	publish(s.events, EventReviewDeleted, map[string]interface{}{
		"reviewID": review.ID,
		"ownerID":  review.OwnerID,
	})
	return nil
}

func (s *ReviewService) validate(ctx context.Context, in ReviewInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if _, err := s.brandRepo.GetByID(ctx, in.BrandID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ValidationError{Field: "brandId", Message: "brand does not exist"}
		}
		return fmt.Errorf("failed to look up brand %s: %w", in.BrandID, err)
	}
	return nil
}
