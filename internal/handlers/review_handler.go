package handlers

import (
	"perfumery/internal/negotiate"
	"perfumery/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for a user's own perfume reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers the owner review routes. guards run before every
// handler.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	reviewRoutes := router.Group("/users/:userId/reviews")
	reviewRoutes.Get("/", chain(guards, h.HandleListReviews)...)
	reviewRoutes.Get("/new", chain(guards, h.HandleNewReviewForm)...)
	reviewRoutes.Post("/", chain(guards, h.HandleCreateReview)...)
	reviewRoutes.Get("/:reviewId", chain(guards, h.HandleGetReview)...)
	reviewRoutes.Get("/:reviewId/edit", chain(guards, h.HandleEditReviewForm)...)
	reviewRoutes.Put("/:reviewId", chain(guards, h.HandleUpdateReview)...)
	reviewRoutes.Delete("/:reviewId", chain(guards, h.HandleDeleteReview)...)
}

func reviewsPath(userID string) string {
	return "/users/" + userID + "/reviews"
}

// HandleListReviews lists the owner's reviews.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	scope := scopeOf(c)
	reviews, err := h.reviewService.ListReviews(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading reviews")
	}
	if negotiate.JSON(c) {
		return c.JSON(reviews)
	}
	return render(c, "reviews/index", fiber.Map{"reviews": reviews, "userId": scope.OwnerID})
}

// HandleNewReviewForm renders the form for a new review with the owner's
// brands.
func (h *ReviewHandler) HandleNewReviewForm(c *fiber.Ctx) error {
	scope := scopeOf(c)
	brands, err := h.reviewService.BrandChoices(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading form")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"brands": brands})
	}
	return render(c, "reviews/new", fiber.Map{"brands": brands, "userId": scope.OwnerID})
}

// HandleCreateReview creates a review owned by the path user.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	scope := scopeOf(c)
	review, err := h.reviewService.CreateReview(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "Review not found", "Error creating review")
	}
	if negotiate.JSON(c) {
		return c.Status(fiber.StatusCreated).JSON(review)
	}
	return c.Redirect(reviewsPath(scope.OwnerID))
}

// HandleGetReview shows a single review.
func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	scope := scopeOf(c)
	review, err := h.reviewService.GetScopedReview(c.UserContext(), scope, c.Params("reviewId"))
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading review")
	}
	if negotiate.JSON(c) {
		return c.JSON(review)
	}
	return render(c, "reviews/show", fiber.Map{"review": review, "userId": scope.OwnerID})
}

// HandleEditReviewForm renders the edit form of an owned review.
func (h *ReviewHandler) HandleEditReviewForm(c *fiber.Ctx) error {
	scope := scopeOf(c)
	review, err := h.reviewService.GetOwnedReview(c.UserContext(), scope, c.Params("reviewId"))
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading edit form")
	}
	brands, err := h.reviewService.BrandChoices(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading edit form")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"review": review, "brands": brands})
	}
	return render(c, "reviews/edit", fiber.Map{"review": review, "brands": brands, "userId": scope.OwnerID})
}

// HandleUpdateReview replaces the fields of an owned review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	scope := scopeOf(c)
	review, err := h.reviewService.UpdateReview(c.UserContext(), scope, c.Params("reviewId"), in)
	if err != nil {
		return writeError(c, err, "Review not found", "Error updating review")
	}
	if negotiate.JSON(c) {
		return c.JSON(review)
	}
	return c.Redirect(reviewsPath(scope.OwnerID) + "/" + review.ID)
}

// HandleDeleteReview deletes an owned review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	scope := scopeOf(c)
	if err := h.reviewService.DeleteReview(c.UserContext(), scope, c.Params("reviewId")); err != nil {
		return writeError(c, err, "Review not found", "Error deleting review")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"message": "Review deleted"})
	}
	return c.Redirect(reviewsPath(scope.OwnerID))
}
