package handlers

import (
	"perfumery/internal/negotiate"
	"perfumery/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the pages anyone can read.
type PublicHandler struct {
	brandService  *services.BrandService
	reviewService *services.ReviewService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(brandService *services.BrandService, reviewService *services.ReviewService) *PublicHandler {
	return &PublicHandler{
		brandService:  brandService,
		reviewService: reviewService,
	}
}

// RegisterRoutes registers the public routes with the Fiber app.
func (h *PublicHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/brands", h.HandleListBrands)
	router.Get("/brands/:brandId", h.HandleGetBrand)
	router.Get("/reviews", h.HandleListReviews)
	router.Get("/reviews/:reviewId", h.HandleGetReview)
}

// HandleHome shows the most recent reviews.
func (h *PublicHandler) HandleHome(c *fiber.Ctx) error {
	reviews, err := h.reviewService.GetRecentReviews(c.UserContext())
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading reviews")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"recentReviews": reviews})
	}
	return render(c, "index", fiber.Map{"recentReviews": reviews})
}

// HandleListBrands lists every brand.
func (h *PublicHandler) HandleListBrands(c *fiber.Ctx) error {
	brands, err := h.brandService.GetAllBrands(c.UserContext())
	if err != nil {
		return writeError(c, err, "Brand not found", "Error loading brands")
	}
	if negotiate.JSON(c) {
		return c.JSON(brands)
	}
	return render(c, "public/brands", fiber.Map{"brands": brands})
}

// HandleGetBrand shows a brand with its reviews.
func (h *PublicHandler) HandleGetBrand(c *fiber.Ctx) error {
	brand, reviews, err := h.brandService.GetBrandWithReviews(c.UserContext(), c.Params("brandId"))
	if err != nil {
		return writeError(c, err, "Brand not found", "Error loading brand")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"brand": brand, "reviews": reviews})
	}
	return render(c, "public/brand-detail", fiber.Map{"brand": brand, "reviews": reviews})
}

// HandleListReviews lists every review, newest first.
func (h *PublicHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.reviewService.GetAllReviews(c.UserContext())
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading reviews")
	}
	if negotiate.JSON(c) {
		return c.JSON(reviews)
	}
	return render(c, "public/reviews", fiber.Map{"reviews": reviews})
}

// HandleGetReview shows a single review.
func (h *PublicHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.reviewService.GetReviewByID(c.UserContext(), c.Params("reviewId"))
	if err != nil {
		return writeError(c, err, "Review not found", "Error loading review")
	}
	if negotiate.JSON(c) {
		return c.JSON(review)
	}
	return render(c, "public/review-detail", fiber.Map{"review": review})
}
