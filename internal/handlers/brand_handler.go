package handlers

import (
	"perfumery/internal/negotiate"
	"perfumery/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BrandHandler handles HTTP requests for a user's own brands.
type BrandHandler struct {
	brandService *services.BrandService
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brandService *services.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// RegisterRoutes registers the owner brand routes. guards run before every
// handler.
func (h *BrandHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	brandRoutes := router.Group("/users/:userId/brands")
	brandRoutes.Get("/", chain(guards, h.HandleListBrands)...)
	brandRoutes.Get("/new", chain(guards, h.HandleNewBrandForm)...)
	brandRoutes.Post("/", chain(guards, h.HandleCreateBrand)...)
	brandRoutes.Get("/:brandId", chain(guards, h.HandleGetBrand)...)
	brandRoutes.Get("/:brandId/edit", chain(guards, h.HandleEditBrandForm)...)
	brandRoutes.Put("/:brandId", chain(guards, h.HandleUpdateBrand)...)
	brandRoutes.Delete("/:brandId", chain(guards, h.HandleDeleteBrand)...)
}

func brandsPath(userID string) string {
	return "/users/" + userID + "/brands"
}

// HandleListBrands lists the owner's brands.
func (h *BrandHandler) HandleListBrands(c *fiber.Ctx) error {
	scope := scopeOf(c)
	brands, err := h.brandService.ListBrands(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "Brand not found", "Error loading brands")
	}
	if negotiate.JSON(c) {
		return c.JSON(brands)
	}
	return render(c, "brands/index", fiber.Map{"brands": brands, "userId": scope.OwnerID})
}

// HandleNewBrandForm renders the form for a new brand.
func (h *BrandHandler) HandleNewBrandForm(c *fiber.Ctx) error {
	scope := scopeOf(c)
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{
			"message": "POST " + brandsPath(scope.OwnerID) + " with { name } to create a brand.",
		})
	}
	return render(c, "brands/new", fiber.Map{"userId": scope.OwnerID})
}

// HandleCreateBrand creates a brand owned by the path user.
func (h *BrandHandler) HandleCreateBrand(c *fiber.Ctx) error {
	var in services.BrandInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	scope := scopeOf(c)
	brand, err := h.brandService.CreateBrand(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "Brand not found", "Error creating brand")
	}
	if negotiate.JSON(c) {
		return c.Status(fiber.StatusCreated).JSON(brand)
	}
	return c.Redirect(brandsPath(scope.OwnerID))
}

// HandleGetBrand shows a brand with its reviews.
func (h *BrandHandler) HandleGetBrand(c *fiber.Ctx) error {
	scope := scopeOf(c)
	brand, reviews, err := h.brandService.GetScopedBrand(c.UserContext(), scope, c.Params("brandId"))
	if err != nil {
		return writeError(c, err, "Brand not found", "Error loading brand")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"brand": brand, "reviews": reviews})
	}
	return render(c, "brands/show", fiber.Map{"brand": brand, "reviews": reviews, "userId": scope.OwnerID})
}

// HandleEditBrandForm renders the edit form of an owned brand.
func (h *BrandHandler) HandleEditBrandForm(c *fiber.Ctx) error {
	scope := scopeOf(c)
	brand, err := h.brandService.GetOwnedBrand(c.UserContext(), scope, c.Params("brandId"))
	if err != nil {
		return writeError(c, err, "Brand not found", "Error loading edit form")
	}
	if negotiate.JSON(c) {
		return c.JSON(brand)
	}
	return render(c, "brands/edit", fiber.Map{"brand": brand, "userId": scope.OwnerID})
}

// HandleUpdateBrand renames an owned brand.
func (h *BrandHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	var in services.BrandInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	scope := scopeOf(c)
	brand, err := h.brandService.UpdateBrand(c.UserContext(), scope, c.Params("brandId"), in)
	if err != nil {
		return writeError(c, err, "Brand not found", "Error updating brand")
	}
	if negotiate.JSON(c) {
		return c.JSON(brand)
	}
	return c.Redirect(brandsPath(scope.OwnerID) + "/" + brand.ID)
}

// HandleDeleteBrand deletes an owned brand and every review of it.
func (h *BrandHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	scope := scopeOf(c)
	removed, err := h.brandService.DeleteBrand(c.UserContext(), scope, c.Params("brandId"))
	if err != nil {
		return writeError(c, err, "Brand not found", "Error deleting brand")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"message": "Brand deleted", "reviewsRemoved": removed})
	}
	return c.Redirect(brandsPath(scope.OwnerID))
}
