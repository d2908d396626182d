package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// SellerProductsHandler serves the seller-scoped catalog management surface.
// Every route requires an authenticated seller; the role check lives in the
// service so it cannot be bypassed by route wiring mistakes.
type SellerProductsHandler struct {
	products *service.ProductService
}

// NewSellerProductsHandler constructs handler.
func NewSellerProductsHandler(products *service.ProductService) *SellerProductsHandler {
	return &SellerProductsHandler{products: products}
}

// List handles GET /seller/products.
func (h *SellerProductsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	products, err := h.products.ListByOwner(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productListResponse(products)})
}

// Create handles POST /seller/products.
func (h *SellerProductsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input, err := parseProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.products.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// Get handles GET /seller/products/:slug.
func (h *SellerProductsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	product, err := h.products.GetOwned(c.Context(), principal.User.ID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Update handles PUT and PATCH /seller/products/:slug. Both verbs share the
// pointer-field payload so a PUT simply sends every field.
func (h *SellerProductsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input, err := parseProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.products.Update(c.Context(), principal.User, c.Params("slug"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Delete handles DELETE /seller/products/:slug.
func (h *SellerProductsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.products.Delete(c.Context(), principal.User, c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AnswerQuestion handles PATCH /seller/questions/:id.
func (h *SellerProductsHandler) AnswerQuestion(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	questionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid question id", nil)
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Answer == "" {
		return apperrors.NewValidationError("answer required", nil)
	}

	question, err := h.products.AnswerQuestion(c.Context(), principal.User, questionID, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": questionResponse(question)})
}

func parseProductInput(c *fiber.Ctx) (service.ProductInput, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProductInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProductInput{
		ID:            req.ID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Brand:         req.Brand,
		Manufacturer:  req.Manufacturer,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Quantity:      req.Quantity,
		Description:   req.Description,
	}

	if req.IDType != nil {
		idType := domain.ProductIDType(*req.IDType)
		if !domain.ValidIDType(idType) {
			return service.ProductInput{}, apperrors.NewValidationError("unknown id_type", map[string]any{"id_type": *req.IDType})
		}
		input.IDType = &idType
	}

	if req.Status != nil {
		status := domain.ProductStatus(*req.Status)
		switch status {
		case domain.ProductStatusDraft, domain.ProductStatusPublished, domain.ProductStatusOutOfStock:
			input.Status = &status
		default:
			return service.ProductInput{}, apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
		}
	}

	return input, nil
}
