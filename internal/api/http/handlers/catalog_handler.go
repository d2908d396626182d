package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

var idTypeLabels = map[domain.ProductIDType]string{
	domain.IDTypeDefault: "Default",
	domain.IDTypeISBN:    "ISBN",
	domain.IDTypeEAN:     "EAN",
	domain.IDTypeGTIN:    "GTIN",
	domain.IDTypeUPC:     "UPC",
}

// CatalogHandler serves the public catalog surface.
type CatalogHandler struct {
	products   *service.ProductService
	categories *service.CategoryService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(products *service.ProductService, categories *service.CategoryService) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

// Categories handles GET /categories.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	tree, err := h.categories.Tree(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.CategoryResponse, 0, len(tree))
	for _, node := range tree {
		out = append(out, categoryResponse(node))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Products handles GET /products.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	products, err := h.products.ListVisible(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productListResponse(products)})
}

// ProductDetail handles GET /products/:slug.
func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	product, err := h.products.GetVisible(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// IDTypes handles GET /product-id-types.
func (h *CatalogHandler) IDTypes(c *fiber.Ctx) error {
	out := make([]dto.IDTypeResponse, 0, len(domain.ProductIDTypes))
	for _, t := range domain.ProductIDTypes {
		out = append(out, dto.IDTypeResponse{Value: string(t), HumanRead: idTypeLabels[t]})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Questions handles GET /products/:slug/questions.
func (h *CatalogHandler) Questions(c *fiber.Ctx) error {
	questions, err := h.products.ListQuestions(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}

	out := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, questionResponse(&questions[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// AskQuestion handles POST /products/:slug/questions.
func (h *CatalogHandler) AskQuestion(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Question == "" {
		return apperrors.NewValidationError("question required", nil)
	}

	question, err := h.products.AskQuestion(c.Context(), principal.User, c.Params("slug"), req.Question)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": questionResponse(question)})
}
