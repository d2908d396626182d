package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// CartHandler serves the authenticated shopping cart.
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// List handles GET /cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.cart.List(c.Context(), principal.User)
	if err != nil {
		return err
	}

	out := make([]dto.CartItemResponse, 0, len(entries))
	for i := range entries {
		out = append(out, cartItemResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Add handles POST /cart/:slug.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	// Omitted quantity means one unit.
	req := dto.CartAddRequest{Quantity: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	entry, err := h.cart.Add(c.Context(), principal.User, c.Params("slug"), req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": cartItemResponse(entry)})
}

func cartItemResponse(entry *service.CartEntry) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:       entry.Item.ID,
		Quantity: entry.Item.Quantity,
		Product:  productResponse(&entry.Product),
	}
}
