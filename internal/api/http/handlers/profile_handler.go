package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ProfileHandler serves buyer and seller profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// BuyerProfile handles GET /buyer/profile.
func (h *ProfileHandler) BuyerProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.BuyerProfile(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buyerProfileResponse(profile)})
}

// Addresses handles GET /buyer/addresses.
func (h *ProfileHandler) Addresses(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	addresses, err := h.profiles.Addresses(c.Context(), principal.User)
	if err != nil {
		return err
	}

	out := make([]dto.AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, addressResponse(&addresses[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// AddAddress handles POST /buyer/addresses.
func (h *ProfileHandler) AddAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	address, err := h.profiles.AddAddress(c.Context(), principal.User, req.Name, req.Line1, req.Line2)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": addressResponse(address)})
}

// SellerProfile handles GET /seller/profile.
func (h *ProfileHandler) SellerProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.SellerProfile(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sellerProfileResponse(profile)})
}

// UpdateSellerProfile handles PATCH /seller/profile.
func (h *ProfileHandler) UpdateSellerProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SellerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.UpdateSellerProfile(c.Context(), principal.User, service.SellerProfileInput{
		NID:         req.NID,
		PhoneNumber: req.PhoneNumber,
		ShopName:    req.ShopName,
		ShopAddress: req.ShopAddress,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sellerProfileResponse(profile)})
}

func buyerProfileResponse(profile *domain.BuyerProfile) dto.BuyerProfileResponse {
	return dto.BuyerProfileResponse{
		ID:            profile.ID,
		PhoneNumber:   profile.PhoneNumber,
		TotalOrders:   profile.TotalOrders,
		TotalPurchase: profile.TotalPurchase,
	}
}

func sellerProfileResponse(profile *domain.SellerProfile) dto.SellerProfileResponse {
	return dto.SellerProfileResponse{
		ID:          profile.ID,
		NID:         profile.NID,
		PhoneNumber: profile.PhoneNumber,
		ShopName:    profile.ShopName,
		ShopAddress: profile.ShopAddress,
		Location:    profile.Location,
		Revenue:     profile.Revenue,
		Income:      profile.Income,
	}
}

func addressResponse(address *domain.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:    address.ID,
		Name:  address.Name,
		Line1: address.Line1,
		Line2: address.Line2,
	}
}
