package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// AccountsHandler exposes signup, verification and credential endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Signup handles POST /auth/signup.
func (h *AccountsHandler) Signup(c *fiber.Ctx) error {
	return h.signupWithRole(c, domain.RoleBuyer)
}

// SellerSignup handles POST /auth/signup/seller.
func (h *AccountsHandler) SellerSignup(c *fiber.Ctx) error {
	return h.signupWithRole(c, domain.RoleSeller)
}

func (h *AccountsHandler) signupWithRole(c *fiber.Ctx, role domain.UserRole) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}

	user, err := h.accounts.Register(c.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}, role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": userResponse(user)},
	})
}

// VerifyEmail handles GET /auth/verify/:uid/:token.
func (h *AccountsHandler) VerifyEmail(c *fiber.Ctx) error {
	target, err := h.accounts.VerifyEmail(c.Context(), c.Params("uid"), c.Params("token"))
	if err != nil {
		return err
	}
	return c.Redirect(target, http.StatusMovedPermanently)
}

// ConfirmEmailChange handles GET /auth/verify/:uid/:email/:token.
func (h *AccountsHandler) ConfirmEmailChange(c *fiber.Ctx) error {
	target, err := h.accounts.ConfirmEmailChange(c.Context(), c.Params("uid"), c.Params("email"), c.Params("token"))
	if err != nil {
		return err
	}
	return c.Redirect(target, http.StatusMovedPermanently)
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, tokens, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": authResponse(tokens),
		},
	})
}

// Refresh handles POST /auth/token/refresh.
func (h *AccountsHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh token required", nil)
	}

	tokens, err := h.accounts.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"auth": authResponse(tokens)}})
}

// Me handles GET /auth/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": userResponse(principal.User)}})
}

// ChangeEmail handles PATCH /auth/email.
func (h *AccountsHandler) ChangeEmail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EmailChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	if err := h.accounts.RequestEmailChange(c.Context(), principal.User, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "verification_email_sent"}})
}

// ChangePassword handles PATCH /auth/password.
func (h *AccountsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	if err := h.accounts.ChangePassword(c.Context(), principal.User, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// CheckPassword handles POST /auth/password/check.
func (h *AccountsHandler) CheckPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.accounts.CheckPassword(c.Context(), principal.User, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "correct_password"}})
}

// RequestPasswordReset handles POST /auth/password/reset.
func (h *AccountsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.accounts.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "reset_email_sent"}})
}

// ConfirmPasswordReset handles PATCH /auth/password/reset/:uid/:token.
func (h *AccountsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}

	target, err := h.accounts.ConfirmPasswordReset(c.Context(), c.Params("uid"), c.Params("token"), req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.Redirect(target, http.StatusMovedPermanently)
}

func authResponse(tokens *service.AuthTokens) dto.AuthResponse {
	resp := dto.AuthResponse{
		AccessToken:     tokens.AccessToken,
		AccessExpiresAt: tokens.AccessExpiresAt,
	}
	if tokens.RefreshToken != "" {
		resp.RefreshToken = tokens.RefreshToken
		exp := tokens.RefreshExpiresAt
		resp.RefreshExpiresAt = &exp
	}
	return resp
}
