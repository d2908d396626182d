package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/mail"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// AccountService coordinates registration, verification and credential flows.
type AccountService struct {
	users      repository.UserRepository
	buyers     repository.BuyerProfileRepository
	sellers    repository.SellerProfileRepository
	tokenMgr   *auth.TokenManager
	verifier   *auth.VerifyTokenGenerator
	mailer     mail.Mailer
	dispatcher events.Dispatcher
	mailCfg    config.MailConfig
	bcryptCost int
}

// AccountDependencies bundles collaborator requirements for the service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	BuyerRepo  repository.BuyerProfileRepository
	SellerRepo repository.SellerProfileRepository
	Mailer     mail.Mailer
	Dispatcher events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		buyers:     deps.BuyerRepo,
		sellers:    deps.SellerRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		verifier:   auth.NewVerifyTokenGenerator(cfg.Verify),
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		mailCfg:    cfg.Mail,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a signup payload.
type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// AuthTokens bundles the issued bearer tokens.
type AuthTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Register creates an inactive account with the given role, fans out exactly
// one role-matching profile, and sends the activation email. The profile
// creation is an explicit step of this workflow, keyed by role.
func (s *AccountService) Register(ctx context.Context, input RegisterInput, role domain.UserRole) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, apperrors.MapError(err)
	} else if taken {
		return nil, apperrors.NewValidationError("username already exists", nil)
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, apperrors.MapError(err)
	} else if taken {
		return nil, apperrors.NewValidationError("email already exists", nil)
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         role,
		Active:       false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.createProfileFor(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{UserID: user.ID, Email: user.Email, Role: user.Role},
	}); err != nil {
		return nil, err
	}

	if err := s.sendActivationEmail(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// createProfileFor dispatches to the role-matching profile constructor,
// exactly once at creation time.
func (s *AccountService) createProfileFor(ctx context.Context, user *domain.User) error {
	switch user.Role {
	case domain.RoleBuyer:
		return s.buyers.Create(ctx, &domain.BuyerProfile{ID: uuid.NewString(), UserID: user.ID})
	case domain.RoleSeller:
		return s.sellers.Create(ctx, &domain.SellerProfile{ID: uuid.NewString(), UserID: user.ID})
	default:
		return apperrors.NewValidationError("unknown role", map[string]any{"role": user.Role})
	}
}

// VerifyEmail activates the account the link points at. Returns the client
// redirect target on success.
func (s *AccountService) VerifyEmail(ctx context.Context, uidb64, token string) (string, error) {
	user := s.userFromUID(ctx, uidb64)
	if user == nil || !s.verifier.CheckToken(user, token) {
		return "", apperrors.NewInvalidToken()
	}

	user.Active = true
	if err := s.users.Update(ctx, user); err != nil {
		return "", apperrors.MapError(err)
	}

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserActivated,
		Timestamp: time.Now(),
		Payload:   events.UserActivatedPayload{UserID: user.ID},
	}); err != nil {
		return "", err
	}
	return s.mailCfg.ClientURL + "/email-verified", nil
}

// RequestEmailChange verifies the current password and mails a confirmation
// link carrying the candidate address.
func (s *AccountService) RequestEmailChange(ctx context.Context, user *domain.User, newEmail, password string) error {
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return apperrors.NewValidationError("incorrect password", nil)
	}
	if taken, err := s.users.ExistsByEmail(ctx, newEmail); err != nil {
		return apperrors.MapError(err)
	} else if taken {
		return apperrors.NewValidationError("email already exists", nil)
	}
	return s.sendEmailChangeEmail(ctx, user, newEmail)
}

// ConfirmEmailChange applies the candidate address carried in the link. The
// token was signed over the old address, so it is single use.
func (s *AccountService) ConfirmEmailChange(ctx context.Context, uidb64, emailb64, token string) (string, error) {
	user := s.userFromUID(ctx, uidb64)
	email, err := decodeSegment(emailb64)
	if err != nil || user == nil || !user.Active || !s.verifier.CheckToken(user, token) {
		return "", apperrors.NewInvalidToken()
	}

	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return "", apperrors.MapError(err)
	}
	return s.mailCfg.ClientURL + "/email-changed", nil
}

// Login authenticates by email and password and issues access and refresh
// tokens. Credential and account-state failures collapse into one generic
// negative outcome.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, *AuthTokens, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Active {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil || claims.Kind != auth.TokenKindRefresh {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	access, accessExp, err := s.tokenMgr.GenerateToken(user, auth.TokenKindAccess)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &AuthTokens{AccessToken: access, AccessExpiresAt: accessExp}, nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AccountService) ChangePassword(ctx context.Context, user *domain.User, current, newPassword, confirm string) error {
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return apperrors.NewValidationError("incorrect password", nil)
	}
	if newPassword != confirm {
		return apperrors.NewValidationError("passwords do not match", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	return apperrors.MapError(s.users.Update(ctx, user))
}

// CheckPassword verifies the caller's current password.
func (s *AccountService) CheckPassword(_ context.Context, user *domain.User, password string) error {
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return apperrors.NewValidationError("incorrect password", nil)
	}
	return nil
}

// RequestPasswordReset mails a reset link for a known account email.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("user doesn't exist", nil)
		}
		return apperrors.MapError(err)
	}
	return s.sendPasswordResetEmail(ctx, user)
}

// ConfirmPasswordReset validates the link and sets the new password. The
// token is signed over the old password hash, so it cannot be replayed.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, uidb64, token, newPassword, confirm string) (string, error) {
	user := s.userFromUID(ctx, uidb64)
	if user == nil || !user.Active || !s.verifier.CheckToken(user, token) {
		return "", apperrors.NewInvalidToken()
	}
	if newPassword != confirm {
		return "", apperrors.NewValidationError("passwords do not match", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", apperrors.MapError(err)
	}
	return s.mailCfg.ClientURL + "/password-reset-done", nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) issueTokens(user *domain.User) (*AuthTokens, error) {
	access, accessExp, err := s.tokenMgr.GenerateToken(user, auth.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateToken(user, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// userFromUID resolves the base64url-encoded user id from a link segment.
// Any decode or lookup failure yields nil; callers collapse that into the
// generic invalid-token outcome.
func (s *AccountService) userFromUID(ctx context.Context, uidb64 string) *domain.User {
	id, err := decodeSegment(uidb64)
	if err != nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

func encodeSegment(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

func decodeSegment(segment string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *AccountService) sendActivationEmail(ctx context.Context, user *domain.User) error {
	token := s.verifier.MakeToken(user)
	link := fmt.Sprintf("%s/auth/verify/%s/%s", s.mailCfg.SiteURL, encodeSegment(user.ID), token)
	body := fmt.Sprintf(
		"Hi, %s\nWelcome to %s. Click this link to verify your account.\n%s",
		user.FullName(), s.mailCfg.SiteURL, link,
	)
	if err := s.mailer.Send(ctx, []string{user.Email}, "Account Verification", body); err != nil {
		return apperrors.NewMailDeliveryError(err)
	}
	return nil
}

func (s *AccountService) sendEmailChangeEmail(ctx context.Context, user *domain.User, newEmail string) error {
	token := s.verifier.MakeToken(user)
	link := fmt.Sprintf("%s/auth/verify/%s/%s/%s",
		s.mailCfg.SiteURL, encodeSegment(user.ID), encodeSegment(newEmail), token)
	body := fmt.Sprintf(
		"Hi, %s\nClick this link to confirm your new email address.\n%s",
		user.FullName(), link,
	)
	// The link proves control of the candidate address, so it goes there.
	if err := s.mailer.Send(ctx, []string{newEmail}, "Verify New Email Address", body); err != nil {
		return apperrors.NewMailDeliveryError(err)
	}
	return nil
}

func (s *AccountService) sendPasswordResetEmail(ctx context.Context, user *domain.User) error {
	token := s.verifier.MakeToken(user)
	link := fmt.Sprintf("%s/auth/password/reset/%s/%s", s.mailCfg.SiteURL, encodeSegment(user.ID), token)
	body := fmt.Sprintf(
		"Hi, %s\nClick this link to reset the password for your account.\n%s",
		user.FullName(), link,
	)
	if err := s.mailer.Send(ctx, []string{user.Email}, "Reset your password", body); err != nil {
		return apperrors.NewMailDeliveryError(err)
	}
	return nil
}
