package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ProfileService serves role-specific profile data.
type ProfileService struct {
	buyers  repository.BuyerProfileRepository
	sellers repository.SellerProfileRepository
}

// NewProfileService builds the service.
func NewProfileService(buyers repository.BuyerProfileRepository, sellers repository.SellerProfileRepository) *ProfileService {
	return &ProfileService{buyers: buyers, sellers: sellers}
}

// BuyerProfile returns the caller's buyer profile.
func (s *ProfileService) BuyerProfile(ctx context.Context, user *domain.User) (*domain.BuyerProfile, error) {
	profile, err := s.buyers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("buyer profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Addresses lists the caller's shipping addresses.
func (s *ProfileService) Addresses(ctx context.Context, user *domain.User) ([]domain.Address, error) {
	profile, err := s.BuyerProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	addresses, err := s.buyers.ListAddresses(ctx, profile.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return addresses, nil
}

// AddAddress attaches a shipping address to the caller's buyer profile.
func (s *ProfileService) AddAddress(ctx context.Context, user *domain.User, name, line1, line2 string) (*domain.Address, error) {
	if name == "" || line1 == "" {
		return nil, apperrors.NewValidationError("name and line1 required", nil)
	}
	profile, err := s.BuyerProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	address := &domain.Address{
		ID:             uuid.NewString(),
		BuyerProfileID: profile.ID,
		Name:           name,
		Line1:          line1,
		Line2:          line2,
	}
	if err := s.buyers.CreateAddress(ctx, address); err != nil {
		return nil, apperrors.MapError(err)
	}
	return address, nil
}

// SellerProfile returns the caller's seller profile.
func (s *ProfileService) SellerProfile(ctx context.Context, user *domain.User) (*domain.SellerProfile, error) {
	profile, err := s.sellers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("seller profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// SellerProfileInput carries partial seller profile updates.
type SellerProfileInput struct {
	NID         *string
	PhoneNumber *string
	ShopName    *string
	ShopAddress *string
	Location    *string
}

// UpdateSellerProfile applies the provided fields to the caller's profile.
func (s *ProfileService) UpdateSellerProfile(ctx context.Context, user *domain.User, input SellerProfileInput) (*domain.SellerProfile, error) {
	profile, err := s.SellerProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	if input.NID != nil {
		profile.NID = *input.NID
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = *input.PhoneNumber
	}
	if input.ShopName != nil {
		profile.ShopName = *input.ShopName
	}
	if input.ShopAddress != nil {
		profile.ShopAddress = *input.ShopAddress
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}

	if err := s.sellers.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}
