package service

import (
	"context"
	"testing"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func TestAddAddressAttachesToBuyerProfile(t *testing.T) {
	profile := &domain.BuyerProfile{ID: "profile-1", UserID: "buyer-1"}

	var created *domain.Address
	buyers := &mockBuyerProfileRepo{
		getByUserIDFn: func(_ context.Context, userID string) (*domain.BuyerProfile, error) {
			if userID != "buyer-1" {
				t.Fatalf("looked up unexpected user %q", userID)
			}
			copied := *profile
			return &copied, nil
		},
		createAddressFn: func(_ context.Context, address *domain.Address) error {
			created = address
			return nil
		},
	}

	svc := NewProfileService(buyers, &mockSellerProfileRepo{})
	user := &domain.User{ID: "buyer-1", Role: domain.RoleBuyer}

	address, err := svc.AddAddress(context.Background(), user, "Home", "1 Main St", "Apt 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.BuyerProfileID != "profile-1" {
		t.Fatalf("address not attached to profile: %+v", created)
	}
	if address.ID == "" {
		t.Fatal("address id was not allocated")
	}
}

func TestAddAddressRequiresNameAndLine1(t *testing.T) {
	svc := NewProfileService(&mockBuyerProfileRepo{}, &mockSellerProfileRepo{})
	user := &domain.User{ID: "buyer-1", Role: domain.RoleBuyer}

	_, err := svc.AddAddress(context.Background(), user, "", "1 Main St", "")
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.AddAddress(context.Background(), user, "Home", "", "")
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestBuyerProfileMissing(t *testing.T) {
	svc := NewProfileService(&mockBuyerProfileRepo{}, &mockSellerProfileRepo{})
	_, err := svc.BuyerProfile(context.Background(), &domain.User{ID: "buyer-1"})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateSellerProfileAppliesPartialFields(t *testing.T) {
	stored := domain.SellerProfile{ID: "profile-1", UserID: "seller-1", ShopName: "Old Shop", Location: "Amsterdam"}

	sellers := &mockSellerProfileRepo{
		getByUserIDFn: func(_ context.Context, _ string) (*domain.SellerProfile, error) {
			copied := stored
			return &copied, nil
		},
		updateFn: func(_ context.Context, profile *domain.SellerProfile) error {
			stored = *profile
			return nil
		},
	}

	svc := NewProfileService(&mockBuyerProfileRepo{}, sellers)
	user := &domain.User{ID: "seller-1", Role: domain.RoleSeller}

	shopName := "New Shop"
	updated, err := svc.UpdateSellerProfile(context.Background(), user, SellerProfileInput{ShopName: &shopName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ShopName != "New Shop" {
		t.Fatalf("got shop name %q, want New Shop", updated.ShopName)
	}
	if updated.Location != "Amsterdam" {
		t.Fatal("untouched field must survive a partial update")
	}
}
