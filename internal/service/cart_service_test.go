package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func cartProduct() *domain.Product {
	return &domain.Product{
		ID:       "1234567890",
		OwnerID:  "seller-1",
		Title:    "Red Shoes",
		Slug:     "red-shoes",
		Price:    19.99,
		Quantity: 10,
		Status:   domain.ProductStatusPublished,
	}
}

func TestCartAddCreatesNewItem(t *testing.T) {
	var created *domain.CartItem
	items := &mockCartRepo{
		createFn: func(_ context.Context, item *domain.CartItem) error {
			created = item
			return nil
		},
		updateFn: func(_ context.Context, _ *domain.CartItem) error {
			t.Fatal("no update expected for a fresh item")
			return nil
		},
	}
	products := &mockProductRepo{getBySlugFn: func(_ context.Context, _ string) (*domain.Product, error) {
		return cartProduct(), nil
	}}

	svc := NewCartService(items, products)
	user := &domain.User{ID: "buyer-1", Role: domain.RoleBuyer}

	entry, err := svc.Add(context.Background(), user, "red-shoes", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("item was not created")
	}
	if created.UserID != "buyer-1" || created.ProductID != "1234567890" || created.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", created)
	}
	if entry.Product.Slug != "red-shoes" {
		t.Fatalf("entry missing product, got %+v", entry.Product)
	}
}

func TestCartAddIncrementsExistingItem(t *testing.T) {
	existing := domain.CartItem{ID: "item-1", UserID: "buyer-1", ProductID: "1234567890", Quantity: 2}

	var updated *domain.CartItem
	items := &mockCartRepo{
		getByUserAndProductFn: func(_ context.Context, _, _ string) (*domain.CartItem, error) {
			copied := existing
			return &copied, nil
		},
		createFn: func(_ context.Context, _ *domain.CartItem) error {
			t.Fatal("no create expected for an existing item")
			return nil
		},
		updateFn: func(_ context.Context, item *domain.CartItem) error {
			updated = item
			return nil
		},
	}
	products := &mockProductRepo{getBySlugFn: func(_ context.Context, _ string) (*domain.Product, error) {
		return cartProduct(), nil
	}}

	svc := NewCartService(items, products)
	user := &domain.User{ID: "buyer-1", Role: domain.RoleBuyer}

	entry, err := svc.Add(context.Background(), user, "red-shoes", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Quantity != 5 {
		t.Fatalf("expected quantity 5 after increment, got %+v", updated)
	}
	if entry.Item.ID != "item-1" {
		t.Fatalf("expected the existing row, got %+v", entry.Item)
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(&mockCartRepo{}, &mockProductRepo{})
	user := &domain.User{ID: "buyer-1"}

	for _, qty := range []int{0, -1} {
		_, err := svc.Add(context.Background(), user, "red-shoes", qty)
		assertDomainCode(t, err, "VALIDATION_FAILED")
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	products := &mockProductRepo{getBySlugFn: func(_ context.Context, _ string) (*domain.Product, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := NewCartService(&mockCartRepo{}, products)
	user := &domain.User{ID: "buyer-1"}

	_, err := svc.Add(context.Background(), user, "missing", 1)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestCartListEmbedsProducts(t *testing.T) {
	items := &mockCartRepo{listByUserFn: func(_ context.Context, _ string) ([]domain.CartItem, error) {
		return []domain.CartItem{
			{ID: "item-1", UserID: "buyer-1", ProductID: "1234567890", Quantity: 2},
		}, nil
	}}
	products := &mockProductRepo{getByIDFn: func(_ context.Context, id string) (*domain.Product, error) {
		p := cartProduct()
		p.ID = id
		return p, nil
	}}

	svc := NewCartService(items, products)
	entries, err := svc.List(context.Background(), &domain.User{ID: "buyer-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Product.ID != "1234567890" {
		t.Fatalf("entry product mismatch: %+v", entries[0].Product)
	}
}
