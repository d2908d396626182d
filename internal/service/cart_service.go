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

// CartService coordinates the shopping cart.
type CartService struct {
	items    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService builds the service.
func NewCartService(items repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{items: items, products: products}
}

// CartEntry pairs a cart item with its product for responses.
type CartEntry struct {
	Item    domain.CartItem
	Product domain.Product
}

// List returns the user's cart with product payloads embedded.
func (s *CartService) List(ctx context.Context, user *domain.User) ([]CartEntry, error) {
	items, err := s.items.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		entries = append(entries, CartEntry{Item: item, Product: *product})
	}
	return entries, nil
}

// Add puts a product in the user's cart, or increments the quantity of the
// existing row. The lookup and the write are separate statements: two
// concurrent adds for the same product can lose an increment. Accepted at
// this system's concurrency level.
func (s *CartService) Add(ctx context.Context, user *domain.User, slugStr string, quantity int) (*CartEntry, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	product, err := s.products.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"slug": slugStr})
		}
		return nil, apperrors.MapError(err)
	}

	item, err := s.items.GetByUserAndProduct(ctx, user.ID, product.ID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.items.Update(ctx, item); err != nil {
			return nil, apperrors.MapError(err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		item = &domain.CartItem{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := s.items.Create(ctx, item); err != nil {
			return nil, apperrors.MapError(err)
		}
	default:
		return nil, apperrors.MapError(err)
	}

	return &CartEntry{Item: *item, Product: *product}, nil
}
