package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/slug"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// Random numeric product identifiers are drawn from the 10-digit space.
const (
	productIDLow  = 1_000_000_000
	productIDHigh = 9_999_999_999
)

// ProductService coordinates catalog workflows.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	questions  repository.QuestionRepository
	cache      repository.CatalogCache
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ProductDependencies bundles collaborator requirements for the service.
type ProductDependencies struct {
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	QuestionRepo repository.QuestionRepository
	Cache        repository.CatalogCache
	Dispatcher   events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		categories: deps.CategoryRepo,
		questions:  deps.QuestionRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// ProductInput describes a create/update payload. Pointer fields distinguish
// "absent" from "zero" for partial updates.
type ProductInput struct {
	ID            *string
	IDType        *domain.ProductIDType
	CategoryID    *int64
	Title         *string
	Brand         *string
	Manufacturer  *string
	Price         *float64
	DiscountPrice *float64
	Quantity      *int
	Description   *string
	Status        *domain.ProductStatus
}

// ListVisible returns published and out-of-stock products, cached.
func (s *ProductService) ListVisible(ctx context.Context) ([]domain.Product, error) {
	if payload, ok := s.cache.GetProductList(ctx); ok {
		var cached []domain.Product
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.products.ListVisible(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if payload, err := json.Marshal(products); err == nil {
		s.cache.SetProductList(ctx, payload)
	}
	return products, nil
}

// GetVisible returns a single catalog-visible product by slug, cached.
func (s *ProductService) GetVisible(ctx context.Context, slugStr string) (*domain.Product, error) {
	if payload, ok := s.cache.GetProduct(ctx, slugStr); ok {
		var cached domain.Product
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.products.GetVisibleBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"slug": slugStr})
		}
		return nil, apperrors.MapError(err)
	}

	if payload, err := json.Marshal(product); err == nil {
		s.cache.SetProduct(ctx, slugStr, payload)
	}
	return product, nil
}

// ListByOwner returns all of the seller's products regardless of status.
func (s *ProductService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	products, err := s.products.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// GetOwned returns one of the seller's own products by slug.
func (s *ProductService) GetOwned(ctx context.Context, ownerID, slugStr string) (*domain.Product, error) {
	product, err := s.products.GetByOwnerAndSlug(ctx, ownerID, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"slug": slugStr})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// Create validates ownership and allocates identifiers before persisting.
// The role guard is a hard validation failure, never a silently dropped
// return value.
func (s *ProductService) Create(ctx context.Context, owner *domain.User, input ProductInput) (*domain.Product, error) {
	if owner.Role != domain.RoleSeller {
		return nil, apperrors.NewValidationError("owner role must be seller", map[string]any{"owner": owner.ID})
	}
	if input.Title == nil || *input.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.CategoryID == nil {
		return nil, apperrors.NewValidationError("category required", nil)
	}
	if input.Price == nil {
		return nil, apperrors.NewValidationError("price required", nil)
	}
	if input.Quantity == nil || *input.Quantity < 0 {
		return nil, apperrors.NewValidationError("quantity must be zero or positive", nil)
	}

	if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": *input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}

	product := &domain.Product{
		IDType:     domain.IDTypeDefault,
		CategoryID: *input.CategoryID,
		OwnerID:    owner.ID,
		Title:      *input.Title,
		Quantity:   *input.Quantity,
		Price:      *input.Price,
		Status:     domain.ProductStatusDraft,
	}
	if input.IDType != nil {
		if !domain.ValidIDType(*input.IDType) {
			return nil, apperrors.NewValidationError("unknown id type", map[string]any{"id_type": *input.IDType})
		}
		product.IDType = *input.IDType
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	applyOptionalFields(product, input)

	if err := s.assignProductID(ctx, product, input.ID); err != nil {
		return nil, err
	}

	// Slug is computed once here and immutable for the product's lifetime.
	// Two concurrent creates can probe the same free slug before either
	// commits; the unique index is the final arbiter.
	allocated, err := slug.Unique(ctx, product.Title, s.products.SlugExists)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	product.Slug = allocated

	outcome := s.applyLifecycle(product)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, product.Slug)

	if err := s.afterWrite(ctx, product, outcome); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies changes to one of the seller's products. The slug is never
// recomputed, even when the title changes.
func (s *ProductService) Update(ctx context.Context, owner *domain.User, slugStr string, input ProductInput) (*domain.Product, error) {
	product, err := s.GetOwned(ctx, owner.ID, slugStr)
	if err != nil {
		return nil, err
	}

	if input.IDType != nil {
		if !domain.ValidIDType(*input.IDType) {
			return nil, apperrors.NewValidationError("unknown id type", map[string]any{"id_type": *input.IDType})
		}
		product.IDType = *input.IDType
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"id": *input.CategoryID})
			}
			return nil, apperrors.MapError(err)
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Title != nil && *input.Title != "" {
		product.Title = *input.Title
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperrors.NewValidationError("quantity must be zero or positive", nil)
		}
		product.Quantity = *input.Quantity
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	applyOptionalFields(product, input)

	outcome := s.applyLifecycle(product)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, product.Slug)

	if err := s.afterWrite(ctx, product, outcome); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes one of the seller's products.
func (s *ProductService) Delete(ctx context.Context, owner *domain.User, slugStr string) error {
	product, err := s.GetOwned(ctx, owner.ID, slugStr)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, product.Slug)
	return nil
}

// AskQuestion records a buyer question on a visible product.
func (s *ProductService) AskQuestion(ctx context.Context, user *domain.User, slugStr, questionText string) (*domain.ProductQuestion, error) {
	if questionText == "" {
		return nil, apperrors.NewValidationError("question required", nil)
	}
	product, err := s.GetVisible(ctx, slugStr)
	if err != nil {
		return nil, err
	}

	question := &domain.ProductQuestion{
		ProductID: product.ID,
		UserID:    user.ID,
		Question:  questionText,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProductQuestionNew,
		Timestamp: s.now(),
		Payload:   events.ProductQuestionPayload{ProductID: product.ID, QuestionID: question.ID, AskerID: user.ID},
	}); err != nil {
		return nil, err
	}
	return question, nil
}

// AnswerQuestion lets the product owner answer a question.
func (s *ProductService) AnswerQuestion(ctx context.Context, owner *domain.User, questionID int64, answer string) (*domain.ProductQuestion, error) {
	if answer == "" {
		return nil, apperrors.NewValidationError("answer required", nil)
	}
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("question", map[string]any{"id": questionID})
		}
		return nil, apperrors.MapError(err)
	}

	product, err := s.products.GetByID(ctx, question.ProductID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if product.OwnerID != owner.ID {
		return nil, apperrors.NewForbidden("not the product owner")
	}

	if err := s.questions.SetAnswer(ctx, questionID, answer); err != nil {
		return nil, apperrors.MapError(err)
	}
	question.Answer = &answer
	return question, nil
}

// ListQuestions returns questions for a visible product.
func (s *ProductService) ListQuestions(ctx context.Context, slugStr string) ([]domain.ProductQuestion, error) {
	product, err := s.GetVisible(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return questions, nil
}

// assignProductID allocates a random 10-digit identifier for the default
// scheme, or validates the caller-supplied external identifier otherwise.
func (s *ProductService) assignProductID(ctx context.Context, product *domain.Product, explicitID *string) error {
	if product.IDType == domain.IDTypeDefault {
		id, err := slug.NumericID(ctx, productIDLow, productIDHigh, func(ctx context.Context, candidate int64) (bool, error) {
			return s.products.IDExists(ctx, strconv.FormatInt(candidate, 10))
		})
		if err != nil {
			return apperrors.MapError(err)
		}
		product.ID = strconv.FormatInt(id, 10)
		return nil
	}

	if explicitID == nil || *explicitID == "" {
		return apperrors.NewValidationError("product id required for external id types", nil)
	}
	taken, err := s.products.IDExists(ctx, *explicitID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if taken {
		return apperrors.NewConflict("product id already exists", map[string]any{"id": *explicitID})
	}
	product.ID = *explicitID
	return nil
}

// lifecycleOutcome records which transitions a write produced.
type lifecycleOutcome struct {
	published  bool
	outOfStock bool
}

// applyLifecycle normalizes status transitions before persisting:
//   - out_of_stock flips back to published when stock returns;
//   - the publish timestamp is stamped only while unset;
//   - a published product with zero quantity drops to out_of_stock, loses
//     its publish timestamp and owes the owner a notification.
func (s *ProductService) applyLifecycle(product *domain.Product) lifecycleOutcome {
	var outcome lifecycleOutcome
	if product.Status == domain.ProductStatusOutOfStock && product.Quantity > 0 {
		product.Status = domain.ProductStatusPublished
	}
	if product.Status == domain.ProductStatusPublished && product.PublishedAt == nil {
		now := s.now()
		product.PublishedAt = &now
		outcome.published = true
	}
	if product.Quantity == 0 && product.Status == domain.ProductStatusPublished {
		product.Status = domain.ProductStatusOutOfStock
		product.PublishedAt = nil
		outcome.published = false
		outcome.outOfStock = true
	}
	return outcome
}

// afterWrite publishes lifecycle events once the record is durable. Handler
// failures (owner notification mail) propagate to the caller.
func (s *ProductService) afterWrite(ctx context.Context, product *domain.Product, outcome lifecycleOutcome) error {
	if outcome.published {
		if err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProductPublished,
			Timestamp: s.now(),
			Payload: events.ProductPublishedPayload{
				ProductID: product.ID,
				Slug:      product.Slug,
				OwnerID:   product.OwnerID,
			},
		}); err != nil {
			return err
		}
	}
	if !outcome.outOfStock {
		return nil
	}
	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProductOutOfStock,
		Timestamp: s.now(),
		Payload: events.ProductOutOfStockPayload{
			ProductID:    product.ID,
			ProductTitle: product.Title,
			OwnerID:      product.OwnerID,
		},
	})
}

func applyOptionalFields(product *domain.Product, input ProductInput) {
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Manufacturer != nil {
		product.Manufacturer = *input.Manufacturer
	}
	if input.DiscountPrice != nil {
		product.DiscountPrice = input.DiscountPrice
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
}
