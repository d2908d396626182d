package service

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
)

func newProductService(deps ProductDependencies) *ProductService {
	if deps.ProductRepo == nil {
		deps.ProductRepo = &mockProductRepo{}
	}
	if deps.CategoryRepo == nil {
		deps.CategoryRepo = &mockCategoryRepo{}
	}
	if deps.QuestionRepo == nil {
		deps.QuestionRepo = &mockQuestionRepo{}
	}
	if deps.Cache == nil {
		deps.Cache = noopCache{}
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher()
	}
	return NewProductService(deps)
}

func seller() *domain.User {
	return &domain.User{ID: "seller-1", Email: "seller@example.com", Role: domain.RoleSeller, Active: true}
}

func createInput(title string, quantity int, status domain.ProductStatus) ProductInput {
	categoryID := int64(1)
	price := 19.99
	return ProductInput{
		Title:      &title,
		CategoryID: &categoryID,
		Price:      &price,
		Quantity:   &quantity,
		Status:     &status,
	}
}

func TestCreateRejectsNonSeller(t *testing.T) {
	svc := newProductService(ProductDependencies{})
	buyer := &domain.User{ID: "buyer-1", Role: domain.RoleBuyer, Active: true}

	_, err := svc.Create(context.Background(), buyer, createInput("Red Shoes", 3, domain.ProductStatusDraft))
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateAllocatesNumericIDAndSlug(t *testing.T) {
	var persisted *domain.Product
	svc := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{createFn: func(_ context.Context, p *domain.Product) error {
			persisted = p
			return nil
		}},
	})

	product, err := svc.Create(context.Background(), seller(), createInput("Red Shoes", 3, domain.ProductStatusDraft))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted == nil {
		t.Fatal("product was not persisted")
	}
	if !regexp.MustCompile(`^[1-9]\d{9}$`).MatchString(product.ID) {
		t.Fatalf("id %q is not a 10-digit number", product.ID)
	}
	if product.Slug != "red-shoes" {
		t.Fatalf("got slug %q, want red-shoes", product.Slug)
	}
	if product.IDType != domain.IDTypeDefault {
		t.Fatalf("got id type %q, want default", product.IDType)
	}
}

func TestCreateExternalIDRequiredAndUnique(t *testing.T) {
	isbn := domain.IDTypeISBN

	t.Run("missing id", func(t *testing.T) {
		svc := newProductService(ProductDependencies{})
		input := createInput("Some Book", 1, domain.ProductStatusDraft)
		input.IDType = &isbn
		_, err := svc.Create(context.Background(), seller(), input)
		assertDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("taken id", func(t *testing.T) {
		svc := newProductService(ProductDependencies{
			ProductRepo: &mockProductRepo{idExistsFn: func(_ context.Context, _ string) (bool, error) {
				return true, nil
			}},
		})
		input := createInput("Some Book", 1, domain.ProductStatusDraft)
		input.IDType = &isbn
		id := "9780134190440"
		input.ID = &id
		_, err := svc.Create(context.Background(), seller(), input)
		assertDomainCode(t, err, "CONFLICT")
	})
}

func TestSlugCollisionGetsRandomSuffix(t *testing.T) {
	svc := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{slugExistsFn: func(_ context.Context, candidate string) (bool, error) {
			return candidate == "red-shoes", nil
		}},
	})

	product, err := svc.Create(context.Background(), seller(), createInput("Red Shoes", 3, domain.ProductStatusDraft))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^red-shoes-\d{7}$`).MatchString(product.Slug) {
		t.Fatalf("got slug %q, want red-shoes with random suffix", product.Slug)
	}
}

func TestPublishStampsPublishedAtOnce(t *testing.T) {
	issued := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc := newProductService(ProductDependencies{})
	svc.now = func() time.Time { return issued }

	product, err := svc.Create(context.Background(), seller(), createInput("Red Shoes", 3, domain.ProductStatusPublished))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.PublishedAt == nil || !product.PublishedAt.Equal(issued) {
		t.Fatalf("published at = %v, want %v", product.PublishedAt, issued)
	}

	// A later edit while already published must not move the timestamp.
	stored := *product
	svc2 := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{getByOwnerAndSlugFn: func(_ context.Context, _, _ string) (*domain.Product, error) {
			copied := stored
			return &copied, nil
		}},
	})
	svc2.now = func() time.Time { return issued.Add(48 * time.Hour) }

	newTitle := "Red Shoes Deluxe"
	updated, err := svc2.Update(context.Background(), seller(), product.Slug, ProductInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(issued) {
		t.Fatalf("published at moved to %v, want %v", updated.PublishedAt, issued)
	}
	if updated.Slug != product.Slug {
		t.Fatalf("slug changed to %q on title edit", updated.Slug)
	}
}

func TestZeroQuantityDropsToOutOfStockAndNotifiesOnce(t *testing.T) {
	publishedAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	stored := domain.Product{
		ID:          "1234567890",
		IDType:      domain.IDTypeDefault,
		CategoryID:  1,
		OwnerID:     "seller-1",
		Title:       "Red Shoes",
		Slug:        "red-shoes",
		Price:       19.99,
		Quantity:    5,
		Status:      domain.ProductStatusPublished,
		PublishedAt: &publishedAt,
	}

	dispatcher := events.NewInMemoryDispatcher()
	mailer := &mockMailer{}
	users := &mockUserRepo{getByIDFn: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Email: "seller@example.com", FirstName: "Sally"}, nil
	}}
	notifications := NewNotificationService(dispatcher, users, mailer, zap.NewNop(), config.MailConfig{SiteURL: "http://api.example.com"})
	notifications.RegisterHandlers()

	svc := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{getByOwnerAndSlugFn: func(_ context.Context, _, _ string) (*domain.Product, error) {
			copied := stored
			return &copied, nil
		}},
		Dispatcher: dispatcher,
	})

	zero := 0
	updated, err := svc.Update(context.Background(), seller(), "red-shoes", ProductInput{Quantity: &zero})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != domain.ProductStatusOutOfStock {
		t.Fatalf("got status %q, want out_of_stock", updated.Status)
	}
	if updated.PublishedAt != nil {
		t.Fatal("publish timestamp should be cleared on out-of-stock")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("got %d owner mails, want exactly 1", len(mailer.sent))
	}
	if !strings.Contains(mailer.sent[0].body, "Red Shoes") {
		t.Fatalf("owner mail does not name the product: %q", mailer.sent[0].body)
	}
}

func TestOutOfStockMailFailureSurfaces(t *testing.T) {
	stored := domain.Product{
		ID:         "1234567890",
		IDType:     domain.IDTypeDefault,
		CategoryID: 1,
		OwnerID:    "seller-1",
		Title:      "Red Shoes",
		Slug:       "red-shoes",
		Quantity:   5,
		Status:     domain.ProductStatusPublished,
	}

	dispatcher := events.NewInMemoryDispatcher()
	mailer := &mockMailer{sendFn: func(_ context.Context, _ []string, _, _ string) error {
		return context.DeadlineExceeded
	}}
	users := &mockUserRepo{getByIDFn: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Email: "seller@example.com"}, nil
	}}
	NewNotificationService(dispatcher, users, mailer, zap.NewNop(), config.MailConfig{}).RegisterHandlers()

	svc := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{getByOwnerAndSlugFn: func(_ context.Context, _, _ string) (*domain.Product, error) {
			copied := stored
			return &copied, nil
		}},
		Dispatcher: dispatcher,
	})

	zero := 0
	_, err := svc.Update(context.Background(), seller(), "red-shoes", ProductInput{Quantity: &zero})
	assertDomainCode(t, err, "MAIL_DELIVERY_FAILED")
}

func TestRestockFlipsBackToPublished(t *testing.T) {
	stored := domain.Product{
		ID:         "1234567890",
		IDType:     domain.IDTypeDefault,
		CategoryID: 1,
		OwnerID:    "seller-1",
		Title:      "Red Shoes",
		Slug:       "red-shoes",
		Quantity:   0,
		Status:     domain.ProductStatusOutOfStock,
	}

	restocked := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := newProductService(ProductDependencies{
		ProductRepo: &mockProductRepo{getByOwnerAndSlugFn: func(_ context.Context, _, _ string) (*domain.Product, error) {
			copied := stored
			return &copied, nil
		}},
	})
	svc.now = func() time.Time { return restocked }

	ten := 10
	updated, err := svc.Update(context.Background(), seller(), "red-shoes", ProductInput{Quantity: &ten})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ProductStatusPublished {
		t.Fatalf("got status %q, want published", updated.Status)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(restocked) {
		t.Fatalf("published at = %v, want restock time %v", updated.PublishedAt, restocked)
	}
}

func TestAnswerQuestionRequiresOwnership(t *testing.T) {
	question := &domain.ProductQuestion{ID: 7, ProductID: "1234567890", UserID: "buyer-1", Question: "Does it fit?"}

	svc := newProductService(ProductDependencies{
		QuestionRepo: &mockQuestionRepo{getByIDFn: func(_ context.Context, _ int64) (*domain.ProductQuestion, error) {
			copied := *question
			return &copied, nil
		}},
		ProductRepo: &mockProductRepo{getByIDFn: func(_ context.Context, _ string) (*domain.Product, error) {
			return &domain.Product{ID: "1234567890", OwnerID: "seller-1"}, nil
		}},
	})

	stranger := &domain.User{ID: "seller-2", Role: domain.RoleSeller}
	_, err := svc.AnswerQuestion(context.Background(), stranger, 7, "Yes")
	assertDomainCode(t, err, "FORBIDDEN")

	answered, err := svc.AnswerQuestion(context.Background(), seller(), 7, "Yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answered.Answer == nil || *answered.Answer != "Yes" {
		t.Fatal("answer was not recorded")
	}
}
