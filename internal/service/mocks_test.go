package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

type mockUserRepo struct {
	createFn           func(ctx context.Context, user *domain.User) error
	updateFn           func(ctx context.Context, user *domain.User) error
	getByIDFn          func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*domain.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

type mockBuyerProfileRepo struct {
	createFn        func(ctx context.Context, profile *domain.BuyerProfile) error
	getByUserIDFn   func(ctx context.Context, userID string) (*domain.BuyerProfile, error)
	listAddressesFn func(ctx context.Context, profileID string) ([]domain.Address, error)
	createAddressFn func(ctx context.Context, address *domain.Address) error
}

func (m *mockBuyerProfileRepo) Create(ctx context.Context, profile *domain.BuyerProfile) error {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return nil
}

func (m *mockBuyerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.BuyerProfile, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockBuyerProfileRepo) ListAddresses(ctx context.Context, profileID string) ([]domain.Address, error) {
	if m.listAddressesFn != nil {
		return m.listAddressesFn(ctx, profileID)
	}
	return nil, nil
}

func (m *mockBuyerProfileRepo) CreateAddress(ctx context.Context, address *domain.Address) error {
	if m.createAddressFn != nil {
		return m.createAddressFn(ctx, address)
	}
	return nil
}

type mockSellerProfileRepo struct {
	createFn      func(ctx context.Context, profile *domain.SellerProfile) error
	getByUserIDFn func(ctx context.Context, userID string) (*domain.SellerProfile, error)
	updateFn      func(ctx context.Context, profile *domain.SellerProfile) error
}

func (m *mockSellerProfileRepo) Create(ctx context.Context, profile *domain.SellerProfile) error {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return nil
}

func (m *mockSellerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockSellerProfileRepo) Update(ctx context.Context, profile *domain.SellerProfile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, profile)
	}
	return nil
}

type mockProductRepo struct {
	createFn            func(ctx context.Context, product *domain.Product) error
	updateFn            func(ctx context.Context, product *domain.Product) error
	deleteFn            func(ctx context.Context, id string) error
	getByIDFn           func(ctx context.Context, id string) (*domain.Product, error)
	getBySlugFn         func(ctx context.Context, slug string) (*domain.Product, error)
	getVisibleBySlugFn  func(ctx context.Context, slug string) (*domain.Product, error)
	getByOwnerAndSlugFn func(ctx context.Context, ownerID, slug string) (*domain.Product, error)
	listVisibleFn       func(ctx context.Context) ([]domain.Product, error)
	listByOwnerFn       func(ctx context.Context, ownerID string) ([]domain.Product, error)
	slugExistsFn        func(ctx context.Context, slug string) (bool, error)
	idExistsFn          func(ctx context.Context, id string) (bool, error)
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, product)
	}
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, product)
	}
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProductRepo) GetVisibleBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if m.getVisibleBySlugFn != nil {
		return m.getVisibleBySlugFn(ctx, slug)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProductRepo) GetByOwnerAndSlug(ctx context.Context, ownerID, slug string) (*domain.Product, error) {
	if m.getByOwnerAndSlugFn != nil {
		return m.getByOwnerAndSlugFn(ctx, ownerID, slug)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProductRepo) ListVisible(ctx context.Context) ([]domain.Product, error) {
	if m.listVisibleFn != nil {
		return m.listVisibleFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *mockProductRepo) IDExists(ctx context.Context, id string) (bool, error) {
	if m.idExistsFn != nil {
		return m.idExistsFn(ctx, id)
	}
	return false, nil
}

type mockCategoryRepo struct {
	listFn    func(ctx context.Context) ([]domain.Category, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Category, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Category{ID: id, Title: "category"}, nil
}

func (m *mockCategoryRepo) Create(_ context.Context, _ *domain.Category) error {
	return nil
}

type mockQuestionRepo struct {
	createFn    func(ctx context.Context, question *domain.ProductQuestion) error
	getByIDFn   func(ctx context.Context, id int64) (*domain.ProductQuestion, error)
	listFn      func(ctx context.Context, productID string) ([]domain.ProductQuestion, error)
	setAnswerFn func(ctx context.Context, id int64, answer string) error
}

func (m *mockQuestionRepo) Create(ctx context.Context, question *domain.ProductQuestion) error {
	if m.createFn != nil {
		return m.createFn(ctx, question)
	}
	return nil
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, id int64) (*domain.ProductQuestion, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuestionRepo) ListByProduct(ctx context.Context, productID string) ([]domain.ProductQuestion, error) {
	if m.listFn != nil {
		return m.listFn(ctx, productID)
	}
	return nil, nil
}

func (m *mockQuestionRepo) SetAnswer(ctx context.Context, id int64, answer string) error {
	if m.setAnswerFn != nil {
		return m.setAnswerFn(ctx, id, answer)
	}
	return nil
}

type mockCartRepo struct {
	createFn              func(ctx context.Context, item *domain.CartItem) error
	updateFn              func(ctx context.Context, item *domain.CartItem) error
	getByUserAndProductFn func(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	listByUserFn          func(ctx context.Context, userID string) ([]domain.CartItem, error)
}

func (m *mockCartRepo) Create(ctx context.Context, item *domain.CartItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockCartRepo) Update(ctx context.Context, item *domain.CartItem) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, item)
	}
	return nil
}

func (m *mockCartRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	if m.getByUserAndProductFn != nil {
		return m.getByUserAndProductFn(ctx, userID, productID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockCartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCartRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type mockMailer struct {
	sendFn func(ctx context.Context, to []string, subject, body string) error
	sent   []sentMail
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (m *mockMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// noopCache satisfies the catalog cache with misses only.
type noopCache struct{}

func (noopCache) GetProduct(_ context.Context, _ string) ([]byte, bool) { return nil, false }
func (noopCache) SetProduct(_ context.Context, _ string, _ []byte)     {}
func (noopCache) GetProductList(_ context.Context) ([]byte, bool)      { return nil, false }
func (noopCache) SetProductList(_ context.Context, _ []byte)           {}
func (noopCache) Invalidate(_ context.Context, _ string)               {}
