package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// BuyerProfileRepository manages buyer profile persistence.
type BuyerProfileRepository interface {
	Create(ctx context.Context, profile *domain.BuyerProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.BuyerProfile, error)
	ListAddresses(ctx context.Context, profileID string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) error
}

// SellerProfileRepository manages seller profile persistence.
type SellerProfileRepository interface {
	Create(ctx context.Context, profile *domain.SellerProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error)
	Update(ctx context.Context, profile *domain.SellerProfile) error
}

type buyerProfileRepository struct {
	pool *pgxpool.Pool
}

// NewBuyerProfileRepository returns a Postgres-backed implementation.
func NewBuyerProfileRepository(pool *pgxpool.Pool) BuyerProfileRepository {
	return &buyerProfileRepository{pool: pool}
}

func (r *buyerProfileRepository) Create(ctx context.Context, profile *domain.BuyerProfile) error {
	const query = `
        INSERT INTO buyer_profiles (id, user_id, phone_number, total_orders, total_purchase)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.PhoneNumber,
		profile.TotalOrders,
		profile.TotalPurchase,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *buyerProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.BuyerProfile, error) {
	const query = `
        SELECT id, user_id, phone_number, total_orders, total_purchase, created_at, updated_at
        FROM buyer_profiles WHERE user_id=$1`
	var profile domain.BuyerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.PhoneNumber,
		&profile.TotalOrders,
		&profile.TotalPurchase,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *buyerProfileRepository) ListAddresses(ctx context.Context, profileID string) ([]domain.Address, error) {
	const query = `
        SELECT id, buyer_profile_id, name, line1, line2, created_at
        FROM addresses WHERE buyer_profile_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(&addr.ID, &addr.BuyerProfileID, &addr.Name, &addr.Line1, &addr.Line2, &addr.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, addr)
	}
	return result, rows.Err()
}

func (r *buyerProfileRepository) CreateAddress(ctx context.Context, address *domain.Address) error {
	const query = `
        INSERT INTO addresses (id, buyer_profile_id, name, line1, line2)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		address.ID,
		address.BuyerProfileID,
		address.Name,
		address.Line1,
		address.Line2,
	).Scan(&address.CreatedAt)
}

type sellerProfileRepository struct {
	pool *pgxpool.Pool
}

// NewSellerProfileRepository returns a Postgres-backed implementation.
func NewSellerProfileRepository(pool *pgxpool.Pool) SellerProfileRepository {
	return &sellerProfileRepository{pool: pool}
}

func (r *sellerProfileRepository) Create(ctx context.Context, profile *domain.SellerProfile) error {
	const query = `
        INSERT INTO seller_profiles (id, user_id, nid, phone_number, shop_name, shop_address, location, revenue, income)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.NID,
		profile.PhoneNumber,
		profile.ShopName,
		profile.ShopAddress,
		profile.Location,
		profile.Revenue,
		profile.Income,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *sellerProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error) {
	const query = `
        SELECT id, user_id, nid, phone_number, shop_name, shop_address, location, revenue, income, created_at, updated_at
        FROM seller_profiles WHERE user_id=$1`
	var profile domain.SellerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.NID,
		&profile.PhoneNumber,
		&profile.ShopName,
		&profile.ShopAddress,
		&profile.Location,
		&profile.Revenue,
		&profile.Income,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *sellerProfileRepository) Update(ctx context.Context, profile *domain.SellerProfile) error {
	const query = `
        UPDATE seller_profiles SET nid=$1, phone_number=$2, shop_name=$3, shop_address=$4,
            location=$5, revenue=$6, income=$7, updated_at=NOW()
        WHERE id=$8`
	_, err := r.pool.Exec(ctx, query,
		profile.NID,
		profile.PhoneNumber,
		profile.ShopName,
		profile.ShopAddress,
		profile.Location,
		profile.Revenue,
		profile.Income,
		profile.ID,
	)
	return err
}
