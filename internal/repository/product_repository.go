package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const productColumns = `
    id, id_type, category_id, owner_id, title, slug, brand, manufacturer,
    price, discount_price, quantity, description, status, created_at, published_at`

// ProductRepository manages product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetVisibleBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByOwnerAndSlug(ctx context.Context, ownerID, slug string) (*domain.Product, error)
	ListVisible(ctx context.Context) ([]domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IDExists(ctx context.Context, id string) (bool, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (id, id_type, category_id, owner_id, title, slug, brand, manufacturer,
            price, discount_price, quantity, description, status, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		product.ID,
		product.IDType,
		product.CategoryID,
		product.OwnerID,
		product.Title,
		product.Slug,
		product.Brand,
		product.Manufacturer,
		product.Price,
		product.DiscountPrice,
		product.Quantity,
		product.Description,
		product.Status,
		product.PublishedAt,
	).Scan(&product.CreatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET id_type=$1, category_id=$2, title=$3, brand=$4, manufacturer=$5,
            price=$6, discount_price=$7, quantity=$8, description=$9, status=$10, published_at=$11
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		product.IDType,
		product.CategoryID,
		product.Title,
		product.Brand,
		product.Manufacturer,
		product.Price,
		product.DiscountPrice,
		product.Quantity,
		product.Description,
		product.Status,
		product.PublishedAt,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug=$1`
	return r.scanOne(ctx, query, slug)
}

func (r *productRepository) GetVisibleBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
        FROM products WHERE slug=$1 AND status IN ('published', 'out_of_stock')`
	return r.scanOne(ctx, query, slug)
}

func (r *productRepository) GetByOwnerAndSlug(ctx context.Context, ownerID, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id=$1 AND slug=$2`
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, ownerID, slug).Scan(productFields(&product)...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListVisible(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
        FROM products WHERE status IN ('published', 'out_of_stock')
        ORDER BY published_at DESC NULLS LAST, created_at DESC`
	return r.scanMany(ctx, query)
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id=$1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, ownerID)
}

func (r *productRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE slug=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, slug).Scan(&exists)
	return exists, err
}

func (r *productRepository) IDExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *productRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, arg).Scan(productFields(&product)...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(productFields(&product)...); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func productFields(p *domain.Product) []any {
	return []any{
		&p.ID,
		&p.IDType,
		&p.CategoryID,
		&p.OwnerID,
		&p.Title,
		&p.Slug,
		&p.Brand,
		&p.Manufacturer,
		&p.Price,
		&p.DiscountPrice,
		&p.Quantity,
		&p.Description,
		&p.Status,
		&p.CreatedAt,
		&p.PublishedAt,
	}
}
