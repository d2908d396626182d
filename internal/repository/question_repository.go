package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// QuestionRepository manages product question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.ProductQuestion) error
	GetByID(ctx context.Context, id int64) (*domain.ProductQuestion, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.ProductQuestion, error)
	SetAnswer(ctx context.Context, id int64, answer string) error
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository returns a Postgres-backed implementation.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.ProductQuestion) error {
	const query = `
        INSERT INTO product_questions (product_id, user_id, question)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		question.ProductID,
		question.UserID,
		question.Question,
	).Scan(&question.ID, &question.CreatedAt)
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.ProductQuestion, error) {
	const query = `
        SELECT id, product_id, user_id, question, answer, created_at
        FROM product_questions WHERE id=$1`
	var q domain.ProductQuestion
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID,
		&q.ProductID,
		&q.UserID,
		&q.Question,
		&q.Answer,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) ListByProduct(ctx context.Context, productID string) ([]domain.ProductQuestion, error) {
	const query = `
        SELECT id, product_id, user_id, question, answer, created_at
        FROM product_questions WHERE product_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductQuestion
	for rows.Next() {
		var q domain.ProductQuestion
		if err := rows.Scan(&q.ID, &q.ProductID, &q.UserID, &q.Question, &q.Answer, &q.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

func (r *questionRepository) SetAnswer(ctx context.Context, id int64, answer string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE product_questions SET answer=$1 WHERE id=$2`, answer, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
