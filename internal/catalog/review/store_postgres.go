// Copyright (c) 2026 Agora. All rights reserved.

package review

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/dberr"
	"github.com/ltcastel/agora/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `id, product_id, author_id, rating, body, created_at, updated_at`

func (repository *PostgresRepository) ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]*Review, int, error) {
	const countQuery = `SELECT COUNT(*) FROM reviews WHERE product_id = $1`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, productID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}

	const query = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, productID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, params.Limit)
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.AuthorID,
			&review.Rating,
			&review.Body,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Review")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review := &Review{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.ProductID,
		&review.AuthorID,
		&review.Rating,
		&review.Body,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return review, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	const query = `
		INSERT INTO reviews (id, product_id, author_id, rating, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.AuthorID,
		review.Rating,
		review.Body,
		review.CreatedAt,
		review.UpdatedAt,
	)

	return dberr.Wrap(err, "Review")
}

func (repository *PostgresRepository) Update(ctx context.Context, review *Review) error {
	const query = `
		UPDATE reviews
		SET rating = $2, body = $3, updated_at = $4
		WHERE id = $1`

	review.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Body,
		review.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM reviews WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Product")
	}

	return exists, nil
}
