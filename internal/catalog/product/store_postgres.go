// Copyright (c) 2026 Agora. All rights reserved.

package product

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

const productColumns = `id, category_id, name, slug, description, price_cents, stock, created_at, updated_at`

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Product, int, error) {

	// The category filter toggles via a NULL sentinel so one prepared
	// statement covers both shapes.
	const countQuery = `
		SELECT COUNT(*) FROM products
		WHERE ($1::uuid IS NULL OR category_id = $1)`

	var categoryArg any
	if filter.CategoryID != "" {
		categoryArg = filter.CategoryID
	}

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, categoryArg).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::uuid IS NULL OR category_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, categoryArg, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}
	defer rows.Close()

	products := make([]*Product, 0, params.Limit)
	for rows.Next() {
		product := &Product{}
		if err := rows.Scan(
			&product.ID,
			&product.CategoryID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.PriceCents,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	return products, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return repository.scanOne(ctx, query, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return repository.scanOne(ctx, query, slug)
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*Product, error) {
	product := &Product{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&product.ID,
		&product.CategoryID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.PriceCents,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}
	return product, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO products (id, category_id, name, slug, description, price_cents, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)

	return dberr.Wrap(err, "Product")
}

func (repository *PostgresRepository) Update(ctx context.Context, product *Product) error {
	const query = `
		UPDATE products
		SET category_id = $2, name = $3, slug = $4, description = $5,
		    price_cents = $6, stock = $7, updated_at = $8
		WHERE id = $1`

	product.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}
