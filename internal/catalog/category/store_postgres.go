// Copyright (c) 2026 Agora. All rights reserved.

package category

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

func (repository *PostgresRepository) List(ctx context.Context) ([]*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return categories, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return repository.scanOne(ctx, query, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	return repository.scanOne(ctx, query, slug)
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*Category, error) {
	category := &Category{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return category, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, category *Category) error {
	const query = `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return dberr.Wrap(err, "Category")
}

func (repository *PostgresRepository) Update(ctx context.Context, category *Category) error {
	const query = `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1`

	category.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
