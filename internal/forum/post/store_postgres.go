// Copyright (c) 2026 Agora. All rights reserved.

package post

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

const postColumns = `id, author_id, title, content, created_at, updated_at`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Post, int, error) {
	const countQuery = `SELECT COUNT(*) FROM posts`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Post")
	}

	const query = `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Post")
	}
	defer rows.Close()

	posts := make([]*Post, 0, params.Limit)
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Post")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Post")
	}

	return posts, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post := &Post{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	return post, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO posts (id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	)

	return dberr.Wrap(err, "Post")
}

func (repository *PostgresRepository) Update(ctx context.Context, post *Post) error {
	const query = `
		UPDATE posts
		SET title = $2, content = $3, updated_at = $4
		WHERE id = $1`

	post.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}
