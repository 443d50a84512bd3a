// Copyright (c) 2026 Agora. All rights reserved.

package comment

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

const commentColumns = `id, post_id, author_id, content, created_at, updated_at`

func (repository *PostgresRepository) ListByPost(ctx context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM comments WHERE post_id = $1`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}

	const query = `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, params.Limit)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment := &Comment{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	return dberr.Wrap(err, "Comment")
}

func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	const query = `
		UPDATE comments
		SET content = $2, updated_at = $3
		WHERE id = $1`

	comment.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		comment.ID,
		comment.Content,
		comment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) PostExists(ctx context.Context, postID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Post")
	}

	return exists, nil
}
