// Copyright (c) 2026 Agora. All rights reserved.

package account

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/dberr"
	"github.com/ltcastel/agora/internal/users/auth"
	"github.com/ltcastel/agora/pkg/pagination"
)

// PostgresRepository implements [Repository] over the shared users table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, phone_number, birth_date, password_hash, role, created_at, updated_at`

func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*auth.User, int, error) {
	const countQuery = `SELECT COUNT(*) FROM users`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, params.Limit)
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PhoneNumber,
			&user.BirthDate,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &auth.User{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PhoneNumber,
		&user.BirthDate,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, user *auth.User) error {
	const query = `
		UPDATE users
		SET name = $2, phone_number = $3, birth_date = $4, updated_at = $5
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.PhoneNumber,
		user.BirthDate,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
