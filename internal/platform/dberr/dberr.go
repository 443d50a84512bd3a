// Copyright (c) 2026 Agora. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Repositories never return raw pgx errors to services: a missing row
// becomes a 404, a unique-constraint violation becomes a 409, a broken
// foreign key becomes a 400, and everything else becomes a generic 500
// with the cause retained for server-side logging.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ltcastel/agora/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into a meaningful
// [apperr.AppError] for the named resource.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced " + resource + " does not exist")
		}
	}

	return apperr.Internal(err)
}
