// Copyright (c) 2026 Agora. All rights reserved.

/*
Package account handles user directory and profile management.

It provides the public user directory plus per-account read, update, and
delete operations. Mutations are restricted to the account owner or an
administrator; the decision itself lives in internal/platform/authz.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Service: Enforces ownership before every mutation.
  - Storage: PostgreSQL over the shared users table.
*/
package account

import (
	"context"

	"github.com/ltcastel/agora/internal/users/auth"
	"github.com/ltcastel/agora/pkg/pagination"
)

// # Repository Contracts

// Repository defines the persistence contract for account management.
type Repository interface {
	/*
		List retrieves a page of user accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*auth.User: Page of accounts
		  - int: Total account count
		  - error: Storage failures
	*/
	List(context context.Context, params pagination.Params) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes an account permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	Delete(context context.Context, id string) error
}
