// Copyright (c) 2026 Agora. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ltcastel/agora/internal/platform/authz"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/internal/users/auth"
	"github.com/ltcastel/agora/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for the user directory.
//
// Every mutation follows read-then-decide-then-mutate: the target account is
// loaded first, the ownership decision runs against the stored owner id, and
// only an allowed decision reaches the store.
type Service struct {
	accounts Repository
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accounts Repository, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

/*
List retrieves a page of user accounts.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total account count
  - error: Storage failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.accounts.List(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

/*
Get retrieves a single account by id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: The account
  - error: Not found or execution failures
*/
func (service *Service) Get(context context.Context, id string) (*auth.User, error) {
	return service.accounts.FindByID(context, id)
}

// UpdateInput defines the mutable subset of account fields.
type UpdateInput struct {
	Name        *string
	PhoneNumber *string
	BirthDate   *string
}

/*
Update applies a partial set of changes to an account.

Description: Loads the target, verifies the caller owns it (or is an
administrator), applies the provided fields, and persists.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (The caller)
  - id: string (The target account)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: apperr.Forbidden, apperr.NotFound, or storage failures
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*auth.User, error) {
	user, err := service.accounts.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Ownership gate: only the owner or an admin may proceed.
	if err := authz.Require(principal, user.ID, true); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}

	if err := service.accounts.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", id))

	return user, nil
}

/*
Delete removes an account.

Description: Loads the target first so an unknown id reports NotFound before
any ownership decision, then requires owner-or-admin to mutate.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (The caller)
  - id: string (The target account)

Returns:
  - error: apperr.Forbidden, apperr.NotFound, or execution failures
*/
func (service *Service) Delete(context context.Context, principal *sec.Principal, id string) error {
	user, err := service.accounts.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := authz.Require(principal, user.ID, true); err != nil {
		return err
	}

	if err := service.accounts.Delete(context, user.ID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", id))

	return nil
}
