// Copyright (c) 2026 Agora. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given id, or a NotFound error.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, or a NotFound error.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new account. A duplicate email surfaces as a
	// Conflict error.
	Create(ctx context.Context, user *User) error
}

// # Token Revocation

// DenylistRepository tracks session token ids revoked by logout.
//
// Entries carry a TTL equal to the remaining life of the revoked token, so
// the denylist never grows beyond the set of tokens that could still verify.
type DenylistRepository interface {
	// Add marks a token id as revoked for the given duration.
	Add(ctx context.Context, tokenID string, ttl time.Duration) error

	// Contains reports whether a token id has been revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)
}
