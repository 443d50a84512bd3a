// Copyright (c) 2026 Agora. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for producing signed session tokens.
type TokenIssuer interface {
	// Issue creates a signed session token for the subject and returns it
	// together with its expiry time.
	Issue(subjectID string, role sec.UserRole) (string, time.Time, error)
}

// Service implements the credential and session use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed carefully.
type Service struct {
	users    UserRepository
	denylist DenylistRepository
	tokens   TokenIssuer
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(users UserRepository, denylist DenylistRepository, tokens TokenIssuer) *Service {
	return &Service{
		users:    users,
		denylist: denylist,
		tokens:   tokens,
	}
}

// # Registration

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name            string
	Email           string
	PhoneNumber     string
	BirthDate       string
	Password        string
	PasswordConfirm string
}

// Register validates and persists a brand new user account.
//
// The password and its confirmation must be byte-equal; a mismatch fails
// with a validation error before any persistence attempt. The plaintext is
// hashed before the create call, so the store only ever sees the digest.
func (service *Service) Register(ctx context.Context, input RegisterInput) (PublicUser, error) {

	// Confirmation check happens first: nothing touches storage on mismatch.
	if input.Password != input.PasswordConfirm {
		return PublicUser{}, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPasswordConfirm,
			Message: "Passwords do not match",
		})
	}

	// Reject duplicate identities with a client-safe Conflict error.
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return PublicUser{}, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return PublicUser{}, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		BirthDate:    input.BirthDate,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return PublicUser{}, err
	}

	return user.Public(), nil
}

// # Authentication

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Login verifies credentials and issues a session token.
//
// Every failure path returns the same generic message: the response never
// distinguishes an unknown email from a wrong password. When the account
// does not exist a dummy hash comparison still runs so both paths cost the
// same bcrypt work.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		sec.DummyCompare(input.Password)
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, expiresAt, err := service.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// # Session Lifecycle

// Logout revokes the current session token server-side.
//
// The token id goes on the denylist for exactly its remaining life; once
// the token would have expired anyway the entry evaporates. Tokens already
// past expiry are a no-op (idempotent logout).
func (service *Service) Logout(ctx context.Context, claims *sec.SessionClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := service.denylist.Add(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// ResolvePrincipal turns a verified subject id into a live principal.
//
// It fails when the account no longer exists, which forces the session
// middleware to reject tokens of deleted accounts even though their
// signature still verifies. The role comes from the store, not the token,
// so a role change applies on the very next request.
func (service *Service) ResolvePrincipal(ctx context.Context, subjectID string) (*sec.Principal, error) {
	user, err := service.users.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &sec.Principal{ID: user.ID, Role: user.Role}, nil
}

// Profile returns the full account record for the given principal id.
func (service *Service) Profile(ctx context.Context, subjectID string) (*User, error) {
	return service.users.FindByID(ctx, subjectID)
}
