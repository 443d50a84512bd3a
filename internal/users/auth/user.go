// Copyright (c) 2026 Agora. All rights reserved.

/*
Package auth implements the credential and session core of the Agora API.

It owns user registration (credential creation), login (credential
verification and session token issuance), logout (token revocation), and
the principal resolution consumed by the session middleware.

# Architecture

  - Service: Orchestrates registration, login, logout, and resolution.
  - Repositories: Postgres for accounts, Redis for the token denylist.
  - Security: bcrypt hashing and HS256 session tokens via internal/platform/sec.

Plaintext secrets exist only on the stack between request decoding and
hashing; they are never persisted, logged, or echoed back.
*/
package auth

import (
	"time"

	"github.com/ltcastel/agora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	BirthDate    string       `json:"birth_date"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PublicUser is the projection returned by registration: public fields only,
// never the credential hash.
type PublicUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Public returns the public projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name}
}

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhoneNumber     = "phone_number"
	FieldBirthDate       = "birth_date"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldMessage         = "message"
	FieldExpiresAt       = "expires_at"
	FieldUser            = "user"
)
