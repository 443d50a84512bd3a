// Copyright (c) 2026 Agora. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access: may mutate any resource regardless of ownership.
	RoleAdmin UserRole = "admin"

	// Default role for registered accounts. May mutate only owned resources.
	RoleUser UserRole = "user"
)

// IsAdmin reports whether the role carries administrative privileges.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known enum values. Claims
// coming out of a verified token still pass through this check so an
// unknown role string never silently grants access.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Principal

// Principal is the authenticated identity resolved for the current request.
//
// It is constructed by the session middleware on every protected request,
// threaded through the request context, and discarded when the response
// completes. It is never persisted or cached across requests.
type Principal struct {
	// ID is the canonical subject identifier (UUID string). Ownership checks
	// compare this against a resource's owner id — never against raw path
	// parameters.
	ID string

	// Role gates admin-only actions.
	Role UserRole
}
