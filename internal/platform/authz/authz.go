// Copyright (c) 2026 Agora. All rights reserved.

/*
Package authz implements the single authorization policy applied to every
ownership- or role-gated mutation in the API.

The policy is a pure function over already-resolved facts: the acting
principal and the owner id of the target resource. It performs no I/O and
holds no state, so every handler shares exactly one decision rule instead
of re-implementing role and ownership checks inline.

Callers are expected to read the resource's owner id within the same request
before deciding, then mutate only on Allow — never decide from a cached or
older read of ownership.
*/
package authz

import (
	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/sec"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Deny blocks the action. The caller must respond 403 and perform no mutation.
	Deny Decision = iota

	// Allow permits the action.
	Allow
)

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool { return d == Allow }

// Authorize decides whether the principal may perform a mutating action on a
// resource owned by ownerID.
//
// # Rule
//
// Allow iff the principal is an admin, OR selfOrAdmin is true and the
// principal owns the resource. For admin-only actions (e.g. deleting a
// category) pass selfOrAdmin = false so only the role check applies.
//
// Ownership compares canonical resolved ids — both sides are UUID strings
// produced by this system, never raw path parameters.
func Authorize(principal *sec.Principal, ownerID string, selfOrAdmin bool) Decision {
	if principal == nil {
		return Deny
	}

	if principal.Role.IsAdmin() {
		return Allow
	}

	if selfOrAdmin && principal.ID != "" && principal.ID == ownerID {
		return Allow
	}

	return Deny
}

// Require wraps [Authorize] for the common service-layer call site: it
// returns nil on Allow and a 403 [apperr.AppError] on Deny.
func Require(principal *sec.Principal, ownerID string, selfOrAdmin bool) error {
	if Authorize(principal, ownerID, selfOrAdmin).Allowed() {
		return nil
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}
