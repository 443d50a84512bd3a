// Copyright (c) 2026 Agora. All rights reserved.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/authz"
	"github.com/ltcastel/agora/internal/platform/constants"
	"github.com/ltcastel/agora/internal/platform/ctxutil"
	"github.com/ltcastel/agora/internal/platform/respond"
	"github.com/ltcastel/agora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.SessionClaims, error)
}

// PrincipalResolver resolves a verified subject id into a live principal.
//
// Resolution hits the user store: a token whose subject was deleted after
// issuance must be rejected even though its signature still verifies.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, subjectID string) (*sec.Principal, error)
}

// TokenDenylist checks whether a token id was revoked by logout before its
// natural expiry.
type TokenDenylist interface {
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// Session authenticates requests from the `token` httpOnly cookie.
//
// # Per-request state machine
//
//	NoToken → (extract cookie) → TokenPresent → (verify) → {Authenticated | Rejected}
//
// Rejected paths all halt the chain with 401:
//  1. No token cookie present.
//  2. Signature or expiry verification fails.
//  3. The token id is on the logout denylist.
//  4. The subject no longer exists in the user store.
//
// On success the resolved [*sec.Principal] and the verified claims are
// attached to the request context and the next handler is invoked. Mount
// this strictly before any handler that reads the principal from context;
// public routes simply never mount it.
func Session(verifier TokenVerifier, resolver PrincipalResolver, denylist TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Cookie Extraction ──────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(writer, request, apperr.Unauthorized("No session token provided"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				// Expired and invalid tokens are rejected identically but
				// stay distinguishable in the logs.
				reason := "token_invalid"
				if errors.Is(err, sec.ErrTokenExpired) {
					reason = "token_expired"
				}
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"session_rejected", slog.String("reason", reason))

				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session token"))
				return
			}

			// ── 3. Revocation Check ───────────────────────────────────────────
			revoked, err := denylist.Contains(request.Context(), claims.ID)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if revoked {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session token"))
				return
			}

			// ── 4. Subject Resolution ─────────────────────────────────────────
			// The subject may have been deleted after the token was issued.
			principal, err := resolver.ResolvePrincipal(request.Context(), claims.UserID)
			if err != nil || principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctx = ctxutil.WithSessionClaims(ctx, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests whose principal is not an administrator.
//
// # Usage
//
// Must be mounted AFTER [Session]. It applies the same authorization policy
// as ownership-gated handlers, with the ownership branch disabled: only the
// role check can allow the action.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())

		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		if !authz.Authorize(principal, "", false).Allowed() {
			respond.Error(writer, request, apperr.Forbidden("Administrator access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
