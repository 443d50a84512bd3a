// Copyright (c) 2026 Agora. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/constants"
	"github.com/ltcastel/agora/internal/platform/ctxutil"
	"github.com/ltcastel/agora/internal/platform/middleware"
	"github.com/ltcastel/agora/internal/platform/sec"
)

// # Stubs

type stubVerifier struct {
	claims *sec.SessionClaims
	err    error
}

func (s *stubVerifier) Verify(string) (*sec.SessionClaims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	principal *sec.Principal
	err       error
}

func (s *stubResolver) ResolvePrincipal(context.Context, string) (*sec.Principal, error) {
	return s.principal, s.err
}

type stubDenylist struct {
	revoked bool
	err     error
}

func (s *stubDenylist) Contains(context.Context, string) (bool, error) {
	return s.revoked, s.err
}

func validClaims() *sec.SessionClaims {
	return &sec.SessionClaims{UserID: "user-1", Role: "user"}
}

// serveSession runs a request through the Session middleware with the given
// collaborators and reports the recorder plus whether the inner handler ran.
func serveSession(t *testing.T, verifier middleware.TokenVerifier, resolver middleware.PrincipalResolver, denylist middleware.TokenDenylist, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Request, bool) {
	t.Helper()

	reached := false
	var inner *http.Request

	handler := middleware.Session(verifier, resolver, denylist)(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			reached = true
			inner = request
			writer.WriteHeader(http.StatusOK)
		}))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder, inner, reached
}

/*
TestSession_NoCookie verifies that a request without the token cookie is
rejected with 401 before any verification work.
*/
func TestSession_NoCookie(t *testing.T) {
	recorder, _, reached := serveSession(t,
		&stubVerifier{err: sec.ErrTokenInvalid},
		&stubResolver{},
		&stubDenylist{},
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

/*
TestSession_InvalidToken verifies that verification failures halt the chain
with 401.
*/
func TestSession_InvalidToken(t *testing.T) {
	for name, verifyErr := range map[string]error{
		"invalid": sec.ErrTokenInvalid,
		"expired": sec.ErrTokenExpired,
	} {
		t.Run(name, func(t *testing.T) {
			recorder, _, reached := serveSession(t,
				&stubVerifier{err: verifyErr},
				&stubResolver{principal: &sec.Principal{ID: "user-1", Role: sec.RoleUser}},
				&stubDenylist{},
				&http.Cookie{Name: constants.SessionCookieName, Value: "bad-token"},
			)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, reached)
		})
	}
}

/*
TestSession_RevokedToken verifies that a denylisted token id is rejected even
though its signature still verifies.
*/
func TestSession_RevokedToken(t *testing.T) {
	recorder, _, reached := serveSession(t,
		&stubVerifier{claims: validClaims()},
		&stubResolver{principal: &sec.Principal{ID: "user-1", Role: sec.RoleUser}},
		&stubDenylist{revoked: true},
		&http.Cookie{Name: constants.SessionCookieName, Value: "revoked-token"},
	)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

/*
TestSession_DeletedSubject verifies that a token whose subject no longer
exists is rejected.
*/
func TestSession_DeletedSubject(t *testing.T) {
	recorder, _, reached := serveSession(t,
		&stubVerifier{claims: validClaims()},
		&stubResolver{err: apperr.NotFound("User")},
		&stubDenylist{},
		&http.Cookie{Name: constants.SessionCookieName, Value: "orphan-token"},
	)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

/*
TestSession_Success verifies the happy path: principal and claims reach the
inner handler's context.
*/
func TestSession_Success(t *testing.T) {
	principal := &sec.Principal{ID: "user-1", Role: sec.RoleUser}

	recorder, inner, reached := serveSession(t,
		&stubVerifier{claims: validClaims()},
		&stubResolver{principal: principal},
		&stubDenylist{},
		&http.Cookie{Name: constants.SessionCookieName, Value: "good-token"},
	)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, reached)

	got := ctxutil.GetPrincipal(inner.Context())
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)

	claims := ctxutil.GetSessionClaims(inner.Context())
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
}

/*
TestRequireAdmin verifies role gating after session authentication.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"admin_allowed", &sec.Principal{ID: "a", Role: sec.RoleAdmin}, http.StatusOK},
		{"user_forbidden", &sec.Principal{ID: "u", Role: sec.RoleUser}, http.StatusForbidden},
		{"missing_principal", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireAdmin(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
			if tt.principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
