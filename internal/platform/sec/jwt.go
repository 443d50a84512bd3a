// Copyright (c) 2026 Agora. All rights reserved.

// Package sec provides the security primitives of the platform: password
// hashing, session token issuance/verification, and the role model.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. It is
// injected into the application layer through small interfaces (see
// [middleware.TokenVerifier]) so services and middleware never touch key
// material directly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ltcastel/agora/internal/platform/constants"
	"github.com/ltcastel/agora/pkg/uuid"
)

// # Claims

// SessionClaims is the payload embedded inside a session token.
//
// By carrying the subject id and role directly in the signed token, the
// session middleware can reject forged or expired sessions without any
// storage round-trip; only the final subject-still-exists check touches
// the database.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token small.
	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// # Verification Errors

var (
	// ErrTokenInvalid is returned when a token is malformed or its signature
	// does not verify under the server's signing key.
	ErrTokenInvalid = errors.New("sec: invalid session token")

	// ErrTokenExpired is returned when the signature verifies but the token
	// is past its expiry. Callers treat both errors identically (reject);
	// they stay distinguishable for diagnostics.
	ErrTokenExpired = errors.New("sec: expired session token")
)

// # Token Service

// TokenService issues and verifies HS256-signed session tokens.
//
// The signing secret is process configuration, loaded once at startup and
// read-only afterwards. Rotating it invalidates all outstanding tokens,
// which the stateless design accepts by trading revocation for simplicity.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// now is swappable so expiry behavior is testable without sleeping.
	now func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token signing secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    constants.SessionTokenTTL,
		now:    time.Now,
	}, nil
}

// Issue creates a signed session token for the given subject.
//
// The token carries a fresh jti so logout can denylist this exact session,
// iat = now, and exp = now + the fixed session TTL.
func (service *TokenService) Issue(subjectID string, role UserRole) (string, time.Time, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   subjectID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: subjectID,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature and expiry of a session token string.
//
// It returns the embedded claims on success, [ErrTokenExpired] when the
// signature verifies but the token is past exp, and [ErrTokenInvalid] for
// every other failure (malformed input, wrong algorithm, bad signature).
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// A verified signature with an out-of-range role claim still fails closed.
	if !UserRole(claims.Role).Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
