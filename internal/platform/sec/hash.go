// Copyright (c) 2026 Agora. All rights reserved.

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a valid bcrypt digest of a random string that is never a real
// password. Login runs a comparison against it when the account does not
// exist, so the response time of "unknown email" matches "wrong password"
// and the endpoint cannot be used to enumerate accounts.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The cost factor is embedded in the resulting digest, so records hashed at
// different costs all verify through [CheckPasswordHash] without extra state.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version
// using bcrypt's constant-time comparison.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// DummyCompare burns the same bcrypt work as a real verification and always
// fails. Call it on the unknown-account path of login.
func DummyCompare(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plainTextPassword))
}
