// Copyright (c) 2026 Agora. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltcastel/agora/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hashing and comparison agree.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The digest never contains the plaintext.
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_UniqueSalts verifies two hashes of the same input differ.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestDummyCompare_NeverMatches verifies the timing-leveling comparison always
reports a mismatch.
*/
func TestDummyCompare_NeverMatches(t *testing.T) {
	assert.NotPanics(t, func() {
		sec.DummyCompare("anything")
		sec.DummyCompare("")
	})
}
