// Copyright (c) 2026 Agora. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperr.Conflict("User already exists")
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

type fakeDenylist struct {
	entries map[string]time.Duration
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{entries: map[string]time.Duration{}}
}

func (f *fakeDenylist) Add(_ context.Context, tokenID string, ttl time.Duration) error {
	f.entries[tokenID] = ttl
	return nil
}

func (f *fakeDenylist) Contains(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.entries[tokenID]
	return ok, nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeDenylist) {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "agora.test")
	require.NoError(t, err)

	users := newFakeUserRepository()
	denylist := newFakeDenylist()
	return auth.NewService(users, denylist, tokens), users, denylist
}

func validRegisterInput() auth.RegisterInput {
	return auth.RegisterInput{
		Name:            "Lena",
		Email:           "lena@example.com",
		PhoneNumber:     "+14155550100",
		BirthDate:       "1991-07-03",
		Password:        "strong-password",
		PasswordConfirm: "strong-password",
	}
}

/*
TestRegister_Success verifies enrollment stores a hashed credential and
returns only public fields.
*/
func TestRegister_Success(t *testing.T) {
	service, users, _ := newTestService(t)

	public, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, public.ID)
	assert.Equal(t, "Lena", public.Name)

	stored := users.byEmail["lena@example.com"]
	require.NotNil(t, stored)
	assert.Equal(t, sec.RoleUser, stored.Role)
	assert.NotEqual(t, "strong-password", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("strong-password", stored.PasswordHash))
}

/*
TestRegister_ConfirmationMismatch verifies nothing is persisted when the
password confirmation differs.
*/
func TestRegister_ConfirmationMismatch(t *testing.T) {
	service, users, _ := newTestService(t)

	input := validRegisterInput()
	input.PasswordConfirm = "different-password"

	_, err := service.Register(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
	assert.Empty(t, users.byEmail)
}

/*
TestRegister_DuplicateEmail verifies re-registration of an existing email
yields a conflict.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegisterInput())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
}

/*
TestLogin verifies the credential check and its uniform failure message.
*/
func TestLogin(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "lena@example.com",
			Password: "strong-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
		assert.Equal(t, "lena@example.com", session.User.Email)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "lena@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("unknown_email_same_message", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		require.Error(t, err)

		// Unknown account and wrong password are indistinguishable.
		assert.Equal(t, "Invalid email or password", err.Error())
	})
}

/*
TestLogout verifies the token id joins the denylist for its remaining life
and that logging out twice is harmless.
*/
func TestLogout(t *testing.T) {
	service, _, denylist := newTestService(t)

	expiresAt := time.Now().Add(30 * time.Minute)
	claims := &sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-id-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: "user-1",
	}

	require.NoError(t, service.Logout(context.Background(), claims))

	revoked, err := denylist.Contains(context.Background(), "token-id-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// TTL tracks the token's remaining lifetime, not the full hour.
	assert.InDelta(t, float64(30*time.Minute), float64(denylist.entries["token-id-1"]), float64(5*time.Second))

	// Idempotent.
	require.NoError(t, service.Logout(context.Background(), claims))
}

/*
TestLogout_ExpiredToken verifies already-expired tokens never reach the
denylist.
*/
func TestLogout_ExpiredToken(t *testing.T) {
	service, _, denylist := newTestService(t)

	claims := &sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "stale-token",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	require.NoError(t, service.Logout(context.Background(), claims))
	assert.Empty(t, denylist.entries)
}

/*
TestResolvePrincipal verifies role and existence come from the store.
*/
func TestResolvePrincipal(t *testing.T) {
	service, users, _ := newTestService(t)

	public, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	principal, err := service.ResolvePrincipal(context.Background(), public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, principal.ID)
	assert.Equal(t, sec.RoleUser, principal.Role)

	// A role change in the store applies on the next resolution.
	users.byID[public.ID].Role = sec.RoleAdmin
	principal, err = service.ResolvePrincipal(context.Background(), public.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, principal.Role)

	// Deleted subjects stop resolving.
	delete(users.byID, public.ID)
	_, err = service.ResolvePrincipal(context.Background(), public.ID)
	assert.Error(t, err)
}
