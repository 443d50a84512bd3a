// Copyright (c) 2026 Agora. All rights reserved.

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltcastel/agora/internal/api"
	"github.com/ltcastel/agora/internal/catalog/category"
	"github.com/ltcastel/agora/internal/catalog/product"
	"github.com/ltcastel/agora/internal/catalog/review"
	"github.com/ltcastel/agora/internal/forum/comment"
	"github.com/ltcastel/agora/internal/forum/post"
	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/config"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/internal/users/account"
	"github.com/ltcastel/agora/internal/users/auth"
	"github.com/ltcastel/agora/pkg/pagination"
)

// # In-memory stores
//
// The server is wired exactly as in main.go, with every repository replaced
// by a map-backed fake. Only the HTTP boundary and the real token service
// are exercised end to end.

type memUsers struct {
	byID map[string]*auth.User
}

func (m *memUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memUsers) Create(_ context.Context, user *auth.User) error {
	m.byID[user.ID] = user
	return nil
}

// account.Repository over the same map.
type memAccounts struct{ users *memUsers }

func (m *memAccounts) List(_ context.Context, params pagination.Params) ([]*auth.User, int, error) {
	all := make([]*auth.User, 0, len(m.users.byID))
	for _, user := range m.users.byID {
		all = append(all, user)
	}
	return all, len(all), nil
}

func (m *memAccounts) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return m.users.FindByID(ctx, id)
}

func (m *memAccounts) Update(_ context.Context, user *auth.User) error {
	m.users.byID[user.ID] = user
	return nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	if _, ok := m.users.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(m.users.byID, id)
	return nil
}

type memDenylist struct {
	revoked map[string]time.Time
}

func (m *memDenylist) Add(_ context.Context, tokenID string, ttl time.Duration) error {
	m.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (m *memDenylist) Contains(_ context.Context, tokenID string) (bool, error) {
	expiry, ok := m.revoked[tokenID]
	return ok && time.Now().Before(expiry), nil
}

type memCategories struct{ byID map[string]*category.Category }

func (m *memCategories) List(context.Context) ([]*category.Category, error) {
	all := make([]*category.Category, 0, len(m.byID))
	for _, c := range m.byID {
		all = append(all, c)
	}
	return all, nil
}

func (m *memCategories) FindByID(_ context.Context, id string) (*category.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (m *memCategories) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	for _, c := range m.byID {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (m *memCategories) Create(_ context.Context, c *category.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) Update(_ context.Context, c *category.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memProducts struct{ byID map[string]*product.Product }

func (m *memProducts) List(_ context.Context, filter product.Filter, params pagination.Params) ([]*product.Product, int, error) {
	all := make([]*product.Product, 0, len(m.byID))
	for _, p := range m.byID {
		if filter.CategoryID == "" || p.CategoryID == filter.CategoryID {
			all = append(all, p)
		}
	}
	return all, len(all), nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	return p, nil
}

func (m *memProducts) FindBySlug(_ context.Context, slug string) (*product.Product, error) {
	for _, p := range m.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, apperr.NotFound("Product")
}

func (m *memProducts) Create(_ context.Context, p *product.Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProducts) Update(_ context.Context, p *product.Product) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memReviews struct {
	byID     map[string]*review.Review
	products *memProducts
}

func (m *memReviews) ListByProduct(_ context.Context, productID string, params pagination.Params) ([]*review.Review, int, error) {
	all := []*review.Review{}
	for _, r := range m.byID {
		if r.ProductID == productID {
			all = append(all, r)
		}
	}
	return all, len(all), nil
}

func (m *memReviews) FindByID(_ context.Context, id string) (*review.Review, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return r, nil
}

func (m *memReviews) Create(_ context.Context, r *review.Review) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memReviews) Update(_ context.Context, r *review.Review) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memReviews) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memReviews) ProductExists(_ context.Context, productID string) (bool, error) {
	_, ok := m.products.byID[productID]
	return ok, nil
}

type memPosts struct{ byID map[string]*post.Post }

func (m *memPosts) List(_ context.Context, params pagination.Params) ([]*post.Post, int, error) {
	all := make([]*post.Post, 0, len(m.byID))
	for _, p := range m.byID {
		all = append(all, p)
	}
	return all, len(all), nil
}

func (m *memPosts) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return p, nil
}

func (m *memPosts) Create(_ context.Context, p *post.Post) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPosts) Update(_ context.Context, p *post.Post) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(m.byID, id)
	return nil
}

type memComments struct {
	byID  map[string]*comment.Comment
	posts *memPosts
}

func (m *memComments) ListByPost(_ context.Context, postID string, params pagination.Params) ([]*comment.Comment, int, error) {
	all := []*comment.Comment{}
	for _, c := range m.byID {
		if c.PostID == postID {
			all = append(all, c)
		}
	}
	return all, len(all), nil
}

func (m *memComments) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (m *memComments) Create(_ context.Context, c *comment.Comment) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memComments) Update(_ context.Context, c *comment.Comment) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memComments) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memComments) PostExists(_ context.Context, postID string) (bool, error) {
	_, ok := m.posts.byID[postID]
	return ok, nil
}

// # Test harness

type testEnv struct {
	handler  http.Handler
	users    *memUsers
	posts    *memPosts
	denylist *memDenylist
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.Default()

	tokenService, err := sec.NewTokenService("e2e-test-secret", "agora.test")
	require.NoError(t, err)

	users := &memUsers{byID: map[string]*auth.User{}}
	denylist := &memDenylist{revoked: map[string]time.Time{}}
	posts := &memPosts{byID: map[string]*post.Post{}}
	products := &memProducts{byID: map[string]*product.Product{}}

	authService := auth.NewService(users, denylist, tokenService)

	handlers := api.Handlers{
		Liveness:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
		Readiness: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(&memAccounts{users: users}, logger)),
		Category:  category.NewHandler(category.NewService(&memCategories{byID: map[string]*category.Category{}}, logger)),
		Product:   product.NewHandler(product.NewService(products, logger)),
		Review:    review.NewHandler(review.NewService(&memReviews{byID: map[string]*review.Review{}, products: products}, logger)),
		Post:      post.NewHandler(post.NewService(posts, logger)),
		Comment:   comment.NewHandler(comment.NewService(&memComments{byID: map[string]*comment.Comment{}, posts: posts}, logger)),
	}

	deps := api.SessionDependencies{
		Verifier: tokenService,
		Resolver: authService,
		Denylist: denylist,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, logger, deps, handlers)

	return &testEnv{
		handler:  server.Router(),
		users:    users,
		posts:    posts,
		denylist: denylist,
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	env.handler.ServeHTTP(recorder, request)
	return recorder
}

// register creates an account through the API and returns its id.
func (env *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	recorder := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":             name,
		"email":            email,
		"phone_number":     "+14155550100",
		"birth_date":       "1990-01-01",
		"password":         "strong-password",
		"password_confirm": "strong-password",
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ID)
	return envelope.Data.ID
}

// login authenticates through the API and returns the session cookie.
func (env *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()

	recorder := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "strong-password",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "token" {
			require.True(t, cookie.HttpOnly)
			return cookie
		}
	}
	t.Fatal("login response carried no token cookie")
	return nil
}

// # Scenarios

/*
TestE2E_RegisterLoginMe walks the happy authentication path.
*/
func TestE2E_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	userID := env.register(t, "Alice", "alice@example.com")
	cookie := env.login(t, "alice@example.com")

	recorder := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, userID, envelope.Data.ID)
	assert.Equal(t, "alice@example.com", envelope.Data.Email)

	// The credential hash never leaves the server.
	assert.NotContains(t, recorder.Body.String(), "password_hash")
}

/*
TestE2E_ProtectedRoutesRequireSession verifies protected endpoints reject
cookie-less and garbage-cookie requests with 401.
*/
func TestE2E_ProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/api/v1/posts", map[string]string{"title": "x", "content": "y"}, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, &http.Cookie{Name: "token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestE2E_PostOwnership covers the central authorization scenario: an author's
post cannot be deleted by another user, while an administrator can delete
anything.
*/
func TestE2E_PostOwnership(t *testing.T) {
	env := newTestEnv(t)

	aliceID := env.register(t, "Alice", "alice@example.com")
	env.register(t, "Bob", "bob@example.com")
	adminID := env.register(t, "Root", "root@example.com")
	env.users.byID[adminID].Role = sec.RoleAdmin

	aliceCookie := env.login(t, "alice@example.com")
	bobCookie := env.login(t, "bob@example.com")
	adminCookie := env.login(t, "root@example.com")

	// Alice publishes; the author is taken from her session, not the payload.
	recorder := env.do(t, http.MethodPost, "/api/v1/posts", map[string]string{
		"title":   "Alice's post",
		"content": "Hello from Alice",
	}, aliceCookie)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			ID       string `json:"id"`
			AuthorID string `json:"author_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	postID := envelope.Data.ID
	assert.Equal(t, aliceID, envelope.Data.AuthorID)

	postPath := fmt.Sprintf("/api/v1/posts/%s", postID)

	// Anyone may read it without a session.
	recorder = env.do(t, http.MethodGet, postPath, nil, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Bob may not edit or delete it; the post survives untouched.
	recorder = env.do(t, http.MethodPut, postPath, map[string]string{"title": "Hijacked"}, bobCookie)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = env.do(t, http.MethodDelete, postPath, nil, bobCookie)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = env.do(t, http.MethodGet, postPath, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Alice's post")

	// The administrator deletes it despite not being the owner.
	recorder = env.do(t, http.MethodDelete, postPath, nil, adminCookie)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = env.do(t, http.MethodGet, postPath, nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestE2E_LogoutRevokesSession verifies a replayed cookie stops working after
logout even though the token itself has not expired.
*/
func TestE2E_LogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Alice", "alice@example.com")
	cookie := env.login(t, "alice@example.com")

	recorder := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// The old cookie value is replayed verbatim.
	recorder = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestE2E_DeletedSubjectRejected verifies sessions of deleted accounts stop
working immediately.
*/
func TestE2E_DeletedSubjectRejected(t *testing.T) {
	env := newTestEnv(t)

	userID := env.register(t, "Alice", "alice@example.com")
	cookie := env.login(t, "alice@example.com")

	delete(env.users.byID, userID)

	recorder := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestE2E_AdminOnlyCatalogMutations verifies regular users cannot write to the
catalog while administrators can.
*/
func TestE2E_AdminOnlyCatalogMutations(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Bob", "bob@example.com")
	adminID := env.register(t, "Root", "root@example.com")
	env.users.byID[adminID].Role = sec.RoleAdmin

	bobCookie := env.login(t, "bob@example.com")
	adminCookie := env.login(t, "root@example.com")

	payload := map[string]string{"name": "Books", "description": "Printed matter"}

	recorder := env.do(t, http.MethodPost, "/api/v1/categories", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/api/v1/categories", payload, bobCookie)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/api/v1/categories", payload, adminCookie)
	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"slug":"books"`)
}

/*
TestE2E_AccountOwnership verifies a user may edit their own profile but not
anyone else's.
*/
func TestE2E_AccountOwnership(t *testing.T) {
	env := newTestEnv(t)

	aliceID := env.register(t, "Alice", "alice@example.com")
	env.register(t, "Bob", "bob@example.com")

	aliceCookie := env.login(t, "alice@example.com")
	bobCookie := env.login(t, "bob@example.com")

	alicePath := fmt.Sprintf("/api/v1/users/%s", aliceID)
	payload := map[string]string{"name": "Alicia"}

	// The directory read is public.
	recorder := env.do(t, http.MethodGet, alicePath, nil, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password_hash")

	// Bob cannot rename Alice.
	recorder = env.do(t, http.MethodPut, alicePath, payload, bobCookie)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// Alice can.
	recorder = env.do(t, http.MethodPut, alicePath, payload, aliceCookie)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, "Alicia", env.users.byID[aliceID].Name)
}

/*
TestE2E_LoginFailuresAreUniform verifies unknown emails and wrong passwords
produce identical responses.
*/
func TestE2E_LoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Alice", "alice@example.com")

	wrongPassword := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "nope",
	}, nil)
	unknownEmail := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "nope",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
