// Copyright (c) 2026 Agora. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Session protection is selective: each domain handler receives the
    session middleware and applies it to exactly the routes that need it,
    so public reads never pay the verification cost.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ltcastel/agora/internal/catalog/category"
	"github.com/ltcastel/agora/internal/catalog/product"
	"github.com/ltcastel/agora/internal/catalog/review"
	"github.com/ltcastel/agora/internal/forum/comment"
	"github.com/ltcastel/agora/internal/forum/post"
	"github.com/ltcastel/agora/internal/platform/config"
	"github.com/ltcastel/agora/internal/platform/constants"
	"github.com/ltcastel/agora/internal/platform/middleware"
	"github.com/ltcastel/agora/internal/users/account"
	"github.com/ltcastel/agora/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, logout, and the current profile.
	Auth *auth.Handler

	// Account handles the user directory.
	Account *account.Handler

	// Category handles the catalog taxonomy.
	Category *category.Handler

	// Product handles the sellable catalog items.
	Product *product.Handler

	// Review handles product reviews.
	Review *review.Handler

	// Post handles forum publications.
	Post *post.Handler

	// Comment handles forum replies.
	Comment *comment.Handler
}

// SessionDependencies bundles the collaborators of the session middleware.
type SessionDependencies struct {
	Verifier middleware.TokenVerifier
	Resolver middleware.PrincipalResolver
	Denylist middleware.TokenDenylist
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(appCtx context.Context, cfg *config.Config, log *slog.Logger, deps SessionDependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appCtx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)

	// Session middleware is handed to each domain router rather than
	// applied globally.
	session := middleware.Session(deps.Verifier, deps.Resolver, deps.Denylist)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(session))
		api.Mount("/users", h.Account.Routes(session))
		api.Mount("/categories", h.Category.Routes(session))
		api.Mount("/products", h.Product.Routes(session))
		api.Mount("/products/{productID}/reviews", h.Review.Routes(session))
		api.Mount("/posts", h.Post.Routes(session))
		api.Mount("/posts/{postID}/comments", h.Comment.Routes(session))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the underlying handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
