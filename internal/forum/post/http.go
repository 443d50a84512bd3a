// Copyright (c) 2026 Agora. All rights reserved.

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ltcastel/agora/internal/platform/request"
	"github.com/ltcastel/agora/internal/platform/respond"
	"github.com/ltcastel/agora/internal/platform/validate"
	"github.com/ltcastel/agora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the post endpoints.
//
// # Endpoints
//   - GET    /      : Lists posts (public, paginated).
//   - GET    /{id}  : Returns a post (public).
//   - POST   /      : Publishes a post (authenticated).
//   - PUT    /{id}  : Edits a post (author or admin).
//   - DELETE /{id}  : Removes a post (author or admin).
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(session)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Create(request.Context(), principal, CreateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	if input.Content != nil {
		validator.Required("content", *input.Content)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Update(request.Context(), principal, requestutil.Param(request, "id"), UpdateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), principal, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
