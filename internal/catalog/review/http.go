// Copyright (c) 2026 Agora. All rights reserved.

package review

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

// Routes returns the review endpoints, mounted under a product subtree so
// {productID} comes from the parent route. Reads are public; creating needs
// a session; editing needs the author or an admin.
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
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

type updateRequest struct {
	Rating *int    `json:"rating"`
	Body   *string `json:"body"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	productID := requestutil.Param(request, "productID")

	reviews, total, err := handler.service.ListByProduct(request.Context(), productID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
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
	validator.Range("rating", input.Rating, 1, 5).
		Required("body", input.Body).
		MaxLen("body", input.Body, 4000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), principal, CreateInput{
		ProductID: requestutil.Param(request, "productID"),
		Rating:    input.Rating,
		Body:      input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
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
	if input.Rating != nil {
		validator.Range("rating", *input.Rating, 1, 5)
	}
	if input.Body != nil {
		validator.Required("body", *input.Body).MaxLen("body", *input.Body, 4000)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), principal, requestutil.Param(request, "id"), UpdateInput{
		Rating: input.Rating,
		Body:   input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
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
