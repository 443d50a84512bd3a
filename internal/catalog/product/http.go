// Copyright (c) 2026 Agora. All rights reserved.

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ltcastel/agora/internal/platform/middleware"
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

// Routes returns the product endpoints. Reads are public; mutations require
// an administrator session.
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/by-slug/{slug}", handler.getBySlug)

	router.Group(func(r chi.Router) {
		r.Use(session, middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

type updateRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{CategoryID: request.URL.Query().Get("category_id")}

	products, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.GetBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("category_id", input.CategoryID).
		UUID("category_id", input.CategoryID).
		Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Custom("price_cents", input.PriceCents < 0, "Must not be negative").
		Custom("stock", input.Stock < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), CreateInput{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.CategoryID != nil {
		validator.UUID("category_id", *input.CategoryID)
	}
	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.PriceCents != nil {
		validator.Custom("price_cents", *input.PriceCents < 0, "Must not be negative")
	}
	if input.Stock != nil {
		validator.Custom("stock", *input.Stock < 0, "Must not be negative")
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
