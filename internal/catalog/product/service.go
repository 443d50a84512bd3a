// Copyright (c) 2026 Agora. All rights reserved.

package product

import (
	"context"
	"log/slog"

	"github.com/ltcastel/agora/pkg/pagination"
	"github.com/ltcastel/agora/pkg/slug"
	"github.com/ltcastel/agora/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Product, int, error) {
	return service.repo.List(context, filter, params)
}

func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, productSlug string) (*Product, error) {
	return service.repo.FindBySlug(context, productSlug)
}

type CreateInput struct {
	CategoryID  string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
	}

	// A broken category reference surfaces from the store as a validation
	// error via the foreign key mapping.
	if err := service.repo.Create(context, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_created",
		slog.String("product_id", product.ID),
		slog.String("category_id", product.CategoryID),
	)

	return product, nil
}

type UpdateInput struct {
	CategoryID  *string
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := service.repo.Update(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
