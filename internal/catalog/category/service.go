// Copyright (c) 2026 Agora. All rights reserved.

package category

import (
	"context"
	"log/slog"

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

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.FindBySlug(context, categorySlug)
}

type CreateInput struct {
	Name        string
	Description string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("category_id", category.ID))

	return category, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Category, error) {
	category, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
