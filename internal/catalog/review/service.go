// Copyright (c) 2026 Agora. All rights reserved.

package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ltcastel/agora/internal/platform/apperr"
	"github.com/ltcastel/agora/internal/platform/authz"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/pkg/pagination"
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

func (service *Service) ListByProduct(context context.Context, productID string, params pagination.Params) ([]*Review, int, error) {
	return service.repo.ListByProduct(context, productID, params)
}

func (service *Service) Get(context context.Context, id string) (*Review, error) {
	return service.repo.FindByID(context, id)
}

type CreateInput struct {
	ProductID string
	Rating    int
	Body      string
}

// Create attaches a new review to a product. The author is always the
// calling principal; the payload cannot claim another identity.
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*Review, error) {
	exists, err := service.repo.ProductExists(context, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("review_service_product_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Product")
	}

	review := &Review{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		AuthorID:  principal.ID,
		Rating:    input.Rating,
		Body:      input.Body,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return review, nil
}

type UpdateInput struct {
	Rating *int
	Body   *string
}

// Update edits a review. The stored author id decides ownership, never
// anything in the request payload.
func (service *Service) Update(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*Review, error) {
	review, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(principal, review.AuthorID, true); err != nil {
		return nil, err
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Body != nil {
		review.Body = *input.Body
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (service *Service) Delete(context context.Context, principal *sec.Principal, id string) error {
	review, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := authz.Require(principal, review.AuthorID, true); err != nil {
		return err
	}

	return service.repo.Delete(context, review.ID)
}
