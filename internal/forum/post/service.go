// Copyright (c) 2026 Agora. All rights reserved.

package post

import (
	"context"
	"log/slog"

	"github.com/ltcastel/agora/internal/platform/authz"
	"github.com/ltcastel/agora/internal/platform/sec"
	"github.com/ltcastel/agora/pkg/pagination"
	"github.com/ltcastel/agora/pkg/uuid"
)

// Service orchestrates post reads and ownership-guarded mutations.
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

func (service *Service) List(context context.Context, params pagination.Params) ([]*Post, int, error) {
	return service.repo.List(context, params)
}

func (service *Service) Get(context context.Context, id string) (*Post, error) {
	return service.repo.FindByID(context, id)
}

type CreateInput struct {
	Title   string
	Content string
}

// Create publishes a new post owned by the calling principal.
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*Post, error) {
	post := &Post{
		ID:       uuid.New(),
		AuthorID: principal.ID,
		Title:    input.Title,
		Content:  input.Content,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
	)

	return post, nil
}

type UpdateInput struct {
	Title   *string
	Content *string
}

// Update edits a post after the owner-or-admin check passes. The check runs
// against the stored author id, so the ordering is always load, decide,
// mutate: a denied caller leaves the post untouched.
func (service *Service) Update(context context.Context, principal *sec.Principal, id string, input UpdateInput) (*Post, error) {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(principal, post.AuthorID, true); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := service.repo.Update(context, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post after the owner-or-admin check passes.
func (service *Service) Delete(context context.Context, principal *sec.Principal, id string) error {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := authz.Require(principal, post.AuthorID, true); err != nil {
		return err
	}

	if err := service.repo.Delete(context, post.ID); err != nil {
		return err
	}

	service.logger.Info("post_deleted",
		slog.String("post_id", post.ID),
		slog.String("deleted_by", principal.ID),
	)

	return nil
}
