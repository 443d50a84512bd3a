// Copyright (c) 2026 Agora. All rights reserved.

package comment

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

func (service *Service) ListByPost(context context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	return service.repo.ListByPost(context, postID, params)
}

func (service *Service) Get(context context.Context, id string) (*Comment, error) {
	return service.repo.FindByID(context, id)
}

type CreateInput struct {
	PostID  string
	Content string
}

// Create attaches a reply to a post. The author is the calling principal.
func (service *Service) Create(context context.Context, principal *sec.Principal, input CreateInput) (*Comment, error) {
	exists, err := service.repo.PostExists(context, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_post_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Post")
	}

	comment := &Comment{
		ID:       uuid.New(),
		PostID:   input.PostID,
		AuthorID: principal.ID,
		Content:  input.Content,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.PostID),
	)

	return comment, nil
}

// Update edits a comment after the owner-or-admin check passes.
func (service *Service) Update(context context.Context, principal *sec.Principal, id string, content string) (*Comment, error) {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(principal, comment.AuthorID, true); err != nil {
		return nil, err
	}

	comment.Content = content

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete removes a comment after the owner-or-admin check passes.
func (service *Service) Delete(context context.Context, principal *sec.Principal, id string) error {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := authz.Require(principal, comment.AuthorID, true); err != nil {
		return err
	}

	return service.repo.Delete(context, comment.ID)
}
