// Copyright (c) 2026 Agora. All rights reserved.

package comment

import (
	"context"

	"github.com/ltcastel/agora/pkg/pagination"
)

type Repository interface {
	ListByPost(context context.Context, postID string, params pagination.Params) ([]*Comment, int, error)
	FindByID(context context.Context, id string) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, id string) error

	// PostExists reports whether the parent post is present, so a comment
	// against an unknown post fails with a 404 before insertion.
	PostExists(context context.Context, postID string) (bool, error)
}
