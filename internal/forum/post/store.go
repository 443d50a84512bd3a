// Copyright (c) 2026 Agora. All rights reserved.

package post

import (
	"context"

	"github.com/ltcastel/agora/pkg/pagination"
)

// Repository defines the persistence contract for forum posts.
type Repository interface {
	List(context context.Context, params pagination.Params) ([]*Post, int, error)
	FindByID(context context.Context, id string) (*Post, error)
	Create(context context.Context, post *Post) error
	Update(context context.Context, post *Post) error
	Delete(context context.Context, id string) error
}
