// Copyright (c) 2026 Agora. All rights reserved.

package product

import (
	"context"

	"github.com/ltcastel/agora/pkg/pagination"
)

// Filter narrows a product listing. Zero values mean "no filter".
type Filter struct {
	CategoryID string
}

type Repository interface {
	List(context context.Context, filter Filter, params pagination.Params) ([]*Product, int, error)
	FindByID(context context.Context, id string) (*Product, error)
	FindBySlug(context context.Context, slug string) (*Product, error)
	Create(context context.Context, product *Product) error
	Update(context context.Context, product *Product) error
	Delete(context context.Context, id string) error
}
