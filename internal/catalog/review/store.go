// Copyright (c) 2026 Agora. All rights reserved.

package review

import (
	"context"

	"github.com/ltcastel/agora/pkg/pagination"
)

type Repository interface {
	ListByProduct(context context.Context, productID string, params pagination.Params) ([]*Review, int, error)
	FindByID(context context.Context, id string) (*Review, error)
	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error
	Delete(context context.Context, id string) error

	// ProductExists reports whether the referenced product is present, so a
	// review against an unknown product fails with a 404 before insertion.
	ProductExists(context context.Context, productID string) (bool, error)
}
