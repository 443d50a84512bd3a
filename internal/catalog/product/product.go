// Copyright (c) 2026 Agora. All rights reserved.

// Package product manages the sellable items of the catalog.
//
// Prices are stored as integer cents; the API never deals in floats.
package product

import "time"

type Product struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
