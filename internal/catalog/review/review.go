// Copyright (c) 2026 Agora. All rights reserved.

// Package review manages customer reviews attached to catalog products.
//
// Anyone may read reviews; writing requires a session, and editing or
// deleting a review requires its author or an administrator.
package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
