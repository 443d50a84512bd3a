// Copyright (c) 2026 Agora. All rights reserved.

/*
Package post implements the forum's top-level publications.

# Authorization

Reading is public. Creating requires a session; the author recorded on a
post is always the calling principal. Updating and deleting follow the
owner-or-admin rule: the stored author id is compared against the
principal, and administrators bypass the comparison entirely.
*/
package post

import "time"

// Post represents a forum publication.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
