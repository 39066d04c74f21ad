package models

import "time"

// User is the administrative account used to manage content. Exactly one row
// is seeded at startup; there are no user management endpoints.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Video is a published or draft video entry shown on the site.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	IsPublished  bool      `json:"is_published"`
}

// Article is a written piece with an optional summary line.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	IsPublished bool      `json:"is_published"`
}
