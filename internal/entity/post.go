package entity

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Status        PostStatus `json:"status"`
	AuthorID      string     `json:"author_id"`
	Author        *Author    `json:"author,omitempty"`
	Views         int        `json:"views"`
	Likes         int        `json:"likes"`
	ReadingTime   int        `json:"reading_time"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Author is the public projection of the post author.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}
