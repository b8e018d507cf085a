package articles

import (
	"errors"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	ErrNotFound      = errors.New("article not found")
	ErrTitleRequired = errors.New("article title is required")
	ErrInvalidStatus = errors.New("invalid article status")
	ErrSlugExhausted = errors.New("failed to generate unique article slug")
	ErrSlugTaken     = errors.New("article slug already in use")
)

// Article is a journal post. The slug and read time are derived from
// the title and body at write time; readers never trigger derivation.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	ReadTime    string     `json:"read_time"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ArticleInput struct {
	Title      string
	Slug       string // empty means derive from title
	Excerpt    string
	Content    string
	CoverImage string
}

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
