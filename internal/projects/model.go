package projects

import (
	"errors"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrTitleRequired = errors.New("project title is required")
	ErrInvalidStatus = errors.New("invalid project status")
	ErrSlugExhausted = errors.New("failed to generate unique project slug")
	ErrSlugTaken     = errors.New("project slug already in use")
)

// Project is a portfolio entry. Only published projects are visible on
// the landing site; the dashboard sees everything.
type Project struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Category       string         `json:"category"`
	Location       string         `json:"location"`
	Year           string         `json:"year"`
	Description    string         `json:"description"`
	CoverImage     string         `json:"cover_image"`
	Status         string         `json:"status"`
	FeaturedOnHome bool           `json:"featured_on_home"`
	HomeOrder      int            `json:"home_order"`
	Views          int64          `json:"views"`
	Gallery        []GalleryEntry `json:"gallery,omitempty"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// GalleryEntry is one image owned by exactly one project. The list is
// replaced wholesale on every project update that supplies a gallery.
type GalleryEntry struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type GalleryInput struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProjectInput struct {
	Title       string
	Slug        string // empty means derive from title
	Category    string
	Location    string
	Year        string
	Description string
	CoverImage  string
	// Gallery == nil leaves the existing gallery untouched on update.
	Gallery []GalleryInput
}

// HomeAssignment is one row of the homepage featured reconciliation:
// every project gets written, featured or not.
type HomeAssignment struct {
	ProjectID string `json:"project_id"`
	Featured  bool   `json:"featured"`
	HomeOrder int    `json:"home_order"`
}

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
