package about

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("about card not found")
	ErrTitleRequired = errors.New("about card title is required")
	ErrInvalidOrder  = errors.New("invalid about card order")
)

// Card is one orderable entry in the about section of the site.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CardInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
