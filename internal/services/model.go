package services

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("service not found")
	ErrTitleRequired = errors.New("service title is required")
	ErrInvalidOrder  = errors.New("invalid service order")
)

// Service is one orderable card in the public services section.
type Service struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Icon      string        `json:"icon"`
	Order     int           `json:"order"`
	Items     []ServiceItem `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ServiceItem is a bullet owned by exactly one Service. Item order is
// the index the admin form submitted it at; updates replace the whole
// list rather than diffing it.
type ServiceItem struct {
	ID          string `json:"id"`
	ServiceID   string `json:"service_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type CreateService struct {
	Title   string
	Summary string
	Icon    string
	Items   []ItemInput
}

type UpdateService struct {
	Title   string
	Summary string
	Icon    string
	// Items == nil leaves existing items untouched; an empty non-nil
	// slice clears them.
	Items []ItemInput
}

type ItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
