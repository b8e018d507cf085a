package settings

import "time"

// DefaultHomeProjectsCount is the featured-cap default for a fresh
// install.
const DefaultHomeProjectsCount = 3

// Settings is the site-wide singleton row (always id = 1 in storage).
type Settings struct {
	SiteTitle         string    `json:"site_title"`
	ContactEmail      string    `json:"contact_email"`
	ContactPhone      string    `json:"contact_phone"`
	Address           string    `json:"address"`
	InstagramURL      string    `json:"instagram_url"`
	LinkedInURL       string    `json:"linkedin_url"`
	HomeProjectsCount int       `json:"home_projects_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}
