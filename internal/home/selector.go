package home

import (
	"errors"
	"fmt"

	"github.com/atelier-north/studio-backend/internal/projects"
)

var (
	ErrCapReached     = errors.New("featured project cap reached")
	ErrUnknownProject = errors.New("project is not eligible for the homepage")
)

// Selection is the in-memory homepage state an admin edits before
// saving: which published projects are featured and in what order.
// All mutations keep the cap invariant; persistence happens in one
// pass when the selection is committed.
type Selection struct {
	catalog  []string // eligible project ids in catalog order
	eligible map[string]bool
	featured []string // project ids in homeOrder sequence
	cap      int
}

// NewSelection builds the editable state. eligibleIDs is the published
// catalog; featuredIDs arrives sorted by current homeOrder. Featured
// ids that are no longer eligible (project deleted or unpublished) are
// dropped silently, and a sequence longer than the cap (cap lowered
// through the settings endpoint since the last commit) is truncated by
// ascending homeOrder, same as SetCap.
func NewSelection(eligibleIDs, featuredIDs []string, capacity int) *Selection {
	if capacity <= 0 {
		capacity = 1
	}

	s := &Selection{
		eligible: make(map[string]bool, len(eligibleIDs)),
		featured: make([]string, 0, len(featuredIDs)),
		cap:      capacity,
	}
	for _, id := range eligibleIDs {
		if !s.eligible[id] {
			s.catalog = append(s.catalog, id)
		}
		s.eligible[id] = true
	}
	for _, id := range featuredIDs {
		if s.eligible[id] && !s.isFeatured(id) {
			s.featured = append(s.featured, id)
		}
	}
	if len(s.featured) > s.cap {
		s.featured = s.featured[:s.cap]
	}
	return s
}

// Toggle adds the project to the end of the featured sequence, or
// removes it if it is already featured. Adding past the cap fails with
// ErrCapReached instead of silently exceeding it.
func (s *Selection) Toggle(projectID string) error {
	if !s.eligible[projectID] {
		return fmt.Errorf("%w: %s", ErrUnknownProject, projectID)
	}

	if i := s.indexOf(projectID); i >= 0 {
		s.featured = append(s.featured[:i], s.featured[i+1:]...)
		return nil
	}

	if len(s.featured) >= s.cap {
		return ErrCapReached
	}
	s.featured = append(s.featured, projectID)
	return nil
}

// Reorder replaces the featured sequence wholesale. Ids absent from
// seq are unfeatured; every id in seq must be eligible and the result
// must fit the cap.
func (s *Selection) Reorder(seq []string) error {
	if len(seq) > s.cap {
		return ErrCapReached
	}

	seen := make(map[string]bool, len(seq))
	next := make([]string, 0, len(seq))
	for _, id := range seq {
		if !s.eligible[id] {
			return fmt.Errorf("%w: %s", ErrUnknownProject, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate project in order: %s", id)
		}
		seen[id] = true
		next = append(next, id)
	}

	s.featured = next
	return nil
}

// SetCap changes the cap. Lowering it below the current featured count
// truncates the sequence by ascending homeOrder: the first n slots
// survive, the tail is unfeatured.
func (s *Selection) SetCap(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	s.cap = capacity
	if len(s.featured) > capacity {
		s.featured = s.featured[:capacity]
	}
}

func (s *Selection) Cap() int { return s.cap }

// Featured returns the current sequence in homeOrder.
func (s *Selection) Featured() []string {
	out := make([]string, len(s.featured))
	copy(out, s.featured)
	return out
}

// Assignments flattens the selection into one row per catalog project:
// featured rows first, in sequence, with a dense 0-based homeOrder;
// everything else follows in catalog order, reset to the zero sentinel.
func (s *Selection) Assignments() []projects.HomeAssignment {
	out := make([]projects.HomeAssignment, 0, len(s.catalog))
	for i, id := range s.featured {
		out = append(out, projects.HomeAssignment{ProjectID: id, Featured: true, HomeOrder: i})
	}
	for _, id := range s.catalog {
		if !s.isFeatured(id) {
			out = append(out, projects.HomeAssignment{ProjectID: id})
		}
	}
	return out
}

func (s *Selection) isFeatured(id string) bool { return s.indexOf(id) >= 0 }

func (s *Selection) indexOf(id string) int {
	for i, f := range s.featured {
		if f == id {
			return i
		}
	}
	return -1
}
