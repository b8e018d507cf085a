package home

import (
	"context"
	"sort"

	"github.com/atelier-north/studio-backend/internal/cache"
	"github.com/atelier-north/studio-backend/internal/projects"
	"github.com/atelier-north/studio-backend/internal/settings"
)

const (
	featuredCacheKey = "public:projects:featured"
	settingsCacheKey = "public:settings"
)

// Service reconciles homepage membership: it loads the published
// catalog plus the stored assignments into a Selection, applies the
// admin's edit, and commits the whole result in one pass.
type Service struct {
	projects *projects.Repo
	settings *settings.Repo
	cache    *cache.Cache
}

func NewService(p *projects.Repo, s *settings.Repo, c *cache.Cache) *Service {
	return &Service{projects: p, settings: s, cache: c}
}

// State is what the dashboard homepage editor renders.
type State struct {
	Projects    []projects.Project `json:"projects"`
	FeaturedIDs []string           `json:"featured_ids"`
	Cap         int                `json:"home_projects_count"`
}

func (s *Service) load(ctx context.Context) (*Selection, []projects.Project, error) {
	published, err := s.projects.ListPublished(ctx)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	eligible := make([]string, 0, len(published))
	var featured []projects.Project
	for _, p := range published {
		eligible = append(eligible, p.ID)
		if p.FeaturedOnHome {
			featured = append(featured, p)
		}
	}
	sort.Slice(featured, func(i, j int) bool { return featured[i].HomeOrder < featured[j].HomeOrder })

	featuredIDs := make([]string, 0, len(featured))
	for _, p := range featured {
		featuredIDs = append(featuredIDs, p.ID)
	}

	return NewSelection(eligible, featuredIDs, st.HomeProjectsCount), published, nil
}

func (s *Service) State(ctx context.Context) (*State, error) {
	sel, published, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return &State{
		Projects:    published,
		FeaturedIDs: sel.Featured(),
		Cap:         sel.Cap(),
	}, nil
}

// Toggle features or unfeatures one project and persists the result.
func (s *Service) Toggle(ctx context.Context, projectID string) (*State, error) {
	sel, published, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := sel.Toggle(projectID); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, sel, false); err != nil {
		return nil, err
	}

	return &State{Projects: published, FeaturedIDs: sel.Featured(), Cap: sel.Cap()}, nil
}

// Save applies a full homepage edit: new cap and new featured
// sequence. Lowering the cap below the current count truncates by
// homeOrder before the sequence is applied.
func (s *Service) Save(ctx context.Context, featuredIDs []string, capacity int) (*State, error) {
	sel, published, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if capacity > 0 {
		sel.SetCap(capacity)
	}
	if featuredIDs != nil {
		if err := sel.Reorder(featuredIDs); err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, sel, true); err != nil {
		return nil, err
	}

	return &State{Projects: published, FeaturedIDs: sel.Featured(), Cap: sel.Cap()}, nil
}

func (s *Service) commit(ctx context.Context, sel *Selection, saveCap bool) error {
	if err := s.projects.SetHomeAssignments(ctx, sel.Assignments()); err != nil {
		return err
	}
	if saveCap {
		if err := s.settings.SetHomeProjectsCount(ctx, sel.Cap()); err != nil {
			return err
		}
		s.cache.Invalidate(ctx, settingsCacheKey)
	}

	s.cache.Invalidate(ctx, featuredCacheKey)
	return nil
}
