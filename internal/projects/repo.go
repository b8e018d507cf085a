package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier-north/studio-backend/internal/content"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const projectColumns = `id, title, slug, category, location, year, description, cover_image,
       status, featured_on_home, home_order, views, published_at, created_at, updated_at`

// ListPublished returns the landing-site view: published only, newest
// first. Galleries are not attached on listings.
func (r *Repo) ListPublished(ctx context.Context) ([]Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
where status = 'published'
order by created_at desc;
`, projectColumns)
	return r.queryProjects(ctx, q)
}

// ListAll is the dashboard view: every project regardless of status.
func (r *Repo) ListAll(ctx context.Context) ([]Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
order by created_at desc;
`, projectColumns)
	return r.queryProjects(ctx, q)
}

// ListFeatured returns the homepage subset in home_order sequence.
func (r *Repo) ListFeatured(ctx context.Context) ([]Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
where featured_on_home = true and status = 'published'
order by home_order asc;
`, projectColumns)
	return r.queryProjects(ctx, q)
}

// GetBySlug is the public read path. The view counter is bumped in the
// same statement that fetches the row, so concurrent reads cannot lose
// increments.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	q := fmt.Sprintf(`
update projects
set views = views + 1
where slug = $1 and status = 'published'
returning %s;
`, projectColumns)

	p, err := r.scanProject(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		return nil, err
	}
	p.Gallery, err = r.loadGallery(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID is the admin read path and does not touch the view counter.
func (r *Repo) GetByID(ctx context.Context, id string) (*Project, error) {
	q := fmt.Sprintf(`
select %s
from projects
where id = $1;
`, projectColumns)

	p, err := r.scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	p.Gallery, err = r.loadGallery(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts the project as a draft. The slug is derived from the
// title unless the caller supplied one; on a unique violation a numeric
// suffix is appended and the insert retried.
func (r *Repo) Create(ctx context.Context, in ProjectInput) (*Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	base := strings.TrimSpace(in.Slug)
	if base == "" {
		base = content.Slugify(in.Title)
	}
	if base == "" {
		base = "project"
	}

	for attempt := 1; attempt <= 5; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		p, err := r.insert(ctx, slug, in)
		if err == nil {
			return p, nil
		}

		// unique violation on slug → retry with suffix
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			continue
		}
		return nil, err
	}

	return nil, ErrSlugExhausted
}

func (r *Repo) insert(ctx context.Context, slug string, in ProjectInput) (*Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`
insert into projects (title, slug, category, location, year, description, cover_image)
values ($1, $2, $3, $4, $5, $6, $7)
returning %s;
`, projectColumns)

	p, err := r.scanProject(tx.QueryRowContext(ctx, q,
		strings.TrimSpace(in.Title), slug, in.Category, in.Location, in.Year, in.Description, in.CoverImage))
	if err != nil {
		return nil, err
	}

	p.Gallery, err = insertGallery(ctx, tx, p.ID, in.Gallery)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the scalar fields and, when a gallery is supplied,
// swaps the whole image list inside the same transaction.
func (r *Repo) Update(ctx context.Context, id string, in ProjectInput) (*Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = content.Slugify(in.Title)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`
update projects
set title = $2, slug = $3, category = $4, location = $5, year = $6,
    description = $7, cover_image = $8, updated_at = now()
where id = $1
returning %s;
`, projectColumns)

	p, err := r.scanProject(tx.QueryRowContext(ctx, q,
		id, strings.TrimSpace(in.Title), slug, in.Category, in.Location, in.Year, in.Description, in.CoverImage))
	if err != nil {
		// renaming onto another project's slug is a caller mistake,
		// not a retry case like Create's derived slugs
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
		}
		return nil, err
	}

	if in.Gallery != nil {
		if _, err := tx.ExecContext(ctx, `delete from project_gallery where project_id = $1;`, id); err != nil {
			return nil, fmt.Errorf("clear gallery: %w", err)
		}
		p.Gallery, err = insertGallery(ctx, tx, id, in.Gallery)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project; gallery rows go with it via FK cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from projects where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus transitions draft/published. published_at is stamped only
// on the first transition into published and never overwritten after,
// so unpublishing and republishing keeps the original publish time.
func (r *Repo) SetStatus(ctx context.Context, id, status string) (*Project, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	q := fmt.Sprintf(`
update projects
set status = $2,
    published_at = case when $2 = 'published' then coalesce(published_at, now()) else published_at end,
    updated_at = now()
where id = $1
returning %s;
`, projectColumns)

	return r.scanProject(r.db.QueryRowContext(ctx, q, id, status))
}

// SetHomeAssignments rewrites homepage membership for the whole
// catalog in one transaction: everything is reset, then the featured
// rows get their dense home_order back. A reader never observes a
// half-applied homepage.
func (r *Repo) SetHomeAssignments(ctx context.Context, assignments []HomeAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`update projects set featured_on_home = false, home_order = 0;`); err != nil {
		return fmt.Errorf("reset home assignments: %w", err)
	}

	for _, a := range assignments {
		if !a.Featured {
			continue
		}
		res, err := tx.ExecContext(ctx,
			`update projects set featured_on_home = true, home_order = $2, updated_at = now() where id = $1;`,
			a.ProjectID, a.HomeOrder)
		if err != nil {
			return fmt.Errorf("set home assignment: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, a.ProjectID)
		}
	}

	return tx.Commit()
}

func (r *Repo) queryProjects(ctx context.Context, query string) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Category, &p.Location, &p.Year, &p.Description, &p.CoverImage,
			&p.Status, &p.FeaturedOnHome, &p.HomeOrder, &p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repo) scanProject(row rowScanner) (*Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Category, &p.Location, &p.Year, &p.Description, &p.CoverImage,
		&p.Status, &p.FeaturedOnHome, &p.HomeOrder, &p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) loadGallery(ctx context.Context, projectID string) ([]GalleryEntry, error) {
	const q = `
select id, project_id, url, title, description, sort_order
from project_gallery
where project_id = $1
order by sort_order asc;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	defer rows.Close()

	out := make([]GalleryEntry, 0, 8)
	for rows.Next() {
		var g GalleryEntry
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.URL, &g.Title, &g.Description, &g.Order); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func insertGallery(ctx context.Context, tx *sql.Tx, projectID string, entries []GalleryInput) ([]GalleryEntry, error) {
	out := make([]GalleryEntry, 0, len(entries))
	const q = `
insert into project_gallery (project_id, url, title, description, sort_order)
values ($1, $2, $3, $4, $5)
returning id;
`
	for i, in := range entries {
		g := GalleryEntry{
			ProjectID:   projectID,
			URL:         in.URL,
			Title:       in.Title,
			Description: in.Description,
			Order:       i,
		}
		if err := tx.QueryRowContext(ctx, q, projectID, in.URL, in.Title, in.Description, i).Scan(&g.ID); err != nil {
			return nil, fmt.Errorf("insert gallery entry: %w", err)
		}
		out = append(out, g)
	}
	return out, nil
}
