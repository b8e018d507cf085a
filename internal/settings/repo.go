package settings

import (
	"context"
	"database/sql"
	"fmt"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const columns = `site_title, contact_email, contact_phone, address,
       instagram_url, linkedin_url, home_projects_count, updated_at`

// Get lazily creates the singleton row with defaults on first read.
// The fixed primary key plus ON CONFLICT DO NOTHING makes concurrent
// first reads safe: exactly one row can ever exist.
func (r *Repo) Get(ctx context.Context) (*Settings, error) {
	const ins = `
insert into settings (id, home_projects_count)
values (1, $1)
on conflict (id) do nothing;
`
	if _, err := r.db.ExecContext(ctx, ins, DefaultHomeProjectsCount); err != nil {
		return nil, fmt.Errorf("ensure settings row: %w", err)
	}

	q := fmt.Sprintf(`select %s from settings where id = 1;`, columns)

	var s Settings
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.SiteTitle, &s.ContactEmail, &s.ContactPhone, &s.Address,
		&s.InstagramURL, &s.LinkedInURL, &s.HomeProjectsCount, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update upserts against the fixed key, so it works whether or not the
// row was ever lazily created.
func (r *Repo) Update(ctx context.Context, in Settings) (*Settings, error) {
	q := fmt.Sprintf(`
insert into settings (id, site_title, contact_email, contact_phone, address,
                      instagram_url, linkedin_url, home_projects_count, updated_at)
values (1, $1, $2, $3, $4, $5, $6, $7, now())
on conflict (id) do update set
  site_title = excluded.site_title,
  contact_email = excluded.contact_email,
  contact_phone = excluded.contact_phone,
  address = excluded.address,
  instagram_url = excluded.instagram_url,
  linkedin_url = excluded.linkedin_url,
  home_projects_count = excluded.home_projects_count,
  updated_at = now()
returning %s;
`, columns)

	if in.HomeProjectsCount <= 0 {
		in.HomeProjectsCount = DefaultHomeProjectsCount
	}

	var s Settings
	err := r.db.QueryRowContext(ctx, q,
		in.SiteTitle, in.ContactEmail, in.ContactPhone, in.Address,
		in.InstagramURL, in.LinkedInURL, in.HomeProjectsCount,
	).Scan(
		&s.SiteTitle, &s.ContactEmail, &s.ContactPhone, &s.Address,
		&s.InstagramURL, &s.LinkedInURL, &s.HomeProjectsCount, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &s, nil
}

// SetHomeProjectsCount persists just the featured cap. Used by the
// homepage save path, which owns the rest of its payload.
func (r *Repo) SetHomeProjectsCount(ctx context.Context, n int) error {
	if n <= 0 {
		n = DefaultHomeProjectsCount
	}

	const q = `
insert into settings (id, home_projects_count)
values (1, $1)
on conflict (id) do update set
  home_projects_count = excluded.home_projects_count,
  updated_at = now();
`
	if _, err := r.db.ExecContext(ctx, q, n); err != nil {
		return fmt.Errorf("set home projects count: %w", err)
	}
	return nil
}
