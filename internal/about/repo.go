package about

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier-north/studio-backend/internal/ordering"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]Card, error) {
	const q = `
select id, title, description, image_url, sort_order, created_at, updated_at
from about_services
order by sort_order asc;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list about cards: %w", err)
	}
	defer rows.Close()

	out := make([]Card, 0, 8)
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CardInput) (*Card, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	const q = `
insert into about_services (title, description, image_url, sort_order)
values ($1, $2, $3, (select coalesce(max(sort_order), 0) + 1 from about_services))
returning id, title, description, image_url, sort_order, created_at, updated_at;
`
	var c Card
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(in.Title), in.Description, in.ImageURL).
		Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create about card: %w", err)
	}
	return &c, nil
}

func (r *Repo) Update(ctx context.Context, id string, in CardInput) (*Card, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	const q = `
update about_services
set title = $2, description = $3, image_url = $4, updated_at = now()
where id = $1
returning id, title, description, image_url, sort_order, created_at, updated_at;
`
	var c Card
	err := r.db.QueryRowContext(ctx, q, id, strings.TrimSpace(in.Title), in.Description, in.ImageURL).
		Scan(&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update about card: %w", err)
	}
	return &c, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from about_services where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete about card: %w", err)
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

// Reorder is all-or-nothing, same policy as the services collection.
func (r *Repo) Reorder(ctx context.Context, orderedIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `select id from about_services order by sort_order asc for update;`)
	if err != nil {
		return fmt.Errorf("reorder about cards: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if err := ordering.ValidatePermutation(existing, orderedIDs); err != nil {
		if errors.Is(err, ordering.ErrUnknownID) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			`update about_services set sort_order = $2, updated_at = now() where id = $1;`, id, i+1); err != nil {
			return fmt.Errorf("reorder about cards: %w", err)
		}
	}

	return tx.Commit()
}
