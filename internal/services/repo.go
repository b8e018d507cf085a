package services

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

// List returns all services sorted by sort_order with their items
// attached, each item list sorted the same way.
func (r *Repo) List(ctx context.Context) ([]Service, error) {
	const q = `
select id, title, summary, icon, sort_order, created_at, updated_at
from services
order by sort_order asc;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	out := make([]Service, 0, 8)
	index := make(map[string]int)
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Summary, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Items = []ServiceItem{}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const iq = `
select id, service_id, title, description, sort_order
from service_items
order by service_id, sort_order asc;
`
	irows, err := r.db.QueryContext(ctx, iq)
	if err != nil {
		return nil, fmt.Errorf("list service items: %w", err)
	}
	defer irows.Close()

	for irows.Next() {
		var it ServiceItem
		if err := irows.Scan(&it.ID, &it.ServiceID, &it.Title, &it.Description, &it.Order); err != nil {
			return nil, err
		}
		if i, ok := index[it.ServiceID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, irows.Err()
}

// Create appends the service at the end of the sequence: sort_order is
// max(existing)+1, computed in the insert itself so two concurrent
// creates cannot read the same max.
func (r *Repo) Create(ctx context.Context, in CreateService) (*Service, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
insert into services (title, summary, icon, sort_order)
values ($1, $2, $3, (select coalesce(max(sort_order), 0) + 1 from services))
returning id, title, summary, icon, sort_order, created_at, updated_at;
`
	var s Service
	err = tx.QueryRowContext(ctx, q, strings.TrimSpace(in.Title), in.Summary, in.Icon).
		Scan(&s.ID, &s.Title, &s.Summary, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.Items, err = insertItems(ctx, tx, s.ID, in.Items)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces the scalar fields and, when Items is non-nil, swaps
// the whole item list in the same transaction. A reader never observes
// the service with the old rows deleted and the new ones not yet in.
func (r *Repo) Update(ctx context.Context, id string, in UpdateService) (*Service, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
update services
set title = $2, summary = $3, icon = $4, updated_at = now()
where id = $1
returning id, title, summary, icon, sort_order, created_at, updated_at;
`
	var s Service
	err = tx.QueryRowContext(ctx, q, id, strings.TrimSpace(in.Title), in.Summary, in.Icon).
		Scan(&s.ID, &s.Title, &s.Summary, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	if in.Items != nil {
		if _, err := tx.ExecContext(ctx, `delete from service_items where service_id = $1;`, id); err != nil {
			return nil, fmt.Errorf("clear service items: %w", err)
		}
		s.Items, err = insertItems(ctx, tx, id, in.Items)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the service; owned items go with it via FK cascade.
// Remaining services keep their sort_order values, gaps are fine.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from services where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
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

// Reorder applies the permutation all-or-nothing: the stored id set is
// compared against orderedIDs inside one transaction and every row gets
// sort_order = its 1-based position in the input.
func (r *Repo) Reorder(ctx context.Context, orderedIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	existing, err := lockIDs(ctx, tx, `select id from services order by sort_order asc for update;`)
	if err != nil {
		return fmt.Errorf("reorder services: %w", err)
	}

	if err := ordering.ValidatePermutation(existing, orderedIDs); err != nil {
		if errors.Is(err, ordering.ErrUnknownID) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			`update services set sort_order = $2, updated_at = now() where id = $1;`, id, i+1); err != nil {
			return fmt.Errorf("reorder services: %w", err)
		}
	}

	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, serviceID string, items []ItemInput) ([]ServiceItem, error) {
	out := make([]ServiceItem, 0, len(items))
	const q = `
insert into service_items (service_id, title, description, sort_order)
values ($1, $2, $3, $4)
returning id;
`
	for i, in := range items {
		it := ServiceItem{
			ServiceID:   serviceID,
			Title:       in.Title,
			Description: in.Description,
			Order:       i,
		}
		if err := tx.QueryRowContext(ctx, q, serviceID, in.Title, in.Description, i).Scan(&it.ID); err != nil {
			return nil, fmt.Errorf("insert service item: %w", err)
		}
		out = append(out, it)
	}
	return out, nil
}

func lockIDs(ctx context.Context, tx *sql.Tx, query string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
