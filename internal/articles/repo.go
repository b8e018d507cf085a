package articles

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

const articleColumns = `id, title, slug, excerpt, content, cover_image, read_time,
       status, views, published_at, created_at, updated_at`

func (r *Repo) ListPublished(ctx context.Context) ([]Article, error) {
	q := fmt.Sprintf(`
select %s
from articles
where status = 'published'
order by created_at desc;
`, articleColumns)
	return r.queryArticles(ctx, q)
}

func (r *Repo) ListAll(ctx context.Context) ([]Article, error) {
	q := fmt.Sprintf(`
select %s
from articles
order by created_at desc;
`, articleColumns)
	return r.queryArticles(ctx, q)
}

// GetBySlug bumps the view counter in the fetch statement itself.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	q := fmt.Sprintf(`
update articles
set views = views + 1
where slug = $1 and status = 'published'
returning %s;
`, articleColumns)
	return r.scanArticle(r.db.QueryRowContext(ctx, q, slug))
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Article, error) {
	q := fmt.Sprintf(`
select %s
from articles
where id = $1;
`, articleColumns)
	return r.scanArticle(r.db.QueryRowContext(ctx, q, id))
}

// Create derives slug and read time, then inserts as draft. Slug
// conflicts retry with a numeric suffix.
func (r *Repo) Create(ctx context.Context, in ArticleInput) (*Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	base := strings.TrimSpace(in.Slug)
	if base == "" {
		base = content.Slugify(in.Title)
	}
	if base == "" {
		base = "article"
	}
	readTime := content.ReadTime(in.Content)

	q := fmt.Sprintf(`
insert into articles (title, slug, excerpt, content, cover_image, read_time)
values ($1, $2, $3, $4, $5, $6)
returning %s;
`, articleColumns)

	for attempt := 1; attempt <= 5; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		a, err := r.scanArticle(r.db.QueryRowContext(ctx, q,
			strings.TrimSpace(in.Title), slug, in.Excerpt, in.Content, in.CoverImage, readTime))
		if err == nil {
			return a, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			continue
		}
		return nil, err
	}

	return nil, ErrSlugExhausted
}

// Update re-derives the read time from the new body. The slug follows
// an explicit override or the new title.
func (r *Repo) Update(ctx context.Context, id string, in ArticleInput) (*Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = content.Slugify(in.Title)
	}

	q := fmt.Sprintf(`
update articles
set title = $2, slug = $3, excerpt = $4, content = $5, cover_image = $6,
    read_time = $7, updated_at = now()
where id = $1
returning %s;
`, articleColumns)

	a, err := r.scanArticle(r.db.QueryRowContext(ctx, q,
		id, strings.TrimSpace(in.Title), slug, in.Excerpt, in.Content, in.CoverImage,
		content.ReadTime(in.Content)))
	if err != nil {
		// renaming onto another article's slug is a caller mistake,
		// not a retry case like Create's derived slugs
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
		}
		return nil, err
	}
	return a, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from articles where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
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

// SetStatus mirrors the project rule: published_at is stamped on the
// first publish only and survives later draft/publish cycles.
func (r *Repo) SetStatus(ctx context.Context, id, status string) (*Article, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	q := fmt.Sprintf(`
update articles
set status = $2,
    published_at = case when $2 = 'published' then coalesce(published_at, now()) else published_at end,
    updated_at = now()
where id = $1
returning %s;
`, articleColumns)

	return r.scanArticle(r.db.QueryRowContext(ctx, q, id, status))
}

func (r *Repo) queryArticles(ctx context.Context, query string) ([]Article, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	out := make([]Article, 0, 16)
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.CoverImage, &a.ReadTime,
			&a.Status, &a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repo) scanArticle(row rowScanner) (*Article, error) {
	var a Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.CoverImage, &a.ReadTime,
		&a.Status, &a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
