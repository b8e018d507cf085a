package articles

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repo, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepo(db), mock, db
}

func articleCols() []string {
	return []string{
		"id", "title", "slug", "excerpt", "content", "cover_image", "read_time",
		"status", "views", "published_at", "created_at", "updated_at",
	}
}

func TestRepo_Create_DerivesSlugAndReadTime(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()
	body := strings.TrimSpace(strings.Repeat("word ", 400))

	mock.ExpectQuery(`insert into articles`).
		WithArgs("Concrete & Light!", "concrete-light", "", body, "", "2 min read").
		WillReturnRows(sqlmock.NewRows(articleCols()).
			AddRow("a1", "Concrete & Light!", "concrete-light", "", body, "", "2 min read",
				StatusDraft, int64(0), nil, now, now))

	a, err := repo.Create(context.Background(), ArticleInput{
		Title:   "Concrete & Light!",
		Content: body,
	})
	require.NoError(t, err)
	assert.Equal(t, "concrete-light", a.Slug)
	assert.Equal(t, "2 min read", a.ReadTime)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_HonorsSlugOverride(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`insert into articles`).
		WithArgs("Any Title", "my-custom-slug", "", "", "", "1 min read").
		WillReturnRows(sqlmock.NewRows(articleCols()).
			AddRow("a1", "Any Title", "my-custom-slug", "", "", "", "1 min read",
				StatusDraft, int64(0), nil, now, now))

	a, err := repo.Create(context.Background(), ArticleInput{
		Title: "Any Title",
		Slug:  "my-custom-slug",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", a.Slug)
}

func TestRepo_Create_SlugRetryOnConflict(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`insert into articles`).
		WithArgs("Year Notes", "year-notes", "", "", "", "1 min read").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectQuery(`insert into articles`).
		WithArgs("Year Notes", "year-notes-2", "", "", "", "1 min read").
		WillReturnRows(sqlmock.NewRows(articleCols()).
			AddRow("a2", "Year Notes", "year-notes-2", "", "", "", "1 min read",
				StatusDraft, int64(0), nil, now, now))

	a, err := repo.Create(context.Background(), ArticleInput{Title: "Year Notes"})
	require.NoError(t, err)
	assert.Equal(t, "year-notes-2", a.Slug)
}

func TestRepo_Update_SlugCollisionIsValidationFailure(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`update articles`).
		WithArgs("a1", "Concrete Light", "taken-slug", "", "body", "", "1 min read").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Update(context.Background(), "a1",
		ArticleInput{Title: "Concrete Light", Slug: "taken-slug", Content: "body"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetBySlug_IncrementsViews(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`update articles\s+set views = views \+ 1`).
		WithArgs("concrete-light").
		WillReturnRows(sqlmock.NewRows(articleCols()).
			AddRow("a1", "Concrete & Light!", "concrete-light", "", "", "", "2 min read",
				StatusPublished, int64(8), now, now, now))

	a, err := repo.GetBySlug(context.Background(), "concrete-light")
	require.NoError(t, err)
	assert.Equal(t, int64(8), a.Views)
}

func TestRepo_SetStatus_PreservesPublishedAt(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	first := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`update articles\s+set status`).
		WithArgs("a1", StatusPublished).
		WillReturnRows(sqlmock.NewRows(articleCols()).
			AddRow("a1", "Concrete & Light!", "concrete-light", "", "", "", "2 min read",
				StatusPublished, int64(8), first, now, now))

	a, err := repo.SetStatus(context.Background(), "a1", StatusPublished)
	require.NoError(t, err)
	require.NotNil(t, a.PublishedAt)
	assert.True(t, a.PublishedAt.Equal(first))
}

func TestRepo_SetStatus_RejectsUnknownStatus(t *testing.T) {
	repo, _, db := setupRepo(t)
	defer db.Close()

	_, err := repo.SetStatus(context.Background(), "a1", "scheduled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepo_Delete_NotFound(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectExec(`delete from articles`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
