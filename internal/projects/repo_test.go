package projects

import (
	"context"
	"database/sql"
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

func projectCols() []string {
	return []string{
		"id", "title", "slug", "category", "location", "year", "description", "cover_image",
		"status", "featured_on_home", "home_order", "views", "published_at", "created_at", "updated_at",
	}
}

func emptyGallery(mock sqlmock.Sqlmock, projectID string) {
	mock.ExpectQuery(`select id, project_id, url, title, description, sort_order`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "url", "title", "description", "sort_order"}))
}

func TestRepo_GetBySlug_IncrementsViews(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	// The fetch is an update so the increment happens atomically in
	// the storage layer.
	mock.ExpectQuery(`update projects\s+set views = views \+ 1`).
		WithArgs("modern-villa").
		WillReturnRows(sqlmock.NewRows(projectCols()).
			AddRow("p1", "Modern Villa", "modern-villa", "", "", "", "", "",
				StatusPublished, false, 0, int64(42), now, now, now))
	emptyGallery(mock, "p1")

	p, err := repo.GetBySlug(context.Background(), "modern-villa")
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.Views)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetBySlug_DraftIsInvisible(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`update projects\s+set views = views \+ 1`).
		WithArgs("unbuilt-tower").
		WillReturnRows(sqlmock.NewRows(projectCols()))

	_, err := repo.GetBySlug(context.Background(), "unbuilt-tower")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepo_Create_SlugRetryOnConflict(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`insert into projects`).
		WithArgs("Modern Villa", "modern-villa", "", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`insert into projects`).
		WithArgs("Modern Villa", "modern-villa-2", "", "", "", "", "").
		WillReturnRows(sqlmock.NewRows(projectCols()).
			AddRow("p2", "Modern Villa", "modern-villa-2", "", "", "", "", "",
				StatusDraft, false, 0, int64(0), nil, now, now))
	mock.ExpectCommit()

	p, err := repo.Create(context.Background(), ProjectInput{Title: "Modern Villa"})
	require.NoError(t, err)
	assert.Equal(t, "modern-villa-2", p.Slug)
	assert.Equal(t, StatusDraft, p.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_RequiresTitle(t *testing.T) {
	repo, _, db := setupRepo(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), ProjectInput{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestRepo_Update_SlugCollisionIsValidationFailure(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`update projects`).
		WithArgs("p1", "Modern Villa", "taken-slug", "", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), "p1",
		ProjectInput{Title: "Modern Villa", Slug: "taken-slug"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_ReplacesGalleryInOneTx(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`update projects`).
		WithArgs("p1", "Modern Villa", "modern-villa", "", "", "", "", "").
		WillReturnRows(sqlmock.NewRows(projectCols()).
			AddRow("p1", "Modern Villa", "modern-villa", "", "", "", "", "",
				StatusPublished, false, 0, int64(10), now, now, now))
	mock.ExpectExec(`delete from project_gallery`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`insert into project_gallery`).
		WithArgs("p1", "https://cdn.example.com/a.jpg", "Facade", "", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g1"))
	mock.ExpectQuery(`insert into project_gallery`).
		WithArgs("p1", "https://cdn.example.com/b.jpg", "Atrium", "", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g2"))
	mock.ExpectCommit()

	p, err := repo.Update(context.Background(), "p1", ProjectInput{
		Title: "Modern Villa",
		Gallery: []GalleryInput{
			{URL: "https://cdn.example.com/a.jpg", Title: "Facade"},
			{URL: "https://cdn.example.com/b.jpg", Title: "Atrium"},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.Gallery, 2)
	assert.Equal(t, 0, p.Gallery[0].Order)
	assert.Equal(t, 1, p.Gallery[1].Order)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_SetStatus(t *testing.T) {
	t.Run("publishing stamps published_at once", func(t *testing.T) {
		repo, mock, db := setupRepo(t)
		defer db.Close()

		firstPublish := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		now := time.Now()

		// The COALESCE lives in SQL; the repo just reports what the
		// row says. Re-publishing returns the original stamp.
		mock.ExpectQuery(`update projects\s+set status`).
			WithArgs("p1", StatusPublished).
			WillReturnRows(sqlmock.NewRows(projectCols()).
				AddRow("p1", "Modern Villa", "modern-villa", "", "", "", "", "",
					StatusPublished, false, 0, int64(0), firstPublish, now, now))

		p, err := repo.SetStatus(context.Background(), "p1", StatusPublished)
		require.NoError(t, err)
		require.NotNil(t, p.PublishedAt)
		assert.True(t, p.PublishedAt.Equal(firstPublish))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo, _, db := setupRepo(t)
		defer db.Close()

		_, err := repo.SetStatus(context.Background(), "p1", "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		repo, mock, db := setupRepo(t)
		defer db.Close()

		mock.ExpectQuery(`update projects\s+set status`).
			WithArgs("missing", StatusDraft).
			WillReturnRows(sqlmock.NewRows(projectCols()))

		_, err := repo.SetStatus(context.Background(), "missing", StatusDraft)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepo_SetHomeAssignments(t *testing.T) {
	t.Run("resets everything then writes featured rows", func(t *testing.T) {
		repo, mock, db := setupRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`update projects set featured_on_home = false, home_order = 0`).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`update projects set featured_on_home = true`).
			WithArgs("p2", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`update projects set featured_on_home = true`).
			WithArgs("p5", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetHomeAssignments(context.Background(), []HomeAssignment{
			{ProjectID: "p2", Featured: true, HomeOrder: 0},
			{ProjectID: "p1", Featured: false},
			{ProjectID: "p5", Featured: true, HomeOrder: 1},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown featured project aborts the commit", func(t *testing.T) {
		repo, mock, db := setupRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`update projects set featured_on_home = false, home_order = 0`).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`update projects set featured_on_home = true`).
			WithArgs("ghost", 0).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetHomeAssignments(context.Background(), []HomeAssignment{
			{ProjectID: "ghost", Featured: true, HomeOrder: 0},
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepo_ListPublished_FiltersDrafts(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`where status = 'published'`).
		WillReturnRows(sqlmock.NewRows(projectCols()).
			AddRow("p1", "Modern Villa", "modern-villa", "", "", "", "", "",
				StatusPublished, false, 0, int64(3), now, now, now))

	out, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, StatusPublished, out[0].Status)
}
