package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/repository"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

var _ repository.SessionRepository = (*sessionRepository)(nil)

func newMock(t *testing.T) (*sessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSessionRepository(db), mock
}

func TestSessionRepository_Get(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	expires := now.Add(24 * time.Hour)
	selectSQL := regexp.QuoteMeta("SELECT id, shop, access_token, scope, is_online, expires_at, created_at, updated_at FROM shopify_sessions WHERE id = $1")

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		want    *domain.Session
		notFind bool
	}{
		{
			name: "offline session",
			rows: sqlmock.NewRows(sessionColumns).
				AddRow("offline_demo.myshopify.com", "demo.myshopify.com", "shpat_1", "read_orders", false, nil, now, now),
			want: &domain.Session{
				ID:          "offline_demo.myshopify.com",
				Shop:        "demo.myshopify.com",
				AccessToken: "shpat_1",
				Scope:       "read_orders",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
		{
			name: "online session with expiry",
			rows: sqlmock.NewRows(sessionColumns).
				AddRow("offline_demo.myshopify.com", "demo.myshopify.com", "shpat_2", nil, true, expires, now, now),
			want: &domain.Session{
				ID:          "offline_demo.myshopify.com",
				Shop:        "demo.myshopify.com",
				AccessToken: "shpat_2",
				IsOnline:    true,
				ExpiresAt:   &expires,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
		{
			name:    "missing",
			rows:    sqlmock.NewRows(sessionColumns),
			notFind: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery(selectSQL).
				WithArgs("offline_demo.myshopify.com").
				WillReturnRows(tt.rows)

			got, err := repo.Get(context.Background(), "offline_demo.myshopify.com")
			if tt.notFind {
				var notFound *errors.ErrNotFound
				require.ErrorAs(t, err, &notFound)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSessionRepository_Upsert(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO shopify_sessions (id,shop,access_token,scope,is_online,expires_at)") + ".*ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("offline_demo.myshopify.com", "demo.myshopify.com", "shpat_1", sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	s := &domain.Session{ID: "offline_demo.myshopify.com", Shop: "demo.myshopify.com", AccessToken: "shpat_1", Scope: "read_orders"}
	require.NoError(t, repo.Upsert(context.Background(), s))
	require.Equal(t, created, s.CreatedAt)
	require.Equal(t, updated, s.UpdatedAt)
}

func TestSessionRepository_Delete(t *testing.T) {
	deleteSQL := regexp.QuoteMeta("DELETE FROM shopify_sessions WHERE id = $1")

	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(deleteSQL).WithArgs("offline_demo.myshopify.com").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), "offline_demo.myshopify.com"))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(deleteSQL).WithArgs("offline_demo.myshopify.com").WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Delete(context.Background(), "offline_demo.myshopify.com")
		var notFound *errors.ErrNotFound
		require.ErrorAs(t, err, &notFound)
	})
}

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS shopify_sessions")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, RunMigrations(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
