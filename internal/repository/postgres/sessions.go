package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const sessionsTable = "shopify_sessions"

var sessionColumns = []string{
	"id",
	"shop",
	"access_token",
	"scope",
	"is_online",
	"expires_at",
	"created_at",
	"updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	query, args, err := psql.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session query: %w", err)
	}

	var s domain.Session
	var scope sql.NullString
	var expiresAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Shop,
		&s.AccessToken,
		&scope,
		&s.IsOnline,
		&expiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	s.Scope = scope.String
	if expiresAt.Valid {
		t := expiresAt.Time
		s.ExpiresAt = &t
	}
	return &s, nil
}

func (r *sessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	var expiresAt sql.NullTime
	if session.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *session.ExpiresAt, Valid: true}
	}

	query, args, err := psql.
		Insert(sessionsTable).
		Columns("id", "shop", "access_token", "scope", "is_online", "expires_at").
		Values(session.ID, session.Shop, session.AccessToken, sql.NullString{String: session.Scope, Valid: session.Scope != ""}, session.IsOnline, expiresAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			shop = EXCLUDED.shop,
			access_token = EXCLUDED.access_token,
			scope = EXCLUDED.scope,
			is_online = EXCLUDED.is_online,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session upsert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&session.CreatedAt, &session.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.
		Delete(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "session", ID: id}
	}
	return nil
}
