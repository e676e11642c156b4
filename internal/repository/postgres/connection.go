package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/repository"
)

// NewConnection creates a new PostgreSQL database connection
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS shopify_sessions (
	id           TEXT PRIMARY KEY,
	shop         TEXT NOT NULL,
	access_token TEXT NOT NULL,
	scope        TEXT,
	is_online    BOOLEAN NOT NULL DEFAULT FALSE,
	expires_at   TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_shopify_sessions_shop ON shopify_sessions (shop);
`

// RunMigrations creates the session storage schema if it does not exist
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create session schema: %w", err)
	}
	return nil
}

// NewRepositories wires the postgres-backed repositories
func NewRepositories(db *sql.DB) *repository.Repositories {
	return &repository.Repositories{
		Session: NewSessionRepository(db),
	}
}
