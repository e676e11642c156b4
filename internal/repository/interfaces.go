package repository

import (
	"context"

	"github.com/jafarshop/shopadmin/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=./mocks/session_repository_mock.go -package=mocks

// SessionRepository defines Shopify session data access methods.
// Get returns *errors.ErrNotFound for an unknown id.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Upsert(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Session SessionRepository
}
