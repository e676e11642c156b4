package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewSessionRepository creates an in-process session repository
func NewSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "session", ID: id}
	}
	return &s, nil
}

func (r *sessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	s := *session
	if existing, ok := r.sessions[s.ID]; ok {
		s.CreatedAt = existing.CreatedAt
	} else {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.sessions[s.ID] = s

	session.CreatedAt = s.CreatedAt
	session.UpdatedAt = s.UpdatedAt
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return &errors.ErrNotFound{Resource: "session", ID: id}
	}
	delete(r.sessions, id)
	return nil
}
