package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	goCache "github.com/patrickmn/go-cache"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
)

const prefixSession = "session:v1:"

type sessionEntry struct {
	mu      sync.Mutex
	session *entity.FormSession
}

// sessionRepository keeps form sessions in memory. Each access renews the TTL.
type sessionRepository struct {
	cache *goCache.Cache
	ttl   time.Duration
}

// NewSessionRepository creates an in-memory session repository
func NewSessionRepository(ttl, cleanupInterval time.Duration) domainRepo.SessionRepository {
	return &sessionRepository{
		cache: goCache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func sessionKey(id uuid.UUID) string {
	return prefixSession + id.String()
}

func (r *sessionRepository) entry(id uuid.UUID) *sessionEntry {
	v, ok := r.cache.Get(sessionKey(id))
	if !ok {
		return nil
	}
	e := v.(*sessionEntry)
	r.cache.Set(sessionKey(id), e, r.ttl)
	return e
}

func (r *sessionRepository) Create(_ context.Context, session *entity.FormSession) error {
	r.cache.Set(sessionKey(session.ID), &sessionEntry{session: session.Clone()}, r.ttl)
	return nil
}

func (r *sessionRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.FormSession, error) {
	e := r.entry(id)
	if e == nil {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

func (r *sessionRepository) Update(_ context.Context, id uuid.UUID, fn func(*entity.FormSession) error) (*entity.FormSession, error) {
	e := r.entry(id)
	if e == nil {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	draft := e.session.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = time.Now()
	e.session = draft
	return draft.Clone(), nil
}
