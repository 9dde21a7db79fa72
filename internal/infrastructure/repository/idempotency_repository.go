package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	goCache "github.com/patrickmn/go-cache"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
)

const prefixIdempotency = "idempotency:v1:"

type idempotencyRepository struct {
	cache *goCache.Cache
}

// NewIdempotencyRepository creates a new in-memory idempotency repository
func NewIdempotencyRepository(cleanupInterval time.Duration) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{cache: goCache.New(goCache.NoExpiration, cleanupInterval)}
}

func idempotencyKey(key string, sessionID uuid.UUID) string {
	return prefixIdempotency + sessionID.String() + ":" + key
}

func (r *idempotencyRepository) GetByKey(_ context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error) {
	v, ok := r.cache.Get(idempotencyKey(key, sessionID))
	if !ok {
		return nil, nil
	}
	ikey := *v.(*entity.IdempotencyKey)
	return &ikey, nil
}

func (r *idempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	stored := *ikey
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	ttl := time.Until(stored.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(idempotencyKey(ikey.Key, ikey.SessionID), &stored, ttl)
	return nil
}
