package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and session ID
	GetByKey(ctx context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key until its ExpiresAt
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
}
