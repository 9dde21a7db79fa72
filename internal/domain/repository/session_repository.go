package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
)

// SessionRepository defines the interface for form session storage.
// Returned sessions are copies; changes only persist through Update.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.FormSession) error
	// GetByID returns nil, nil when the session does not exist or has expired.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FormSession, error)
	// Update applies fn to the stored session while holding that session's lock.
	// If fn returns an error nothing is saved. Returns nil, nil when the session is missing.
	Update(ctx context.Context, id uuid.UUID, fn func(*entity.FormSession) error) (*entity.FormSession, error)
}
