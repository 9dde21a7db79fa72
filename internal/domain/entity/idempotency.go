package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores a processed request so a retried generate call replays it
type IdempotencyKey struct {
	Key                string
	SessionID          uuid.UUID
	Endpoint           string // API endpoint (e.g., "POST /api/v1/session/generate")
	ResponseCode       int
	ContentType        string
	ContentDisposition string
	ResponseBody       []byte
	CreatedAt          time.Time
	ExpiresAt          time.Time
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
