package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/response"
	"github.com/rishabgems/invoice-api/pkg/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyKeyTTL is used when no TTL is configured
	DefaultIdempotencyKeyTTL = time.Hour
	maxIdempotencyKeyLen     = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	TTL    time.Duration
	Logger *logger.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key within the same session. Requests without a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		if len(idempotencyKey) > maxIdempotencyKeyLen {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		sessionIDValue, exists := c.Get("session_id")
		if !exists {
			c.Next()
			return
		}
		sessionID, ok := sessionIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, sessionID)
		if err != nil {
			config.Logger.Warnw("idempotency lookup failed", "key", idempotencyKey, "error", err)
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			if existing.ContentDisposition != "" {
				c.Header("Content-Disposition", existing.ContentDisposition)
			}
			c.Data(existing.ResponseCode, existing.ContentType, existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Failed attempts may be retried with the same key
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		now := time.Now()
		ikey := &entity.IdempotencyKey{
			Key:                idempotencyKey,
			SessionID:          sessionID,
			Endpoint:           c.Request.Method + " " + c.FullPath(),
			ResponseCode:       status,
			ContentType:        c.Writer.Header().Get("Content-Type"),
			ContentDisposition: c.Writer.Header().Get("Content-Disposition"),
			ResponseBody:       bytes.Clone(blw.body.Bytes()),
			CreatedAt:          now,
			ExpiresAt:          now.Add(ttl),
		}

		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			config.Logger.Warnw("failed to store idempotency key", "key", idempotencyKey, "error", err)
		}
	}
}
