package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetSessionID extracts the form session ID set by the session auth middleware
func GetSessionID(c *gin.Context) *uuid.UUID {
	sessionIDVal, exists := c.Get("session_id")
	if !exists {
		return nil
	}
	sessionID, ok := sessionIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &sessionID
}
