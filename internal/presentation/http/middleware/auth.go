package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/response"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// SessionAuthMiddleware resolves the Bearer session token to a form session
func SessionAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateSessionToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, apperror.ErrTokenExpired)
			} else {
				response.Error(c, apperror.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		c.Set("session_id", claims.SessionID)
		c.Set("bill_no", claims.BillNo)

		c.Next()
	}
}

// ArchiveAuthMiddleware requires a Bearer archive token. Session tokens are refused.
func ArchiveAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		if _, err := jwtManager.ValidateArchiveToken(token); err != nil {
			response.Error(c, apperror.ErrInvalidArchiveToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>", writing a 401 when it is absent.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		response.Unauthorized(c, "Invalid authorization header format")
		return "", false
	}
	return parts[1], true
}
