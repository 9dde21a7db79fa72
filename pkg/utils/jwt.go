package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims represents the claims in a session token
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	BillNo    string    `json:"bill_no"`
	jwt.RegisteredClaims
}

// ArchiveScope is the only scope an archive token carries
const ArchiveScope = "archive"

// ArchiveClaims represents the claims in an archive access token
type ArchiveClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTManager handles session token generation and validation
type JWTManager struct {
	secretKey   []byte
	issuer      string
	tokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret, issuer string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:   []byte(secret),
		issuer:      issuer,
		tokenExpiry: expiry,
	}
}

// GenerateSessionToken issues a token addressing one form session
func (m *JWTManager) GenerateSessionToken(sessionID uuid.UUID, billNo string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		BillNo:    billNo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   sessionID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// GenerateArchiveToken issues a token that reads the invoice archive for ttl
func (m *JWTManager) GenerateArchiveToken(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ArchiveClaims{
		Scope: ArchiveScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   ArchiveScope,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateArchiveToken validates an archive token. Session tokens are rejected.
func (m *JWTManager) ValidateArchiveToken(tokenString string) (*ArchiveClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ArchiveClaims{}, m.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ArchiveClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Scope != ArchiveScope {
		return nil, errors.New("token does not grant archive access")
	}

	return claims, nil
}

func (m *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return m.secretKey, nil
}

// ValidateSessionToken validates a session token and returns the claims
func (m *JWTManager) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, m.keyFunc)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SessionID == uuid.Nil {
		return nil, errors.New("invalid session ID in token")
	}

	return claims, nil
}
