package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "invoice-api", time.Hour)
	id := uuid.New()

	token, err := m.GenerateSessionToken(id, "RG-20240102-030405")
	require.NoError(t, err)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.Equal(t, "RG-20240102-030405", claims.BillNo)
	assert.Equal(t, "invoice-api", claims.Issuer)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("a", "x", time.Hour).GenerateSessionToken(uuid.New(), "RG")
	require.NoError(t, err)

	_, err = NewJWTManager("b", "x", time.Hour).ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	m := NewJWTManager("secret", "x", -time.Minute)
	token, err := m.GenerateSessionToken(uuid.New(), "RG")
	require.NoError(t, err)

	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", "x", time.Hour).ValidateSessionToken("not.a.token")
	assert.Error(t, err)
}

func TestArchiveToken_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "invoice-api", time.Hour)

	token, err := m.GenerateArchiveToken(time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateArchiveToken(token)
	require.NoError(t, err)
	assert.Equal(t, ArchiveScope, claims.Scope)
}

func TestArchiveToken_ScopesDoNotMix(t *testing.T) {
	m := NewJWTManager("secret", "invoice-api", time.Hour)

	sessionToken, err := m.GenerateSessionToken(uuid.New(), "RG")
	require.NoError(t, err)
	_, err = m.ValidateArchiveToken(sessionToken)
	assert.Error(t, err, "a session token must not open the archive")

	archiveToken, err := m.GenerateArchiveToken(time.Hour)
	require.NoError(t, err)
	_, err = m.ValidateSessionToken(archiveToken)
	assert.Error(t, err, "an archive token does not address a session")
}

func TestArchiveToken_Expired(t *testing.T) {
	m := NewJWTManager("secret", "x", time.Hour)
	token, err := m.GenerateArchiveToken(-time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateArchiveToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
