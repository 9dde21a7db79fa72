package service

import (
	"context"
	"time"

	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// ArchiveAccessService exchanges the operator's archive key for an archive token.
type ArchiveAccessService struct {
	keyHash    string
	tokenTTL   time.Duration
	jwtManager *utils.JWTManager
	log        *logger.Logger
}

// NewArchiveAccessService creates a new archive access service. keyHash is a
// bcrypt hash; when it is empty no key is accepted and the archive stays closed.
func NewArchiveAccessService(keyHash string, tokenTTL time.Duration, jwtManager *utils.JWTManager, log *logger.Logger) *ArchiveAccessService {
	return &ArchiveAccessService{
		keyHash:    keyHash,
		tokenTTL:   tokenTTL,
		jwtManager: jwtManager,
		log:        log,
	}
}

// IssueToken returns an archive token when apiKey matches the configured key
func (s *ArchiveAccessService) IssueToken(ctx context.Context, apiKey string) (string, error) {
	if !utils.CheckPasswordHash(apiKey, s.keyHash) {
		s.log.Warnw("rejected archive key")
		return "", apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateArchiveToken(s.tokenTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

// TokenTTL is how long an issued archive token stays valid
func (s *ArchiveAccessService) TokenTTL() time.Duration {
	return s.tokenTTL
}
