package api

import (
	"context"

	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/storage"
	"filevault/internal/websocket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CredentialStore interface {
	Register(ctx context.Context, username, password string) (uuid.UUID, error)
	Verify(ctx context.Context, username, password string) (bool, error)
}

type TokenService interface {
	IssueToken(username string) (string, error)
	ValidateToken(token string) (string, error)
}

type Server struct {
	config      *config.Config
	credentials CredentialStore
	tokens      TokenService
	storage     storage.FileStore
	wsHub       *websocket.Hub
	limiter     *auth.LoginLimiter
	logger      *zap.Logger
}

func NewServer(
	cfg *config.Config,
	credentials CredentialStore,
	tokens TokenService,
	fileStore storage.FileStore,
	wsHub *websocket.Hub,
	limiter *auth.LoginLimiter,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		config:      cfg,
		credentials: credentials,
		tokens:      tokens,
		storage:     fileStore,
		wsHub:       wsHub,
		limiter:     limiter,
		logger:      logger,
	}
}
