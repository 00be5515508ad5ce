// @title           File Vault API
// @version         1.0
// @description     Authenticated file storage: register, log in, upload, list and download files.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filevault/internal/api"
	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/credentials"
	"filevault/internal/database"
	"filevault/internal/logger"
	"filevault/internal/storage"
	"filevault/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	_ "filevault/docs"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := database.Migrate(ctx, dbpool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	zl.Info("database ready")

	fileStore, closeStore, err := openFileStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	zl.Info("file storage ready", zap.String("driver", cfg.Storage.Driver))

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService := auth.NewService(hasher, auth.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.TTL, auth.WithIssuer(cfg.JWT.Issuer)))

	credStore, err := credentials.NewStore(database.NewStore(dbpool), hasher)
	if err != nil {
		return err
	}

	limiter := auth.NewLoginLimiter(cfg.Auth.MaxFailedLogins, cfg.Auth.Lockout)
	go pruneLimiter(ctx, limiter, time.Minute)

	wsHub := websocket.NewHub(zl.Named("ws"))
	go wsHub.Run(ctx)

	server := api.NewServer(cfg, credStore, authService, fileStore, wsHub, limiter, zl)

	httpServer := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           api.NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.AppHost))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func openFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMinio:
		m := cfg.Storage.Minio
		ms, err := storage.NewMinioStorage(ctx, storage.MinioOptions{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init minio storage: %w", err)
		}
		return ms, func() {}, nil
	default:
		ls, err := storage.NewLocalStorage(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("init local storage: %w", err)
		}
		return ls, func() { ls.Close() }, nil
	}
}

func pruneLimiter(ctx context.Context, limiter *auth.LoginLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune()
		}
	}
}
