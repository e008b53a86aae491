package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/friendfeed/backend/internal/metrics"
	"github.com/anonto42/friendfeed/backend/internal/middleware"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/router"
	"github.com/anonto42/friendfeed/backend/pkg/config"
	"github.com/anonto42/friendfeed/backend/pkg/firebase"
	"github.com/anonto42/friendfeed/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg, zl)
	if err != nil {
		return err
	}
	defer config.CloseDB(db, zl)

	if err := config.Migrate(db); err != nil {
		return err
	}
	zl.Info("database migrations completed")

	m := metrics.New()
	if err := db.Use(metrics.NewQueryCounter(m)); err != nil {
		return err
	}

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	auth, err := authMiddleware(ctx, cfg, zl, db, tokens)
	if err != nil {
		return err
	}

	e := router.New(router.Deps{
		Config:  cfg,
		DB:      db,
		Logger:  zl,
		Metrics: m,
		Auth:    auth,
		Tokens:  tokens,
	})

	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: m.Handler()}
	go func() {
		zl.Info("metrics listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("metrics server failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		zl.Error("metrics shutdown", zap.Error(err))
	}
	return nil
}

// authMiddleware picks the bearer verifier named by AUTH_PROVIDER.
func authMiddleware(ctx context.Context, cfg *config.Config, zl *zap.Logger, db *gorm.DB, tokens *middleware.TokenIssuer) (echo.MiddlewareFunc, error) {
	if cfg.AuthProvider != "firebase" {
		return router.JWTAuth(db, tokens), nil
	}
	app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, zl)
	if err != nil {
		return nil, err
	}
	return middleware.FirebaseAuthMiddleware(app.AuthClient, repositories.NewGormUserRepository(db), zl), nil
}
