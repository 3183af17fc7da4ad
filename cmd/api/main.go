package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/codemart/internal/config"
	"github.com/josh-kwaku/codemart/internal/handler"
	"github.com/josh-kwaku/codemart/internal/logging"
	"github.com/josh-kwaku/codemart/internal/middleware"
	"github.com/josh-kwaku/codemart/internal/repository"
	"github.com/josh-kwaku/codemart/internal/service"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("codemart-payment-errors", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Connect(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	}, cfg.ConnectTimeout())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	failureRepo := repository.NewPaymentFailureRepository(db)
	failureSvc := service.NewFailureService(failureRepo, cfg.FailureListLimit)
	sweeper := service.NewRetentionSweeper(failureRepo, logger, cfg.Retention(), cfg.SweepInterval())

	healthH := handler.NewHealthHandler(db, version)
	errorsH := handler.NewPaymentErrorHandler()
	failuresH := handler.NewPaymentFailureHandler(failureSvc)

	requireAuth := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec())

	mux.HandleFunc("GET /api/v1/payment-errors", errorsH.List)
	mux.HandleFunc("GET /api/v1/payment-errors/{code}", errorsH.Get)
	mux.HandleFunc("POST /api/v1/payment-errors/classify", errorsH.Classify)

	mux.Handle("POST /api/v1/payment-failures", requireAuth(http.HandlerFunc(failuresH.Report)))
	mux.Handle("GET /api/v1/payment-failures", requireAuth(http.HandlerFunc(failuresH.List)))
	mux.Handle("GET /api/v1/payment-failures/stats", requireAuth(http.HandlerFunc(failuresH.Stats)))
	mux.Handle("GET /api/v1/payment-failures/{id}", requireAuth(http.HandlerFunc(failuresH.Get)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux, middleware.Tracing, middleware.Logging, middleware.Recovery),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Start(sweepCtx)
	}()

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cancelSweep()
	<-sweepDone

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
