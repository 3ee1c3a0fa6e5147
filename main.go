package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamhours-backend/internal/attendance"
	"teamhours-backend/internal/logging"
	"teamhours-backend/internal/report"
)

func main() {

	// Load .env variables
	envLoaded := LoadEnv()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Warn(".env file not found, using system environment variables")
	}

	gin.SetMode(cfg.Server.Mode)

	rules := cfg.AttendanceRules()
	svc := report.NewService(attendance.New(rules), logger)
	r := NewRouter(cfg, svc, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("🚀 Server running",
			zap.String("addr", cfg.Server.Addr),
			zap.String("manual_hours_marker", rules.ManualHoursMarker),
			zap.String("placeholder_marker", rules.PlaceholderMarker))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
