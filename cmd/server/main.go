package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/config"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/httpapi"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/metrics"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/service"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage/sqlite"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; fall back to the default handler
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	manager := event.NewManager(store, m, event.Config{
		DrawTicks:        cfg.DrawTicks,
		DrawInterval:     cfg.DrawInterval,
		GroupDelay:       cfg.GroupDelay,
		DefaultGroupSize: cfg.DefaultGroupSize,
	})
	defer manager.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	staticPath := cfg.StaticPath
	if staticPath != "" {
		if staticPath, err = filepath.Abs(staticPath); err != nil {
			slog.Error("Failed to resolve static path", "error", err)
			os.Exit(1)
		}
		slog.Info("Serving static files", "path", staticPath)
	}

	api := httpapi.New(manager, jwtManager, m, service.Routes(manager, jwtManager), httpapi.Config{
		StaticPath:  staticPath,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(api.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
