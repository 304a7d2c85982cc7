package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/nightsleft/internal/config"
	"github.com/dukerupert/nightsleft/internal/database"
	"github.com/dukerupert/nightsleft/internal/handler"
	"github.com/dukerupert/nightsleft/internal/logging"
	"github.com/dukerupert/nightsleft/internal/model"
	"github.com/dukerupert/nightsleft/internal/rollover"
	"github.com/dukerupert/nightsleft/internal/server"
	"github.com/dukerupert/nightsleft/internal/store"
)

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	loc := cfg.Location
	now := func() time.Time { return time.Now().In(loc) }

	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		logger.Error("failed to load seed", "error", err)
		os.Exit(1)
	}

	var events handler.EventStore
	var horizons server.HorizonStore
	if cfg.Offline {
		events = store.NewMemoryStore(seed, now)
		logger.Info("offline mode", "events", len(seed))
	} else {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		eventStore := store.NewEventStore(db)
		n, err := store.ImportIfEmpty(eventStore, seed)
		if err != nil {
			logger.Error("failed to import seed", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			logger.Info("imported seed events", "count", n)
		}
		events = eventStore
		horizons = store.NewSettingsStore(db)
	}

	srv := server.New(events, horizons, server.Config{
		HorizonYears:      cfg.HorizonYears,
		HorizonStep:       cfg.HorizonStep,
		TokenHash:         cfg.TokenHash,
		AllowedOrigins:    cfg.AllowedOrigins,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Now:               now,
	}, logger)

	sched := rollover.NewScheduler(cfg.RolloverSpec, loc, events, srv.Hub(), now, logger.With("component", "rollover"))
	if err := sched.Start(); err != nil {
		logger.Error("failed to start rollover scheduler", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := srv.RateLimiter().Cleanup(); n > 0 {
					logger.Debug("cleaned up rate limit entries", "count", n)
				}
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		logger.Info("nightsleft starting", "addr", ":"+cfg.Port, "horizon_years", srv.Horizon().Years(), "timezone", loc.String())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cleanupCancel()
	sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// loadSeed reads the configured seed file, or the built-in events.
func loadSeed(path string) ([]model.Event, error) {
	if path == "" {
		return store.DefaultSeed()
	}
	return store.ReadSeedFile(path)
}
