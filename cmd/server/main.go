package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/app"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/broadcast"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/config"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/database"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/logging"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/metrics"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/server"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(cfg *config.Config, srv *server.Server, hub *broadcast.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	build := version.Get()
	metrics.BuildInfo.WithLabelValues(build.Version, build.Commit, build.BuildTime, build.GoVersion).Set(1)

	pool := setupDB(cfg)
	defer pool.Close()

	rateRepo := database.NewRateRepo(pool)
	productRepo := database.NewProductRepo(pool)
	collectionRepo := database.NewCollectionRepo(pool)

	hub := broadcast.NewHub(clock, cfg.MaxWebSocketSessions)

	appSvc := app.NewService(rateRepo, productRepo, collectionRepo, hub)

	srv := server.NewServer(cfg, appSvc, hub, pool)

	done := runGracefulShutdown(cfg, srv, hub)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
