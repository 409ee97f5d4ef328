package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mborch/scorekeeper/internal/config"
	"github.com/mborch/scorekeeper/internal/database"
	server "github.com/mborch/scorekeeper/internal/http"
	"github.com/mborch/scorekeeper/internal/kv"
	"github.com/mborch/scorekeeper/internal/metrics"
	"github.com/mborch/scorekeeper/internal/tournament"
	"github.com/mborch/scorekeeper/internal/tournament/adapters"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
		db.Close()
	}()

	mode := tournament.Local()
	if cfg.Mode == "remote" {
		mode = tournament.Remote(cfg.TournamentID)
	}
	timeout, err := time.ParseDuration(cfg.AdapterTimeout)
	if err != nil {
		log.Fatalf("Invalid ADAPTER_TIMEOUT: %s", err)
	}

	adapter := adapters.New(mode, kv.NewSQLite(db), db, timeout)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	session := tournament.NewSession(mode, adapter, metricsSvc)

	// Bootstrap the in-memory view from the store. In remote mode an
	// unreachable store is fatal at startup: serving an empty view of a
	// shared tournament would invite destructive edits.
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := session.Load(loadCtx); err != nil {
		cancel()
		log.Fatalf("Failed to load tournament: %s", err)
	}
	cancel()
	log.Info("Session ready", "mode", mode.String(), "teams", len(session.Teams()), "matchCount", session.MatchCount())

	s := server.NewServer(session, metricsSvc, metricsHandler, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %s", err)

	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed, forcing close", "error", err)
			if err := srv.Close(); err != nil {
				log.Fatalf("Could not stop server: %s", err)
			}
		}
	}
}
