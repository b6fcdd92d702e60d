package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mathdeck/internal/api"
	"mathdeck/internal/bus"
	"mathdeck/internal/config"
	"mathdeck/internal/db"
	"mathdeck/internal/logger"
	"mathdeck/internal/paths"
	"mathdeck/internal/repository/sqlite"
	"mathdeck/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("mathdeck starting")

	if cfg.DBPath == "" {
		dbPath, err := paths.UserDBPath()
		if err != nil {
			log.Error("failed to resolve user data directory: %v", err)
			os.Exit(1)
		}
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)

	// StoreUnavailable here is fatal; nothing to retry.
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open problem store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	changeBus := bus.New()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	tagRepo := sqlite.NewTagRepository(database.DB)
	problemRepo := sqlite.NewProblemRepository(database.DB)

	deckService := services.NewDeckService(deckRepo, changeBus)
	tagService := services.NewTagService(tagRepo, changeBus)
	problemService := services.NewProblemService(problemRepo, changeBus)

	hub := api.NewChangeHub()
	changeBus.Subscribe(bus.DecksChanged, hub)
	changeBus.Subscribe(bus.ProblemsChanged, hub)
	changeBus.Subscribe(bus.TagsChanged, hub)

	srv := api.NewServer(deckService, problemService, tagService, hub)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("mathdeck stopped")
}
