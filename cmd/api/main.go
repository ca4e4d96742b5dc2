package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnessw/election-api/internal/config"
	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/server"
	"github.com/goodnessw/election-api/internal/storage/objectstore"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log := logger.Get()

	repos, err := postgres.NewContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	photoStore, err := objectstore.NewPhotoStore(ctx, cfg)
	cancel()
	if err != nil {
		// Photo uploads degrade gracefully; the rest of the API stays up
		log.Warn("Object store unavailable, photo uploads disabled", "error", err)
		photoStore = nil
	}

	srv := server.New(cfg, repos, photoStore)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
