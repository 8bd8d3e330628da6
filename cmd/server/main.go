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

	"ultimattt/internal/config"
	"ultimattt/internal/db"
	"ultimattt/internal/hub"
	"ultimattt/internal/logger"
	"ultimattt/internal/memory"
	"ultimattt/internal/server"
	"ultimattt/internal/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("./config.yml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	shutdown, err := telemetry.InitOtel(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	// Outcome memory: shared via Redis when an address is configured,
	// otherwise the local JSON file.
	var mem memory.Store
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		mem = memory.NewRedisStore(rdb)
		slog.Info("outcome memory backed by redis", "addr", cfg.RedisAddr)
	} else {
		mem = memory.NewFileStore(cfg.MemoryFile)
		slog.Info("outcome memory backed by file", "path", cfg.MemoryFile)
	}

	h := hub.NewHub(mem, hub.Options{
		SearchDepth:   cfg.Search.Depth,
		SearchNodes:   cfg.Search.MaxNodes,
		SearchTimeout: cfg.Search.Timeout,
	})
	go h.Run()

	srv := server.NewServer(h, cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")
	h.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("server exiting")
}
