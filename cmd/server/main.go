package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blongho/cap5610-project/internal/api"
	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateLLM(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := summarize.NewClient(cfg.Summarize(), log)
	srv := api.NewServer(client, client.Stats, log, cfg)

	// A summarize request may wait out every retry of a slow model call.
	writeTimeout := cfg.LLMTimeout*time.Duration(cfg.LLMMaxRetries+1) + 30*time.Second

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
	}()

	log.Info("starting papersum server",
		"port", cfg.Port,
		"model", client.Model(),
		"cors_origins", cfg.CORSOrigins,
		"duplicate_policy", cfg.Policy().String(),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
