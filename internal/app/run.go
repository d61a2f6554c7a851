package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ad-campaign-analyzer/internal/api"
	"ad-campaign-analyzer/internal/config"
	"ad-campaign-analyzer/internal/storage"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	store, err := storage.Open(cfg.SQLite.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("init storage")
	}
	defer store.Close()

	if cfg.Seed.OnStart {
		seedIfEmpty(rootCtx, store)
	}

	// HTTP
	h := api.NewHandler(store)
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel()
	_ = srv.Shutdown(shCtx)
}

// seedIfEmpty loads the demo campaigns on first start so a fresh
// install has something to diagnose.
func seedIfEmpty(ctx context.Context, store *storage.Store) {
	n, err := store.CountCampaigns(ctx)
	if err != nil {
		log.Error().Err(err).Msg("count campaigns")
		return
	}
	if n > 0 {
		return
	}
	count, err := store.Seed(ctx)
	if err != nil {
		log.Error().Err(err).Msg("seed campaigns")
		return
	}
	log.Info().Int("count", count).Msg("seeded example campaigns")
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
