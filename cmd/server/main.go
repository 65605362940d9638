package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"barveredales/internal/config"
	"barveredales/internal/credential"
	"barveredales/internal/infra"
	"barveredales/internal/router"
	"barveredales/internal/service"
	"barveredales/internal/store"
	"barveredales/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	codec := credential.New(cfg.CredentialScheme)

	// Redis is only dialed when something needs it: the redis storage driver
	// or the mail worker pool.
	var rdb *redis.Client
	needRedis := cfg.StorageDriver == "redis" || cfg.SMTPHost != ""
	if needRedis {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	}

	slot, err := newSlot(cfg, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage slot")
	}

	st, err := store.New(ctx, slot, codec)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document store")
	}

	// Recovery codes: with SMTP configured they are queued through Redis and
	// sent by the worker pool; without it they only reach the log.
	var notifier service.CodeNotifier
	if cfg.SMTPHost != "" {
		mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		dispatcher := worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, mailer, cfg.WorkerPoolSize)
		notifier = dispatcher
	}

	r := router.New(cfg, st, rdb, notifier)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", cfg.StorageDriver).Msgf("BAR VEREDALES backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newSlot picks the storage driver for the document slot.
func newSlot(cfg *config.Config, rdb *redis.Client) (store.Slot, error) {
	switch cfg.StorageDriver {
	case "memory":
		return store.NewMemorySlot(), nil
	case "redis":
		return store.NewRedisSlot(rdb, cfg.StorageSlot), nil
	case "sql":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewSQLSlot(db, cfg.StorageSlot)
	default:
		return store.NewFileSlot(cfg.StoragePath, cfg.StorageSlot), nil
	}
}
