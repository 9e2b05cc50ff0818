// Package main is the entry point for the cueclub API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cueclub/internal/api"
	"cueclub/internal/config"
	"cueclub/internal/pkg/db"
	"cueclub/internal/pkg/lock"
	"cueclub/internal/repository"
	"cueclub/internal/service"
	"cueclub/internal/store"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Str("backend", cfg.Store.Backend).Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the document store
	docStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	// Initialize repositories
	userRepo := repository.NewUserRepository(docStore)
	clubRepo := repository.NewClubRepository(docStore)
	bookingRepo := repository.NewBookingRepository(docStore)
	sessionRepo := repository.NewSessionRepository(docStore)
	playerRepo := repository.NewPlayerRepository(docStore)
	ledgerRepo := repository.NewLedgerRepository(docStore)
	inventoryRepo := repository.NewInventoryRepository(docStore)

	// Initialize table lock
	tableLock := lock.NewTableLock()

	// Initialize services
	authService := service.NewAuthService(userRepo, clubRepo)
	registryService := service.NewRegistryService(clubRepo, sessionRepo)
	bookingService := service.NewBookingService(
		clubRepo,
		bookingRepo,
		tableLock,
		cfg.Booking.MaxRecurringOccurrences,
		cfg.Booking.LockTimeout,
	)
	sessionService := service.NewSessionService(
		clubRepo,
		sessionRepo,
		inventoryRepo,
		ledgerRepo,
		tableLock,
		cfg.Booking.LockTimeout,
	)
	walletService := service.NewWalletService(playerRepo, sessionRepo, ledgerRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)
	statsService := service.NewStatsService(clubRepo, bookingRepo, sessionRepo, playerRepo)
	inventoryService := service.NewInventoryService(inventoryRepo)

	apiServer := api.NewServer(
		authService,
		registryService,
		bookingService,
		sessionService,
		walletService,
		ledgerService,
		statsService,
		inventoryService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiServer.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Server is starting...")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}

// openStore selects the document store backend from configuration. The
// returned cleanup releases the backend's resources.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		pgStore, err := store.NewPostgresStore(ctx, pool.Pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgStore, pool.Close, nil
	default:
		badgerStore, err := store.NewBadgerStore(cfg.Store.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return badgerStore, func() {
			if err := badgerStore.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close store")
			}
		}, nil
	}
}
