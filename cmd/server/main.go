// Package main is the entry point for the Monad Wordle backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"monad-wordle/internal/chain"
	"monad-wordle/internal/config"
	"monad-wordle/internal/pkg/db"
	"monad-wordle/internal/repository"
	"monad-wordle/internal/server"
	"monad-wordle/internal/service"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	log.Info().Msg("Database migrations applied")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool.Pool)
	gameRepo := repository.NewGameRepository(dbPool.Pool)
	wordRepo := repository.NewWordRepository(dbPool.Pool)
	paymentRepo := repository.NewPaymentRepository(dbPool.Pool)

	if count, err := wordRepo.Count(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to count dictionary words")
	} else if count == 0 {
		log.Warn().Msg("Word dictionary is empty, run cmd/seed before creating games")
	} else {
		log.Info().Int("words", count).Msg("Dictionary loaded")
	}

	// Payment verification
	rpcClient := chain.NewClient(cfg.Chain.RPCURL, cfg.Chain.RequestTimeout, cfg.Chain.MinDelay)
	verifier := chain.NewVerifier(rpcClient, cfg.Chain.GameContract, cfg.Chain.VerifyPayments)
	if !cfg.Chain.VerifyPayments {
		log.Warn().Msg("On-chain payment verification is disabled")
	}

	// Services
	gameService := service.NewGameService(dbPool, userRepo, gameRepo, wordRepo, paymentRepo, verifier)
	leaderboardService := service.NewLeaderboardService(
		userRepo,
		cfg.Leaderboard.DefaultLimit,
		cfg.Leaderboard.MaxLimit,
	)

	srv := server.New(&cfg.Server, gameService, leaderboardService, dbPool)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("Server is starting...")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server exited")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}
