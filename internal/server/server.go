// Package server wires the HTTP surface for the game backend.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"monad-wordle/internal/config"
	"monad-wordle/internal/pkg/db"
	"monad-wordle/internal/service"
)

// Server bundles the router and the services it exposes.
type Server struct {
	r           *chi.Mux
	games       *service.GameService
	leaderboard *service.LeaderboardService
	pool        *db.Pool
	httpServer  *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.ServerConfig, games *service.GameService, leaderboard *service.LeaderboardService, pool *db.Pool) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		games:       games,
		leaderboard: leaderboard,
		pool:        pool,
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(corsForOrigin(cfg.ClientOrigin))

	s.r.Get("/health", s.handleHealth)

	s.r.Route("/game", func(r chi.Router) {
		r.Post("/start", s.handleStartGame)
		r.Post("/guess", s.handleSubmitGuess)
		r.Get("/state", s.handleGameState)
		r.Get("/mine", s.handleMyGames)
	})

	s.r.Get("/leaderboard", s.handleLeaderboard)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	s.httpServer = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.r,
	}

	return s
}

// Router exposes the internal router, useful for tests.
func (s *Server) Router() chi.Router { return s.r }

// Start begins serving HTTP. Blocks until the listener stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
