package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"monad-wordle/internal/service"
)

type startGameRequest struct {
	Address string `json:"address"`
	TxHash  string `json:"txHash"`
}

type startGameResponse struct {
	GameID string `json:"gameId"`
}

type submitGuessRequest struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status
// codes: validation errors 400, state conflicts 404/409, payment
// rejection 402, resource misconfiguration and unknown failures 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGuessLength),
		errors.Is(err, service.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGameAlreadyFinished),
		errors.Is(err, service.ErrDuplicatePayment):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentRejected):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrNoWordsAvailable):
		log.Error().Err(err).Msg("Dictionary not seeded")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.HealthCheck(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Address == "" || req.TxHash == "" {
		writeError(w, http.StatusBadRequest, "missing address or txHash")
		return
	}

	gameID, err := s.games.CreateGame(r.Context(), req.Address, req.TxHash)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startGameResponse{GameID: gameID})
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req submitGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.GameID == "" || req.Guess == "" {
		writeError(w, http.StatusBadRequest, "missing gameId or guess")
		return
	}

	result, err := s.games.SubmitGuess(r.Context(), req.GameID, req.Guess)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing gameId")
		return
	}

	state, err := s.games.GetState(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing address")
		return
	}
	limit := queryInt(r, "limit", 50)

	games, err := s.games.ListUserGames(r.Context(), address, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)

	entries, err := s.leaderboard.TopN(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
