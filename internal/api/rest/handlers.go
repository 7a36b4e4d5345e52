package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/fortuna/standout/internal/service"
)

const (
	serviceName    = "standout"
	serviceVersion = "1.0.0"
)

// PlayerProvider runs the standout-player pipeline
type PlayerProvider interface {
	UsedPlayers(ctx context.Context) (map[string]*service.PlayerRecord, error)
}

// LogoProvider resolves a game's matchup logos
type LogoProvider interface {
	GameLogos(ctx context.Context, gameID string) (*service.GameLogos, error)
}

// Broadcaster fans a served payload out to live subscribers
type Broadcaster interface {
	Broadcast(data []byte)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	players PlayerProvider
	games   LogoProvider
	feed    Broadcaster
}

// NewHandler creates a new handler. feed may be nil.
func NewHandler(players PlayerProvider, games LogoProvider, feed Broadcaster) *Handler {
	return &Handler{
		players: players,
		games:   games,
		feed:    feed,
	}
}

// UsedPlayersResponse is the body of GET /
type UsedPlayersResponse struct {
	UsedPlayers map[string]*service.PlayerRecord `json:"usedPlayers"`
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetUsedPlayers picks a recent game and returns its standout players
func (h *Handler) GetUsedPlayers(w http.ResponseWriter, r *http.Request) {
	used, err := h.players.UsedPlayers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build player payload", err)
		return
	}

	body, err := json.Marshal(UsedPlayersResponse{UsedPlayers: used})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode player payload", err)
		return
	}

	writeJSON(w, http.StatusOK, body)

	if h.feed != nil {
		h.feed.Broadcast(body)
	}
}

// GetTeamLogos returns the matchup and both team logos for a game
func (h *Handler) GetTeamLogos(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	logos, err := h.games.GameLogos(r.Context(), gameID)
	if errors.Is(err, service.ErrGameNotFound) {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resolve team logos", err)
		return
	}

	respondJSON(w, http.StatusOK, logos)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("component", "rest").Msg("encoding response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
