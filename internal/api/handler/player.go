package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/api/request"
	"github.com/pdlabs/pdgame/internal/api/response"
	"github.com/pdlabs/pdgame/internal/services/player"
)

// PlayerHandler handles player profile endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// Register handles POST /api/v1/player
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.players.Save(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterPlayerResponse{ID: string(id)})
}

// Get handles GET /api/v1/player
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Get(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Open handles POST /api/v1/player/open
func (h *PlayerHandler) Open(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.IncrementOpenCount(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Rename handles PATCH /api/v1/player/name
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req request.RenamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.players.UpdateName(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
