package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/api/request"
	"github.com/pdlabs/pdgame/internal/api/response"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/game"
)

// GameHandler handles game round endpoints
type GameHandler struct {
	games *game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *game.Service) *GameHandler {
	return &GameHandler{games: games}
}

// Play handles POST /api/v1/game/rounds
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	round, err := h.games.PlayRound(
		r.Context(),
		model.ConnectionID(req.ConnectionID),
		model.Move(req.MyMove),
		model.Move(req.TheirMove),
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromModel(round))
}

// History handles GET /api/v1/game/rounds
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.games.History(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundListFromModel(rounds))
}
