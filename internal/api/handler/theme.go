package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/api/request"
	"github.com/pdlabs/pdgame/internal/api/response"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/theme"
)

// ThemeHandler handles theme preference endpoints
type ThemeHandler struct {
	themes *theme.Service
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themes *theme.Service) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

// Get handles GET /api/v1/theme
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.themes.Current(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Theme{Theme: string(t)})
}

// Set handles PUT /api/v1/theme
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req request.SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.themes.Set(r.Context(), model.Theme(req.Theme)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Theme{Theme: req.Theme})
}

// Toggle handles POST /api/v1/theme/toggle
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.themes.Toggle(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Theme{Theme: string(t)})
}
