package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pdlabs/pdgame/internal/api/handler"
	"github.com/pdlabs/pdgame/internal/middleware"
	"github.com/pdlabs/pdgame/internal/services/connection"
	"github.com/pdlabs/pdgame/internal/services/game"
	"github.com/pdlabs/pdgame/internal/services/player"
	"github.com/pdlabs/pdgame/internal/services/theme"
	"github.com/pdlabs/pdgame/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	PlayerService     *player.Service
	ConnectionService *connection.Service
	ThemeService      *theme.Service
	GameService       *game.Service
	WSHandler         *ws.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	connectionHandler := handler.NewConnectionHandler(cfg.ConnectionService)
	themeHandler := handler.NewThemeHandler(cfg.ThemeService)
	gameHandler := handler.NewGameHandler(cfg.GameService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/player", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/player", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/player/open", playerHandler.Open).Methods(http.MethodPost)
	api.HandleFunc("/player/name", playerHandler.Rename).Methods(http.MethodPatch)

	// Connection routes
	api.HandleFunc("/connections", connectionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/connections/invite", connectionHandler.Invite).Methods(http.MethodPost)
	api.HandleFunc("/connections/incoming", connectionHandler.RegisterIncoming).Methods(http.MethodPost)
	api.HandleFunc("/connections/{id}", connectionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/connections/{id}", connectionHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/connections/{id}/accept", connectionHandler.Accept).Methods(http.MethodPost)
	api.HandleFunc("/connections/{id}/qr", connectionHandler.QR).Methods(http.MethodGet)

	// Theme routes
	api.HandleFunc("/theme", themeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/theme", themeHandler.Set).Methods(http.MethodPut)
	api.HandleFunc("/theme/toggle", themeHandler.Toggle).Methods(http.MethodPost)

	// Game routes
	api.HandleFunc("/game/rounds", gameHandler.Play).Methods(http.MethodPost)
	api.HandleFunc("/game/rounds", gameHandler.History).Methods(http.MethodGet)

	// Websocket endpoint (its own read loop, no logging middleware)
	if cfg.WSHandler != nil {
		r.Handle("/api/v1/ws", cfg.WSHandler)
	}

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
