package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pdlabs/pdgame/internal/dependencies/clock"
	"github.com/pdlabs/pdgame/internal/dependencies/identity"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
	"github.com/pdlabs/pdgame/internal/services/game"
	"github.com/pdlabs/pdgame/internal/services/player"
	"github.com/pdlabs/pdgame/internal/services/theme"
	"github.com/pdlabs/pdgame/internal/storage"
	"github.com/pdlabs/pdgame/internal/storage/memory"
	redisstorage "github.com/pdlabs/pdgame/internal/storage/redis"
	"github.com/pdlabs/pdgame/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock    clock.Clock
	Identity identity.Generator

	// Theme boundaries
	Marker *theme.Marker
	Scheme *theme.StaticScheme

	// Services
	PlayerService     *player.Service
	ConnectionService *connection.Service
	ThemeService      *theme.Service
	GameService       *game.Service

	// Websocket
	Hub       *ws.Hub
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// PublicURL is the base address invite links point at
	PublicURL string
	// SystemTheme seeds the OS-level preference signal ("light"/"dark")
	SystemTheme string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "http://localhost:8080"
	}

	return newWithDependencies(store, clock.New(), identity.New(), publicURL, model.Theme(cfg.SystemTheme), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, ids identity.Generator, publicURL string, systemTheme model.Theme, logger *slog.Logger) *App {
	marker := theme.NewMarker()
	scheme := theme.NewStaticScheme(systemTheme)

	playerService := player.New(store, ids, clk, logger)
	connectionService := connection.New(store, ids, clk, publicURL, logger)
	themeService := theme.New(store, marker, scheme, logger)
	gameService := game.New(store, connectionService, ids, clk, logger)

	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(hub, connectionService, logger)

	return &App{
		Store:             store,
		Clock:             clk,
		Identity:          ids,
		Marker:            marker,
		Scheme:            scheme,
		PlayerService:     playerService,
		ConnectionService: connectionService,
		ThemeService:      themeService,
		GameService:       gameService,
		Hub:               hub,
		WSHandler:         wsHandler,
	}
}
