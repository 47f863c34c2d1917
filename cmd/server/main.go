package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pdlabs/pdgame/internal/api"
	"github.com/pdlabs/pdgame/internal/factory"
	"github.com/pdlabs/pdgame/internal/model"
	redisstorage "github.com/pdlabs/pdgame/internal/storage/redis"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		PublicURL:   os.Getenv("PDGAME_PUBLIC_URL"),
		SystemTheme: os.Getenv("PDGAME_SYSTEM_THEME"),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	startupCtx := context.Background()

	// Resolve the startup theme
	resolvedTheme, err := app.ThemeService.Initialize(startupCtx)
	if err != nil {
		logger.Warn("could not initialize theme", slog.String("error", err.Error()))
	} else {
		logger.Info("theme resolved", slog.String("theme", string(resolvedTheme)))
	}

	// Bump the open counter if a player is registered
	if p, err := app.PlayerService.IncrementOpenCount(startupCtx); err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			logger.Warn("could not increment open count", slog.String("error", err.Error()))
		}
	} else {
		logger.Info("player open count incremented",
			slog.String("player_id", string(p.ID)),
			slog.Int("open_count", p.OpenCount),
		)
	}

	// Keep the theme in sync with system preference changes
	unsubscribe := app.ThemeService.ListenForSystemChanges(startupCtx)
	defer unsubscribe()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		PlayerService:     app.PlayerService,
		ConnectionService: app.ConnectionService,
		ThemeService:      app.ThemeService,
		GameService:       app.GameService,
		WSHandler:         app.WSHandler,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PDGAME_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = n
		}
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
