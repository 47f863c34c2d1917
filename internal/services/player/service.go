package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdlabs/pdgame/internal/dependencies/clock"
	"github.com/pdlabs/pdgame/internal/dependencies/identity"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/storage"
)

// Service manages the single local player record. All mutations are a
// read-modify-write of a fresh value under one fixed key; callers always
// receive copies and cannot corrupt the stored record.
type Service struct {
	store  storage.Store
	ids    identity.Generator
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new player service
func New(store storage.Store, ids identity.Generator, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		ids:    ids,
		clock:  clk,
		logger: logger,
	}
}

// Save registers the local player, overwriting any existing record. The
// new record starts with an open count of 1.
func (s *Service) Save(ctx context.Context, name string) (model.PlayerID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrInvalidName
	}

	now := s.clock.Now()
	player := model.Player{
		ID:        model.PlayerID(s.ids.NewID()),
		Name:      name,
		OpenCount: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.write(ctx, player); err != nil {
		return "", err
	}

	s.logger.Info("player registered", slog.String("player_id", string(player.ID)))
	return player.ID, nil
}

// Get retrieves the stored player record
func (s *Service) Get(ctx context.Context) (model.Player, error) {
	data, err := s.store.Get(ctx, storage.KeyPlayer)
	if err != nil {
		if errors.Is(err, model.ErrKeyNotFound) {
			return model.Player{}, model.ErrPlayerNotFound
		}
		return model.Player{}, err
	}

	var player model.Player
	if err := json.Unmarshal([]byte(data), &player); err != nil {
		return model.Player{}, fmt.Errorf("%w: %v", model.ErrDataCorruption, err)
	}
	if player.ID == "" || player.Name == "" || player.OpenCount < 0 {
		return model.Player{}, fmt.Errorf("%w: player record missing required fields", model.ErrDataCorruption)
	}

	return player, nil
}

// IncrementOpenCount bumps the open counter, called once per application
// start after the record exists
func (s *Service) IncrementOpenCount(ctx context.Context) (model.Player, error) {
	player, err := s.Get(ctx)
	if err != nil {
		return model.Player{}, err
	}

	player.OpenCount++
	player.UpdatedAt = s.clock.Now()

	if err := s.write(ctx, player); err != nil {
		return model.Player{}, err
	}
	return player, nil
}

// UpdateName changes the display name, leaving id and open count unchanged
func (s *Service) UpdateName(ctx context.Context, name string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, model.ErrInvalidName
	}

	player, err := s.Get(ctx)
	if err != nil {
		return model.Player{}, err
	}

	player.Name = name
	player.UpdatedAt = s.clock.Now()

	if err := s.write(ctx, player); err != nil {
		return model.Player{}, err
	}
	return player, nil
}

func (s *Service) write(ctx context.Context, player model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.KeyPlayer, string(data))
}
