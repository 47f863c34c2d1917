package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdlabs/pdgame/internal/dependencies/clock"
	"github.com/pdlabs/pdgame/internal/dependencies/identity"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
	"github.com/pdlabs/pdgame/internal/storage"
)

// Service plays Prisoner's Dilemma rounds against active connections and
// records outcomes under one fixed key
type Service struct {
	store       storage.Store
	connections *connection.Service
	ids         identity.Generator
	clock       clock.Clock
	logger      *slog.Logger
}

// New creates a new game service
func New(store storage.Store, connections *connection.Service, ids identity.Generator, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		connections: connections,
		ids:         ids,
		clock:       clk,
		logger:      logger,
	}
}

// PlayRound resolves one round against the given connection and appends
// the outcome to the round history. The connection must be active.
func (s *Service) PlayRound(ctx context.Context, connID model.ConnectionID, myMove, theirMove model.Move) (model.Round, error) {
	if !model.ValidMove(myMove) || !model.ValidMove(theirMove) {
		return model.Round{}, model.ErrInvalidMove
	}

	conn, err := s.connections.GetByID(ctx, connID)
	if err != nil {
		return model.Round{}, err
	}
	if conn.Status != model.ConnectionActive {
		return model.Round{}, model.ErrConnectionNotActive
	}

	myScore, theirScore := model.Payoff(myMove, theirMove)
	round := model.Round{
		ID:           model.RoundID(s.ids.NewID()),
		ConnectionID: connID,
		MyMove:       myMove,
		TheirMove:    theirMove,
		MyScore:      myScore,
		TheirScore:   theirScore,
		PlayedAt:     s.clock.Now(),
	}

	rounds, err := s.load(ctx)
	if err != nil {
		return model.Round{}, err
	}

	if err := s.write(ctx, append(rounds, round)); err != nil {
		return model.Round{}, err
	}

	s.logger.Info("round played",
		slog.String("connection_id", string(connID)),
		slog.Int("my_score", myScore),
	)
	return round, nil
}

// History returns recorded rounds in insertion order
func (s *Service) History(ctx context.Context) ([]model.Round, error) {
	return s.load(ctx)
}

// load follows the same policy as the connection list: absent key is an
// empty history, malformed entries are dropped silently, unparsable text
// is corruption.
func (s *Service) load(ctx context.Context) ([]model.Round, error) {
	data, err := s.store.Get(ctx, storage.KeyRounds)
	if err != nil {
		if errors.Is(err, model.ErrKeyNotFound) {
			return []model.Round{}, nil
		}
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		var probe any
		if json.Unmarshal([]byte(data), &probe) == nil {
			s.logger.Warn("stored rounds is not a list, treating as empty")
			return []model.Round{}, nil
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDataCorruption, err)
	}

	rounds := make([]model.Round, 0, len(entries))
	for _, entry := range entries {
		var r model.Round
		if err := json.Unmarshal(entry, &r); err != nil || !r.Valid() {
			s.logger.Warn("dropping malformed round entry")
			continue
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}

func (s *Service) write(ctx context.Context, rounds []model.Round) error {
	data, err := json.Marshal(rounds)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.KeyRounds, string(data))
}
