package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pdlabs/pdgame/internal/dependencies/mocks"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
	"github.com/pdlabs/pdgame/internal/storage"
	"github.com/pdlabs/pdgame/internal/storage/memory"
	"github.com/pdlabs/pdgame/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	ids         *mocks.MockGenerator
	connections *connection.Service
	service     *Service
	ctx         context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockGenerator()
	logger := testutil.NopLogger()
	s.connections = connection.New(s.storage, s.ids, s.clock, "https://pd.example.com", logger)
	s.service = New(s.storage, s.connections, s.ids, s.clock, logger)
	s.ctx = context.Background()
}

// activeConnection sets up an accepted connection to play against
func (s *ServiceSuite) activeConnection(id string) {
	s.ids.Queue(id)
	_, err := s.connections.GenerateInviteLink(s.ctx, "Bob")
	s.Require().NoError(err)
	_, err = s.connections.Accept(s.ctx, model.ConnectionID(id))
	s.Require().NoError(err)
}

// PlayRound tests

func (s *ServiceSuite) TestPlayRound() {
	s.activeConnection("conn-1")
	s.ids.Queue("round-1")

	round, err := s.service.PlayRound(s.ctx, "conn-1", model.MoveCooperate, model.MoveDefect)
	s.Require().NoError(err)

	s.Equal(model.RoundID("round-1"), round.ID)
	s.Equal(model.ConnectionID("conn-1"), round.ConnectionID)
	s.Equal(0, round.MyScore)
	s.Equal(5, round.TheirScore)
	s.Equal(s.clock.Now(), round.PlayedAt)
}

func (s *ServiceSuite) TestPlayRoundRejectsInvalidMoves() {
	s.activeConnection("conn-1")

	_, err := s.service.PlayRound(s.ctx, "conn-1", "betray", model.MoveCooperate)
	s.ErrorIs(err, model.ErrInvalidMove)

	_, err = s.service.PlayRound(s.ctx, "conn-1", model.MoveCooperate, "")
	s.ErrorIs(err, model.ErrInvalidMove)
}

func (s *ServiceSuite) TestPlayRoundUnknownConnection() {
	_, err := s.service.PlayRound(s.ctx, "nonexistent", model.MoveCooperate, model.MoveCooperate)
	s.ErrorIs(err, model.ErrConnectionNotFound)
}

func (s *ServiceSuite) TestPlayRoundPendingConnection() {
	s.ids.Queue("conn-1")
	_, _ = s.connections.GenerateInviteLink(s.ctx, "Bob")

	_, err := s.service.PlayRound(s.ctx, "conn-1", model.MoveCooperate, model.MoveCooperate)
	s.ErrorIs(err, model.ErrConnectionNotActive)
}

func (s *ServiceSuite) TestPlayRoundAppendsToHistory() {
	s.activeConnection("conn-1")
	s.ids.Queue("round-1", "round-2")

	_, _ = s.service.PlayRound(s.ctx, "conn-1", model.MoveCooperate, model.MoveCooperate)
	_, _ = s.service.PlayRound(s.ctx, "conn-1", model.MoveDefect, model.MoveCooperate)

	rounds, err := s.service.History(s.ctx)
	s.Require().NoError(err)
	s.Len(rounds, 2)
	s.Equal(model.RoundID("round-1"), rounds[0].ID)
	s.Equal(model.RoundID("round-2"), rounds[1].ID)
}

// History edge cases

func (s *ServiceSuite) TestHistoryEmpty() {
	rounds, err := s.service.History(s.ctx)
	s.Require().NoError(err)
	s.Empty(rounds)
}

func (s *ServiceSuite) TestHistoryDropsMalformedEntries() {
	_ = s.storage.Set(s.ctx, storage.KeyRounds, `[
		{"id":"round-1","connection_id":"conn-1","my_move":"cooperate","their_move":"defect","my_score":0,"their_score":5,"played_at":"2024-01-01T12:00:00Z"},
		{"id":"round-2","connection_id":"conn-1","my_move":"shrug","their_move":"defect"}
	]`)

	rounds, err := s.service.History(s.ctx)
	s.Require().NoError(err)
	s.Len(rounds, 1)
	s.Equal(model.RoundID("round-1"), rounds[0].ID)
}

func (s *ServiceSuite) TestHistoryUnparsableTextIsCorruption() {
	_ = s.storage.Set(s.ctx, storage.KeyRounds, "garbage")

	_, err := s.service.History(s.ctx)
	s.ErrorIs(err, model.ErrDataCorruption)
}

// Payoff matrix

func TestPayoffMatrix(t *testing.T) {
	cases := []struct {
		name       string
		mine       model.Move
		theirs     model.Move
		myScore    int
		theirScore int
	}{
		{"both cooperate", model.MoveCooperate, model.MoveCooperate, 3, 3},
		{"sucker", model.MoveCooperate, model.MoveDefect, 0, 5},
		{"temptation", model.MoveDefect, model.MoveCooperate, 5, 0},
		{"both defect", model.MoveDefect, model.MoveDefect, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mine, theirs := model.Payoff(tc.mine, tc.theirs)
			assert.Equal(t, tc.myScore, mine)
			assert.Equal(t, tc.theirScore, theirs)
		})
	}
}
