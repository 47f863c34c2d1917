package connection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pdlabs/pdgame/internal/dependencies/mocks"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/storage"
	"github.com/pdlabs/pdgame/internal/storage/memory"
	"github.com/pdlabs/pdgame/internal/testutil"
)

const baseURL = "https://pd.example.com"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockGenerator
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockGenerator()
	s.service = New(s.storage, s.ids, s.clock, baseURL, testutil.NopLogger())
	s.ctx = context.Background()
}

// GenerateInviteLink tests

func (s *ServiceSuite) TestGenerateInviteLink() {
	s.ids.Queue("conn-1")

	inv, err := s.service.GenerateInviteLink(s.ctx, "Bob")
	s.Require().NoError(err)

	s.Equal(model.ConnectionID("conn-1"), inv.Connection.ID)
	s.Equal("Bob", inv.Connection.Name)
	s.Equal(model.ConnectionPending, inv.Connection.Status)
	s.True(inv.Connection.InitiatedByMe)
	s.Equal(baseURL+"/?connection=conn-1", inv.URL)
}

func (s *ServiceSuite) TestGenerateInviteLinkRejectsEmptyName() {
	_, err := s.service.GenerateInviteLink(s.ctx, "  ")
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *ServiceSuite) TestGenerateInviteLinkAppendsToList() {
	s.ids.Queue("conn-1", "conn-2")

	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Carol")

	conns, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(conns, 2)
	s.Equal("Bob", conns[0].Name)
	s.Equal("Carol", conns[1].Name)
}

// List and GetByID tests

func (s *ServiceSuite) TestListEmpty() {
	conns, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(conns)
}

func (s *ServiceSuite) TestGetByID() {
	s.ids.Queue("conn-1")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")

	conn, err := s.service.GetByID(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal("Bob", conn.Name)
}

func (s *ServiceSuite) TestGetByIDNotFound() {
	_, err := s.service.GetByID(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrConnectionNotFound)
}

func (s *ServiceSuite) TestGetByIDEmptyID() {
	_, err := s.service.GetByID(s.ctx, "")
	s.ErrorIs(err, model.ErrInvalidID)
}

// ListByStatus tests

func (s *ServiceSuite) TestListByStatus() {
	s.ids.Queue("conn-1", "conn-2", "conn-3")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Carol")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Dave")
	_, _ = s.service.Accept(s.ctx, "conn-2")

	pending, err := s.service.ListByStatus(s.ctx, model.ConnectionPending)
	s.Require().NoError(err)
	s.Len(pending, 2)

	active, err := s.service.ListByStatus(s.ctx, model.ConnectionActive)
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal("Carol", active[0].Name)
}

func (s *ServiceSuite) TestListByStatusRejectsUnknown() {
	_, err := s.service.ListByStatus(s.ctx, "archived")
	s.ErrorIs(err, model.ErrInvalidStatus)
}

// Accept tests

func (s *ServiceSuite) TestAccept() {
	s.ids.Queue("conn-1")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")

	conn, err := s.service.Accept(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(model.ConnectionActive, conn.Status)

	stored, _ := s.service.GetByID(s.ctx, "conn-1")
	s.Equal(model.ConnectionActive, stored.Status)
}

func (s *ServiceSuite) TestAcceptIsIdempotent() {
	s.ids.Queue("conn-1")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")

	_, _ = s.service.Accept(s.ctx, "conn-1")
	conn, err := s.service.Accept(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(model.ConnectionActive, conn.Status)
}

func (s *ServiceSuite) TestAcceptNotFound() {
	_, err := s.service.Accept(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrConnectionNotFound)
}

// RegisterIncoming tests

func (s *ServiceSuite) TestRegisterIncoming() {
	conn, err := s.service.RegisterIncoming(s.ctx, "conn-remote", "Eve")
	s.Require().NoError(err)

	s.Equal(model.ConnectionID("conn-remote"), conn.ID)
	s.Equal(model.ConnectionPending, conn.Status)
	s.False(conn.InitiatedByMe)
}

func (s *ServiceSuite) TestRegisterIncomingDuplicateID() {
	_, _ = s.service.RegisterIncoming(s.ctx, "conn-remote", "Eve")

	_, err := s.service.RegisterIncoming(s.ctx, "conn-remote", "Eve again")
	s.ErrorIs(err, model.ErrConnectionExists)

	conns, _ := s.service.List(s.ctx)
	s.Len(conns, 1)
	s.Equal("Eve", conns[0].Name, "Existing record is not overwritten")
}

func (s *ServiceSuite) TestRegisterIncomingValidation() {
	_, err := s.service.RegisterIncoming(s.ctx, "", "Eve")
	s.ErrorIs(err, model.ErrInvalidID)

	_, err = s.service.RegisterIncoming(s.ctx, "conn-remote", " ")
	s.ErrorIs(err, model.ErrInvalidName)
}

// Delete tests

func (s *ServiceSuite) TestDelete() {
	s.ids.Queue("conn-1", "conn-2")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Bob")
	_, _ = s.service.GenerateInviteLink(s.ctx, "Carol")

	err := s.service.Delete(s.ctx, "conn-1")
	s.Require().NoError(err)

	conns, _ := s.service.List(s.ctx)
	s.Len(conns, 1)
	s.Equal("Carol", conns[0].Name)
}

func (s *ServiceSuite) TestDeleteNotFound() {
	err := s.service.Delete(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrConnectionNotFound)
}

// Invite URL tests

func (s *ServiceSuite) TestParseInviteURL() {
	id, err := ParseInviteURL(baseURL + "/?connection=conn-1")
	s.Require().NoError(err)
	s.Equal(model.ConnectionID("conn-1"), id)
}

func (s *ServiceSuite) TestParseInviteURLMissingParam() {
	_, err := ParseInviteURL(baseURL + "/?other=x")
	s.ErrorIs(err, model.ErrInvalidID)
}

func (s *ServiceSuite) TestInviteURLRoundTrips() {
	url := s.service.InviteURL("conn-9")

	id, err := ParseInviteURL(url)
	s.Require().NoError(err)
	s.Equal(model.ConnectionID("conn-9"), id)
}

// Stored data edge cases

func (s *ServiceSuite) TestLoadAbsentKeyIsEmptyList() {
	conns, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(conns)
	s.Empty(conns)
}

func (s *ServiceSuite) TestLoadNonArrayValueIsEmptyList() {
	_ = s.storage.Set(s.ctx, storage.KeyConnections, `{"not":"a list"}`)

	conns, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(conns)
}

func (s *ServiceSuite) TestLoadDropsMalformedEntries() {
	_ = s.storage.Set(s.ctx, storage.KeyConnections, `[
		{"id":"conn-1","name":"Bob","status":"pending","initiated_by_me":true,"created_at":"2024-01-01T12:00:00Z"},
		{"id":"","name":"","status":"bogus"},
		{"id":"conn-2","name":"Carol","status":"active","initiated_by_me":false,"created_at":"2024-01-01T12:00:00Z"}
	]`)

	conns, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(conns, 2)
	s.Equal(model.ConnectionID("conn-1"), conns[0].ID)
	s.Equal(model.ConnectionID("conn-2"), conns[1].ID)
}

func (s *ServiceSuite) TestLoadUnparsableTextIsCorruption() {
	_ = s.storage.Set(s.ctx, storage.KeyConnections, "not json at all")

	_, err := s.service.List(s.ctx)
	s.ErrorIs(err, model.ErrDataCorruption)
}
