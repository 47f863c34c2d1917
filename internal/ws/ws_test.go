package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/dependencies/mocks"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
	"github.com/pdlabs/pdgame/internal/storage/memory"
	"github.com/pdlabs/pdgame/internal/testutil"
)

type WebsocketSuite struct {
	suite.Suite
	server      *httptest.Server
	connections *connection.Service
	ids         *mocks.MockGenerator
	client      *Client
	ctx         context.Context
	cancel      context.CancelFunc
}

func TestWebsocketSuite(t *testing.T) {
	suite.Run(t, new(WebsocketSuite))
}

func (s *WebsocketSuite) SetupTest() {
	logger := testutil.NopLogger()
	store := memory.New()
	s.ids = mocks.NewMockGenerator()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.connections = connection.New(store, s.ids, clk, "https://pd.example.com", logger)

	hub := NewHub(logger)
	handler := NewHandler(hub, s.connections, logger)
	s.server = httptest.NewServer(handler)

	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)

	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http")
	client, err := Dial(s.ctx, wsURL)
	s.Require().NoError(err)
	s.client = client
}

func (s *WebsocketSuite) TearDownTest() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.server != nil {
		s.server.Close()
	}
	s.cancel()
}

// waitForEvent blocks until a push event of the given type arrives
func (s *WebsocketSuite) waitForEvent(eventType string) Envelope {
	for {
		select {
		case env, ok := <-s.client.Events():
			s.Require().True(ok, "Events channel closed while waiting for %s", eventType)
			if env.Type == eventType {
				return env
			}
		case <-s.ctx.Done():
			s.FailNow("timed out waiting for event", eventType)
			return Envelope{}
		}
	}
}

func (s *WebsocketSuite) TestGetConnectionsEmpty() {
	data, err := s.client.Call(s.ctx, TypeGetConnections, nil)
	s.Require().NoError(err)

	var conns []model.Connection
	s.Require().NoError(json.Unmarshal(data, &conns))
	s.Empty(conns)
}

func (s *WebsocketSuite) TestGenerateInvite() {
	s.ids.Queue("conn-1")

	data, err := s.client.Call(s.ctx, TypeGenerateInvite, GenerateInvitePayload{FriendName: "Bob"})
	s.Require().NoError(err)

	var inv connection.Invite
	s.Require().NoError(json.Unmarshal(data, &inv))
	s.Equal(model.ConnectionID("conn-1"), inv.Connection.ID)
	s.Contains(inv.URL, "connection=conn-1")
}

func (s *WebsocketSuite) TestGenerateInviteBroadcastsEvent() {
	s.ids.Queue("conn-1")

	_, err := s.client.Call(s.ctx, TypeGenerateInvite, GenerateInvitePayload{FriendName: "Bob"})
	s.Require().NoError(err)

	env := s.waitForEvent(TypeConnectionCreated)
	var conn model.Connection
	s.Require().NoError(json.Unmarshal(env.Data, &conn))
	s.Equal(model.ConnectionID("conn-1"), conn.ID)
}

func (s *WebsocketSuite) TestAcceptConnection() {
	s.ids.Queue("conn-1")
	_, err := s.client.Call(s.ctx, TypeGenerateInvite, GenerateInvitePayload{FriendName: "Bob"})
	s.Require().NoError(err)

	data, err := s.client.Call(s.ctx, TypeAcceptConnection, ConnectionRefPayload{ID: "conn-1"})
	s.Require().NoError(err)

	var conn model.Connection
	s.Require().NoError(json.Unmarshal(data, &conn))
	s.Equal(model.ConnectionActive, conn.Status)
}

func (s *WebsocketSuite) TestRegisterIncoming() {
	data, err := s.client.Call(s.ctx, TypeRegisterIncoming, RegisterIncomingPayload{
		ID:         "conn-remote",
		FriendName: "Eve",
	})
	s.Require().NoError(err)

	var conn model.Connection
	s.Require().NoError(json.Unmarshal(data, &conn))
	s.False(conn.InitiatedByMe)
	s.Equal(model.ConnectionPending, conn.Status)
}

func (s *WebsocketSuite) TestDeleteConnection() {
	s.ids.Queue("conn-1")
	_, err := s.client.Call(s.ctx, TypeGenerateInvite, GenerateInvitePayload{FriendName: "Bob"})
	s.Require().NoError(err)

	data, err := s.client.Call(s.ctx, TypeDeleteConnection, ConnectionRefPayload{ID: "conn-1"})
	s.Require().NoError(err)

	var conns []model.Connection
	s.Require().NoError(json.Unmarshal(data, &conns))
	s.Empty(conns)
}

func (s *WebsocketSuite) TestErrorResponseCarriesStableCode() {
	_, err := s.client.Call(s.ctx, TypeAcceptConnection, ConnectionRefPayload{ID: "nonexistent"})
	s.Require().Error(err)

	var serverErr *ServerError
	s.Require().ErrorAs(err, &serverErr)
	s.Equal(apierr.CodeConnectionNotFound, serverErr.Code)
}

func (s *WebsocketSuite) TestUnknownRequestType() {
	_, err := s.client.Call(s.ctx, "warp_drive", nil)
	s.Require().Error(err)

	var serverErr *ServerError
	s.Require().ErrorAs(err, &serverErr)
	s.Equal(apierr.CodeInvalidRequest, serverErr.Code)
}

func (s *WebsocketSuite) TestCallAfterClose() {
	_ = s.client.Close()

	_, err := s.client.Call(s.ctx, TypeGetConnections, nil)
	s.ErrorIs(err, ErrClosed)
}

func (s *WebsocketSuite) TestConcurrentCallsCorrelateByRequestID() {
	s.ids.Queue("conn-1", "conn-2", "conn-3")

	done := make(chan error, 3)
	for _, name := range []string{"Bob", "Carol", "Dave"} {
		go func(name string) {
			_, err := s.client.Call(s.ctx, TypeGenerateInvite, GenerateInvitePayload{FriendName: name})
			done <- err
		}(name)
	}

	for i := 0; i < 3; i++ {
		s.NoError(<-done)
	}

	data, err := s.client.Call(s.ctx, TypeGetConnections, nil)
	s.Require().NoError(err)

	var conns []model.Connection
	s.Require().NoError(json.Unmarshal(data, &conns))
	s.Len(conns, 3)
}
