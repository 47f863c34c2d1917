package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// client is one server-side websocket connection
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Handler serves the websocket endpoint and executes connection
// operations on behalf of connected clients
type Handler struct {
	hub         *Hub
	connections *connection.Service
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(hub *Hub, connections *connection.Service, logger *slog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		connections: connections,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the connection and starts the read/write pumps
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.hub.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Handler) readPump(c *client) {
	defer func() {
		h.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", slog.String("error", err.Error()))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			h.reply(c, NewEvent(TypeError, ErrorPayload{
				Code:    apierr.CodeInvalidRequest,
				Message: "invalid message envelope",
			}))
			continue
		}

		h.handleRequest(c, env)
	}
}

func (h *Handler) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleRequest dispatches one request envelope. The caller gets a
// response echoing its request id; state changes are additionally pushed
// to all clients as events.
func (h *Handler) handleRequest(c *client, env Envelope) {
	ctx := context.Background()

	switch env.Type {
	case TypeGetConnections:
		conns, err := h.connections.List(ctx)
		if err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		h.reply(c, NewResponse(TypeConnectionsList, env.RequestID, conns))

	case TypeGenerateInvite:
		var payload GenerateInvitePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.replyError(c, env.RequestID, model.ErrInvalidName)
			return
		}
		inv, err := h.connections.GenerateInviteLink(ctx, payload.FriendName)
		if err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		h.reply(c, NewResponse(TypeConnectionCreated, env.RequestID, inv))
		h.hub.Broadcast(NewEvent(TypeConnectionCreated, inv.Connection))

	case TypeAcceptConnection:
		var payload ConnectionRefPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.replyError(c, env.RequestID, model.ErrInvalidID)
			return
		}
		conn, err := h.connections.Accept(ctx, model.ConnectionID(payload.ID))
		if err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		h.reply(c, NewResponse(TypeStatusUpdated, env.RequestID, conn))
		h.hub.Broadcast(NewEvent(TypeStatusUpdated, conn))

	case TypeRegisterIncoming:
		var payload RegisterIncomingPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.replyError(c, env.RequestID, model.ErrInvalidID)
			return
		}
		conn, err := h.connections.RegisterIncoming(ctx, model.ConnectionID(payload.ID), payload.FriendName)
		if err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		h.reply(c, NewResponse(TypeConnectionCreated, env.RequestID, conn))
		h.hub.Broadcast(NewEvent(TypeConnectionCreated, conn))

	case TypeDeleteConnection:
		var payload ConnectionRefPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.replyError(c, env.RequestID, model.ErrInvalidID)
			return
		}
		if err := h.connections.Delete(ctx, model.ConnectionID(payload.ID)); err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		conns, err := h.connections.List(ctx)
		if err != nil {
			h.replyError(c, env.RequestID, err)
			return
		}
		h.reply(c, NewResponse(TypeConnectionsList, env.RequestID, conns))
		h.hub.Broadcast(NewEvent(TypeConnectionsList, conns))

	default:
		h.reply(c, NewResponse(TypeError, env.RequestID, ErrorPayload{
			Code:    apierr.CodeInvalidRequest,
			Message: "unknown request type: " + env.Type,
		}))
	}
}

func (h *Handler) reply(c *client, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("failed to marshal reply", slog.String("error", err.Error()))
		return
	}
	select {
	case c.send <- data:
	default:
		h.logger.Warn("dropping reply, client send buffer full")
	}
}

func (h *Handler) replyError(c *client, requestID string, err error) {
	h.reply(c, NewResponse(TypeError, requestID, ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	}))
}

// errorCode maps service errors to the same stable codes the HTTP API uses
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidName):
		return apierr.CodeInvalidName
	case errors.Is(err, model.ErrInvalidID):
		return apierr.CodeInvalidID
	case errors.Is(err, model.ErrInvalidStatus):
		return apierr.CodeInvalidStatus
	case errors.Is(err, model.ErrConnectionNotFound):
		return apierr.CodeConnectionNotFound
	case errors.Is(err, model.ErrConnectionExists):
		return apierr.CodeConnectionExists
	case errors.Is(err, model.ErrDataCorruption):
		return apierr.CodeDataCorruption
	default:
		return apierr.CodeStorageError
	}
}
