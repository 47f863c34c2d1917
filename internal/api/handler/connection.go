package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/pdlabs/pdgame/internal/api/apierr"
	"github.com/pdlabs/pdgame/internal/api/request"
	"github.com/pdlabs/pdgame/internal/api/response"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
)

// qrSize is the generated QR code edge length in pixels, mobile-friendly
const qrSize = 320

// ConnectionHandler handles connection list endpoints
type ConnectionHandler struct {
	connections *connection.Service
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(connections *connection.Service) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// Invite handles POST /api/v1/connections/invite
func (h *ConnectionHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	inv, err := h.connections.GenerateInviteLink(r.Context(), req.FriendName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.InviteFromModel(inv))
}

// List handles GET /api/v1/connections, optionally filtered by ?status=
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var (
		conns []model.Connection
		err   error
	)
	if status == "" {
		conns, err = h.connections.List(r.Context())
	} else {
		conns, err = h.connections.ListByStatus(r.Context(), model.ConnectionStatus(status))
	}
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConnectionListFromModel(conns))
}

// Get handles GET /api/v1/connections/{id}
func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	conn, err := h.connections.GetByID(r.Context(), model.ConnectionID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConnectionFromModel(conn))
}

// QR handles GET /api/v1/connections/{id}/qr, returning the invite URL as
// a PNG QR code
func (h *ConnectionHandler) QR(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	conn, err := h.connections.GetByID(r.Context(), model.ConnectionID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	png, err := qrcode.Encode(h.connections.InviteURL(conn.ID), qrcode.Medium, qrSize)
	if err != nil {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// Accept handles POST /api/v1/connections/{id}/accept
func (h *ConnectionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	conn, err := h.connections.Accept(r.Context(), model.ConnectionID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConnectionFromModel(conn))
}

// RegisterIncoming handles POST /api/v1/connections/incoming
func (h *ConnectionHandler) RegisterIncoming(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterIncomingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id := model.ConnectionID(req.ID)
	if req.InviteURL != "" {
		parsed, err := connection.ParseInviteURL(req.InviteURL)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		id = parsed
	}

	conn, err := h.connections.RegisterIncoming(r.Context(), id, req.FriendName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ConnectionFromModel(conn))
}

// Delete handles DELETE /api/v1/connections/{id}
func (h *ConnectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.connections.Delete(r.Context(), model.ConnectionID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
