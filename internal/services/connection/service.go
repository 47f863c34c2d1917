package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pdlabs/pdgame/internal/dependencies/clock"
	"github.com/pdlabs/pdgame/internal/dependencies/identity"
	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/storage"
)

// InviteParam is the query parameter carrying the connection id in
// shareable invite URLs
const InviteParam = "connection"

// Invite is the outcome of generating an invite link
type Invite struct {
	Connection model.Connection `json:"connection"`
	URL        string           `json:"url"`
}

// Service manages the connection list. The whole list is persisted as a
// JSON array under one fixed key; every mutation rewrites the full list.
type Service struct {
	store   storage.Store
	ids     identity.Generator
	clock   clock.Clock
	baseURL string
	logger  *slog.Logger
}

// New creates a new connection service. baseURL is the public address
// invite links point at.
func New(store storage.Store, ids identity.Generator, clk clock.Clock, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		ids:     ids,
		clock:   clk,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// GenerateInviteLink creates a pending outgoing connection and returns the
// shareable URL carrying its id
func (s *Service) GenerateInviteLink(ctx context.Context, friendName string) (Invite, error) {
	friendName = strings.TrimSpace(friendName)
	if friendName == "" {
		return Invite{}, model.ErrInvalidName
	}

	conn := model.Connection{
		ID:            model.ConnectionID(s.ids.NewID()),
		Name:          friendName,
		Status:        model.ConnectionPending,
		InitiatedByMe: true,
		CreatedAt:     s.clock.Now(),
	}

	conns, err := s.load(ctx)
	if err != nil {
		return Invite{}, err
	}

	if err := s.write(ctx, append(conns, conn)); err != nil {
		return Invite{}, err
	}

	s.logger.Info("invite generated", slog.String("connection_id", string(conn.ID)))
	return Invite{Connection: conn, URL: s.inviteURL(conn.ID)}, nil
}

// List returns all stored connections in insertion order
func (s *Service) List(ctx context.Context) ([]model.Connection, error) {
	return s.load(ctx)
}

// GetByID returns the connection with the given id
func (s *Service) GetByID(ctx context.Context, id model.ConnectionID) (model.Connection, error) {
	if strings.TrimSpace(string(id)) == "" {
		return model.Connection{}, model.ErrInvalidID
	}

	conns, err := s.load(ctx)
	if err != nil {
		return model.Connection{}, err
	}

	for _, c := range conns {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Connection{}, model.ErrConnectionNotFound
}

// ListByStatus returns connections with the given status, preserving
// insertion order
func (s *Service) ListByStatus(ctx context.Context, status model.ConnectionStatus) ([]model.Connection, error) {
	if !model.ValidConnectionStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	conns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Connection, 0, len(conns))
	for _, c := range conns {
		if c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Accept flips a pending connection to active
func (s *Service) Accept(ctx context.Context, id model.ConnectionID) (model.Connection, error) {
	if strings.TrimSpace(string(id)) == "" {
		return model.Connection{}, model.ErrInvalidID
	}

	conns, err := s.load(ctx)
	if err != nil {
		return model.Connection{}, err
	}

	for i := range conns {
		if conns[i].ID == id {
			conns[i].Status = model.ConnectionActive
			if err := s.write(ctx, conns); err != nil {
				return model.Connection{}, err
			}
			s.logger.Info("connection accepted", slog.String("connection_id", string(id)))
			return conns[i], nil
		}
	}
	return model.Connection{}, model.ErrConnectionNotFound
}

// RegisterIncoming records a connection created from a received invite.
// Duplicate ids are rejected without overwriting the existing record; the
// existence check is not atomic against concurrent writers.
func (s *Service) RegisterIncoming(ctx context.Context, id model.ConnectionID, friendName string) (model.Connection, error) {
	if strings.TrimSpace(string(id)) == "" {
		return model.Connection{}, model.ErrInvalidID
	}
	friendName = strings.TrimSpace(friendName)
	if friendName == "" {
		return model.Connection{}, model.ErrInvalidName
	}

	_, err := s.GetByID(ctx, id)
	if err == nil {
		return model.Connection{}, model.ErrConnectionExists
	}
	if !errors.Is(err, model.ErrConnectionNotFound) {
		return model.Connection{}, err
	}

	conn := model.Connection{
		ID:            id,
		Name:          friendName,
		Status:        model.ConnectionPending,
		InitiatedByMe: false,
		CreatedAt:     s.clock.Now(),
	}

	conns, err := s.load(ctx)
	if err != nil {
		return model.Connection{}, err
	}

	if err := s.write(ctx, append(conns, conn)); err != nil {
		return model.Connection{}, err
	}

	s.logger.Info("incoming connection registered", slog.String("connection_id", string(id)))
	return conn, nil
}

// Delete removes the connection with the given id
func (s *Service) Delete(ctx context.Context, id model.ConnectionID) error {
	if strings.TrimSpace(string(id)) == "" {
		return model.ErrInvalidID
	}

	conns, err := s.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]model.Connection, 0, len(conns))
	for _, c := range conns {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(conns) {
		return model.ErrConnectionNotFound
	}

	if err := s.write(ctx, remaining); err != nil {
		return err
	}

	s.logger.Info("connection deleted", slog.String("connection_id", string(id)))
	return nil
}

// InviteURL returns the shareable URL for an existing connection id
func (s *Service) InviteURL(id model.ConnectionID) string {
	return s.inviteURL(id)
}

func (s *Service) inviteURL(id model.ConnectionID) string {
	q := url.Values{}
	q.Set(InviteParam, string(id))
	return s.baseURL + "/?" + q.Encode()
}

// ParseInviteURL extracts the connection id from a shareable invite URL
func ParseInviteURL(raw string) (model.ConnectionID, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid invite url: %w", err)
	}
	id := u.Query().Get(InviteParam)
	if id == "" {
		return "", model.ErrInvalidID
	}
	return model.ConnectionID(id), nil
}

// load reads the stored list. An absent key is an empty list. Valid JSON
// that is not an array is treated as an empty list with a warning; entries
// that do not match the expected shape are dropped silently. Unparsable
// stored text is surfaced as corruption.
func (s *Service) load(ctx context.Context) ([]model.Connection, error) {
	data, err := s.store.Get(ctx, storage.KeyConnections)
	if err != nil {
		if errors.Is(err, model.ErrKeyNotFound) {
			return []model.Connection{}, nil
		}
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		var probe any
		if json.Unmarshal([]byte(data), &probe) == nil {
			s.logger.Warn("stored connections is not a list, treating as empty")
			return []model.Connection{}, nil
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDataCorruption, err)
	}

	conns := make([]model.Connection, 0, len(entries))
	for _, entry := range entries {
		var c model.Connection
		if err := json.Unmarshal(entry, &c); err != nil || !c.Valid() {
			s.logger.Warn("dropping malformed connection entry")
			continue
		}
		conns = append(conns, c)
	}
	return conns, nil
}

func (s *Service) write(ctx context.Context, conns []model.Connection) error {
	data, err := json.Marshal(conns)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.KeyConnections, string(data))
}
