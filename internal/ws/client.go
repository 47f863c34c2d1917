package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pdlabs/pdgame/pkg/result"
)

// DefaultCallTimeout bounds each request when the caller's context
// carries no deadline
const DefaultCallTimeout = 10 * time.Second

// ErrClosed is returned for calls made after the client closes
var ErrClosed = errors.New("websocket client closed")

// ServerError is an error envelope returned by the server for a request
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Client is a request/response websocket client. Requests are correlated
// by request id; push events arrive on the Events channel.
type Client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	pending map[string]chan result.Result[json.RawMessage]
	closed  bool

	// writeMu serializes writers; the underlying connection supports
	// only one concurrent writer
	writeMu sync.Mutex

	events chan Envelope
	done   chan struct{}
}

// Dial connects to the websocket endpoint at url
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c := &Client{
		conn:    conn,
		pending: make(map[string]chan result.Result[json.RawMessage]),
		events:  make(chan Envelope, 64),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Events returns the channel of push events (envelopes with no request id)
func (c *Client) Events() <-chan Envelope {
	return c.events
}

// Call sends a request and waits for the correlated response. If ctx has
// no deadline, the default 10-second timeout applies. An error envelope
// from the server resolves to a ServerError.
func (c *Client) Call(ctx context.Context, requestType string, data any) (json.RawMessage, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCallTimeout)
		defer cancel()
	}

	env := Envelope{
		Type:      requestType,
		RequestID: uuid.NewString(),
	}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal request data: %w", err)
		}
		env.Data = payload
	}

	ch := make(chan result.Result[json.RawMessage], 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[env.RequestID] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, env.RequestID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(env)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	select {
	case res := <-ch:
		return res.Unpack()
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

// Close shuts the client down and fails any in-flight calls
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer func() {
		c.mu.Lock()
		for id, ch := range c.pending {
			ch <- result.Err[json.RawMessage](ErrClosed)
			delete(c.pending, id)
		}
		c.mu.Unlock()
		close(c.events)
	}()

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}

		if env.RequestID == "" {
			// Push event
			select {
			case c.events <- env:
			default:
				// Slow consumer, drop the event
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[env.RequestID]
		c.mu.Unlock()
		if !ok {
			continue
		}

		if env.Type == TypeError {
			var payload ErrorPayload
			_ = json.Unmarshal(env.Data, &payload)
			ch <- result.Err[json.RawMessage](&ServerError{Code: payload.Code, Message: payload.Message})
			continue
		}
		ch <- result.Ok(env.Data)
	}
}
