// Package client is the presentation side of the bridge: it lists applications over
// HTTP and sends launches and window controls over the WebSocket bridge.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/models"
)

var (
	// ErrUnauthorized indicates the host rejected the token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConnected indicates a bridge call before Connect or after Close.
	ErrNotConnected = errors.New("bridge not connected")
	// ErrClosed indicates the bridge went away before the reply arrived.
	ErrClosed = errors.New("bridge closed")
)

const writeTimeout = 10 * time.Second

// Client talks to one host.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *zap.Logger

	writeMu sync.Mutex
	mu      sync.Mutex
	ws      *websocket.Conn
	pending map[string]func(models.BridgeMessage)
	done    chan struct{}
}

// New creates a Client for the host at baseURL.
func New(baseURL, token string, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid host url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid host url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger.Named("client"),
		pending: make(map[string]func(models.BridgeMessage)),
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

func (c *Client) authHeader() http.Header {
	h := http.Header{}
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
	return h
}

// ListApplications fetches the installed applications from the host.
func (c *Client) ListApplications(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/apps"), nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.authHeader()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	var body struct {
		Error string   `json:"error"`
		Apps  []string `json:"apps"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("list applications: %s: %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error == "" {
			body.Error = resp.Status
		}
		return nil, errors.New(body.Error)
	}

	if body.Apps == nil {
		body.Apps = []string{}
	}
	return body.Apps, nil
}

// Connect opens the bridge WebSocket.
func (c *Client) Connect(ctx context.Context) error {
	u := *c.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path += "/api/bridge"

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, resp, err := dialer.DialContext(ctx, u.String(), c.authHeader())
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return fmt.Errorf("connect bridge: %w", err)
	}

	c.mu.Lock()
	if c.ws != nil {
		c.mu.Unlock()
		_ = ws.Close()
		return errors.New("bridge already connected")
	}
	c.ws = ws
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.readLoop(ws, done)
	return nil
}

func (c *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer func() { _ = ws.Close() }()

	for {
		var msg models.BridgeMessage
		if err := ws.ReadJSON(&msg); err != nil {
			c.failPending(err)
			return
		}

		c.mu.Lock()
		deliver, ok := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.mu.Unlock()

		if !ok {
			c.logger.Debug("unsolicited bridge message", zap.String("type", msg.Type), zap.String("id", msg.ID))
			continue
		}
		deliver(msg)
	}
}

func (c *Client) failPending(cause error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]func(models.BridgeMessage))
	c.ws = nil
	c.mu.Unlock()

	if len(pending) > 0 {
		c.logger.Warn("bridge closed with pending requests", zap.Int("pending", len(pending)), zap.Error(cause))
	}
	for id, deliver := range pending {
		deliver(models.BridgeMessage{Type: models.BridgeError, ID: id, Error: ErrClosed.Error()})
	}
}

// send registers deliver for msg.ID and writes msg.
func (c *Client) send(msg models.BridgeMessage, deliver func(models.BridgeMessage)) error {
	c.mu.Lock()
	ws := c.ws
	if ws == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	c.pending[msg.ID] = deliver
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := ws.WriteJSON(msg)
	c.writeMu.Unlock()

	if err != nil {
		c.mu.Lock()
		delete(c.pending, msg.ID)
		c.mu.Unlock()
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// Launch asks the host to open name. The returned channel receives exactly one
// response, when the host finished or refused the launch or the bridge went away.
func (c *Client) Launch(name string) (<-chan models.LaunchResponse, error) {
	id := uuid.NewString()
	out := make(chan models.LaunchResponse, 1)

	err := c.send(models.BridgeMessage{Type: models.BridgeLaunchApp, ID: id, App: name}, func(reply models.BridgeMessage) {
		out <- models.LaunchResponse{ID: id, Success: reply.Success, Error: reply.Error}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Control sends a window-control action and waits for the host to apply it.
func (c *Client) Control(ctx context.Context, action string) error {
	id := uuid.NewString()
	replies := make(chan models.BridgeMessage, 1)

	err := c.send(models.BridgeMessage{Type: models.BridgeWindowControl, ID: id, Action: action}, func(reply models.BridgeMessage) {
		replies <- reply
	})
	if err != nil {
		return err
	}

	select {
	case reply := <-replies:
		if !reply.Success {
			return errors.New(reply.Error)
		}
		return nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return ctx.Err()
	}
}

// Close closes the bridge and waits for the reader to stop.
func (c *Client) Close() error {
	c.mu.Lock()
	ws := c.ws
	done := c.done
	c.mu.Unlock()

	if ws == nil {
		return nil
	}

	c.writeMu.Lock()
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := ws.Close()
	<-done
	return err
}
