// Package realtime pushes notifications to browsers over WebSocket.
package realtime

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait           = 10 * time.Second
	defaultPingInterval = 30 * time.Second
)

var ErrHubClosed = errors.New("realtime hub closed")

// Options configures a Hub.
type Options struct {
	// AllowedOrigins limits the Origin header of upgrade requests. Empty allows all.
	AllowedOrigins []string
	PingInterval   time.Duration
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(messageType int, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if messageType == websocket.PingMessage {
		return c.conn.WriteMessage(websocket.PingMessage, nil)
	}
	return c.conn.WriteJSON(payload)
}

// Hub tracks open connections per user.
type Hub struct {
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	clients map[int64]map[*client]struct{}
	closed  bool
}

// NewHub constructs a Hub.
func NewHub(opts Options, logger *slog.Logger) *Hub {
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	h := &Hub{
		pingInterval: opts.PingInterval,
		logger:       logger,
		clients:      make(map[int64]map[*client]struct{}),
	}
	allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if len(allowed) == 0 || origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}
	return h
}

// Serve upgrades the request and keeps the connection registered for userID
// until the peer disconnects or the hub is closed.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn}
	if !h.register(userID, c) {
		_ = conn.Close()
		return ErrHubClosed
	}
	defer h.unregister(userID, c)

	done := make(chan struct{})
	defer close(done)
	go h.keepalive(c, done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(2 * h.pingInterval))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * h.pingInterval))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Push writes payload as JSON to every connection of userID and returns the
// number of successful writes. Broken connections are dropped.
func (h *Hub) Push(userID int64, payload any) int {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	delivered := 0
	for _, c := range targets {
		if err := c.write(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("websocket push failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			h.unregister(userID, c)
			continue
		}
		delivered++
	}
	return delivered
}

// Connections returns the number of open connections of userID.
func (h *Hub) Connections(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	all := h.clients
	h.clients = make(map[int64]map[*client]struct{})
	h.mu.Unlock()

	for _, set := range all {
		for c := range set {
			c.mu.Lock()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			c.mu.Unlock()
			_ = c.conn.Close()
		}
	}
}

func (h *Hub) register(userID int64, c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[userID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(userID int64, c *client) {
	h.mu.Lock()
	if set, ok := h.clients[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

func (h *Hub) keepalive(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
