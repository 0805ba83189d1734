package sse

import (
	"errors"
	"path"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/speechkit/logger"
)

// clientBuffer is the number of events queued per client before drops.
const clientBuffer = 64

// ErrClosed is returned when subscribing to a closed hub.
var ErrClosed = errors.New("sse: hub closed")

// Client is one subscription.
type Client struct {
	id      string
	topic   string
	events  chan Event
	dropped atomic.Int64
}

// ID returns the client's generated identifier.
func (c *Client) ID() string { return c.id }

// Topic returns the pattern the client subscribed with.
func (c *Client) Topic() string { return c.topic }

// Events is closed when the client is unsubscribed or the hub closes.
func (c *Client) Events() <-chan Event { return c.events }

// Dropped counts events discarded because the client fell behind.
func (c *Client) Dropped() int64 { return c.dropped.Load() }

func (c *Client) send(e Event) bool {
	select {
	case c.events <- e:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Hub routes published events to matching clients. It is safe for
// concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
	log     *logger.Logger
}

// NewHub creates an open hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log.WithComponent("sse"),
	}
}

// Subscribe registers a client for events whose key matches topic.
func (h *Hub) Subscribe(topic string) (*Client, error) {
	if _, err := path.Match(topic, ""); err != nil {
		return nil, err
	}
	c := &Client{id: uuid.NewString(), topic: topic, events: make(chan Event, clientBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	h.clients[c] = struct{}{}
	h.log.Debug("client subscribed", logger.Fields("client_id", c.id, "topic", topic, "clients", len(h.clients)))
	return c, nil
}

// Unsubscribe removes c and closes its channel. It is a no-op for unknown
// clients.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.events)
	h.log.Debug("client unsubscribed", logger.Fields("client_id", c.id, "dropped", c.Dropped()))
}

// Publish delivers e to every client whose topic matches key and returns
// the number of clients that accepted it.
func (h *Hub) Publish(key string, e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients {
		if ok, _ := path.Match(c.topic, key); !ok {
			continue
		}
		if c.send(e) {
			delivered++
		} else {
			h.log.Warn("client buffer full, dropping event", logger.Fields("client_id", c.id, "event", e.Type))
		}
	}
	return delivered
}

// Count returns the number of subscribed clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close unsubscribes every client. Later subscriptions fail with
// ErrClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.events)
		delete(h.clients, c)
	}
}
