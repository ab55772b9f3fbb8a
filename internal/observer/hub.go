// Package observer streams tick frames to websocket subscribers. The
// simulation goroutine publishes; each subscriber has its own writer
// goroutine and a bounded queue, and slow subscribers are dropped.
package observer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/skillsim/internal/sim"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn, queue int) *client {
	return &client{conn: conn, send: make(chan []byte, queue), done: make(chan struct{})}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// enqueue never blocks; false means the client is closed or too slow.
func (c *client) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Hub fans frames out to subscribers.
type Hub struct {
	queueSize    int
	writeTimeout time.Duration

	mu       sync.Mutex
	subs     map[*client]struct{}
	last     []byte
	lastTick uint64
}

// NewHub creates a hub with the given per-client queue size and write
// timeout.
func NewHub(queueSize int, writeTimeout time.Duration) *Hub {
	if queueSize <= 0 {
		queueSize = 64
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Hub{
		queueSize:    queueSize,
		writeTimeout: writeTimeout,
		subs:         make(map[*client]struct{}),
	}
}

// Publish encodes the frame once and hands it to every subscriber.
func (h *Hub) Publish(frame sim.TickFrame) error {
	b, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding tick frame %d: %w", frame.Tick, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = b
	h.lastTick = frame.Tick
	for c := range h.subs {
		if !c.enqueue(b) {
			slog.Debug("observer dropped slow subscriber", "tick", frame.Tick)
			c.close()
			delete(h.subs, c)
		}
	}
	return nil
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// LastTick returns the tick of the last published frame.
func (h *Hub) LastTick() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastTick
}

// add registers c and queues the latest frame so new subscribers do not
// wait for the next tick.
func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subs[c] = struct{}{}
	if h.last != nil {
		c.enqueue(h.last)
	}
}

// remove closes c under the hub lock so no Publish can race the close.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, c)
	c.close()
}

// CloseAll disconnects every subscriber.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.subs {
		c.close()
		delete(h.subs, c)
	}
}
