// internal/debugfeed/hub.go
package debugfeed

import (
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"go-raycaster/internal/config"
	"go-raycaster/internal/world"
	"go-raycaster/pkg/logger"
)

// Hub fans world snapshots out to websocket observers. Publish is called
// from the simulation goroutine; everything else runs on HTTP goroutines.
type Hub struct {
	mu       deadlock.RWMutex
	clients  map[*client]struct{}
	latest   world.Snapshot
	frame    []byte
	has      bool
	lastSent time.Time
	interval time.Duration
	closed   bool

	now func() time.Time
	log *logrus.Entry
}

// NewHub creates a hub that sends at most one frame per interval. A zero
// interval uses config.DebugFeedInterval.
func NewHub(interval time.Duration) *Hub {
	if interval <= 0 {
		interval = config.DebugFeedInterval * time.Millisecond
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		interval: interval,
		now:      time.Now,
		log:      logger.For("debugfeed"),
	}
}

// Due reports whether the next Publish would be sent. Callers use it to
// skip building snapshots nobody will see.
func (h *Hub) Due() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.closed && (!h.has || h.now().Sub(h.lastSent) >= h.interval)
}

// Publish encodes s and queues it for every client. It never blocks: a
// client whose queue is full misses the frame. It returns false when the
// interval has not elapsed yet.
func (h *Hub) Publish(s world.Snapshot) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	now := h.now()
	if h.has && now.Sub(h.lastSent) < h.interval {
		return false
	}
	frame, err := msgpack.Marshal(&s)
	if err != nil {
		h.log.WithError(err).Error("failed to encode snapshot")
		return false
	}
	h.latest, h.frame, h.has, h.lastSent = s, frame, true, now

	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			c.dropped++
		}
	}
	return true
}

// Latest returns the last published snapshot.
func (h *Hub) Latest() (world.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.has
}

// Clients returns the number of connected observers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every observer and refuses further frames.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// register adds c and hands it the latest frame.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.has {
		c.send <- h.frame
	}
	h.log.WithField("clients", len(h.clients)).Info("observer connected")
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.WithFields(logrus.Fields{
		"clients": len(h.clients),
		"dropped": c.dropped,
	}).Info("observer disconnected")
}
