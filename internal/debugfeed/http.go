// internal/debugfeed/http.go
package debugfeed

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"go-raycaster/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RegisterRoutes adds the feed endpoints to mux.
func (h *Hub) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.handleWS)
	mux.HandleFunc("/debug/world", h.handleWorld)
}

// Handler returns a mux serving only the feed endpoints.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := newClient(conn)
	if !h.register(c) {
		conn.Close()
		return
	}
	go c.writePump()
	c.readPump(h)
}

// /debug/world - the latest snapshot as JSON
func (h *Hub) handleWorld(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Latest()
	if !ok {
		http.Error(w, "no world running", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		logger.Log.WithError(err).Warn("failed to encode snapshot")
	}
}
