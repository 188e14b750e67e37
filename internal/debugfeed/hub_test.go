package debugfeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"go-raycaster/internal/world"
	"go-raycaster/pkg/logger"
)

func init() {
	logger.Silence()
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestHub() (*Hub, *clock) {
	c := &clock{t: time.Unix(1000, 0)}
	h := NewHub(100 * time.Millisecond)
	h.now = c.now
	return h, c
}

func snapshot(tick uint64) world.Snapshot {
	return world.Snapshot{
		Level: "e1m1",
		Tick:  tick,
		Player: world.PlayerSnapshot{
			X:      96,
			Y:      160,
			Health: 100,
		},
		Enemies: []world.EnemySnapshot{{ID: 2, Def: "guard", State: "patrol", Health: 30}},
	}
}

func TestPublishIsThrottled(t *testing.T) {
	h, clk := newTestHub()
	if !h.Due() {
		t.Fatal("a fresh hub should be due")
	}
	tests := []struct {
		name    string
		advance time.Duration
		want    bool
	}{
		{"first frame", 0, true},
		{"same instant", 0, false},
		{"too early", 99 * time.Millisecond, false},
		{"interval elapsed", time.Millisecond, true},
		{"next interval", 100 * time.Millisecond, true},
	}
	for i, tt := range tests {
		clk.advance(tt.advance)
		if got := h.Publish(snapshot(uint64(i))); got != tt.want {
			t.Errorf("%s: Publish = %v, want %v", tt.name, got, tt.want)
		}
	}
	if s, ok := h.Latest(); !ok || s.Tick != 4 {
		t.Errorf("Latest = %d, %v; want tick 4", s.Tick, ok)
	}

	h.Close()
	h.Close()
	clk.advance(time.Second)
	if h.Due() || h.Publish(snapshot(9)) {
		t.Error("a closed hub must refuse frames")
	}
}

func TestWorldEndpoint(t *testing.T) {
	h, _ := newTestHub()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/world")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status before any frame = %d", resp.StatusCode)
	}

	h.Publish(snapshot(7))
	resp, err = http.Get(srv.URL + "/debug/world")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got world.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Tick != 7 || got.Level != "e1m1" || len(got.Enemies) != 1 {
		t.Errorf("decoded %+v", got)
	}
}

func TestWebsocketStreamsMsgpack(t *testing.T) {
	h, clk := newTestHub()
	h.Publish(snapshot(1))

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	read := func() world.Snapshot {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if kind != websocket.BinaryMessage {
			t.Fatalf("message type = %d, want binary", kind)
		}
		var s world.Snapshot
		if err := msgpack.Unmarshal(data, &s); err != nil {
			t.Fatal(err)
		}
		return s
	}

	if s := read(); s.Tick != 1 {
		t.Fatalf("greeting frame tick = %d, want 1", s.Tick)
	}

	clk.advance(time.Second)
	h.Publish(snapshot(2))
	s := read()
	if s.Tick != 2 || s.Player.Health != 100 || s.Enemies[0].State != "patrol" {
		t.Errorf("decoded %+v", s)
	}
	if h.Clients() != 1 {
		t.Errorf("Clients = %d, want 1", h.Clients())
	}

	h.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close with the hub")
	}
}
