package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testBroadcaster builds a Broadcaster whose handler is served by httptest
// instead of its own listener, so tests never bind a real port.
func testBroadcaster(minInterval time.Duration) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		minInterval: minInterval,
	}
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		b.clientsMu.Lock()
		n := len(b.clients)
		b.clientsMu.Unlock()
		if n == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d", want)
}

func TestBroadcastDeliversFrame(t *testing.T) {
	b := testBroadcaster(0)
	server := httptest.NewServer(http.HandlerFunc(b.handleWebSocket))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()
	waitForClients(t, b, 1)

	frame := []float64{0, 0.25, 0.5, 1}
	if err := b.Send(frame); err != nil {
		t.Fatalf("Send: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var got []float64
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("payload is not a JSON array: %v", err)
	}
	if len(got) != len(frame) {
		t.Fatalf("got %d values, want %d", len(got), len(frame))
	}
	for i := range frame {
		if got[i] != frame[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], frame[i])
		}
	}
}

func TestRateLimitDropsFastFrames(t *testing.T) {
	b := testBroadcaster(time.Hour)
	server := httptest.NewServer(http.HandlerFunc(b.handleWebSocket))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()
	waitForClients(t, b, 1)

	if err := b.Send([]float64{1}); err != nil {
		t.Fatalf("first Send: %v", err)
	}
	if err := b.Send([]float64{2}); err != nil {
		t.Fatalf("second Send: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("first frame not delivered: %v", err)
	}

	// The second frame fell inside the interval and must not arrive.
	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("rate-limited frame was delivered")
	}
}

func TestSendWithNoClients(t *testing.T) {
	b := testBroadcaster(0)
	if err := b.Send([]float64{0.5}); err != nil {
		t.Fatalf("Send with no clients: %v", err)
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	b := testBroadcaster(0)
	server := httptest.NewServer(http.HandlerFunc(b.handleWebSocket))
	defer server.Close()

	conn := dial(t, server)
	waitForClients(t, b, 1)
	conn.Close()
	waitForClients(t, b, 0)
}
