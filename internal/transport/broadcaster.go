// Package transport streams spectrum frames to external consumers over
// WebSocket. The broadcaster runs off the render loop; callers hand it a
// frame per tick and it decides what actually goes on the wire.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	applog "cascade/internal/log"
)

// Broadcaster fans spectrum frames out to connected WebSocket clients.
// Sends are rate limited so slow clients and the network never see more
// than one frame per minInterval, regardless of the analysis rate.
type Broadcaster struct {
	clients     map[*websocket.Conn]bool
	clientsMu   sync.Mutex
	upgrader    websocket.Upgrader
	server      *http.Server
	lastSend    time.Time
	minInterval time.Duration
}

// NewBroadcaster starts a WebSocket server on the given port serving frames
// at /frames. minInterval is the floor between consecutive broadcasts.
func NewBroadcaster(port string, minInterval time.Duration) *Broadcaster {
	b := &Broadcaster{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		minInterval: minInterval,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/frames", b.handleWebSocket)
	b.server = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		applog.Infof("Broadcaster: listening on port %s", port)
		if err := b.server.ListenAndServe(); err != http.ErrServerClosed {
			applog.Errorf("Broadcaster: server error: %v", err)
		}
	}()

	return b
}

// handleWebSocket upgrades a connection and registers the client. A reader
// goroutine watches for the close handshake and unregisters on any error.
func (b *Broadcaster) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Warnf("Broadcaster: upgrade failed: %v", err)
		return
	}

	b.clientsMu.Lock()
	b.clients[conn] = true
	total := len(b.clients)
	b.clientsMu.Unlock()
	applog.Infof("Broadcaster: client connected, total %d", total)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.clientsMu.Lock()
				delete(b.clients, conn)
				b.clientsMu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// Send broadcasts one spectrum frame as a JSON array. Frames arriving
// faster than minInterval are dropped, not queued; a frame is a snapshot,
// stale ones have no value. Never blocks on client I/O beyond the write
// buffer. Safe to call from the render loop every tick.
func (b *Broadcaster) Send(frame []float64) error {
	now := time.Now()
	if now.Sub(b.lastSend) < b.minInterval {
		return nil
	}
	b.lastSend = now

	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	b.clientsMu.Lock()
	for client := range b.clients {
		if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
			client.Close()
			delete(b.clients, client)
		}
	}
	b.clientsMu.Unlock()

	return nil
}

// Close disconnects all clients and shuts down the server.
func (b *Broadcaster) Close() error {
	b.clientsMu.Lock()
	for client := range b.clients {
		client.Close()
		delete(b.clients, client)
	}
	b.clientsMu.Unlock()

	return b.server.Close()
}
