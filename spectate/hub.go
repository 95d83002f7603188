// Package spectate streams the combat event journal to websocket clients.
package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/bossfight/event"
)

const (
	writeWait = 2 * time.Second
	// sendBuffer is how many messages a slow spectator may fall behind
	// before it starts missing events.
	sendBuffer = 256
)

type HubConfig struct {
	Logger *log.Logger
	// Backlog is how many recent events a new spectator receives first.
	Backlog int
}

func DefaultHubConfig() HubConfig {
	return HubConfig{Backlog: 64}
}

type subscriber struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.send)
	})
}

// Hub is an event.Sink that fans events out to every connected spectator.
// Publish never blocks: a spectator whose buffer is full drops the event.
type Hub struct {
	mu          sync.Mutex
	logger      *log.Logger
	upgrader    websocket.Upgrader
	subscribers map[uint64]*subscriber
	backlog     [][]byte
	limit       int
	nextID      atomic.Uint64
	dropped     atomic.Uint64
	closed      bool
}

func NewHub(cfg HubConfig) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	limit := cfg.Backlog
	if limit > sendBuffer {
		limit = sendBuffer
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subscribers: make(map[uint64]*subscriber),
		limit:       limit,
	}
}

func (h *Hub) Publish(e event.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.logger.Printf("spectate: marshal %s: %v", e.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.limit > 0 {
		h.backlog = append(h.backlog, data)
		if over := len(h.backlog) - h.limit; over > 0 {
			h.backlog = append(h.backlog[:0], h.backlog[over:]...)
		}
	}
	for _, sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// ServeHTTP upgrades the request and streams events until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("spectate: upgrade failed: %v", err)
		return
	}

	sub := &subscriber{id: h.nextID.Add(1), conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}
	for _, data := range h.backlog {
		sub.send <- data
	}
	h.subscribers[sub.id] = sub
	h.mu.Unlock()

	go h.read(sub)
	h.write(sub)
}

func (h *Hub) write(sub *subscriber) {
	defer sub.conn.Close()
	for data := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(sub)
			return
		}
	}
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// read discards client messages; its only job is noticing the disconnect.
func (h *Hub) read(sub *subscriber) {
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			h.remove(sub)
			return
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub.id)
	h.mu.Unlock()
	sub.close()
}

// Spectators is the number of connected clients.
func (h *Hub) Spectators() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Dropped counts events skipped because a spectator fell behind.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close disconnects every spectator. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
}
