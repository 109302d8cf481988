package notification

import (
	"sync"
	"time"

	"parvarish/internal/domain"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub tracks open event streams per account. One account may hold several
// connections (one per browser tab).
type Hub struct {
	clients map[string]map[*client]struct{}
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
	}
}

// AccountKey namespaces ids by role; parents and daycares are stored in
// separate tables.
func AccountKey(role domain.UserRole, id string) string {
	return string(role) + ":" + id
}

func (h *Hub) Register(key string, conn *websocket.Conn) *client {
	c := &client{conn: conn}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[key]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[key] = set
	}
	set[c] = struct{}{}
	return c
}

func (h *Hub) Unregister(key string, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[key]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		_ = c.conn.Close()
		delete(set, c)
	}
	if len(set) == 0 {
		delete(h.clients, key)
	}
}

// SendTo writes message to every connection of key and returns how many
// received it. Connections that fail are dropped.
func (h *Hub) SendTo(key string, message any) int {
	h.mutex.RLock()
	targets := make([]*client, 0, len(h.clients[key]))
	for c := range h.clients[key] {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.writeJSON(message); err != nil {
			h.Unregister(key, c)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) IsOnline(key string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients[key]) > 0
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for key, set := range h.clients {
		for c := range set {
			_ = c.conn.Close()
		}
		delete(h.clients, key)
	}
}
