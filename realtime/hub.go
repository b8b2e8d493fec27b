package realtime

import (
	"context"
	"encoding/json"
	"log"
	"slices"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// conn is the part of a websocket connection the hub writes to.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans notifications out to browsers, one room per channel.
type Hub struct {
	channels []string
	mu       sync.Mutex
	rooms    map[string]map[conn]bool
}

func NewHub(channels ...string) *Hub {
	h := &Hub{channels: channels, rooms: map[string]map[conn]bool{}}
	for _, ch := range channels {
		h.rooms[ch] = map[conn]bool{}
	}
	return h
}

func (h *Hub) Allowed(channel string) bool {
	return slices.Contains(h.channels, channel)
}

func (h *Hub) join(channel string, c conn) {
	h.mu.Lock()
	h.rooms[channel][c] = true
	h.mu.Unlock()
}

func (h *Hub) leave(channel string, c conn) {
	h.mu.Lock()
	delete(h.rooms[channel], c)
	h.mu.Unlock()
}

// Count returns the number of browsers in a room.
func (h *Hub) Count(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[channel])
}

// Broadcast writes n to every browser in its room and drops the ones that
// fail.
func (h *Hub) Broadcast(_ context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("[realtime] encode notification: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[n.Channel] {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.Close()
			delete(h.rooms[n.Channel], c)
		}
	}
}

// Serve keeps c in the room for channel until the browser goes away. The
// route must have checked Allowed beforehand.
func (h *Hub) Serve(channel string, c *websocket.Conn) {
	h.join(channel, c)
	defer func() {
		h.leave(channel, c)
		c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
