package room

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message types relayed by a hub.
const (
	MessageChat  = "chat"
	MessageJoin  = "join"
	MessageLeave = "leave"
)

// Message is one chat or presence event.
type Message struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans chat messages out to every client connected to one room.
type Hub struct {
	roomID string
	log    *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	closed  bool
}

// NewHub creates a hub for roomID.
func NewHub(roomID string, log *zap.Logger) *Hub {
	return &Hub{
		roomID:  roomID,
		log:     log.With(zap.String("room_id", roomID)),
		clients: make(map[*Client]bool),
	}
}

// Register adds a client and announces it to the room. It returns false if
// the hub has been closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = true
	h.mu.Unlock()

	h.log.Debug("client joined", zap.String("name", c.name))
	h.announce(MessageJoin, c.name)
	return true
}

// Unregister removes a client, closes it and announces its departure.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.Close()
	h.log.Debug("client left", zap.String("name", c.name))
	h.announce(MessageLeave, c.name)
}

// Send stamps a chat message from sender and relays it to every client.
func (h *Hub) Send(sender, content string) {
	h.broadcast(Message{
		Type:      MessageChat,
		ID:        uuid.NewString(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Participants lists connected clients, host first.
func (h *Hub) Participants() []Participant {
	h.mu.RLock()
	out := make([]Participant, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, Participant{ID: c.id, Name: c.name, Role: c.role, IsHost: c.role == RoleHost})
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsHost != out[j].IsHost {
			return out[i].IsHost
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Close disconnects every client. A closed hub accepts no new clients.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()

	for c := range clients {
		c.Close()
	}
}

func (h *Hub) announce(typ, name string) {
	h.broadcast(Message{Type: typ, ID: uuid.NewString(), Sender: name, Timestamp: time.Now()})
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to marshal room message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.IsClosed() {
			_ = c.SendMessage(data)
		}
	}
}
