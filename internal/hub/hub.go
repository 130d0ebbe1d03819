package hub

import (
	"encoding/json"
	"sync"

	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

// Hub owns the live connection set and the room subscription maps, and
// fans outbound events to clients. Delivery runs on a single dispatch
// goroutine, so for one room the emit order equals the order events were
// handed to the hub.
type Hub struct {
	clients    map[string]*Client            // connID -> client
	rooms      map[string]map[string]*Client // room -> connID -> client
	register   chan *Client
	unregister chan *Client
	outbound   chan *envelope
	mu         sync.RWMutex
}

// envelope is one routed emission: to one connection, one room, or all.
type envelope struct {
	connID  string // unicast target, "" for multicast
	room    string // multicast target, "" for broadcast-to-all
	exclude string // connID left out of a multicast
	data    []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan *envelope, 256),
	}
}

// Run dispatches registrations and outbound events. Call in its own
// goroutine before accepting connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.L().Debug().Str(log.FieldConnID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				for room, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, room)
					}
				}
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.L().Debug().Str(log.FieldConnID, client.ID).Msg("client unregistered")

		case env := <-h.outbound:
			h.deliver(env)
		}
	}
}

func (h *Hub) deliver(env *envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if env.connID != "" {
		if client, ok := h.clients[env.connID]; ok {
			h.push(client, env.data)
		}
		return
	}

	if env.room != "" {
		for connID, client := range h.rooms[env.room] {
			if connID == env.exclude {
				continue
			}
			h.push(client, env.data)
		}
		return
	}

	for connID, client := range h.clients {
		if connID == env.exclude {
			continue
		}
		h.push(client, env.data)
	}
}

func (h *Hub) push(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		// Slow consumer; drop the connection rather than block dispatch.
		go func() { h.unregister <- client }()
	}
}

// Register adds a client to the connection set.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and its room memberships.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe adds the connection to a room's multicast set.
func (h *Hub) Subscribe(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][connID] = client
}

// Unsubscribe removes the connection from a room's multicast set.
func (h *Hub) Unsubscribe(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Unicast sends an event to exactly one connection.
func (h *Hub) Unicast(connID string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.L().Error().Err(err).Msg("failed to marshal unicast event")
		return
	}
	h.outbound <- &envelope{connID: connID, data: data}
}

// ToRoom sends an event to every subscriber of a room, excluding one
// connection when exclude is non-empty.
func (h *Hub) ToRoom(room string, event interface{}, exclude string) {
	data, err := json.Marshal(event)
	if err != nil {
		log.L().Error().Err(err).Msg("failed to marshal room event")
		return
	}
	h.outbound <- &envelope{room: room, exclude: exclude, data: data}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.L().Error().Err(err).Msg("failed to marshal broadcast event")
		return
	}
	h.outbound <- &envelope{data: data}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
