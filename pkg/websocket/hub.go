package websocket

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub tracks connected clients and the per-ride rooms they have joined.
// A room exists only while at least one client is in it.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	relay      chan *outbound
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	RideID    string                 `json:"ride_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// outbound is a message bound for a room, optionally skipping its sender.
type outbound struct {
	roomID  string
	message Message
	exclude *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		relay:      make(chan *outbound, 64),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case out := <-h.relay:
			h.sendToRoom(out.roomID, out.message, out.exclude)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	welcome := Message{
		Type:      "connected",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"connection_id": client.ConnectionID,
		},
	}

	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}
	}
}

func (h *Hub) sendToRoom(roomID string, message Message, exclude *Client) {
	// Write lock: slow clients are evicted from the maps while delivering.
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := message.encode()
	for client := range room {
		if client == exclude {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow client; drop it rather than block the room.
			close(client.send)
			delete(h.clients, client)
			delete(room, client)
		}
	}

	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := message.encode()
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

// JoinRide adds the client to the room keyed by the ride identifier.
func (h *Hub) JoinRide(client *Client, rideID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.joinRoom(client, rideRoom(rideID))
}

func (h *Hub) LeaveRide(client *Client, rideID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	roomID := rideRoom(rideID)
	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// BroadcastToRide relays a message to every member of the ride room except the
// sender. Used both by clients relaying chat and by the HTTP layer announcing
// ride events.
func (h *Hub) BroadcastToRide(rideID string, message Message, exclude *Client) {
	h.relay <- &outbound{
		roomID:  rideRoom(rideID),
		message: message,
		exclude: exclude,
	}
}

func (h *Hub) RoomSize(rideID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms[rideRoom(rideID)])
}

func rideRoom(rideID string) string {
	return "ride_" + rideID
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
