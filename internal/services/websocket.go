package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID       uint
	UserType string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

// Hub maintains the set of active clients and delivers notifications
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.WithField("userId", client.ID).Debug("WebSocket client connected")

		case client := <-h.unregister:
			h.drop(client)
			log.WithField("userId", client.ID).Debug("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mutex.RLock()
			var stalled []*Client
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					stalled = append(stalled, client)
				}
			}
			h.mutex.RUnlock()
			for _, client := range stalled {
				h.drop(client)
			}
		}
	}
}

// drop removes a client and closes its Send channel under the write lock.
// Calling it twice for the same client is a no-op; the channel is only
// closed on the first removal.
func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// WebSocketMessage is the envelope for everything pushed over a socket.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		log.WithError(err).Error("Failed to marshal WebSocket message")
		return
	}
	h.broadcast <- payload
}

// SendToUser sends a message to a specific user's open connections.
func (h *Hub) SendToUser(userID uint, msgType string, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		log.WithError(err).Error("Failed to marshal WebSocket message")
		return
	}

	// A full Send buffer marks the client stalled. Removal waits until the
	// read lock is released so concurrent senders cannot race on the map or
	// close the channel twice.
	h.mutex.RLock()
	var stalled []*Client
	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- payload:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mutex.RUnlock()
	for _, client := range stalled {
		h.drop(client)
	}
}

// SendToUserType sends a message to all users of a specific type.
func (h *Hub) SendToUserType(userType string, msgType string, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		log.WithError(err).Error("Failed to marshal WebSocket message")
		return
	}

	h.mutex.RLock()
	var stalled []*Client
	for client := range h.clients {
		if client.UserType == userType {
			select {
			case client.Send <- payload:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mutex.RUnlock()
	for _, client := range stalled {
		h.drop(client)
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and attaches the client to the hub.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, userType string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("WebSocket upgrade failed")
		return
	}

	client := &Client{
		ID:       userID,
		UserType: userType,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings and closes are processed. The
// notification stream is one-way; inbound payloads are ignored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("WebSocket read error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.WithError(err).Debug("WebSocket write error")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
