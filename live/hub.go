package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

// Event types
const (
	EventOrderCreated       = "order_created"
	EventOrderUpdate        = "order_update"
	EventNotificationUpdate = "notification_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the back-office websocket clients (admin, staff) that receive
// order and notification events.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string // conn -> role
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// Register adds a connection to the set with its role.
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = role
}

// Unregister releases a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastOrderCreated announces a freshly submitted order.
func (h *Hub) BroadcastOrderCreated(order models.Order) {
	h.broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderUpdate announces a status or read-flag change.
func (h *Hub) BroadcastOrderUpdate(order models.Order) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastNotificationUpdate pushes the recomputed badge counts.
func (h *Hub) BroadcastNotificationUpdate(data interface{}) {
	h.broadcast(Message{Event: EventNotificationUpdate, Data: data})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
		}
	}
}
