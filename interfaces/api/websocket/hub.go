package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"faceattend/domain/services"
	"faceattend/pkg/logger"
)

// Hub fans check-in events out to every connected feed client. It implements
// services.CheckInNotifier; NotifyCheckIn never blocks the ledger.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	broadcast chan services.CheckInEvent
	done      chan struct{}
	once      sync.Once
}

type feedMessage struct {
	Type string                `json:"type"`
	Data services.CheckInEvent `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan services.CheckInEvent, 64),
		done:      make(chan struct{}),
	}
}

// Run starts the broadcast loop in its own goroutine.
func (h *Hub) Run() {
	go h.loop()
}

func (h *Hub) loop() {
	for {
		select {
		case event := <-h.broadcast:
			h.send(event)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	h.once.Do(func() {
		close(h.done)
	})
}

// NotifyCheckIn queues the event for broadcast. A full queue drops the event
// rather than stalling the caller.
func (h *Hub) NotifyCheckIn(event services.CheckInEvent) {
	select {
	case h.broadcast <- event:
	default:
		logger.WebSocket("event_dropped", "Broadcast queue full, event dropped", map[string]interface{}{
			"employee_id": event.EmployeeID.String(),
		})
	}
}

func (h *Hub) RegisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()

	logger.WebSocket("client_registered", "Feed client connected", map[string]interface{}{"clients": count})
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	logger.WebSocket("client_unregistered", "Feed client disconnected", map[string]interface{}{"clients": count})
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) send(event services.CheckInEvent) {
	payload, err := json.Marshal(feedMessage{Type: "check_in", Data: event})
	if err != nil {
		logger.WebSocketError("marshal_event", "Failed to encode check-in event", err, nil)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.WebSocketError("write_event", "Failed to write to feed client", err, nil)
			h.UnregisterClient(conn)
			conn.Close()
		}
	}
}
