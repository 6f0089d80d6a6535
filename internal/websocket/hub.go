package websocket

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"roomhub/pkg/logger"
)

// Hub fans newly created room messages out to the room's subscribers.
// Messages are written over HTTP; the hub only broadcasts.
type Hub struct {
	clients      map[*Client]bool
	Broadcast    chan []byte
	Register     chan *Client
	Unregister   chan *Client
	roomID       uint
	clientCount  atomic.Int64
	shutdown     chan bool
	lastActivity time.Time
}

func NewHub(roomID uint) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		Broadcast:    make(chan []byte),
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		roomID:       roomID,
		shutdown:     make(chan bool),
		lastActivity: time.Now(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.shutdown:
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.Register:
			h.clients[client] = true
			h.clientCount.Store(int64(len(h.clients)))
			h.lastActivity = time.Now()
			logger.Info("User %s subscribed to room %d", client.username, h.roomID)

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.clientCount.Store(int64(len(h.clients)))
				logger.Info("User %s left room %d", client.username, h.roomID)
			}

		case message := <-h.Broadcast:
			h.lastActivity = time.Now()
			h.broadcastToAll(message)
		}
	}
}

func (h *Hub) broadcastToAll(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.clientCount.Store(int64(len(h.clients)))
}

func (h *Hub) SubscriberCount() int {
	return int(h.clientCount.Load())
}

func (h *Hub) ShutdownHub() {
	select {
	case h.shutdown <- true:
	default:
	}
}

// Manager owns one hub per room with live subscribers.
type Manager struct {
	hubs  map[uint]*Hub
	mutex sync.Mutex
}

func NewManager() *Manager {
	manager := &Manager{
		hubs: make(map[uint]*Hub),
	}

	go manager.cleanupUnusedHubs()
	return manager
}

func (m *Manager) GetHubForRoom(roomID uint) *Hub {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	hub, exists := m.hubs[roomID]
	if !exists {
		hub = NewHub(roomID)
		m.hubs[roomID] = hub
		go hub.Run()
	}
	return hub
}

// Publish pushes an event to the room's subscribers, if any. Rooms nobody
// is watching have no hub and the event is dropped.
func (m *Manager) Publish(roomID uint, event interface{}) {
	m.mutex.Lock()
	hub, exists := m.hubs[roomID]
	m.mutex.Unlock()
	if !exists {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Error marshaling event for room %d: %v", roomID, err)
		return
	}
	hub.Broadcast <- data
}

func (m *Manager) cleanupUnusedHubs() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mutex.Lock()
		for roomID, hub := range m.hubs {
			if hub.SubscriberCount() == 0 {
				hub.ShutdownHub()
				delete(m.hubs, roomID)
				logger.Debug("Cleaned up unused hub for room %d", roomID)
			}
		}
		m.mutex.Unlock()
	}
}
