// Package notify pushes worksheet notifications to connected browsers over
// websocket and keeps the most recent ones for clients that poll.
package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"garment-backend/internal/logging"
	"garment-backend/internal/metrics"
	"garment-backend/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	recentLimit  = 50
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans notifications out to every websocket client
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex

	recent    []models.Notification
	recentMux sync.RWMutex

	broadcast chan models.Notification
	logger    *zap.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		recent:    make([]models.Notification, 0, recentLimit),
		broadcast: make(chan models.Notification, 64),
		logger:    logging.Named("notify"),
	}
}

// Notify queues n for delivery. It never blocks: when the queue is full the
// notification is only kept in the recent list.
func (h *Hub) Notify(n models.Notification) {
	h.recentMux.Lock()
	if len(h.recent) == recentLimit {
		copy(h.recent, h.recent[1:])
		h.recent = h.recent[:recentLimit-1]
	}
	h.recent = append(h.recent, n)
	h.recentMux.Unlock()

	select {
	case h.broadcast <- n:
	default:
		h.logger.Warn("notification queue full, dropping broadcast", zap.String("type", n.Type))
	}
}

// Recent returns the last notifications, oldest first
func (h *Hub) Recent() []models.Notification {
	h.recentMux.RLock()
	defer h.recentMux.RUnlock()
	return append([]models.Notification{}, h.recent...)
}

// Run delivers queued notifications until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case n := <-h.broadcast:
			h.send(n)
		}
	}
}

func (h *Hub) send(n models.Notification) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.WriteJSON(n); err != nil {
			h.logger.Debug("dropping websocket client", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.NotifyClients.Set(float64(len(h.clients)))
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	metrics.NotifyClients.Set(0)
}

// ClientCount returns the number of connected websocket clients
func (h *Hub) ClientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	metrics.NotifyClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			metrics.NotifyClients.Set(float64(len(h.clients)))
			h.clientsMux.Unlock()
			return
		}
	}
}
