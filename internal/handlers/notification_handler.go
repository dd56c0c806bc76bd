package handlers

import (
	"net/http"

	"garment-backend/internal/notify"
	"garment-backend/pkg/utils"
)

type NotificationHandler struct {
	Hub *notify.Hub
}

func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{Hub: hub}
}

// Recent is the polling fallback for clients without websocket
func (h *NotificationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, http.StatusOK, h.Hub.Recent(), "")
}

func (h *NotificationHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	h.Hub.HandleWebSocket(w, r)
}
