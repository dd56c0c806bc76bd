package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"garment-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastsToClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Notify(models.Notification{
		Type:    models.NotificationSaved,
		Level:   "success",
		Date:    "2024-01-15",
		Message: "saved",
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, models.NotificationSaved, got.Type)
	assert.Equal(t, "2024-01-15", got.Date)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_RecentIsBounded(t *testing.T) {
	hub := NewHub()
	for i := 0; i < recentLimit+10; i++ {
		hub.Notify(models.Notification{Type: models.NotificationPhase, Message: fmt.Sprintf("n%d", i)})
	}

	recent := hub.Recent()
	require.Len(t, recent, recentLimit)
	assert.Equal(t, "n10", recent[0].Message)
	assert.Equal(t, fmt.Sprintf("n%d", recentLimit+9), recent[len(recent)-1].Message)
}
