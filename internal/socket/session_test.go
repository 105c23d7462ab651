package socket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialSession spins up a server that hands every connection to a Session
// and returns a connected client.
func dialSession(t *testing.T, st store.Store, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		go NewSession("test-session", conn, st, hub, zap.NewNop()).Run()
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func readServerMessage(t *testing.T, client *websocket.Conn) ServerMessage {
	t.Helper()
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ServerMessage
	require.NoError(t, client.ReadJSON(&msg))
	return msg
}

func TestSessionSubscribePushesInitialAndChangedSnapshots(t *testing.T) {
	mem := store.NewMemory()
	hub := NewHub(zap.NewNop())
	ctx := context.Background()

	_, err := mem.Create(ctx, "fleet", models.Vehicle{Plate: "70-1234"})
	require.NoError(t, err)

	client := dialSession(t, mem, hub)
	require.NoError(t, client.WriteJSON(ClientMessage{Action: "subscribe", Collection: "fleet"}))

	msg := readServerMessage(t, client)
	assert.Equal(t, "snapshot", msg.Event)
	assert.Equal(t, "fleet", msg.Collection)
	require.Len(t, msg.Documents, 1)
	assert.Equal(t, "70-1234", msg.Documents[0]["plate"])

	// a write after subscribing pushes the full array again
	_, err = mem.Create(ctx, "fleet", models.Vehicle{Plate: "71-5678"})
	require.NoError(t, err)

	msg = readServerMessage(t, client)
	assert.Equal(t, "snapshot", msg.Event)
	assert.Len(t, msg.Documents, 2)
}

func TestSessionModalCommands(t *testing.T) {
	mem := store.NewMemory()
	hub := NewHub(zap.NewNop())

	id, err := mem.Create(context.Background(), "fleet", models.Vehicle{Plate: "70-1234"})
	require.NoError(t, err)

	client := dialSession(t, mem, hub)

	require.NoError(t, client.WriteJSON(ClientMessage{Action: "open_edit", Entity: "fleet", ID: id}))
	msg := readServerMessage(t, client)
	assert.Equal(t, "modal", msg.Event)
	assert.Equal(t, "fleet", msg.Entity)
	require.NotNil(t, msg.Modal)
	assert.Equal(t, fleetview.ModalEdit, msg.Modal.Kind)
	assert.Equal(t, id, msg.Modal.TargetID)
	assert.Equal(t, "70-1234", msg.Modal.FormDefaults["plate"])

	require.NoError(t, client.WriteJSON(ClientMessage{Action: "close_modal", Entity: "fleet"}))
	msg = readServerMessage(t, client)
	require.NotNil(t, msg.Modal)
	assert.Equal(t, fleetview.ModalClosed, msg.Modal.Kind)
}

func TestSessionUnknownActionReportsError(t *testing.T) {
	mem := store.NewMemory()
	hub := NewHub(zap.NewNop())
	client := dialSession(t, mem, hub)

	require.NoError(t, client.WriteJSON(ClientMessage{Action: "explode"}))
	msg := readServerMessage(t, client)
	assert.Equal(t, "error", msg.Event)
	assert.Contains(t, msg.Message, "explode")
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())
	s := &Session{ID: "a"}

	hub.Register(s)
	assert.Equal(t, 1, hub.Len())
	hub.Unregister("a")
	assert.Equal(t, 0, hub.Len())
	hub.Unregister("a")
	assert.Equal(t, 0, hub.Len())
}
