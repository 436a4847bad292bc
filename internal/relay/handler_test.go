package relay_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/db"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/infra/repository"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/relay"
)

type testRelay struct {
	server *httptest.Server
	gdb    *gorm.DB
	hub    *relay.Hub
}

func setupRelay(t *testing.T) *testRelay {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// A single connection keeps :memory: one database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hub := relay.NewHub()
	t.Cleanup(hub.Close)

	handler := relay.NewHandler(
		hub,
		repository.NewMessageGormRepository(gdb),
		metrics.Registry("tsugo"),
		zerolog.Nop(),
	)

	r := gin.New()
	r.GET("/ws", handler.HandleConnect)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testRelay{server: server, gdb: gdb, hub: hub}
}

func (tr *testRelay) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(tr.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	data, err := json.Marshal(relay.Envelope{Event: event, Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) relay.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env relay.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env
}

// joinRoom sends CONNECT_ROOM and waits for the history reply so the caller
// knows the join has been processed.
func joinRoom(t *testing.T, conn *websocket.Conn, room string) []models.Message {
	t.Helper()
	sendEvent(t, conn, relay.EventConnectRoom, map[string]string{"room": room})

	env := readEnvelope(t, conn)
	if env.Event != relay.EventMessageHistory {
		t.Fatalf("event = %q, want %q", env.Event, relay.EventMessageHistory)
	}
	var history []models.Message
	if err := json.Unmarshal(env.Payload, &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	return history
}

func TestConnectRoomReplaysHistory(t *testing.T) {
	tr := setupRelay(t)

	seeded := models.Message{
		AppointmentID:    1,
		UserID:           5,
		Content:          "hello from before",
		MessageTimestamp: time.Now().UTC().Truncate(time.Second),
	}
	if err := tr.gdb.Create(&seeded).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	conn := tr.dial(t)
	history := joinRoom(t, conn, "1")

	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Content != seeded.Content || history[0].UserID != 5 {
		t.Fatalf("unexpected history entry: %+v", history[0])
	}
}

func TestMessagePersistsAndFansOut(t *testing.T) {
	tr := setupRelay(t)

	connA := tr.dial(t)
	connB := tr.dial(t)
	joinRoom(t, connA, "9")
	joinRoom(t, connB, "9")

	sent := map[string]any{
		"appointment": 9,
		"user":        2,
		"content":     "see you at the clinic",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}
	sendEvent(t, connA, relay.EventMessage, sent)

	for _, conn := range []*websocket.Conn{connA, connB} {
		env := readEnvelope(t, conn)
		if env.Event != relay.EventMessage {
			t.Fatalf("event = %q, want %q", env.Event, relay.EventMessage)
		}
		var got map[string]any
		if err := json.Unmarshal(env.Payload, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got["content"] != "see you at the clinic" {
			t.Fatalf("content = %v", got["content"])
		}
	}

	var count int64
	if err := tr.gdb.Model(&models.Message{}).
		Where("appointment_id = ?", 9).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("persisted %d messages, want 1", count)
	}
}

func TestMessageDoesNotLeakAcrossRooms(t *testing.T) {
	tr := setupRelay(t)

	inRoom := tr.dial(t)
	outside := tr.dial(t)
	joinRoom(t, inRoom, "3")
	joinRoom(t, outside, "4")

	sendEvent(t, inRoom, relay.EventMessage, map[string]any{
		"appointment": 3,
		"user":        1,
		"content":     "room three only",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})

	// Sender gets the broadcast back.
	env := readEnvelope(t, inRoom)
	if env.Event != relay.EventMessage {
		t.Fatalf("event = %q", env.Event)
	}

	outside.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := outside.ReadMessage(); err == nil {
		t.Fatal("socket in another room received the message")
	}
}

func TestVideoJoinExcludesSender(t *testing.T) {
	tr := setupRelay(t)

	caller := tr.dial(t)
	callee := tr.dial(t)
	joinRoom(t, caller, "7")
	joinRoom(t, callee, "7")

	sendEvent(t, caller, relay.EventVideoJoin, map[string]any{
		"room": "7",
		"addr": "10.0.0.1:3478",
	})

	env := readEnvelope(t, callee)
	if env.Event != relay.EventVideoJoin {
		t.Fatalf("event = %q, want %q", env.Event, relay.EventVideoJoin)
	}
	var p map[string]any
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p["addr"] != "10.0.0.1:3478" {
		t.Fatalf("payload not relayed verbatim: %v", p)
	}

	caller.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := caller.ReadMessage(); err == nil {
		t.Fatal("caller received its own signal")
	}
}

func TestDisconnectRoomStopsDelivery(t *testing.T) {
	tr := setupRelay(t)

	stayer := tr.dial(t)
	leaver := tr.dial(t)
	joinRoom(t, stayer, "5")
	joinRoom(t, leaver, "5")

	sendEvent(t, leaver, relay.EventDisconnectRoom, map[string]string{"room": "5"})

	// No ack for DISCONNECT_ROOM; poll membership instead.
	deadline := time.Now().Add(2 * time.Second)
	for tr.hub.RoomCount("5") != 1 {
		if time.Now().After(deadline) {
			t.Fatal("room membership never dropped to 1")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sendEvent(t, stayer, relay.EventMessage, map[string]any{
		"appointment": 5,
		"user":        1,
		"content":     "still here",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})

	env := readEnvelope(t, stayer)
	if env.Event != relay.EventMessage {
		t.Fatalf("event = %q", env.Event)
	}

	leaver.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := leaver.ReadMessage(); err == nil {
		t.Fatal("socket received a message after leaving the room")
	}
}
