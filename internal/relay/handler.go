package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/message"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// Event names mirror the ones the frontend already emits.
const (
	EventMessage        = "message"
	EventMessageHistory = "message-history"
	EventConnectRoom    = "CONNECT_ROOM"
	EventDisconnectRoom = "DISCONNECT_ROOM"
	EventVideoJoin      = "video-join"
)

// Envelope frames every payload on the wire in both directions.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type roomPayload struct {
	Room string `json:"room"`
}

// chatPayload is the inbound chat message shape; the raw payload is
// re-broadcast untouched after persistence.
type chatPayload struct {
	Appointment uint      `json:"appointment"`
	User        uint      `json:"user"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Same open policy as the HTTP CORS layer.
	},
}

// Handler upgrades HTTP connections and routes relay events. Chat messages
// are persisted through the message repository before fan-out.
type Handler struct {
	hub      *Hub
	messages domain.Repository
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewHandler(
	hub *Hub,
	messages domain.Repository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		hub:      hub,
		messages: messages,
		metrics:  m,
		log:      log.With().Str("component", "relay").Logger(),
	}
}

// HandleConnect upgrades the connection, registers the client and starts the
// read/write pumps.
func (h *Handler) HandleConnect(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	h.log.Debug().Str("client", client.ID).Msg("socket connected")

	go h.writePump(client, ws)
	go h.readPump(client, ws)
}

func (h *Handler) readPump(client *Client, ws *websocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		ws.Close()
		h.log.Debug().Str("client", client.ID).Msg("socket disconnected")
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue // Ignore malformed frames.
		}

		h.handleEvent(client, env)
	}
}

func (h *Handler) writePump(client *Client, ws *websocket.Conn) {
	defer ws.Close()

	for data := range client.Send {
		if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (h *Handler) handleEvent(client *Client, env Envelope) {
	h.metrics.RelayEvents.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case EventConnectRoom:
		h.onConnectRoom(client, env.Payload)
	case EventDisconnectRoom:
		h.onDisconnectRoom(client, env.Payload)
	case EventMessage:
		h.onMessage(env.Payload)
	case EventVideoJoin:
		h.onVideoJoin(client, env.Payload)
	}
}

// onConnectRoom joins the named room and pushes the room's full message
// history back to the requesting socket only.
func (h *Handler) onConnectRoom(client *Client, payload json.RawMessage) {
	var p roomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Room == "" {
		return
	}

	h.hub.Join(client, p.Room)

	appointmentID, err := strconv.ParseUint(p.Room, 10, 64)
	if err != nil {
		return
	}

	history, err := h.messages.ListByAppointment(context.Background(), uint(appointmentID))
	if err != nil {
		h.log.Error().Err(err).Str("room", p.Room).Msg("failed to load message history")
		h.metrics.Errors.WithLabelValues("relay").Inc()
		return
	}

	h.sendTo(client, EventMessageHistory, history)
}

func (h *Handler) onDisconnectRoom(client *Client, payload json.RawMessage) {
	var p roomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Room == "" {
		return
	}
	h.hub.Leave(client, p.Room)
}

// onMessage persists the chat message, then re-broadcasts the raw payload to
// every socket in the appointment's room, sender included.
func (h *Handler) onMessage(payload json.RawMessage) {
	var p chatPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Appointment == 0 {
		return
	}

	msg := models.Message{
		AppointmentID:    p.Appointment,
		UserID:           p.User,
		Content:          p.Content,
		MessageTimestamp: p.Timestamp,
	}
	if err := h.messages.CreateMessage(context.Background(), &msg); err != nil {
		h.log.Error().Err(err).Uint("appointment", p.Appointment).Msg("failed to persist message")
		h.metrics.Errors.WithLabelValues("relay").Inc()
		return
	}
	h.metrics.MessagesPersisted.Inc()

	room := strconv.FormatUint(uint64(p.Appointment), 10)
	data, err := json.Marshal(Envelope{Event: EventMessage, Payload: payload})
	if err != nil {
		return
	}

	h.hub.Broadcast(room, data)
	h.metrics.RelayBroadcasts.WithLabelValues(EventMessage).Inc()
}

// onVideoJoin relays a call-signaling payload to the rest of the room. The
// payload is opaque address-exchange data; only the room key is read.
func (h *Handler) onVideoJoin(client *Client, payload json.RawMessage) {
	var p roomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Room == "" {
		return
	}

	data, err := json.Marshal(Envelope{Event: EventVideoJoin, Payload: payload})
	if err != nil {
		return
	}

	h.hub.BroadcastExcept(p.Room, client, data)
	h.metrics.RelayBroadcasts.WithLabelValues(EventVideoJoin).Inc()
}

func (h *Handler) sendTo(client *Client, event string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	data, err := json.Marshal(Envelope{Event: event, Payload: raw})
	if err != nil {
		return
	}

	select {
	case client.Send <- data:
	default:
	}
}
