package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/message"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

type MessageHandler struct {
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewMessageHandler(repo domain.Repository, m *metrics.Metrics) *MessageHandler {
	return &MessageHandler{
		repo:    repo,
		metrics: m,
	}
}

type createMessageRequest struct {
	AppointmentID    uint      `json:"appointmentId" binding:"required"`
	UserID           uint      `json:"userId" binding:"required"`
	Content          string    `json:"content" binding:"required"`
	MessageTimestamp time.Time `json:"messageTimestamp" binding:"required"`
}

func (h *MessageHandler) Create(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unauthorized(c, "Cannot register new message")
		return
	}

	msg := models.Message{
		AppointmentID:    req.AppointmentID,
		UserID:           req.UserID,
		Content:          req.Content,
		MessageTimestamp: req.MessageTimestamp,
	}

	if err := h.repo.CreateMessage(c.Request.Context(), &msg); err != nil {
		httperr.Unauthorized(c, "Cannot register new message")
		return
	}
	h.metrics.MessagesPersisted.Inc()

	httperr.Write(c, http.StatusCreated, "Message created in backend database")
}

// List returns every message for the appointment in storage order; clients
// sort by messageTimestamp themselves.
func (h *MessageHandler) List(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointmentId")
	if !ok {
		httperr.Internal(c, "Failed to get message")
		return
	}

	msgs, err := h.repo.ListByAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		httperr.Internal(c, "Failed to get message")
		return
	}

	c.JSON(http.StatusOK, msgs)
}
