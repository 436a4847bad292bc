package message

import (
	"context"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// Repository is shared by the HTTP handler and the realtime relay: every
// inbound chat message is persisted through it before fan-out.
type Repository interface {
	CreateMessage(
		ctx context.Context,
		msg *models.Message,
	) error

	// ListByAppointment returns all messages for the appointment in storage
	// order. Clients sort by messageTimestamp themselves.
	ListByAppointment(
		ctx context.Context,
		appointmentID uint,
	) ([]models.Message, error)
}
