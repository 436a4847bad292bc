package appointment

import (
	"context"
	"time"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// Role names the side of an appointment a user is on.
const (
	RoleClient      = "client"
	RoleInterpreter = "interpreter"
)

type Repository interface {
	// -------- Create / load / save --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// GetAppointmentDetail loads the appointment with both participant
	// profiles joined in.
	GetAppointmentDetail(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------

	// ListOpenExcluding returns Requested appointments not authored by
	// excludeUserID with a date at or after now, ordered by date ascending.
	ListOpenExcluding(
		ctx context.Context,
		excludeUserID uint,
		now time.Time,
	) ([]models.Appointment, error)

	// ListForRole filters by the owner column matching role and the given
	// status set, ordered by date ascending.
	ListForRole(
		ctx context.Context,
		role string,
		userID uint,
		statuses []Status,
	) ([]models.Appointment, error)

	// -------- Lazy expiry --------

	// CancelExpiredRequested cancels every Requested appointment whose date
	// is before now. There is no background scheduler; callers run this
	// sweep before listing.
	CancelExpiredRequested(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
