package appointment

import (
	"context"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

type AcceptAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptAppointment {
	return &AcceptAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	interpreterUserID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Accept(ap, interpreterUserID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &interpreterUserID,
		Action:   "appointment_accepted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
