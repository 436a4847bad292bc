package appointment

import (
	"context"
	"time"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// UpdateAppointmentInput is a full overwrite of the descriptive fields.
// Status and participant ids are never touched here.
type UpdateAppointmentInput struct {
	ID uint

	AppointmentTitle string
	AppointmentType  string
	MainCategory     *string
	SubCategory      *string

	ClientSpokenLanguage      string
	InterpreterSpokenLanguage string

	LocationName      *string
	LocationAddress   *string
	LocationLatitude  *float64
	LocationLongitude *float64

	AppointmentDateTime time.Time
	AppointmentNote     *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap.AppointmentTitle = in.AppointmentTitle
	ap.AppointmentType = in.AppointmentType
	ap.MainCategory = in.MainCategory
	ap.SubCategory = in.SubCategory
	ap.ClientSpokenLanguage = in.ClientSpokenLanguage
	ap.InterpreterSpokenLanguage = in.InterpreterSpokenLanguage
	ap.LocationName = in.LocationName
	ap.LocationAddress = in.LocationAddress
	ap.LocationLatitude = in.LocationLatitude
	ap.LocationLongitude = in.LocationLongitude
	ap.AppointmentDateTime = in.AppointmentDateTime
	ap.AppointmentNote = in.AppointmentNote

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
