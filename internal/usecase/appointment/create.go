package appointment

import (
	"context"
	"time"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AppointmentTitle string
	AppointmentType  string
	MainCategory     *string
	SubCategory      *string

	ClientUserID         uint
	ClientSpokenLanguage string

	InterpreterSpokenLanguage string

	LocationName      *string
	LocationAddress   *string
	LocationLatitude  *float64
	LocationLongitude *float64

	AppointmentDateTime time.Time
	AppointmentNote     *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientUserID == 0 ||
		in.ClientSpokenLanguage == "" ||
		in.InterpreterSpokenLanguage == "" ||
		in.AppointmentDateTime.IsZero() {
		return nil, httperr.ErrBusiness("missing_required_field")
	}

	// Status is forced here; the client never chooses it. The interpreter
	// slot stays empty until acceptance.
	ap := &models.Appointment{
		Status:                    string(domain.InitialStatus()),
		AppointmentTitle:          in.AppointmentTitle,
		AppointmentType:           in.AppointmentType,
		MainCategory:              in.MainCategory,
		SubCategory:               in.SubCategory,
		ClientUserID:              in.ClientUserID,
		ClientSpokenLanguage:      in.ClientSpokenLanguage,
		InterpreterUserID:         nil,
		InterpreterSpokenLanguage: in.InterpreterSpokenLanguage,
		LocationName:              in.LocationName,
		LocationAddress:           in.LocationAddress,
		LocationLatitude:          in.LocationLatitude,
		LocationLongitude:         in.LocationLongitude,
		AppointmentDateTime:       in.AppointmentDateTime,
		AppointmentNote:           in.AppointmentNote,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
