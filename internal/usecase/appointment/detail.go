package appointment

import (
	"context"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/dto"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
)

type AppointmentDetail struct {
	repo domain.Repository
}

func NewAppointmentDetail(repo domain.Repository) *AppointmentDetail {
	return &AppointmentDetail{repo: repo}
}

func (uc *AppointmentDetail) Execute(
	ctx context.Context,
	appointmentID uint,
) (*dto.AppointmentDetailDTO, error) {

	ap, err := uc.repo.GetAppointmentDetail(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	detail := dto.NewAppointmentDetailDTO(ap)
	return &detail, nil
}
