package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/dto"
)

// FindOpenAppointments lists Requested appointments an interpreter can claim.
// It runs the lazy-expiry sweep first: there is no background scheduler, so
// stale Requested appointments are cancelled as a side effect of this call
// (and of the overview call).
type FindOpenAppointments struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewFindOpenAppointments(
	repo domain.Repository,
	log zerolog.Logger,
) *FindOpenAppointments {
	return &FindOpenAppointments{
		repo: repo,
		log:  log.With().Str("component", "appointment").Logger(),
	}
}

func (uc *FindOpenAppointments) Execute(
	ctx context.Context,
	excludeUserID uint,
) ([]dto.AppointmentOverviewDTO, error) {

	now := time.Now().UTC()

	expired, err := uc.repo.CancelExpiredRequested(ctx, now)
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		uc.log.Info().Int64("count", expired).Msg("expired requested appointments cancelled")
	}

	aps, err := uc.repo.ListOpenExcluding(ctx, excludeUserID, now)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentOverviewList(aps), nil
}
