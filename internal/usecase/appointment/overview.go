package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/dto"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
)

const (
	TimeframeCurrent = "current"
	TimeframeHistory = "history"
)

// statusSets maps (role, timeframe) to the statuses that bucket shows. An
// interpreter has no "current Requested" bucket: a request only enters their
// world once accepted.
var statusSets = map[string]map[string][]domain.Status{
	domain.RoleClient: {
		TimeframeCurrent: {domain.StatusRequested, domain.StatusAccepted},
		TimeframeHistory: {domain.StatusCompleted, domain.StatusCancelled},
	},
	domain.RoleInterpreter: {
		TimeframeCurrent: {domain.StatusAccepted},
		TimeframeHistory: {domain.StatusCompleted, domain.StatusCancelled},
	},
}

type AppointmentOverview struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewAppointmentOverview(
	repo domain.Repository,
	log zerolog.Logger,
) *AppointmentOverview {
	return &AppointmentOverview{
		repo: repo,
		log:  log.With().Str("component", "appointment").Logger(),
	}
}

func (uc *AppointmentOverview) Execute(
	ctx context.Context,
	role string,
	timeframe string,
	userID uint,
) ([]dto.AppointmentOverviewDTO, error) {

	byTimeframe, ok := statusSets[role]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_role")
	}
	statuses, ok := byTimeframe[timeframe]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_timeframe")
	}

	// Same lazy expiry as the find call: stale requests become Cancelled
	// before the buckets are computed.
	expired, err := uc.repo.CancelExpiredRequested(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		uc.log.Info().Int64("count", expired).Msg("expired requested appointments cancelled")
	}

	aps, err := uc.repo.ListForRole(ctx, role, userID, statuses)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentOverviewList(aps), nil
}
