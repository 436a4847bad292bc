package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/cache"
	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

type ReviewInput struct {
	AppointmentID uint
	Role          string
	ReviewThumb   bool
	ReviewNote    string
}

// AddReview writes into the review slot matching the role and leaves the
// other party's slot untouched. There is deliberately no participant or
// completion check; the slots are independent and writable at any time.
type AddReview struct {
	repo  domain.Repository
	cache cache.Cache
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewAddReview(
	repo domain.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *AddReview {
	return &AddReview{
		repo:  repo,
		cache: c,
		audit: audit,
		log:   log.With().Str("component", "appointment").Logger(),
	}
}

func (uc *AddReview) Execute(
	ctx context.Context,
	in ReviewInput,
) (*models.Appointment, error) {

	if in.Role != domain.RoleClient && in.Role != domain.RoleInterpreter {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	thumb := in.ReviewThumb
	note := in.ReviewNote
	if in.Role == domain.RoleClient {
		ap.ReviewClientThumb = &thumb
		ap.ReviewClientNote = &note
	} else {
		ap.ReviewInterpreterThumb = &thumb
		ap.ReviewInterpreterNote = &note
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Both participants' derived counters just changed shape; drop their
	// cached stats so the next profile fetch recomputes.
	keys := []string{cache.StatsKey(ap.ClientUserID)}
	if ap.InterpreterUserID != nil {
		keys = append(keys, cache.StatsKey(*ap.InterpreterUserID))
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_reviewed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"role": in.Role},
	})

	return ap, nil
}
