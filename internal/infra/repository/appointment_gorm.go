package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/appointment"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Create / load / save
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ClientUser").
		Preload("InterpreterUser").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOpenExcluding(
	ctx context.Context,
	excludeUserID uint,
	now time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND client_user_id <> ? AND appointment_date_time >= ?",
			string(domain.StatusRequested), excludeUserID, now,
		).
		Order("appointment_date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListForRole(
	ctx context.Context,
	role string,
	userID uint,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	ownerColumn := "client_user_id"
	if role == domain.RoleInterpreter {
		ownerColumn = "interpreter_user_id"
	}

	set := make([]string, 0, len(statuses))
	for _, s := range statuses {
		set = append(set, string(s))
	}

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(ownerColumn+" = ? AND status IN ?", userID, set).
		Order("appointment_date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Lazy expiry
// --------------------------------------------------

func (r *AppointmentGormRepository) CancelExpiredRequested(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status = ? AND appointment_date_time < ?",
			string(domain.StatusRequested), now,
		).
		Update("status", string(domain.StatusCancelled))

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
