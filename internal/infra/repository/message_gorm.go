package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/TSUGO-CORPORATED/tsugo-server/internal/domain/message"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) CreateMessage(
	ctx context.Context,
	msg *models.Message,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *MessageGormRepository) ListByAppointment(
	ctx context.Context,
	appointmentID uint,
) ([]models.Message, error) {

	var msgs []models.Message
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	return msgs, nil
}

// Compile-time check
var _ domain.Repository = (*MessageGormRepository)(nil)
