package models

import "time"

// Message is append-only. Content is overwritten with a sentinel when the
// author deletes their account; id and timestamp survive.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointmentId"`
	UserID        uint `gorm:"index;not null" json:"userId"`

	Content          string    `gorm:"size:2000;not null" json:"content"`
	MessageTimestamp time.Time `json:"messageTimestamp"`
}
