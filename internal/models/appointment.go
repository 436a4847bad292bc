package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Status string `gorm:"size:20;default:'Requested'" json:"status"`

	AppointmentTitle string  `gorm:"size:255" json:"appointmentTitle"`
	AppointmentType  string  `gorm:"size:50" json:"appointmentType"`
	MainCategory     *string `gorm:"size:100" json:"mainCategory"`
	SubCategory      *string `gorm:"size:100" json:"subCategory"`

	ClientUserID         uint   `gorm:"index;not null" json:"clientUserId"`
	ClientUser           *User  `gorm:"foreignKey:ClientUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clientUser,omitempty"`
	ClientSpokenLanguage string `gorm:"size:100;not null" json:"clientSpokenLanguage"`

	// Null while the appointment is still Requested; set exactly once on accept.
	InterpreterUserID         *uint  `gorm:"index" json:"interpreterUserId"`
	InterpreterUser           *User  `gorm:"foreignKey:InterpreterUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"interpreterUser,omitempty"`
	InterpreterSpokenLanguage string `gorm:"size:100;not null" json:"interpreterSpokenLanguage"`

	LocationName      *string  `gorm:"size:255" json:"locationName"`
	LocationAddress   *string  `gorm:"size:255" json:"locationAddress"`
	LocationLatitude  *float64 `json:"locationLatitude"`
	LocationLongitude *float64 `json:"locationLongitude"`

	AppointmentDateTime time.Time `gorm:"index" json:"appointmentDateTime"`
	AppointmentNote     *string   `gorm:"size:1000" json:"appointmentNote"`

	ReviewClientThumb      *bool   `json:"reviewClientThumb"`
	ReviewClientNote       *string `gorm:"size:1000" json:"reviewClientNote"`
	ReviewInterpreterThumb *bool   `json:"reviewInterpreterThumb"`
	ReviewInterpreterNote  *string `gorm:"size:1000" json:"reviewInterpreterNote"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
