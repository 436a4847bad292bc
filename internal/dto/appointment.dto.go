package dto

import (
	"time"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// Wire shapes match the payloads the frontend already consumes: camelCase
// keys, subset selections per endpoint.

type AppointmentOverviewDTO struct {
	ID                        uint      `json:"id"`
	Status                    string    `json:"status"`
	AppointmentTitle          string    `json:"appointmentTitle"`
	AppointmentType           string    `json:"appointmentType"`
	MainCategory              *string   `json:"mainCategory"`
	SubCategory               *string   `json:"subCategory"`
	ClientSpokenLanguage      string    `json:"clientSpokenLanguage"`
	InterpreterSpokenLanguage string    `json:"interpreterSpokenLanguage"`
	LocationLatitude          *float64  `json:"locationLatitude"`
	LocationLongitude         *float64  `json:"locationLongitude"`
	AppointmentDateTime       time.Time `json:"appointmentDateTime"`
}

func NewAppointmentOverviewDTO(ap models.Appointment) AppointmentOverviewDTO {
	return AppointmentOverviewDTO{
		ID:                        ap.ID,
		Status:                    ap.Status,
		AppointmentTitle:          ap.AppointmentTitle,
		AppointmentType:           ap.AppointmentType,
		MainCategory:              ap.MainCategory,
		SubCategory:               ap.SubCategory,
		ClientSpokenLanguage:      ap.ClientSpokenLanguage,
		InterpreterSpokenLanguage: ap.InterpreterSpokenLanguage,
		LocationLatitude:          ap.LocationLatitude,
		LocationLongitude:         ap.LocationLongitude,
		AppointmentDateTime:       ap.AppointmentDateTime,
	}
}

func NewAppointmentOverviewList(aps []models.Appointment) []AppointmentOverviewDTO {
	out := make([]AppointmentOverviewDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentOverviewDTO(ap))
	}
	return out
}

// ParticipantDTO is the public slice of a profile joined into the detail
// payload.
type ParticipantDTO struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
}

type AppointmentDetailDTO struct {
	ID                        uint            `json:"id"`
	Status                    string          `json:"status"`
	AppointmentTitle          string          `json:"appointmentTitle"`
	AppointmentType           string          `json:"appointmentType"`
	MainCategory              *string         `json:"mainCategory"`
	SubCategory               *string         `json:"subCategory"`
	ClientUserID              uint            `json:"clientUserId"`
	ClientUser                *ParticipantDTO `json:"clientUser"`
	ClientSpokenLanguage      string          `json:"clientSpokenLanguage"`
	InterpreterUserID         *uint           `json:"interpreterUserId"`
	InterpreterUser           *ParticipantDTO `json:"interpreterUser"`
	InterpreterSpokenLanguage string          `json:"interpreterSpokenLanguage"`
	LocationName              *string         `json:"locationName"`
	LocationAddress           *string         `json:"locationAddress"`
	LocationLatitude          *float64        `json:"locationLatitude"`
	LocationLongitude         *float64        `json:"locationLongitude"`
	AppointmentDateTime       time.Time       `json:"appointmentDateTime"`
	AppointmentNote           *string         `json:"appointmentNote"`
	ReviewClientThumb         *bool           `json:"reviewClientThumb"`
	ReviewClientNote          *string         `json:"reviewClientNote"`
	ReviewInterpreterThumb    *bool           `json:"reviewInterpreterThumb"`
	ReviewInterpreterNote     *string         `json:"reviewInterpreterNote"`
}

func newParticipantDTO(u *models.User) *ParticipantDTO {
	if u == nil {
		return nil
	}
	return &ParticipantDTO{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

func NewAppointmentDetailDTO(ap *models.Appointment) AppointmentDetailDTO {
	return AppointmentDetailDTO{
		ID:                        ap.ID,
		Status:                    ap.Status,
		AppointmentTitle:          ap.AppointmentTitle,
		AppointmentType:           ap.AppointmentType,
		MainCategory:              ap.MainCategory,
		SubCategory:               ap.SubCategory,
		ClientUserID:              ap.ClientUserID,
		ClientUser:                newParticipantDTO(ap.ClientUser),
		ClientSpokenLanguage:      ap.ClientSpokenLanguage,
		InterpreterUserID:         ap.InterpreterUserID,
		InterpreterUser:           newParticipantDTO(ap.InterpreterUser),
		InterpreterSpokenLanguage: ap.InterpreterSpokenLanguage,
		LocationName:              ap.LocationName,
		LocationAddress:           ap.LocationAddress,
		LocationLatitude:          ap.LocationLatitude,
		LocationLongitude:         ap.LocationLongitude,
		AppointmentDateTime:       ap.AppointmentDateTime,
		AppointmentNote:           ap.AppointmentNote,
		ReviewClientThumb:         ap.ReviewClientThumb,
		ReviewClientNote:          ap.ReviewClientNote,
		ReviewInterpreterThumb:    ap.ReviewInterpreterThumb,
		ReviewInterpreterNote:     ap.ReviewInterpreterNote,
	}
}
