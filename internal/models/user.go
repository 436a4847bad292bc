package models

import "time"

// User rows are never hard-deleted: appointments and messages keep pointing
// at the numeric id after the profile has been anonymized.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UID   string `gorm:"size:128;uniqueIndex;not null" json:"uid"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`

	ProfilePicture *string `json:"profilePicture"`
	About          *string `gorm:"size:1000" json:"about"`

	Languages []UserLanguage `gorm:"foreignKey:UserID" json:"userLanguage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
