package models

type UserLanguage struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"userId"`

	Language       string  `gorm:"size:100;not null" json:"language"`
	Proficiency    string  `gorm:"size:100;not null" json:"proficiency"`
	Certifications *string `gorm:"size:255" json:"certifications"`
}
