package dto

import "github.com/TSUGO-CORPORATED/tsugo-server/internal/models"

// UserSummaryDTO is the minimal public profile.
type UserSummaryDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewUserSummaryDTO(u *models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// ProfileStats carries the four derived thumb counters. Cached as-is under
// user:stats:{id}.
type ProfileStats struct {
	ClientTotalThumbsUp        int64 `json:"clientTotalThumbsUp"`
	ClientTotalThumbsDown      int64 `json:"clientTotalThumbsDown"`
	InterpreterTotalThumbsUp   int64 `json:"interpreterTotalThumbsUp"`
	InterpreterTotalThumbsDown int64 `json:"interpreterTotalThumbsDown"`
}

type UserDetailDTO struct {
	ID             uint                  `json:"id"`
	Email          string                `json:"email"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	ProfilePicture *string               `json:"profilePicture"`
	About          *string               `json:"about"`
	UserLanguage   []models.UserLanguage `json:"userLanguage"`

	ProfileStats
}

func NewUserDetailDTO(u *models.User, stats ProfileStats) UserDetailDTO {
	langs := u.Languages
	if langs == nil {
		langs = []models.UserLanguage{}
	}
	return UserDetailDTO{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		About:          u.About,
		UserLanguage:   langs,
		ProfileStats:   stats,
	}
}
