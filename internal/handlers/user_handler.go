package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/cache"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/dto"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// Overwrites applied on account deletion. The row itself is never removed:
// appointments and messages keep referencing the numeric id.
const (
	deletedUserSentinel  = "Deleted user"
	deletedEmailSentinel = "Deleted user "
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	db      *gorm.DB
	cache   cache.Cache
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewUserHandler(
	db *gorm.DB,
	c cache.Cache,
	auditDispatcher *audit.Dispatcher,
	m *metrics.Metrics,
	log zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		db:      db,
		cache:   c,
		audit:   auditDispatcher,
		metrics: m,
		log:     log.With().Str("component", "user").Logger(),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type languageInput struct {
	ID             uint    `json:"id"`
	Language       string  `json:"language" binding:"required"`
	Proficiency    string  `json:"proficiency" binding:"required"`
	Certifications *string `json:"certifications"`
}

type createUserRequest struct {
	UID       string          `json:"uid" binding:"required"`
	Email     string          `json:"email" binding:"required"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Languages []languageInput `json:"languages"`
}

type updateUserRequest struct {
	UserID    uint            `json:"userId" binding:"required"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	About     *string         `json:"about"`
	Languages []languageInput `json:"languages"`
}

// ======================================================
// CREATE
// ======================================================

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unauthorized(c, "Cannot register new user")
		return
	}

	user := models.User{
		UID:       req.UID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	// Duplicate uid or email trips the unique index here.
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Unauthorized(c, "Cannot register new user")
		return
	}

	// Language rows are attached adjacent to, not transactional with, the
	// user insert. A failure here leaves the user without languages.
	for _, lang := range req.Languages {
		row := models.UserLanguage{
			UserID:         user.ID,
			Language:       lang.Language,
			Proficiency:    lang.Proficiency,
			Certifications: lang.Certifications,
		}
		if err := h.db.Create(&row).Error; err != nil {
			h.log.Error().Err(err).Uint("userId", user.ID).Msg("failed to attach language")
			h.metrics.Errors.WithLabelValues("user").Inc()
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httperr.Write(c, http.StatusCreated, "User created in backend database")
}

// ======================================================
// CHECK
// ======================================================

// Check reports whether a user record exists for the email, as a bare
// "true"/"false" body.
func (h *UserHandler) Check(c *gin.Context) {
	email := c.Param("email")

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "Failed to check user")
		return
	}

	if count > 0 {
		httperr.Write(c, http.StatusOK, "true")
		return
	}
	httperr.Write(c, http.StatusOK, "false")
}

// ======================================================
// SUMMARY
// ======================================================

func (h *UserHandler) GetSummary(c *gin.Context) {
	uid := c.Param("uid")

	var user models.User
	if err := h.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		httperr.Internal(c, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserSummaryDTO(&user))
}

// ======================================================
// DETAIL
// ======================================================

func (h *UserHandler) GetDetail(c *gin.Context) {
	uid := c.Param("uid")

	var user models.User
	if err := h.db.Preload("Languages").
		Where("uid = ?", uid).
		First(&user).Error; err != nil {
		httperr.Internal(c, "Failed to get user")
		return
	}

	stats, err := h.profileStats(c, user.ID)
	if err != nil {
		httperr.Internal(c, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDetailDTO(&user, stats))
}

// profileStats recomputes the four thumb counters with grouped counts, with
// the optional Redis cache in front. Null thumbs are never counted.
func (h *UserHandler) profileStats(c *gin.Context, userID uint) (dto.ProfileStats, error) {
	ctx := c.Request.Context()
	key := cache.StatsKey(userID)

	var stats dto.ProfileStats
	hit, err := h.cache.GetJSON(ctx, key, &stats)
	if err != nil {
		h.log.Warn().Err(err).Msg("stats cache read failed")
	}
	if hit {
		h.metrics.StatsCacheLookups.WithLabelValues("hit").Inc()
		return stats, nil
	}
	h.metrics.StatsCacheLookups.WithLabelValues("miss").Inc()

	count := func(ownerColumn, thumbColumn string, thumb bool) (int64, error) {
		var n int64
		err := h.db.Model(&models.Appointment{}).
			Where(ownerColumn+" = ? AND "+thumbColumn+" = ?", userID, thumb).
			Count(&n).Error
		return n, err
	}

	if stats.ClientTotalThumbsUp, err = count("client_user_id", "review_client_thumb", true); err != nil {
		return stats, err
	}
	if stats.ClientTotalThumbsDown, err = count("client_user_id", "review_client_thumb", false); err != nil {
		return stats, err
	}
	if stats.InterpreterTotalThumbsUp, err = count("interpreter_user_id", "review_interpreter_thumb", true); err != nil {
		return stats, err
	}
	if stats.InterpreterTotalThumbsDown, err = count("interpreter_user_id", "review_interpreter_thumb", false); err != nil {
		return stats, err
	}

	if err := h.cache.SetJSON(ctx, key, stats, cache.StatsTTL); err != nil {
		h.log.Warn().Err(err).Msg("stats cache write failed")
	}

	return stats, nil
}

// ======================================================
// UPDATE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Internal(c, "Failed to update user")
		return
	}

	updates := map[string]any{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}
	if req.About != nil {
		updates["about"] = *req.About
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", req.UserID).
		Updates(updates)
	if res.Error != nil || res.RowsAffected == 0 {
		httperr.Internal(c, "Failed to update user")
		return
	}

	// Language rows are upserted by id: with an id the row is updated, bare
	// rows are inserted.
	for _, lang := range req.Languages {
		row := models.UserLanguage{
			ID:             lang.ID,
			UserID:         req.UserID,
			Language:       lang.Language,
			Proficiency:    lang.Proficiency,
			Certifications: lang.Certifications,
		}
		if err := h.db.Save(&row).Error; err != nil {
			httperr.Internal(c, "Failed to update user")
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &req.UserID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &req.UserID,
	})

	httperr.Write(c, http.StatusOK, "User info updated")
}

// ======================================================
// DELETE (soft)
// ======================================================

// Delete anonymizes the account in one transaction: profile fields become
// sentinels, language rows are hard-deleted, message bodies are scrubbed.
// The id keeps resolving afterwards.
func (h *UserHandler) Delete(c *gin.Context) {
	uid := c.Param("uid")

	var userID uint

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("uid = ?", uid).First(&user).Error; err != nil {
			return err
		}
		userID = user.ID

		if err := tx.Model(&user).Updates(map[string]any{
			"email":      deletedEmailSentinel + uid,
			"first_name": deletedUserSentinel,
			"last_name":  deletedUserSentinel,
			"about":      deletedUserSentinel,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).
			Delete(&models.UserLanguage{}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Message{}).
			Where("user_id = ?", user.ID).
			Update("content", deletedUserSentinel).Error
	})

	if err != nil {
		// 202 on failure is what the frontend already handles.
		httperr.Write(c, http.StatusAccepted, "Cannot delete user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
	})

	c.Status(http.StatusNoContent)
}
