package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"
	ucAppointment "github.com/TSUGO-CORPORATED/tsugo-server/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	update   *ucAppointment.UpdateAppointment
	findOpen *ucAppointment.FindOpenAppointments
	overview *ucAppointment.AppointmentOverview
	detail   *ucAppointment.AppointmentDetail
	accept   *ucAppointment.AcceptAppointment
	cancel   *ucAppointment.CancelAppointment
	complete *ucAppointment.CompleteAppointment
	review   *ucAppointment.AddReview
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	findOpen *ucAppointment.FindOpenAppointments,
	overview *ucAppointment.AppointmentOverview,
	detail *ucAppointment.AppointmentDetail,
	accept *ucAppointment.AcceptAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	review *ucAppointment.AddReview,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		update:   update,
		findOpen: findOpen,
		overview: overview,
		detail:   detail,
		accept:   accept,
		cancel:   cancel,
		complete: complete,
		review:   review,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createAppointmentRequest struct {
	AppointmentTitle          string    `json:"appointmentTitle"`
	AppointmentType           string    `json:"appointmentType"`
	MainCategory              *string   `json:"mainCategory"`
	SubCategory               *string   `json:"subCategory"`
	ClientUserID              uint      `json:"clientUserId" binding:"required"`
	ClientSpokenLanguage      string    `json:"clientSpokenLanguage" binding:"required"`
	InterpreterSpokenLanguage string    `json:"interpreterSpokenLanguage" binding:"required"`
	LocationName              *string   `json:"locationName"`
	LocationAddress           *string   `json:"locationAddress"`
	LocationLatitude          *float64  `json:"locationLatitude"`
	LocationLongitude         *float64  `json:"locationLongitude"`
	AppointmentDateTime       time.Time `json:"appointmentDateTime" binding:"required"`
	AppointmentNote           *string   `json:"appointmentNote"`
}

type updateAppointmentRequest struct {
	ID                        uint      `json:"id" binding:"required"`
	AppointmentTitle          string    `json:"appointmentTitle"`
	AppointmentType           string    `json:"appointmentType"`
	MainCategory              *string   `json:"mainCategory"`
	SubCategory               *string   `json:"subCategory"`
	ClientSpokenLanguage      string    `json:"clientSpokenLanguage"`
	InterpreterSpokenLanguage string    `json:"interpreterSpokenLanguage"`
	LocationName              *string   `json:"locationName"`
	LocationAddress           *string   `json:"locationAddress"`
	LocationLatitude          *float64  `json:"locationLatitude"`
	LocationLongitude         *float64  `json:"locationLongitude"`
	AppointmentDateTime       time.Time `json:"appointmentDateTime"`
	AppointmentNote           *string   `json:"appointmentNote"`
}

type reviewRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Role          string `json:"role" binding:"required"`
	ReviewThumb   *bool  `json:"reviewThumb" binding:"required"`
	ReviewNote    string `json:"reviewNote"`
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unauthorized(c, "Cannot create new appointment")
		return
	}

	_, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		AppointmentTitle:          req.AppointmentTitle,
		AppointmentType:           req.AppointmentType,
		MainCategory:              req.MainCategory,
		SubCategory:               req.SubCategory,
		ClientUserID:              req.ClientUserID,
		ClientSpokenLanguage:      req.ClientSpokenLanguage,
		InterpreterSpokenLanguage: req.InterpreterSpokenLanguage,
		LocationName:              req.LocationName,
		LocationAddress:           req.LocationAddress,
		LocationLatitude:          req.LocationLatitude,
		LocationLongitude:         req.LocationLongitude,
		AppointmentDateTime:       req.AppointmentDateTime,
		AppointmentNote:           req.AppointmentNote,
	})
	if err != nil {
		httperr.Unauthorized(c, "Cannot create new appointment")
		return
	}

	httperr.Write(c, http.StatusCreated, "Appointment created in backend database")
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Internal(c, "Failed to update appointment")
		return
	}

	_, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:                        req.ID,
		AppointmentTitle:          req.AppointmentTitle,
		AppointmentType:           req.AppointmentType,
		MainCategory:              req.MainCategory,
		SubCategory:               req.SubCategory,
		ClientSpokenLanguage:      req.ClientSpokenLanguage,
		InterpreterSpokenLanguage: req.InterpreterSpokenLanguage,
		LocationName:              req.LocationName,
		LocationAddress:           req.LocationAddress,
		LocationLatitude:          req.LocationLatitude,
		LocationLongitude:         req.LocationLongitude,
		AppointmentDateTime:       req.AppointmentDateTime,
		AppointmentNote:           req.AppointmentNote,
	})
	if err != nil {
		httperr.Internal(c, "Failed to update appointment")
		return
	}

	httperr.Write(c, http.StatusOK, "Appointment updated")
}

// ======================================================
// FIND (open requests for interpreters)
// ======================================================

func (h *AppointmentHandler) Find(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	data, err := h.findOpen.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	c.JSON(http.StatusOK, data)
}

// ======================================================
// OVERVIEW
// ======================================================

func (h *AppointmentHandler) Overview(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	data, err := h.overview.Execute(
		c.Request.Context(),
		c.Param("role"),
		c.Param("timeframe"),
		userID,
	)
	if err != nil {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	c.JSON(http.StatusOK, data)
}

// ======================================================
// DETAIL
// ======================================================

func (h *AppointmentHandler) Detail(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointmentId")
	if !ok {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	data, err := h.detail.Execute(c.Request.Context(), appointmentID)
	if err != nil {
		httperr.Internal(c, "Failed to get appointment")
		return
	}

	c.JSON(http.StatusOK, data)
}

// ======================================================
// ACCEPT
// ======================================================

func (h *AppointmentHandler) Accept(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointmentId")
	if !ok {
		httperr.Internal(c, "Failed to accept appointment")
		return
	}
	interpreterUserID, ok := paramUint(c, "interpreterUserId")
	if !ok {
		httperr.Internal(c, "Failed to accept appointment")
		return
	}

	_, err := h.accept.Execute(c.Request.Context(), appointmentID, interpreterUserID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "Appointment cannot be accepted")
			return
		}
		httperr.Internal(c, "Failed to accept appointment")
		return
	}

	httperr.Write(c, http.StatusOK, "Appointment accepted")
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointmentId")
	if !ok {
		httperr.Internal(c, "Failed to cancel appointment")
		return
	}

	_, err := h.cancel.Execute(c.Request.Context(), appointmentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "Appointment cannot be cancelled")
			return
		}
		httperr.Internal(c, "Failed to cancel appointment")
		return
	}

	httperr.Write(c, http.StatusOK, "Appointment cancelled")
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	appointmentID, ok := paramUint(c, "appointmentId")
	if !ok {
		httperr.Internal(c, "Failed to complete appointment")
		return
	}

	_, err := h.complete.Execute(c.Request.Context(), appointmentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "Appointment cannot be completed")
			return
		}
		httperr.Internal(c, "Failed to complete appointment")
		return
	}

	httperr.Write(c, http.StatusOK, "Appointment completed")
}

// ======================================================
// REVIEW
// ======================================================

func (h *AppointmentHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Internal(c, "Failed to add review")
		return
	}

	_, err := h.review.Execute(c.Request.Context(), ucAppointment.ReviewInput{
		AppointmentID: req.AppointmentID,
		Role:          req.Role,
		ReviewThumb:   *req.ReviewThumb,
		ReviewNote:    req.ReviewNote,
	})
	if err != nil {
		httperr.Internal(c, "Failed to add review")
		return
	}

	httperr.Write(c, http.StatusOK, "Review added")
}
