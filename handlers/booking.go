package handlers

import (
	"errors"
	"net/http"

	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/models"
	"fitbook/services/reservation"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the three-phase booking session flow plus reservation
// management endpoints.
type BookingHandler struct {
	Service      reservation.BookingSessionService
	Reservations reservationRepo.ReservationRepository
}

func NewBookingHandler(svc reservation.BookingSessionService, resvRepo reservationRepo.ReservationRepository) *BookingHandler {
	return &BookingHandler{Service: svc, Reservations: resvRepo}
}

// flowErrorResponse maps a booking-flow error onto an HTTP status.
// 409 means "pick another time"; 400 means "request invalid"; 503 means the
// backing store could not be reached (fail-closed).
func flowErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case reservation.HasCode(err, reservation.CodeInvalidWindow):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
	case reservation.HasCode(err, reservation.CodeConflict),
		reservation.HasCode(err, reservation.CodeServerConflict):
		utils.JSONError(c, http.StatusConflict, "the selected time is not available", err.Error())
	case reservation.HasCode(err, reservation.CodeTransportFailure):
		utils.JSONError(c, http.StatusServiceUnavailable, "reservation service unavailable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking request failed", err.Error())
	}
}

// StartSessionHandler begins a booking session for a facility.
func (h *BookingHandler) StartSessionHandler(c *gin.Context) {
	var input struct {
		FacilityID string `json:"facilityId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	userID := c.GetString("userID")
	deviceID := c.GetString("deviceID")
	session, err := h.Service.StartSession(c.Request.Context(), userID, deviceID, input.FacilityID)
	if err != nil {
		flowErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectDateHandler switches the session's date and returns the refreshed
// availability grid.
func (h *BookingHandler) SelectDateHandler(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectDate(c.Request.Context(), c.Param("sessionID"), input.Date)
	if err != nil {
		flowErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ConfirmHandler validates the candidate window and submits the reservation.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	var input struct {
		Window      models.CandidateWindow `json:"window" binding:"required"`
		PersonCount int                    `json:"personCount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resv, err := h.Service.Confirm(c.Request.Context(), c.Param("sessionID"), input.Window, input.PersonCount)
	if err != nil {
		flowErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": resv})
}

// CancelSessionHandler discards an in-flight booking session.
func (h *BookingHandler) CancelSessionHandler(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		flowErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListMyReservationsHandler returns the signed-in member's reservations.
func (h *BookingHandler) ListMyReservationsHandler(c *gin.Context) {
	reservations, err := h.Reservations.ListByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// CancelReservationHandler cancels one of the member's own reservations.
func (h *BookingHandler) CancelReservationHandler(c *gin.Context) {
	err := h.Reservations.CancelByUser(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			utils.JSONError(c, http.StatusNotFound, "reservation not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
