package handlers

import (
	"errors"
	"net/http"
	"time"

	facilityRepo "fitbook/database/repository/facility"
	"fitbook/services/facility"
	"fitbook/services/slot"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
)

// FacilityHandler serves facility browsing and availability endpoints.
type FacilityHandler struct {
	Service facility.FacilityService
}

func NewFacilityHandler(svc facility.FacilityService) *FacilityHandler {
	return &FacilityHandler{Service: svc}
}

// ListFacilitiesHandler returns active facilities, optionally filtered by
// ?category=.
func (h *FacilityHandler) ListFacilitiesHandler(c *gin.Context) {
	facilities, err := h.Service.ListFacilities(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list facilities", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// GetFacilityHandler returns one facility's metadata.
func (h *FacilityHandler) GetFacilityHandler(c *gin.Context) {
	f, err := h.Service.GetFacility(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			utils.JSONError(c, http.StatusNotFound, "facility not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch facility", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility": f})
}

// GetFacilityAvailabilityHandler returns the per-hour occupancy grid for
// ?date=YYYY-MM-DD. When the occupied-interval query fails, the grid comes
// back fully blocked with availabilityError set so clients never treat
// unverified hours as free.
func (h *FacilityHandler) GetFacilityAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if _, err := slot.ParseDay(date, time.Local); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be in YYYY-MM-DD format")
		return
	}

	avail, err := h.Service.DayAvailability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			utils.JSONError(c, http.StatusNotFound, "facility not found", "")
			return
		}
		if avail != nil {
			// Fail closed: the blocked grid is still useful to render.
			c.JSON(http.StatusOK, gin.H{"availability": avail})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": avail})
}
