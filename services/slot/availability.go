package slot

import (
	"time"

	"fitbook/models"
)

// BuildDayAvailability derives the per-hour occupancy grid for one facility
// and date from the occupied intervals fetched for that date. The grid covers
// the facility's operating window [openHour, closeHour) and is recomputed in
// full on every interval or date change.
func BuildDayAvailability(facilityID string, day time.Time, openHour, closeHour int, occupied []models.OccupiedInterval) models.DayAvailability {
	avail := models.DayAvailability{
		FacilityID: facilityID,
		Date:       day.Format("2006-01-02"),
	}
	for h := openHour; h < closeHour; h++ {
		avail.Hours = append(avail.Hours, models.HourSlot{
			Hour:     h,
			Occupied: IsHourOccupied(day, h, occupied),
		})
	}
	return avail
}

// BlockedDayAvailability is the fail-closed grid: every operating hour reports
// occupied. Used when the occupied-interval fetch failed or has not resolved,
// so the UI never renders unverified hours as free.
func BlockedDayAvailability(facilityID, date string, openHour, closeHour int, reason string) models.DayAvailability {
	avail := models.DayAvailability{
		FacilityID: facilityID,
		Date:       date,
		Error:      reason,
	}
	for h := openHour; h < closeHour; h++ {
		avail.Hours = append(avail.Hours, models.HourSlot{Hour: h, Occupied: true})
	}
	return avail
}
