// Package slot implements the hour-granularity availability engine used by
// the booking flow. Everything here is pure: no I/O, no clocks, no globals.
//
// All interval checks use half-open semantics [start, end). A reservation from
// 16:00 to 18:00 blocks the 16:00 and 17:00 slots but leaves 18:00 free for a
// booking that starts there.
package slot

import (
	"errors"
	"fmt"
	"time"

	"fitbook/models"
)

// ErrInvalidWindow is returned for empty, inverted, or out-of-range candidate
// windows. These are rejected before any interval is consulted.
var ErrInvalidWindow = errors.New("invalid booking window")

// ConflictError reports the first hour of a candidate window that overlaps an
// existing reservation.
type ConflictError struct {
	Hour int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("hour %02d:00 is already booked", e.Hour)
}

// HourStart returns the instant at hour:00 on the given day, in the day's
// location.
func HourStart(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// IsHourOccupied reports whether the given hour on day falls inside any
// occupied interval: start <= instant < end.
func IsHourOccupied(day time.Time, hour int, occupied []models.OccupiedInterval) bool {
	at := HourStart(day, hour)
	for _, iv := range occupied {
		if !at.Before(iv.Start) && at.Before(iv.End) {
			return true
		}
	}
	return false
}

// ValidateWindow checks a candidate window against the facility's operating
// range and the occupied intervals for the window's date.
//
// Shape errors (start >= end, hours outside [openHour, closeHour)) return
// ErrInvalidWindow without touching the interval set. Conflicts are
// all-or-nothing: the first occupied hour in [StartHour, EndHour) fails the
// whole window with a *ConflictError. There is no partial booking.
func ValidateWindow(day time.Time, win models.CandidateWindow, openHour, closeHour int, occupied []models.OccupiedInterval) error {
	if win.StartHour >= win.EndHour {
		return ErrInvalidWindow
	}
	if win.StartHour < openHour || win.EndHour > closeHour {
		return ErrInvalidWindow
	}
	for h := win.StartHour; h < win.EndHour; h++ {
		if IsHourOccupied(day, h, occupied) {
			return &ConflictError{Hour: h}
		}
	}
	return nil
}

// ComputePrice returns hours * hourlyRate for the window, clamped at zero for
// empty or inverted windows. ValidateWindow rejects those shapes upstream; the
// clamp keeps a bad caller from producing a negative price.
func ComputePrice(win models.CandidateWindow, hourlyRate float64) float64 {
	hours := win.EndHour - win.StartHour
	if hours <= 0 {
		return 0
	}
	return float64(hours) * hourlyRate
}

// ParseDay parses a "YYYY-MM-DD" calendar date in the given location.
func ParseDay(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}
