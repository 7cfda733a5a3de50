package reservationRepo

import (
	"context"
	"errors"

	"fitbook/models"
)

// ErrReservationConflict is the authoritative rejection: the requested window
// overlaps a reservation that is already on the books (possibly one created
// after the caller's own availability check).
var ErrReservationConflict = errors.New("reservation window is no longer free")

// ErrReservationNotFound is returned when no reservation matches the filter.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepository is the source of truth for reservations. The booking
// flow's own validation is advisory; Create's conflict answer is final.
type ReservationRepository interface {
	// OccupiedIntervals returns the booked windows of all non-cancelled
	// reservations for one facility and calendar date ("YYYY-MM-DD").
	OccupiedIntervals(ctx context.Context, facilityID, date string) ([]models.OccupiedInterval, error)

	// Create inserts the reservation, re-checking for overlaps against the
	// live data. Returns ErrReservationConflict if another booking holds any
	// part of the window.
	Create(ctx context.Context, resv *models.Reservation) error

	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)

	// CancelByUser flips a member's own reservation to Cancelled, freeing its
	// hours for the next availability fetch.
	CancelByUser(ctx context.Context, id, userID string) error

	// MarkCompleted flips a Confirmed reservation to Completed once its end
	// time has passed.
	MarkCompleted(ctx context.Context, id string) error
}
