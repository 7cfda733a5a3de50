package reservation

import (
	"context"

	facilityRepo "fitbook/database/repository/facility"
	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/models"
)

// BookingSessionService drives the three-phase reservation flow: pick a
// facility, pick a date (availability render), confirm a window (submission).
type BookingSessionService interface {
	StartSession(ctx context.Context, userID, deviceID, facilityID string) (*models.BookingSession, error)
	SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error)
	Confirm(ctx context.Context, sessionID string, win models.CandidateWindow, personCount int) (*models.Reservation, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// CompletionScheduler schedules the status flip to Completed at a
// reservation's end time. Implemented by the asynq worker package.
type CompletionScheduler interface {
	ScheduleCompletion(resv *models.Reservation) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Sessions        SessionStore
	FacilityRepo    facilityRepo.FacilityRepository
	ReservationRepo reservationRepo.ReservationRepository
	Completion      CompletionScheduler // optional; nil disables completion tasks
}
