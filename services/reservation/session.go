package reservation

import (
	"context"
	"time"

	"fitbook/models"
	"fitbook/services/slot"
	"fitbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a new booking session for one member and facility.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, userID, deviceID, facilityID string) (*models.BookingSession, error) {
	logger := utils.GetLogger()

	facility, err := s.FacilityRepo.GetByID(facilityID)
	if err != nil {
		logger.Warn("StartSession: facility lookup failed", zap.String("facilityID", facilityID), zap.Error(err))
		return nil, NewFlowError(CodeTransportFailure, "facility is not available for booking")
	}
	if !facility.Active {
		return nil, NewFlowError(CodeInvalidWindow, "facility is not open for reservations")
	}

	session := &models.BookingSession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		DeviceID:   deviceID,
		FacilityID: facility.ID,
		Facility:   *facility,
	}
	if err := s.Sessions.Save(ctx, session, utils.BookingSessionTTL); err != nil {
		return nil, err
	}

	logger.Info("StartSession: booking session created",
		zap.String("sessionID", session.SessionID),
		zap.String("facilityID", facility.ID))
	return session, nil
}

// SelectDate switches the session to a new calendar date and refetches the
// occupied intervals for it. Until the fetch resolves the session carries no
// usable interval data, so confirmation stays blocked (fail-closed).
//
// Stale-fetch rule: the session's SelectedDate is saved before fetching, and
// the fetched set is only attached if the selection still points at the same
// date afterwards. A fetch that resolves for a date the user has already left
// is discarded, never merged.
func (s *DefaultBookingSessionService) SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error) {
	logger := utils.GetLogger()

	if _, err := slot.ParseDay(date, time.Local); err != nil {
		return nil, NewFlowError(CodeInvalidWindow, "date must be in YYYY-MM-DD format")
	}

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Record the new selection and drop the previous date's intervals before
	// doing any I/O. Stale data from another date must never validate a window.
	session.SelectedDate = date
	session.IntervalsFor = ""
	session.Occupied = nil
	session.Availability = nil
	session.AvailabilityError = ""
	if err := s.Sessions.Save(ctx, session, utils.BookingSessionTTL); err != nil {
		return nil, err
	}

	openHour, closeHour := session.Facility.OperatingHours()
	intervals, fetchErr := s.ReservationRepo.OccupiedIntervals(ctx, session.FacilityID, date)

	// Re-read the session: the selection may have moved on while the fetch
	// was in flight. The most recently selected date wins.
	session, err = s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedDate != date {
		logger.Debug("SelectDate: discarding stale interval fetch",
			zap.String("sessionID", sessionID),
			zap.String("fetchedFor", date),
			zap.String("selected", session.SelectedDate))
		return session, nil
	}

	if fetchErr != nil {
		logger.Error("SelectDate: occupied-interval fetch failed",
			zap.String("facilityID", session.FacilityID),
			zap.String("date", date),
			zap.Error(fetchErr))
		blocked := slot.BlockedDayAvailability(session.FacilityID, date, openHour, closeHour,
			"availability could not be loaded")
		session.Availability = &blocked
		session.AvailabilityError = blocked.Error
	} else {
		day, _ := slot.ParseDay(date, time.Local)
		avail := slot.BuildDayAvailability(session.FacilityID, day, openHour, closeHour, intervals)
		session.Occupied = intervals
		session.IntervalsFor = date
		session.Availability = &avail
	}

	if err := s.Sessions.Save(ctx, session, utils.BookingSessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession discards an in-flight booking session.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}
