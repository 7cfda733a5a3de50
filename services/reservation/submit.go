package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/models"
	"fitbook/services/slot"
	"fitbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirm validates the candidate window against the session's interval set
// and, if it passes, submits the reservation to the authoritative store.
//
// The local check is a best-effort guard: it blocks obviously conflicting
// submissions without a store round-trip, but the store's own conflict answer
// is final. A store rejection after a locally clean check is surfaced as
// CodeServerConflict and the session's interval set is invalidated so the
// next render reflects reality. One attempt per call; no retries.
func (s *DefaultBookingSessionService) Confirm(ctx context.Context, sessionID string, win models.CandidateWindow, personCount int) (*models.Reservation, error) {
	logger := utils.GetLogger()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.SelectedDate == "" {
		return nil, NewFlowError(CodeInvalidWindow, "no date selected")
	}
	if win.Date != "" && win.Date != session.SelectedDate {
		return nil, NewFlowError(CodeInvalidWindow, "window date does not match the selected date")
	}
	// Fail closed: without a resolved interval set for the selected date there
	// is nothing trustworthy to validate against.
	if !session.IntervalsReady() {
		return nil, NewFlowError(CodeTransportFailure, "availability is not loaded; please reselect the date")
	}
	if personCount < 1 || (session.Facility.Capacity > 0 && personCount > session.Facility.Capacity) {
		return nil, NewFlowError(CodeInvalidWindow, "person count is out of range for this facility")
	}

	day, err := slot.ParseDay(session.SelectedDate, time.Local)
	if err != nil {
		return nil, NewFlowError(CodeInvalidWindow, "date must be in YYYY-MM-DD format")
	}

	openHour, closeHour := session.Facility.OperatingHours()
	if err := slot.ValidateWindow(day, win, openHour, closeHour, session.Occupied); err != nil {
		var conflict *slot.ConflictError
		if errors.As(err, &conflict) {
			logger.Info("Confirm: local conflict, submission blocked",
				zap.String("sessionID", sessionID),
				zap.Int("hour", conflict.Hour))
			return nil, NewFlowError(CodeConflict, err.Error())
		}
		return nil, NewFlowError(CodeInvalidWindow, fmt.Sprintf("booking window %02d:00-%02d:00 is not valid", win.StartHour, win.EndHour))
	}

	resv := &models.Reservation{
		ID:          uuid.New().String(),
		FacilityID:  session.FacilityID,
		UserID:      session.UserID,
		Date:        session.SelectedDate,
		StartHour:   win.StartHour,
		EndHour:     win.EndHour,
		StartTime:   slot.HourStart(day, win.StartHour),
		EndTime:     slot.HourStart(day, win.EndHour),
		PersonCount: personCount,
		TotalPrice:  slot.ComputePrice(win, session.Facility.HourlyRate),
		Status:      models.ReservationStatusConfirmed,
		CreatedAt:   time.Now(),
	}

	if err := s.ReservationRepo.Create(ctx, resv); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationConflict) {
			// The store is the source of truth; someone else took the window
			// between our check and the insert. Invalidate the cached
			// intervals so the next availability render is honest.
			s.invalidateIntervals(ctx, session)
			logger.Info("Confirm: authoritative conflict from reservation store",
				zap.String("sessionID", sessionID),
				zap.String("facilityID", session.FacilityID),
				zap.String("date", session.SelectedDate))
			return nil, NewFlowError(CodeServerConflict, "the selected window was just booked; please pick another time")
		}
		logger.Error("Confirm: reservation store failure",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, NewFlowError(CodeTransportFailure, "could not submit the reservation; please try again later")
	}

	if s.Completion != nil {
		if err := s.Completion.ScheduleCompletion(resv); err != nil {
			// The reservation stands either way; the sweep catches it later.
			logger.Warn("Confirm: failed to schedule completion task",
				zap.String("reservationID", resv.ID), zap.Error(err))
		}
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		logger.Warn("Confirm: failed to clear booking session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	logger.Info("Confirm: reservation created",
		zap.String("reservationID", resv.ID),
		zap.String("facilityID", resv.FacilityID),
		zap.String("date", resv.Date),
		zap.Float64("totalPrice", resv.TotalPrice))
	return resv, nil
}

// invalidateIntervals drops the session's interval set after an authoritative
// rejection, forcing a refetch before the next attempt.
func (s *DefaultBookingSessionService) invalidateIntervals(ctx context.Context, session *models.BookingSession) {
	session.IntervalsFor = ""
	session.Occupied = nil
	session.Availability = nil
	if err := s.Sessions.Save(ctx, session, utils.BookingSessionTTL); err != nil {
		utils.GetLogger().Warn("failed to invalidate session intervals",
			zap.String("sessionID", session.SessionID), zap.Error(err))
	}
}
