package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitbook/models"
	"fitbook/services/reservation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubBookingService struct {
	confirmErr error
}

func (s *stubBookingService) StartSession(context.Context, string, string, string) (*models.BookingSession, error) {
	return &models.BookingSession{SessionID: "sess-1"}, nil
}

func (s *stubBookingService) SelectDate(context.Context, string, string) (*models.BookingSession, error) {
	return &models.BookingSession{SessionID: "sess-1"}, nil
}

func (s *stubBookingService) Confirm(context.Context, string, models.CandidateWindow, int) (*models.Reservation, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &models.Reservation{ID: "resv-1", Status: models.ReservationStatusConfirmed}, nil
}

func (s *stubBookingService) CancelSession(context.Context, string) error { return nil }

func confirmRequest(t *testing.T, svc reservation.BookingSessionService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewBookingHandler(svc, nil)
	router.POST("/api/bookings/session/:sessionID/confirm", handler.ConfirmHandler)

	body := `{"window":{"date":"2026-09-14","startHour":10,"endHour":12},"personCount":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/session/sess-1/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Conflicts answer 409 ("pick another time"), bad requests 400, and store
// outages 503. Clients rely on the distinction.
func TestConfirmHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		confirmErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"local conflict", reservation.NewFlowError(reservation.CodeConflict, "hour 10:00 is already booked"), http.StatusConflict},
		{"server conflict", reservation.NewFlowError(reservation.CodeServerConflict, "window just booked"), http.StatusConflict},
		{"invalid window", reservation.NewFlowError(reservation.CodeInvalidWindow, "start must be before end"), http.StatusBadRequest},
		{"transport failure", reservation.NewFlowError(reservation.CodeTransportFailure, "store unreachable"), http.StatusServiceUnavailable},
		{"expired session", reservation.ErrSessionNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := confirmRequest(t, &stubBookingService{confirmErr: tc.confirmErr})
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
