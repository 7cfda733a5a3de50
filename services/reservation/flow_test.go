package reservation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	facilityRepo "fitbook/database/repository/facility"
	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/models"
	"fitbook/services/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dateA = "2026-09-14"
	dateB = "2026-09-15"
)

// memSessionStore mimics the Redis store, including its JSON round-trip, so
// sessions read back are copies rather than shared pointers.
type memSessionStore struct {
	sessions map[string][]byte
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string][]byte)}
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessionStore) Save(_ context.Context, session *models.BookingSession, _ time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.SessionID] = data
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type fakeFacilityRepo struct {
	facility models.Facility
}

func (r *fakeFacilityRepo) GetByID(id string) (*models.Facility, error) {
	if id != r.facility.ID {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	f := r.facility
	return &f, nil
}

func (r *fakeFacilityRepo) List(string) ([]models.Facility, error) { return nil, nil }
func (r *fakeFacilityRepo) Create(*models.Facility) error          { return nil }
func (r *fakeFacilityRepo) Update(*models.Facility) error          { return nil }
func (r *fakeFacilityRepo) Delete(string) error                    { return nil }

type fakeReservationRepo struct {
	intervals map[string][]models.OccupiedInterval // keyed by date
	fetchErr  error
	onFetch   func(date string)
	createErr error
	created   []*models.Reservation
}

func (r *fakeReservationRepo) OccupiedIntervals(_ context.Context, _ string, date string) ([]models.OccupiedInterval, error) {
	if r.onFetch != nil {
		r.onFetch(date)
	}
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.intervals[date], nil
}

func (r *fakeReservationRepo) Create(_ context.Context, resv *models.Reservation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, resv)
	return nil
}

func (r *fakeReservationRepo) GetByID(context.Context, string) (*models.Reservation, error) {
	return nil, reservationRepo.ErrReservationNotFound
}
func (r *fakeReservationRepo) ListByUser(context.Context, string) ([]models.Reservation, error) {
	return nil, nil
}
func (r *fakeReservationRepo) CancelByUser(context.Context, string, string) error { return nil }
func (r *fakeReservationRepo) MarkCompleted(context.Context, string) error { return nil }

type fakeCompletion struct {
	scheduled []string
}

func (c *fakeCompletion) ScheduleCompletion(resv *models.Reservation) error {
	c.scheduled = append(c.scheduled, resv.ID)
	return nil
}

func hourOn(date string, hour int) time.Time {
	day, _ := slot.ParseDay(date, time.Local)
	return slot.HourStart(day, hour)
}

func newTestService(repo *fakeReservationRepo) (*DefaultBookingSessionService, *memSessionStore, *fakeCompletion) {
	store := newMemSessionStore()
	completion := &fakeCompletion{}
	svc := &DefaultBookingSessionService{
		Sessions: store,
		FacilityRepo: &fakeFacilityRepo{facility: models.Facility{
			ID:         "fac-1",
			Name:       "Court A",
			OpenHour:   9,
			CloseHour:  21,
			HourlyRate: 15000,
			Capacity:   10,
			Active:     true,
		}},
		ReservationRepo: repo,
		Completion:      completion,
	}
	return svc, store, completion
}

func TestBookingFlow_HappyPath(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReservationRepo{intervals: map[string][]models.OccupiedInterval{
		dateA: {{Start: hourOn(dateA, 16), End: hourOn(dateA, 18)}},
	}}
	svc, store, completion := newTestService(repo)

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)

	session, err = svc.SelectDate(ctx, session.SessionID, dateA)
	require.NoError(t, err)
	assert.True(t, session.IntervalsReady())
	require.NotNil(t, session.Availability)
	assert.Len(t, session.Availability.Hours, 12)

	// 18:00-20:00 starts on the existing booking's exclusive boundary.
	resv, err := svc.Confirm(ctx, session.SessionID, models.CandidateWindow{StartHour: 18, EndHour: 20}, 4)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, resv.TotalPrice)
	assert.Equal(t, models.ReservationStatusConfirmed, resv.Status)
	assert.Equal(t, hourOn(dateA, 18), resv.StartTime)
	assert.Equal(t, hourOn(dateA, 20), resv.EndTime)

	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{resv.ID}, completion.scheduled)

	// Session is cleared after a successful confirmation.
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookingFlow_LocalConflictBlocksSubmission(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReservationRepo{intervals: map[string][]models.OccupiedInterval{
		dateA: {{Start: hourOn(dateA, 16), End: hourOn(dateA, 18)}},
	}}
	svc, _, _ := newTestService(repo)

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, dateA)
	require.NoError(t, err)

	// 15:00-17:00 overlaps hour 16; blocked locally, no store call.
	_, err = svc.Confirm(ctx, session.SessionID, models.CandidateWindow{StartHour: 15, EndHour: 17}, 2)
	assert.True(t, HasCode(err, CodeConflict))
	assert.Empty(t, repo.created)
}

func TestBookingFlow_InvalidWindowRejectedBeforeConflictCheck(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReservationRepo{}
	svc, _, _ := newTestService(repo)

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, dateA)
	require.NoError(t, err)

	for _, win := range []models.CandidateWindow{
		{StartHour: 10, EndHour: 10},
		{StartHour: 12, EndHour: 9},
		{StartHour: 8, EndHour: 10},
	} {
		_, err = svc.Confirm(ctx, session.SessionID, win, 2)
		assert.True(t, HasCode(err, CodeInvalidWindow), "window %+v", win)
	}
	assert.Empty(t, repo.created)
}

func TestBookingFlow_ServerConflictIsAuthoritative(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReservationRepo{createErr: reservationRepo.ErrReservationConflict}
	svc, store, _ := newTestService(repo)

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, dateA)
	require.NoError(t, err)

	// Locally clean window; the store still rejects and its answer is final.
	_, err = svc.Confirm(ctx, session.SessionID, models.CandidateWindow{StartHour: 10, EndHour: 12}, 2)
	assert.True(t, HasCode(err, CodeServerConflict))

	// The cached interval set is invalidated so the next render refetches.
	session, err = store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.False(t, session.IntervalsReady())
}

func TestBookingFlow_FetchFailureFailsClosed(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReservationRepo{fetchErr: assert.AnError}
	svc, _, _ := newTestService(repo)

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)

	session, err = svc.SelectDate(ctx, session.SessionID, dateA)
	require.NoError(t, err)
	require.NotNil(t, session.Availability)
	assert.NotEmpty(t, session.AvailabilityError)
	for _, h := range session.Availability.Hours {
		assert.True(t, h.Occupied, "hour %d must render blocked", h.Hour)
	}

	// Submission stays blocked until a fetch succeeds.
	_, err = svc.Confirm(ctx, session.SessionID, models.CandidateWindow{StartHour: 10, EndHour: 12}, 2)
	assert.True(t, HasCode(err, CodeTransportFailure))
	assert.Empty(t, repo.created)
}

func TestBookingFlow_StaleFetchIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	repo := &fakeReservationRepo{intervals: map[string][]models.OccupiedInterval{
		dateA: {{Start: hourOn(dateA, 9), End: hourOn(dateA, 21)}},
		dateB: nil,
	}}
	svc, _, _ := newTestService(repo)
	svc.Sessions = store

	session, err := svc.StartSession(ctx, "user-1", "device-1", "fac-1")
	require.NoError(t, err)
	sessionID := session.SessionID

	// While dateA's interval fetch is in flight, the user switches to dateB
	// and that selection completes first.
	repo.onFetch = func(date string) {
		if date != dateA {
			return
		}
		current, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		day, _ := slot.ParseDay(dateB, time.Local)
		avail := slot.BuildDayAvailability("fac-1", day, 9, 21, nil)
		current.SelectedDate = dateB
		current.IntervalsFor = dateB
		current.Occupied = nil
		current.Availability = &avail
		require.NoError(t, store.Save(ctx, current, time.Minute))
	}

	got, err := svc.SelectDate(ctx, sessionID, dateA)
	require.NoError(t, err)

	// dateA's fully-booked interval set must not overwrite dateB's view.
	assert.Equal(t, dateB, got.SelectedDate)
	assert.Equal(t, dateB, got.IntervalsFor)
	require.NotNil(t, got.Availability)
	assert.Equal(t, dateB, got.Availability.Date)
	for _, h := range got.Availability.Hours {
		assert.False(t, h.Occupied, "hour %d belongs to dateB and is free", h.Hour)
	}
}
