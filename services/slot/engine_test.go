package slot

import (
	"errors"
	"testing"
	"time"

	"fitbook/models"

	"github.com/stretchr/testify/assert"
)

func datetime(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

var testDay = datetime(2026, 9, 14, 0)

func interval(startHour, endHour int) models.OccupiedInterval {
	return models.OccupiedInterval{
		Start: datetime(2026, 9, 14, startHour),
		End:   datetime(2026, 9, 14, endHour),
	}
}

func TestIsHourOccupied_HalfOpenBoundaries(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(9, 11)}

	assert.False(t, IsHourOccupied(testDay, 8, occupied))
	assert.True(t, IsHourOccupied(testDay, 9, occupied))
	assert.True(t, IsHourOccupied(testDay, 10, occupied))
	// The exclusive end hour stays free for a booking starting there.
	assert.False(t, IsHourOccupied(testDay, 11, occupied))
}

func TestIsHourOccupied_EmptySet(t *testing.T) {
	for h := 0; h < 24; h++ {
		assert.False(t, IsHourOccupied(testDay, h, nil))
	}
}

func TestIsHourOccupied_AnyIntervalBlocks(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(9, 10), interval(14, 16)}

	assert.True(t, IsHourOccupied(testDay, 9, occupied))
	assert.True(t, IsHourOccupied(testDay, 15, occupied))
	assert.False(t, IsHourOccupied(testDay, 12, occupied))
}

func TestValidateWindow_AdjacencyIsNotConflict(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(9, 11)}

	// Touching the boundary hour is fine.
	err := ValidateWindow(testDay, models.CandidateWindow{StartHour: 11, EndHour: 13}, 9, 21, occupied)
	assert.NoError(t, err)

	// Overlapping hour 10 is not.
	err = ValidateWindow(testDay, models.CandidateWindow{StartHour: 10, EndHour: 12}, 9, 21, occupied)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 10, conflict.Hour)
}

func TestValidateWindow_AllOrNothing(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(14, 15)}

	// Only one of the three requested hours conflicts; the whole window fails.
	err := ValidateWindow(testDay, models.CandidateWindow{StartHour: 13, EndHour: 16}, 9, 21, occupied)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 14, conflict.Hour)
}

func TestValidateWindow_EmptyOccupiedSet(t *testing.T) {
	err := ValidateWindow(testDay, models.CandidateWindow{StartHour: 9, EndHour: 21}, 9, 21, nil)
	assert.NoError(t, err)
}

func TestValidateWindow_RejectsBadShapes(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(9, 11)}

	cases := []models.CandidateWindow{
		{StartHour: 10, EndHour: 10}, // empty
		{StartHour: 12, EndHour: 9},  // inverted
		{StartHour: 8, EndHour: 10},  // starts before opening
		{StartHour: 19, EndHour: 22}, // ends after closing
	}
	for _, win := range cases {
		err := ValidateWindow(testDay, win, 9, 21, occupied)
		assert.ErrorIs(t, err, ErrInvalidWindow, "window %+v", win)
	}
}

func TestComputePrice(t *testing.T) {
	assert.Equal(t, 30000.0, ComputePrice(models.CandidateWindow{StartHour: 9, EndHour: 12}, 10000))
	assert.Equal(t, 0.0, ComputePrice(models.CandidateWindow{StartHour: 12, EndHour: 9}, 10000))
	assert.Equal(t, 0.0, ComputePrice(models.CandidateWindow{StartHour: 10, EndHour: 10}, 10000))
}

// Walk the scenario from the booking flow end to end: facility open 09-21 at
// 15000/hour with an existing 16:00-18:00 reservation.
func TestValidateWindow_BookingScenario(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(16, 18)}

	// 15:00-17:00 overlaps hour 16 and is rejected locally.
	err := ValidateWindow(testDay, models.CandidateWindow{StartHour: 15, EndHour: 17}, 9, 21, occupied)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 16, conflict.Hour)

	// 18:00-20:00 starts on the exclusive boundary and is valid.
	win := models.CandidateWindow{StartHour: 18, EndHour: 20}
	assert.NoError(t, ValidateWindow(testDay, win, 9, 21, occupied))
	assert.Equal(t, 30000.0, ComputePrice(win, 15000))
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-09-14", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, testDay, day)

	_, err = ParseDay("14-09-2026", time.UTC)
	assert.Error(t, err)
}
