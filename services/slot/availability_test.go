package slot

import (
	"testing"

	"fitbook/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildDayAvailability_FullyOpen(t *testing.T) {
	avail := BuildDayAvailability("fac-1", testDay, 9, 21, nil)

	assert.Equal(t, "fac-1", avail.FacilityID)
	assert.Equal(t, "2026-09-14", avail.Date)
	assert.Len(t, avail.Hours, 12)
	for _, h := range avail.Hours {
		assert.False(t, h.Occupied, "hour %d", h.Hour)
	}
}

func TestBuildDayAvailability_MarksOccupiedHours(t *testing.T) {
	occupied := []models.OccupiedInterval{interval(16, 18)}
	avail := BuildDayAvailability("fac-1", testDay, 9, 21, occupied)

	byHour := make(map[int]bool, len(avail.Hours))
	for _, h := range avail.Hours {
		byHour[h.Hour] = h.Occupied
	}
	assert.False(t, byHour[15])
	assert.True(t, byHour[16])
	assert.True(t, byHour[17])
	assert.False(t, byHour[18])
}

func TestBlockedDayAvailability_FailClosed(t *testing.T) {
	avail := BlockedDayAvailability("fac-1", "2026-09-14", 9, 21, "interval fetch failed")

	assert.Equal(t, "interval fetch failed", avail.Error)
	assert.Len(t, avail.Hours, 12)
	for _, h := range avail.Hours {
		assert.True(t, h.Occupied, "hour %d must fail closed", h.Hour)
	}
}
