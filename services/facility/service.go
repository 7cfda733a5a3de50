package facility

import (
	"context"
	"encoding/json"
	"time"

	facilityRepo "fitbook/database/repository/facility"
	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/models"
	"fitbook/services/slot"
	"fitbook/utils"

	"go.uber.org/zap"
)

// FacilityService exposes facility browsing and the per-date availability
// grid.
type FacilityService interface {
	GetFacility(ctx context.Context, id string) (*models.Facility, error)
	ListFacilities(ctx context.Context, category string) ([]models.Facility, error)
	// DayAvailability returns the per-hour occupancy grid for one facility and
	// date. When the occupied-interval query fails the grid comes back fully
	// blocked with its Error field set (fail-closed), together with the error.
	DayAvailability(ctx context.Context, facilityID, date string) (*models.DayAvailability, error)
}

// DefaultFacilityService implements FacilityService with a Redis read-through
// cache for facility metadata.
type DefaultFacilityService struct {
	Repo            facilityRepo.FacilityRepository
	ReservationRepo reservationRepo.ReservationRepository
}

func (s *DefaultFacilityService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	logger := utils.GetLogger()
	cache := utils.GetCacheClient()
	cacheKey := utils.FacilityCachePrefix + id

	if data, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var facility models.Facility
		if err := json.Unmarshal([]byte(data), &facility); err == nil {
			return &facility, nil
		}
		// Corrupt cache entry; fall through to the repo.
	}

	facility, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(facility); err == nil {
		if err := cache.Set(ctx, cacheKey, data, utils.FacilityCacheTTL).Err(); err != nil {
			logger.Warn("failed to cache facility metadata", zap.String("facilityID", id), zap.Error(err))
		}
	}
	return facility, nil
}

func (s *DefaultFacilityService) ListFacilities(ctx context.Context, category string) ([]models.Facility, error) {
	return s.Repo.List(category)
}

func (s *DefaultFacilityService) DayAvailability(ctx context.Context, facilityID, date string) (*models.DayAvailability, error) {
	logger := utils.GetLogger()

	facility, err := s.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	day, err := slot.ParseDay(date, time.Local)
	if err != nil {
		return nil, err
	}

	openHour, closeHour := facility.OperatingHours()
	intervals, err := s.ReservationRepo.OccupiedIntervals(ctx, facilityID, date)
	if err != nil {
		logger.Error("occupied-interval fetch failed, rendering blocked grid",
			zap.String("facilityID", facilityID),
			zap.String("date", date),
			zap.Error(err))
		blocked := slot.BlockedDayAvailability(facilityID, date, openHour, closeHour,
			"availability could not be loaded")
		return &blocked, err
	}

	avail := slot.BuildDayAvailability(facilityID, day, openHour, closeHour, intervals)
	return &avail, nil
}
