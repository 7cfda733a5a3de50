package facilityRepo

import (
	"errors"

	"fitbook/models"
)

// ErrFacilityNotFound is returned when no facility matches the given ID.
var ErrFacilityNotFound = errors.New("facility not found")

// FacilityRepository defines the interface for facility metadata access.
type FacilityRepository interface {
	GetByID(id string) (*models.Facility, error)
	List(category string) ([]models.Facility, error)
	Create(facility *models.Facility) error
	Update(facility *models.Facility) error
	Delete(id string) error
}
