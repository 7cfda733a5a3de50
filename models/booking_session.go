package models

// BookingSession is the in-flight reservation flow for one member, held in
// Redis between facility selection and confirmation.
//
// Occupied and Availability are only meaningful while IntervalsFor equals
// SelectedDate: the interval set is refetched whenever the date changes, and a
// fetch that resolves for an out-of-date selection is discarded.
type BookingSession struct {
	SessionID  string   `json:"sessionId"`
	UserID     string   `json:"userId"`
	DeviceID   string   `json:"deviceId"`
	FacilityID string   `json:"facilityId"`
	Facility   Facility `json:"facility"` // metadata snapshot: operating hours, hourly rate

	SelectedDate string `json:"selectedDate,omitempty"` // "YYYY-MM-DD"

	// IntervalsFor tags which date the occupied set below was fetched for.
	IntervalsFor string             `json:"intervalsFor,omitempty"`
	Occupied     []OccupiedInterval `json:"occupied,omitempty"`

	Availability      *DayAvailability `json:"availability,omitempty"`
	AvailabilityError string           `json:"availabilityError,omitempty"`
}

// IntervalsReady reports whether the session holds interval data usable for
// validating a window on the currently selected date.
func (s *BookingSession) IntervalsReady() bool {
	return s.SelectedDate != "" && s.IntervalsFor == s.SelectedDate && s.AvailabilityError == ""
}
