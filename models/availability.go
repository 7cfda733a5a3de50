package models

// CandidateWindow is the user's proposed start/end hour pair for a new
// reservation, pending validation. Hours are on the facility's selected date.
type CandidateWindow struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

// HourSlot is the derived per-hour occupancy for rendering.
type HourSlot struct {
	Hour     int  `json:"hour"`
	Occupied bool `json:"occupied"`
}

// DayAvailability is the per-hour availability grid for one facility/date.
// It is always rebuilt from the current occupied-interval set, never patched
// in place.
type DayAvailability struct {
	FacilityID string     `json:"facilityId"`
	Date       string     `json:"date"`
	Hours      []HourSlot `json:"hours"`
	// Error is set when interval data could not be fetched; every hour is then
	// reported occupied and submission must stay blocked.
	Error string `json:"availabilityError,omitempty"`
}
