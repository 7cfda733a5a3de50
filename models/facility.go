package models

import "time"

// Facility represents a bookable gym or sports facility.
type Facility struct {
	ID         string    `bson:"id" json:"id"`                   // Unique facility identifier (e.g., UUID)
	Name       string    `bson:"name" json:"name"`               // Display name, e.g. "Court A"
	Category   string    `bson:"category" json:"category"`       // e.g. "gym", "futsal", "tennis"
	Location   string    `bson:"location" json:"location"`       // Free-form address or building/floor
	OpenHour   int       `bson:"open_hour" json:"openHour"`      // First bookable hour of the day (inclusive)
	CloseHour  int       `bson:"close_hour" json:"closeHour"`    // Last bookable hour of the day (exclusive)
	HourlyRate float64   `bson:"hourly_rate" json:"hourlyRate"`  // Price per booked hour
	Capacity   int       `bson:"capacity" json:"capacity"`       // Maximum people per reservation
	Active     bool      `bson:"active" json:"active"`           // Inactive facilities are hidden from browsing
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// OperatingHours returns the bookable hour range as [open, close).
func (f *Facility) OperatingHours() (int, int) {
	return f.OpenHour, f.CloseHour
}
