package models

import "time"

// Reservation status values. Pending and Confirmed reservations block their
// hours; Cancelled ones never do.
const (
	ReservationStatusPending   = "Pending"
	ReservationStatusConfirmed = "Confirmed"
	ReservationStatusCompleted = "Completed"
	ReservationStatusCancelled = "Cancelled"
)

// Reservation represents a booked time window on a facility.
type Reservation struct {
	ID          string    `bson:"id" json:"id"`                   // Unique reservation identifier (e.g., UUID)
	FacilityID  string    `bson:"facility_id" json:"facilityId"`  // Facility that was booked
	UserID      string    `bson:"user_id" json:"userId"`          // Member who made the reservation
	Date        string    `bson:"date" json:"date"`               // Booking date in "YYYY-MM-DD" format
	StartHour   int       `bson:"start_hour" json:"startHour"`    // First booked hour (inclusive)
	EndHour     int       `bson:"end_hour" json:"endHour"`        // End hour (exclusive)
	StartTime   time.Time `bson:"resv_start_time" json:"resvStartTime"`
	EndTime     time.Time `bson:"resv_end_time" json:"resvEndTime"`
	PersonCount int       `bson:"person_count" json:"personCount"`
	TotalPrice  float64   `bson:"total_price" json:"totalPrice"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// Interval returns the reservation's booked window as an occupied interval.
func (r *Reservation) Interval() OccupiedInterval {
	return OccupiedInterval{Start: r.StartTime, End: r.EndTime}
}

// OccupiedInterval is one already-booked window on a facility/date, as returned
// by the occupied-interval query. Half-open: Start is inclusive, End exclusive.
type OccupiedInterval struct {
	Start time.Time `bson:"resv_start_time" json:"resvStartTime"`
	End   time.Time `bson:"resv_end_time" json:"resvEndTime"`
}
