package models

// ReservationCompletionPayload is the asynq task payload that flips a
// reservation to Completed once its end time has passed.
type ReservationCompletionPayload struct {
	ReservationID string `json:"reservationId"`
	FacilityID    string `json:"facilityId"`
	EndTime       string `json:"endTime"` // RFC 3339
}
