package tasks

import (
	"encoding/json"
	"time"

	"fitbook/models"

	"github.com/hibiken/asynq"
)

const TypeReservationComplete = "reservation:complete"

func NewReservationCompletionTask(payload models.ReservationCompletionPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReservationComplete, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqCompletionScheduler enqueues a completion task timed to the
// reservation's end instant.
type AsynqCompletionScheduler struct {
	Client *asynq.Client
}

func (s *AsynqCompletionScheduler) ScheduleCompletion(resv *models.Reservation) error {
	payload := models.ReservationCompletionPayload{
		ReservationID: resv.ID,
		FacilityID:    resv.FacilityID,
		EndTime:       resv.EndTime.Format(time.RFC3339),
	}
	task, opts, err := NewReservationCompletionTask(payload, resv.EndTime)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
