package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fitbook/config"
	"fitbook/models"

	reservationRepo "fitbook/database/repository/reservation"
	"fitbook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitCompletionWorker runs the async worker in background. It consumes the
// delayed completion tasks enqueued at confirmation time and flips each
// reservation from Confirmed to Completed.
func InitCompletionWorker(repo reservationRepo.ReservationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationComplete, handleCompletionTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(repo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReservationCompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompletionHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[CompletionHandler] completing reservation %s (facility %s, ended %s)", p.ReservationID, p.FacilityID, p.EndTime)

		// MarkCompleted is a no-op for reservations cancelled in the meantime.
		if err := repo.MarkCompleted(ctx, p.ReservationID); err != nil {
			log.Printf("[CompletionHandler] failed to mark reservation %s completed: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CompletionWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
