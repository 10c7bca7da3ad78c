package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"diarista/config"
	shiftRepo "diarista/database/repository/shift"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeOvertimeSweep = "shift:overtime_sweep"

// sweepPayload carries the calendar day a sweep task covers.
type sweepPayload struct {
	Date string `json:"date"`
}

// InitShiftWorker runs the async worker in background. It periodically
// sweeps open shifts and flags the ones past the overtime boundary.
func InitShiftWorker(shifts shiftRepo.ShiftRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(TypeOvertimeSweep, handleOvertimeSweep(shifts))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Enqueue a sweep task every 15 minutes.
	go enqueueSweeps(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[ShiftWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ShiftWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ShiftWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// enqueueSweeps periodically schedules an overtime sweep for the current day.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		payload, err := json.Marshal(sweepPayload{Date: time.Now().Format("2006-01-02")})
		if err != nil {
			log.Printf("[ShiftWorker] Failed to marshal sweep payload: %v", err)
			continue
		}
		task := asynq.NewTask(TypeOvertimeSweep, payload)
		if _, err := client.Enqueue(task, asynq.MaxRetry(2)); err != nil {
			log.Printf("[ShiftWorker] Failed to enqueue sweep: %v", err)
		}
	}
}

func handleOvertimeSweep(shifts shiftRepo.ShiftRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p sweepPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[OvertimeSweep] Invalid payload: %v", err)
			return err
		}

		open, err := shifts.ListOpen(p.Date)
		if err != nil {
			log.Printf("[OvertimeSweep] Failed to list open shifts for %s: %v", p.Date, err)
			return err
		}

		now := time.Now()
		threshold := config.OvertimeThreshold()
		flagged := 0
		for i := range open {
			if open[i].Overtime(now, threshold) {
				hours, _ := open[i].HoursWorked(now)
				log.Printf("[OvertimeSweep] Shift %s (engagement %s) at %.2fh, past the %.1fh boundary",
					open[i].ID, open[i].EngagementID, hours, threshold)
				flagged++
			}
		}

		log.Printf("[OvertimeSweep] Swept %d open shifts for %s, %d past boundary", len(open), p.Date, flagged)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ShiftWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
