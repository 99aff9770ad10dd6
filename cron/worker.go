package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"stayease/config"
	"stayease/services/billing"
	"stayease/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	cronlib "github.com/robfig/cron/v3"
)

// InitBillingWorker runs the async billing worker in background and wires
// the daily cron enqueue. The billing queue runs one task at a time: a run
// already walks customers concurrently, and overlapping runs would only
// race each other into duplicate-key no-ops.
func InitBillingWorker(resolver *billing.Resolver) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBillingQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"billing": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBillingRun, handleBillingRun(resolver))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[BillingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BillingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BillingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	startScheduler(redisOpts)
}

// startScheduler enqueues the daily billing run per the configured cron spec.
func startScheduler(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)

	c := cronlib.New()
	_, err := c.AddFunc(config.AppConfig.Billing.CronSpec, func() {
		payload := tasks.BillingRunPayload{Trigger: "cron", RequestedAt: time.Now()}
		task, opts, err := tasks.NewBillingRunTask(payload, config.AppConfig.Billing.JobMaxRetry)
		if err != nil {
			log.Printf("[BillingScheduler] failed to build task: %v", err)
			return
		}
		if _, err := client.Enqueue(task, opts...); err != nil {
			log.Printf("[BillingScheduler] failed to enqueue billing run: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[BillingScheduler] bad cron spec %q: %v", config.AppConfig.Billing.CronSpec, err)
	}
	c.Start()
	log.Printf("[BillingScheduler] daily billing run scheduled (%s)", config.AppConfig.Billing.CronSpec)
}

func handleBillingRun(resolver *billing.Resolver) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.BillingRunPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[BillingWorker] invalid payload: %v", err)
			return err
		}

		log.Printf("[BillingWorker] billing run starting (trigger=%s)", p.Trigger)
		report, err := resolver.Run(ctx)
		if err != nil {
			// Listing customers failed; let asynq retry the whole run once.
			log.Printf("[BillingWorker] billing run failed: %v", err)
			return err
		}

		log.Printf("[BillingWorker] billing run done: %d bookings, %d obligations, %d reminders, %d warnings, %d failed",
			report.Bookings, report.ObligationsCreated, report.RemindersSent, report.LateWarnings, report.Failed)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBillingQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[BillingWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
