package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBillingRun = "billing:run"

// BillingRunPayload describes one requested billing run.
type BillingRunPayload struct {
	Trigger     string    `json:"trigger"` // "cron" or "manual"
	RequestedAt time.Time `json:"requestedAt"`
}

// NewBillingRunTask builds the asynq task that executes one billing run.
// maxRetry is the single outer retry budget for a run that fails wholesale.
func NewBillingRunTask(payload BillingRunPayload, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBillingRun, b)
	opts := []asynq.Option{
		asynq.MaxRetry(maxRetry),
		asynq.Queue("billing"),
	}
	return task, opts, nil
}
