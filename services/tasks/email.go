package tasks

import (
	"encoding/json"
	"time"

	"meddirect/models"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// Enqueuer hands mail work to the background worker. Request paths treat
// enqueue failures as best-effort.
type Enqueuer interface {
	EnqueueEmail(payload models.EmailPayload, delay time.Duration) error
}

// NewEmailTask builds the asynq task for an outbound email.
func NewEmailTask(payload models.EmailPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	var opts []asynq.Option
	if delay > 0 {
		opts = append(opts, asynq.ProcessIn(delay))
	}
	return task, opts, nil
}

// AsynqEnqueuer is the production Enqueuer backed by an asynq client.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEnqueuer) EnqueueEmail(payload models.EmailPayload, delay time.Duration) error {
	task, opts, err := NewEmailTask(payload, delay)
	if err != nil {
		return err
	}
	_, err = e.Client.Enqueue(task, opts...)
	return err
}
