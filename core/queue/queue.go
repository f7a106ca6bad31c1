package queue

import (
	"context"
	"encoding/json"
	"event-booking-api/core/config"
	"event-booking-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task types processed by the background worker.
const (
	TaskTypeEventStatus = "notification:event_status"
)

// EventStatusPayload is enqueued whenever an admin changes an event
// request, so the owning user gets an in-app notification.
type EventStatusPayload struct {
	Email     string `json:"email"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Change    string `json:"change"` // "status" or "schedule"
}

// Enqueuer is what services depend on; tests swap in a recorder.
type Enqueuer interface {
	EnqueueEventStatus(ctx context.Context, payload EventStatusPayload) error
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) EnqueueEventStatus(ctx context.Context, payload EventStatusPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeEventStatus, data)
	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		logger.Error("Queue:EnqueueEventStatus:Error:", err)
		return err
	}

	logger.Debug("Queue:EnqueueEventStatus", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NewServer builds the asynq consumer side. Handlers are registered by the
// caller on the returned mux before Start.
func NewServer(cfg config.RedisConfig) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
	return srv, asynq.NewServeMux()
}
