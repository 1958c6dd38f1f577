package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tupt100/lexops/internal/config"
)

type Client struct {
	client *asynq.Client
}

// C is the process-wide queue client, set during startup. When unset (tests,
// worker-less deployments) enqueues become logged no-ops: side effects like
// emails are best-effort and must never fail the write that triggered them.
var C *Client

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func EnqueueInvitationEmail(payload InvitationEmailPayload) {
	enqueue(TypeInvitationEmail, payload, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
}

func EnqueueNotificationPush(payload NotificationPushPayload) {
	enqueue(TypeNotificationPush, payload, asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
}

func enqueue(taskType string, payload interface{}, opts ...asynq.Option) {
	if C == nil {
		return
	}
	if err := C.enqueue(taskType, payload, opts...); err != nil {
		log.Printf("⚠️  Failed to enqueue %s: %v", taskType, err)
	}
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
