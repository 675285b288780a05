package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskTypePush is the asynq task type for queued push deliveries.
const TaskTypePush = "notify:push"

// pushTask is the JSON payload enqueued for the push worker.
type pushTask struct {
	UserID  string  `json:"user_id"`
	Payload Payload `json:"payload"`
}

// AsynqChannel implements Channel by enqueueing push deliveries onto a
// Redis-backed queue consumed by a Worker. Delivery stays fire-and-forget:
// a failed enqueue only means the live notification is skipped.
type AsynqChannel struct {
	client *asynq.Client
	queue  string
}

// NewAsynqChannel connects to Redis and returns a queue-backed live channel.
// The connection is verified up front so an unreachable broker surfaces at
// startup instead of on the first dispatch.
func NewAsynqChannel(redisOpt asynq.RedisClientOpt, queue string) (*AsynqChannel, error) {
	if queue == "" {
		queue = "notify"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisOpt.Addr,
		Password: redisOpt.Password,
		DB:       redisOpt.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", redisOpt.Addr, err)
	}

	return &AsynqChannel{
		client: asynq.NewClient(redisOpt),
		queue:  queue,
	}, nil
}

// Notify enqueues a push delivery for the recipient.
func (c *AsynqChannel) Notify(ctx context.Context, userID string, payload Payload) error {
	body, err := json.Marshal(pushTask{UserID: userID, Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding push task: %w", err)
	}

	t := asynq.NewTask(TaskTypePush, body)
	if _, err := c.client.EnqueueContext(ctx, t, asynq.Queue(c.queue)); err != nil {
		return fmt.Errorf("enqueueing push for user %s: %w", userID, err)
	}

	return nil
}

// Close releases the underlying queue client.
func (c *AsynqChannel) Close() error {
	return c.client.Close()
}
