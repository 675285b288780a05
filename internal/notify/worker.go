package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/store"
)

// pushHTTPTimeout bounds a single push provider call.
const pushHTTPTimeout = 10 * time.Second

// Worker consumes queued push deliveries and forwards them to the push
// provider. A recipient without a registered device token is simply
// skipped; that is the normal state for a user who never enabled push.
type Worker struct {
	server   *asynq.Server
	store    store.Store
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// WorkerConfig holds the worker settings.
type WorkerConfig struct {
	// Queue is the asynq queue to consume. Defaults to "notify".
	Queue string

	// Endpoint is the push provider URL.
	Endpoint string

	// Concurrency is the number of concurrent deliveries. Defaults to 10.
	Concurrency int
}

// NewWorker creates a push delivery worker reading device tokens from s.
func NewWorker(redisOpt asynq.RedisClientOpt, s store.Store, cfg WorkerConfig, logger *slog.Logger) *Worker {
	if cfg.Queue == "" {
		cfg.Queue = "notify"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{cfg.Queue: 1},
	})

	return &Worker{
		server:   server,
		store:    s,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: pushHTTPTimeout},
		logger:   logger,
	}
}

// Start runs the worker until Shutdown is called.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypePush, w.handlePush)
	return w.server.Run(mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// handlePush delivers one queued push notification.
func (w *Worker) handlePush(ctx context.Context, t *asynq.Task) error {
	var task pushTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return fmt.Errorf("decoding push task: %w", err)
	}

	token, err := w.store.PushToken(ctx, task.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			w.logger.Debug("no push token registered, skipping delivery",
				"user_id", task.UserID)
			return nil
		}
		return fmt.Errorf("loading push token for user %s: %w", task.UserID, err)
	}

	return w.send(ctx, token.Token, task.Payload)
}

// pushRequest is the provider wire format (Expo push API shape).
type pushRequest struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	Sound string            `json:"sound"`
}

// send posts a single notification to the push provider.
func (w *Worker) send(ctx context.Context, deviceToken string, payload Payload) error {
	body, err := json.Marshal(pushRequest{
		To:    deviceToken,
		Title: payload.Title,
		Body:  payload.Body,
		Data: map[string]string{
			"taskId": payload.TaskID,
			"type":   string(payload.Kind),
		},
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("encoding push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	return nil
}
