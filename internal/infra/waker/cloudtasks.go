//go:build gcloud

package waker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/hushd/hushd/internal/domain"
)

// CloudTasks arms wake-ups as scheduled Cloud Tasks that call back into the
// evaluation endpoint. Task names are never reused: each arm creates a fresh
// task and deletes the previously armed one, so at most one scheduled
// wake-up exists.
type CloudTasks struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int

	mu        sync.Mutex
	armedTask string
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasks(ctx context.Context, cfg CloudTasksConfig) (*CloudTasks, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasks{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

var _ domain.Waker = (*CloudTasks)(nil)

func (w *CloudTasks) Arm(ctx context.Context, at time.Time) error {
	taskID := "wake-" + uuid.NewString()
	taskName := fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/%s",
		w.projectID, w.locationID, w.queueID, taskID)

	task := &taskspb.Task{
		Name:         taskName,
		ScheduleTime: timestamppb.New(at),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        w.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	req := &taskspb.CreateTaskRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s/queues/%s",
			w.projectID, w.locationID, w.queueID),
		Task: task,
	}

	if err := w.createWithRetry(ctx, req); err != nil {
		return err
	}

	w.mu.Lock()
	prior := w.armedTask
	w.armedTask = taskName
	w.mu.Unlock()

	// Delete the replaced wake-up after the new one exists so a failure
	// between the two steps leaves a wake-up armed rather than none.
	if prior != "" {
		w.deleteTask(ctx, prior)
	}

	slog.InfoContext(ctx, "cloud tasks waker armed",
		slog.String("task", taskName),
		slog.Time("at", at),
	)
	return nil
}

func (w *CloudTasks) Stop() {
	w.mu.Lock()
	armed := w.armedTask
	w.armedTask = ""
	w.mu.Unlock()

	if armed != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		w.deleteTask(ctx, armed)
	}
}

func (w *CloudTasks) Close() error {
	return w.client.Close()
}

func (w *CloudTasks) createWithRetry(ctx context.Context, req *taskspb.CreateTaskRequest) error {
	var lastErr error
	for attempt := 0; attempt < w.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying wake-up task creation",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if _, err := w.client.CreateTask(ctx, req); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("failed to create wake-up task after %d retries: %w", w.maxRetries, lastErr)
}

func (w *CloudTasks) deleteTask(ctx context.Context, taskName string) {
	err := w.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskName})
	if err != nil && status.Code(err) != codes.NotFound {
		slog.WarnContext(ctx, "failed to delete replaced wake-up task",
			slog.String("task", taskName),
			slog.String("error", err.Error()),
		)
	}
}
