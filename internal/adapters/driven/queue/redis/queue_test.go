package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// setupTestQueue creates a test Redis client and Queue
func setupTestQueue(t *testing.T) (*Queue, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	queue, err := NewQueue(client, "test-worker")
	if err != nil {
		t.Fatalf("failed to create queue: %v", err)
	}

	return queue, func() {
		client.Close()
		mr.Close()
	}
}

func TestNewQueue_RequiresClient(t *testing.T) {
	if _, err := NewQueue(nil, "worker"); err == nil {
		t.Fatal("expected an error for nil client")
	}
}

func TestQueue_EnqueueDequeue(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()
	ctx := context.Background()

	task := domain.NewIngestDocumentTask("/uploads/guide.pdf", "guide.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := queue.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a task")
	}
	if got.ID != task.ID {
		t.Errorf("expected task %s, got %s", task.ID, got.ID)
	}
	if got.Status != domain.TaskStatusProcessing {
		t.Errorf("expected processing status, got %s", got.Status)
	}
	if got.Path() != "/uploads/guide.pdf" || got.Filename() != "guide.pdf" {
		t.Errorf("payload lost in transit: %+v", got.Payload)
	}
}

func TestQueue_AckCompletesTask(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()
	ctx := context.Background()

	task := domain.NewIngestDocumentTask("/uploads/a.pdf", "a.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := queue.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := queue.Ack(ctx, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := queue.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected completed status, got %s", stored.Status)
	}
}

func TestQueue_NackSchedulesRetry(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()
	ctx := context.Background()

	task := domain.NewIngestDocumentTask("/uploads/a.pdf", "a.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := queue.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := queue.Nack(ctx, task.ID, "embedding service down"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := queue.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusPending {
		t.Errorf("expected pending status for retry, got %s", stored.Status)
	}
	if stored.Error != "embedding service down" {
		t.Errorf("expected the failure reason recorded, got %q", stored.Error)
	}
	if !stored.ScheduledFor.After(stored.UpdatedAt) {
		t.Error("expected a backoff delay before the retry")
	}
}

func TestQueue_NackExhaustedRetriesFails(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()
	ctx := context.Background()

	task := domain.NewIngestDocumentTask("/uploads/a.pdf", "a.pdf")
	task.MaxAttempts = 1
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := queue.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := queue.Nack(ctx, task.ID, "still broken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := queue.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusFailed {
		t.Errorf("expected failed status after retry exhaustion, got %s", stored.Status)
	}
}

func TestQueue_GetTaskNotFound(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()

	_, err := queue.GetTask(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQueue_Ping(t *testing.T) {
	queue, cleanup := setupTestQueue(t)
	defer cleanup()

	if err := queue.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
