package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven/mocks"
)

// stubIngestService records calls and returns a configurable result
type stubIngestService struct {
	mu        sync.Mutex
	filenames []string
	payloads  [][]byte
	err       error
}

func (s *stubIngestService) Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filenames = append(s.filenames, filename)
	s.payloads = append(s.payloads, data)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.IngestResult{
		DocumentID: domain.DocumentID(filename),
		Filename:   filename,
		PageCount:  1,
		ChunkCount: 2,
	}, nil
}

func (s *stubIngestService) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filenames)
}

func newTestWorker(queue *mocks.MockTaskQueue, ingest *stubIngestService) *Worker {
	return New(Config{
		TaskQueue:     queue,
		IngestService: ingest,
	})
}

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write upload: %v", err)
	}
	return path
}

func TestWorker_ProcessTask_IngestsDocument(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{}
	w := newTestWorker(queue, ingest)
	ctx := context.Background()

	path := writeUpload(t, "guide.pdf", "pdf bytes")
	task := domain.NewIngestDocumentTask(path, "guide.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.processTask(ctx, task, w.logger)

	if ingest.calls() != 1 {
		t.Fatalf("expected 1 ingest call, got %d", ingest.calls())
	}
	if ingest.filenames[0] != "guide.pdf" {
		t.Errorf("expected filename guide.pdf, got %s", ingest.filenames[0])
	}
	if string(ingest.payloads[0]) != "pdf bytes" {
		t.Errorf("expected the file contents to reach the ingest service")
	}
	if len(queue.AckedIDs) != 1 || queue.AckedIDs[0] != task.ID {
		t.Errorf("expected task %s acked, got %v", task.ID, queue.AckedIDs)
	}
}

func TestWorker_ProcessTask_NacksOnIngestFailure(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{err: errors.New("embedding service down")}
	w := newTestWorker(queue, ingest)
	ctx := context.Background()

	path := writeUpload(t, "guide.pdf", "pdf bytes")
	task := domain.NewIngestDocumentTask(path, "guide.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.processTask(ctx, task, w.logger)

	if len(queue.NackedIDs) != 1 || queue.NackedIDs[0] != task.ID {
		t.Errorf("expected task %s nacked, got %v", task.ID, queue.NackedIDs)
	}
	if len(queue.AckedIDs) != 0 {
		t.Errorf("expected no acks, got %v", queue.AckedIDs)
	}
}

func TestWorker_ProcessTask_NacksOnMissingFile(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{}
	w := newTestWorker(queue, ingest)
	ctx := context.Background()

	task := domain.NewIngestDocumentTask("/nonexistent/guide.pdf", "guide.pdf")
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.processTask(ctx, task, w.logger)

	if ingest.calls() != 0 {
		t.Errorf("expected no ingest calls, got %d", ingest.calls())
	}
	if len(queue.NackedIDs) != 1 {
		t.Errorf("expected the task nacked, got %v", queue.NackedIDs)
	}
}

func TestWorker_ProcessTask_NacksOnIncompletePayload(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{}
	w := newTestWorker(queue, ingest)
	ctx := context.Background()

	task := domain.NewTask(domain.TaskTypeIngestDocument, map[string]string{"path": "/uploads/a.pdf"})
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.processTask(ctx, task, w.logger)

	if ingest.calls() != 0 {
		t.Errorf("expected no ingest calls, got %d", ingest.calls())
	}
	if len(queue.NackedIDs) != 1 {
		t.Errorf("expected the task nacked, got %v", queue.NackedIDs)
	}
}

func TestWorker_ProcessTask_NacksUnknownType(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{}
	w := newTestWorker(queue, ingest)
	ctx := context.Background()

	task := domain.NewTask(domain.TaskType("reindex_all"), nil)
	if err := queue.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.processTask(ctx, task, w.logger)

	if len(queue.NackedIDs) != 1 {
		t.Errorf("expected the task nacked, got %v", queue.NackedIDs)
	}
}

func TestWorker_StartStop_DrainsQueue(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	ingest := &stubIngestService{}
	w := New(Config{
		TaskQueue:      queue,
		IngestService:  ingest,
		Concurrency:    2,
		DequeueTimeout: 1,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		path := writeUpload(t, "guide.pdf", "pdf bytes")
		if err := queue.Enqueue(ctx, domain.NewIngestDocumentTask(path, "guide.pdf")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for ingest.calls() < 3 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for tasks, processed %d", ingest.calls())
		case <-time.After(10 * time.Millisecond):
		}
	}

	w.Stop()

	if queue.PendingCount() != 0 {
		t.Errorf("expected an empty queue, %d pending", queue.PendingCount())
	}
}

func TestWorker_Start_Idempotent(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	w := newTestWorker(queue, &stubIngestService{})
	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Fatalf("unexpected error on second start: %v", err)
	}
	w.Stop()
	// Stop on a stopped worker is a no-op
	w.Stop()
}

func TestWorker_Health(t *testing.T) {
	queue := mocks.NewMockTaskQueue()
	w := newTestWorker(queue, &stubIngestService{})
	ctx := context.Background()

	health := w.Health(ctx)
	if health.Running {
		t.Error("expected not running before start")
	}
	if !health.QueueHealth {
		t.Error("expected a healthy queue")
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Stop()

	health = w.Health(ctx)
	if !health.Running {
		t.Error("expected running after start")
	}
}
