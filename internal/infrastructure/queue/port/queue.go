package port

import (
	"context"
	"time"
)

// Task is a background job with a stable type name and an opaque payload.
// Payload encoding is up to the callers; this port stays serialization-free.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. Returning a non-nil error signals retry per the
// adapter's policy (tasks enqueued with MaxRetry < 0 are never retried).
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Zero values mean "unspecified";
// adapters map the rest to the backend as best-effort.
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	MaxRetry  int           // max retries; negative disables retries entirely
	Retention time.Duration // keep result metadata for this duration
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers. Run blocks until the context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
