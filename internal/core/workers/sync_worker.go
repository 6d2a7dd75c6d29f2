package workers

import (
	"context"
	"errors"
	"log"
)

const DefaultQueueSize = 256

var ErrQueueFull = errors.New("sync queue full")

// SyncJob is one write-through call against a backend.
type SyncJob struct {
	UserID string
	Op     string
	Apply  func(ctx context.Context) error
}

// Hooks observe job outcomes. Either field may be nil.
type Hooks struct {
	OnSuccess func(job SyncJob)
	OnFailure func(job SyncJob, err error)
}

// SyncWorker applies persistence jobs in FIFO order on a single goroutine.
// Callers never wait for a job to finish.
type SyncWorker struct {
	jobs  chan SyncJob
	hooks Hooks
	done  chan struct{}
}

func NewSyncWorker(queueSize int, hooks Hooks) *SyncWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &SyncWorker{
		jobs:  make(chan SyncJob, queueSize),
		hooks: hooks,
		done:  make(chan struct{}),
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		log.Println("[SYNC] worker started in background...")
		for {
			if ctx.Err() != nil {
				w.shutdown(ctx)
				return
			}
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.shutdown(ctx)
				return
			}
		}
	}()
}

// Done is closed once the worker has drained its queue after shutdown.
func (w *SyncWorker) Done() <-chan struct{} {
	return w.done
}

func (w *SyncWorker) Enqueue(job SyncJob) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		log.Printf("[SYNC] queue full! Dropping %s for user %s", job.Op, job.UserID)
		w.fail(job, ErrQueueFull)
		return ErrQueueFull
	}
}

// shutdown flushes what is already queued so accepted writes are not lost.
func (w *SyncWorker) shutdown(ctx context.Context) {
	w.drain(context.WithoutCancel(ctx))
	log.Println("[SYNC] worker shutting down...")
}

func (w *SyncWorker) drain(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
		default:
			return
		}
	}
}

func (w *SyncWorker) processJob(ctx context.Context, job SyncJob) {
	if err := job.Apply(ctx); err != nil {
		log.Printf("[SYNC] %s failed for user %s: %v", job.Op, job.UserID, err)
		w.fail(job, err)
		return
	}
	if w.hooks.OnSuccess != nil {
		w.hooks.OnSuccess(job)
	}
}

func (w *SyncWorker) fail(job SyncJob, err error) {
	if w.hooks.OnFailure != nil {
		w.hooks.OnFailure(job, err)
	}
}
