package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcomeRecorder struct {
	mu       sync.Mutex
	ok       []string
	failed   []string
	lastErrs []error
}

func (r *outcomeRecorder) hooks() Hooks {
	return Hooks{
		OnSuccess: func(job SyncJob) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ok = append(r.ok, job.Op)
		},
		OnFailure: func(job SyncJob, err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.failed = append(r.failed, job.Op)
			r.lastErrs = append(r.lastErrs, err)
		},
	}
}

func (r *outcomeRecorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ok...), append([]string(nil), r.failed...)
}

func noop(context.Context) error { return nil }

func TestSyncWorker_ProcessesInOrder(t *testing.T) {
	rec := &outcomeRecorder{}
	w := NewSyncWorker(10, rec.hooks())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	var mu sync.Mutex
	var applied []int
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, w.Enqueue(SyncJob{UserID: "u1", Op: "append_history", Apply: func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			applied = append(applied, i)
			return nil
		}}))
	}

	assert.Eventually(t, func() bool {
		ok, _ := rec.snapshot()
		return len(ok) == 5
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-w.Done()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, applied)
}

func TestSyncWorker_FailureHook(t *testing.T) {
	rec := &outcomeRecorder{}
	w := NewSyncWorker(10, rec.hooks())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	boom := errors.New("backend unreachable")
	require.NoError(t, w.Enqueue(SyncJob{UserID: "u1", Op: "upsert_settings", Apply: func(context.Context) error { return boom }}))
	require.NoError(t, w.Enqueue(SyncJob{UserID: "u1", Op: "save_completions", Apply: noop}))

	assert.Eventually(t, func() bool {
		ok, failed := rec.snapshot()
		return len(ok) == 1 && len(failed) == 1
	}, time.Second, 5*time.Millisecond)

	_, failed := rec.snapshot()
	assert.Equal(t, []string{"upsert_settings"}, failed)
	rec.mu.Lock()
	assert.ErrorIs(t, rec.lastErrs[0], boom)
	rec.mu.Unlock()
}

func TestSyncWorker_QueueFull(t *testing.T) {
	rec := &outcomeRecorder{}
	// Not started, so nothing consumes the queue.
	w := NewSyncWorker(1, rec.hooks())

	require.NoError(t, w.Enqueue(SyncJob{Op: "first", Apply: noop}))
	err := w.Enqueue(SyncJob{Op: "second", Apply: noop})

	assert.ErrorIs(t, err, ErrQueueFull)
	_, failed := rec.snapshot()
	assert.Equal(t, []string{"second"}, failed)
}

func TestSyncWorker_DrainsOnShutdown(t *testing.T) {
	rec := &outcomeRecorder{}
	w := NewSyncWorker(10, rec.hooks())

	for i := 0; i < 3; i++ {
		require.NoError(t, w.Enqueue(SyncJob{Op: "queued", Apply: func(ctx context.Context) error {
			return ctx.Err()
		}}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	ok, failed := rec.snapshot()
	assert.Len(t, ok, 3, "drained jobs must run with a live context")
	assert.Empty(t, failed)
}
