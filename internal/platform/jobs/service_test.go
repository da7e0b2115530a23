package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	types []string
	errs  []error
}

func (r *recorder) RecordJob(jobType string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, jobType)
	r.errs = append(r.errs, err)
}

func TestDrainWaitsForQueuedJobsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{}
	svc := New(8, rec)
	svc.Start(ctx)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		if !svc.Enqueue(JobSnapshotWrite, func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	if err := svc.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("jobs ran out of order: %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("expected 5 jobs run before drain returned, got %d", len(order))
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.types) != 5 {
		t.Fatalf("drain marker must not be recorded, got %v", rec.types)
	}
}

func TestEnqueueReportsFullQueue(t *testing.T) {
	svc := New(1, nil)
	if !svc.Enqueue(JobSnapshotWrite, func(context.Context) error { return nil }) {
		t.Fatal("first enqueue must succeed")
	}
	if svc.Enqueue(JobSnapshotWrite, func(context.Context) error { return nil }) {
		t.Fatal("expected full queue to reject the job")
	}
}

func TestDrainHonoursContext(t *testing.T) {
	svc := New(1, nil)
	svc.Enqueue(JobSnapshotWrite, func(context.Context) error { return nil })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := svc.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded without a running worker, got %v", err)
	}
}

func TestFailedJobIsRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{}
	svc := New(4, rec)
	svc.Start(ctx)

	boom := errors.New("boom")
	svc.Enqueue(JobSnapshotBackup, func(context.Context) error { return boom })
	if err := svc.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.types) != 1 || rec.types[0] != JobSnapshotBackup || !errors.Is(rec.errs[0], boom) {
		t.Fatalf("expected only the failed backup recorded, got %v %v", rec.types, rec.errs)
	}
}

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(8, nil)
	svc.Start(ctx)

	ran := make(chan struct{}, 16)
	svc.Every(ctx, JobSnapshotBackup, 5*time.Millisecond, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduled job did not run")
		}
	}
	cancel()

	svc.Every(context.Background(), JobSnapshotBackup, 0, func(context.Context) error {
		t.Error("zero interval must not schedule")
		return nil
	})
}
