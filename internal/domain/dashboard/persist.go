package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sitewatch/internal/platform/jobs"
	"sitewatch/internal/platform/kv"
)

// Queue is the subset of jobs.Service the persister needs.
type Queue interface {
	Enqueue(jobType string, run func(context.Context) error) bool
	Drain(ctx context.Context) error
	Every(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) error)
}

// DefaultRetryDelay is how long the persister waits before offering a write
// again after the queue refused it.
const DefaultRetryDelay = 250 * time.Millisecond

// Persister mirrors state into a kv.Store in the background. Persist only
// records the newest encoded snapshot; a single queued write picks up
// whatever is newest when it runs, so bursts collapse into one write and
// the last state always wins. A write the queue refuses is retried until
// it is accepted.
type Persister struct {
	storage    kv.Store
	queue      Queue
	retryDelay time.Duration

	mu        sync.Mutex
	pending   []byte
	scheduled bool
	retry     *time.Timer
}

func NewPersister(storage kv.Store, queue Queue) *Persister {
	return &Persister{storage: storage, queue: queue, retryDelay: DefaultRetryDelay}
}

// WithRetryDelay overrides DefaultRetryDelay.
func (p *Persister) WithRetryDelay(d time.Duration) *Persister {
	if d > 0 {
		p.retryDelay = d
	}
	return p
}

func (p *Persister) Persist(state State) {
	data, err := EncodeSnapshot(state)
	if err != nil {
		slog.Warn("snapshot encode failed", "err", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = data
	p.scheduleLocked()
}

// scheduleLocked queues a write unless one is queued or a retry is armed.
// p.mu must be held.
func (p *Persister) scheduleLocked() {
	if p.scheduled || p.retry != nil {
		return
	}
	if p.queue.Enqueue(jobs.JobSnapshotWrite, p.write) {
		p.scheduled = true
		return
	}
	p.retry = time.AfterFunc(p.retryDelay, p.retryWrite)
}

func (p *Persister) retryWrite() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retry = nil
	if p.pending == nil {
		return
	}
	p.scheduleLocked()
}

func (p *Persister) write(ctx context.Context) error {
	p.mu.Lock()
	data := p.pending
	p.pending = nil
	p.scheduled = false
	p.mu.Unlock()

	if data == nil {
		return nil
	}
	if err := p.storage.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Flush waits for queued writes and writes any snapshot whose job could not
// be queued.
func (p *Persister) Flush(ctx context.Context) error {
	if err := p.queue.Drain(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	unscheduled := p.pending != nil && !p.scheduled
	if unscheduled && p.retry != nil {
		p.retry.Stop()
		p.retry = nil
	}
	p.mu.Unlock()
	if unscheduled {
		return p.write(ctx)
	}
	return nil
}

// Backup copies the stored snapshot to BackupKey.
func (p *Persister) Backup(ctx context.Context) error {
	data, err := p.storage.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read snapshot for backup: %w", err)
	}
	if err := p.storage.Set(ctx, BackupKey, data); err != nil {
		return fmt.Errorf("write snapshot backup: %w", err)
	}
	return nil
}

// ScheduleBackups runs Backup on the queue every interval.
func (p *Persister) ScheduleBackups(ctx context.Context, interval time.Duration) {
	p.queue.Every(ctx, jobs.JobSnapshotBackup, interval, p.Backup)
}
