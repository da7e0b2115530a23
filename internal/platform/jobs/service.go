package jobs

import (
	"context"
	"log/slog"
	"time"
)

const (
	JobSnapshotWrite  = "snapshot_write"
	JobSnapshotBackup = "snapshot_backup"
	JobViolationAlert = "violation_alert"
)

// Recorder observes finished jobs.
type Recorder interface {
	RecordJob(jobType string, err error, duration time.Duration)
}

// Service runs jobs one at a time, in enqueue order, on a single worker.
type Service struct {
	queue    chan job
	recorder Recorder
}

type job struct {
	Type string
	Run  func(context.Context) error
}

func New(size int, recorder Recorder) *Service {
	if size <= 0 {
		size = 128
	}
	return &Service{
		queue:    make(chan job, size),
		recorder: recorder,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Enqueue hands a job to the worker without blocking. It returns false when
// the queue is full and the job was dropped.
func (s *Service) Enqueue(jobType string, run func(context.Context) error) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

// Drain blocks until every job enqueued before the call has run.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	marker := job{Type: "drain", Run: func(context.Context) error {
		close(done)
		return nil
	}}
	select {
	case s.queue <- marker:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every enqueues run on each tick until ctx is done. A non-positive
// interval disables the schedule.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) error) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	start := time.Now()
	err := j.Run(ctx)
	if s.recorder != nil && j.Type != "drain" {
		s.recorder.RecordJob(j.Type, err, time.Since(start))
	}
	return err
}
