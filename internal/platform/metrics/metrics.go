package metrics

import (
	"sync/atomic"
	"time"

	"sitewatch/internal/platform/jobs"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	snapshotWrites  uint64
	snapshotFailed  uint64
	backups         uint64
	backupsFailed   uint64
	alerts          uint64
	alertsFailed    uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordJob(jobType string, err error, _ time.Duration) {
	switch jobType {
	case jobs.JobSnapshotWrite:
		atomic.AddUint64(&c.snapshotWrites, 1)
		if err != nil {
			atomic.AddUint64(&c.snapshotFailed, 1)
		}
	case jobs.JobSnapshotBackup:
		atomic.AddUint64(&c.backups, 1)
		if err != nil {
			atomic.AddUint64(&c.backupsFailed, 1)
		}
	case jobs.JobViolationAlert:
		atomic.AddUint64(&c.alerts, 1)
		if err != nil {
			atomic.AddUint64(&c.alertsFailed, 1)
		}
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"snapshotWritesTotal":   atomic.LoadUint64(&c.snapshotWrites),
		"snapshotFailuresTotal": atomic.LoadUint64(&c.snapshotFailed),
		"backupsTotal":          atomic.LoadUint64(&c.backups),
		"backupFailuresTotal":   atomic.LoadUint64(&c.backupsFailed),
		"alertsTotal":           atomic.LoadUint64(&c.alerts),
		"alertFailuresTotal":    atomic.LoadUint64(&c.alertsFailed),
	}
}
