package jobs

import (
	"context"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

// Job names accepted by RunOnce.
const (
	JobAuditLedger = "audit-ledger"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals repository.RentalRepository
	config  *config.Config
	timeout time.Duration
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals repository.RentalRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals: rentals,
		config:  cfg,
		timeout: 5 * time.Minute,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// RunOnce runs the named job synchronously. It reports false for an unknown name.
func (jr *JobRunner) RunOnce(name string) bool {
	switch name {
	case JobAuditLedger:
		jr.AuditLedger()
	default:
		return false
	}
	return true
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start).String())
}
