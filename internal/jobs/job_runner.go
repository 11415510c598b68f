package jobs

import (
	"database/sql"

	"casahub-backend/internal/config"
	"casahub-backend/internal/logger"
	"casahub-backend/internal/repository/postgres"
	"casahub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	email  service.EmailService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		email:  email,
		config: cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendStalePipelineReminders()
	jr.SendUpcomingHearingReminders()
}
