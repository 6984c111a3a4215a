package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderChangeRelayJob *OrderChangeRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the automation handler and the change feed it drains as dependencies.
func NewJobManager(
	automationHandler AutomationHandler,
	feed ports.ChangeFeed,
	relayOptions RelayOptions,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderChangeRelayJob: NewOrderChangeRelayJob(automationHandler, feed, relayOptions, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderChangeRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start order change relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderChangeRelayJob.Stop()
}
