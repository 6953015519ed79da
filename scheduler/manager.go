// Package scheduler runs the background jobs that move uploads through the
// voting lifecycle.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/logger"
)

type Manager struct {
	scheduler gocron.Scheduler
}

// Start registers and launches all background jobs.
func Start(db *pgxpool.Pool) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	m := &Manager{scheduler: s}

	job := NewResolveJob(db)
	_, err = s.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	logger.Info("Scheduler started with job %s", job.Name())

	return m, nil
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Warn("Scheduler shutdown: %v", err)
	}
}
