package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the month-end interest job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	schedule string
	logger   zerolog.Logger
}

type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Printf(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

func NewScheduler(jobs *Jobs, schedule string, logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "scheduler").Logger()
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(cronLogger{logger}))))
	return &Scheduler{cron: c, jobs: jobs, schedule: schedule, logger: logger}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.AccruePreviousMonth); err != nil {
		return err
	}
	s.logger.Info().Str("schedule", s.schedule).Msg("scheduled interest accrual job")
	s.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
