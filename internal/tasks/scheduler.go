package tasks

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler enqueues the recurring tasks: daily booking reminders and
// monthly activity reports.
type Scheduler struct {
	cron   *cron.Cron
	queue  *Queue
	logger *slog.Logger
}

func NewScheduler(
	queue *Queue,
	logger *slog.Logger,
	dailySpec, monthlySpec string,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		queue:  queue,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(dailySpec, func() {
		s.enqueue(TypeDailyReminders)
	}); err != nil {
		return nil, err
	}

	if _, err := s.cron.AddFunc(monthlySpec, func() {
		s.enqueue(TypeMonthlyReports)
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) enqueue(typ string) {
	if err := s.queue.Enqueue(context.Background(), typ, nil); err != nil {
		s.logger.Error("scheduled enqueue failed", "type", typ, "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; a job already enqueued still runs to completion.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
