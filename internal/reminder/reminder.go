// Package reminder periodically scans the store for overdue tasks. It only
// reads persisted data and reports what it finds; delivering notifications
// to the device is the mobile shell's job.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"projefa/internal/logger"
	"projefa/internal/services"
)

// Service wraps a cron-based overdue scan.
type Service struct {
	tasks services.TaskServicer
	cron  *cron.Cron
	log   *zap.SugaredLogger
}

// New creates a reminder service over the given task service.
func New(tasks services.TaskServicer) *Service {
	return &Service{
		tasks: tasks,
		cron:  cron.New(),
		log:   logger.Get(),
	}
}

// Start registers the scan at the given interval and starts the scheduler.
func (s *Service) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("reminder interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := s.cron.AddFunc(spec, s.scan); err != nil {
		return fmt.Errorf("schedule reminder scan: %w", err)
	}
	s.cron.Start()
	s.log.Infow("reminder scan scheduled", "interval", interval.String())
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Service) scan() {
	tasks, err := s.tasks.GetOverdueTasks(context.Background())
	if err != nil {
		s.log.Warnw("overdue scan failed", "error", err)
		return
	}
	for _, t := range tasks {
		s.log.Infow("task overdue",
			"task_id", t.ID,
			"project_id", t.ProjectID,
			"title", t.Title,
			"due_date", t.DueDate,
		)
	}
}
