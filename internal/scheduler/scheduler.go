// Package scheduler optionally triggers runs from inside the process for
// deployments without an external cron. The HTTP trigger stays authoritative;
// this is the same run behind the same lease.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"job-scout/internal/pipeline"
)

type RunTrigger interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
}

type Scheduler struct {
	cron   *cron.Cron
	runner RunTrigger
	spec   string
	logger *zap.Logger
}

func New(spec string, runner RunTrigger, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   spec,
		logger: logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		summary, err := s.runner.Run(ctx)
		if err != nil {
			s.logger.Error("scheduled run failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled run finished",
			zap.Int("inserted", summary.Inserted),
			zap.Int("reactivated", summary.Reactivated),
			zap.Int("blocked", summary.Blocked),
			zap.Int("skipped", summary.Skipped),
			zap.Int("errors", len(summary.Errors)),
		)
	})
	if err != nil {
		return fmt.Errorf("invalid run schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("internal scheduler started", zap.String("spec", s.spec))

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("internal scheduler stopped")
}
