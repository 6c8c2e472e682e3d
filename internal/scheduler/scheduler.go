package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/config"
	"github.com/mamadbah2/fuelshare/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:         c,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("snapshot_schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.takeSnapshot); err != nil {
		return fmt.Errorf("schedule stock snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := s.reportingSvc.TakeSnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to store stock snapshot", zap.Error(err))
	}

	summary := reporting.Summary(snapshot)
	if len(snapshot.LowStock) > 0 {
		s.logger.Warn("low stock detected", zap.Strings("tanks", snapshot.LowStock), zap.String("summary", summary))
		return
	}
	s.logger.Info("stock snapshot taken", zap.String("summary", summary))
}
