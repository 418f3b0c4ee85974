package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// Scheduler runs the periodic maintenance jobs: report-spike detection
// and the stale reservation sweep.
type Scheduler struct {
	cron *cron.Cron
}

func New(cfg *config.Config, db *gorm.DB, moderation *services.ModerationService, registry *tenant.Registry) (*Scheduler, error) {
	c := cron.New()

	spike := &reportSpikeJob{
		db:         db,
		moderation: moderation,
		registry:   registry,
		threshold:  cfg.ReportSpikeThreshold,
		window:     cfg.ReportSpikeWindow,
	}
	if _, err := c.AddJob(cfg.ReportSpikeCron, spike); err != nil {
		return nil, err
	}

	sweep := &reservationSweepJob{db: db}
	if _, err := c.AddJob(cfg.ReservationSweepCron, sweep); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}
