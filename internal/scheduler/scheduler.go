package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/config"
	"github.com/mamadbah2/railfit/internal/domain/models"
)

// Sweeper deletes generated certificates older than a given age.
type Sweeper interface {
	Sweep(maxAge time.Duration) (int, error)
}

// WarrantyReporter lists items whose warranty is about to end.
type WarrantyReporter interface {
	ExpiringWarranties(ctx context.Context) ([]models.InventoryItem, error)
	AlertDays() int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	warranty WarrantyReporter
	cfg      config.SchedulerConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SchedulerConfig, sweeper Sweeper, warranty WarrantyReporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		sweeper:  sweeper,
		warranty: warranty,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.cfg.UploadRetention > 0 && s.sweeper != nil {
		if _, err := s.cron.AddFunc(s.cfg.RetentionCron, s.sweepUploads); err != nil {
			return fmt.Errorf("schedule upload retention %q: %w", s.cfg.RetentionCron, err)
		}
	} else {
		s.logger.Info("upload retention disabled")
	}

	if s.cfg.WarrantyAlertCron != "" && s.warranty != nil {
		if _, err := s.cron.AddFunc(s.cfg.WarrantyAlertCron, s.alertWarranties); err != nil {
			return fmt.Errorf("schedule warranty alert %q: %w", s.cfg.WarrantyAlertCron, err)
		}
	}

	s.cron.Start()
	return nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweepUploads() {
	removed, err := s.sweeper.Sweep(s.cfg.UploadRetention)
	if err != nil {
		s.logger.Error("upload retention sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("upload retention sweep finished",
		zap.Int("removed", removed),
		zap.Duration("retention", s.cfg.UploadRetention),
	)
}

func (s *Scheduler) alertWarranties() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := s.warranty.ExpiringWarranties(ctx)
	if err != nil {
		s.logger.Error("failed to load expiring warranties", zap.Error(err))
		return
	}
	if len(items) == 0 {
		s.logger.Debug("no warranties expiring", zap.Int("days", s.warranty.AlertDays()))
		return
	}

	for _, item := range items {
		s.logger.Warn("warranty expiring",
			zap.String("qr_id", item.QRID),
			zap.String("vendor", item.Vendor),
			zap.String("lot_number", item.LotNumber),
			zap.String("warranty_expiry", item.WarrantyExpiry),
		)
	}
	s.logger.Info("warranty alert sent", zap.Int("items", len(items)), zap.Int("days", s.warranty.AlertDays()))
}
