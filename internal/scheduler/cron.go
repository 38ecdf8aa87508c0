package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/user/autoradarr/internal/controllers"
)

// Scheduler runs the scan on a fixed schedule
type Scheduler struct {
	cron     *cron.Cron
	scanCtrl *controllers.ScanController
	spec     string
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(scanCtrl *controllers.ScanController, spec string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		scanCtrl: scanCtrl,
		spec:     spec,
		logger:   logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.WithField("cron", s.spec).Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScan()
	})
	if err != nil {
		return fmt.Errorf("failed to add scan job: %w", err)
	}

	s.cron.Start()

	// First scan runs right away, the cron spec only governs the repeats
	go s.runScan()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runScan executes one scan and logs the outcome
func (s *Scheduler) runScan() {
	s.logger.Info("Running scheduled scan")

	count, err := s.scanCtrl.Run(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("Scan failed")
		return
	}

	s.logger.WithField("count", count).Info("Scan completed")
}
