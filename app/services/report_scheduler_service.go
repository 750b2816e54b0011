package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SalesDashboard/app/config"

	"go.uber.org/zap"
)

// ReportSchedulerService exports the dashboard to Google Sheets on a schedule
type ReportSchedulerService struct {
	cfg    config.SheetsConfig
	sheets *GoogleSheetsService
	log    *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	syncs   int
	lastErr error
	lastAt  time.Time
}

// SchedulerStatus is a snapshot of the scheduler
type SchedulerStatus struct {
	Running        bool      `json:"running"`
	SyncMode       string    `json:"sync_mode"`
	SyncInterval   int       `json:"sync_interval"`
	SyncTime       string    `json:"sync_time"`
	LastSyncAt     time.Time `json:"last_sync_at"`
	LastSyncStatus string    `json:"last_sync_status"`
	TotalSyncs     int       `json:"total_syncs"`
}

// NewReportSchedulerService creates a scheduler for the export
func NewReportSchedulerService(cfg config.SheetsConfig, sheets *GoogleSheetsService, log *zap.Logger) *ReportSchedulerService {
	return &ReportSchedulerService{
		cfg:    cfg,
		sheets: sheets,
		log:    log.Named("scheduler"),
		now:    time.Now,
	}
}

// Start begins the scheduler. It does nothing when no sync mode is set or
// the export is not configured.
func (s *ReportSchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return fmt.Errorf("scheduler is already running")
	}
	if s.cfg.SyncMode == "" || !s.sheets.Enabled() {
		s.log.Info("Google Sheets auto-sync is disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)

	s.log.Info("Report scheduler started", zap.String("mode", s.cfg.SyncMode))
	return nil
}

// Stop stops the scheduler and waits for a running export to finish
func (s *ReportSchedulerService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info("Report scheduler stopped")
}

// run is the main scheduler loop
func (s *ReportSchedulerService) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		wait := s.nextSync()
		s.log.Info("Next Google Sheets sync scheduled", zap.Duration("in", wait))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.executeSync(ctx)
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// nextSync returns how long to wait before the next export
func (s *ReportSchedulerService) nextSync() time.Duration {
	if s.cfg.SyncMode == "daily" {
		return untilDailySync(s.now(), s.cfg.SyncTime)
	}
	return time.Duration(s.cfg.SyncInterval) * time.Minute
}

// untilDailySync calculates the duration until syncTime ("23:00"), today or tomorrow
func untilDailySync(now time.Time, syncTime string) time.Duration {
	targetTime, err := time.Parse("15:04", syncTime)
	if err != nil {
		targetTime, _ = time.Parse("15:04", "23:00")
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), targetTime.Hour(), targetTime.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now)
}

func (s *ReportSchedulerService) executeSync(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	_, err := s.sheets.SyncNow(ctx)

	s.mu.Lock()
	s.syncs++
	s.lastErr = err
	s.lastAt = s.now()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("Scheduled sync failed", zap.Error(err))
		return
	}
	s.log.Info("Scheduled sync completed successfully")
}

// GetStatus returns the current scheduler status
func (s *ReportSchedulerService) GetStatus() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{
		Running:      s.cancel != nil,
		SyncMode:     s.cfg.SyncMode,
		SyncInterval: s.cfg.SyncInterval,
		SyncTime:     s.cfg.SyncTime,
		LastSyncAt:   s.lastAt,
		TotalSyncs:   s.syncs,
	}
	switch {
	case s.syncs == 0:
		status.LastSyncStatus = "never"
	case s.lastErr != nil:
		status.LastSyncStatus = "error: " + s.lastErr.Error()
	default:
		status.LastSyncStatus = "success"
	}
	return status
}
