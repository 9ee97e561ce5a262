// Package jobs holds the scheduled background work of the service.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/middleware"
	"github.com/robfig/cron/v3"
)

// LedgerSyncConfig controls the pending-entry retry job.
type LedgerSyncConfig struct {
	Schedule  string
	BatchSize int
	Timeout   time.Duration
	Location  *time.Location
}

// NewDefaultLedgerSyncConfig returns the settings used when nothing is configured.
func NewDefaultLedgerSyncConfig() LedgerSyncConfig {
	return LedgerSyncConfig{
		Schedule:  "@every 5m",
		BatchSize: 200,
		Timeout:   2 * time.Minute,
		Location:  time.UTC,
	}
}

// LedgerSyncJob periodically re-posts ledger entries the remote accounting API has not accepted.
type LedgerSyncJob struct {
	cfg    LedgerSyncConfig
	ledger portssvc.LedgerSyncSvc
	logger *slog.Logger
	cron   *cron.Cron
}

// NewLedgerSyncJob validates the schedule and registers the job. Call Start to run it.
func NewLedgerSyncJob(ledger portssvc.LedgerSyncSvc, cfg LedgerSyncConfig, logger *slog.Logger) (*LedgerSyncJob, error) {
	defaults := NewDefaultLedgerSyncConfig()
	if cfg.Schedule == "" {
		cfg.Schedule = defaults.Schedule
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Location == nil {
		cfg.Location = defaults.Location
	}
	if logger == nil {
		logger = slog.Default()
	}

	j := &LedgerSyncJob{
		cfg:    cfg,
		ledger: ledger,
		logger: logger.With(slog.String("job", "ledger_sync")),
	}
	j.cron = cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := j.cron.AddFunc(cfg.Schedule, j.run); err != nil {
		return nil, fmt.Errorf("invalid ledger sync schedule %q: %w", cfg.Schedule, err)
	}
	return j, nil
}

// Start runs the scheduler in its own goroutine.
func (j *LedgerSyncJob) Start() {
	j.logger.Info("Ledger sync job scheduled", slog.String("schedule", j.cfg.Schedule), slog.Int("batch_size", j.cfg.BatchSize))
	j.cron.Start()
}

// Stop stops scheduling and waits for a running sync to finish or ctx to expire.
func (j *LedgerSyncJob) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		j.logger.Info("Ledger sync job stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ledger sync job did not stop in time: %w", ctx.Err())
	}
}

func (j *LedgerSyncJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.Timeout)
	defer cancel()
	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Ledger sync run failed", slog.String("error", err.Error()))
	}
}

// RunOnce syncs up to one batch of pending entries.
func (j *LedgerSyncJob) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	ctx = middleware.WithLogger(ctx, j.logger)
	synced, err := j.ledger.SyncPendingEntries(ctx, j.cfg.BatchSize)
	if err != nil {
		return synced, err
	}
	if synced > 0 {
		j.logger.Info("Ledger sync run completed", slog.Int("synced", synced), slog.Duration("took", time.Since(start)))
	}
	return synced, nil
}
