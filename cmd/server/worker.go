package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"coursework_service/internal/dates"
	"coursework_service/internal/service"
	"coursework_service/pkg/ctxdata"
	"coursework_service/pkg/logging"
)

type refresher interface {
	ListUsers(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context, username string, asOf time.Time) (*service.RefreshResult, error)
	RemindDueSoon(ctx context.Context, username string, today time.Time, horizon time.Duration) (int, error)
}

// RefreshWorker periodically refreshes every known user as of today and then
// publishes reminders for pending work due within the horizon.
type RefreshWorker struct {
	svc      refresher
	logger   *logging.Logger
	interval time.Duration
	poolSize int
	horizon  time.Duration
	loc      *time.Location
	now      func() time.Time
}

func NewRefreshWorker(
	svc refresher,
	logger *logging.Logger,
	interval time.Duration,
	poolSize int,
	horizon time.Duration,
	loc *time.Location,
) *RefreshWorker {
	if poolSize < 1 {
		poolSize = 1
	}
	return &RefreshWorker{
		svc:      svc,
		logger:   logger,
		interval: interval,
		poolSize: poolSize,
		horizon:  horizon,
		loc:      loc,
		now:      time.Now,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Refresh worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *RefreshWorker) runOnce(ctx context.Context) {
	users, err := w.svc.ListUsers(ctx)
	if err != nil {
		w.logger.Error(ctx, "Failed to list users", zap.Error(err))
		return
	}
	today := dates.DateOf(w.now(), w.loc)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range w.poolSize {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for username := range jobs {
				w.processUser(ctx, username, today)
			}
		}()
	}

	for _, username := range users {
		select {
		case jobs <- username:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
}

func (w *RefreshWorker) processUser(ctx context.Context, username string, today time.Time) {
	ctx = ctxdata.WithUsername(ctx, username)

	result, err := w.svc.Refresh(ctx, username, today)
	if err != nil {
		w.logger.Error(ctx, "Scheduled refresh failed", zap.Error(err))
		return
	}
	if len(result.Failed) > 0 {
		w.logger.Warn(ctx, "Some course pages could not be fetched", zap.Strings("courses", result.Failed))
	}

	sent, err := w.svc.RemindDueSoon(ctx, username, today, w.horizon)
	if err != nil {
		w.logger.Error(ctx, "Failed to send due-soon reminders", zap.Error(err))
		return
	}
	w.logger.Debug(ctx, "Scheduled refresh done",
		zap.Strings("synced", result.Synced),
		zap.Int("reminders", sent))
}
