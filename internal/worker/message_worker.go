// Package worker hosts the background poller that retries messages left
// unprocessed after a storage failure.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/config"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
)

// MessageWorker periodically drains unprocessed inbound messages through
// the attendance pipeline.
type MessageWorker struct {
	attendance *service.AttendanceService
	cfg        config.WorkerConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMessageWorker constructs the worker.
func NewMessageWorker(attendance *service.AttendanceService, cfg config.WorkerConfig, logger *zap.Logger) *MessageWorker {
	return &MessageWorker{attendance: attendance, cfg: cfg, logger: logger}
}

// Start launches the polling loop. No-op when disabled.
func (w *MessageWorker) Start(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("message worker disabled")
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
	w.logger.Info("message worker started", zap.Duration("interval", w.cfg.Interval()))
}

// Stop cancels the loop and waits for the in-flight batch.
func (w *MessageWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
}

func (w *MessageWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processed, err := w.attendance.ProcessPending(ctx, w.cfg.BatchSize)
			if err != nil {
				w.logger.Warn("pending message sweep failed", zap.Error(err))
				continue
			}
			if processed > 0 {
				w.logger.Info("pending messages processed", zap.Int("count", processed))
			}
		}
	}
}
