package worker

import (
	"context"
	"errors"
	"time"

	"membership-system/internal/expiry"
	"membership-system/internal/platform/logging"
)

// ExpiryWorker triggers the expiry manager on a fixed interval. Overlap
// protection lives in the manager itself; a tick that lands during a
// manual run is simply skipped.
type ExpiryWorker struct {
	mgr        *expiry.Manager
	interval   time.Duration
	runOnStart bool
	log        logging.Logger
}

func NewExpiryWorker(mgr *expiry.Manager, interval time.Duration, runOnStart bool, log logging.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		mgr:        mgr,
		interval:   interval,
		runOnStart: runOnStart,
		log:        log.With("component", "expiry-worker"),
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) {
	w.log.Info("expiry worker started", "interval", w.interval)

	if w.runOnStart {
		w.runOnce(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("expiry worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ExpiryWorker) runOnce(ctx context.Context) {
	_, err := w.mgr.Run(ctx)
	switch {
	case errors.Is(err, expiry.ErrRunInProgress):
		w.log.Warn("previous expiry run still in progress, skipping tick")
	case err != nil:
		w.log.Error("expiry run failed", "error", err)
	}
}
