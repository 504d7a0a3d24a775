package expiry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"membership-system/internal/domain/account"
	"membership-system/internal/metrics"
	"membership-system/internal/platform/logging"
)

// DefaultWarnWindow is the look-ahead for warning notifications.
const DefaultWarnWindow = 3 * 24 * time.Hour

// ErrRunInProgress is returned when Run is invoked while a previous run
// is still executing. The trigger is dropped, not queued.
var ErrRunInProgress = errors.New("expiry run already in progress")

// Manager drives one expiry lifecycle run: classify accounts into the
// warn and disable cohorts, dispatch warnings, revoke access, and
// aggregate a report. Only the classification step is run-fatal.
type Manager struct {
	repo        account.Repository
	notifier    *Notifier
	deactivator *Deactivator
	warnWindow  time.Duration
	now         func() time.Time
	log         logging.Logger

	running atomic.Bool

	mu   sync.Mutex
	last *RunReport
}

func NewManager(
	repo account.Repository,
	notifier *Notifier,
	deactivator *Deactivator,
	warnWindow time.Duration,
	log logging.Logger,
) *Manager {
	if warnWindow <= 0 {
		warnWindow = DefaultWarnWindow
	}
	return &Manager{
		repo:        repo,
		notifier:    notifier,
		deactivator: deactivator,
		warnWindow:  warnWindow,
		now:         time.Now,
		log:         log.With("component", "expiry-manager"),
	}
}

// Run executes a single batch. Concurrent invocations are rejected with
// ErrRunInProgress; a repository failure while loading cohorts aborts
// the run before any account is touched.
func (m *Manager) Run(ctx context.Context) (*RunReport, error) {
	if !m.running.CompareAndSwap(false, true) {
		metrics.IncRun("skipped")
		return nil, ErrRunInProgress
	}
	defer m.running.Store(false)

	now := m.now()
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: now,
	}

	m.log.Info("starting expiry run", "run_id", report.RunID)

	warnSet, disableSet, err := m.loadCohorts(ctx, now)
	if err != nil {
		m.log.Error("expiry run aborted", "run_id", report.RunID, "error", err)
		metrics.IncRun("failed")
		return nil, err
	}

	report.WarnEligible = len(warnSet)
	report.DisableEligible = len(disableSet)
	m.log.Info("classified accounts",
		"run_id", report.RunID,
		"warn", len(warnSet),
		"disable", len(disableSet),
	)

	m.notifier.Notify(ctx, warnSet, now, report)
	m.deactivator.Deactivate(ctx, disableSet, report)

	report.FinishedAt = m.now()
	metrics.IncRun("ok")
	m.log.Info("expiry run completed",
		"run_id", report.RunID,
		"warned", report.WarnedCount(),
		"disabled", report.DisabledCount(),
		"failed", report.FailedCount(),
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)

	m.mu.Lock()
	m.last = report
	m.mu.Unlock()

	return report, nil
}

// loadCohorts queries both expiry ranges and re-filters through Classify
// so owner exemption and the disabled marker hold regardless of what the
// repository returns.
func (m *Manager) loadCohorts(ctx context.Context, now time.Time) (warnSet, disableSet []account.Account, err error) {
	expiring, err := m.repo.FindByExpiryRange(ctx, now, now.Add(m.warnWindow))
	if err != nil {
		return nil, nil, fmt.Errorf("query expiring accounts: %w", err)
	}
	for _, a := range expiring {
		if account.Classify(a, now, m.warnWindow) == account.CohortWarn {
			warnSet = append(warnSet, a)
		}
	}

	expired, err := m.repo.FindByExpiryBefore(ctx, now)
	if err != nil {
		return nil, nil, fmt.Errorf("query expired accounts: %w", err)
	}
	for _, a := range expired {
		if account.Classify(a, now, m.warnWindow) == account.CohortDisable {
			disableSet = append(disableSet, a)
		}
	}

	return warnSet, disableSet, nil
}

// Running reports whether a run is currently executing.
func (m *Manager) Running() bool {
	return m.running.Load()
}

// LastReport returns the most recent completed run report, or nil.
func (m *Manager) LastReport() *RunReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
