package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cragstats/tick-report-service/internal/domain"
	"github.com/cragstats/tick-report-service/internal/observability"
)

// Fetcher retrieves the raw tick export from the source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.RawTick, error)
}

// Publisher pushes a freshly built report downstream. Optional; a nil
// Publisher means the report is only served over HTTP.
type Publisher interface {
	PublishReport(ctx context.Context, report *domain.Report) error
}

// Refresher periodically fetches the tick export, builds a report for the
// configured year, and swaps it in for the HTTP layer to serve.
type Refresher struct {
	fetcher   Fetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	year     int
	interval time.Duration

	report atomic.Pointer[domain.Report]
	ready  atomic.Bool
}

// NewRefresher creates a Refresher for the given report year. A year of zero
// means "the current year" and is resolved on every cycle so a long-running
// service rolls over at New Year without a restart.
func NewRefresher(f Fetcher, p Publisher, logger *slog.Logger, metrics *observability.Metrics, year int, interval time.Duration) *Refresher {
	return &Refresher{
		fetcher:   f,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		year:      year,
		interval:  interval,
	}
}

// CheckReadiness returns nil once at least one report has been built.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no report built yet")
	}
	return nil
}

// Report returns the most recently built report, or nil before the first
// successful cycle.
func (r *Refresher) Report() *domain.Report {
	return r.report.Load()
}

// Run executes the refresh loop until the context is cancelled. Failed
// cycles retry with exponential backoff instead of waiting a full interval.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "interval", r.interval)
	r.metrics.RefresherRunning.Set(1)
	defer r.metrics.RefresherRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps the first report fast while avoiding tight loops during outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := r.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Error("refresh failed", "error", err)
			r.metrics.BuildErrors.Inc()
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}

		backoff = 200 * time.Millisecond
		if !sleepWithContext(ctx, r.interval) {
			return nil
		}
	}
}

// refresh runs one fetch-parse-build-publish cycle.
func (r *Refresher) refresh(ctx context.Context) error {
	start := time.Now()

	fetchStart := time.Now()
	raws, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	r.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())
	r.metrics.RowsIngested.Add(float64(len(raws)))

	ticks, dropped := domain.ParseTicks(raws)
	r.metrics.RowsDropped.Add(float64(dropped))

	year := r.year
	if year == 0 {
		year = domain.CurrentYear()
	}

	report := domain.BuildReport(ticks, year)
	r.report.Store(report)
	r.ready.Store(true)

	r.metrics.ReportBuilds.Inc()
	r.metrics.ReportReady.Set(1)
	r.metrics.BuildDuration.Observe(time.Since(start).Seconds())

	r.logger.Info("report built",
		"year", year,
		"rows", len(raws),
		"dropped", dropped,
		"climbs", report.BasicStats.TotalClimbs,
	)

	if r.publisher != nil {
		if err := r.publisher.PublishReport(ctx, report); err != nil {
			r.logger.Warn("publish report failed", "error", err, "year", year)
			return nil
		}
		r.metrics.ReportsPublished.Inc()
	}
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

// sleepWithContext sleeps for d or until the context is cancelled.
// Returns false if the context was cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
