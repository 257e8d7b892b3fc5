package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cragstats/tick-report-service/internal/domain"
	"github.com/cragstats/tick-report-service/internal/observability"
	"github.com/cragstats/tick-report-service/internal/pipeline"
)

// --- mocks ---

type mockFetcher struct {
	raws  []domain.RawTick
	err   error
	calls atomic.Int64
}

func (m *mockFetcher) Fetch(_ context.Context) ([]domain.RawTick, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.raws, nil
}

type mockPublisher struct {
	published []*domain.Report
	err       error
}

func (m *mockPublisher) PublishReport(_ context.Context, report *domain.Report) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, report)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func sampleRaws() []domain.RawTick {
	return []domain.RawTick{
		{Date: "2024-06-01", Route: "Moonlight", Rating: "5.10b", Location: "NY > Gunks > Trapps", Style: "Lead", LeadStyle: "Onsight", Pitches: "1", Length: "100"},
		{Date: "2024-06-02", Route: "Bonnie's Roof", Rating: "5.9", Location: "NY > Gunks > Trapps", Style: "Lead", LeadStyle: "Redpoint", Pitches: "2", Length: "180"},
		{Date: "", Route: "No Date"}, // dropped by the validity invariant
	}
}

// --- tests ---

func TestRefresher_Run_BuildsAndServes(t *testing.T) {
	fetcher := &mockFetcher{raws: sampleRaws()}
	metrics := newTestMetrics()

	r := pipeline.NewRefresher(fetcher, nil, slog.Default(), metrics, 2024, time.Hour)

	require.Error(t, r.CheckReadiness(context.Background()))
	require.Nil(t, r.Report())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := r.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, r.CheckReadiness(context.Background()))
	report := r.Report()
	require.NotNil(t, report)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 2, report.BasicStats.TotalClimbs)
}

func TestRefresher_Run_PublishesReport(t *testing.T) {
	fetcher := &mockFetcher{raws: sampleRaws()}
	publisher := &mockPublisher{}
	metrics := newTestMetrics()

	r := pipeline.NewRefresher(fetcher, publisher, slog.Default(), metrics, 2024, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, r.Run(ctx))
	require.NotEmpty(t, publisher.published)
	assert.Equal(t, 2024, publisher.published[0].Year)
}

func TestRefresher_Run_PublishFailureKeepsReport(t *testing.T) {
	fetcher := &mockFetcher{raws: sampleRaws()}
	publisher := &mockPublisher{err: errors.New("broker down")}
	metrics := newTestMetrics()

	r := pipeline.NewRefresher(fetcher, publisher, slog.Default(), metrics, 2024, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, r.Run(ctx))

	// Publish failure must not unseat the built report.
	require.NotNil(t, r.Report())
	require.NoError(t, r.CheckReadiness(context.Background()))
	assert.Empty(t, publisher.published)
}

func TestRefresher_Run_RetriesAfterFetchError(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("export unavailable")}
	metrics := newTestMetrics()

	r := pipeline.NewRefresher(fetcher, nil, slog.Default(), metrics, 2024, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 700*time.Millisecond)
	defer cancel()

	require.NoError(t, r.Run(ctx))

	// First attempt plus at least one backed-off retry within the window.
	assert.GreaterOrEqual(t, fetcher.calls.Load(), int64(2))
	assert.Error(t, r.CheckReadiness(context.Background()))
	assert.Nil(t, r.Report())
}

func TestRefresher_Run_ContextCancellation(t *testing.T) {
	fetcher := &mockFetcher{raws: sampleRaws()}
	metrics := newTestMetrics()

	r := pipeline.NewRefresher(fetcher, nil, slog.Default(), metrics, 2024, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx))
	assert.Nil(t, r.Report())
}
