package kafka

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cragstats/tick-report-service/internal/domain"
)

func TestSerializeReport(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	report := domain.BuildReport([]domain.Tick{
		{Date: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), Route: "Moonlight", Rating: "5.10b", Pitches: 1},
	}, 2024)

	msg, err := serializeReport(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("2024"), msg.Key)
	assert.Contains(t, string(msg.Value), `"year":2024`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "report_year", msg.Headers[0].Key)
	assert.Equal(t, []byte("2024"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeReport_NonFiniteChangesEncode(t *testing.T) {
	// A lone current-year tick with no prior-year data yields non-finite
	// deltas, which must still serialize (as nulls) rather than error.
	report := domain.BuildReport([]domain.Tick{
		{Date: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), Route: "Moonlight", Rating: "5.10b", Pitches: 1},
	}, 2024)

	msg, err := serializeReport(report)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"climbs":null`)
}
