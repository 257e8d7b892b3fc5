package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTick(t *testing.T) {
	t.Run("complete row", func(t *testing.T) {
		raw := RawTick{
			Date:      "2024-03-01",
			Route:     "Moonlight Buttress",
			Rating:    "5.12d",
			Location:  "Utah > Zion > Moonlight Buttress Area",
			Style:     "Lead",
			LeadStyle: "Redpoint",
			Pitches:   "9",
			Length:    "1200",
			Stars:     "4",
			Notes:     "All time.",
		}

		tick, ok := ParseTick(raw)

		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tick.Date)
		assert.Equal(t, "Moonlight Buttress", tick.Route)
		assert.Equal(t, "5.12d", tick.Rating)
		assert.Equal(t, 9, tick.Pitches)
		assert.Equal(t, 1200, tick.Length)
		assert.Equal(t, 4, tick.Stars)
		assert.Equal(t, "Zion", tick.Area())
		assert.Equal(t, "Moonlight Buttress Area", tick.Crag())
	})

	t.Run("missing route is invalid", func(t *testing.T) {
		_, ok := ParseTick(RawTick{Date: "2024-03-01", Route: "  "})
		assert.False(t, ok)
	})

	t.Run("missing date is invalid", func(t *testing.T) {
		_, ok := ParseTick(RawTick{Date: "", Route: "X"})
		assert.False(t, ok)
	})

	t.Run("unparseable date is invalid", func(t *testing.T) {
		_, ok := ParseTick(RawTick{Date: "not-a-date", Route: "X"})
		assert.False(t, ok)
	})

	t.Run("numeric defaults", func(t *testing.T) {
		tick, ok := ParseTick(RawTick{Date: "2024-03-01", Route: "X"})

		require.True(t, ok)
		assert.Equal(t, 1, tick.Pitches)
		assert.Equal(t, 0, tick.Length)
		assert.Equal(t, 0, tick.Stars)
	})

	t.Run("non-numeric fields fall back, never fail the row", func(t *testing.T) {
		tick, ok := ParseTick(RawTick{
			Date: "2024-03-01", Route: "X",
			Pitches: "two", Length: "tall", Stars: "-1",
		})

		require.True(t, ok)
		assert.Equal(t, 1, tick.Pitches)
		assert.Equal(t, 0, tick.Length)
		assert.Equal(t, -1, tick.Stars)
	})

	t.Run("decimal length truncated", func(t *testing.T) {
		tick, ok := ParseTick(RawTick{Date: "2024-03-01", Route: "X", Length: "80.5"})
		require.True(t, ok)
		assert.Equal(t, 80, tick.Length)
	})

	t.Run("timestamp date carries hour", func(t *testing.T) {
		tick, ok := ParseTick(RawTick{Date: "2024-03-01 16:20:00", Route: "X"})
		require.True(t, ok)
		assert.Equal(t, 16, tick.Date.Hour())
	})
}

func TestParseTicks(t *testing.T) {
	raws := []RawTick{
		{Date: "2024-03-01", Route: "X"},
		{Date: "2024-03-02"}, // missing route
		{Date: "", Route: "Y"},
	}

	ticks, dropped := ParseTicks(raws)

	assert.Len(t, ticks, 1)
	assert.Equal(t, 2, dropped)
}

func TestPartitionByYear(t *testing.T) {
	mk := func(date string) Tick {
		t.Helper()
		tick, ok := ParseTick(RawTick{Date: date, Route: "X"})
		require.True(t, ok)
		return tick
	}

	ticks := []Tick{
		mk("2024-01-15"),
		mk("2023-06-01"),
		mk("2024-12-31"),
		mk("2022-05-05"), // out of scope for both periods
		mk("2023-11-11"),
	}

	current, prior := PartitionByYear(ticks, 2024)

	assert.Len(t, current, 2)
	assert.Len(t, prior, 2)
	for _, tick := range current {
		assert.Equal(t, 2024, tick.Date.Year())
	}
	for _, tick := range prior {
		assert.Equal(t, 2023, tick.Date.Year())
	}
}

func TestPartitionByYear_MalformedRowFlow(t *testing.T) {
	// Spec-level flow: one valid 2024 row plus one malformed row yields a
	// single current-period tick and an empty prior period.
	raws := []RawTick{
		{Date: "2024-03-01", Route: "X"},
		{Date: "2024-03-01"}, // no route
	}

	ticks, dropped := ParseTicks(raws)
	current, prior := PartitionByYear(ticks, 2024)

	assert.Equal(t, 1, dropped)
	assert.Len(t, current, 1)
	assert.Empty(t, prior)
}

func TestTickLocationHelpers(t *testing.T) {
	tests := []struct {
		name     string
		location string
		area     string
		crag     string
	}{
		{"three segments", "Nevada > Red Rock > Calico Basin", "Red Rock", "Calico Basin"},
		{"two segments", "Nevada > Red Rock", "Red Rock", "Red Rock"},
		{"single segment", "Red Rock", "Red Rock", "Red Rock"},
		{"empty", "", "", ""},
		{"extra whitespace", " Nevada  >  Red Rock > Calico ", "Red Rock", "Calico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick := Tick{Location: tt.location}
			assert.Equal(t, tt.area, tick.Area())
			assert.Equal(t, tt.crag, tick.Crag())
		})
	}
}
