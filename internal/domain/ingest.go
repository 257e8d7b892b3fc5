package domain

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Most exports carry date-only values; when
// a layout with a time component matches, the hour feeds the time-of-day
// insight buckets.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTick converts a raw row into a validated Tick. The second return
// value is false for invalid rows: a tick is valid iff its date parses to a
// real calendar date and its route is non-empty. Numeric fields never fail a
// row; they fall back to their defaults (pitches 1, length 0, stars 0).
func ParseTick(raw RawTick) (Tick, bool) {
	date, ok := parseDate(raw.Date)
	if !ok {
		return Tick{}, false
	}
	route := strings.TrimSpace(raw.Route)
	if route == "" {
		return Tick{}, false
	}

	return Tick{
		Date:      date,
		Route:     route,
		Rating:    strings.TrimSpace(raw.Rating),
		Location:  strings.TrimSpace(raw.Location),
		Style:     strings.TrimSpace(raw.Style),
		LeadStyle: strings.TrimSpace(raw.LeadStyle),
		Pitches:   parseIntClamped(raw.Pitches, 1, 1),
		Length:    parseIntClamped(raw.Length, 0, 0),
		Stars:     parseIntOrDefault(raw.Stars, 0),
		Notes:     raw.Notes,
	}, true
}

// ParseTicks parses every raw row, silently dropping invalid ones.
// Malformed or partial trailing rows are expected in real logs, so the drop
// count is returned for observability rather than surfaced as an error.
func ParseTicks(raws []RawTick) (ticks []Tick, dropped int) {
	ticks = make([]Tick, 0, len(raws))
	for _, raw := range raws {
		t, ok := ParseTick(raw)
		if !ok {
			dropped++
			continue
		}
		ticks = append(ticks, t)
	}
	return ticks, dropped
}

// PartitionByYear buckets ticks into the current reporting period
// (targetYear) and the prior period (targetYear-1). Ticks from any other
// year are out of scope for the report and appear in neither subset.
func PartitionByYear(ticks []Tick, targetYear int) (current, prior []Tick) {
	for _, t := range ticks {
		switch t.Date.Year() {
		case targetYear:
			current = append(current, t)
		case targetYear - 1:
			prior = append(prior, t)
		}
	}
	return current, prior
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseIntOrDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Some exports write whole-number fields as decimals ("50.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

func parseIntClamped(s string, def, minimum int) int {
	n := parseIntOrDefault(s, def)
	if n < minimum {
		return minimum
	}
	return n
}
