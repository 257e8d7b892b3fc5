package domain

import (
	"encoding/json"
	"math"
)

// Metric is a float64 whose JSON form is null when the value is not finite.
// Division by a zero prior period is a defined degenerate case here, not an
// error: the NaN/Inf is kept in memory exactly as computed, and only the
// JSON boundary substitutes null because the encoding cannot carry it.
type Metric float64

// MarshalJSON emits null for NaN and ±Inf, the raw number otherwise.
func (m Metric) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Changes holds the period-over-period deltas. Climbs/Areas/Pitches/Length
// are percentage changes; AverageGrade and LeadPercent are absolute deltas.
type Changes struct {
	Climbs       Metric `json:"climbs"`
	Areas        Metric `json:"areas"`
	Pitches      Metric `json:"pitches"`
	Length       Metric `json:"length"`
	AverageGrade Metric `json:"averageGrade"`
	LeadPercent  Metric `json:"leadPercent"`
}

// Compare computes the deltas between the current and prior period
// aggregates. A zero prior period yields ±Inf or NaN, which is propagated
// rather than substituted with a default.
func Compare(current, prior AggregateStats) Changes {
	return Changes{
		Climbs:       Metric(percentChange(current.TotalClimbs, prior.TotalClimbs)),
		Areas:        Metric(percentChange(current.UniqueAreas, prior.UniqueAreas)),
		Pitches:      Metric(percentChange(current.TotalPitches, prior.TotalPitches)),
		Length:       Metric(percentChange(current.TotalLength, prior.TotalLength)),
		AverageGrade: Metric(current.AverageGrade - prior.AverageGrade),
		LeadPercent:  Metric(current.LeadPercent() - prior.LeadPercent()),
	}
}

func percentChange(current, prior int) float64 {
	return float64(current-prior) / float64(prior) * 100
}
