// Package domain models a personal climbing log ("ticks") and the yearly
// report derived from it.
//
// # Data Source
//
// Ticks originate from a guidebook-site CSV export: one row per ascent with
// named columns (date, route, rating, location, style, leadStyle, pitches,
// length, stars, notes). The fetch adapter downloads the export and maps
// each row to a [RawTick]; all parsing and defaulting happens once in
// [ParseTick] so the aggregates never guard against missing fields.
//
// # Tick Conventions
//
// Location format:
//
//	"Region > Area > Crag"  →  a ">"-separated path from broadest to
//	narrowest. The second segment is the canonical area used for grouping;
//	the last segment is the crag shown in route highlights.
//
// Rating format (Yosemite Decimal System, free-text):
//
//	"5.<base><modifier> [extra]"  →  e.g. "5.10a", "5.9+", "5.11b/c",
//	"5.10c PG13". The base is an integer, the modifier an optional run of
//	a-d letters, "+"/"-", and "/" pairs. Trailing text such as protection
//	annotations is ignored. [NormalizeGrade] maps a rating to a single
//	comparable number; the scale is intentionally approximate and exists
//	only to produce a consistent total order for "hardest", "average",
//	and progression computations. Ratings without a "5." pattern (boulder
//	grades, blanks) map to a fixed sentinel below any roped grade so they
//	never register as the hardest climb.
//
// Style values:
//
//	style:     Lead, TR, Sport, Follow, or other/blank.
//	leadStyle: Onsight, Flash, Redpoint, Fell/Hung, or blank.
//	Fell/Hung counts as an attempt; the other three are sends.
//
// # Degenerate Arithmetic
//
// Averages and ratios over empty sets intentionally produce NaN (and
// percentage changes against a zero prior period produce ±Inf). These are
// defined degenerate values, not errors: they pass through the report
// unchanged and are mapped to null only at the JSON boundary, where the
// encoding cannot represent them. See [Metric].
package domain
