package domain

import (
	"sort"
	"time"
)

// AreaCount pairs an area with its tick count.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// StyleCounts buckets ticks by ascent style. The per-period bucketing used
// for year comparisons counts only exact "TR" as tr; the report-level
// bucketing (see ReportStyles) also folds "Sport" into tr. Both rules are
// kept deliberately — see the year comparison notes in report.go.
type StyleCounts struct {
	Lead   int `json:"lead"`
	TR     int `json:"tr"`
	Follow int `json:"follow"`
	Other  int `json:"other"`
}

// SendTypeCounts buckets lead ticks by send quality. Fell/Hung ticks are
// counted as attempts.
type SendTypeCounts struct {
	Onsight  int `json:"onsight"`
	Flash    int `json:"flash"`
	Redpoint int `json:"redpoint"`
	Attempts int `json:"attempts"`
}

// DayCount pairs a calendar date with its tick count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RouteLength is the longest-route highlight.
type RouteLength struct {
	Route  string `json:"route"`
	Length int    `json:"length"`
}

// RouteGrade is the hardest-route highlight, keeping the display rating.
type RouteGrade struct {
	Route  string `json:"route"`
	Rating string `json:"rating"`
}

// RouteNote is the longest-note highlight.
type RouteNote struct {
	Route string `json:"route"`
	Note  string `json:"note"`
}

// Highlights are the extrema extracted by a single linear scan. All ties
// break first-encountered-wins (strict comparison). Zero values mean the
// record set was empty.
type Highlights struct {
	LongestRoute  RouteLength `json:"longestRoute"`
	HardestRoute  RouteGrade  `json:"hardestRoute"`
	BusiestDay    DayCount    `json:"busiestDay"`
	LongestNote   RouteNote   `json:"longestNote"`
	EarliestClimb time.Time   `json:"earliestClimb"`
	LatestClimb   time.Time   `json:"latestClimb"`
}

// FavoriteRoute is a starred route projected for display.
type FavoriteRoute struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
	Stars int    `json:"stars"`
	Crag  string `json:"crag"`
}

// AggregateStats holds every aggregate computed over one record set.
type AggregateStats struct {
	TotalClimbs      int
	UniqueRoutes     int
	UniqueAreas      int
	ClimbingSessions int

	TotalPitches int
	TotalLength  int

	// HardestGrade is 0 for an empty set; AverageGrade is NaN for an empty
	// set (0/0), preserved rather than special-cased.
	HardestGrade float64
	AverageGrade float64

	Styles    StyleCounts
	SendTypes SendTypeCounts

	// AreaCounts is the full per-area breakdown, descending by count with
	// first-encountered order preserved on ties. TopAreas truncates it.
	AreaCounts []AreaCount

	Highlights      Highlights
	FavoriteRoutes  []FavoriteRoute
	MultiPitchCount int

	// GradeDistribution is keyed by the coarse rating token ("5.10a",
	// "Unknown"), a distinct bucketing from the normalized grade values.
	GradeDistribution map[string]int
}

// Aggregate computes all basic statistics over the given ticks. It is a pure
// function of its input: any sorting happens on private copies, so the
// caller's slice order is never disturbed (record order feeds streak
// computation elsewhere).
func Aggregate(ticks []Tick) AggregateStats {
	s := AggregateStats{
		TotalClimbs:       len(ticks),
		GradeDistribution: make(map[string]int),
	}

	routes := make(map[string]struct{})
	days := make(map[string]int)
	var dayOrder []string
	areas := make(map[string]int)
	var areaOrder []string

	var gradeSum float64
	first := true

	for _, t := range ticks {
		routes[t.Route] = struct{}{}

		day := t.DayKey()
		if _, seen := days[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		days[day]++

		area := t.Area()
		if _, seen := areas[area]; !seen {
			areaOrder = append(areaOrder, area)
		}
		areas[area]++

		countStyle(&s.Styles, t.Style, false)
		countSendType(&s.SendTypes, t.LeadStyle)

		s.TotalPitches += t.Pitches
		s.TotalLength += t.Length
		if t.Pitches > 1 {
			s.MultiPitchCount++
		}
		s.GradeDistribution[GradeToken(t.Rating)]++

		grade := NormalizeGrade(t.Rating)
		gradeSum += grade
		if grade > s.HardestGrade {
			s.HardestGrade = grade
			s.Highlights.HardestRoute = RouteGrade{Route: t.Route, Rating: t.Rating}
		}

		if first || t.Length > s.Highlights.LongestRoute.Length {
			s.Highlights.LongestRoute = RouteLength{Route: t.Route, Length: t.Length}
		}
		if first || len(t.Notes) > len(s.Highlights.LongestNote.Note) {
			s.Highlights.LongestNote = RouteNote{Route: t.Route, Note: t.Notes}
		}
		if first || t.Date.Before(s.Highlights.EarliestClimb) {
			s.Highlights.EarliestClimb = t.Date
		}
		if first || t.Date.After(s.Highlights.LatestClimb) {
			s.Highlights.LatestClimb = t.Date
		}
		first = false
	}

	s.UniqueRoutes = len(routes)
	s.UniqueAreas = len(areas)
	s.ClimbingSessions = len(days)
	s.AverageGrade = gradeSum / float64(len(ticks))

	for _, day := range dayOrder {
		if days[day] > s.Highlights.BusiestDay.Count {
			s.Highlights.BusiestDay = DayCount{Date: day, Count: days[day]}
		}
	}

	s.AreaCounts = make([]AreaCount, 0, len(areaOrder))
	for _, area := range areaOrder {
		s.AreaCounts = append(s.AreaCounts, AreaCount{Area: area, Count: areas[area]})
	}
	sort.SliceStable(s.AreaCounts, func(i, j int) bool {
		return s.AreaCounts[i].Count > s.AreaCounts[j].Count
	})

	s.FavoriteRoutes = favoriteRoutes(ticks)

	return s
}

// TopAreas returns the highest-count areas, at most limit of them.
func (s AggregateStats) TopAreas(limit int) []AreaCount {
	if limit > len(s.AreaCounts) {
		limit = len(s.AreaCounts)
	}
	if limit < 0 {
		limit = 0
	}
	return s.AreaCounts[:limit]
}

// LeadPercent is the share of lead-style ticks, NaN for an empty set.
func (s AggregateStats) LeadPercent() float64 {
	return float64(s.Styles.Lead) / float64(s.TotalClimbs) * 100
}

// favoriteRoutes returns the top five starred ticks, descending by stars
// with input order preserved on ties. Sorting happens on a private copy.
func favoriteRoutes(ticks []Tick) []FavoriteRoute {
	var starred []Tick
	for _, t := range ticks {
		if t.Stars >= 1 {
			starred = append(starred, t)
		}
	}
	sort.SliceStable(starred, func(i, j int) bool {
		return starred[i].Stars > starred[j].Stars
	})
	if len(starred) > 5 {
		starred = starred[:5]
	}

	favorites := make([]FavoriteRoute, 0, len(starred))
	for _, t := range starred {
		favorites = append(favorites, FavoriteRoute{
			Name:  t.Route,
			Grade: t.Rating,
			Stars: t.Stars,
			Crag:  t.Crag(),
		})
	}
	return favorites
}

// countStyle buckets a style value. When sportAsTR is set, "Sport" counts as
// tr (the report-level rule); otherwise only exact "TR" does (the per-period
// rule used inside year comparisons).
func countStyle(counts *StyleCounts, style string, sportAsTR bool) {
	switch {
	case style == "Lead":
		counts.Lead++
	case style == "TR":
		counts.TR++
	case sportAsTR && style == "Sport":
		counts.TR++
	case style == "Follow":
		counts.Follow++
	default:
		counts.Other++
	}
}

func countSendType(counts *SendTypeCounts, leadStyle string) {
	switch leadStyle {
	case "Onsight":
		counts.Onsight++
	case "Flash":
		counts.Flash++
	case "Redpoint":
		counts.Redpoint++
	case "Fell/Hung":
		counts.Attempts++
	}
}

// ReportStyles computes the report-level style breakdown, which folds
// "Sport" ticks into the tr bucket.
func ReportStyles(ticks []Tick) StyleCounts {
	var counts StyleCounts
	for _, t := range ticks {
		countStyle(&counts, t.Style, true)
	}
	return counts
}
