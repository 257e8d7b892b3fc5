package domain

import "time"

// BasicStats are the headline counts and sums for the current period.
type BasicStats struct {
	TotalClimbs      int         `json:"totalClimbs"`
	UniqueRoutes     int         `json:"uniqueRoutes"`
	UniqueAreas      int         `json:"uniqueAreas"`
	ClimbingSessions int         `json:"climbingSessions"`
	TotalPitches     int         `json:"totalPitches"`
	TotalLength      int         `json:"totalLength"`
	TopAreas         []AreaCount `json:"topAreas"`
}

// Averages are the grade-scale summaries. AverageGrade and ClimbsPerSession
// are NaN (null in JSON) when the period is empty.
type Averages struct {
	AverageGrade     Metric  `json:"averageGrade"`
	HardestGrade     float64 `json:"hardestGrade"`
	ClimbsPerSession Metric  `json:"climbsPerSession"`
}

// Progression is the month-by-month grade trend plus the busiest month.
type Progression struct {
	Monthly []MonthGrade `json:"monthly"`
	// SendingSeason is the 0-11 calendar month index with the most ticks.
	SendingSeason int `json:"sendingSeason"`
}

// YearSummary condenses one period for the side-by-side comparison. Its
// lead percentage uses the per-period style bucketing (tr = exact "TR").
type YearSummary struct {
	Year         int    `json:"year"`
	TotalClimbs  int    `json:"totalClimbs"`
	UniqueAreas  int    `json:"uniqueAreas"`
	TotalPitches int    `json:"totalPitches"`
	TotalLength  int    `json:"totalLength"`
	AverageGrade Metric `json:"averageGrade"`
	LeadPercent  Metric `json:"leadPercent"`
}

// YearComparison is the current period against the prior one.
type YearComparison struct {
	ThisYear YearSummary `json:"thisYear"`
	LastYear YearSummary `json:"lastYear"`
	Changes  Changes     `json:"changes"`
}

// FunStats carries the derived insight metrics.
type FunStats struct {
	TotalVertical     int             `json:"totalVertical"`
	VerticalMiles     float64         `json:"verticalMiles"`
	LongestStreak     int             `json:"longestStreak"`
	LongestRestGap    int             `json:"longestRestGap"`
	TimeOfDay         TimeOfDayCounts `json:"timeOfDay"`
	SendRatio         SendTypeCounts  `json:"sendRatio"`
	ProjectConversion Metric          `json:"projectConversion"`
	PowerDay          PowerDay        `json:"powerDay"`
	FavoriteArea      string          `json:"favoriteArea"`
	StyleScore        Metric          `json:"styleScore"`
}

// Report is the sole output of a build: every aggregate, distribution, and
// highlight for the reporting year plus the comparison against the year
// before. It is constructed fresh on each build and never mutated after.
type Report struct {
	Year              int             `json:"year"`
	BasicStats        BasicStats      `json:"basicStats"`
	Styles            StyleCounts     `json:"styles"`
	LeadStyles        SendTypeCounts  `json:"leadStyles"`
	GradeDistribution map[string]int  `json:"gradeDistribution"`
	MultiPitchCount   int             `json:"multiPitchCount"`
	Highlights        Highlights      `json:"highlights"`
	FavoriteRoutes    []FavoriteRoute `json:"favoriteRoutes"`
	Progression       Progression     `json:"progression"`
	Averages          Averages        `json:"averages"`
	YearComparison    YearComparison  `json:"yearComparison"`
	FunStats          FunStats        `json:"funStats"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// BuildReport partitions the ticks by calendar year around targetYear, runs
// the aggregator over both periods and the insight engine over the current
// one, and assembles the full report.
func BuildReport(ticks []Tick, targetYear int) *Report {
	current, prior := PartitionByYear(ticks, targetYear)

	cur := Aggregate(current)
	prev := Aggregate(prior)
	ins := DeriveInsights(current)

	return &Report{
		Year: targetYear,
		BasicStats: BasicStats{
			TotalClimbs:      cur.TotalClimbs,
			UniqueRoutes:     cur.UniqueRoutes,
			UniqueAreas:      cur.UniqueAreas,
			ClimbingSessions: cur.ClimbingSessions,
			TotalPitches:     cur.TotalPitches,
			TotalLength:      cur.TotalLength,
			TopAreas:         cur.TopAreas(5),
		},
		Styles:            ReportStyles(current),
		LeadStyles:        cur.SendTypes,
		GradeDistribution: cur.GradeDistribution,
		MultiPitchCount:   cur.MultiPitchCount,
		Highlights:        cur.Highlights,
		FavoriteRoutes:    cur.FavoriteRoutes,
		Progression: Progression{
			Monthly:       ins.Progression,
			SendingSeason: ins.SendingSeason,
		},
		Averages: Averages{
			AverageGrade:     Metric(cur.AverageGrade),
			HardestGrade:     cur.HardestGrade,
			ClimbsPerSession: Metric(float64(cur.TotalClimbs) / float64(cur.ClimbingSessions)),
		},
		YearComparison: YearComparison{
			ThisYear: yearSummary(targetYear, cur),
			LastYear: yearSummary(targetYear-1, prev),
			Changes:  Compare(cur, prev),
		},
		FunStats: FunStats{
			TotalVertical:     ins.TotalVertical,
			VerticalMiles:     ins.VerticalMiles,
			LongestStreak:     ins.LongestStreak,
			LongestRestGap:    ins.LongestRestGap,
			TimeOfDay:         ins.TimeOfDay,
			SendRatio:         ins.SendRatio,
			ProjectConversion: Metric(ins.ProjectConversion),
			PowerDay:          ins.PowerDay,
			FavoriteArea:      ins.FavoriteArea,
			StyleScore:        Metric(ins.StyleScore),
		},
		GeneratedAt: clock.Now(),
	}
}

func yearSummary(year int, s AggregateStats) YearSummary {
	return YearSummary{
		Year:         year,
		TotalClimbs:  s.TotalClimbs,
		UniqueAreas:  s.UniqueAreas,
		TotalPitches: s.TotalPitches,
		TotalLength:  s.TotalLength,
		AverageGrade: Metric(s.AverageGrade),
		LeadPercent:  Metric(s.LeadPercent()),
	}
}
