package domain

import (
	"sort"
)

// feetPerMile converts the vertical-distance sum into "miles climbed".
const feetPerMile = 5280.0

// TimeOfDayCounts buckets ticks by hour of day. Date-only exports carry no
// time component, which degenerates every tick into the morning bucket;
// that is an input-dependent limitation, not a bug.
type TimeOfDayCounts struct {
	Morning   int `json:"morning"`   // [0,11)
	Midday    int `json:"midday"`    // [11,15)
	Afternoon int `json:"afternoon"` // [15,19)
	Evening   int `json:"evening"`   // [19,24)
}

// MonthGrade is one point of the monthly grade progression.
type MonthGrade struct {
	Month        string  `json:"month"`
	AverageGrade float64 `json:"averageGrade"`
}

// PowerDay is the date whose ticks have the highest mean grade.
type PowerDay struct {
	Date         string  `json:"date"`
	AverageGrade float64 `json:"averageGrade"`
}

// Insights holds the derived metrics that need sequential or cross-record
// reasoning. Ratio fields (ProjectConversion, StyleScore) are NaN when
// their denominator is zero, matching the aggregate average policy.
type Insights struct {
	LongestStreak     int
	TimeOfDay         TimeOfDayCounts
	Progression       []MonthGrade
	SendRatio         SendTypeCounts
	ProjectConversion float64
	SendingSeason     int // calendar month index, 0-11
	TotalVertical     int
	VerticalMiles     float64
	PowerDay          PowerDay
	LongestRestGap    int
	FavoriteArea      string
	StyleScore        float64
}

// DeriveInsights computes the derived metrics for the current period.
// Like Aggregate it never mutates its input; date-ordered walks run over a
// sorted private copy.
func DeriveInsights(ticks []Tick) Insights {
	ins := Insights{}

	byDate := make([]Tick, len(ticks))
	copy(byDate, ticks)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Date.Before(byDate[j].Date)
	})

	ins.LongestStreak = longestStreak(byDate)
	ins.LongestRestGap = longestRestGap(byDate)

	monthCounts := make(map[int]int)
	var monthOrder []int
	monthGrades := make(map[string]*gradeAccumulator)
	var monthKeyOrder []string
	dayGrades := make(map[string]*gradeAccumulator)
	var dayOrder []string
	areaCounts := make(map[string]int)
	var areaOrder []string
	leadCount := 0

	for _, t := range ticks {
		switch hour := t.Date.Hour(); {
		case hour < 11:
			ins.TimeOfDay.Morning++
		case hour < 15:
			ins.TimeOfDay.Midday++
		case hour < 19:
			ins.TimeOfDay.Afternoon++
		default:
			ins.TimeOfDay.Evening++
		}

		month := int(t.Date.Month()) - 1
		if _, seen := monthCounts[month]; !seen {
			monthOrder = append(monthOrder, month)
		}
		monthCounts[month]++

		grade := NormalizeGrade(t.Rating)
		monthKey := t.MonthKey()
		if _, seen := monthGrades[monthKey]; !seen {
			monthGrades[monthKey] = &gradeAccumulator{}
			monthKeyOrder = append(monthKeyOrder, monthKey)
		}
		monthGrades[monthKey].add(grade)

		day := t.DayKey()
		if _, seen := dayGrades[day]; !seen {
			dayGrades[day] = &gradeAccumulator{}
			dayOrder = append(dayOrder, day)
		}
		dayGrades[day].add(grade)

		area := t.Area()
		if _, seen := areaCounts[area]; !seen {
			areaOrder = append(areaOrder, area)
		}
		areaCounts[area]++

		countSendType(&ins.SendRatio, t.LeadStyle)

		ins.TotalVertical += t.Length
		if t.Style == "Lead" {
			leadCount++
		}
	}

	ins.Progression = make([]MonthGrade, 0, len(monthKeyOrder))
	for _, key := range monthKeyOrder {
		ins.Progression = append(ins.Progression, MonthGrade{
			Month:        key,
			AverageGrade: monthGrades[key].mean(),
		})
	}

	// Ties break on whichever month was encountered first.
	best := 0
	for _, month := range monthOrder {
		if monthCounts[month] > best {
			best = monthCounts[month]
			ins.SendingSeason = month
		}
	}

	var bestMean float64
	for _, day := range dayOrder {
		if mean := dayGrades[day].mean(); mean > bestMean {
			bestMean = mean
			ins.PowerDay = PowerDay{Date: day, AverageGrade: mean}
		}
	}

	var bestArea int
	for _, area := range areaOrder {
		if areaCounts[area] > bestArea {
			bestArea = areaCounts[area]
			ins.FavoriteArea = area
		}
	}

	ins.ProjectConversion = float64(ins.SendRatio.Redpoint) /
		float64(ins.SendRatio.Redpoint+ins.SendRatio.Attempts) * 100
	ins.VerticalMiles = float64(ins.TotalVertical) / feetPerMile
	ins.StyleScore = float64(leadCount) / float64(len(ticks)) * 100

	return ins
}

// longestStreak walks date-sorted ticks and counts the longest run where
// consecutive ticks are at most one day apart. Same-day ticks are gap zero
// and keep the run going.
func longestStreak(byDate []Tick) int {
	if len(byDate) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(byDate); i++ {
		gap := byDate[i].Date.Sub(byDate[i-1].Date).Hours() / 24
		if gap <= 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// longestRestGap is the largest whole-day gap between consecutive sorted
// tick dates.
func longestRestGap(byDate []Tick) int {
	longest := 0
	for i := 1; i < len(byDate); i++ {
		gap := int(byDate[i].Date.Sub(byDate[i-1].Date).Hours() / 24)
		if gap > longest {
			longest = gap
		}
	}
	return longest
}

type gradeAccumulator struct {
	sum   float64
	count int
}

func (a *gradeAccumulator) add(grade float64) {
	a.sum += grade
	a.count++
}

func (a *gradeAccumulator) mean() float64 {
	return a.sum / float64(a.count)
}
