// Command validate performs end-to-end integrity checks on a tick CSV export:
// it parses the file with the real ingestion path, builds a full report, and
// verifies internal consistency (count conservation, distribution sums,
// partition disjointness, ordering of ranked lists).
//
// Usage:
//
//	go run ./cmd/validate -csv data/mock/ticks_2024.csv -year 2024
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cragstats/tick-report-service/internal/adapter/ticks"
	"github.com/cragstats/tick-report-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the tick CSV export")
	year := flag.Int("year", 0, "report year (default: current year)")
	reportOut := flag.String("report-out", "", "optional path to write the built report JSON")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *year, *reportOut); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string, year int, reportOut string) int {
	fmt.Println("=== Tick Report Integrity Validation ===")
	fmt.Println()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open CSV: %v\n", err)
		return 1
	}
	defer f.Close()

	raws, err := ticks.ParseCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse CSV: %v\n", err)
		return 1
	}

	parsed, dropped := domain.ParseTicks(raws)

	if year == 0 {
		year = domain.CurrentYear()
	}
	report := domain.BuildReport(parsed, year)

	phases := []*phase{
		validateIngestion(raws, parsed, dropped),
		validatePartition(parsed, report),
		validateDistributions(report),
		validateOrdering(report),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d CSV rows, %d valid ticks, %d dropped, %d in %d\n",
		len(raws), len(parsed), dropped, report.BasicStats.TotalClimbs, year)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if reportOut != "" {
		if err := writeReport(reportOut, report); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write report: %v\n", err)
			return 1
		}
		fmt.Printf("\nWrote report: %s\n", reportOut)
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateIngestion checks count conservation across parsing and that every
// surviving tick satisfies the validity invariant.
func validateIngestion(raws []domain.RawTick, parsed []domain.Tick, dropped int) *phase {
	p := &phase{name: "Ingestion (count conservation, validity)"}

	if len(parsed)+dropped != len(raws) {
		p.errorf("ticks (%d) + dropped (%d) != raw rows (%d)", len(parsed), dropped, len(raws))
	}
	for i, t := range parsed {
		if t.Date.IsZero() {
			p.errorf("tick %d (%s): zero date survived parsing", i, t.Route)
		}
		if t.Route == "" {
			p.errorf("tick %d: empty route survived parsing", i)
		}
		if t.Pitches < 1 {
			p.errorf("tick %d (%s): pitches %d below minimum", i, t.Route, t.Pitches)
		}
		if t.Length < 0 {
			p.errorf("tick %d (%s): negative length %d", i, t.Route, t.Length)
		}
	}
	return p
}

// validatePartition checks that the year split is disjoint and that the
// comparison summaries agree with the headline counts.
func validatePartition(parsed []domain.Tick, report *domain.Report) *phase {
	p := &phase{name: "Partition (disjoint years, summary parity)"}

	current, prior := domain.PartitionByYear(parsed, report.Year)
	for _, t := range current {
		if t.Date.Year() != report.Year {
			p.errorf("current period contains %s from %d", t.Route, t.Date.Year())
		}
	}
	for _, t := range prior {
		if t.Date.Year() != report.Year-1 {
			p.errorf("prior period contains %s from %d", t.Route, t.Date.Year())
		}
	}

	if got := report.YearComparison.ThisYear.TotalClimbs; got != len(current) {
		p.errorf("thisYear.totalClimbs %d != current period size %d", got, len(current))
	}
	if got := report.YearComparison.LastYear.TotalClimbs; got != len(prior) {
		p.errorf("lastYear.totalClimbs %d != prior period size %d", got, len(prior))
	}
	if report.BasicStats.TotalClimbs != report.YearComparison.ThisYear.TotalClimbs {
		p.errorf("basicStats.totalClimbs %d != thisYear.totalClimbs %d",
			report.BasicStats.TotalClimbs, report.YearComparison.ThisYear.TotalClimbs)
	}
	if report.YearComparison.ThisYear.Year != report.Year {
		p.errorf("thisYear.year %d != report year %d", report.YearComparison.ThisYear.Year, report.Year)
	}
	if report.YearComparison.LastYear.Year != report.Year-1 {
		p.errorf("lastYear.year %d != report year - 1", report.YearComparison.LastYear.Year)
	}
	return p
}

// validateDistributions checks that every bucketing of the current period
// sums back to the headline climb count.
func validateDistributions(report *domain.Report) *phase {
	p := &phase{name: "Distributions (bucket sums)"}

	total := report.BasicStats.TotalClimbs

	gradeSum := 0
	for _, n := range report.GradeDistribution {
		gradeSum += n
	}
	if gradeSum != total {
		p.errorf("grade distribution sums to %d, want %d", gradeSum, total)
	}

	s := report.Styles
	if styleSum := s.Lead + s.TR + s.Follow + s.Other; styleSum != total {
		p.errorf("style buckets sum to %d, want %d", styleSum, total)
	}

	ls := report.LeadStyles
	if sendSum := ls.Onsight + ls.Flash + ls.Redpoint + ls.Attempts; sendSum > total {
		p.errorf("lead style buckets sum to %d, above total %d", sendSum, total)
	}

	tod := report.FunStats.TimeOfDay
	if todSum := tod.Morning + tod.Midday + tod.Afternoon + tod.Evening; todSum != total {
		p.errorf("time-of-day buckets sum to %d, want %d", todSum, total)
	}

	if report.MultiPitchCount > total {
		p.errorf("multi-pitch count %d above total %d", report.MultiPitchCount, total)
	}

	if avg := float64(report.Averages.AverageGrade); total > 0 && math.IsNaN(avg) {
		p.errorf("average grade is NaN with %d climbs", total)
	}
	return p
}

// validateOrdering checks ranked lists are sorted and bounded.
func validateOrdering(report *domain.Report) *phase {
	p := &phase{name: "Ordering (ranked lists, month index)"}

	areas := report.BasicStats.TopAreas
	if len(areas) > 5 {
		p.errorf("top areas has %d entries, max 5", len(areas))
	}
	for i := 1; i < len(areas); i++ {
		if areas[i].Count > areas[i-1].Count {
			p.errorf("top areas out of order at %d: %s=%d after %s=%d",
				i, areas[i].Area, areas[i].Count, areas[i-1].Area, areas[i-1].Count)
		}
	}

	favs := report.FavoriteRoutes
	if len(favs) > 5 {
		p.errorf("favorite routes has %d entries, max 5", len(favs))
	}
	for i := 1; i < len(favs); i++ {
		if favs[i].Stars > favs[i-1].Stars {
			p.errorf("favorite routes out of order at %d: %s (%d stars) after %s (%d stars)",
				i, favs[i].Name, favs[i].Stars, favs[i-1].Name, favs[i-1].Stars)
		}
	}

	if ss := report.Progression.SendingSeason; ss < 0 || ss > 11 {
		p.errorf("sending season index %d out of range", ss)
	}

	for i, m := range report.Progression.Monthly {
		if _, err := time.Parse("2006-01", m.Month); err != nil {
			p.errorf("monthly progression entry %d has bad month key %q", i, m.Month)
		}
	}

	hl := report.Highlights
	if report.BasicStats.TotalClimbs > 0 {
		if hl.EarliestClimb.After(hl.LatestClimb) {
			p.errorf("earliest climb %s after latest climb %s",
				hl.EarliestClimb.Format(time.RFC3339), hl.LatestClimb.Format(time.RFC3339))
		}
		if hl.BusiestDay.Count < 1 {
			p.errorf("busiest day count %d below 1 with climbs present", hl.BusiestDay.Count)
		}
	}
	return p
}

func writeReport(path string, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
