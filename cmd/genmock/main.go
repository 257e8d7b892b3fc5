// Command genmock generates a deterministic mock tick CSV plus the matching
// report fixture. It uses the actual domain package to build the report so the
// fixture always matches real service behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv-out data/mock/ticks_2024.csv \
//	  -report-out data/mock/report_2024.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cragstats/tick-report-service/internal/domain"
)

const (
	reportYear = 2024
	randSeed   = 240601
)

var routes = []struct {
	name     string
	rating   string
	location string
	pitches  int
	length   int
}{
	{"High Exposure", "5.6", "New York > Gunks > Trapps", 3, 250},
	{"Shockley's Ceiling", "5.6", "New York > Gunks > Trapps", 3, 230},
	{"Bonnie's Roof", "5.9", "New York > Gunks > Trapps", 2, 180},
	{"Birdland", "5.8+", "New York > Gunks > Trapps", 2, 160},
	{"Moonlight", "5.10b", "New York > Gunks > Near Trapps", 1, 100},
	{"Predator", "5.13a", "New Hampshire > Rumney > Waimea", 1, 80},
	{"Flying Hawaiian", "5.11a", "New Hampshire > Rumney > The Parking Lot Wall", 1, 70},
	{"Thin Air", "5.6", "New Hampshire > Cathedral Ledge", 4, 400},
	{"Fun House", "5.7", "New Hampshire > Cathedral Ledge", 2, 200},
	{"Armed and Dangerous", "5.10a/b", "Nevada > Red Rocks > Calico Basin", 1, 90},
	{"Cat in the Hat", "5.6", "Nevada > Red Rocks > Mescalito", 5, 500},
	{"Algae on Parade", "5.7", "West Virginia > New River Gorge > Bubba City", 1, 60},
}

var styles = []struct {
	style     string
	leadStyle string
}{
	{"Lead", "Onsight"},
	{"Lead", "Flash"},
	{"Lead", "Redpoint"},
	{"Lead", "Fell/Hung"},
	{"TR", ""},
	{"Follow", ""},
	{"Sport", "Redpoint"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the mock tick CSV")
	reportOut := flag.String("report-out", "", "output path for the report JSON fixture")
	flag.Parse()

	if *csvOut == "" || *reportOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -report-out")
	}

	// Fixed clock for a reproducible generatedAt timestamp.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.January, 1, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	raws := generateRaws()
	if err := writeCSV(*csvOut, raws); err != nil {
		return fmt.Errorf("writing tick CSV: %w", err)
	}
	log.Printf("wrote tick CSV: %s (%d rows)", *csvOut, len(raws))

	ticks, dropped := domain.ParseTicks(raws)
	log.Printf("parsed: %d ticks, %d dropped", len(ticks), dropped)

	report := domain.BuildReport(ticks, reportYear)
	if err := writeJSON(*reportOut, report); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportOut)

	printStats(report)
	return nil
}

// generateRaws produces two seasons of ticks from a seeded PRNG: the report
// year plus a lighter prior year, with a couple of malformed rows mixed in to
// exercise the validity invariant.
func generateRaws() []domain.RawTick {
	rng := rand.New(rand.NewSource(randSeed))

	var raws []domain.RawTick
	appendSeason := func(year, days int) {
		for i := 0; i < days; i++ {
			day := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, rng.Intn(240))
			climbs := 1 + rng.Intn(4)
			for c := 0; c < climbs; c++ {
				r := routes[rng.Intn(len(routes))]
				s := styles[rng.Intn(len(styles))]
				at := day.Add(time.Duration(8+rng.Intn(11)) * time.Hour)
				raws = append(raws, domain.RawTick{
					Date:      at.Format("2006-01-02 15:04:05"),
					Route:     r.name,
					Rating:    r.rating,
					Location:  r.location,
					Style:     s.style,
					LeadStyle: s.leadStyle,
					Pitches:   strconv.Itoa(r.pitches),
					Length:    strconv.Itoa(r.length),
					Stars:     strconv.Itoa(rng.Intn(5)),
					Notes:     "",
				})
			}
		}
	}

	appendSeason(reportYear, 40)
	appendSeason(reportYear-1, 25)

	// Malformed rows the ingester must drop.
	raws = append(raws,
		domain.RawTick{Route: "No Date Route", Rating: "5.9"},
		domain.RawTick{Date: "not-a-date", Route: "Bad Date Route", Rating: "5.8"},
		domain.RawTick{Date: "2024-06-01", Route: "", Rating: "5.7"},
	)
	return raws
}

func writeCSV(path string, raws []domain.RawTick) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "route", "rating", "location", "style", "leadStyle", "pitches", "length", "stars", "notes"}); err != nil {
		return err
	}
	for _, r := range raws {
		row := []string{r.Date, r.Route, r.Rating, r.Location, r.Style, r.LeadStyle, r.Pitches, r.Length, r.Stars, r.Notes}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(report *domain.Report) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total climbs: %d\n", report.BasicStats.TotalClimbs)
	fmt.Printf("Unique routes: %d, unique areas: %d, sessions: %d\n",
		report.BasicStats.UniqueRoutes, report.BasicStats.UniqueAreas, report.BasicStats.ClimbingSessions)
	fmt.Printf("Pitches: %d, length: %d ft\n",
		report.BasicStats.TotalPitches, report.BasicStats.TotalLength)
	fmt.Printf("Styles: lead=%d tr=%d follow=%d other=%d\n",
		report.Styles.Lead, report.Styles.TR, report.Styles.Follow, report.Styles.Other)
	fmt.Printf("Lead styles: onsight=%d flash=%d redpoint=%d attempts=%d\n",
		report.LeadStyles.Onsight, report.LeadStyles.Flash, report.LeadStyles.Redpoint, report.LeadStyles.Attempts)
	fmt.Printf("Hardest grade: %g, average grade: %g\n",
		report.Averages.HardestGrade, float64(report.Averages.AverageGrade))
	fmt.Printf("Multi-pitch: %d\n", report.MultiPitchCount)
	fmt.Printf("Longest streak: %d days, longest rest gap: %d days\n",
		report.FunStats.LongestStreak, report.FunStats.LongestRestGap)
	fmt.Printf("Sending season: month index %d\n", report.Progression.SendingSeason)

	fmt.Printf("Top areas:")
	for _, a := range report.BasicStats.TopAreas {
		fmt.Printf(" %s=%d", a.Area, a.Count)
	}
	fmt.Println()

	ty := report.YearComparison.ThisYear
	ly := report.YearComparison.LastYear
	fmt.Printf("This year: climbs=%d pitches=%d length=%d\n", ty.TotalClimbs, ty.TotalPitches, ty.TotalLength)
	fmt.Printf("Last year: climbs=%d pitches=%d length=%d\n", ly.TotalClimbs, ly.TotalPitches, ly.TotalLength)
	fmt.Printf("Changes: climbs=%+.1f%% pitches=%+.1f%%\n",
		float64(report.YearComparison.Changes.Climbs), float64(report.YearComparison.Changes.Pitches))
}
