package domain

import (
	"strings"
	"time"
)

// RawTick represents one unparsed row of the tick CSV export. All fields are
// strings exactly as read; parsing and defaulting happen in ParseTick.
type RawTick struct {
	Date      string
	Route     string
	Rating    string
	Location  string
	Style     string
	LeadStyle string
	Pitches   string
	Length    string
	Stars     string
	Notes     string
}

// Tick is one validated climbing ascent. Date and Route are always set;
// every other field carries its documented default when absent from the row.
type Tick struct {
	Date      time.Time
	Route     string
	Rating    string
	Location  string
	Style     string
	LeadStyle string
	Pitches   int // >= 1
	Length    int // >= 0, linear feet climbed
	Stars     int // personal rating, may be zero or negative
	Notes     string
}

// Area returns the canonical grouping area: the second segment of the
// ">"-separated location path. Single-segment locations fall back to that
// segment; an empty location yields "".
func (t Tick) Area() string {
	segments := splitLocation(t.Location)
	if len(segments) >= 2 {
		return segments[1]
	}
	if len(segments) == 1 {
		return segments[0]
	}
	return ""
}

// Crag returns the narrowest segment of the location path, shown alongside
// route highlights.
func (t Tick) Crag() string {
	segments := splitLocation(t.Location)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// DayKey returns the calendar-date key used for per-day grouping.
func (t Tick) DayKey() string {
	return t.Date.Format("2006-01-02")
}

// MonthKey returns the year-month key used for progression grouping.
func (t Tick) MonthKey() string {
	return t.Date.Format("2006-01")
}

func splitLocation(location string) []string {
	if strings.TrimSpace(location) == "" {
		return nil
	}
	parts := strings.Split(location, ">")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
