package catalog

import (
	"fmt"
	"time"
)

// DefaultMonthsBack is how far back a refresh looks for releases.
const DefaultMonthsBack = 3

// DateLayout is the day precision release date format.
const DateLayout = "2006-01-02"

// ParseReleaseDate parses a release date of year, month or day precision.
// Partial dates resolve to the first day of the period.
func ParseReleaseDate(s string) (time.Time, error) {
	var layout string
	switch len(s) {
	case 4:
		layout = "2006"
	case 7:
		layout = "2006-01"
	default:
		layout = DateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid release date %q", s)
	}
	return t, nil
}

// Cutoff returns the earliest release day kept when looking monthsBack
// thirty-day months back from now. A non-positive monthsBack uses
// DefaultMonthsBack.
func Cutoff(now time.Time, monthsBack int) time.Time {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}
	y, m, d := now.AddDate(0, 0, -30*monthsBack).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Since keeps the albums released on or after cutoff. Albums with an
// unreadable release date are dropped.
func Since(albums []Album, cutoff time.Time) []Album {
	kept := make([]Album, 0, len(albums))
	for _, a := range albums {
		released, err := ParseReleaseDate(a.ReleaseDate)
		if err != nil || released.Before(cutoff) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
