// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	dps "github.com/markusmobius/go-dateparser"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

var errParseDate = errors.New("unable to parse date")

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period365Days,
}

// PeriodRange returns the start and end time of the period relative to now.
// The start of PeriodAllTime is the zero time.
func PeriodRange(period Period, now time.Time) (start, end time.Time) {
	start = RoundToStart(now)
	end = RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case PeriodToday:
		return
	case PeriodYesterday:
		start = RoundToStart(now.AddDate(0, 0, Range[period]))
		end = RoundToEnd(start)
	case PeriodAllTime:
		start = time.Time{}
	default:
		start = RoundToStart(now.AddDate(0, 0, Range[period]))
	}

	return
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// Clock formats a duration as HH:MM:SS. Hours are not capped at 24.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)

	h := total / secondsInAnHour
	m := (total % secondsInAnHour) / secondsInAMinute
	s := total % secondsInAMinute

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FromStr parses natural language dates such as "20 mins ago" or
// "yesterday 5pm" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dps.Past,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", errParseDate, s, err)
	}

	return dt.Time, nil
}

// ParseDate parses an absolute date in any common layout.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", errParseDate, s, err)
	}

	return t, nil
}
