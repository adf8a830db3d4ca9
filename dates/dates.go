// Package dates implements civil-date arithmetic for treatment calendars.
// All dates are normalized to midnight UTC so day differences are exact.
package dates

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

var ErrMalformedDate = fmt.Errorf("malformed date, expected %s", Layout)

// Parse parses a YYYY-MM-DD string into a civil date at midnight UTC.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate normalizes an instant to its civil date at midnight UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return Truncate(t).AddDate(0, 0, days)
}

// DaysBetween returns the number of civil days from one date to another.
// Negative when to precedes from.
func DaysBetween(from time.Time, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// WeeksBetween returns the number of treatment weeks elapsed between two
// dates, rounding partial weeks up. Never negative.
func WeeksBetween(from time.Time, to time.Time) int {
	days := DaysBetween(from, to)
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}
