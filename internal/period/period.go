// Package period resolves named report periods ("month", "prevweek", ...)
// into concrete half-open date ranges relative to a reference time.
package period

import (
	"fmt"
	"time"
)

// Tokens lists the supported period names.
var Tokens = []string{
	"week", "prevweek",
	"month", "prevmonth",
	"quarter", "prevquarter",
	"year", "prevyear",
}

// IsValid reports whether token names a supported period.
func IsValid(token string) bool {
	for _, t := range Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Resolve returns the [from, to) bounds for a named period relative to now.
// Bounds are normalized to midnight in now's location; a nil bound means
// the range is open on that side. Weeks start on Monday.
func Resolve(token string, now time.Time) (from, to *time.Time, err error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch token {
	case "week":
		monday := startOfWeek(midnight)
		return &monday, nil, nil
	case "prevweek":
		monday := startOfWeek(midnight)
		prev := monday.AddDate(0, 0, -7)
		return &prev, &monday, nil
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &first, nil, nil
	case "prevmonth":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		prev := first.AddDate(0, -1, 0)
		return &prev, &first, nil
	case "quarter":
		first := startOfQuarter(now)
		return &first, nil, nil
	case "prevquarter":
		first := startOfQuarter(now)
		prev := first.AddDate(0, -3, 0)
		return &prev, &first, nil
	case "year":
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return &first, nil, nil
	case "prevyear":
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		prev := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
		return &prev, &first, nil
	default:
		return nil, nil, fmt.Errorf("unknown period %q", token)
	}
}

// startOfWeek returns the most recent Monday at or before t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// startOfQuarter returns the first day of t's calendar quarter at midnight.
func startOfQuarter(t time.Time) time.Time {
	quarterMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}
