// ABOUTME: Relative date formatting utilities for human-readable recency labels
// ABOUTME: Computes calendar differences in years, months and days between two dates

package duration

import (
	"fmt"
	"time"
)

// Labels used when no calendar difference can be expressed
const (
	LabelToday   = "Today"
	LabelUnknown = "Unknown"
)

// Period is a calendar difference between two dates
type Period struct {
	Years  int
	Months int
	Days   int
}

// Between returns the calendar period from start to end, ignoring time of day.
// Days are counted after whole months, and a month boundary that overflows the
// target month is clamped to its last day (Jan 31 + 1 month is Feb 28/29).
func Between(start, end time.Time) Period {
	start = dateOnly(start)
	end = dateOnly(end)

	totalMonths := (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month()))
	days := end.Day() - start.Day()

	if totalMonths > 0 && days < 0 {
		totalMonths--
		anchor := addMonthsClamped(start, totalMonths)
		days = int(end.Sub(anchor).Hours() / 24)
	} else if totalMonths < 0 && days > 0 {
		totalMonths++
		days -= daysIn(end.Year(), end.Month())
	}

	return Period{
		Years:  totalMonths / 12,
		Months: totalMonths % 12,
		Days:   days,
	}
}

// Ago renders the time elapsed since created as "N years ago", "N months ago",
// "N days ago" or "Today". A nil creation date yields "Unknown".
func Ago(created *time.Time, now time.Time) string {
	if created == nil {
		return LabelUnknown
	}

	p := Between(*created, now)
	switch {
	case p.Years > 0:
		return plural(p.Years, "year") + " ago"
	case p.Months > 0:
		return plural(p.Months, "month") + " ago"
	case p.Days > 0:
		return plural(p.Days, "day") + " ago"
	default:
		return LabelToday
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)

	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
