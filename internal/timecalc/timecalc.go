package timecalc

import (
	"fmt"
	"time"

	"github.com/Tiliavir/reti/internal/model"
)

// FormatDuration formats d as a human-readable string like "1h 40m" or "45m".
func FormatDuration(d time.Duration) string {
	minutes := int64(d.Round(time.Minute) / time.Minute)
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %02dm", sign, h, m)
	}
	return fmt.Sprintf("%s%dm", sign, m)
}

// FormatHours formats d as decimal hours, e.g. "7.50".
func FormatHours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Hours())
}

// FormatElapsed formats seconds as "1h 2m 3s", "2m 3s" or "3s".
func FormatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Today returns the local calendar date of now.
func Today(now time.Time) model.Date {
	return model.DateOf(now)
}

// CurrentWeek returns the ISO week-year and week of now. The week-year is
// used as is, so late December may report week 1 of the next year.
func CurrentWeek(now time.Time) (year, week int) {
	return now.ISOWeek()
}

// WeekRange returns the Monday and Sunday of the ISO week containing d.
func WeekRange(d model.Date) (model.Date, model.Date) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := d.AddDays(-(wd - 1))
	return monday, monday.AddDays(6)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(d model.Date) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
