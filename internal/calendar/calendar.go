// Package calendar builds read-only Week, Month and Year views over a set
// of days. Views are recomputed on every call and never cached.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/reti/internal/model"
)

// ErrInvalidQuery is returned for a period key that cannot exist.
var ErrInvalidQuery = errors.New("calendar: invalid query")

// span holds the days of a period and derives its sums.
type span struct {
	days []model.Day
}

// Days returns the member days in date order.
func (s span) Days() []model.Day { return s.days }

// Len returns the number of member days.
func (s span) Len() int { return len(s.days) }

// Empty reports whether no day falls into the period.
func (s span) Empty() bool { return len(s.days) == 0 }

// Worked sums worked time over all member days.
func (s span) Worked() time.Duration {
	var sum time.Duration
	for _, d := range s.days {
		sum += d.Worked()
	}
	return sum
}

// Breaks sums credited break time over all member days.
func (s span) Breaks() time.Duration {
	var sum time.Duration
	for _, d := range s.days {
		sum += d.Breaks()
	}
	return sum
}

// Paid is worked time plus credited breaks.
func (s span) Paid() time.Duration {
	return s.Worked() + s.Breaks()
}

// Value is the paid time priced at fee per hour.
func (s span) Value(fee float32) float32 {
	return model.Value(s.Paid(), fee)
}

// Week is an ISO-8601 week identified by its week-year and number.
type Week struct {
	span
	Year int
	Week int
}

// Label returns e.g. "2020-W53".
func (w Week) Label() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// Month is a calendar month.
type Month struct {
	span
	Year  int
	Month time.Month
}

// Label returns e.g. "2016-04".
func (m Month) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Year is a calendar year.
type Year struct {
	span
	Year int
}

// Label returns e.g. "2016".
func (y Year) Label() string {
	return fmt.Sprintf("%04d", y.Year)
}

// Months re-runs the month filter over the year's days and returns the
// months that have at least one day, in calendar order.
func (y Year) Months() []Month {
	var out []Month
	for m := time.January; m <= time.December; m++ {
		month, err := DaysInMonth(y.days, y.Year, m)
		if err != nil || month.Empty() {
			continue
		}
		out = append(out, month)
	}
	return out
}

// Weeks groups the year's days by ISO week. Days near the year boundary
// may belong to a week of the neighbouring ISO year.
func (y Year) Weeks() []Week {
	var out []Week
	seen := map[[2]int]bool{}
	for _, d := range y.days {
		isoYear, isoWeek := d.Date.ISOWeek()
		key := [2]int{isoYear, isoWeek}
		if seen[key] {
			continue
		}
		seen[key] = true
		week, err := DaysInWeek(y.days, isoYear, isoWeek)
		if err != nil {
			continue
		}
		out = append(out, week)
	}
	return out
}

// WeeksInYear returns 52 or 53, the number of ISO weeks of isoYear.
func WeeksInYear(isoYear int) int {
	// December 28 is always in the last ISO week of its year.
	_, w := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// DaysInMonth selects the days dated within year-month.
func DaysInMonth(days []model.Day, year int, month time.Month) (Month, error) {
	if err := checkYear(year); err != nil {
		return Month{}, err
	}
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("%w: month %d", ErrInvalidQuery, int(month))
	}
	return Month{
		span:  filter(days, func(d model.Date) bool { return d.Year == year && d.Month == month }),
		Year:  year,
		Month: month,
	}, nil
}

// DaysInWeek selects the days whose ISO week is isoYear-Wweek.
func DaysInWeek(days []model.Day, isoYear, week int) (Week, error) {
	if err := checkYear(isoYear); err != nil {
		return Week{}, err
	}
	if week < 1 || week > WeeksInYear(isoYear) {
		return Week{}, fmt.Errorf("%w: week %d of %d", ErrInvalidQuery, week, isoYear)
	}
	return Week{
		span: filter(days, func(d model.Date) bool {
			y, w := d.ISOWeek()
			return y == isoYear && w == week
		}),
		Year: isoYear,
		Week: week,
	}, nil
}

// DaysInYear selects the days dated within the calendar year.
func DaysInYear(days []model.Day, year int) (Year, error) {
	if err := checkYear(year); err != nil {
		return Year{}, err
	}
	return Year{
		span: filter(days, func(d model.Date) bool { return d.Year == year }),
		Year: year,
	}, nil
}

func checkYear(year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidQuery, year)
	}
	return nil
}

func filter(days []model.Day, keep func(model.Date) bool) span {
	var s span
	for _, d := range days {
		if keep(d.Date) {
			s.days = append(s.days, d)
		}
	}
	return s
}
