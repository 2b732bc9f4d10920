// Package store owns every recorded Day and the global fee. Week, Month and
// Year views are derived from it on demand.
package store

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/reti/internal/calendar"
	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
)

var (
	// ErrDuplicateDay is returned by AddDay when the date is already taken.
	ErrDuplicateDay = errors.New("store: day already exists")
	// ErrInvalidPart is returned for parts that break the Part invariants.
	ErrInvalidPart = errors.New("store: invalid part")
	// ErrNoOpenPart is returned by ClosePart when nothing is clocked in.
	ErrNoOpenPart = errors.New("store: no open part")
	// ErrFormat marks a snapshot that is structurally invalid.
	ErrFormat = errors.New("store: malformed snapshot")
)

// Store maps dates to Days. It is not safe for concurrent use.
type Store struct {
	fee  float32
	days map[model.Date]model.Day
}

// ImportReport summarises a best-effort legacy import.
type ImportReport struct {
	Imported int
	Failures []*legacy.LineError
}

// Failed returns the number of skipped lines.
func (r ImportReport) Failed() int {
	return len(r.Failures)
}

// New returns an empty Store with a zero fee.
func New() *Store {
	return &Store{days: make(map[model.Date]model.Day)}
}

// Fee returns the currency-per-hour rate.
func (s *Store) Fee() float32 {
	return s.fee
}

// SetFee replaces the currency-per-hour rate.
func (s *Store) SetFee(fee float32) {
	s.fee = fee
}

// Len returns the number of stored days.
func (s *Store) Len() int {
	return len(s.days)
}

// Day looks up the day at year-month-day.
func (s *Store) Day(year int, month time.Month, day int) (model.Day, bool) {
	return s.DayAt(model.NewDate(year, month, day))
}

// DayAt looks up the day at date. The returned Day is a copy.
func (s *Store) DayAt(date model.Date) (model.Day, bool) {
	d, ok := s.days[date]
	if !ok {
		return model.Day{}, false
	}
	return d.Clone(), true
}

// Days returns copies of all days sorted by date.
func (s *Store) Days() []model.Day {
	out := make([]model.Day, 0, len(s.days))
	for _, d := range s.days {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Range returns the days within [from, to], sorted by date.
func (s *Store) Range(from, to model.Date) []model.Day {
	var out []model.Day
	for _, d := range s.Days() {
		if d.Date.Before(from) || to.Before(d.Date) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// AddDay inserts day unless its date is already taken.
func (s *Store) AddDay(day model.Day) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if _, ok := s.days[day.Date]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDay, day.Date)
	}
	s.days[day.Date] = day.Clone()
	return nil
}

// AddDayForce inserts day, replacing whatever was stored at its date.
func (s *Store) AddDayForce(day model.Day) error {
	if err := validateDay(day); err != nil {
		return err
	}
	s.days[day.Date] = day.Clone()
	return nil
}

// RemoveDay deletes the day at date and reports whether it existed.
func (s *Store) RemoveDay(date model.Date) bool {
	if _, ok := s.days[date]; !ok {
		return false
	}
	delete(s.days, date)
	return true
}

// AddPart appends part to the day at date, creating the day if needed.
func (s *Store) AddPart(date model.Date, part model.Part) error {
	if !date.Valid() {
		return fmt.Errorf("%w: no such date %s", ErrInvalidPart, date)
	}
	if err := part.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPart, err)
	}
	day, ok := s.days[date]
	if !ok {
		day = model.Day{Date: date}
	}
	day.Parts = append(day.Parts, part.Clone())
	s.days[date] = day
	return nil
}

// ClosePart sets stop on the last open part of the day at date.
func (s *Store) ClosePart(date model.Date, stop model.Clock) (model.Part, error) {
	day, ok := s.days[date]
	if !ok {
		return model.Part{}, fmt.Errorf("%w on %s", ErrNoOpenPart, date)
	}
	i := day.OpenPart()
	if i < 0 {
		return model.Part{}, fmt.Errorf("%w on %s", ErrNoOpenPart, date)
	}
	closed := day.Parts[i].Clone()
	closed.Stop = &stop
	if err := closed.Validate(); err != nil {
		return model.Part{}, fmt.Errorf("%w: %v", ErrInvalidPart, err)
	}
	day.Parts[i] = closed
	s.days[date] = day
	return closed.Clone(), nil
}

// AsLegacy renders the day at date in the legacy line format.
func (s *Store) AsLegacy(date model.Date) (string, bool) {
	d, ok := s.days[date]
	if !ok {
		return "", false
	}
	return d.AsLegacy(), true
}

// ImportLegacy parses r line by line and force-adds every valid line.
// Malformed lines are reported and skipped. The error is only set when r
// cannot be read; days parsed before that point are kept.
func (s *Store) ImportLegacy(r io.Reader) (ImportReport, error) {
	res, err := legacy.ParseText(r)
	report := s.apply(res)
	return report, err
}

// MergeLegacy is ImportLegacy over edited text. Each parsed line replaces
// the day at its date.
func (s *Store) MergeLegacy(text string) ImportReport {
	res, _ := legacy.ParseText(strings.NewReader(text))
	return s.apply(res)
}

func (s *Store) apply(res legacy.Result) ImportReport {
	report := ImportReport{Failures: res.Failures}
	for i, d := range res.Days {
		if err := s.AddDayForce(d); err != nil {
			origin := legacy.Origin{Text: d.AsLegacy()}
			if i < len(res.Origins) {
				origin = res.Origins[i]
			}
			report.Failures = append(report.Failures, &legacy.LineError{Line: origin.Line, Text: origin.Text, Err: err})
			continue
		}
		report.Imported++
	}
	sort.SliceStable(report.Failures, func(i, j int) bool {
		return report.Failures[i].Line < report.Failures[j].Line
	})
	return report
}

// Month returns the view of year-month.
func (s *Store) Month(year int, month time.Month) (calendar.Month, error) {
	return calendar.DaysInMonth(s.Days(), year, month)
}

// Week returns the view of ISO week isoYear-Wweek.
func (s *Store) Week(isoYear, week int) (calendar.Week, error) {
	return calendar.DaysInWeek(s.Days(), isoYear, week)
}

// Year returns the view of the calendar year.
func (s *Store) Year(year int) (calendar.Year, error) {
	return calendar.DaysInYear(s.Days(), year)
}

func validateDay(day model.Day) error {
	if !day.Date.Valid() {
		return fmt.Errorf("%w: no such date %s", ErrInvalidPart, day.Date)
	}
	if len(day.Parts) == 0 {
		return fmt.Errorf("%w: %s has no parts", ErrInvalidPart, day.Date)
	}
	for _, p := range day.Parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w on %s: %v", ErrInvalidPart, day.Date, err)
		}
	}
	return nil
}
