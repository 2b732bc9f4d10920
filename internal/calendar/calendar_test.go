package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/reti/internal/calendar"
	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
)

func mustDays(t *testing.T, lines ...string) []model.Day {
	t.Helper()
	days := make([]model.Day, 0, len(lines))
	for _, l := range lines {
		d, err := legacy.ParseLine(l)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", l, err)
		}
		days = append(days, d)
	}
	return days
}

func dates(days []model.Day) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fixture(t *testing.T) []model.Day {
	return mustDays(t,
		"2020-12-28 08:00-12:00",
		"2020-12-31 08:00-10:00 10:00-11:00-0.5",
		"2021-01-01 08:00-09:00",
		"2021-01-03 10:00-12:00",
		"2021-01-04 08:00-16:00",
		"2021-02-01 08:00-12:00",
	)
}

func TestDaysInMonth(t *testing.T) {
	days := fixture(t)

	jan, err := calendar.DaysInMonth(days, 2021, time.January)
	if err != nil {
		t.Fatalf("DaysInMonth: %v", err)
	}
	want := []string{"2021-01-01", "2021-01-03", "2021-01-04"}
	if got := dates(jan.Days()); !equalStrings(got, want) {
		t.Errorf("January = %v, want %v", got, want)
	}
	if jan.Worked() != 11*time.Hour {
		t.Errorf("January worked = %v, want 11h", jan.Worked())
	}

	feb, err := calendar.DaysInMonth(days, 2021, time.February)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range jan.Days() {
		for _, b := range feb.Days() {
			if a.Date == b.Date {
				t.Errorf("%s appears in two months", a.Date)
			}
		}
	}

	mar, err := calendar.DaysInMonth(days, 2021, time.March)
	if err != nil {
		t.Fatalf("empty month returned error: %v", err)
	}
	if !mar.Empty() || mar.Len() != 0 {
		t.Errorf("March should be empty, got %v", dates(mar.Days()))
	}

	if _, err := calendar.DaysInMonth(days, 2021, 13); !errors.Is(err, calendar.ErrInvalidQuery) {
		t.Errorf("month 13 error = %v, want ErrInvalidQuery", err)
	}
}

func TestDaysInWeekISOBoundary(t *testing.T) {
	days := fixture(t)

	w53, err := calendar.DaysInWeek(days, 2020, 53)
	if err != nil {
		t.Fatalf("DaysInWeek: %v", err)
	}
	want := []string{"2020-12-28", "2020-12-31", "2021-01-01", "2021-01-03"}
	if got := dates(w53.Days()); !equalStrings(got, want) {
		t.Errorf("2020-W53 = %v, want %v", got, want)
	}
	if w53.Label() != "2020-W53" {
		t.Errorf("Label = %q", w53.Label())
	}

	w1, err := calendar.DaysInWeek(days, 2021, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := dates(w1.Days()); !equalStrings(got, []string{"2021-01-04"}) {
		t.Errorf("2021-W01 = %v", got)
	}

	if _, err := calendar.DaysInWeek(days, 2021, 53); !errors.Is(err, calendar.ErrInvalidQuery) {
		t.Errorf("2021-W53 error = %v, want ErrInvalidQuery", err)
	}
	if _, err := calendar.DaysInWeek(days, 2021, 0); !errors.Is(err, calendar.ErrInvalidQuery) {
		t.Errorf("week 0 error = %v, want ErrInvalidQuery", err)
	}
}

func TestWeeksInYear(t *testing.T) {
	tests := map[int]int{2015: 53, 2016: 52, 2020: 53, 2021: 52, 2026: 53}
	for year, want := range tests {
		if got := calendar.WeeksInYear(year); got != want {
			t.Errorf("WeeksInYear(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestDaysInYear(t *testing.T) {
	days := fixture(t)

	y, err := calendar.DaysInYear(days, 2021)
	if err != nil {
		t.Fatal(err)
	}
	if y.Len() != 4 {
		t.Errorf("2021 days = %d, want 4", y.Len())
	}

	months := y.Months()
	if len(months) != 2 || months[0].Month != time.January || months[1].Month != time.February {
		t.Fatalf("Months = %+v", months)
	}

	weeks := y.Weeks()
	var labels []string
	for _, w := range weeks {
		labels = append(labels, w.Label())
	}
	wantLabels := []string{"2020-W53", "2021-W01", "2021-W05"}
	if !equalStrings(labels, wantLabels) {
		t.Fatalf("Weeks = %v, want %v", labels, wantLabels)
	}
	// The boundary week only carries the 2021 days of the year view.
	if got := dates(weeks[0].Days()); !equalStrings(got, []string{"2021-01-01", "2021-01-03"}) {
		t.Errorf("boundary week = %v", got)
	}

	y2020, err := calendar.DaysInYear(days, 2020)
	if err != nil {
		t.Fatal(err)
	}
	if y2020.Worked() != 6*time.Hour {
		t.Errorf("2020 worked = %v, want 6h", y2020.Worked())
	}
	if y2020.Breaks() != 30*time.Minute {
		t.Errorf("2020 breaks = %v, want 30m", y2020.Breaks())
	}
	if got := y2020.Value(20); got != 130 {
		t.Errorf("2020 value = %v, want 130", got)
	}

	if _, err := calendar.DaysInYear(days, 0); !errors.Is(err, calendar.ErrInvalidQuery) {
		t.Errorf("year 0 error = %v, want ErrInvalidQuery", err)
	}
}
