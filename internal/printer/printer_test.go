package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/Tiliavir/reti/internal/calendar"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/printer"
	"github.com/Tiliavir/reti/internal/store"
)

func fixture(t *testing.T) *store.Store {
	t.Helper()
	color.NoColor = true
	st := store.New()
	_, err := st.ImportLegacy(strings.NewReader(
		"2016-04-25 08:00-12:00 13:00-17:00-0.5\n2016-04-26 08:00-10:00 10:30\n"))
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func render(t *testing.T, opts printer.Options, fn func(p *printer.Printer)) string {
	t.Helper()
	var buf bytes.Buffer
	fn(printer.New(&buf, opts))
	return buf.String()
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func assertMissing(t *testing.T, out string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			t.Errorf("output unexpectedly contains %q:\n%s", w, out)
		}
	}
}

func TestMonthsDefaultShowsWorked(t *testing.T) {
	st := fixture(t)
	month, err := st.Month(2016, time.April)
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, printer.Options{}, func(p *printer.Printer) {
		p.Months([]calendar.Month{month})
	})

	assertContains(t, out, "2016-04", "(2 days)", "worked", "6h 00m", "6.00h")
	assertMissing(t, out, "breaks", "value", "2016-04-25")
}

func TestBreaksAndValue(t *testing.T) {
	st := fixture(t)
	week, err := st.Week(2016, 17)
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, printer.Options{Breaks: true, Fee: 50}, func(p *printer.Printer) {
		p.Weeks([]calendar.Week{week})
	})

	assertContains(t, out, "2016-W17", "breaks", "2h 00m", "value", "400.00")
	assertMissing(t, out, "worked")
}

func TestDaysWithParts(t *testing.T) {
	st := fixture(t)

	out := render(t, printer.Options{Parts: true}, func(p *printer.Printer) {
		p.Days(st.Days())
	})

	assertContains(t, out,
		"2016-04-25 Mon", "2016-04-26 Tue",
		"08:00-12:00", "13:00-17:00", "break x0.5",
		"10:30-…", "(open)",
	)
}

func TestYearVerboseListsMonths(t *testing.T) {
	st := fixture(t)
	if err := st.AddDay(model.NewDay(model.NewDate(2016, time.May, 2),
		model.Part{Start: model.NewClock(9, 0), Stop: ptr(model.NewClock(10, 0))})); err != nil {
		t.Fatal(err)
	}
	year, err := st.Year(2016)
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, printer.Options{Verbose: true}, func(p *printer.Printer) {
		p.Years([]calendar.Year{year})
	})

	assertContains(t, out, "2016", "(3 days)", "paid", "9h 00m", "2016-04", "2016-05")
}

func ptr(c model.Clock) *model.Clock { return &c }
