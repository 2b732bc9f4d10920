// Package printer renders time views for humans.
package printer

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/Tiliavir/reti/internal/calendar"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/timecalc"
)

// Options selects what a report shows. With neither Worked nor Breaks set,
// worked time is shown.
type Options struct {
	Days    bool
	Parts   bool
	Worked  bool
	Breaks  bool
	Verbose bool

	// Fee prices paid time; zero hides the value line.
	Fee float32
}

// Printer writes reports to w.
type Printer struct {
	w    io.Writer
	opts Options

	heading *color.Color
	label   *color.Color
	faint   *color.Color
}

// New returns a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	if !opts.Worked && !opts.Breaks {
		opts.Worked = true
	}
	return &Printer{
		w:       w,
		opts:    opts,
		heading: color.New(color.Bold, color.FgCyan),
		label:   color.New(color.FgYellow),
		faint:   color.New(color.Faint),
	}
}

// summary is what every calendar view offers.
type summary interface {
	Label() string
	Len() int
	Worked() time.Duration
	Breaks() time.Duration
	Paid() time.Duration
	Value(fee float32) float32
}

// Years prints one block per year, with a month breakdown when verbose.
func (p *Printer) Years(years []calendar.Year) {
	for _, y := range years {
		p.block(y)
		if p.opts.Verbose {
			for _, m := range y.Months() {
				p.line("  "+m.Label(), m)
			}
		}
		p.days(y.Days())
	}
}

// Months prints one block per month.
func (p *Printer) Months(months []calendar.Month) {
	for _, m := range months {
		p.block(m)
		p.days(m.Days())
	}
}

// Weeks prints one block per ISO week.
func (p *Printer) Weeks(weeks []calendar.Week) {
	for _, w := range weeks {
		p.block(w)
		p.days(w.Days())
	}
}

// Days prints single days, always with their parts when requested.
func (p *Printer) Days(days []model.Day) {
	for _, d := range days {
		p.day(d)
	}
}

func (p *Printer) block(s summary) {
	p.heading.Fprintf(p.w, "%s", s.Label())
	p.faint.Fprintf(p.w, "  (%d days)\n", s.Len())
	if p.opts.Worked {
		p.amount("worked", s.Worked())
	}
	if p.opts.Breaks {
		p.amount("breaks", s.Breaks())
	}
	if p.opts.Verbose {
		p.amount("paid", s.Paid())
	}
	if p.opts.Fee > 0 {
		p.label.Fprintf(p.w, "  %-8s", "value")
		fmt.Fprintf(p.w, "%10.2f\n", s.Value(p.opts.Fee))
	}
}

func (p *Printer) amount(name string, d time.Duration) {
	p.label.Fprintf(p.w, "  %-8s", name)
	fmt.Fprintf(p.w, "%10s  %7sh\n", timecalc.FormatDuration(d), timecalc.FormatHours(d))
}

func (p *Printer) line(name string, s summary) {
	fmt.Fprintf(p.w, "%-12s", name)
	if p.opts.Worked {
		fmt.Fprintf(p.w, "  worked %8s", timecalc.FormatDuration(s.Worked()))
	}
	if p.opts.Breaks {
		fmt.Fprintf(p.w, "  breaks %8s", timecalc.FormatDuration(s.Breaks()))
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) days(days []model.Day) {
	if !p.opts.Days && !p.opts.Parts {
		return
	}
	for _, d := range days {
		p.day(d)
	}
}

func (p *Printer) day(d model.Day) {
	fmt.Fprintf(p.w, "  %s %s", d.Date, d.Date.Weekday().String()[:3])
	if p.opts.Worked {
		fmt.Fprintf(p.w, "  worked %8s", timecalc.FormatDuration(d.Worked()))
	}
	if p.opts.Breaks {
		fmt.Fprintf(p.w, "  breaks %8s", timecalc.FormatDuration(d.Breaks()))
	}
	if d.OpenPart() >= 0 {
		p.label.Fprint(p.w, "  (open)")
	}
	fmt.Fprintln(p.w)
	if !p.opts.Parts {
		return
	}
	for _, part := range d.Parts {
		p.part(part)
	}
}

func (p *Printer) part(part model.Part) {
	stop := "…"
	if part.Stop != nil {
		stop = part.Stop.String()
	}
	fmt.Fprintf(p.w, "      %s-%s", part.Start, stop)
	if part.Factor != nil {
		p.faint.Fprintf(p.w, "  break x%s", model.FormatFactor(*part.Factor))
	}
	if !part.Open() {
		fmt.Fprintf(p.w, "  %s", timecalc.FormatDuration(part.Duration()))
	}
	fmt.Fprintln(p.w)
}
