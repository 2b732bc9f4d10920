package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/calendar"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/printer"
	"github.com/Tiliavir/reti/internal/timecalc"
)

var (
	showDays    bool
	showParts   bool
	showWorked  bool
	showBreaks  bool
	showVerbose bool

	showYear  int
	showMonth int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Report worked time, breaks and value",
}

var showYearCmd = &cobra.Command{
	Use:   "year [year]...",
	Short: "Report whole years (default: this year)",
	RunE:  runShowYear,
}

var showMonthCmd = &cobra.Command{
	Use:   "month [month]...",
	Short: "Report months of --year (default: this month)",
	RunE:  runShowMonth,
}

var showWeekCmd = &cobra.Command{
	Use:   "week [week]...",
	Short: "Report ISO weeks of the ISO week-year --year (default: this week)",
	RunE:  runShowWeek,
}

var showDayCmd = &cobra.Command{
	Use:   "day [day]...",
	Short: "Report days of --year and --month (default: today)",
	RunE:  runShowDay,
}

func init() {
	pf := showCmd.PersistentFlags()
	pf.BoolVar(&showDays, "days", false, "List the days of each period")
	pf.BoolVar(&showParts, "parts", false, "List the parts of each day")
	pf.BoolVar(&showWorked, "worked", false, "Show worked time (default unless --breaks)")
	pf.BoolVar(&showBreaks, "breaks", false, "Show credited break time")
	pf.BoolVarP(&showVerbose, "verbose", "v", false, "Show paid totals and assumed defaults")

	for _, c := range []*cobra.Command{showMonthCmd, showWeekCmd, showDayCmd} {
		c.Flags().IntVarP(&showYear, "year", "y", 0, "Year (default: current)")
	}
	showDayCmd.Flags().IntVarP(&showMonth, "month", "m", 0, "Month (default: current)")

	showCmd.AddCommand(showYearCmd)
	showCmd.AddCommand(showMonthCmd)
	showCmd.AddCommand(showWeekCmd)
	showCmd.AddCommand(showDayCmd)
}

func newPrinter(cmd *cobra.Command, fee float32) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), printer.Options{
		Days:    showDays,
		Parts:   showParts,
		Worked:  showWorked,
		Breaks:  showBreaks,
		Verbose: showVerbose,
		Fee:     fee,
	})
}

// numbers parses the positional arguments, falling back to def.
func numbers(cmd *cobra.Command, args []string, what string, def int) ([]int, error) {
	if len(args) == 0 {
		if showVerbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Assume current %s: %d\n", what, def)
		}
		return []int{def}, nil
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", what, a)
		}
		out = append(out, n)
	}
	return out, nil
}

func yearOr(def int) int {
	if showYear != 0 {
		return showYear
	}
	return def
}

func runShowYear(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	nums, err := numbers(cmd, args, "year", now().Year())
	if err != nil {
		return err
	}

	var years []calendar.Year
	for _, n := range nums {
		y, err := st.Year(n)
		if err != nil {
			return err
		}
		if y.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "Year %d not available!\n", n)
			continue
		}
		years = append(years, y)
	}
	newPrinter(cmd, st.Fee()).Years(years)
	return nil
}

func runShowMonth(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	t := now()
	year := yearOr(t.Year())
	nums, err := numbers(cmd, args, "month", int(t.Month()))
	if err != nil {
		return err
	}

	var months []calendar.Month
	for _, n := range nums {
		m, err := st.Month(year, time.Month(n))
		if err != nil {
			return err
		}
		if m.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "Month %d not available for year %d!\n", n, year)
			continue
		}
		months = append(months, m)
	}
	newPrinter(cmd, st.Fee()).Months(months)
	return nil
}

func runShowWeek(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	isoYear, isoWeek := timecalc.CurrentWeek(now())
	year := yearOr(isoYear)
	nums, err := numbers(cmd, args, "week", isoWeek)
	if err != nil {
		return err
	}

	var weeks []calendar.Week
	for _, n := range nums {
		w, err := st.Week(year, n)
		if err != nil {
			return err
		}
		if w.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "Week %d not available for year %d!\n", n, year)
			continue
		}
		weeks = append(weeks, w)
	}
	newPrinter(cmd, st.Fee()).Weeks(weeks)
	return nil
}

func runShowDay(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	t := now()
	year := yearOr(t.Year())
	month := int(t.Month())
	if showMonth != 0 {
		month = showMonth
	}
	nums, err := numbers(cmd, args, "day", t.Day())
	if err != nil {
		return err
	}

	var days []model.Day
	for _, n := range nums {
		date := model.NewDate(year, time.Month(month), n)
		if !date.Valid() {
			return fmt.Errorf("invalid date %04d-%02d-%02d", year, month, n)
		}
		d, ok := st.DayAt(date)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Day %d not available for month %d in year %d!\n", n, month, year)
			continue
		}
		days = append(days, d)
	}
	newPrinter(cmd, 0).Days(days)
	return nil
}
