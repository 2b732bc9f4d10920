package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a part is open and today's total",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	t := now()
	day, _ := st.DayAt(timecalc.Today(t))

	if i := day.OpenPart(); i >= 0 {
		start := day.Parts[i].Start
		since := time.Date(t.Year(), t.Month(), t.Day(), start.Hour, start.Minute, 0, 0, t.Location())
		elapsed := t.Sub(since)
		if elapsed < 0 {
			elapsed = 0
		}
		fmt.Fprintln(out, "Running:")
		fmt.Fprintf(out, "  Since: %s\n", start)
		fmt.Fprintf(out, "  Elapsed: %s\n", timecalc.FormatElapsed(int64(elapsed.Seconds())))
	} else {
		fmt.Fprintln(out, "No active timer.")
	}

	fmt.Fprintf(out, "Today: %s logged.\n", timecalc.FormatDuration(day.Worked()))
	if b := day.Breaks(); b > 0 {
		fmt.Fprintf(out, "Breaks: %s credited.\n", timecalc.FormatDuration(b))
	}
	return nil
}
