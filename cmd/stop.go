package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
	"github.com/Tiliavir/reti/internal/timecalc"
)

var stopCmd = &cobra.Command{
	Use:   "stop [time]",
	Short: "Close the open part at time (default now)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	at, err := clockArg(args)
	if err != nil {
		return err
	}
	date := today()

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		elapsed, err := closeOpenPart(st, date, at)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stopped at %s. Elapsed: %s\n",
			at, timecalc.FormatElapsed(int64(elapsed.Seconds())))
		return true, nil
	})
}

// closeOpenPart closes the open part of date at stop and returns the time
// recorded. A part left open on the previous day is split at midnight: it
// ends at 23:59 and date gets a part from 00:00 to stop.
func closeOpenPart(st *store.Store, date model.Date, stop model.Clock) (time.Duration, error) {
	if day, ok := st.DayAt(date); ok && day.OpenPart() >= 0 {
		p, err := st.ClosePart(date, stop)
		if err != nil {
			return 0, err
		}
		return p.Duration(), nil
	}

	prev := date.AddDays(-1)
	day, ok := st.DayAt(prev)
	if !ok || day.OpenPart() < 0 {
		return 0, fmt.Errorf("no active timer to stop: %w", store.ErrNoOpenPart)
	}
	first, err := st.ClosePart(prev, model.NewClock(23, 59))
	if err != nil {
		return 0, err
	}
	second := model.Part{Start: model.NewClock(0, 0), Stop: &stop}
	if err := st.AddPart(date, second); err != nil {
		return 0, err
	}
	return first.Duration() + second.Duration(), nil
}
