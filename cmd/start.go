package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start [time]",
	Short: "Open a part today at time (default now)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	at, err := clockArg(args)
	if err != nil {
		return err
	}
	date := today()

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		// An open part is closed before the new one starts.
		if day, ok := st.DayAt(date); ok && day.OpenPart() >= 0 {
			p, err := st.ClosePart(date, at)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: auto-stopping part started at %s\n", p.Start)
		}
		if err := st.AddPart(date, model.Part{Start: at}); err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Started at %s on %s\n", at, date)
		return true, nil
	})
}

// clockArg parses an optional HH:MM argument, defaulting to the current time.
func clockArg(args []string) (model.Clock, error) {
	if len(args) == 0 {
		return model.ClockOf(now()), nil
	}
	c, err := legacy.ParseTime(args[0])
	if err != nil {
		return model.Clock{}, fmt.Errorf("unable to parse time (HH:MM or HHMM): %w", err)
	}
	return c, nil
}
