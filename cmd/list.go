package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/printer"
	"github.com/Tiliavir/reti/internal/timecalc"
)

var listWeek bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's parts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listWeek, "week", false, "List the current ISO week instead")
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}

	from, to := today(), today()
	if listWeek {
		from, to = timecalc.WeekRange(from)
	}

	days := st.Range(from, to)
	if len(days) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
		return nil
	}
	if listWeek {
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s\n", timecalc.ISOWeekLabel(from))
	}
	printer.New(cmd.OutOrStdout(), printer.Options{Parts: true}).Days(days)
	return nil
}
