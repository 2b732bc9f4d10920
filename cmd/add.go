package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

var (
	addPartDate   string
	addPartFactor string
	addParseForce bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add parts or whole days",
}

var addPartCmd = &cobra.Command{
	Use:   "part <start> [stop]",
	Short: "Append a part to a day (today by default)",
	Long: `Append a part to a day. Times are HH:MM or HHMM. Without a stop the
part stays open until "reti stop" closes it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAddPart,
}

var addParseCmd = &cobra.Command{
	Use:     "parse <line>...",
	Short:   "Add a day written as a legacy line",
	Example: `  reti add parse 2016-04-25 08:00-12:00 13:00-17:00-0.5`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAddParse,
}

func init() {
	addPartCmd.Flags().StringVarP(&addPartDate, "date", "d", "", "Day to add the part to (YYYY-MM-DD, default today)")
	addPartCmd.Flags().StringVar(&addPartFactor, "factor", "", "Mark the part as a break credited at this factor")
	addParseCmd.Flags().BoolVar(&addParseForce, "force", false, "Replace an existing day at the same date")
	addCmd.AddCommand(addPartCmd)
	addCmd.AddCommand(addParseCmd)
}

func runAddPart(cmd *cobra.Command, args []string) error {
	date := today()
	if addPartDate != "" {
		d, err := legacy.ParseDate(addPartDate)
		if err != nil {
			return err
		}
		date = d
	}

	part, err := partFromArgs(args, addPartFactor)
	if err != nil {
		return err
	}

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		if err := st.AddPart(date, part); err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", part.AsLegacy(), date)
		return true, nil
	})
}

// partFromArgs builds a part from a start, an optional stop and an
// optional factor.
func partFromArgs(args []string, factor string) (model.Part, error) {
	start, err := legacy.ParseTime(args[0])
	if err != nil {
		return model.Part{}, fmt.Errorf("unable to parse start as time (HH:MM or HHMM): %w", err)
	}
	part := model.Part{Start: start}
	if len(args) > 1 {
		stop, err := legacy.ParseTime(args[1])
		if err != nil {
			return model.Part{}, fmt.Errorf("unable to parse stop as time (HH:MM or HHMM): %w", err)
		}
		part.Stop = &stop
	}
	if factor != "" {
		f, err := legacy.ParseFactor(factor)
		if err != nil {
			return model.Part{}, err
		}
		part.Factor = &f
	}
	return part, part.Validate()
}

func runAddParse(cmd *cobra.Command, args []string) error {
	day, err := legacy.ParseLine(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("unable to parse data: %w", err)
	}

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		add := st.AddDay
		if addParseForce {
			add = st.AddDayForce
		}
		if err := add(day); err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", day.AsLegacy())
		return true, nil
	})
}
