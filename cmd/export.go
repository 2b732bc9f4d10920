package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

var (
	exportFormat string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export days to stdout",
	Long: `Export days as legacy lines (default), CSV with one row per part, or
a JSON snapshot. --from and --to limit the range; both are inclusive.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "legacy", "Output format: legacy, csv, json")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last date (YYYY-MM-DD)")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	days, err := exportRange(st, exportFrom, exportTo)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		return writeJSON(out, st.Fee(), days)
	case "csv":
		writeCSV(out, days)
	case "legacy":
		fmt.Fprint(out, legacy.Format(days))
	default:
		return fmt.Errorf("unknown export format %q", exportFormat)
	}
	return nil
}

func exportRange(st *store.Store, from, to string) ([]model.Day, error) {
	if from == "" && to == "" {
		return st.Days(), nil
	}
	first, last := model.NewDate(1, 1, 1), model.NewDate(9999, 12, 31)
	var err error
	if from != "" {
		if first, err = legacy.ParseDate(from); err != nil {
			return nil, fmt.Errorf("invalid --from value: %w", err)
		}
	}
	if to != "" {
		if last, err = legacy.ParseDate(to); err != nil {
			return nil, fmt.Errorf("invalid --to value: %w", err)
		}
	}
	return st.Range(first, last), nil
}

func writeJSON(w io.Writer, fee float32, days []model.Day) error {
	sub := store.New()
	sub.SetFee(fee)
	for _, d := range days {
		if err := sub.AddDayForce(d); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(sub.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func writeCSV(w io.Writer, days []model.Day) {
	fmt.Fprintln(w, "date,start,stop,factor,duration_minutes,credited_minutes")
	for _, d := range days {
		for _, p := range d.Parts {
			stop, factor := "", ""
			if p.Stop != nil {
				stop = p.Stop.String()
			}
			if p.Factor != nil {
				factor = model.FormatFactor(*p.Factor)
			}
			fmt.Fprintf(w, "%s,%s,%s,%s,%d,%d\n",
				csvEscape(d.Date.String()),
				csvEscape(p.Start.String()),
				csvEscape(stop),
				csvEscape(factor),
				int64(p.Duration().Minutes()),
				int64(p.Credited().Minutes()),
			)
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
