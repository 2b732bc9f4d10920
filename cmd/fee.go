package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/store"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a store setting",
}

var getFeeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Print the hourly fee",
	Args:  cobra.NoArgs,
	RunE:  runGetFee,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a store setting",
}

var setFeeCmd = &cobra.Command{
	Use:   "fee <value>",
	Short: "Set the hourly fee used for report values",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetFee,
}

func init() {
	getCmd.AddCommand(getFeeCmd)
	setCmd.AddCommand(setFeeCmd)
}

func runGetFee(cmd *cobra.Command, args []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current fee: %s\n", formatFee(st.Fee()))
	return nil
}

func runSetFee(cmd *cobra.Command, args []string) error {
	fee, err := parseFee(args[0])
	if err != nil {
		return err
	}
	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		st.SetFee(fee)
		fmt.Fprintf(cmd.OutOrStdout(), "Fee set to %s\n", formatFee(fee))
		return true, nil
	})
}

func parseFee(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid fee %q: %w", s, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid fee %q: must be a non-negative number", s)
	}
	return float32(v), nil
}

func formatFee(fee float32) string {
	return strconv.FormatFloat(float64(fee), 'f', -1, 32)
}
