package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/store"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <date>...",
	Short: "Remove days from the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

func init() {
	rmCmd.Flags().BoolVar(&rmForce, "force", false, "Do not ask for confirmation")
}

func runRemove(cmd *cobra.Command, args []string) error {
	dates, err := parseDates(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		removed := false
		for _, d := range dates {
			if !rmForce && !confirm(in, out, fmt.Sprintf("Really remove %s from store?", d)) {
				fmt.Fprintf(out, "Skip removal of %s.\n", d)
				continue
			}
			if st.RemoveDay(d) {
				removed = true
				fmt.Fprintf(out, "%s has been removed!\n", d)
			} else {
				fmt.Fprintf(out, "%s doesn't exist!\n", d)
			}
		}
		return removed, nil
	})
}

// confirm asks a yes/no question defaulting to no.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
