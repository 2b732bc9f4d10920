package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <legacy-file>",
	Short: "Import a legacy timesheet (use - for stdin)",
	Long: `Import a legacy timesheet. Every valid line replaces the day at its
date; malformed lines are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		report, err := importFile(cmd, st, args[0])
		if err != nil {
			return false, err
		}
		reportImport(cmd.OutOrStdout(), report)
		return report.Imported > 0, nil
	})
}

// importFile imports path into st; "-" reads the command's input.
func importFile(cmd *cobra.Command, st *store.Store, path string) (store.ImportReport, error) {
	if path == "-" {
		return st.ImportLegacy(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return store.ImportReport{}, fmt.Errorf("unable to import data: %w", err)
	}
	defer f.Close()
	return st.ImportLegacy(f)
}
