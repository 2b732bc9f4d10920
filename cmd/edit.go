package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/editor"
	"github.com/Tiliavir/reti/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit [date]...",
	Short: "Edit days in $EDITOR",
	Long: `Open the given days (or today) as legacy lines in the configured
editor. Every line in the saved file replaces the day at its date. A failing
editor leaves the store untouched.`,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	dates, err := parseDates(args)
	if err != nil {
		return err
	}
	ed, err := editor.New(cfg.Editor, logger)
	if err != nil {
		return err
	}

	return updateStore(cmd.Context(), func(st *store.Store) (bool, error) {
		report, err := ed.Merge(cmd.Context(), st, dates, today())
		if err != nil {
			return false, err
		}
		reportImport(cmd.OutOrStdout(), report)
		return report.Imported > 0, nil
	})
}
