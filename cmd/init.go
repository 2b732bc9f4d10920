package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/storage"
	"github.com/Tiliavir/reti/internal/store"
)

var initImport string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new, empty store",
	Long: `Create the store file configured in storage.file (or --file).
An existing store is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initImport, "import", "i", "", "Legacy timesheet to import into the new store")
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	b, err := backend()
	if err != nil {
		return err
	}

	st := store.New()
	if initImport != "" {
		report, err := importFile(cmd, st, initImport)
		if err != nil {
			return err
		}
		reportImport(out, report)
	}

	if err := storage.Init(ctx, b, st); err != nil {
		return err
	}
	fmt.Fprintf(out, "New store has been created: %s\n", b.Path())
	return nil
}
