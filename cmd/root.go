package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/config"
	"github.com/Tiliavir/reti/internal/logging"
)

var (
	configPath  string
	storageFile string
	storageType string
	prettyJSON  bool
	logLevel    string

	cfg    *config.Config
	logger = zerolog.Nop()

	// now is the clock used for "today" defaults.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "reti",
	Short: "reti – record working hours per day and report them by week, month and year",
	Long: `reti keeps a personal timesheet. Days are entered as plain text lines
such as

  2016-04-25   08:00-12:00  13:00-17:00-0.5   # comment

and reported as worked time, credited breaks and their value at your fee.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to configuration file (default <user config dir>/reti/reti.toml)")
	pf.StringVarP(&storageFile, "file", "f", "", "Storage file, overrides storage.file")
	pf.StringVar(&storageType, "storage", "", "Storage backend: json or sqlite")
	pf.BoolVar(&prettyJSON, "pretty", false, "Write the JSON store indented")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

// setup loads the configuration, applies flag overrides and builds the
// logger shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storageFile != "" {
		c.Storage.File = storageFile
	}
	if storageType != "" {
		c.Storage.Type = storageType
	}
	if cmd.Flags().Changed("pretty") {
		c.Storage.Pretty = prettyJSON
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	cfg = c
	logger = logging.Setup(c.Logging.Level, c.Logging.Format, cmd.ErrOrStderr())
	logger.Debug().
		Str("file", c.Storage.File).
		Str("type", c.Storage.Type).
		Msg("configuration loaded")
	return nil
}
