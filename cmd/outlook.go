package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/reti/internal/config"
	"github.com/Tiliavir/reti/internal/msgraph"
	"github.com/Tiliavir/reti/internal/store"
	"github.com/Tiliavir/reti/internal/timecalc"
)

var (
	outlookSyncFrom        string
	outlookSyncTo          string
	outlookSyncDate        string
	outlookSyncDryRun      bool
	outlookSyncTZ          string
	outlookSyncBreakFactor float64
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as parts",
	Long: `Import the events of a date range (default today) from the Outlook
calendar. Cancelled, all-day, private and free events are ignored and parts
already present are skipped, so syncing twice changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default outlook.timezone)")
	outlookSyncCmd.Flags().Float64Var(&outlookSyncBreakFactor, "break-factor", 0, "Import events as breaks credited at this factor (default outlook.break_factor)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange resolves the --date, --from and --to flags to [from, to].
func syncRange(t time.Time) (time.Time, time.Time, error) {
	switch {
	case outlookSyncDate != "":
		d, err := time.ParseInLocation("2006-01-02", outlookSyncDate, t.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --date value %q: %w", outlookSyncDate, err)
		}
		return timecalc.StartOfDay(d), timecalc.EndOfDay(d), nil

	case outlookSyncFrom != "" || outlookSyncTo != "":
		if outlookSyncFrom == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
		}
		from, err := time.ParseInLocation("2006-01-02", outlookSyncFrom, t.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value %q: %w", outlookSyncFrom, err)
		}
		to := t
		if outlookSyncTo != "" {
			to, err = time.ParseInLocation("2006-01-02", outlookSyncTo, t.Location())
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value %q: %w", outlookSyncTo, err)
			}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
		}
		return timecalc.StartOfDay(from), timecalc.EndOfDay(to), nil

	default:
		return timecalc.StartOfDay(t), timecalc.EndOfDay(t), nil
	}
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	from, to, err := syncRange(now())
	if err != nil {
		return err
	}

	opts := msgraph.SyncOptions{
		Timezone:    cfg.Outlook.Timezone,
		BreakFactor: cfg.Outlook.BreakFactor,
		DryRun:      outlookSyncDryRun,
	}
	if cmd.Flags().Changed("timezone") {
		opts.Timezone = outlookSyncTZ
	}
	if cmd.Flags().Changed("break-factor") {
		opts.BreakFactor = outlookSyncBreakFactor
	}

	dryTag := ""
	if opts.DryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), dryTag)

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	tokens := msgraph.NewTokenFile(msgraph.TokenPath(dir))
	oauthCfg := msgraph.OAuthConfig(cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	tok, err := msgraph.Authenticate(ctx, oauthCfg, tokens, out, logger)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, oauthCfg, tok, tokens, logger)

	events, err := client.GetCalendarView(ctx, from, to, opts.Timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	logger.Debug().Int("events", len(events)).Msg("calendar view fetched")

	var result msgraph.SyncResult
	err = updateStore(ctx, func(st *store.Store) (bool, error) {
		r, err := msgraph.SyncEvents(st, events, opts, out, logger)
		if err != nil {
			return false, err
		}
		result = r
		return !opts.DryRun && result.Imported > 0, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d filtered\n", result.Filtered)
	if result.Errors > 0 {
		return fmt.Errorf("%d events could not be imported", result.Errors)
	}
	return nil
}
