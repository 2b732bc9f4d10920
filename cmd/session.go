package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/storage"
	"github.com/Tiliavir/reti/internal/store"
	"github.com/Tiliavir/reti/internal/timecalc"
)

func backend() (storage.Backend, error) {
	return storage.Open(cfg.Storage.Type, cfg.Storage.File, cfg.Storage.Pretty, logger)
}

// loadStore returns the persisted store for read-only commands.
func loadStore(ctx context.Context) (*store.Store, error) {
	b, err := backend()
	if err != nil {
		return nil, err
	}
	return b.Load(ctx)
}

// updateStore loads the store, applies fn and saves the result. Nothing is
// written when fn fails or reports that it changed nothing.
func updateStore(ctx context.Context, fn func(st *store.Store) (bool, error)) error {
	b, err := backend()
	if err != nil {
		return err
	}
	st, err := b.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil {
		return err
	}
	if !changed {
		logger.Debug().Msg("store unchanged, not saving")
		return nil
	}
	return b.Save(ctx, st)
}

func today() model.Date {
	return timecalc.Today(now())
}

func parseDates(args []string) ([]model.Date, error) {
	dates := make([]model.Date, 0, len(args))
	for _, a := range args {
		d, err := legacy.ParseDate(a)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// reportImport prints a summary line and every skipped line.
func reportImport(w io.Writer, report store.ImportReport) {
	for _, f := range report.Failures {
		fmt.Fprintf(w, "ignore %v\n", f)
	}
	fmt.Fprintf(w, "%d days imported, %d lines skipped\n", report.Imported, report.Failed())
}
