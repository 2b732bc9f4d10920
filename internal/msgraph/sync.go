package msgraph

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
	"github.com/Tiliavir/reti/internal/timecalc"
)

var (
	// ErrEmptyEvent is returned for events that end before they start.
	ErrEmptyEvent = errors.New("msgraph: event does not end after its start")
	// ErrBreakFactor is returned for a break factor outside (0,1].
	ErrBreakFactor = errors.New("msgraph: break factor must be in (0,1]")
)

// SyncResult holds per-part counters for a sync operation. Filtered counts
// whole events that were never considered.
type SyncResult struct {
	Imported int
	Skipped  int
	Filtered int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	// Timezone is the IANA zone events are placed in. Empty means UTC.
	Timezone string
	// BreakFactor, when non-zero, imports events as credited breaks.
	BreakFactor float64
	DryRun      bool
}

// Entry is one part of an event placed on a single date.
type Entry struct {
	Date    model.Date
	Part    model.Part
	Subject string
}

func loadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	if l, err := time.LoadLocation(tz); err == nil {
		return l
	}
	return time.UTC
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	// Try RFC3339 first (includes timezone offset).
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t, nil
	}
	// Try RFC3339Nano.
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := loadLocation(tz)

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// MapEvent converts a calendar event into parts. Events that cross
// midnight are split: the first day ends at 23:59 and following days start
// at 00:00. An event ending exactly at midnight ends at 23:59.
func MapEvent(event CalendarEvent, timezone string, breakFactor float64) ([]Entry, error) {
	loc := loadLocation(timezone)
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	start, end = start.In(loc), end.In(loc)
	if !end.After(start) {
		return nil, fmt.Errorf("%q: %w", event.Subject, ErrEmptyEvent)
	}

	var factor *float64
	if breakFactor != 0 {
		f := breakFactor
		factor = &f
	}

	lastMinute := model.NewClock(23, 59)
	var entries []Entry
	for cur := start; ; {
		next := timecalc.StartOfDay(cur).AddDate(0, 0, 1)
		from, to := model.ClockOf(cur), lastMinute
		last := !end.After(next)
		if last && end.Before(next) {
			to = model.ClockOf(end)
		}
		if from.Before(to) {
			stop := to
			part := model.Part{Start: from, Stop: &stop}
			if factor != nil {
				f := *factor
				part.Factor = &f
			}
			entries = append(entries, Entry{Date: model.DateOf(cur), Part: part, Subject: event.Subject})
		}
		if last {
			return entries, nil
		}
		cur = next
	}
}

// containsPart reports whether the day at date already holds an equal part.
func containsPart(st *store.Store, date model.Date, part model.Part) bool {
	day, ok := st.DayAt(date)
	if !ok {
		return false
	}
	for _, p := range day.Parts {
		if p.Equal(part) {
			return true
		}
	}
	return false
}

// SyncEvents adds the parts of events to st, reporting each to out. Parts
// already present are skipped, so syncing the same range twice is a no-op.
// With DryRun set st is never modified.
func SyncEvents(st *store.Store, events []CalendarEvent, opts SyncOptions, out io.Writer, logger zerolog.Logger) (SyncResult, error) {
	var result SyncResult
	if opts.BreakFactor != 0 && !model.ValidFactor(opts.BreakFactor) {
		return result, fmt.Errorf("%w: %v", ErrBreakFactor, opts.BreakFactor)
	}

	for _, event := range events {
		if shouldSkip(event) {
			logger.Debug().Str("id", event.ID).Str("subject", event.Subject).Msg("event filtered")
			result.Filtered++
			continue
		}

		entries, err := MapEvent(event, opts.Timezone, opts.BreakFactor)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		for _, e := range entries {
			label := fmt.Sprintf("%s %s %s (%s)", e.Date, e.Part.AsLegacy(), e.Subject,
				timecalc.FormatDuration(e.Part.Duration()))
			if containsPart(st, e.Date, e.Part) {
				fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", label)
				result.Skipped++
				continue
			}
			if !opts.DryRun {
				if err := st.AddPart(e.Date, e.Part); err != nil {
					fmt.Fprintf(out, "  ! Error saving %q: %v\n", e.Subject, err)
					result.Errors++
					continue
				}
			}
			fmt.Fprintf(out, "  ✓ Imported: %s\n", label)
			result.Imported++
		}
	}

	return result, nil
}
