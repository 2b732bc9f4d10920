// Package editor runs the user's editor on legacy timesheet text and hands
// the result back for merging.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

// ErrEditorFailed is returned when the editor cannot run or exits non-zero.
var ErrEditorFailed = errors.New("editor: edit aborted")

// Header explains the format at the top of a fresh edit buffer.
const Header = `# Lines starting with '#' will be ignored
# Default date is today!
# Date         Parts w/o and w/ factor (0.5)  Comment
# 2016-04-25   08:00-12:00  13:00-17:00-0.5   # comment
`

// Editor runs an external command on a temporary file.
type Editor struct {
	command []string
	logger  zerolog.Logger
}

// New returns an Editor for command, e.g. "vim" or "code --wait".
func New(command string, logger zerolog.Logger) (*Editor, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no editor configured", ErrEditorFailed)
	}
	return &Editor{
		command: fields,
		logger:  logger.With().Str("component", "editor").Logger(),
	}, nil
}

// Edit writes initial to a temporary file, waits for the editor to exit and
// returns the file content.
func (e *Editor) Edit(ctx context.Context, initial string) (string, error) {
	f, err := os.CreateTemp("", "reti-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	args := append(e.command[1:len(e.command):len(e.command)], path)
	cmd := exec.CommandContext(ctx, e.command[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	e.logger.Debug().Strs("command", e.command).Str("file", path).Msg("starting editor")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEditorFailed, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading edited file: %v", ErrEditorFailed, err)
	}
	return string(data), nil
}

// Template builds the initial buffer: the legacy lines of the requested
// dates that exist, else today's day, else the header and today's date.
func Template(st *store.Store, dates []model.Date, today model.Date) string {
	var lines []string
	for _, d := range dates {
		if line, ok := st.AsLegacy(d); ok {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n") + "\n"
	}
	if line, ok := st.AsLegacy(today); ok {
		return line + "\n"
	}
	return Header + today.String() + " \n"
}

// Merge runs the editor on the template for dates and force-adds every
// valid line of the result. Nothing is merged when the editor fails.
func (e *Editor) Merge(ctx context.Context, st *store.Store, dates []model.Date, today model.Date) (store.ImportReport, error) {
	edited, err := e.Edit(ctx, Template(st, dates, today))
	if err != nil {
		return store.ImportReport{}, err
	}
	report := st.MergeLegacy(dropPlaceholders(edited))
	e.logger.Debug().Int("imported", report.Imported).Int("failed", report.Failed()).Msg("merged edit")
	return report, nil
}

// dropPlaceholders removes lines holding nothing but a date, as left behind
// by an untouched template.
func dropPlaceholders(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) == 1 {
			if _, err := legacy.ParseDate(fields[0]); err == nil {
				continue
			}
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}
