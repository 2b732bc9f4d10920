package editor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/reti/internal/editor"
	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

var today = model.NewDate(2016, time.April, 27)

// script writes an executable shell script acting as the editor.
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	if _, err := st.ImportLegacy(strings.NewReader("2016-04-25 08:00-12:00\n2016-04-26 08:00-12:00\n")); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestNewRejectsEmptyCommand(t *testing.T) {
	if _, err := editor.New("  ", zerolog.Nop()); !errors.Is(err, editor.ErrEditorFailed) {
		t.Errorf("err = %v, want ErrEditorFailed", err)
	}
}

func TestTemplate(t *testing.T) {
	st := seeded(t)

	got := editor.Template(st, []model.Date{
		model.NewDate(2016, time.April, 26),
		model.NewDate(2016, time.April, 1),
		model.NewDate(2016, time.April, 25),
	}, today)
	if got != "2016-04-26 08:00-12:00\n2016-04-25 08:00-12:00\n" {
		t.Errorf("Template(dates) = %q", got)
	}

	got = editor.Template(st, nil, model.NewDate(2016, time.April, 25))
	if got != "2016-04-25 08:00-12:00\n" {
		t.Errorf("Template(today present) = %q", got)
	}

	got = editor.Template(st, nil, today)
	if !strings.HasPrefix(got, editor.Header) || !strings.Contains(got, "2016-04-27") {
		t.Errorf("Template(today missing) = %q", got)
	}
}

func TestEditUnchanged(t *testing.T) {
	ed, err := editor.New("true", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	got, err := ed.Edit(context.Background(), "2016-04-25 08:00\n")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got != "2016-04-25 08:00\n" {
		t.Errorf("Edit = %q", got)
	}
}

func TestMergeAbortsOnEditorFailure(t *testing.T) {
	st := seeded(t)
	before := st.Snapshot()

	ed, err := editor.New(script(t, `echo "2016-04-25 01:00-02:00" > "$1"; exit 3`), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_, err = ed.Merge(context.Background(), st, []model.Date{model.NewDate(2016, time.April, 25)}, today)
	if !errors.Is(err, editor.ErrEditorFailed) {
		t.Fatalf("Merge err = %v, want ErrEditorFailed", err)
	}
	after := st.Snapshot()
	if len(after.Days) != len(before.Days) {
		t.Fatalf("store changed after failed edit")
	}
	got, _ := st.AsLegacy(model.NewDate(2016, time.April, 25))
	if got != "2016-04-25 08:00-12:00" {
		t.Errorf("day changed after failed edit: %q", got)
	}
}

func TestMergeAppliesEdits(t *testing.T) {
	st := seeded(t)
	body := `sed -i 's/08:00-12:00/07:30-12:00 13:00-13:30-0.5/' "$1"
echo "2016-04-28 10:00-11:00" >> "$1"
echo "2016-04-29 bogus" >> "$1"`
	ed, err := editor.New(script(t, body), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	report, err := ed.Merge(context.Background(), st, []model.Date{model.NewDate(2016, time.April, 25)}, today)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if report.Imported != 2 || report.Failed() != 1 {
		t.Errorf("report imported=%d failed=%d", report.Imported, report.Failed())
	}
	got, _ := st.AsLegacy(model.NewDate(2016, time.April, 25))
	if got != "2016-04-25 07:30-12:00 13:00-13:30-0.5" {
		t.Errorf("edited day = %q", got)
	}
	if _, ok := st.AsLegacy(model.NewDate(2016, time.April, 28)); !ok {
		t.Error("appended day missing")
	}
	got, _ = st.AsLegacy(model.NewDate(2016, time.April, 26))
	if got != "2016-04-26 08:00-12:00" {
		t.Errorf("day outside the edit changed: %q", got)
	}
}

func TestMergeIgnoresUntouchedTemplate(t *testing.T) {
	st := store.New()
	ed, err := editor.New("true", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	report, err := ed.Merge(context.Background(), st, nil, today)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if report.Imported != 0 || report.Failed() != 0 || st.Len() != 0 {
		t.Errorf("untouched template produced %+v, %d days", report, st.Len())
	}
}
