package cmd

import (
	"testing"
	"time"
)

func TestSyncRange(t *testing.T) {
	at := time.Date(2026, time.February, 27, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		name           string
		date, from, to string
		wantFrom       string
		wantTo         string
		wantErr        bool
	}{
		{name: "default today", wantFrom: "2026-02-27 00:00:00", wantTo: "2026-02-27 23:59:59"},
		{name: "single date", date: "2026-02-20", wantFrom: "2026-02-20 00:00:00", wantTo: "2026-02-20 23:59:59"},
		{name: "from until today", from: "2026-02-23", wantFrom: "2026-02-23 00:00:00", wantTo: "2026-02-27 23:59:59"},
		{name: "from to", from: "2026-02-01", to: "2026-02-03", wantFrom: "2026-02-01 00:00:00", wantTo: "2026-02-03 23:59:59"},
		{name: "to without from", to: "2026-02-03", wantErr: true},
		{name: "to before from", from: "2026-02-03", to: "2026-02-01", wantErr: true},
		{name: "bad date", date: "27.02.2026", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outlookSyncDate, outlookSyncFrom, outlookSyncTo = tt.date, tt.from, tt.to
			t.Cleanup(func() { outlookSyncDate, outlookSyncFrom, outlookSyncTo = "", "", "" })

			from, to, err := syncRange(at)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			const layout = "2006-01-02 15:04:05"
			if got := from.Format(layout); got != tt.wantFrom {
				t.Errorf("from = %s, want %s", got, tt.wantFrom)
			}
			if got := to.Format(layout); got != tt.wantTo {
				t.Errorf("to = %s, want %s", got, tt.wantTo)
			}
		})
	}
}
