package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Tiliavir/reti/internal/model"
)

func clock(h, m int) *model.Clock {
	c := model.NewClock(h, m)
	return &c
}

func factor(f float64) *float64 {
	return &f
}

func TestDayDurations(t *testing.T) {
	day := model.NewDay(model.NewDate(2016, time.April, 25),
		model.Part{Start: model.NewClock(8, 0), Stop: clock(12, 0)},
		model.Part{Start: model.NewClock(13, 0), Stop: clock(17, 0), Factor: factor(0.5)},
		model.Part{Start: model.NewClock(18, 0)},
	)

	if got := day.Worked(); got != 4*time.Hour {
		t.Errorf("Worked = %v, want 4h", got)
	}
	if got := day.Breaks(); got != 2*time.Hour {
		t.Errorf("Breaks = %v, want 2h", got)
	}
	if got := day.Total(); got != 8*time.Hour {
		t.Errorf("Total = %v, want 8h", got)
	}
	if got := day.Paid(); got != 6*time.Hour {
		t.Errorf("Paid = %v, want 6h", got)
	}
	if got := day.OpenPart(); got != 2 {
		t.Errorf("OpenPart = %d, want 2", got)
	}
}

func TestWorkedPlusBreaksBoundedByTotal(t *testing.T) {
	tests := []struct {
		name  string
		f     float64
		equal bool
	}{
		{"half", 0.5, false},
		{"quarter", 0.25, false},
		{"full", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := model.NewDay(model.NewDate(2020, time.March, 2),
				model.Part{Start: model.NewClock(8, 0), Stop: clock(11, 30)},
				model.Part{Start: model.NewClock(12, 0), Stop: clock(12, 45), Factor: factor(tt.f)},
			)
			sum := day.Worked() + day.Breaks()
			if sum > day.Total() {
				t.Fatalf("worked+breaks = %v exceeds total %v", sum, day.Total())
			}
			if (sum == day.Total()) != tt.equal {
				t.Errorf("worked+breaks == total is %v, want %v", sum == day.Total(), tt.equal)
			}
		})
	}
}

func TestPartValidate(t *testing.T) {
	tests := []struct {
		name    string
		part    model.Part
		wantErr bool
	}{
		{"open", model.Part{Start: model.NewClock(8, 0)}, false},
		{"closed", model.Part{Start: model.NewClock(8, 0), Stop: clock(8, 0)}, false},
		{"reversed", model.Part{Start: model.NewClock(9, 0), Stop: clock(8, 0)}, true},
		{"bad start", model.Part{Start: model.NewClock(24, 0)}, true},
		{"zero factor", model.Part{Start: model.NewClock(8, 0), Stop: clock(9, 0), Factor: factor(0)}, true},
		{"factor above one", model.Part{Start: model.NewClock(8, 0), Stop: clock(9, 0), Factor: factor(1.5)}, true},
		{"open break", model.Part{Start: model.NewClock(13, 0), Factor: factor(0.5)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.part.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayAsLegacy(t *testing.T) {
	day := model.NewDay(model.NewDate(2016, time.April, 25),
		model.Part{Start: model.NewClock(8, 0), Stop: clock(12, 0)},
		model.Part{Start: model.NewClock(13, 0), Stop: clock(17, 0), Factor: factor(0.5)},
		model.Part{Start: model.NewClock(18, 5)},
	)
	want := "2016-04-25 08:00-12:00 13:00-17:00-0.5 18:05"
	if got := day.AsLegacy(); got != want {
		t.Errorf("AsLegacy = %q, want %q", got, want)
	}
}

func TestPartJSON(t *testing.T) {
	p := model.Part{Start: model.NewClock(13, 0), Stop: clock(17, 0), Factor: factor(0.5)}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"start":"13:00","stop":"17:00","factor":0.5}` {
		t.Errorf("Marshal = %s", data)
	}

	var open model.Part
	if err := json.Unmarshal([]byte(`{"start":"08:15","stop":null,"factor":null}`), &open); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if open.Start != model.NewClock(8, 15) || open.Stop != nil || open.Factor != nil {
		t.Errorf("Unmarshal = %+v", open)
	}

	if err := json.Unmarshal([]byte(`{"start":"8:15"}`), &open); err == nil {
		t.Error("expected error for unpadded clock")
	}
}

func TestDateISOWeek(t *testing.T) {
	tests := []struct {
		date    model.Date
		year    int
		week    int
		weekday time.Weekday
	}{
		{model.NewDate(2021, time.January, 1), 2020, 53, time.Friday},
		{model.NewDate(2021, time.January, 4), 2021, 1, time.Monday},
		{model.NewDate(2019, time.December, 30), 2020, 1, time.Monday},
		{model.NewDate(2016, time.April, 25), 2016, 17, time.Monday},
	}
	for _, tt := range tests {
		y, w := tt.date.ISOWeek()
		if y != tt.year || w != tt.week {
			t.Errorf("%s ISOWeek = %d-W%02d, want %d-W%02d", tt.date, y, w, tt.year, tt.week)
		}
		if got := tt.date.Weekday(); got != tt.weekday {
			t.Errorf("%s Weekday = %v, want %v", tt.date, got, tt.weekday)
		}
	}
}

func TestDateValid(t *testing.T) {
	if !model.NewDate(2020, time.February, 29).Valid() {
		t.Error("2020-02-29 should be valid")
	}
	if model.NewDate(2021, time.February, 29).Valid() {
		t.Error("2021-02-29 should be invalid")
	}
	if model.NewDate(2021, time.April, 31).Valid() {
		t.Error("2021-04-31 should be invalid")
	}
}

func TestValue(t *testing.T) {
	if got := model.Value(90*time.Minute, 40); got != 60 {
		t.Errorf("Value = %v, want 60", got)
	}
}
