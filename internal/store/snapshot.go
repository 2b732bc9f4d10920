package store

import (
	"fmt"

	"github.com/Tiliavir/reti/internal/legacy"
	"github.com/Tiliavir/reti/internal/model"
)

// Snapshot is the complete serialisable state of a Store.
type Snapshot struct {
	Fee  float32              `json:"fee"`
	Days map[string]DayRecord `json:"days"`
}

// DayRecord is the persisted form of one Day, keyed by its date.
type DayRecord struct {
	Parts []model.Part `json:"parts"`
}

// Snapshot captures the full state of s.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Fee: s.fee, Days: make(map[string]DayRecord, len(s.days))}
	for date, d := range s.days {
		parts := d.Clone().Parts
		if parts == nil {
			parts = []model.Part{}
		}
		snap.Days[date.String()] = DayRecord{Parts: parts}
	}
	return snap
}

// FromSnapshot rebuilds a Store. Any invalid date key or part makes the
// whole snapshot invalid; nothing is partially recovered.
func FromSnapshot(snap Snapshot) (*Store, error) {
	s := New()
	s.fee = snap.Fee
	for key, rec := range snap.Days {
		date, err := legacy.ParseDate(key)
		if err != nil {
			return nil, fmt.Errorf("%w: day key: %v", ErrFormat, err)
		}
		day := model.Day{Date: date, Parts: rec.Parts}
		if err := validateDay(day); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		s.days[date] = day.Clone()
	}
	return s, nil
}
