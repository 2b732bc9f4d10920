package model

import (
	"strings"
	"time"
)

// Day holds every part recorded for one date, in recording order.
type Day struct {
	Date  Date
	Parts []Part
}

// NewDay returns a Day for date with the given parts.
func NewDay(date Date, parts ...Part) Day {
	return Day{Date: date, Parts: parts}
}

// Worked sums the closed parts without a factor.
func (d Day) Worked() time.Duration {
	var sum time.Duration
	for _, p := range d.Parts {
		if !p.Break() {
			sum += p.Duration()
		}
	}
	return sum
}

// Breaks sums the closed break parts, each scaled by its factor.
func (d Day) Breaks() time.Duration {
	var sum time.Duration
	for _, p := range d.Parts {
		if p.Break() {
			sum += p.Credited()
		}
	}
	return sum
}

// Total sums the raw span of every closed part.
func (d Day) Total() time.Duration {
	var sum time.Duration
	for _, p := range d.Parts {
		sum += p.Duration()
	}
	return sum
}

// Paid is worked time plus credited breaks.
func (d Day) Paid() time.Duration {
	return d.Worked() + d.Breaks()
}

// OpenPart returns the index of the last open part, or -1.
func (d Day) OpenPart() int {
	for i := len(d.Parts) - 1; i >= 0; i-- {
		if d.Parts[i].Open() {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of d.
func (d Day) Clone() Day {
	c := Day{Date: d.Date}
	if d.Parts != nil {
		c.Parts = make([]Part, len(d.Parts))
		for i, p := range d.Parts {
			c.Parts[i] = p.Clone()
		}
	}
	return c
}

// AsLegacy renders d as one line of the legacy timesheet format.
func (d Day) AsLegacy() string {
	var b strings.Builder
	b.WriteString(d.Date.String())
	for _, p := range d.Parts {
		b.WriteByte(' ')
		b.WriteString(p.AsLegacy())
	}
	return b.String()
}

// Value converts a duration into money at fee per hour.
func Value(d time.Duration, fee float32) float32 {
	return float32(d.Hours()) * fee
}
