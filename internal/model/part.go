package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Part is one contiguous span of a day. A nil Stop marks a span that is
// still open. A non-nil Factor marks a break credited at that fraction.
type Part struct {
	Start  Clock    `json:"start"`
	Stop   *Clock   `json:"stop"`
	Factor *float64 `json:"factor"`
}

var (
	errStopBeforeStart = errors.New("stop is before start")
	errFactorRange     = errors.New("factor must be in (0,1]")
	errOpenBreak       = errors.New("a break needs a stop")
)

// Validate checks the structural invariants of p.
func (p Part) Validate() error {
	if !p.Start.Valid() {
		return fmt.Errorf("invalid start %s", p.Start)
	}
	if p.Stop != nil {
		if !p.Stop.Valid() {
			return fmt.Errorf("invalid stop %s", *p.Stop)
		}
		if p.Stop.Before(p.Start) {
			return fmt.Errorf("%s-%s: %w", p.Start, *p.Stop, errStopBeforeStart)
		}
	}
	if p.Factor != nil {
		if !ValidFactor(*p.Factor) {
			return fmt.Errorf("%v: %w", *p.Factor, errFactorRange)
		}
		// The legacy line has no way to write a factor without a stop.
		if p.Stop == nil {
			return fmt.Errorf("%s: %w", p.Start, errOpenBreak)
		}
	}
	return nil
}

// ValidFactor reports whether f is a usable break factor.
func ValidFactor(f float64) bool {
	return !math.IsNaN(f) && f > 0 && f <= 1
}

// Open reports whether the part has no stop yet.
func (p Part) Open() bool {
	return p.Stop == nil
}

// Break reports whether the part is a credited break.
func (p Part) Break() bool {
	return p.Factor != nil
}

// Duration is stop-start for closed parts and zero for open ones.
func (p Part) Duration() time.Duration {
	if p.Stop == nil {
		return 0
	}
	return p.Stop.Sub(p.Start)
}

// Credited is the duration this part counts for: the full span for worked
// time, the span scaled by the factor for breaks.
func (p Part) Credited() time.Duration {
	d := p.Duration()
	if p.Factor == nil {
		return d
	}
	return time.Duration(math.Round(float64(d) * *p.Factor))
}

// Equal compares start, stop and factor by value.
func (p Part) Equal(o Part) bool {
	if p.Start != o.Start {
		return false
	}
	if (p.Stop == nil) != (o.Stop == nil) || (p.Stop != nil && *p.Stop != *o.Stop) {
		return false
	}
	if (p.Factor == nil) != (o.Factor == nil) || (p.Factor != nil && *p.Factor != *o.Factor) {
		return false
	}
	return true
}

// Clone returns a deep copy of p.
func (p Part) Clone() Part {
	c := Part{Start: p.Start}
	if p.Stop != nil {
		stop := *p.Stop
		c.Stop = &stop
	}
	if p.Factor != nil {
		f := *p.Factor
		c.Factor = &f
	}
	return c
}

// AsLegacy renders p as a legacy part token: "08:00", "08:00-12:00" or
// "13:00-17:00-0.5".
func (p Part) AsLegacy() string {
	s := p.Start.String()
	if p.Stop == nil {
		return s
	}
	s += "-" + p.Stop.String()
	if p.Factor != nil {
		s += "-" + FormatFactor(*p.Factor)
	}
	return s
}

// FormatFactor prints f with the fewest digits that parse back to f.
func FormatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
