package model

import (
	"fmt"
	"time"
)

// Clock is a naive time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// NewClock returns the Clock for hour:minute. It does not validate.
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Valid reports whether c lies within 00:00–23:59.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier than o.
func (c Clock) Before(o Clock) bool {
	return c.Minutes() < o.Minutes()
}

// Sub returns the duration c-o.
func (c Clock) Sub(o Clock) time.Duration {
	return time.Duration(c.Minutes()-o.Minutes()) * time.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText encodes c as "HH:MM".
func (c Clock) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid clock %d:%d", c.Hour, c.Minute)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes the strict "HH:MM" form.
func (c *Clock) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	parsed := Clock{Hour: h, Minute: m}
	if !okH || !okM || !parsed.Valid() {
		return fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	*c = parsed
	return nil
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
