// Package legacy reads and writes the line-oriented timesheet format:
//
//	2016-04-25   08:00-12:00  13:00-17:00-0.5   # comment
//
// Each line holds a date followed by one or more parts. A part is a start
// time, optionally followed by a stop time and a break factor.
package legacy

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/reti/internal/model"
)

// CommentPrefix starts a comment, either as a whole line or after the parts.
const CommentPrefix = "#"

// MaxLineLength bounds one input line in bytes.
const MaxLineLength = 64 * 1024

// ErrLineTooLong is reported for a line over MaxLineLength.
var ErrLineTooLong = errors.New("line too long")

// Result is the outcome of a best-effort multi-line parse.
type Result struct {
	Days []model.Day
	// Origins[i] is the input line Days[i] was read from.
	Origins  []Origin
	Failures []*LineError
}

// Origin locates a parsed line in its input.
type Origin struct {
	Line int // 1-based
	Text string
}

// ParseDate accepts exactly YYYY-MM-DD naming a real calendar day.
func ParseDate(s string) (model.Date, error) {
	if len(s) != len(model.DateLayout) || s[4] != '-' || s[7] != '-' {
		return model.Date{}, parseErr(s, "date must be YYYY-MM-DD")
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return model.Date{}, parseErr(s, "date must be YYYY-MM-DD")
		}
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return model.Date{}, parseErr(s, "no such date")
	}
	date := model.DateOf(t)
	if !date.Valid() {
		return model.Date{}, parseErr(s, "no such date")
	}
	return date, nil
}

// ParseTime accepts HH:MM or HHMM with hour 00-23 and minute 00-59.
func ParseTime(s string) (model.Clock, error) {
	var hh, mm string
	switch {
	case len(s) == 5 && s[2] == ':':
		hh, mm = s[:2], s[3:]
	case len(s) == 4:
		hh, mm = s[:2], s[2:]
	default:
		return model.Clock{}, parseErr(s, "time must be HH:MM or HHMM")
	}
	h, okH := digits(hh)
	m, okM := digits(mm)
	if !okH || !okM {
		return model.Clock{}, parseErr(s, "time must be HH:MM or HHMM")
	}
	c := model.NewClock(h, m)
	if !c.Valid() {
		return model.Clock{}, parseErr(s, "time out of range")
	}
	return c, nil
}

// ParseFactor accepts a decimal number in (0,1].
func ParseFactor(s string) (float64, error) {
	if !decimal(s) {
		return 0, parseErr(s, "factor must be a decimal number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, parseErr(s, "factor must be a decimal number")
	}
	if !model.ValidFactor(f) {
		return 0, parseErr(s, "factor must be in (0,1]")
	}
	return f, nil
}

// ParsePart parses "start", "start-stop" or "start-stop-factor".
func ParsePart(s string) (model.Part, error) {
	fields := strings.Split(s, "-")
	if len(fields) > 3 {
		return model.Part{}, parseErr(s, "part must be start[-stop[-factor]]")
	}

	var part model.Part
	start, err := ParseTime(fields[0])
	if err != nil {
		return model.Part{}, err
	}
	part.Start = start

	if len(fields) >= 2 {
		stop, err := ParseTime(fields[1])
		if err != nil {
			return model.Part{}, err
		}
		if stop.Before(start) {
			return model.Part{}, parseErr(s, "stop is before start")
		}
		part.Stop = &stop
	}

	if len(fields) == 3 {
		f, err := ParseFactor(fields[2])
		if err != nil {
			return model.Part{}, err
		}
		part.Factor = &f
	}
	return part, nil
}

// ParseLine parses one timesheet line into a Day. Any malformed token fails
// the whole line.
func ParseLine(s string) (model.Day, error) {
	content, _, _ := strings.Cut(s, CommentPrefix)
	tokens := strings.Fields(content)
	if len(tokens) == 0 {
		return model.Day{}, parseErr(s, "empty line")
	}

	date, err := ParseDate(tokens[0])
	if err != nil {
		return model.Day{}, err
	}
	if len(tokens) == 1 {
		return model.Day{}, parseErr(s, "no parts after date")
	}

	day := model.Day{Date: date, Parts: make([]model.Part, 0, len(tokens)-1)}
	for _, tok := range tokens[1:] {
		part, err := ParsePart(tok)
		if err != nil {
			return model.Day{}, err
		}
		day.Parts = append(day.Parts, part)
	}
	return day, nil
}

// Skippable reports whether a line carries no data: blank or a comment.
func Skippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix)
}

// ParseText parses every line of r. Malformed or oversized lines are
// collected as failures and do not stop the pass; the returned error is only
// set when r itself fails.
func ParseText(r io.Reader) (Result, error) {
	var res Result
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, tooLong, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return res, fmt.Errorf("reading legacy input: %w", err)
		}
		if errors.Is(err, io.EOF) && line == "" && !tooLong {
			return res, nil
		}

		switch {
		case tooLong:
			res.Failures = append(res.Failures, &LineError{
				Line: n,
				Text: clip(line),
				Err:  fmt.Errorf("%w: over %d bytes", ErrLineTooLong, MaxLineLength),
			})
		case Skippable(line):
		default:
			if day, perr := ParseLine(line); perr != nil {
				res.Failures = append(res.Failures, &LineError{Line: n, Text: line, Err: perr})
			} else {
				res.Days = append(res.Days, day)
				res.Origins = append(res.Origins, Origin{Line: n, Text: line})
			}
		}

		if errors.Is(err, io.EOF) {
			return res, nil
		}
	}
}

// readLine returns the next line without its terminator. Bytes past
// MaxLineLength are consumed and discarded.
func readLine(r *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > MaxLineLength {
				tooLong = true
				buf = buf[:MaxLineLength]
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return strings.TrimRight(string(buf), "\r\n"), tooLong, err
	}
}

func clip(line string) string {
	const keep = 40
	if len(line) <= keep {
		return line
	}
	return line[:keep] + "..."
}

// Format renders days one per line in the legacy format.
func Format(days []model.Day) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(d.AsLegacy())
		b.WriteByte('\n')
	}
	return b.String()
}

func digits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, len(s) > 0
}

// decimal reports whether s is digits with at most one decimal point.
func decimal(s string) bool {
	seenDigit, seenPoint := false, false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenPoint:
			seenPoint = true
		default:
			return false
		}
	}
	return seenDigit
}
