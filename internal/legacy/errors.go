package legacy

import "fmt"

// ParseError describes a token that does not match the legacy grammar.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Token, e.Reason)
}

// LineError ties a parse failure to its position in a multi-line input.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func parseErr(token, format string, args ...any) *ParseError {
	return &ParseError{Token: token, Reason: fmt.Sprintf(format, args...)}
}
