package rules

import "fmt"

// ParseError is a positioned lexing or grammar error.
// Line and Col are 1-based; zero values mean the position is unknown.
//
// Parse errors are collected, never thrown: malformed input degrades to an
// empty or partial rule set and the errors are surfaced through
// [Engine.ParseErrors] or [Check].
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"column,omitempty"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Message)
	}
	return e.Message
}

func errAt(line, col int, format string, args ...any) ParseError {
	return ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Col:     col,
	}
}
