package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// LexError is a malformed-token error with the offending position.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError is a grammar violation with position and an
// expected-vs-found description.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages.
const (
	errUnexpectedToken    = "unexpected token %s, expected %s"
	errUnterminatedString = "unterminated string literal"
	errUnterminatedQuoted = "unterminated quoted identifier"
	errInvalidEscape      = "invalid escape sequence \\%c"
	errUnsupportedFeature = "%s is not supported in %s dialect"
	errIntervalNeedsUnit  = "interval literal requires a unit qualifier in %s dialect"
)
