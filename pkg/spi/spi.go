// Package spi provides the service-provider interface between the parser
// and dialect hooks, so dialect packages can extend parsing without a
// circular dependency on the parser.
package spi

import (
	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// ParserOps exposes parser operations to dialect infix hooks.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token

	// Consumption
	Match(t token.TokenType) bool
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool

	// Sub-parsers
	ParseExpression(minPrecedence int) (ast.Expr, error)

	// Position returns the current token's position.
	Position() token.Position
}

// InfixHandler parses a dialect-specific infix operator. It is invoked
// after standard infix parsing finds no production for the operator
// token, with the operator already consumed and the left operand parsed.
// The hook may consume further tokens (one-token lookahead for multi-
// token operators) and returns the finished expression.
type InfixHandler func(p ParserOps, op token.Token, left ast.Expr) (ast.Expr, error)

// Operator precedence levels for expression parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %, DIV
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // subscript
)
