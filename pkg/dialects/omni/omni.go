// Package omni registers the permissive union dialect. It enables every
// tokenizer and grammar capability and carries all operator extensions,
// so any statement the narrower dialects accept parses here too. The
// interval unit stays optional to keep the union permissive.
package omni

import (
	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Name is the dialect used when callers want every extension available.
const Name = "omni"

var (
	tokDiv     = token.Register("DIV")
	tokMatch   = token.Register("MATCH")
	tokAgainst = token.Register("AGAINST")
	tokAtArrow = token.Register("@>")
	tokOverlap = token.Register("&&")
)

// Omni is the union dialect with every capability enabled.
var Omni = dialect.New(Name).
	Flags(dialect.Config{
		BackslashEscapes:   true,
		NumericUnderscores: true,
		SignedNumbers:      true,
		WildcardExcept:     true,
		SubscriptIndexing:  true,
		AggregateFilter:    true,
		MatchAgainst:       true,
		TimeTravel:         true,
	}).
	AddKeyword("div", tokDiv).
	AddKeyword("match", tokMatch).
	AddKeyword("against", tokAgainst).
	AddInfixHandler(tokDiv, spi.PrecedenceMultiply, integerDivide).
	AddOperator("@>", tokAtArrow, spi.PrecedenceComparison).
	AddOperator("&&", tokOverlap, spi.PrecedenceComparison).
	AddInfixHandler(tokAtArrow, spi.PrecedenceComparison, postgres.ArrayContains).
	AddInfixHandler(tokOverlap, spi.PrecedenceComparison, postgres.ArrayOverlap).
	Build()

func init() {
	dialect.Register(Omni)
}

func integerDivide(p spi.ParserOps, _ token.Token, left ast.Expr) (ast.Expr, error) {
	right, err := p.ParseExpression(spi.PrecedenceMultiply)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: ast.OpIntegerDivide, Right: right}, nil
}
