// Package postgres registers the PostgreSQL dialect: subscript
// indexing, aggregate FILTER clauses, numeric underscores, and the
// array operators @> (contains) and && (overlap).
package postgres

import (
	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

var (
	tokAtArrow = token.Register("@>")
	tokOverlap = token.Register("&&")
)

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New("postgres").
	Flags(dialect.Config{
		SubscriptIndexing:  true,
		AggregateFilter:    true,
		NumericUnderscores: true,
	}).
	AddOperator("@>", tokAtArrow, spi.PrecedenceComparison).
	AddOperator("&&", tokOverlap, spi.PrecedenceComparison).
	AddInfixHandler(tokAtArrow, spi.PrecedenceComparison, ArrayContains).
	AddInfixHandler(tokOverlap, spi.PrecedenceComparison, ArrayOverlap).
	Build()

func init() {
	dialect.Register(Postgres)
}

// ArrayContains parses the right operand of @>. When the lexer's
// longest symbol match leaves an adjacent > behind, the pair was the
// three-character contains-all operator @>>.
func ArrayContains(p spi.ParserOps, op token.Token, left ast.Expr) (ast.Expr, error) {
	binOp := ast.OpArrayContains
	if p.Check(token.GT) && p.Token().Pos.Offset == op.End() {
		p.NextToken()
		binOp = ast.OpArrayContainsAll
	}
	right, err := p.ParseExpression(spi.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: binOp, Right: right}, nil
}

// ArrayOverlap parses the right operand of &&.
func ArrayOverlap(p spi.ParserOps, _ token.Token, left ast.Expr) (ast.Expr, error) {
	right, err := p.ParseExpression(spi.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: ast.OpArrayOverlap, Right: right}, nil
}
