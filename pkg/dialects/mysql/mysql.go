// Package mysql registers the MySQL dialect: backtick identifiers,
// backslash string escapes, integer division via the DIV keyword, and
// MATCH ... AGAINST full-text predicates.
package mysql

import (
	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

var (
	// DIV is a keyword operator, so it gets a dynamic token rather than
	// a symbol entry.
	tokDiv     = token.Register("DIV")
	tokMatch   = token.Register("MATCH")
	tokAgainst = token.Register("AGAINST")
)

// MySQL is the MySQL dialect.
var MySQL = dialect.New("mysql").
	Identifiers('`', '`').
	Flags(dialect.Config{
		BackslashEscapes:     true,
		MatchAgainst:         true,
		IntervalUnitRequired: true,
	}).
	AddKeyword("div", tokDiv).
	AddKeyword("match", tokMatch).
	AddKeyword("against", tokAgainst).
	AddInfixHandler(tokDiv, spi.PrecedenceMultiply, integerDivide).
	Build()

func init() {
	dialect.Register(MySQL)
}

// integerDivide parses the right operand of a DIV b at multiplicative
// precedence, keeping it left associative.
func integerDivide(p spi.ParserOps, _ token.Token, left ast.Expr) (ast.Expr, error) {
	right, err := p.ParseExpression(spi.PrecedenceMultiply)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: ast.OpIntegerDivide, Right: right}, nil
}
