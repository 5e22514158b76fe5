package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// parsePrefix parses unary operators and primary expressions.
func (p *Parser) parsePrefix() ast.Expr {
	switch p.token.Type {
	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionPrec(spi.PrecedenceUnary)
		if expr == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.OpNegate, Expr: expr}
	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionPrec(spi.PrecedenceUnary)
		if expr == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.OpIdentity, Expr: expr}
	case token.NOT:
		p.nextToken()
		if p.check(token.EXISTS) {
			return p.parseExistsExpr(true)
		}
		expr := p.parseExpressionPrec(spi.PrecedenceNot)
		if expr == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.OpNot, Expr: expr}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &ast.Literal{Type: ast.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit
	case token.STRING:
		lit := &ast.Literal{Type: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit
	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "TRUE"}
	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "FALSE"}
	case token.NULL:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralNull}
	case token.STAR:
		p.nextToken()
		return &ast.StarExpr{}
	case token.CASE:
		return p.parseCaseExpr()
	case token.CAST:
		return p.parseCastExpr()
	case token.EXISTS:
		return p.parseExistsExpr(false)
	case token.INTERVAL:
		return p.parseIntervalExpr()
	case token.LPAREN:
		return p.parseParenOrSubquery()
	case token.IDENT, token.QIDENT:
		return p.parseNameExpr()
	}

	// Dialect keywords lex as dynamic tokens; MATCH starts a full-text
	// predicate when the dialect supports it.
	if p.dialect.MatchAgainst && token.IsDynamic(p.token.Type) && p.token.Type.String() == "MATCH" {
		return p.parseMatchExpr()
	}

	p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "an expression"))
	return nil
}

func (p *Parser) parseCaseExpr() ast.Expr {
	p.nextToken() // consume CASE
	expr := &ast.CaseExpr{}
	if !p.check(token.WHEN) {
		expr.Operand = p.parseExpression()
		if expr.Operand == nil {
			return nil
		}
	}
	for p.match(token.WHEN) {
		cond := p.parseExpression()
		if cond == nil {
			return nil
		}
		if !p.expect(token.THEN) {
			return nil
		}
		result := p.parseExpression()
		if result == nil {
			return nil
		}
		expr.Whens = append(expr.Whens, ast.WhenClause{Condition: cond, Result: result})
	}
	if len(expr.Whens) == 0 {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "WHEN"))
		return nil
	}
	if p.match(token.ELSE) {
		expr.Else = p.parseExpression()
		if expr.Else == nil {
			return nil
		}
	}
	if !p.expect(token.END) {
		return nil
	}
	return expr
}

func (p *Parser) parseCastExpr() ast.Expr {
	p.nextToken() // consume CAST
	if !p.expect(token.LPAREN) {
		return nil
	}
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	if !p.expect(token.AS) {
		return nil
	}
	typeName, ok := p.parseTypeName()
	if !ok {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.CastExpr{Expr: inner, TypeName: typeName}
}

func (p *Parser) parseExistsExpr(not bool) ast.Expr {
	p.nextToken() // consume EXISTS
	if !p.expect(token.LPAREN) {
		return nil
	}
	sel := p.parseSelectStmt()
	if sel == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.ExistsExpr{Not: not, Select: sel}
}

// parseIntervalExpr parses INTERVAL '<value>' [unit]. Some dialects
// require the trailing unit qualifier.
func (p *Parser) parseIntervalExpr() ast.Expr {
	p.nextToken() // consume INTERVAL
	if !p.check(token.STRING) && !p.check(token.NUMBER) {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "an interval value"))
		return nil
	}
	expr := &ast.IntervalExpr{Value: p.token.Literal}
	p.nextToken()
	if p.check(token.IDENT) {
		expr.Unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
	} else if p.dialect.IntervalUnitRequired {
		p.addError(fmt.Sprintf(errIntervalNeedsUnit, p.dialect.Name))
		return nil
	}
	return expr
}

// parseParenOrSubquery disambiguates (SELECT ...) from a grouped
// expression.
func (p *Parser) parseParenOrSubquery() ast.Expr {
	p.nextToken() // consume (
	if p.check(token.SELECT) || p.check(token.WITH) {
		sel := p.parseSelectStmt()
		if sel == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.SubqueryExpr{Select: sel}
	}
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.ParenExpr{Expr: inner}
}

// parseNameExpr parses a function call, a qualified wildcard, or a
// column reference, all of which start with an identifier.
func (p *Parser) parseNameExpr() ast.Expr {
	name := p.token.Literal
	if p.check(token.IDENT) && p.checkPeek(token.LPAREN) {
		return p.parseFuncCall(name)
	}
	p.nextToken()

	if p.match(token.DOT) {
		if p.check(token.STAR) {
			p.nextToken()
			return &ast.StarExpr{Table: name}
		}
		column, ok := p.identLiteral("a column name")
		if !ok {
			return nil
		}
		return &ast.ColumnRef{Table: name, Column: column}
	}
	return &ast.ColumnRef{Column: name}
}

func (p *Parser) parseFuncCall(name string) ast.Expr {
	p.nextToken() // consume the name
	p.nextToken() // consume (
	call := &ast.FuncCall{Name: name}

	switch {
	case p.check(token.STAR) && p.checkPeek(token.RPAREN):
		p.nextToken()
		call.Star = true
	case p.check(token.RPAREN):
		// no arguments
	default:
		if p.match(token.DISTINCT) {
			call.Distinct = true
		}
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	if p.check(token.FILTER) {
		if !p.dialect.AggregateFilter {
			p.addError(fmt.Sprintf(errUnsupportedFeature, "FILTER", p.dialect.Name))
			return nil
		}
		p.nextToken()
		if !p.expect(token.LPAREN) {
			return nil
		}
		if !p.expect(token.WHERE) {
			return nil
		}
		call.Filter = p.parseExpression()
		if call.Filter == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}
	return call
}

// parseMatchExpr parses MATCH (columns) AGAINST (expr).
func (p *Parser) parseMatchExpr() ast.Expr {
	p.nextToken() // consume MATCH
	if !p.expect(token.LPAREN) {
		return nil
	}
	expr := &ast.MatchExpr{}
	for {
		col := p.parseExpression()
		if col == nil {
			return nil
		}
		expr.Columns = append(expr.Columns, col)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !token.IsDynamic(p.token.Type) || p.token.Type.String() != "AGAINST" {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "AGAINST"))
		return nil
	}
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	expr.Against = p.parseExpression()
	if expr.Against == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return expr
}
