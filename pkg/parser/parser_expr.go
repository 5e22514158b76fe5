package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// binaryOps maps operator tokens to their AST operator.
var binaryOps = map[token.TokenType]ast.BinaryOp{
	token.PLUS:    ast.OpAdd,
	token.MINUS:   ast.OpSubtract,
	token.STAR:    ast.OpMultiply,
	token.SLASH:   ast.OpDivide,
	token.PERCENT: ast.OpModulo,
	token.DPIPE:   ast.OpConcat,
	token.EQ:      ast.OpEq,
	token.NE:      ast.OpNotEq,
	token.LT:      ast.OpLt,
	token.GT:      ast.OpGt,
	token.LE:      ast.OpLtEq,
	token.GE:      ast.OpGtEq,
	token.AND:     ast.OpAnd,
	token.OR:      ast.OpOr,
}

// parseExpressionPrec climbs operator precedence: it parses a prefix
// operand, then folds in infix operators as long as they bind tighter
// than minPrecedence.
func (p *Parser) parseExpressionPrec(minPrecedence int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence(p.token.Type)
		if prec <= minPrecedence {
			return left
		}
		left = p.parseInfix(left, prec)
		if left == nil {
			return nil
		}
	}
}

// infixPrecedence returns the binding power of the current token as an
// infix operator, or PrecedenceNone when it cannot continue an
// expression.
func (p *Parser) infixPrecedence(t token.TokenType) int {
	switch t {
	case token.NOT:
		// NOT is infix only as NOT IN, NOT BETWEEN, NOT LIKE.
		switch p.peek.Type {
		case token.IN, token.BETWEEN, token.LIKE:
			return spi.PrecedenceComparison
		}
		return spi.PrecedenceNone
	case token.LBRACKET:
		if p.dialect.SubscriptIndexing {
			return spi.PrecedencePostfix
		}
		return spi.PrecedenceNone
	}
	return p.dialect.Precedence(t)
}

// parseInfix builds the expression for one infix operator applied to
// left. prec is that operator's own precedence, which makes the plain
// binary operators left associative.
func (p *Parser) parseInfix(left ast.Expr, prec int) ast.Expr {
	op := p.token

	// Dialect extensions take priority over the builtin forms.
	if h := p.dialect.InfixHandler(op.Type); h != nil {
		p.nextToken()
		expr, err := h(p, op, left)
		if err != nil {
			p.errors = append(p.errors, err)
			return nil
		}
		return expr
	}

	switch op.Type {
	case token.IS:
		p.nextToken()
		return p.parseIsSuffix(left)
	case token.IN:
		p.nextToken()
		return p.parseInSuffix(left, false)
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenSuffix(left, false)
	case token.LIKE:
		p.nextToken()
		return p.parseLikeSuffix(left, false)
	case token.NOT:
		p.nextToken()
		switch {
		case p.match(token.IN):
			return p.parseInSuffix(left, true)
		case p.match(token.BETWEEN):
			return p.parseBetweenSuffix(left, true)
		case p.match(token.LIKE):
			return p.parseLikeSuffix(left, true)
		}
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "IN, BETWEEN or LIKE"))
		return nil
	case token.LBRACKET:
		p.nextToken()
		index := p.parseExpression()
		if index == nil {
			return nil
		}
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return &ast.IndexExpr{Expr: left, Index: index}
	}

	binOp, ok := binaryOps[op.Type]
	if !ok {
		p.addError(fmt.Sprintf(errUnexpectedToken, op.Type, "an operator"))
		return nil
	}
	p.nextToken()
	right := p.parseExpressionPrec(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{Left: left, Op: binOp, Right: right}
}

// parseIsSuffix handles IS [NOT] NULL and IS [NOT] TRUE/FALSE.
func (p *Parser) parseIsSuffix(left ast.Expr) ast.Expr {
	not := p.match(token.NOT)
	switch {
	case p.match(token.NULL):
		return &ast.IsNullExpr{Expr: left, Not: not}
	case p.match(token.TRUE):
		return &ast.IsBoolExpr{Expr: left, Not: not, Value: true}
	case p.match(token.FALSE):
		return &ast.IsBoolExpr{Expr: left, Not: not, Value: false}
	}
	p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "NULL, TRUE or FALSE"))
	return nil
}

// parseInSuffix handles IN (values) and IN (subquery).
func (p *Parser) parseInSuffix(left ast.Expr, not bool) ast.Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	in := &ast.InExpr{Expr: left, Not: not}
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseSelectStmt()
		if in.Query == nil {
			return nil
		}
	} else {
		for {
			value := p.parseExpression()
			if value == nil {
				return nil
			}
			in.Values = append(in.Values, value)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return in
}

// parseBetweenSuffix handles BETWEEN low AND high. The bounds bind at
// comparison precedence so the AND separator is not folded into them.
func (p *Parser) parseBetweenSuffix(left ast.Expr, not bool) ast.Expr {
	low := p.parseExpressionPrec(spi.PrecedenceComparison)
	if low == nil {
		return nil
	}
	if !p.expect(token.AND) {
		return nil
	}
	high := p.parseExpressionPrec(spi.PrecedenceComparison)
	if high == nil {
		return nil
	}
	return &ast.BetweenExpr{Expr: left, Not: not, Low: low, High: high}
}

func (p *Parser) parseLikeSuffix(left ast.Expr, not bool) ast.Expr {
	pattern := p.parseExpressionPrec(spi.PrecedenceComparison)
	if pattern == nil {
		return nil
	}
	return &ast.LikeExpr{Expr: left, Not: not, Pattern: pattern}
}
