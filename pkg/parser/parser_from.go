package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// parseFromClause parses the first table reference and any joins that
// follow. A comma between references is recorded as a comma join.
func (p *Parser) parseFromClause() *ast.FromClause {
	p.nextToken() // consume FROM
	source := p.parseTableRef()
	if source == nil {
		return nil
	}
	clause := &ast.FromClause{Source: source}

	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		if len(p.errors) > 0 {
			return nil
		}
		clause.Joins = append(clause.Joins, join)
	}
	if len(p.errors) > 0 {
		return nil
	}
	return clause
}

// parseJoin parses one join clause, returning nil when the current
// token does not start one.
func (p *Parser) parseJoin() *ast.Join {
	join := &ast.Join{}
	switch p.token.Type {
	case token.COMMA:
		p.nextToken()
		join.Type = ast.JoinComma
		join.Right = p.parseTableRef()
		if join.Right == nil {
			return nil
		}
		return join
	case token.CROSS:
		p.nextToken()
		if !p.expect(token.JOIN) {
			return nil
		}
		join.Type = ast.JoinCross
		join.Right = p.parseTableRef()
		if join.Right == nil {
			return nil
		}
		return join
	case token.JOIN, token.INNER:
		if p.check(token.INNER) {
			p.nextToken()
		}
		if !p.expect(token.JOIN) {
			return nil
		}
		join.Type = ast.JoinInner
	case token.LEFT:
		p.nextToken()
		p.match(token.OUTER)
		if !p.expect(token.JOIN) {
			return nil
		}
		join.Type = ast.JoinLeft
	case token.RIGHT:
		p.nextToken()
		p.match(token.OUTER)
		if !p.expect(token.JOIN) {
			return nil
		}
		join.Type = ast.JoinRight
	case token.FULL:
		p.nextToken()
		p.match(token.OUTER)
		if !p.expect(token.JOIN) {
			return nil
		}
		join.Type = ast.JoinFull
	default:
		return nil
	}

	join.Right = p.parseTableRef()
	if join.Right == nil {
		return nil
	}

	switch {
	case p.match(token.ON):
		join.Condition = p.parseExpression()
		if join.Condition == nil {
			return nil
		}
	case p.match(token.USING):
		if !p.expect(token.LPAREN) {
			return nil
		}
		for {
			name, ok := p.identLiteral("a column name")
			if !ok {
				return nil
			}
			join.Using = append(join.Using, name)
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}
	return join
}

// parseTableRef parses either a named table or a parenthesized derived
// table.
func (p *Parser) parseTableRef() ast.TableRef {
	if p.check(token.LPAREN) {
		p.nextToken()
		sel := p.parseSelectStmt()
		if sel == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		derived := &ast.DerivedTable{Select: sel}
		derived.Alias = p.parseOptionalAlias()
		return derived
	}
	name := p.parseTableName(true)
	if name == nil {
		return nil
	}
	return name
}

// parseTableName parses a possibly schema-qualified table name. When
// allowExtras is true it also accepts a version clause and an alias;
// DML targets pass false and take the bare name only.
func (p *Parser) parseTableName(allowExtras bool) *ast.TableName {
	first, ok := p.identLiteral("a table name")
	if !ok {
		return nil
	}
	name := &ast.TableName{Name: first}
	if p.match(token.DOT) {
		second, ok := p.identLiteral("a table name")
		if !ok {
			return nil
		}
		name.Schema = first
		name.Name = second
	}
	if !allowExtras {
		return name
	}

	// FOR SYSTEM_TIME AS OF <expr> pins the reference to a version.
	if p.check(token.FOR) {
		if !p.dialect.TimeTravel {
			p.addError(fmt.Sprintf(errUnsupportedFeature, "FOR SYSTEM_TIME", p.dialect.Name))
			return nil
		}
		p.nextToken()
		if !p.check(token.IDENT) || !strings.EqualFold(p.token.Literal, "SYSTEM_TIME") {
			p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "SYSTEM_TIME"))
			return nil
		}
		p.nextToken()
		if !p.expect(token.AS) {
			return nil
		}
		if !p.check(token.IDENT) || !strings.EqualFold(p.token.Literal, "OF") {
			p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "OF"))
			return nil
		}
		p.nextToken()
		name.AsOf = p.parseExpression()
		if name.AsOf == nil {
			return nil
		}
	}

	name.Alias = p.parseOptionalAlias()
	return name
}
