package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() ast.Statement {
	switch p.token.Type {
	case token.SELECT, token.WITH:
		return p.parseSelectStmt()
	case token.INSERT:
		return p.parseInsertStmt()
	case token.UPDATE:
		return p.parseUpdateStmt()
	case token.DELETE:
		return p.parseDeleteStmt()
	case token.CREATE:
		return p.parseCreateTableStmt()
	default:
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "a statement"))
		return nil
	}
}

// parseSelectStmt parses an optional WITH prologue followed by a select
// body.
func (p *Parser) parseSelectStmt() *ast.SelectStmt {
	stmt := &ast.SelectStmt{}
	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
		if stmt.With == nil {
			return nil
		}
	}
	stmt.Body = p.parseSelectBody()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseWithClause() *ast.WithClause {
	p.nextToken() // consume WITH
	clause := &ast.WithClause{}
	if p.match(token.RECURSIVE) {
		clause.Recursive = true
	}
	for {
		cte := p.parseCTE()
		if cte == nil {
			return nil
		}
		clause.CTEs = append(clause.CTEs, cte)
		if !p.match(token.COMMA) {
			break
		}
	}
	return clause
}

func (p *Parser) parseCTE() *ast.CTE {
	name, ok := p.identLiteral("a common table expression name")
	if !ok {
		return nil
	}
	if !p.expect(token.AS) {
		return nil
	}
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
	return &ast.CTE{Name: name, Select: sel}
}

// parseSelectBody parses a select core and any trailing set operations.
// Set operations chain to the right, so A UNION B UNION C parses as
// A UNION (B UNION C).
func (p *Parser) parseSelectBody() *ast.SelectBody {
	core := p.parseSelectCore()
	if core == nil {
		return nil
	}
	body := &ast.SelectBody{Left: core}

	var op ast.SetOp
	switch p.token.Type {
	case token.UNION:
		op = ast.SetOpUnion
	case token.INTERSECT:
		op = ast.SetOpIntersect
	case token.EXCEPT:
		op = ast.SetOpExcept
	default:
		return body
	}
	p.nextToken()
	body.Op = op
	body.All = p.match(token.ALL)
	body.Right = p.parseSelectBody()
	if body.Right == nil {
		return nil
	}
	return body
}

func (p *Parser) parseSelectCore() *ast.SelectCore {
	if !p.expect(token.SELECT) {
		return nil
	}
	core := &ast.SelectCore{}
	if p.match(token.DISTINCT) {
		core.Distinct = true
	} else {
		p.match(token.ALL)
	}

	for {
		item, ok := p.parseSelectItem()
		if !ok {
			return nil
		}
		core.Columns = append(core.Columns, item)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.check(token.FROM) {
		core.From = p.parseFromClause()
		if core.From == nil {
			return nil
		}
	}
	if p.match(token.WHERE) {
		core.Where = p.parseExpression()
		if core.Where == nil {
			return nil
		}
	}
	if p.check(token.GROUP) {
		p.nextToken()
		if !p.expect(token.BY) {
			return nil
		}
		for {
			expr := p.parseExpression()
			if expr == nil {
				return nil
			}
			core.GroupBy = append(core.GroupBy, expr)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if p.match(token.HAVING) {
		core.Having = p.parseExpression()
		if core.Having == nil {
			return nil
		}
	}
	if p.check(token.ORDER) {
		p.nextToken()
		if !p.expect(token.BY) {
			return nil
		}
		for {
			item, ok := p.parseOrderByItem()
			if !ok {
				return nil
			}
			core.OrderBy = append(core.OrderBy, item)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if p.match(token.LIMIT) {
		core.Limit = p.parseExpression()
		if core.Limit == nil {
			return nil
		}
	}
	if p.match(token.OFFSET) {
		core.Offset = p.parseExpression()
		if core.Offset == nil {
			return nil
		}
	}
	return core
}

// parseSelectItem parses one projection. Bare * and table.* are
// recognized here; * EXCEPT (cols) only when the dialect allows it and
// a parenthesized list actually follows.
func (p *Parser) parseSelectItem() (ast.SelectItem, bool) {
	var item ast.SelectItem

	switch {
	case p.check(token.STAR):
		p.nextToken()
		item.Star = true
	case p.isIdentLike() && p.checkPeek(token.DOT) && p.checkPeek2(token.STAR):
		item.TableStar = p.token.Literal
		p.nextToken()
		p.nextToken()
		p.nextToken()
	default:
		expr := p.parseExpression()
		if expr == nil {
			return item, false
		}
		item.Expr = expr
		item.Alias = p.parseOptionalAlias()
		return item, true
	}

	// Wildcard variant. EXCEPT after a star is a set operation unless
	// the dialect's wildcard-except form applies and a column list opens.
	if p.dialect.WildcardExcept && p.check(token.EXCEPT) && p.checkPeek(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		for {
			name, ok := p.identLiteral("a column name")
			if !ok {
				return item, false
			}
			item.Except = append(item.Except, name)
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return item, false
		}
	}
	return item, true
}

// parseOptionalAlias consumes AS name or a bare trailing identifier.
func (p *Parser) parseOptionalAlias() string {
	if p.match(token.AS) {
		name, _ := p.identLiteral("an alias")
		return name
	}
	if p.isIdentLike() {
		name := p.token.Literal
		p.nextToken()
		return name
	}
	return ""
}

func (p *Parser) parseOrderByItem() (ast.OrderByItem, bool) {
	var item ast.OrderByItem
	item.Expr = p.parseExpression()
	if item.Expr == nil {
		return item, false
	}
	if p.match(token.DESC) {
		item.Desc = true
	} else {
		p.match(token.ASC)
	}
	if p.match(token.NULLS) {
		switch {
		case p.match(token.FIRST):
			v := true
			item.NullsFirst = &v
		case p.match(token.LAST):
			v := false
			item.NullsFirst = &v
		default:
			p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "FIRST or LAST"))
			return item, false
		}
	}
	return item, true
}

// parseInsertStmt parses INSERT INTO with either a VALUES list or a
// source query.
func (p *Parser) parseInsertStmt() ast.Statement {
	p.nextToken() // consume INSERT
	if !p.expect(token.INTO) {
		return nil
	}
	table := p.parseTableName(false)
	if table == nil {
		return nil
	}
	stmt := &ast.InsertStmt{Table: table}

	if p.match(token.LPAREN) {
		for {
			name, ok := p.identLiteral("a column name")
			if !ok {
				return nil
			}
			stmt.Columns = append(stmt.Columns, name)
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	switch p.token.Type {
	case token.VALUES:
		p.nextToken()
		for {
			row, ok := p.parseValueRow()
			if !ok {
				return nil
			}
			stmt.Rows = append(stmt.Rows, row)
			if !p.match(token.COMMA) {
				break
			}
		}
	case token.SELECT, token.WITH:
		stmt.Query = p.parseSelectStmt()
		if stmt.Query == nil {
			return nil
		}
	default:
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "VALUES or SELECT"))
		return nil
	}
	return stmt
}

func (p *Parser) parseValueRow() ([]ast.Expr, bool) {
	if !p.expect(token.LPAREN) {
		return nil, false
	}
	var row []ast.Expr
	for {
		expr := p.parseExpression()
		if expr == nil {
			return nil, false
		}
		row = append(row, expr)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil, false
	}
	return row, true
}

func (p *Parser) parseUpdateStmt() ast.Statement {
	p.nextToken() // consume UPDATE
	table := p.parseTableName(false)
	if table == nil {
		return nil
	}
	stmt := &ast.UpdateStmt{Table: table}
	if !p.expect(token.SET) {
		return nil
	}
	for {
		name, ok := p.identLiteral("a column name")
		if !ok {
			return nil
		}
		if !p.expect(token.EQ) {
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		stmt.Set = append(stmt.Set, ast.Assignment{Column: name, Value: value})
		if !p.match(token.COMMA) {
			break
		}
	}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
		if stmt.Where == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseDeleteStmt() ast.Statement {
	p.nextToken() // consume DELETE
	if !p.expect(token.FROM) {
		return nil
	}
	table := p.parseTableName(false)
	if table == nil {
		return nil
	}
	stmt := &ast.DeleteStmt{Table: table}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
		if stmt.Where == nil {
			return nil
		}
	}
	return stmt
}

// parseCreateTableStmt parses CREATE TABLE with either a column list or
// an AS SELECT source.
func (p *Parser) parseCreateTableStmt() ast.Statement {
	p.nextToken() // consume CREATE
	if !p.expect(token.TABLE) {
		return nil
	}
	stmt := &ast.CreateTableStmt{}
	if p.check(token.IF) {
		p.nextToken()
		if !p.expect(token.NOT) {
			return nil
		}
		if !p.expect(token.EXISTS) {
			return nil
		}
		stmt.IfNotExists = true
	}
	stmt.Name = p.parseTableName(false)
	if stmt.Name == nil {
		return nil
	}

	switch {
	case p.check(token.LPAREN):
		p.nextToken()
		for {
			col, ok := p.parseColumnDef()
			if !ok {
				return nil
			}
			stmt.Columns = append(stmt.Columns, col)
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	case p.check(token.AS):
		p.nextToken()
		stmt.Query = p.parseSelectStmt()
		if stmt.Query == nil {
			return nil
		}
	default:
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "a column list or AS"))
		return nil
	}
	return stmt
}

func (p *Parser) parseColumnDef() (ast.ColumnDef, bool) {
	var col ast.ColumnDef
	name, ok := p.identLiteral("a column name")
	if !ok {
		return col, false
	}
	col.Name = name
	col.Type, ok = p.parseTypeName()
	if !ok {
		return col, false
	}
	for {
		switch {
		case p.check(token.NOT) && p.checkPeek(token.NULL):
			p.nextToken()
			p.nextToken()
			col.NotNull = true
		case p.check(token.DEFAULT):
			p.nextToken()
			col.Default = p.parseExpression()
			if col.Default == nil {
				return col, false
			}
		default:
			return col, true
		}
	}
}

// parseTypeName reads a type name, optionally with a parenthesized
// argument list such as VARCHAR(20) or DECIMAL(10, 2). The text is kept
// verbatim in uppercase-insensitive form as written.
func (p *Parser) parseTypeName() (string, bool) {
	if !p.isIdentLike() {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "a type name"))
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(p.token.Literal)
	p.nextToken()
	if p.match(token.LPAREN) {
		sb.WriteByte('(')
		for {
			if !p.check(token.NUMBER) {
				p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "a type parameter"))
				return "", false
			}
			sb.WriteString(p.token.Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
			sb.WriteString(", ")
		}
		if !p.expect(token.RPAREN) {
			return "", false
		}
		sb.WriteByte(')')
	}
	return sb.String(), true
}

// parseExpression parses a full expression at the lowest precedence.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionPrec(spi.PrecedenceNone)
}
