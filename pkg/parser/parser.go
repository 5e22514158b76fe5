// Package parser turns SQL text into the typed AST in pkg/ast.
//
// # Usage
//
//	d, _ := dialect.Get("mysql")
//	stmts, err := parser.Parse("SELECT a, b FROM t WHERE a > 1", d)
//
// # Grammar overview
//
// The parser is recursive descent with Pratt precedence climbing for
// expressions:
//
//	script        → (statement? ";")* statement?
//	statement     → select_stmt | insert_stmt | update_stmt
//	              | delete_stmt | create_stmt
//	select_stmt   → [WITH [RECURSIVE] cte_list] select_body
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL] select_body]
//	select_core   → SELECT [DISTINCT] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//
// Dialect capabilities gate the extensions (wildcard-except, subscript
// indexing, aggregate FILTER, MATCH AGAINST, interval units, versioned
// table references); the dialect's custom infix hooks are consulted when
// standard infix parsing has no production for an operator token.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Parser consumes the token sequence and builds statements.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Initialize current, peek, and peek2.
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses all semicolon-separated statements in sql. Empty
// statements (bare semicolons) yield no node; statement order is
// preserved. The first lex or parse error aborts the whole call.
func Parse(sql string, d *dialect.Dialect) ([]ast.Statement, error) {
	p := NewParser(sql, d)
	stmts := p.parseScript()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmts, nil
}

// parseScript parses the statement list.
func (p *Parser) parseScript() []ast.Statement {
	var stmts []ast.Statement
	for len(p.errors) == 0 {
		for p.check(token.SEMICOLON) {
			p.nextToken()
		}
		if p.check(token.EOF) {
			break
		}

		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}

		// Statement must end at a semicolon or the end of input.
		if !p.check(token.SEMICOLON) && !p.check(token.EOF) {
			p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, "; or end of input"))
			break
		}
	}
	return stmts
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token helpers ----------

// nextToken advances to the next token, capturing lexer failures.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	next, err := p.lexer.NextToken()
	if err != nil {
		p.errors = append(p.errors, err)
		next = token.Token{Type: token.EOF, Pos: p.peek.Pos}
	}
	p.peek2 = next
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records an
// error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, t))
	return false
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// isIdentLike returns true for tokens usable as a plain name.
func (p *Parser) isIdentLike() bool {
	return p.check(token.IDENT) || p.check(token.QIDENT)
}

// identLiteral consumes an identifier-like token and returns its text.
func (p *Parser) identLiteral(what string) (string, bool) {
	if !p.isIdentLike() {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, what))
		return "", false
	}
	name := p.token.Literal
	p.nextToken()
	return name, true
}

// ---------- spi.ParserOps implementation ----------
// These methods expose the parser to dialect infix hooks.

// Token returns the current token.
func (p *Parser) Token() token.Token {
	return p.token
}

// Peek returns the lookahead token.
func (p *Parser) Peek() token.Token {
	return p.peek
}

// Match consumes the current token if it matches.
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// Expect consumes the current token if it matches, otherwise returns an
// error without recording it; the hook decides how to surface it.
func (p *Parser) Expect(t token.TokenType) error {
	if p.check(t) {
		p.nextToken()
		return nil
	}
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(errUnexpectedToken, p.token.Type, t),
	}
}

// NextToken advances to the next token.
func (p *Parser) NextToken() {
	p.nextToken()
}

// Check returns true if the current token is of the given type.
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// ParseExpression parses an expression at the given minimum precedence.
func (p *Parser) ParseExpression(minPrecedence int) (ast.Expr, error) {
	before := len(p.errors)
	expr := p.parseExpressionPrec(minPrecedence)
	if len(p.errors) > before {
		return nil, p.errors[len(p.errors)-1]
	}
	return expr, nil
}

// Position returns the current token's position.
func (p *Parser) Position() token.Position {
	return p.token.Pos
}
