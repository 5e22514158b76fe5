package parser

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Lexer tokenizes SQL input in a single left-to-right scan with one
// character of lookahead. Character classification and quoting rules
// are delegated to the dialect.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect

	// prev is the type of the last significant token, used to decide
	// whether a sign starts a numeric literal on dialects that lex
	// signed numbers.
	prev token.TokenType

	// Comments collected during lexing (trivia, never tokens)
	Comments []token.Comment
}

// NewLexer creates a lexer for the given input and dialect.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
		prev:    token.EOF,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// NextToken returns the next token, or a LexError when the dialect
// disallows what was scanned.
func (l *Lexer) NextToken() (token.Token, error) {
	tok, err := l.scan()
	if err != nil {
		return tok, err
	}
	l.prev = tok.Type
	return tok, nil
}

func (l *Lexer) scan() (token.Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	// Dialect operator symbols first, longest match wins.
	if tok, ok := l.matchDialectSymbol(pos); ok {
		return tok, nil
	}

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Pos: pos}, nil
	case '+':
		if l.signStartsNumber() {
			return l.readNumber(pos)
		}
		return l.single(token.PLUS, "+", pos), nil
	case '-':
		if l.signStartsNumber() {
			return l.readNumber(pos)
		}
		return l.single(token.MINUS, "-", pos), nil
	case '*':
		return l.single(token.STAR, "*", pos), nil
	case '/':
		return l.single(token.SLASH, "/", pos), nil
	case '%':
		return l.single(token.PERCENT, "%", pos), nil
	case '=':
		return l.single(token.EQ, "=", pos), nil
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			return l.single(token.LE, "<=", pos), nil
		case '>':
			l.readChar()
			return l.single(token.NE, "<>", pos), nil
		default:
			return l.single(token.LT, "<", pos), nil
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			return l.single(token.GE, ">=", pos), nil
		}
		return l.single(token.GT, ">", pos), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.single(token.NE, "!=", pos), nil
		}
		return l.single(token.ILLEGAL, "!", pos), nil
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return l.single(token.DPIPE, "||", pos), nil
		}
		return l.single(token.ILLEGAL, "|", pos), nil
	case '.':
		return l.single(token.DOT, ".", pos), nil
	case ',':
		return l.single(token.COMMA, ",", pos), nil
	case ';':
		return l.single(token.SEMICOLON, ";", pos), nil
	case '(':
		return l.single(token.LPAREN, "(", pos), nil
	case ')':
		return l.single(token.RPAREN, ")", pos), nil
	case '[':
		return l.single(token.LBRACKET, "[", pos), nil
	case ']':
		return l.single(token.RBRACKET, "]", pos), nil
	case '\'':
		return l.readString(pos)
	}

	if l.ch == l.dialect.Identifiers.Quote {
		return l.readQuotedIdentifier(pos)
	}

	switch {
	case l.dialect.IsIdentStart(rune(l.ch)):
		return l.readIdentifier(pos), nil
	case isDigit(l.ch):
		return l.readNumber(pos)
	}

	return l.single(token.ILLEGAL, string(l.ch), pos), nil
}

// signStartsNumber reports whether a + or - at the current position
// begins a numeric literal. Only dialects with signed-number lexing do
// this, and only when the previous token cannot end an operand.
func (l *Lexer) signStartsNumber() bool {
	if !l.dialect.SignedNumbers || !isDigit(l.peekChar()) {
		return false
	}
	switch l.prev {
	case token.IDENT, token.QIDENT, token.NUMBER, token.STRING,
		token.RPAREN, token.RBRACKET, token.TRUE, token.FALSE, token.NULL:
		return false
	}
	return true
}

// matchDialectSymbol matches the longest dialect operator symbol at the
// current position (maximal munch for multi-character operators).
func (l *Lexer) matchDialectSymbol(pos token.Position) (token.Token, bool) {
	symbols := l.dialect.Symbols()
	if len(symbols) == 0 || l.pos >= len(l.input) {
		return token.Token{}, false
	}

	remaining := l.input[l.pos:]
	var matches []string
	for sym := range symbols {
		if strings.HasPrefix(remaining, sym) {
			matches = append(matches, sym)
		}
	}
	if len(matches) == 0 {
		return token.Token{}, false
	}

	sort.Slice(matches, func(i, j int) bool {
		return len(matches[i]) > len(matches[j])
	})

	symbol := matches[0]
	for range symbol {
		l.readChar()
	}
	return token.Token{Type: symbols[symbol], Literal: symbol, Pos: pos}, true
}

func (l *Lexer) single(t token.TokenType, literal string, pos token.Position) token.Token {
	l.readChar()
	return token.Token{Type: t, Literal: literal, Pos: pos}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}
		break
	}
}

func (l *Lexer) collectLineComment() {
	pos := l.currentPos()
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	l.Comments = append(l.Comments, token.Comment{Text: l.input[start:l.pos], Pos: pos})
}

func (l *Lexer) collectBlockComment() {
	pos := l.currentPos()
	start := l.pos
	l.readChar() // skip '/'
	l.readChar() // skip '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	l.Comments = append(l.Comments, token.Comment{Text: l.input[start:l.pos], Pos: pos})
}

// readString reads a single-quoted string literal. Doubled quotes are
// always an escape; backslash escapes only on dialects that allow them.
func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch {
		case l.ch == 0:
			return token.Token{}, &LexError{Pos: pos, Message: errUnterminatedString}
		case l.ch == '\'':
			if l.peekChar() == '\'' {
				result.WriteByte('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return token.Token{Type: token.STRING, Literal: result.String(), Pos: pos}, nil
		case l.ch == '\\' && l.dialect.BackslashEscapes:
			esc := l.peekChar()
			decoded, ok := decodeEscape(esc)
			if !ok {
				return token.Token{}, &LexError{
					Pos:     l.currentPos(),
					Message: escapeMessage(esc),
				}
			}
			result.WriteByte(decoded)
			l.readChar()
			l.readChar()
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func decodeEscape(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	}
	return 0, false
}

func escapeMessage(c byte) string {
	if c == 0 {
		return errUnterminatedString
	}
	return strings.ReplaceAll(errInvalidEscape, "%c", string(c))
}

// readQuotedIdentifier reads a delimited identifier using the dialect's
// quote characters. A doubled closing quote is an escape.
func (l *Lexer) readQuotedIdentifier(pos token.Position) (token.Token, error) {
	end := l.dialect.Identifiers.QuoteEnd
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch l.ch {
		case 0:
			return token.Token{}, &LexError{Pos: pos, Message: errUnterminatedQuoted}
		case end:
			if l.peekChar() == end {
				result.WriteByte(end)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return token.Token{Type: token.QIDENT, Literal: result.String(), Pos: pos}, nil
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readIdentifier reads an unquoted identifier and classifies keywords.
func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.pos
	l.readChar()
	for l.dialect.IsIdentPart(rune(l.ch)) {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	lower := strings.ToLower(literal)

	t := token.LookupIdent(lower)
	if t == token.IDENT {
		if dynTok, ok := l.dialect.LookupKeyword(lower); ok {
			t = dynTok
		}
	}
	return token.Token{Type: t, Literal: literal, Pos: pos}
}

// readNumber reads a numeric literal: integer, decimal, or scientific,
// with an optional sign when signStartsNumber allowed it and embedded
// underscores on dialects that permit them.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.pos

	if l.ch == '+' || l.ch == '-' {
		l.readChar()
	}

	l.readDigits()

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		l.readDigits()
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		l.readDigits()
	}

	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}, nil
}

// readDigits consumes a digit run, allowing underscores between digits
// on dialects with numeric underscores.
func (l *Lexer) readDigits() {
	for {
		if isDigit(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '_' && l.dialect.NumericUnderscores && isDigit(l.peekChar()) {
			l.readChar()
			continue
		}
		return
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
