// Package dialect defines the capability record that conditions the
// tokenizer and parser, plus a builder and a case-insensitive registry.
//
// A Dialect is immutable once built. Capability flags are plain fields
// consulted by value; the only polymorphic extension point is the custom
// infix hook, a function value invoked when standard infix parsing finds
// no production for an operator token.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// IdentifierConfig defines how delimited identifiers are quoted.
type IdentifierConfig struct {
	Quote    byte // opening quote character: " or `
	QuoteEnd byte // closing quote character (usually same as Quote)
}

// Dialect is an immutable SQL capability record.
type Dialect struct {
	Name string

	// Identifiers defines delimited-identifier quoting.
	Identifiers IdentifierConfig

	// IdentStart and IdentPart classify identifier characters. A nil
	// predicate means the default: letters and underscore to start,
	// letters, digits, and underscore to continue.
	IdentStart func(r rune) bool
	IdentPart  func(r rune) bool

	// Tokenizer capabilities.
	BackslashEscapes   bool // \n, \' recognized inside string literals
	NumericUnderscores bool // 1_000_000
	SignedNumbers      bool // -3 lexed as one numeric token in operand position

	// Grammar capabilities.
	WildcardExcept       bool // SELECT * EXCEPT (a, b)
	SubscriptIndexing    bool // expr[index]
	AggregateFilter      bool // agg(x) FILTER (WHERE ...)
	MatchAgainst         bool // MATCH (cols) AGAINST ('text')
	IntervalUnitRequired bool // INTERVAL '1' DAY, unit mandatory
	TimeTravel           bool // table FOR SYSTEM_TIME AS OF <expr>

	symbols    map[string]token.TokenType
	keywords   map[string]token.TokenType
	precedence map[token.TokenType]int
	infix      map[token.TokenType]spi.InfixHandler
}

// Symbols returns the custom operator symbols for lexer matching.
// The lexer prefers the longest matching symbol at a position.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the token type for a dialect keyword.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	t, ok := d.keywords[strings.ToLower(name)]
	if !ok {
		return token.IDENT, false
	}
	return t, true
}

// Precedence returns the infix precedence for an operator token, or
// PrecedenceNone if the dialect does not treat it as an infix operator.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return spi.PrecedenceNone
}

// InfixHandler returns the custom infix hook for a token, or nil.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infix[t]
}

// IsIdentStart reports whether r may start an unquoted identifier.
func (d *Dialect) IsIdentStart(r rune) bool {
	if d.IdentStart != nil {
		return d.IdentStart(r)
	}
	return defaultIdentStart(r)
}

// IsIdentPart reports whether r may continue an unquoted identifier.
func (d *Dialect) IsIdentPart(r rune) bool {
	if d.IdentPart != nil {
		return d.IdentPart(r)
	}
	return defaultIdentPart(r)
}

func defaultIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func defaultIdentPart(r rune) bool {
	return defaultIdentStart(r) || (r >= '0' && r <= '9')
}

// Builder constructs a Dialect. It is not safe for concurrent use; build
// dialects at init time and register them.
type Builder struct {
	d *Dialect
}

// New returns a builder for a dialect with the given name and ANSI
// double-quote identifier delimiters.
func New(name string) *Builder {
	return &Builder{d: &Dialect{
		Name:        name,
		Identifiers: IdentifierConfig{Quote: '"', QuoteEnd: '"'},
		symbols:     make(map[string]token.TokenType),
		keywords:    make(map[string]token.TokenType),
		precedence:  make(map[token.TokenType]int),
		infix:       make(map[token.TokenType]spi.InfixHandler),
	}}
}

// Identifiers sets the delimited-identifier quote characters.
func (b *Builder) Identifiers(quote, quoteEnd byte) *Builder {
	b.d.Identifiers = IdentifierConfig{Quote: quote, QuoteEnd: quoteEnd}
	return b
}

// IdentChars sets the identifier character predicates.
func (b *Builder) IdentChars(start, part func(r rune) bool) *Builder {
	b.d.IdentStart = start
	b.d.IdentPart = part
	return b
}

// Flags applies capability flags from a Config record.
func (b *Builder) Flags(cfg Config) *Builder {
	b.d.BackslashEscapes = cfg.BackslashEscapes
	b.d.NumericUnderscores = cfg.NumericUnderscores
	b.d.SignedNumbers = cfg.SignedNumbers
	b.d.WildcardExcept = cfg.WildcardExcept
	b.d.SubscriptIndexing = cfg.SubscriptIndexing
	b.d.AggregateFilter = cfg.AggregateFilter
	b.d.MatchAgainst = cfg.MatchAgainst
	b.d.IntervalUnitRequired = cfg.IntervalUnitRequired
	b.d.TimeTravel = cfg.TimeTravel
	return b
}

// AddOperator registers a custom operator symbol with a precedence.
func (b *Builder) AddOperator(symbol string, t token.TokenType, precedence int) *Builder {
	b.d.symbols[symbol] = t
	b.d.precedence[t] = precedence
	return b
}

// AddKeyword registers a dialect keyword.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.d.keywords[strings.ToLower(name)] = t
	return b
}

// AddInfix registers an infix precedence for a token the lexer already
// produces (builtin operators or dialect keywords).
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.d.precedence[t] = precedence
	return b
}

// AddInfixHandler registers a custom infix hook with a precedence.
func (b *Builder) AddInfixHandler(t token.TokenType, precedence int, h spi.InfixHandler) *Builder {
	b.d.precedence[t] = precedence
	b.d.infix[t] = h
	return b
}

// Build returns the constructed dialect. Standard ANSI operator
// precedence is filled in for any builtin operator not already set.
func (b *Builder) Build() *Dialect {
	for t, p := range ansiPrecedence {
		if _, ok := b.d.precedence[t]; !ok {
			b.d.precedence[t] = p
		}
	}
	return b.d
}

// ansiPrecedence is the standard operator precedence every dialect
// starts from.
var ansiPrecedence = map[token.TokenType]int{
	token.OR:      spi.PrecedenceOr,
	token.AND:     spi.PrecedenceAnd,
	token.EQ:      spi.PrecedenceComparison,
	token.NE:      spi.PrecedenceComparison,
	token.LT:      spi.PrecedenceComparison,
	token.GT:      spi.PrecedenceComparison,
	token.LE:      spi.PrecedenceComparison,
	token.GE:      spi.PrecedenceComparison,
	token.IS:      spi.PrecedenceComparison,
	token.IN:      spi.PrecedenceComparison,
	token.BETWEEN: spi.PrecedenceComparison,
	token.LIKE:    spi.PrecedenceComparison,
	token.NOT:     spi.PrecedenceComparison, // infix NOT IN / NOT LIKE / NOT BETWEEN
	token.PLUS:    spi.PrecedenceAddition,
	token.MINUS:   spi.PrecedenceAddition,
	token.DPIPE:   spi.PrecedenceAddition,
	token.STAR:    spi.PrecedenceMultiply,
	token.SLASH:   spi.PrecedenceMultiply,
	token.PERCENT: spi.PrecedenceMultiply,
}
