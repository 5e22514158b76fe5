package token_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbridge/pkg/token"
	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, token.SELECT, token.LookupIdent("select"))
	assert.Equal(t, token.IDENT, token.LookupIdent("customers"))

	// Lookup is lowercase-only; callers fold case before calling.
	assert.Equal(t, token.IDENT, token.LookupIdent("SELECT"))
}

func TestRegisterIsIdempotent(t *testing.T) {
	a := token.Register("MY_OP")
	b := token.Register("MY_OP")
	assert.Equal(t, a, b)
	assert.True(t, token.IsDynamic(a))
	assert.Equal(t, "MY_OP", a.String())
}

func TestRegisterAssignsDistinctTypes(t *testing.T) {
	a := token.Register("OP_A")
	b := token.Register("OP_B")
	assert.NotEqual(t, a, b)
}

func TestBuiltinTokensAreNotDynamic(t *testing.T) {
	assert.False(t, token.IsDynamic(token.SELECT))
	assert.False(t, token.IsDynamic(token.PLUS))
}

func TestStringNamesBuiltins(t *testing.T) {
	assert.Equal(t, "SELECT", token.SELECT.String())
	assert.Equal(t, "+", token.PLUS.String())
}

func TestTokenEnd(t *testing.T) {
	tok := token.Token{
		Type:    token.IDENT,
		Literal: "abc",
		Pos:     token.Position{Line: 1, Column: 5, Offset: 4},
	}
	assert.Equal(t, 7, tok.End())
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, token.IsKeyword(token.SELECT))
	assert.False(t, token.IsKeyword(token.IDENT))
	assert.False(t, token.IsKeyword(token.PLUS))
}
