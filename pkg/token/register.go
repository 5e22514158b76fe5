package token

import "sync/atomic"

// nextTokenID tracks the next available dynamic token ID.
// Dynamic tokens start after maxBuiltin (999).
var nextTokenID = int32(maxBuiltin)

// dynamicTokens maps registered dynamic tokens to their names.
// The ID counter is atomic; registration happens at init() time from
// dialect packages, so the maps themselves are not further synchronized.
var dynamicTokens = make(map[TokenType]string)

// dynamicNames maps registered names back to their token types, so a
// dialect re-registering the same operator name reuses the existing ID.
var dynamicNames = make(map[string]TokenType)

// Register returns a token type for the given name, allocating a new
// dynamic ID on first use. Dialects use this for keywords and operators
// the builtin set doesn't know (DIV, ATARROW, MATCH, ...).
func Register(name string) TokenType {
	if t, ok := dynamicNames[name]; ok {
		return t
	}
	id := atomic.AddInt32(&nextTokenID, 1)
	t := TokenType(id)
	dynamicTokens[t] = name
	dynamicNames[name] = t
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	name, ok := dynamicTokens[t]
	return name, ok
}

// IsDynamic returns true if the token type was registered at runtime.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}
