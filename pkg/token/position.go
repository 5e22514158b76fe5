package token

// Position is a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Comment is lexer trivia collected alongside the token stream.
type Comment struct {
	Text string // raw text including delimiters
	Pos  Position
}
