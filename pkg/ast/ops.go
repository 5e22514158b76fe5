package ast

// BinaryOp tags a binary operation. The fixed vocabulary below covers the
// operators every dialect shares; dialect extensions (integer divide,
// array containment, ...) are additional string values produced by custom
// infix hooks. The renderer writes the tag verbatim, so a custom tag must
// be the operator's SQL spelling.
type BinaryOp string

// Fixed binary operator vocabulary.
const (
	OpAdd      BinaryOp = "+"
	OpSubtract BinaryOp = "-"
	OpMultiply BinaryOp = "*"
	OpDivide   BinaryOp = "/"
	OpModulo   BinaryOp = "%"
	OpConcat   BinaryOp = "||"
	OpEq       BinaryOp = "="
	OpNotEq    BinaryOp = "!="
	OpLt       BinaryOp = "<"
	OpGt       BinaryOp = ">"
	OpLtEq     BinaryOp = "<="
	OpGtEq     BinaryOp = ">="
	OpAnd      BinaryOp = "AND"
	OpOr       BinaryOp = "OR"
)

// Dialect extension operators recognized by the bundled dialects.
const (
	OpIntegerDivide    BinaryOp = "DIV" // MySQL integer division
	OpArrayOverlap     BinaryOp = "&&"  // set/array overlap
	OpArrayContains    BinaryOp = "@>"  // array contains
	OpArrayContainsAll BinaryOp = "@>>" // array contains all
)

// UnaryOp tags a unary operation.
type UnaryOp string

// Unary operator vocabulary.
const (
	OpNegate   UnaryOp = "-"
	OpIdentity UnaryOp = "+"
	OpNot      UnaryOp = "NOT"
)
