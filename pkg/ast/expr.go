package ast

// ColumnRef is a (possibly table-qualified) column reference.
type ColumnRef struct {
	Table  string
	Column string
}

func (*ColumnRef) exprNode() {}

// LiteralType classifies a literal value.
type LiteralType int

// Literal type tags.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a literal value. Value holds the exact source spelling for
// numbers (so 1.50 survives a round trip) and the decoded text for
// strings.
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a unary operation.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall is a function call, optionally with DISTINCT, a star argument
// (COUNT(*)), or an aggregate FILTER clause.
type FuncCall struct {
	Name     string
	Distinct bool
	Star     bool
	Args     []Expr
	Filter   Expr // FILTER (WHERE ...) - aggregate-filter dialects only
}

func (*FuncCall) exprNode() {}

// WhenClause is one WHEN ... THEN ... arm of a CASE expression.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// CaseExpr is a CASE expression, either simple (with operand) or searched.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr     Expr
	TypeName string
}

func (*CastExpr) exprNode() {}

// InExpr is expr [NOT] IN (values...) or expr [NOT] IN (subquery).
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *SelectStmt
}

func (*InExpr) exprNode() {}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// IsNullExpr is expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// IsBoolExpr is expr IS [NOT] TRUE/FALSE.
type IsBoolExpr struct {
	Expr  Expr
	Not   bool
	Value bool
}

func (*IsBoolExpr) exprNode() {}

// LikeExpr is expr [NOT] LIKE pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Pattern Expr
}

func (*LikeExpr) exprNode() {}

// ParenExpr preserves explicit parentheses.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// StarExpr is a * in expression position (COUNT(*), t.*).
type StarExpr struct {
	Table string
}

func (*StarExpr) exprNode() {}

// SubqueryExpr is a scalar subquery.
type SubqueryExpr struct {
	Select *SelectStmt
}

func (*SubqueryExpr) exprNode() {}

// ExistsExpr is [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not    bool
	Select *SelectStmt
}

func (*ExistsExpr) exprNode() {}

// IndexExpr is subscript access expr[index] on dialects that permit it.
type IndexExpr struct {
	Expr  Expr
	Index Expr
}

func (*IndexExpr) exprNode() {}

// IntervalExpr is INTERVAL 'value' [unit]. Unit is empty when the
// dialect accepts a combined value string ('1 day').
type IntervalExpr struct {
	Value string
	Unit  string
}

func (*IntervalExpr) exprNode() {}

// MatchExpr is MATCH (cols...) AGAINST ('text') on dialects that
// permit full-text predicates.
type MatchExpr struct {
	Columns []Expr
	Against Expr
}

func (*MatchExpr) exprNode() {}
