package ast

// JoinType is the SQL keyword of a join ("INNER", "LEFT", ...).
type JoinType string

// Join type tags. JoinComma is the implicit cross join from comma syntax.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
	JoinComma JoinType = ","
)

// FromClause is a FROM source with zero or more joins.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

// Join is one JOIN clause.
type Join struct {
	Type      JoinType
	Right     TableRef
	Condition Expr     // ON clause, mutually exclusive with Using
	Using     []string // USING (col1, col2)
}

// TableName is a (possibly schema-qualified) table reference.
// AsOf carries a time-travel expression (FOR SYSTEM_TIME AS OF <expr>)
// on dialects that permit versioned table references.
type TableName struct {
	Schema string
	Name   string
	Alias  string
	AsOf   Expr
}

func (*TableName) tableRefNode() {}

// DerivedTable is a subquery in a FROM clause.
type DerivedTable struct {
	Select *SelectStmt
	Alias  string
}

func (*DerivedTable) tableRefNode() {}
