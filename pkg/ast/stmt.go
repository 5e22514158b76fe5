package ast

// SelectStmt is a complete SELECT statement with optional WITH clause.
type SelectStmt struct {
	With *WithClause
	Body *SelectBody
}

func (*SelectStmt) stmtNode() {}

// WithClause holds the CTEs of a WITH prefix.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE is a single common table expression.
type CTE struct {
	Name   string
	Select *SelectStmt
}

// SetOp is the type of a set operation between select cores.
type SetOp string

// Set operation tags.
const (
	SetOpNone      SetOp = ""
	SetOpUnion     SetOp = "UNION"
	SetOpIntersect SetOp = "INTERSECT"
	SetOpExcept    SetOp = "EXCEPT"
)

// SelectBody is a select core with a possible chained set operation.
type SelectBody struct {
	Left  *SelectCore
	Op    SetOp
	All   bool // UNION ALL / INTERSECT ALL / EXCEPT ALL
	Right *SelectBody
}

// SelectCore is the body of a single SELECT clause.
type SelectCore struct {
	Distinct bool
	Columns  []SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	Limit    Expr
	Offset   Expr
}

// SelectItem is one item in the SELECT list.
type SelectItem struct {
	Star      bool     // SELECT *
	TableStar string   // SELECT t.*
	Except    []string // SELECT * EXCEPT (a, b) - wildcard-except dialects only
	Expr      Expr
	Alias     string
}

// OrderByItem is one item in an ORDER BY list.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool // nil = dialect default
}

// InsertStmt is an INSERT statement with VALUES rows or a source query.
type InsertStmt struct {
	Table   *TableName
	Columns []string
	Rows    [][]Expr
	Query   *SelectStmt
}

func (*InsertStmt) stmtNode() {}

// Assignment is one column = expr pair in an UPDATE SET list.
type Assignment struct {
	Column string
	Value  Expr
}

// UpdateStmt is an UPDATE statement.
type UpdateStmt struct {
	Table *TableName
	Set   []Assignment
	Where Expr
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt is a DELETE statement.
type DeleteStmt struct {
	Table *TableName
	Where Expr
}

func (*DeleteStmt) stmtNode() {}

// ColumnDef is a column definition in CREATE TABLE.
type ColumnDef struct {
	Name    string
	Type    string
	NotNull bool
	Default Expr
}

// CreateTableStmt is a CREATE TABLE statement, either with explicit
// column definitions or as CREATE TABLE ... AS SELECT.
type CreateTableStmt struct {
	Name        *TableName
	IfNotExists bool
	Columns     []ColumnDef
	Query       *SelectStmt
}

func (*CreateTableStmt) stmtNode() {}
