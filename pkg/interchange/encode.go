package interchange

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
)

// Node tag values. Every encoded AST node is an *Object whose first key
// is "node" holding one of these tags.
const (
	nodeSelect      = "Select"
	nodeInsert      = "Insert"
	nodeUpdate      = "Update"
	nodeDelete      = "Delete"
	nodeCreateTable = "CreateTable"

	nodeWith       = "With"
	nodeCTE        = "CTE"
	nodeSelectBody = "SelectBody"
	nodeSelectCore = "SelectCore"
	nodeSelectItem = "SelectItem"
	nodeOrderBy    = "OrderBy"
	nodeFrom       = "From"
	nodeJoin       = "Join"
	nodeTable      = "Table"
	nodeDerived    = "Derived"
	nodeAssign     = "Assign"
	nodeColumnDef  = "ColumnDef"

	nodeColumnRef = "ColumnRef"
	nodeLiteral   = "Literal"
	nodeBinary    = "Binary"
	nodeUnary     = "Unary"
	nodeCall      = "Call"
	nodeCase      = "Case"
	nodeWhen      = "When"
	nodeCast      = "Cast"
	nodeIn        = "In"
	nodeBetween   = "Between"
	nodeIsNull    = "IsNull"
	nodeIsBool    = "IsBool"
	nodeLike      = "Like"
	nodeParen     = "Paren"
	nodeStar      = "Star"
	nodeSubquery  = "Subquery"
	nodeExists    = "Exists"
	nodeIndex     = "Index"
	nodeInterval  = "Interval"
	nodeMatch     = "Match"
)

// Literal type tags.
const (
	literalNumber = "number"
	literalString = "string"
	literalBool   = "bool"
	literalNull   = "null"
)

// EncodeStatement converts a statement to its interchange form. The
// encoding is total: every statement the parser produces encodes
// without error.
func EncodeStatement(stmt ast.Statement) *Object {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return encodeSelectStmt(s)
	case *ast.InsertStmt:
		return encodeInsertStmt(s)
	case *ast.UpdateStmt:
		return encodeUpdateStmt(s)
	case *ast.DeleteStmt:
		return encodeDeleteStmt(s)
	case *ast.CreateTableStmt:
		return encodeCreateTableStmt(s)
	default:
		panic(fmt.Sprintf("interchange: unknown statement type %T", stmt))
	}
}

func newNode(tag string) *Object {
	o := NewObject()
	o.Set("node", tag)
	return o
}

func encodeSelectStmt(s *ast.SelectStmt) *Object {
	o := newNode(nodeSelect)
	if s.With != nil {
		o.Set("with", encodeWithClause(s.With))
	}
	o.Set("body", encodeSelectBody(s.Body))
	return o
}

func encodeWithClause(w *ast.WithClause) *Object {
	o := newNode(nodeWith)
	if w.Recursive {
		o.Set("recursive", true)
	}
	ctes := make(List, len(w.CTEs))
	for i, cte := range w.CTEs {
		c := newNode(nodeCTE)
		c.Set("name", cte.Name)
		c.Set("select", encodeSelectStmt(cte.Select))
		ctes[i] = c
	}
	o.Set("ctes", ctes)
	return o
}

func encodeSelectBody(b *ast.SelectBody) *Object {
	o := newNode(nodeSelectBody)
	o.Set("left", encodeSelectCore(b.Left))
	if b.Op != ast.SetOpNone {
		o.Set("op", string(b.Op))
		if b.All {
			o.Set("all", true)
		}
		o.Set("right", encodeSelectBody(b.Right))
	}
	return o
}

func encodeSelectCore(c *ast.SelectCore) *Object {
	o := newNode(nodeSelectCore)
	if c.Distinct {
		o.Set("distinct", true)
	}
	cols := make(List, len(c.Columns))
	for i, item := range c.Columns {
		cols[i] = encodeSelectItem(item)
	}
	o.Set("columns", cols)
	if c.From != nil {
		o.Set("from", encodeFromClause(c.From))
	}
	if c.Where != nil {
		o.Set("where", EncodeExpr(c.Where))
	}
	if len(c.GroupBy) > 0 {
		o.Set("groupBy", encodeExprList(c.GroupBy))
	}
	if c.Having != nil {
		o.Set("having", EncodeExpr(c.Having))
	}
	if len(c.OrderBy) > 0 {
		items := make(List, len(c.OrderBy))
		for i, item := range c.OrderBy {
			items[i] = encodeOrderByItem(item)
		}
		o.Set("orderBy", items)
	}
	if c.Limit != nil {
		o.Set("limit", EncodeExpr(c.Limit))
	}
	if c.Offset != nil {
		o.Set("offset", EncodeExpr(c.Offset))
	}
	return o
}

func encodeSelectItem(item ast.SelectItem) *Object {
	o := newNode(nodeSelectItem)
	switch {
	case item.Star:
		o.Set("star", true)
	case item.TableStar != "":
		o.Set("tableStar", item.TableStar)
	default:
		o.Set("expr", EncodeExpr(item.Expr))
	}
	if len(item.Except) > 0 {
		o.Set("except", encodeStringList(item.Except))
	}
	if item.Alias != "" {
		o.Set("alias", item.Alias)
	}
	return o
}

func encodeOrderByItem(item ast.OrderByItem) *Object {
	o := newNode(nodeOrderBy)
	o.Set("expr", EncodeExpr(item.Expr))
	if item.Desc {
		o.Set("desc", true)
	}
	if item.NullsFirst != nil {
		o.Set("nullsFirst", *item.NullsFirst)
	}
	return o
}

func encodeFromClause(f *ast.FromClause) *Object {
	o := newNode(nodeFrom)
	o.Set("source", encodeTableRef(f.Source))
	if len(f.Joins) > 0 {
		joins := make(List, len(f.Joins))
		for i, j := range f.Joins {
			joins[i] = encodeJoin(j)
		}
		o.Set("joins", joins)
	}
	return o
}

func encodeJoin(j *ast.Join) *Object {
	o := newNode(nodeJoin)
	o.Set("type", string(j.Type))
	o.Set("right", encodeTableRef(j.Right))
	if j.Condition != nil {
		o.Set("on", EncodeExpr(j.Condition))
	}
	if len(j.Using) > 0 {
		o.Set("using", encodeStringList(j.Using))
	}
	return o
}

func encodeTableRef(ref ast.TableRef) *Object {
	switch r := ref.(type) {
	case *ast.TableName:
		return encodeTableName(r)
	case *ast.DerivedTable:
		o := newNode(nodeDerived)
		o.Set("select", encodeSelectStmt(r.Select))
		if r.Alias != "" {
			o.Set("alias", r.Alias)
		}
		return o
	default:
		panic(fmt.Sprintf("interchange: unknown table reference type %T", ref))
	}
}

func encodeTableName(t *ast.TableName) *Object {
	o := newNode(nodeTable)
	if t.Schema != "" {
		o.Set("schema", t.Schema)
	}
	o.Set("name", t.Name)
	if t.AsOf != nil {
		o.Set("asOf", EncodeExpr(t.AsOf))
	}
	if t.Alias != "" {
		o.Set("alias", t.Alias)
	}
	return o
}

func encodeInsertStmt(s *ast.InsertStmt) *Object {
	o := newNode(nodeInsert)
	o.Set("table", encodeTableName(s.Table))
	if len(s.Columns) > 0 {
		o.Set("columns", encodeStringList(s.Columns))
	}
	if len(s.Rows) > 0 {
		rows := make(List, len(s.Rows))
		for i, row := range s.Rows {
			rows[i] = encodeExprList(row)
		}
		o.Set("rows", rows)
	}
	if s.Query != nil {
		o.Set("query", encodeSelectStmt(s.Query))
	}
	return o
}

func encodeUpdateStmt(s *ast.UpdateStmt) *Object {
	o := newNode(nodeUpdate)
	o.Set("table", encodeTableName(s.Table))
	set := make(List, len(s.Set))
	for i, a := range s.Set {
		as := newNode(nodeAssign)
		as.Set("column", a.Column)
		as.Set("value", EncodeExpr(a.Value))
		set[i] = as
	}
	o.Set("set", set)
	if s.Where != nil {
		o.Set("where", EncodeExpr(s.Where))
	}
	return o
}

func encodeDeleteStmt(s *ast.DeleteStmt) *Object {
	o := newNode(nodeDelete)
	o.Set("table", encodeTableName(s.Table))
	if s.Where != nil {
		o.Set("where", EncodeExpr(s.Where))
	}
	return o
}

func encodeCreateTableStmt(s *ast.CreateTableStmt) *Object {
	o := newNode(nodeCreateTable)
	o.Set("name", encodeTableName(s.Name))
	if s.IfNotExists {
		o.Set("ifNotExists", true)
	}
	if len(s.Columns) > 0 {
		cols := make(List, len(s.Columns))
		for i, col := range s.Columns {
			c := newNode(nodeColumnDef)
			c.Set("name", col.Name)
			c.Set("type", col.Type)
			if col.NotNull {
				c.Set("notNull", true)
			}
			if col.Default != nil {
				c.Set("default", EncodeExpr(col.Default))
			}
			cols[i] = c
		}
		o.Set("columns", cols)
	}
	if s.Query != nil {
		o.Set("query", encodeSelectStmt(s.Query))
	}
	return o
}

// EncodeExpr converts an expression to its interchange form.
func EncodeExpr(expr ast.Expr) *Object {
	switch e := expr.(type) {
	case *ast.ColumnRef:
		o := newNode(nodeColumnRef)
		if e.Table != "" {
			o.Set("table", e.Table)
		}
		o.Set("column", e.Column)
		return o
	case *ast.Literal:
		return encodeLiteral(e)
	case *ast.BinaryExpr:
		o := newNode(nodeBinary)
		o.Set("op", string(e.Op))
		o.Set("left", EncodeExpr(e.Left))
		o.Set("right", EncodeExpr(e.Right))
		return o
	case *ast.UnaryExpr:
		o := newNode(nodeUnary)
		o.Set("op", string(e.Op))
		o.Set("expr", EncodeExpr(e.Expr))
		return o
	case *ast.FuncCall:
		o := newNode(nodeCall)
		o.Set("name", e.Name)
		if e.Distinct {
			o.Set("distinct", true)
		}
		if e.Star {
			o.Set("star", true)
		}
		if len(e.Args) > 0 {
			o.Set("args", encodeExprList(e.Args))
		}
		if e.Filter != nil {
			o.Set("filter", EncodeExpr(e.Filter))
		}
		return o
	case *ast.CaseExpr:
		o := newNode(nodeCase)
		if e.Operand != nil {
			o.Set("operand", EncodeExpr(e.Operand))
		}
		whens := make(List, len(e.Whens))
		for i, w := range e.Whens {
			wo := newNode(nodeWhen)
			wo.Set("condition", EncodeExpr(w.Condition))
			wo.Set("result", EncodeExpr(w.Result))
			whens[i] = wo
		}
		o.Set("whens", whens)
		if e.Else != nil {
			o.Set("else", EncodeExpr(e.Else))
		}
		return o
	case *ast.CastExpr:
		o := newNode(nodeCast)
		o.Set("expr", EncodeExpr(e.Expr))
		o.Set("type", e.TypeName)
		return o
	case *ast.InExpr:
		o := newNode(nodeIn)
		o.Set("expr", EncodeExpr(e.Expr))
		if e.Not {
			o.Set("not", true)
		}
		if e.Query != nil {
			o.Set("query", encodeSelectStmt(e.Query))
		} else {
			o.Set("values", encodeExprList(e.Values))
		}
		return o
	case *ast.BetweenExpr:
		o := newNode(nodeBetween)
		o.Set("expr", EncodeExpr(e.Expr))
		if e.Not {
			o.Set("not", true)
		}
		o.Set("low", EncodeExpr(e.Low))
		o.Set("high", EncodeExpr(e.High))
		return o
	case *ast.IsNullExpr:
		o := newNode(nodeIsNull)
		o.Set("expr", EncodeExpr(e.Expr))
		if e.Not {
			o.Set("not", true)
		}
		return o
	case *ast.IsBoolExpr:
		o := newNode(nodeIsBool)
		o.Set("expr", EncodeExpr(e.Expr))
		if e.Not {
			o.Set("not", true)
		}
		o.Set("value", e.Value)
		return o
	case *ast.LikeExpr:
		o := newNode(nodeLike)
		o.Set("expr", EncodeExpr(e.Expr))
		if e.Not {
			o.Set("not", true)
		}
		o.Set("pattern", EncodeExpr(e.Pattern))
		return o
	case *ast.ParenExpr:
		o := newNode(nodeParen)
		o.Set("expr", EncodeExpr(e.Expr))
		return o
	case *ast.StarExpr:
		o := newNode(nodeStar)
		if e.Table != "" {
			o.Set("table", e.Table)
		}
		return o
	case *ast.SubqueryExpr:
		o := newNode(nodeSubquery)
		o.Set("select", encodeSelectStmt(e.Select))
		return o
	case *ast.ExistsExpr:
		o := newNode(nodeExists)
		if e.Not {
			o.Set("not", true)
		}
		o.Set("select", encodeSelectStmt(e.Select))
		return o
	case *ast.IndexExpr:
		o := newNode(nodeIndex)
		o.Set("expr", EncodeExpr(e.Expr))
		o.Set("index", EncodeExpr(e.Index))
		return o
	case *ast.IntervalExpr:
		o := newNode(nodeInterval)
		o.Set("value", e.Value)
		if e.Unit != "" {
			o.Set("unit", e.Unit)
		}
		return o
	case *ast.MatchExpr:
		o := newNode(nodeMatch)
		o.Set("columns", encodeExprList(e.Columns))
		o.Set("against", EncodeExpr(e.Against))
		return o
	default:
		panic(fmt.Sprintf("interchange: unknown expression type %T", expr))
	}
}

func encodeLiteral(l *ast.Literal) *Object {
	o := newNode(nodeLiteral)
	switch l.Type {
	case ast.LiteralNumber:
		o.Set("type", literalNumber)
		o.Set("value", l.Value)
	case ast.LiteralString:
		o.Set("type", literalString)
		o.Set("value", l.Value)
	case ast.LiteralBool:
		o.Set("type", literalBool)
		o.Set("value", l.Value == "TRUE")
	case ast.LiteralNull:
		o.Set("type", literalNull)
	}
	return o
}

func encodeExprList(exprs []ast.Expr) List {
	out := make(List, len(exprs))
	for i, e := range exprs {
		out[i] = EncodeExpr(e)
	}
	return out
}

func encodeStringList(ss []string) List {
	out := make(List, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
