package interchange

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
)

// DecodeStatement converts an interchange value back to a statement.
// Decoding tolerates reordered and unknown keys but is strict about
// missing required fields, wrong shapes, and unknown node tags.
func DecodeStatement(v Value) (ast.Statement, error) {
	return decodeStatement(v, "")
}

func decodeStatement(v Value, path string) (ast.Statement, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	switch tag {
	case nodeSelect:
		return decodeSelectObject(o, path)
	case nodeInsert:
		return decodeInsert(o, path)
	case nodeUpdate:
		return decodeUpdate(o, path)
	case nodeDelete:
		return decodeDelete(o, path)
	case nodeCreateTable:
		return decodeCreateTable(o, path)
	default:
		return nil, decodeErr(path, "unknown statement node %q", tag)
	}
}

// ---------- shape helpers ----------

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func nodeObject(v Value, path string) (*Object, string, error) {
	o, ok := v.(*Object)
	if !ok {
		return nil, "", decodeErr(path, "expected an object, got %T", v)
	}
	tagValue, ok := o.Get("node")
	if !ok {
		return nil, "", decodeErr(path, "missing field %q", "node")
	}
	tag, ok := tagValue.(string)
	if !ok {
		return nil, "", decodeErr(path, "field %q must be a string, got %T", "node", tagValue)
	}
	return o, tag, nil
}

func reqField(o *Object, key, path string) (Value, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, decodeErr(path, "missing field %q", key)
	}
	return v, nil
}

func reqString(o *Object, key, path string) (string, error) {
	v, err := reqField(o, key, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", decodeErr(path, "field %q must be a string, got %T", key, v)
	}
	return s, nil
}

func optString(o *Object, key, path string) (string, error) {
	v, ok := o.Get(key)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", decodeErr(path, "field %q must be a string, got %T", key, v)
	}
	return s, nil
}

// optBool returns false for a missing key.
func optBool(o *Object, key, path string) (bool, error) {
	v, ok := o.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, decodeErr(path, "field %q must be a bool, got %T", key, v)
	}
	return b, nil
}

func reqBool(o *Object, key, path string) (bool, error) {
	v, err := reqField(o, key, path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, decodeErr(path, "field %q must be a bool, got %T", key, v)
	}
	return b, nil
}

func reqList(o *Object, key, path string) (List, error) {
	v, err := reqField(o, key, path)
	if err != nil {
		return nil, err
	}
	l, ok := v.(List)
	if !ok {
		return nil, decodeErr(path, "field %q must be a list, got %T", key, v)
	}
	return l, nil
}

func optList(o *Object, key, path string) (List, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	l, ok := v.(List)
	if !ok {
		return nil, decodeErr(path, "field %q must be a list, got %T", key, v)
	}
	return l, nil
}

func decodeStringList(l List, path string) ([]string, error) {
	out := make([]string, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, decodeErr(indexPath(path, i), "expected a string, got %T", v)
		}
		out[i] = s
	}
	return out, nil
}

func decodeExprList(l List, path string) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(l))
	for i, v := range l {
		expr, err := decodeExpr(v, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}

func optExpr(o *Object, key, path string) (ast.Expr, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	return decodeExpr(v, childPath(path, key))
}

func reqExpr(o *Object, key, path string) (ast.Expr, error) {
	v, err := reqField(o, key, path)
	if err != nil {
		return nil, err
	}
	return decodeExpr(v, childPath(path, key))
}

// ---------- statements ----------

func decodeSelect(v Value, path string) (*ast.SelectStmt, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeSelect {
		return nil, decodeErr(path, "expected node %q, got %q", nodeSelect, tag)
	}
	return decodeSelectObject(o, path)
}

func decodeSelectObject(o *Object, path string) (*ast.SelectStmt, error) {
	stmt := &ast.SelectStmt{}
	if v, ok := o.Get("with"); ok {
		with, err := decodeWith(v, childPath(path, "with"))
		if err != nil {
			return nil, err
		}
		stmt.With = with
	}
	bodyValue, err := reqField(o, "body", path)
	if err != nil {
		return nil, err
	}
	stmt.Body, err = decodeSelectBody(bodyValue, childPath(path, "body"))
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeWith(v Value, path string) (*ast.WithClause, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeWith {
		return nil, decodeErr(path, "expected node %q, got %q", nodeWith, tag)
	}
	clause := &ast.WithClause{}
	if clause.Recursive, err = optBool(o, "recursive", path); err != nil {
		return nil, err
	}
	ctes, err := reqList(o, "ctes", path)
	if err != nil {
		return nil, err
	}
	for i, cv := range ctes {
		cp := indexPath(childPath(path, "ctes"), i)
		co, tag, err := nodeObject(cv, cp)
		if err != nil {
			return nil, err
		}
		if tag != nodeCTE {
			return nil, decodeErr(cp, "expected node %q, got %q", nodeCTE, tag)
		}
		cte := &ast.CTE{}
		if cte.Name, err = reqString(co, "name", cp); err != nil {
			return nil, err
		}
		selValue, err := reqField(co, "select", cp)
		if err != nil {
			return nil, err
		}
		if cte.Select, err = decodeSelect(selValue, childPath(cp, "select")); err != nil {
			return nil, err
		}
		clause.CTEs = append(clause.CTEs, cte)
	}
	return clause, nil
}

func decodeSelectBody(v Value, path string) (*ast.SelectBody, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeSelectBody {
		return nil, decodeErr(path, "expected node %q, got %q", nodeSelectBody, tag)
	}
	body := &ast.SelectBody{}
	leftValue, err := reqField(o, "left", path)
	if err != nil {
		return nil, err
	}
	if body.Left, err = decodeSelectCore(leftValue, childPath(path, "left")); err != nil {
		return nil, err
	}
	op, err := optString(o, "op", path)
	if err != nil {
		return nil, err
	}
	if op == "" {
		return body, nil
	}
	switch ast.SetOp(op) {
	case ast.SetOpUnion, ast.SetOpIntersect, ast.SetOpExcept:
		body.Op = ast.SetOp(op)
	default:
		return nil, decodeErr(path, "unknown set operation %q", op)
	}
	if body.All, err = optBool(o, "all", path); err != nil {
		return nil, err
	}
	rightValue, err := reqField(o, "right", path)
	if err != nil {
		return nil, err
	}
	if body.Right, err = decodeSelectBody(rightValue, childPath(path, "right")); err != nil {
		return nil, err
	}
	return body, nil
}

func decodeSelectCore(v Value, path string) (*ast.SelectCore, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeSelectCore {
		return nil, decodeErr(path, "expected node %q, got %q", nodeSelectCore, tag)
	}
	core := &ast.SelectCore{}
	if core.Distinct, err = optBool(o, "distinct", path); err != nil {
		return nil, err
	}
	cols, err := reqList(o, "columns", path)
	if err != nil {
		return nil, err
	}
	for i, cv := range cols {
		item, err := decodeSelectItem(cv, indexPath(childPath(path, "columns"), i))
		if err != nil {
			return nil, err
		}
		core.Columns = append(core.Columns, item)
	}
	if v, ok := o.Get("from"); ok {
		if core.From, err = decodeFrom(v, childPath(path, "from")); err != nil {
			return nil, err
		}
	}
	if core.Where, err = optExpr(o, "where", path); err != nil {
		return nil, err
	}
	groupBy, err := optList(o, "groupBy", path)
	if err != nil {
		return nil, err
	}
	if len(groupBy) > 0 {
		if core.GroupBy, err = decodeExprList(groupBy, childPath(path, "groupBy")); err != nil {
			return nil, err
		}
	}
	if core.Having, err = optExpr(o, "having", path); err != nil {
		return nil, err
	}
	orderBy, err := optList(o, "orderBy", path)
	if err != nil {
		return nil, err
	}
	for i, ov := range orderBy {
		item, err := decodeOrderByItem(ov, indexPath(childPath(path, "orderBy"), i))
		if err != nil {
			return nil, err
		}
		core.OrderBy = append(core.OrderBy, item)
	}
	if core.Limit, err = optExpr(o, "limit", path); err != nil {
		return nil, err
	}
	if core.Offset, err = optExpr(o, "offset", path); err != nil {
		return nil, err
	}
	return core, nil
}

func decodeSelectItem(v Value, path string) (ast.SelectItem, error) {
	var item ast.SelectItem
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return item, err
	}
	if tag != nodeSelectItem {
		return item, decodeErr(path, "expected node %q, got %q", nodeSelectItem, tag)
	}
	if item.Star, err = optBool(o, "star", path); err != nil {
		return item, err
	}
	if item.TableStar, err = optString(o, "tableStar", path); err != nil {
		return item, err
	}
	if !item.Star && item.TableStar == "" {
		if item.Expr, err = reqExpr(o, "expr", path); err != nil {
			return item, err
		}
	}
	except, err := optList(o, "except", path)
	if err != nil {
		return item, err
	}
	if len(except) > 0 {
		if item.Except, err = decodeStringList(except, childPath(path, "except")); err != nil {
			return item, err
		}
	}
	if item.Alias, err = optString(o, "alias", path); err != nil {
		return item, err
	}
	return item, nil
}

func decodeOrderByItem(v Value, path string) (ast.OrderByItem, error) {
	var item ast.OrderByItem
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return item, err
	}
	if tag != nodeOrderBy {
		return item, decodeErr(path, "expected node %q, got %q", nodeOrderBy, tag)
	}
	if item.Expr, err = reqExpr(o, "expr", path); err != nil {
		return item, err
	}
	if item.Desc, err = optBool(o, "desc", path); err != nil {
		return item, err
	}
	if v, ok := o.Get("nullsFirst"); ok {
		b, ok := v.(bool)
		if !ok {
			return item, decodeErr(path, "field %q must be a bool, got %T", "nullsFirst", v)
		}
		item.NullsFirst = &b
	}
	return item, nil
}

func decodeFrom(v Value, path string) (*ast.FromClause, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeFrom {
		return nil, decodeErr(path, "expected node %q, got %q", nodeFrom, tag)
	}
	clause := &ast.FromClause{}
	sourceValue, err := reqField(o, "source", path)
	if err != nil {
		return nil, err
	}
	if clause.Source, err = decodeTableRef(sourceValue, childPath(path, "source")); err != nil {
		return nil, err
	}
	joins, err := optList(o, "joins", path)
	if err != nil {
		return nil, err
	}
	for i, jv := range joins {
		join, err := decodeJoin(jv, indexPath(childPath(path, "joins"), i))
		if err != nil {
			return nil, err
		}
		clause.Joins = append(clause.Joins, join)
	}
	return clause, nil
}

func decodeJoin(v Value, path string) (*ast.Join, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeJoin {
		return nil, decodeErr(path, "expected node %q, got %q", nodeJoin, tag)
	}
	join := &ast.Join{}
	jt, err := reqString(o, "type", path)
	if err != nil {
		return nil, err
	}
	switch ast.JoinType(jt) {
	case ast.JoinInner, ast.JoinLeft, ast.JoinRight, ast.JoinFull, ast.JoinCross, ast.JoinComma:
		join.Type = ast.JoinType(jt)
	default:
		return nil, decodeErr(path, "unknown join type %q", jt)
	}
	rightValue, err := reqField(o, "right", path)
	if err != nil {
		return nil, err
	}
	if join.Right, err = decodeTableRef(rightValue, childPath(path, "right")); err != nil {
		return nil, err
	}
	if join.Condition, err = optExpr(o, "on", path); err != nil {
		return nil, err
	}
	using, err := optList(o, "using", path)
	if err != nil {
		return nil, err
	}
	if len(using) > 0 {
		if join.Using, err = decodeStringList(using, childPath(path, "using")); err != nil {
			return nil, err
		}
	}
	return join, nil
}

func decodeTableRef(v Value, path string) (ast.TableRef, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	switch tag {
	case nodeTable:
		return decodeTableNameObject(o, path)
	case nodeDerived:
		ref := &ast.DerivedTable{}
		selValue, err := reqField(o, "select", path)
		if err != nil {
			return nil, err
		}
		if ref.Select, err = decodeSelect(selValue, childPath(path, "select")); err != nil {
			return nil, err
		}
		if ref.Alias, err = optString(o, "alias", path); err != nil {
			return nil, err
		}
		return ref, nil
	default:
		return nil, decodeErr(path, "unknown table reference node %q", tag)
	}
}

func decodeTableName(v Value, path string) (*ast.TableName, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	if tag != nodeTable {
		return nil, decodeErr(path, "expected node %q, got %q", nodeTable, tag)
	}
	return decodeTableNameObject(o, path)
}

func decodeTableNameObject(o *Object, path string) (*ast.TableName, error) {
	name := &ast.TableName{}
	var err error
	if name.Schema, err = optString(o, "schema", path); err != nil {
		return nil, err
	}
	if name.Name, err = reqString(o, "name", path); err != nil {
		return nil, err
	}
	if name.AsOf, err = optExpr(o, "asOf", path); err != nil {
		return nil, err
	}
	if name.Alias, err = optString(o, "alias", path); err != nil {
		return nil, err
	}
	return name, nil
}

func decodeInsert(o *Object, path string) (ast.Statement, error) {
	stmt := &ast.InsertStmt{}
	tableValue, err := reqField(o, "table", path)
	if err != nil {
		return nil, err
	}
	if stmt.Table, err = decodeTableName(tableValue, childPath(path, "table")); err != nil {
		return nil, err
	}
	columns, err := optList(o, "columns", path)
	if err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		if stmt.Columns, err = decodeStringList(columns, childPath(path, "columns")); err != nil {
			return nil, err
		}
	}
	rows, err := optList(o, "rows", path)
	if err != nil {
		return nil, err
	}
	for i, rv := range rows {
		rp := indexPath(childPath(path, "rows"), i)
		rl, ok := rv.(List)
		if !ok {
			return nil, decodeErr(rp, "expected a list, got %T", rv)
		}
		row, err := decodeExprList(rl, rp)
		if err != nil {
			return nil, err
		}
		stmt.Rows = append(stmt.Rows, row)
	}
	if v, ok := o.Get("query"); ok {
		if stmt.Query, err = decodeSelect(v, childPath(path, "query")); err != nil {
			return nil, err
		}
	}
	if stmt.Rows == nil && stmt.Query == nil {
		return nil, decodeErr(path, "insert needs %q or %q", "rows", "query")
	}
	return stmt, nil
}

func decodeUpdate(o *Object, path string) (ast.Statement, error) {
	stmt := &ast.UpdateStmt{}
	tableValue, err := reqField(o, "table", path)
	if err != nil {
		return nil, err
	}
	if stmt.Table, err = decodeTableName(tableValue, childPath(path, "table")); err != nil {
		return nil, err
	}
	set, err := reqList(o, "set", path)
	if err != nil {
		return nil, err
	}
	for i, av := range set {
		ap := indexPath(childPath(path, "set"), i)
		ao, tag, err := nodeObject(av, ap)
		if err != nil {
			return nil, err
		}
		if tag != nodeAssign {
			return nil, decodeErr(ap, "expected node %q, got %q", nodeAssign, tag)
		}
		var a ast.Assignment
		if a.Column, err = reqString(ao, "column", ap); err != nil {
			return nil, err
		}
		if a.Value, err = reqExpr(ao, "value", ap); err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, a)
	}
	if stmt.Where, err = optExpr(o, "where", path); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeDelete(o *Object, path string) (ast.Statement, error) {
	stmt := &ast.DeleteStmt{}
	tableValue, err := reqField(o, "table", path)
	if err != nil {
		return nil, err
	}
	if stmt.Table, err = decodeTableName(tableValue, childPath(path, "table")); err != nil {
		return nil, err
	}
	if stmt.Where, err = optExpr(o, "where", path); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeCreateTable(o *Object, path string) (ast.Statement, error) {
	stmt := &ast.CreateTableStmt{}
	nameValue, err := reqField(o, "name", path)
	if err != nil {
		return nil, err
	}
	if stmt.Name, err = decodeTableName(nameValue, childPath(path, "name")); err != nil {
		return nil, err
	}
	if stmt.IfNotExists, err = optBool(o, "ifNotExists", path); err != nil {
		return nil, err
	}
	columns, err := optList(o, "columns", path)
	if err != nil {
		return nil, err
	}
	for i, cv := range columns {
		cp := indexPath(childPath(path, "columns"), i)
		co, tag, err := nodeObject(cv, cp)
		if err != nil {
			return nil, err
		}
		if tag != nodeColumnDef {
			return nil, decodeErr(cp, "expected node %q, got %q", nodeColumnDef, tag)
		}
		var col ast.ColumnDef
		if col.Name, err = reqString(co, "name", cp); err != nil {
			return nil, err
		}
		if col.Type, err = reqString(co, "type", cp); err != nil {
			return nil, err
		}
		if col.NotNull, err = optBool(co, "notNull", cp); err != nil {
			return nil, err
		}
		if col.Default, err = optExpr(co, "default", cp); err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)
	}
	if v, ok := o.Get("query"); ok {
		if stmt.Query, err = decodeSelect(v, childPath(path, "query")); err != nil {
			return nil, err
		}
	}
	if stmt.Columns == nil && stmt.Query == nil {
		return nil, decodeErr(path, "create table needs %q or %q", "columns", "query")
	}
	return stmt, nil
}

// ---------- expressions ----------

// DecodeExpr converts an interchange value back to an expression.
func DecodeExpr(v Value) (ast.Expr, error) {
	return decodeExpr(v, "")
}

func decodeExpr(v Value, path string) (ast.Expr, error) {
	o, tag, err := nodeObject(v, path)
	if err != nil {
		return nil, err
	}
	switch tag {
	case nodeColumnRef:
		ref := &ast.ColumnRef{}
		if ref.Table, err = optString(o, "table", path); err != nil {
			return nil, err
		}
		if ref.Column, err = reqString(o, "column", path); err != nil {
			return nil, err
		}
		return ref, nil
	case nodeLiteral:
		return decodeLiteral(o, path)
	case nodeBinary:
		expr := &ast.BinaryExpr{}
		op, err := reqString(o, "op", path)
		if err != nil {
			return nil, err
		}
		expr.Op = ast.BinaryOp(op)
		if expr.Left, err = reqExpr(o, "left", path); err != nil {
			return nil, err
		}
		if expr.Right, err = reqExpr(o, "right", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeUnary:
		expr := &ast.UnaryExpr{}
		op, err := reqString(o, "op", path)
		if err != nil {
			return nil, err
		}
		expr.Op = ast.UnaryOp(op)
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeCall:
		call := &ast.FuncCall{}
		if call.Name, err = reqString(o, "name", path); err != nil {
			return nil, err
		}
		if call.Distinct, err = optBool(o, "distinct", path); err != nil {
			return nil, err
		}
		if call.Star, err = optBool(o, "star", path); err != nil {
			return nil, err
		}
		args, err := optList(o, "args", path)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			if call.Args, err = decodeExprList(args, childPath(path, "args")); err != nil {
				return nil, err
			}
		}
		if call.Filter, err = optExpr(o, "filter", path); err != nil {
			return nil, err
		}
		return call, nil
	case nodeCase:
		expr := &ast.CaseExpr{}
		if expr.Operand, err = optExpr(o, "operand", path); err != nil {
			return nil, err
		}
		whens, err := reqList(o, "whens", path)
		if err != nil {
			return nil, err
		}
		for i, wv := range whens {
			wp := indexPath(childPath(path, "whens"), i)
			wo, tag, err := nodeObject(wv, wp)
			if err != nil {
				return nil, err
			}
			if tag != nodeWhen {
				return nil, decodeErr(wp, "expected node %q, got %q", nodeWhen, tag)
			}
			var w ast.WhenClause
			if w.Condition, err = reqExpr(wo, "condition", wp); err != nil {
				return nil, err
			}
			if w.Result, err = reqExpr(wo, "result", wp); err != nil {
				return nil, err
			}
			expr.Whens = append(expr.Whens, w)
		}
		if expr.Else, err = optExpr(o, "else", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeCast:
		expr := &ast.CastExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.TypeName, err = reqString(o, "type", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeIn:
		expr := &ast.InExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		if v, ok := o.Get("query"); ok {
			if expr.Query, err = decodeSelect(v, childPath(path, "query")); err != nil {
				return nil, err
			}
			return expr, nil
		}
		values, err := reqList(o, "values", path)
		if err != nil {
			return nil, err
		}
		if expr.Values, err = decodeExprList(values, childPath(path, "values")); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeBetween:
		expr := &ast.BetweenExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		if expr.Low, err = reqExpr(o, "low", path); err != nil {
			return nil, err
		}
		if expr.High, err = reqExpr(o, "high", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeIsNull:
		expr := &ast.IsNullExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeIsBool:
		expr := &ast.IsBoolExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		if expr.Value, err = reqBool(o, "value", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeLike:
		expr := &ast.LikeExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		if expr.Pattern, err = reqExpr(o, "pattern", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeParen:
		expr := &ast.ParenExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeStar:
		expr := &ast.StarExpr{}
		if expr.Table, err = optString(o, "table", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeSubquery:
		expr := &ast.SubqueryExpr{}
		selValue, err := reqField(o, "select", path)
		if err != nil {
			return nil, err
		}
		if expr.Select, err = decodeSelect(selValue, childPath(path, "select")); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeExists:
		expr := &ast.ExistsExpr{}
		if expr.Not, err = optBool(o, "not", path); err != nil {
			return nil, err
		}
		selValue, err := reqField(o, "select", path)
		if err != nil {
			return nil, err
		}
		if expr.Select, err = decodeSelect(selValue, childPath(path, "select")); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeIndex:
		expr := &ast.IndexExpr{}
		if expr.Expr, err = reqExpr(o, "expr", path); err != nil {
			return nil, err
		}
		if expr.Index, err = reqExpr(o, "index", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeInterval:
		expr := &ast.IntervalExpr{}
		if expr.Value, err = reqString(o, "value", path); err != nil {
			return nil, err
		}
		if expr.Unit, err = optString(o, "unit", path); err != nil {
			return nil, err
		}
		return expr, nil
	case nodeMatch:
		expr := &ast.MatchExpr{}
		columns, err := reqList(o, "columns", path)
		if err != nil {
			return nil, err
		}
		if expr.Columns, err = decodeExprList(columns, childPath(path, "columns")); err != nil {
			return nil, err
		}
		if expr.Against, err = reqExpr(o, "against", path); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, decodeErr(path, "unknown expression node %q", tag)
	}
}

// decodeLiteral accepts native numbers for number literals so payloads
// produced by other tools round-trip, normalizing them to literal text.
func decodeLiteral(o *Object, path string) (ast.Expr, error) {
	lt, err := reqString(o, "type", path)
	if err != nil {
		return nil, err
	}
	lit := &ast.Literal{}
	switch lt {
	case literalNumber:
		lit.Type = ast.LiteralNumber
		v, err := reqField(o, "value", path)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case string:
			lit.Value = n
		case int64:
			lit.Value = strconv.FormatInt(n, 10)
		case float64:
			lit.Value = strconv.FormatFloat(n, 'g', -1, 64)
		default:
			return nil, decodeErr(path, "field %q must be a string or number, got %T", "value", v)
		}
	case literalString:
		lit.Type = ast.LiteralString
		if lit.Value, err = reqString(o, "value", path); err != nil {
			return nil, err
		}
	case literalBool:
		lit.Type = ast.LiteralBool
		b, err := reqBool(o, "value", path)
		if err != nil {
			return nil, err
		}
		if b {
			lit.Value = "TRUE"
		} else {
			lit.Value = "FALSE"
		}
	case literalNull:
		lit.Type = ast.LiteralNull
	default:
		return nil, decodeErr(path, "unknown literal type %q", lt)
	}
	return lit, nil
}
