// Package render prints an AST back to a single line of SQL. The
// output is deterministic and reparses, under the same dialect, to an
// AST equal to the input. Grouping is preserved structurally: explicit
// parentheses are AST nodes, and the renderer adds parentheses only
// where operator precedence would otherwise reassociate the tree.
package render

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/ast"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Renderer prints statements for one dialect. The dialect decides the
// identifier quote characters and string escape rules.
type Renderer struct {
	dialect *dialect.Dialect
}

// NewRenderer returns a renderer for the given dialect.
func NewRenderer(d *dialect.Dialect) *Renderer {
	return &Renderer{dialect: d}
}

// Statement renders one statement without a trailing semicolon.
func Statement(stmt ast.Statement, d *dialect.Dialect) string {
	return NewRenderer(d).Statement(stmt)
}

// Statement renders one statement without a trailing semicolon.
func (r *Renderer) Statement(stmt ast.Statement) string {
	var sb strings.Builder
	r.statement(&sb, stmt)
	return sb.String()
}

// Expr renders one expression.
func (r *Renderer) Expr(expr ast.Expr) string {
	var sb strings.Builder
	r.expr(&sb, expr)
	return sb.String()
}

func (r *Renderer) statement(sb *strings.Builder, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		r.selectStmt(sb, s)
	case *ast.InsertStmt:
		r.insertStmt(sb, s)
	case *ast.UpdateStmt:
		r.updateStmt(sb, s)
	case *ast.DeleteStmt:
		r.deleteStmt(sb, s)
	case *ast.CreateTableStmt:
		r.createTableStmt(sb, s)
	}
}

func (r *Renderer) selectStmt(sb *strings.Builder, s *ast.SelectStmt) {
	if s.With != nil {
		sb.WriteString("WITH ")
		if s.With.Recursive {
			sb.WriteString("RECURSIVE ")
		}
		for i, cte := range s.With.CTEs {
			if i > 0 {
				sb.WriteString(", ")
			}
			r.ident(sb, cte.Name)
			sb.WriteString(" AS (")
			r.selectStmt(sb, cte.Select)
			sb.WriteByte(')')
		}
		sb.WriteByte(' ')
	}
	r.selectBody(sb, s.Body)
}

func (r *Renderer) selectBody(sb *strings.Builder, b *ast.SelectBody) {
	r.selectCore(sb, b.Left)
	if b.Op == ast.SetOpNone {
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(string(b.Op))
	if b.All {
		sb.WriteString(" ALL")
	}
	sb.WriteByte(' ')
	r.selectBody(sb, b.Right)
}

func (r *Renderer) selectCore(sb *strings.Builder, c *ast.SelectCore) {
	sb.WriteString("SELECT ")
	if c.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, item := range c.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		r.selectItem(sb, item)
	}
	if c.From != nil {
		sb.WriteString(" FROM ")
		r.fromClause(sb, c.From)
	}
	if c.Where != nil {
		sb.WriteString(" WHERE ")
		r.expr(sb, c.Where)
	}
	if len(c.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		r.exprList(sb, c.GroupBy)
	}
	if c.Having != nil {
		sb.WriteString(" HAVING ")
		r.expr(sb, c.Having)
	}
	if len(c.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, item := range c.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			r.expr(sb, item.Expr)
			if item.Desc {
				sb.WriteString(" DESC")
			}
			if item.NullsFirst != nil {
				if *item.NullsFirst {
					sb.WriteString(" NULLS FIRST")
				} else {
					sb.WriteString(" NULLS LAST")
				}
			}
		}
	}
	if c.Limit != nil {
		sb.WriteString(" LIMIT ")
		r.expr(sb, c.Limit)
	}
	if c.Offset != nil {
		sb.WriteString(" OFFSET ")
		r.expr(sb, c.Offset)
	}
}

func (r *Renderer) selectItem(sb *strings.Builder, item ast.SelectItem) {
	switch {
	case item.Star:
		sb.WriteByte('*')
	case item.TableStar != "":
		r.ident(sb, item.TableStar)
		sb.WriteString(".*")
	default:
		r.expr(sb, item.Expr)
	}
	if len(item.Except) > 0 {
		sb.WriteString(" EXCEPT (")
		for i, name := range item.Except {
			if i > 0 {
				sb.WriteString(", ")
			}
			r.ident(sb, name)
		}
		sb.WriteByte(')')
	}
	if item.Alias != "" {
		sb.WriteString(" AS ")
		r.ident(sb, item.Alias)
	}
}

func (r *Renderer) fromClause(sb *strings.Builder, f *ast.FromClause) {
	r.tableRef(sb, f.Source)
	for _, j := range f.Joins {
		if j.Type == ast.JoinComma {
			sb.WriteString(", ")
			r.tableRef(sb, j.Right)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(string(j.Type))
		sb.WriteString(" JOIN ")
		r.tableRef(sb, j.Right)
		if j.Condition != nil {
			sb.WriteString(" ON ")
			r.expr(sb, j.Condition)
		}
		if len(j.Using) > 0 {
			sb.WriteString(" USING (")
			for i, name := range j.Using {
				if i > 0 {
					sb.WriteString(", ")
				}
				r.ident(sb, name)
			}
			sb.WriteByte(')')
		}
	}
}

func (r *Renderer) tableRef(sb *strings.Builder, ref ast.TableRef) {
	switch t := ref.(type) {
	case *ast.TableName:
		r.tableName(sb, t, true)
	case *ast.DerivedTable:
		sb.WriteByte('(')
		r.selectStmt(sb, t.Select)
		sb.WriteByte(')')
		if t.Alias != "" {
			sb.WriteString(" AS ")
			r.ident(sb, t.Alias)
		}
	}
}

func (r *Renderer) tableName(sb *strings.Builder, t *ast.TableName, extras bool) {
	if t.Schema != "" {
		r.ident(sb, t.Schema)
		sb.WriteByte('.')
	}
	r.ident(sb, t.Name)
	if !extras {
		return
	}
	if t.AsOf != nil {
		sb.WriteString(" FOR SYSTEM_TIME AS OF ")
		r.expr(sb, t.AsOf)
	}
	if t.Alias != "" {
		sb.WriteString(" AS ")
		r.ident(sb, t.Alias)
	}
}

func (r *Renderer) insertStmt(sb *strings.Builder, s *ast.InsertStmt) {
	sb.WriteString("INSERT INTO ")
	r.tableName(sb, s.Table, false)
	if len(s.Columns) > 0 {
		sb.WriteString(" (")
		for i, name := range s.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			r.ident(sb, name)
		}
		sb.WriteByte(')')
	}
	if s.Query != nil {
		sb.WriteByte(' ')
		r.selectStmt(sb, s.Query)
		return
	}
	sb.WriteString(" VALUES ")
	for i, row := range s.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		r.exprList(sb, row)
		sb.WriteByte(')')
	}
}

func (r *Renderer) updateStmt(sb *strings.Builder, s *ast.UpdateStmt) {
	sb.WriteString("UPDATE ")
	r.tableName(sb, s.Table, false)
	sb.WriteString(" SET ")
	for i, a := range s.Set {
		if i > 0 {
			sb.WriteString(", ")
		}
		r.ident(sb, a.Column)
		sb.WriteString(" = ")
		r.expr(sb, a.Value)
	}
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		r.expr(sb, s.Where)
	}
}

func (r *Renderer) deleteStmt(sb *strings.Builder, s *ast.DeleteStmt) {
	sb.WriteString("DELETE FROM ")
	r.tableName(sb, s.Table, false)
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		r.expr(sb, s.Where)
	}
}

func (r *Renderer) createTableStmt(sb *strings.Builder, s *ast.CreateTableStmt) {
	sb.WriteString("CREATE TABLE ")
	if s.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	r.tableName(sb, s.Name, false)
	if s.Query != nil {
		sb.WriteString(" AS ")
		r.selectStmt(sb, s.Query)
		return
	}
	sb.WriteString(" (")
	for i, col := range s.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		r.ident(sb, col.Name)
		sb.WriteByte(' ')
		sb.WriteString(col.Type)
		if col.NotNull {
			sb.WriteString(" NOT NULL")
		}
		if col.Default != nil {
			sb.WriteString(" DEFAULT ")
			r.expr(sb, col.Default)
		}
	}
	sb.WriteByte(')')
}

func (r *Renderer) exprList(sb *strings.Builder, exprs []ast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		r.expr(sb, e)
	}
}

// ident writes name, quoting it when it would not survive lexing as a
// plain identifier.
func (r *Renderer) ident(sb *strings.Builder, name string) {
	if r.plainIdent(name) {
		sb.WriteString(name)
		return
	}
	q := r.dialect.Identifiers
	sb.WriteByte(q.Quote)
	for i := 0; i < len(name); i++ {
		if name[i] == q.QuoteEnd {
			sb.WriteByte(q.QuoteEnd)
		}
		sb.WriteByte(name[i])
	}
	sb.WriteByte(q.QuoteEnd)
}

func (r *Renderer) plainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if i == 0 {
			if !r.dialect.IsIdentStart(ch) {
				return false
			}
		} else if !r.dialect.IsIdentPart(ch) {
			return false
		}
	}
	lower := strings.ToLower(name)
	if token.LookupIdent(lower) != token.IDENT {
		return false
	}
	if _, ok := r.dialect.LookupKeyword(lower); ok {
		return false
	}
	return true
}

// stringLit writes a single-quoted string literal. Quotes are doubled;
// backslashes are doubled too when the dialect decodes backslash
// escapes, so the text round-trips.
func (r *Renderer) stringLit(sb *strings.Builder, value string) {
	sb.WriteByte('\'')
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\'':
			sb.WriteString("''")
		case '\\':
			if r.dialect.BackslashEscapes {
				sb.WriteString(`\\`)
			} else {
				sb.WriteByte('\\')
			}
		default:
			sb.WriteByte(value[i])
		}
	}
	sb.WriteByte('\'')
}
