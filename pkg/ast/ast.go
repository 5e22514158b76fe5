// Package ast defines the typed SQL syntax tree produced by the parser.
//
// The node set is closed: every statement, expression, and table-reference
// variant is declared here, and the interchange codec matches it
// exhaustively. Nodes own their children exclusively; a parsed tree is a
// strict tree with no sharing.
package ast

// Statement is a single SQL statement.
type Statement interface {
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// TableRef is a table reference in a FROM clause.
type TableRef interface {
	tableRefNode()
}
