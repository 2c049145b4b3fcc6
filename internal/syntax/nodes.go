package syntax

import "github.com/you-not-fish/blocky/internal/expr"

// ----------------------------------------------------------------------------
// Interfaces
//
// A program is a tree of statements. Blocks own their statements and each
// nested block is owned by the one statement that introduces it.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the token that starts the node
	aNode()   // marker method to restrict implementations to this package
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Blocks

// Block is an ordered sequence of statements: a branch, a loop body, or
// the whole program.
type Block struct {
	node
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Statements

// AssignStmt represents: Var = X
type AssignStmt struct {
	stmt
	Var byte         // 'a'..'z'
	X   expr.Postfix // value
}

// PrintKind selects the payload of a PrintStmt.
type PrintKind uint8

const (
	PrintExpr   PrintKind = iota // print X
	PrintString                  // print "Str"
)

// PrintStmt represents: print X or print "Str". Only the field selected
// by Kind is set.
type PrintStmt struct {
	stmt
	Kind PrintKind
	X    expr.Postfix
	Str  string
}

// IfStmt represents: if Cond Then [else Else]
type IfStmt struct {
	stmt
	Cond expr.Postfix
	Then *Block
	Else *Block // nil when there is no else branch
}

// WhileStmt represents: while Cond Body
type WhileStmt struct {
	stmt
	Cond expr.Postfix
	Body *Block
}

// ForStmt represents: for (Init; Cond; Var = Step) Body
//
// Init is nil when the header names the loop variable without assigning
// it ("for (i; ...)"); the loop then starts from the variable's current value.
type ForStmt struct {
	stmt
	Var  byte        // loop variable
	Init *AssignStmt // assignment initializer, or nil
	Cond expr.Postfix
	Step expr.Postfix // new value of Var after each iteration
	Body *Block
}

// ReturnStmt represents: return X
type ReturnStmt struct {
	stmt
	X expr.Postfix
}
