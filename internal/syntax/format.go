package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/blocky/internal/expr"
)

// FprintSource writes node back as Blocky source text in canonical
// layout: one statement per line, IndentWidth spaces per level, no blank
// lines and minimally parenthesized expressions. Lexing and parsing the
// output yields an equivalent tree.
func FprintSource(w io.Writer, node Node) error {
	f := &formatter{w: w}
	f.stmt(node)
	return f.err
}

// SourceText returns the canonical source text of b.
func SourceText(b *Block) string {
	var sb strings.Builder
	FprintSource(&sb, b) // strings.Builder never fails
	return sb.String()
}

type formatter struct {
	w     io.Writer
	depth int
	err   error
}

func (f *formatter) line(format string, args ...interface{}) {
	if f.err != nil {
		return
	}
	indent := strings.Repeat(" ", f.depth*IndentWidth)
	_, f.err = fmt.Fprintf(f.w, indent+format+"\n", args...)
}

func (f *formatter) body(b *Block) {
	f.depth++
	f.stmt(b)
	f.depth--
}

func (f *formatter) stmt(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			f.stmt(s)
		}

	case *AssignStmt:
		f.line("%c = %s", n.Var, expr.Format(n.X))

	case *PrintStmt:
		if n.Kind == PrintString {
			f.line("print \"%s\"", n.Str)
		} else {
			f.line("print %s", expr.Format(n.X))
		}

	case *IfStmt:
		f.line("if %s", expr.Format(n.Cond))
		f.body(n.Then)
		if n.Else != nil {
			f.line("else")
			f.body(n.Else)
		}

	case *WhileStmt:
		f.line("while %s", expr.Format(n.Cond))
		f.body(n.Body)

	case *ForStmt:
		f.line("%s", forHeader(n))
		f.body(n.Body)

	case *ReturnStmt:
		f.line("return %s", expr.Format(n.X))

	default:
		panic(fmt.Sprintf("syntax: cannot format %T", node))
	}
}

// forHeader returns the source form of a for statement's header line.
func forHeader(n *ForStmt) string {
	head := string(n.Var)
	if n.Init != nil {
		head = fmt.Sprintf("%c = %s", n.Var, expr.Format(n.Init.X))
	}
	return fmt.Sprintf("for (%s; %s; %c = %s)", head, expr.Format(n.Cond), n.Var, expr.Format(n.Step))
}
