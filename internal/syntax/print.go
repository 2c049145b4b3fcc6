package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
// Expressions are shown in postfix form.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// nested prints label and then node one level deeper.
func (p *printer) nested(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %c\n", n.pos, n.Var)
		p.indent++
		p.printf("X: %s\n", n.X)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		if n.Kind == PrintString {
			p.printf("String: %q\n", n.Str)
		} else {
			p.printf("X: %s\n", n.X)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond: %s\n", n.Cond)
		p.nested("Then", n.Then)
		if n.Else != nil {
			p.nested("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond: %s\n", n.Cond)
		p.nested("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s %c\n", n.pos, n.Var)
		p.indent++
		if n.Init != nil {
			p.nested("Init", n.Init)
		}
		p.printf("Cond: %s\n", n.Cond)
		p.printf("Step: %s\n", n.Step)
		p.nested("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		p.indent++
		p.printf("X: %s\n", n.X)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}
