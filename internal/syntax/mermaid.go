package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/blocky/internal/expr"
)

// FprintMermaid writes the AST to w as a Mermaid top-down flowchart.
// Each node becomes a box labelled with its source form; branch and loop
// bodies hang off labelled edges.
func FprintMermaid(w io.Writer, node Node) error {
	g := &graph{w: w}
	g.line("graph TD")
	g.node(node)
	return g.err
}

type graph struct {
	w   io.Writer
	n   int // next node id
	err error
}

func (g *graph) line(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format+"\n", args...)
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;")

// box declares a new graph node and returns its id.
func (g *graph) box(label string) string {
	id := fmt.Sprintf("n%d", g.n)
	g.n++
	g.line("    %s[\"%s\"]", id, mermaidEscaper.Replace(label))
	return id
}

func (g *graph) edge(from, to, label string) {
	if label == "" {
		g.line("    %s --> %s", from, to)
		return
	}
	g.line("    %s -->|%s| %s", from, label, to)
}

// node emits node and its subtree and returns the id of its box.
func (g *graph) node(node Node) string {
	if isNil(node) {
		return ""
	}

	switch n := node.(type) {
	case *Block:
		id := g.box("block")
		for _, s := range n.Stmts {
			g.edge(id, g.node(s), "")
		}
		return id

	case *AssignStmt:
		return g.box(fmt.Sprintf("%c = %s", n.Var, expr.Format(n.X)))

	case *PrintStmt:
		if n.Kind == PrintString {
			return g.box(fmt.Sprintf("print %q", n.Str))
		}
		return g.box("print " + expr.Format(n.X))

	case *IfStmt:
		id := g.box("if " + expr.Format(n.Cond))
		g.edge(id, g.node(n.Then), "then")
		if n.Else != nil {
			g.edge(id, g.node(n.Else), "else")
		}
		return id

	case *WhileStmt:
		id := g.box("while " + expr.Format(n.Cond))
		g.edge(id, g.node(n.Body), "body")
		return id

	case *ForStmt:
		id := g.box(forHeader(n))
		g.edge(id, g.node(n.Body), "body")
		return id

	case *ReturnStmt:
		return g.box("return " + expr.Format(n.X))
	}
	return g.box(fmt.Sprintf("%T", node))
}
