package syntax

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/you-not-fish/blocky/internal/expr"
)

// FprintJSON writes a JSON representation of the AST to w.
// Expressions are encoded as postfix item strings.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *Block:
		return map[string]interface{}{
			"type":  "Block",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type": "AssignStmt",
			"pos":  n.pos.String(),
			"var":  string(n.Var),
			"x":    exprJSON(n.X),
		}

	case *PrintStmt:
		m := map[string]interface{}{
			"type": "PrintStmt",
			"pos":  n.pos.String(),
		}
		if n.Kind == PrintString {
			m["string"] = n.Str
		} else {
			m["x"] = exprJSON(n.X)
		}
		return m

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": exprJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": exprJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ForStmt:
		m := map[string]interface{}{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"var":  string(n.Var),
			"cond": exprJSON(n.Cond),
			"step": exprJSON(n.Step),
			"body": toJSON(n.Body),
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		return m

	case *ReturnStmt:
		return map[string]interface{}{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
			"x":    exprJSON(n.X),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// exprJSON encodes p as its list of postfix items.
func exprJSON(p expr.Postfix) []string {
	items := strings.Fields(p.String())
	if items == nil {
		items = []string{}
	}
	return items
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
