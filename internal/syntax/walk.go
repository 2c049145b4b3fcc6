package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order: a statement before its
// nested blocks, an if's then branch before its else branch, a for's
// initializer before its body.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Body, v)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		Walk(n.Body, v)

	case *AssignStmt, *PrintStmt, *ReturnStmt:
		// leaves
	}
}

// isNil reports whether node is nil or a typed nil block.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	b, ok := node.(*Block)
	return ok && b == nil
}

// Count returns the number of statements in the tree rooted at node,
// for initializers included.
func Count(node Node) int {
	n := 0
	Walk(node, func(x Node) bool {
		if _, ok := x.(Stmt); ok {
			n++
		}
		return true
	})
	return n
}

// Depth returns the deepest block nesting level under node; a flat
// program has depth 1.
func Depth(b *Block) int {
	if b == nil {
		return 0
	}
	deepest := 0
	for _, s := range b.Stmts {
		var d int
		switch s := s.(type) {
		case *IfStmt:
			d = max(Depth(s.Then), Depth(s.Else))
		case *WhileStmt:
			d = Depth(s.Body)
		case *ForStmt:
			d = Depth(s.Body)
		}
		deepest = max(deepest, d)
	}
	return deepest + 1
}
