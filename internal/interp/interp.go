// Package interp executes Blocky programs by walking their syntax tree.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/you-not-fish/blocky/internal/expr"
	"github.com/you-not-fish/blocky/internal/syntax"
)

// ReturnSlot is the index of the return register in an Env.
const ReturnSlot = 26

// Env holds the 26 variables a..z followed by the return register.
type Env [ReturnSlot + 1]int64

// Lookup returns the value of variable name. It implements expr.Env.
func (e *Env) Lookup(name byte) int64 {
	return e[name-'a']
}

func (e *Env) set(name byte, v int64) {
	e[name-'a'] = v
}

// Return returns the value of the return register.
func (e *Env) Return() int64 {
	return e[ReturnSlot]
}

// RuntimeError reports a statement that failed during execution.
type RuntimeError struct {
	Pos syntax.Pos
	Err error
}

func (e *RuntimeError) Error() string {
	return e.Pos.String() + ": " + e.Err.Error()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Interpreter runs programs against its own environment, writing print
// output to w. It is not safe for concurrent use.
type Interpreter struct {
	w     io.Writer
	env   Env
	steps int
}

// New returns an interpreter that prints to w.
func New(w io.Writer) *Interpreter {
	return &Interpreter{w: w}
}

// Run zeroes the environment, executes prog and returns the final value
// of the return register. Execution stops at the first return statement
// anywhere in the tree.
func (in *Interpreter) Run(prog *syntax.Block) (int64, error) {
	in.env = Env{}
	in.steps = 0
	if _, err := in.block(prog); err != nil {
		return 0, err
	}
	return in.env.Return(), nil
}

// Env returns the environment left by the last Run.
func (in *Interpreter) Env() Env {
	return in.env
}

// Steps returns the number of statements executed by the last Run.
func (in *Interpreter) Steps() int {
	return in.steps
}

// block executes b and reports whether a return statement was reached.
func (in *Interpreter) block(b *syntax.Block) (bool, error) {
	if b == nil {
		return false, nil
	}
	for _, s := range b.Stmts {
		if ret, err := in.stmt(s); ret || err != nil {
			return ret, err
		}
	}
	return false, nil
}

func (in *Interpreter) stmt(s syntax.Stmt) (bool, error) {
	in.steps++

	switch s := s.(type) {
	case *syntax.AssignStmt:
		return false, in.assign(s)

	case *syntax.PrintStmt:
		var line string
		if s.Kind == syntax.PrintString {
			line = expr.EvalString(s.Str)
		} else {
			v, err := in.eval(s, s.X)
			if err != nil {
				return false, err
			}
			line = strconv.FormatInt(v, 10)
		}
		if _, err := io.WriteString(in.w, line+"\n"); err != nil {
			return false, &RuntimeError{Pos: s.Pos(), Err: err}
		}
		return false, nil

	case *syntax.IfStmt:
		c, err := in.eval(s, s.Cond)
		if err != nil {
			return false, err
		}
		if c != 0 {
			return in.block(s.Then)
		}
		return in.block(s.Else)

	case *syntax.WhileStmt:
		for {
			c, err := in.eval(s, s.Cond)
			if err != nil || c == 0 {
				return false, err
			}
			if ret, err := in.block(s.Body); ret || err != nil {
				return ret, err
			}
		}

	case *syntax.ForStmt:
		if s.Init != nil {
			if err := in.assign(s.Init); err != nil {
				return false, err
			}
		}
		for {
			c, err := in.eval(s, s.Cond)
			if err != nil || c == 0 {
				return false, err
			}
			if ret, err := in.block(s.Body); ret || err != nil {
				return ret, err
			}
			v, err := in.eval(s, s.Step)
			if err != nil {
				return false, err
			}
			in.env.set(s.Var, v)
		}

	case *syntax.ReturnStmt:
		v, err := in.eval(s, s.X)
		if err != nil {
			return false, err
		}
		in.env[ReturnSlot] = v
		return true, nil
	}
	panic(fmt.Sprintf("interp: unknown statement %T", s))
}

func (in *Interpreter) assign(s *syntax.AssignStmt) error {
	v, err := in.eval(s, s.X)
	if err != nil {
		return err
	}
	in.env.set(s.Var, v)
	return nil
}

// eval evaluates x for statement s.
func (in *Interpreter) eval(s syntax.Stmt, x expr.Postfix) (int64, error) {
	v, err := expr.Eval(x, &in.env)
	if err != nil {
		return 0, &RuntimeError{Pos: s.Pos(), Err: err}
	}
	return v, nil
}
